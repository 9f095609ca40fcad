package policy

// HasConflict возвращает true, если candidate пересекается хотя бы с одним интервалом из existing.
// Фильтрация по бизнесу, локации и статусу - ответственность вызывающего.
func HasConflict(candidate Interval, existing []Interval) bool {
	return FirstConflict(candidate, existing) >= 0
}

// FirstConflict возвращает индекс первого пересекающегося интервала или -1
func FirstConflict(candidate Interval, existing []Interval) int {
	for i, other := range existing {
		if Overlaps(candidate, other) {
			return i
		}
	}
	return -1
}
