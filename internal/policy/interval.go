// Package policy содержит чистые функции правил бронирования: рабочие часы,
// пересечение интервалов, минимальное время до записи и окно отмены.
// Пакет не обращается к хранилищу и не читает текущее время сам.
package policy

import "time"

// Interval полуоткрытый интервал времени [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval строит интервал из начала и длительности
func NewInterval(start time.Time, duration time.Duration) Interval {
	return Interval{Start: start, End: start.Add(duration)}
}

// IsValid возвращает true, если End строго позже Start
func (i Interval) IsValid() bool {
	return i.End.After(i.Start)
}

// Duration длина интервала
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов.
// Интервалы, стыкующиеся концами (a.End == b.Start), не пересекаются.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// EffectiveInterval расширяет [start, end) буферами до и после
func EffectiveInterval(start, end time.Time, bufferBefore, bufferAfter time.Duration) Interval {
	if bufferBefore < 0 {
		bufferBefore = 0
	}
	if bufferAfter < 0 {
		bufferAfter = 0
	}
	return Interval{Start: start.Add(-bufferBefore), End: end.Add(bufferAfter)}
}
