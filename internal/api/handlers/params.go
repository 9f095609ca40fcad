package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// PathID читает положительный int64 из переменной маршрута
func PathID(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, fmt.Errorf("handlers: path variable %q is missing", name)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("handlers: path variable %q: %w", name, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("handlers: path variable %q must be positive", name)
	}
	return id, nil
}
