package app

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

func (app *Application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}

	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

// readString returns a query string value, or the default if the key is absent.
func (app *Application) readString(qs url.Values, key string, defaultValue string) string {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}

	return s
}

// readInt returns a query integer value, or the default if the key is
// absent or not an integer.
func (app *Application) readInt(qs url.Values, key string, defaultValue int) int {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}

	i, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return i
}

// readCSVInts parses a comma-separated list of integers from the query
// string. Entries that are not integers are dropped.
func (app *Application) readCSVInts(qs url.Values, key string) []int {
	s := qs.Get(key)
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	values := make([]int, 0, len(parts))

	for _, part := range parts {
		i, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}

		values = append(values, i)
	}

	return values
}
