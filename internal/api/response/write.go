package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes data with the given status. Room and game snapshots go stale
// within a second, so responses are never cached.
func JSON(w http.ResponseWriter, status int, data any) {
	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// List writes a 200 with items as a JSON array. An empty list is written as
// [] rather than null.
func List[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	JSON(w, http.StatusOK, items)
}
