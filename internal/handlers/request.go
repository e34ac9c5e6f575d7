package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 10 << 20

var timeNow = time.Now

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func nowISO() string {
	return timeNow().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
