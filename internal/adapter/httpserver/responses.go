package httpserver

import (
	"encoding/json"
	"net/http"
)

// parseResponse is the envelope of the parse routes. Success is 1 or 0.
type parseResponse struct {
	Success int    `json:"success"`
	Raw     string `json:"raw"`
	Error   string `json:"error"`
}

// relayResponse is the envelope of the Files API relay route.
type relayResponse struct {
	Success int    `json:"success"`
	FileID  string `json:"file_id"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	// Extracted text is returned as-is, including <, > and &.
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeParseError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, parseResponse{Success: 0, Raw: "", Error: msg})
}

func writeRelayError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, relayResponse{Success: 0, FileID: "", Error: msg})
}
