package response

import (
	"encoding/json"
	"net/http"
)

// ErrorBody carries the client-safe failure message. Internal detail never
// leaves the process.
type ErrorBody struct {
	Detail string `json:"detail"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

func Error(w http.ResponseWriter, statusCode int, detail string) {
	WriteJSON(w, statusCode, ErrorBody{Detail: detail})
}

func BadRequest(w http.ResponseWriter, detail string) {
	Error(w, http.StatusBadRequest, detail)
}

func Unauthorized(w http.ResponseWriter, detail string) {
	Error(w, http.StatusUnauthorized, detail)
}

func NotFound(w http.ResponseWriter, detail string) {
	Error(w, http.StatusNotFound, detail)
}

func UnprocessableEntity(w http.ResponseWriter, detail string) {
	Error(w, http.StatusUnprocessableEntity, detail)
}

func InternalServerError(w http.ResponseWriter, detail string) {
	Error(w, http.StatusInternalServerError, detail)
}
