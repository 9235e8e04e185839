package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Response messages exposed on the wire. The set is fixed; handlers never
// leak raw error strings to clients.
const (
	msgSuccess           = "Success"
	msgBadRequest        = "Bad Request"
	msgNotFound          = "Not Found"
	msgUnauthorized      = "Unauthorized"
	msgForbidden         = "Forbidden"
	msgTokenExpired      = "JWT Token Expired"
	msgSessionTerminated = "Session Terminated"
	msgUnexpectedError   = "Unexpected Error"
)

// apiResponse is the uniform envelope. Timestamp is epoch milliseconds as a
// string; TransactionID is a fresh uuid per response.
type apiResponse struct {
	Message       string `json:"message"`
	Timestamp     string `json:"timestamp"`
	TransactionID string `json:"transactionId"`
	Response      any    `json:"response,omitempty"`
}

// fieldError describes a single request-validation failure.
type fieldError struct {
	FieldName string `json:"fieldName"`
	Message   string `json:"message"`
}

func newEnvelope(message string, data any) apiResponse {
	return apiResponse{
		Message:       message,
		Timestamp:     strconv.FormatInt(time.Now().UnixMilli(), 10),
		TransactionID: uuid.NewString(),
		Response:      data,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeSuccess wraps data in a Success envelope.
func writeSuccess(w http.ResponseWriter, code int, data any) {
	writeJSON(w, code, newEnvelope(msgSuccess, data))
}

// writeMessage emits a bare envelope carrying only the message.
func writeMessage(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, newEnvelope(message, nil))
}

// writeBadRequest emits a Bad Request envelope with detail data, typically a
// slice of fieldError. The status code varies: validation failures use 400
// while failed logins reuse the same envelope under 401.
func writeBadRequest(w http.ResponseWriter, code int, data any) {
	writeJSON(w, code, newEnvelope(msgBadRequest, data))
}

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeMessage(w, http.StatusMethodNotAllowed, msgBadRequest)
}
