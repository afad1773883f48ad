package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Report JSON field names in validation messages
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Response is the envelope of every JSON body this API writes.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

var statusKinds = map[int]string{
	http.StatusBadRequest:          "bad_request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusForbidden:           "forbidden",
	http.StatusNotFound:            "not_found",
	http.StatusConflict:            "conflict",
	http.StatusInternalServerError: "internal_error",
}

// StatusKind names a failure status the way error bodies report it.
func StatusKind(statusCode int) string {
	if kind, ok := statusKinds[statusCode]; ok {
		return kind
	}
	return strings.ReplaceAll(strings.ToLower(http.StatusText(statusCode)), " ", "_")
}

// WriteJSON writes data inside an ok envelope.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	writeEnvelope(w, statusCode, Response{Status: "ok", Data: data})
}

// WriteError writes a failure envelope with an empty data object.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	writeEnvelope(w, statusCode, Response{
		Status:  StatusKind(statusCode),
		Message: message,
		Data:    struct{}{},
	})
}

func writeEnvelope(w http.ResponseWriter, statusCode int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// DecodeJSON parses the request body into v and runs its validate tags.
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	if err := validate.Struct(v); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			return fmt.Errorf("invalid request: %s", describe(invalid))
		}
		return err
	}
	return nil
}

func describe(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
