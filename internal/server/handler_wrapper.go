// Provides the adapter that standardizes HTTP handlers.

// Package server implements the HTTP surface: routing, the generic handler
// adapter, rate limiting of uploads, and the embedded frontend.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/rosterd/rosterd/internal/server/dto"
)

// maxJSONBodyBytes caps JSON request bodies. Spreadsheet uploads have their
// own, larger limit.
const maxJSONBodyBytes = 1 << 20

// Wrap wraps a handler function to work as an http.Handler.
// The function must have signature: func(context.Context, *In) (*Out, error)
// where In can be unmarshalled from JSON and Out is a struct. Query
// parameters can be extracted by tagging struct fields with `query:"name"`.
// *In must implement dto.Validatable.
func Wrap[In any, PtrIn interface {
	*In
	dto.Validatable
}, Out any](fn func(context.Context, PtrIn) (*Out, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		input := new(In)
		if !readAndDecodeBody(ctx, w, r, input) {
			return
		}
		populateQueryParams(r, input)

		if err := PtrIn(input).Validate(); err != nil {
			writeError(ctx, w, err)
			return
		}

		output, err := fn(ctx, PtrIn(input))
		writeJSONResponse(ctx, w, output, err)
	})
}

// readAndDecodeBody reads the request body with a size limit and decodes
// JSON into input. Returns false if an error occurred and was written to
// the response.
func readAndDecodeBody[In any](ctx context.Context, w http.ResponseWriter, r *http.Request, input *In) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err2 := r.Body.Close(); err == nil {
		err = err2
	}
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(ctx, w, dto.PayloadTooLarge(maxErr.Limit))
			return false
		}
		slog.ErrorContext(ctx, "Failed to read request body", "err", err)
		writeError(ctx, w, dto.BadRequest("Failed to read request body"))
		return false
	}

	if len(body) > 0 {
		d := json.NewDecoder(bytes.NewReader(body))
		d.DisallowUnknownFields()
		if err := d.Decode(input); err != nil {
			slog.ErrorContext(ctx, "Failed to decode request body", "err", err)
			writeError(ctx, w, dto.BadRequest("Invalid request body"))
			return false
		}
	}
	return true
}

// populateQueryParams fills struct fields tagged with `query:"name"` from
// URL query parameters. Supported field types: string, int, and
// map[string][]string, the latter collected from repeated name=Key=Value
// parameters.
func populateQueryParams(r *http.Request, input any) {
	val := reflect.ValueOf(input)
	if val.Kind() != reflect.Pointer {
		return
	}
	elem := val.Elem()
	if elem.Kind() != reflect.Struct {
		return
	}

	query := r.URL.Query()
	typ := elem.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		tag := field.Tag.Get("query")
		if tag == "" {
			continue
		}

		fieldVal := elem.Field(i)
		switch field.Type.Kind() {
		case reflect.String:
			if v := query.Get(tag); v != "" {
				fieldVal.SetString(v)
			}
		case reflect.Int:
			if v := query.Get(tag); v != "" {
				if n, err := strconv.Atoi(v); err == nil {
					fieldVal.SetInt(int64(n))
				}
			}
		case reflect.Map:
			if field.Type != reflect.TypeOf(map[string][]string(nil)) {
				continue
			}
			m := map[string][]string{}
			for _, pair := range query[tag] {
				if key, value, ok := strings.Cut(pair, "="); ok && key != "" {
					m[key] = append(m[key], value)
				}
			}
			if len(m) > 0 {
				fieldVal.Set(reflect.ValueOf(m))
			}
		}
	}
}

// writeJSONResponse writes a JSON response or error response.
func writeJSONResponse[Out any](ctx context.Context, w http.ResponseWriter, output *Out, err error) {
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(output); err != nil {
		slog.ErrorContext(ctx, "Failed to encode response", "err", err)
	}
}

// writeError renders err as the standard error response. Errors that do not
// implement dto.ErrorWithStatus become a 500.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	resp := dto.ErrorResponse{Error: dto.ErrorDetails{Code: dto.ErrorCodeInternal, Message: err.Error()}}
	var ews dto.ErrorWithStatus
	if errors.As(err, &ews) {
		statusCode = ews.StatusCode()
		resp.Error.Code = ews.Code()
		if d := ews.Details(); len(d) > 0 {
			resp.Details = d
		}
	}

	slog.ErrorContext(ctx, "Handler error", "err", err, "statusCode", statusCode, "code", resp.Error.Code)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(&resp); err != nil {
		slog.ErrorContext(ctx, "Failed to encode error response", "err", err)
	}
}
