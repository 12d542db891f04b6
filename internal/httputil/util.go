package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-sod/insight/internal/byteutil"
	"github.com/go-sod/insight/internal/logging"
	"github.com/goccy/go-json"
)

const (
	MaxBodyBytes       = 1 << 20
	ContentTypeJSON    = "application/json"
	ContentTypeHTML    = "text/html; charset=utf-8"
	headerContentType  = "Content-Type"
	msgBodyTooLarge    = "http: request body too large"
	prefixUnknownField = "json: unknown field "
)

// DecodeJSON reads a size-limited JSON body into dst rejecting unknown fields.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	return d.Decode(dst)
}

func DecodeErr(ctx context.Context, w http.ResponseWriter, err error) {
	var (
		syntaxErr      *json.SyntaxError
		unmarshalError *json.UnmarshalTypeError
		maxBytesErr    *http.MaxBytesError
	)
	switch {
	case errors.As(err, &syntaxErr):
		RespBadRequest(ctx, w, `{"error": "malformed json at position %v"}`, syntaxErr.Offset)
	case errors.Is(err, io.ErrUnexpectedEOF):
		RespBadRequest(ctx, w, `{"error": "malformed json"}`)
	case errors.As(err, &unmarshalError):
		RespBadRequest(ctx, w, `{"error": "invalid value %v at position %v"}`, unmarshalError.Field, unmarshalError.Offset)
	case strings.HasPrefix(err.Error(), prefixUnknownField):
		fieldName := strings.TrimPrefix(err.Error(), prefixUnknownField)
		RespBadRequest(ctx, w, `{"error": "unknown field %s"}`, fieldName)
	case errors.Is(err, io.EOF):
		RespBadRequest(ctx, w, `{"error": "body must not be empty"}`)
	case errors.As(err, &maxBytesErr), err.Error() == msgBodyTooLarge:
		w.WriteHeader(http.StatusRequestEntityTooLarge)
	default:
		RespInternalError(ctx, w, `{"error": "failed to decode json %v"}`, err)
	}
}

// CheckJSONRequest answers 405 or 415 and returns false when r is not a JSON
// request with the given method.
func CheckJSONRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, method string) bool {
	logger := logging.FromContext(ctx)
	if r.Method != method {
		w.Header().Set(headerContentType, ContentTypeJSON)
		w.WriteHeader(http.StatusMethodNotAllowed)
		logger.Debugf(`{"error": "method %v is not allowed"}`, r.Method)
		_, _ = fmt.Fprintf(w, `{"error": "method %v is not allowed"}`, r.Method)
		return false
	}
	if t := r.Header.Get(headerContentType); !strings.HasPrefix(t, ContentTypeJSON) {
		w.Header().Set(headerContentType, ContentTypeJSON)
		w.WriteHeader(http.StatusUnsupportedMediaType)
		logger.Debugf(`{"error": "%v"}`, "content-type is not application/json")
		_, _ = fmt.Fprintf(w, `{"error": "%v"}`, "content-type is not application/json")
		return false
	}
	return true
}

func RespMethodNotAllowed(ctx context.Context, w http.ResponseWriter, method string) {
	logging.FromContext(ctx).Debugf(`{"error": "method %v is not allowed"}`, method)
	w.Header().Set(headerContentType, ContentTypeJSON)
	w.WriteHeader(http.StatusMethodNotAllowed)
	_, _ = fmt.Fprintf(w, `{"error": "method %v is not allowed"}`, method)
}

func RespBadRequest(ctx context.Context, w http.ResponseWriter, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logging.FromContext(ctx).Debug(msg)
	w.Header().Set(headerContentType, ContentTypeJSON)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusBadRequest)
	_, _ = fmt.Fprintln(w, msg)
}

func RespInternalError(ctx context.Context, w http.ResponseWriter, format string, args ...interface{}) {
	logging.FromContext(ctx).Errorf(format, args...)
	http.Error(w, "Internal error", http.StatusInternalServerError)
}

// RespJSON encodes v with the given status.
func RespJSON(ctx context.Context, w http.ResponseWriter, status int, v interface{}) {
	bytes, err := json.Marshal(v)
	if err != nil {
		RespInternalError(ctx, w, `{"error": "failed to encode output json %v"}`, err)
		return
	}
	w.Header().Set(headerContentType, ContentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(bytes)
}

// RespHTML buffers the page produced by render and writes it with status 200.
func RespHTML(ctx context.Context, w http.ResponseWriter, render func(io.Writer) error) {
	buf := byteutil.GetBytesBuf()
	defer byteutil.PutBytesBuf(buf)
	if err := render(buf); err != nil {
		RespInternalError(ctx, w, `{"error": "failed to render page %v"}`, err)
		return
	}
	w.Header().Set(headerContentType, ContentTypeHTML)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
