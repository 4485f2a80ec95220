package xconsole

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"runtime"
	"strings"
)

// ErrorKind tags the shape recognised by Classify.
type ErrorKind uint8

const (
	// KindOpaque is any value that is not an error: it is passed through as is.
	KindOpaque ErrorKind = iota
	// KindGeneric is an error without HTTP exchange details.
	KindGeneric
	// KindHTTP is a value exposing the request, and maybe the response, of a
	// failed HTTP exchange.
	KindHTTP
)

func (k ErrorKind) String() string {
	switch k {
	case KindGeneric:
		return "generic"
	case KindHTTP:
		return "http"
	}
	return "opaque"
}

// HTTPError is the capability checked by Classify. It is usually, but not
// necessarily, implemented by an error type.
type HTTPError interface {
	HTTPRequest() RequestConfig
	// HTTPResponse reports the received response; ok is false when the
	// request never got one (dial failure, timeout).
	HTTPResponse() (resp ResponseInfo, ok bool)
}

// RequestConfig describes the request of a failed HTTP exchange.
type RequestConfig struct {
	URL     string      `json:"url"`
	Method  string      `json:"method"`
	Headers http.Header `json:"headers,omitempty"`
	Data    any         `json:"data,omitempty"`
}

// ResponseInfo describes the response of a failed HTTP exchange.
type ResponseInfo struct {
	Status int `json:"status"`
	Data   any `json:"data,omitempty"`
}

// ClientError is an HTTPError produced by HTTP client code, e.g. on a non-2xx
// status.
type ClientError struct {
	Request  RequestConfig
	Response *ResponseInfo
	Err      error
}

// NewClientError builds a ClientError from a net/http exchange. resp may be nil;
// body is the already-read response payload, if any.
func NewClientError(req *http.Request, resp *http.Response, body any, err error) *ClientError {
	ce := &ClientError{Err: err}
	if req != nil {
		ce.Request = RequestConfig{Method: req.Method, Headers: req.Header.Clone()}
		if req.URL != nil {
			ce.Request.URL = req.URL.String()
		}
	}
	if resp != nil {
		ce.Response = &ResponseInfo{Status: resp.StatusCode, Data: body}
	}
	return ce
}

func (e *ClientError) Error() string {
	switch {
	case e.Response != nil:
		return fmt.Sprintf("request failed with status code %d", e.Response.Status)
	case e.Err != nil:
		return e.Err.Error()
	}
	return "request failed"
}

func (e *ClientError) Unwrap() error { return e.Err }

func (e *ClientError) HTTPRequest() RequestConfig { return e.Request }

func (e *ClientError) HTTPResponse() (ResponseInfo, bool) {
	if e.Response == nil {
		return ResponseInfo{}, false
	}
	return *e.Response, true
}

// urlError exposes the transport errors returned by net/http clients.
type urlError struct{ *url.Error }

func (e urlError) HTTPRequest() RequestConfig {
	return RequestConfig{URL: e.URL, Method: strings.ToUpper(e.Op)}
}

func (e urlError) HTTPResponse() (ResponseInfo, bool) { return ResponseInfo{}, false }

// Classification is the tagged result of Classify.
type Classification struct {
	Kind  ErrorKind
	HTTP  HTTPError // set for KindHTTP
	Err   error     // set when Value is an error
	Value any       // the classified value
}

// Classify inspects v for the HTTPError capability (directly or anywhere in an
// error chain), then for the error interface. Everything else is opaque.
func Classify(v any) Classification {
	c := Classification{Kind: KindOpaque, Value: v}
	if isNil(v) {
		return c
	}
	if h, ok := v.(HTTPError); ok {
		c.Kind, c.HTTP = KindHTTP, h
		c.Err, _ = v.(error)
		return c
	}
	err, ok := v.(error)
	if !ok {
		return c
	}
	c.Err = err

	var h HTTPError
	if errors.As(err, &h) {
		c.Kind, c.HTTP = KindHTTP, h
		return c
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		c.Kind, c.HTTP = KindHTTP, urlError{ue}
		return c
	}
	c.Kind = KindGeneric
	return c
}

// HTTPErrorContext is the diagnostic payload derived from an HTTP error.
type HTTPErrorContext struct {
	ReqConfig RequestConfig `json:"req_config"`
	ResStatus *int          `json:"res_status,omitempty"`
	ResData   any           `json:"res_data,omitempty"`
}

// GenericErrorContext is the diagnostic payload derived from a plain error.
type GenericErrorContext struct {
	Message string         `json:"message"`
	Type    string         `json:"type"`
	Fields  map[string]any `json:"fields,omitempty"`
	Stack   string         `json:"stack"`
}

// BuildErrorContext derives the diagnostic context logged by Logger.Error.
// HTTP errors yield an HTTPErrorContext, other errors a GenericErrorContext;
// any other value is returned unchanged.
func BuildErrorContext(v any) any {
	c := Classify(v)
	switch c.Kind {
	case KindHTTP:
		out := HTTPErrorContext{ReqConfig: c.HTTP.HTTPRequest()}
		if resp, ok := c.HTTP.HTTPResponse(); ok {
			status := resp.Status
			out.ResStatus = &status
			out.ResData = resp.Data
		}
		return out
	case KindGeneric:
		return GenericErrorContext{
			Message: c.Err.Error(),
			Type:    fmt.Sprintf("%T", c.Err),
			Fields:  ownFields(c.Err),
			Stack:   stackOf(c.Err),
		}
	}
	return v
}

// stackTracer is implemented by errors that recorded where they were created.
type stackTracer interface {
	Stack() []byte
}

func stackOf(err error) string {
	var st stackTracer
	if errors.As(err, &st) {
		return string(st.Stack())
	}
	return captureStack(3)
}

func captureStack(skip int) string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip+1, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var b strings.Builder
	for {
		f, more := frames.Next()
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
		if !more {
			break
		}
	}
	return b.String()
}

// ownFields returns a shallow copy of the exported fields of a struct error.
func ownFields(err error) map[string]any {
	rv := reflect.ValueOf(err)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	fields := make(map[string]any)
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		name, ok := fieldName(f)
		if !ok {
			continue
		}
		fields[name] = rv.Field(i).Interface()
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
