package http

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-json-experiment/json"

	"github.com/km-arc/go-jsvalidation/framework/validation"
)

const maxMemory = 32 << 20 // 32 MB

// Request wraps *http.Request with Laravel-style helpers.
type Request struct {
	raw   *http.Request
	input map[string]string
	err   error
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// ── Input ────────────────────────────────────────────────────────────────────

// All returns the query string and body as a flat map keyed the way rules
// name fields: form names "user[email]" and nested JSON objects both become
// "user.email", and multi-valued inputs ("tags[]" or JSON arrays) are joined
// with commas. The body is read once.
func (req *Request) All() (map[string]string, error) {
	if req.input != nil || req.err != nil {
		return req.input, req.err
	}
	req.input, req.err = req.parse()
	return req.input, req.err
}

func (req *Request) parse() (map[string]string, error) {
	out := make(map[string]string)
	for k, v := range req.raw.URL.Query() {
		out[dotted(k)] = strings.Join(v, ",")
	}

	ct := req.ContentType()
	switch {
	case strings.Contains(ct, "application/json"):
		if req.raw.Body == nil || req.raw.Body == http.NoBody || req.raw.ContentLength == 0 {
			return out, nil
		}
		defer req.raw.Body.Close()
		var body map[string]any
		if err := json.UnmarshalRead(req.raw.Body, &body); err != nil {
			return nil, fmt.Errorf("http: decode json body: %w", err)
		}
		flatten("", body, out)
	case strings.Contains(ct, "multipart/form-data"):
		if err := req.raw.ParseMultipartForm(maxMemory); err != nil {
			return nil, err
		}
		for k, v := range req.raw.MultipartForm.Value {
			out[dotted(k)] = strings.Join(v, ",")
		}
	default:
		if err := req.raw.ParseForm(); err != nil {
			return nil, err
		}
		for k, v := range req.raw.PostForm {
			out[dotted(k)] = strings.Join(v, ",")
		}
	}
	return out, nil
}

// Input returns a single input value (query string OR body).
func (req *Request) Input(key string, fallback ...string) string {
	all, _ := req.All()
	if v := all[key]; v != "" {
		return v
	}
	return first(fallback, "")
}

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	if v := req.raw.URL.Query().Get(key); v != "" {
		return v
	}
	return first(fallback, "")
}

// Has returns true if the key is present and non-empty.
func (req *Request) Has(key string) bool {
	return req.Input(key) != ""
}

// RouteParam returns a URL route parameter (chi).
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// Header returns a request header value.
func (req *Request) Header(key string) string {
	return req.raw.Header.Get(key)
}

// Method returns the HTTP method.
func (req *Request) Method() string { return req.raw.Method }

// Path returns the URL path.
func (req *Request) Path() string { return req.raw.URL.Path }

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}

// IsJSON returns true when the request expects a JSON response.
func (req *Request) IsJSON() bool {
	return strings.Contains(req.raw.Header.Get("Accept"), "application/json") ||
		strings.Contains(req.ContentType(), "application/json")
}

// ── File uploads ─────────────────────────────────────────────────────────────

// File returns an uploaded file by field name.
func (req *Request) File(key string) (*multipart.FileHeader, error) {
	files, err := req.Files()
	if err != nil {
		return nil, err
	}
	fh, ok := files[key]
	if !ok {
		return nil, http.ErrMissingFile
	}
	return fh, nil
}

// Files returns the first upload of every file field, keyed like All.
// Requests that are not multipart have no files.
func (req *Request) Files() (map[string]*multipart.FileHeader, error) {
	if !strings.Contains(req.ContentType(), "multipart/form-data") {
		return map[string]*multipart.FileHeader{}, nil
	}
	if _, err := req.All(); err != nil {
		return nil, err
	}
	if req.raw.MultipartForm == nil {
		return nil, errors.New("http: no multipart form")
	}
	out := make(map[string]*multipart.FileHeader, len(req.raw.MultipartForm.File))
	for k, fhs := range req.raw.MultipartForm.File {
		if len(fhs) > 0 {
			out[dotted(k)] = fhs[0]
		}
	}
	return out, nil
}

// ── Validation ───────────────────────────────────────────────────────────────

// Validate builds a validator over the request input and uploads.
//
//	v, err := req.Validate(validation.Rules{"email": "required|email"})
//	if err != nil { ... }
//	if v.Fails() { res.ValidationError(v.Errors()); return }
func (req *Request) Validate(rules any, opts ...validation.Option) (*validation.Validator, error) {
	data, err := req.All()
	if err != nil {
		return nil, err
	}
	files, err := req.Files()
	if err != nil {
		return nil, err
	}
	// opts may be shared by concurrent handlers; never append into its spare capacity.
	return validation.New(data, rules, append(slices.Clip(opts), validation.WithFiles(files))...)
}

// ── helpers ──────────────────────────────────────────────────────────────────

// dotted converts form-input notation to the dotted field name:
// "user[address][city]" → "user.address.city", "tags[]" → "tags".
func dotted(name string) string {
	name = strings.TrimSuffix(name, "[]")
	if !strings.Contains(name, "[") {
		return name
	}
	return strings.NewReplacer("][", ".", "[", ".", "]", "").Replace(name)
}

func flatten(prefix string, v any, out map[string]string) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, child, out)
		}
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, scalar(item))
		}
		out[prefix] = strings.Join(parts, ",")
	default:
		out[prefix] = scalar(t)
	}
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprint(v)
}
