package routing

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	gohttp "github.com/km-arc/go-jsvalidation/framework/http"
	"github.com/km-arc/go-jsvalidation/framework/jsvalidation"
	"github.com/km-arc/go-jsvalidation/framework/validation"
)

// Router wraps chi.Router with Laravel-style helpers.
type Router struct {
	mux chi.Router
}

// New creates a Router with sane defaults (RequestID, RealIP, request
// logging through logger, Recoverer). A nil logger uses slog.Default().
func New(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(logger.Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	return &Router{mux: r}
}

// ── HTTP verbs ───────────────────────────────────────────────────────────────

func (r *Router) Get(pattern string, h http.HandlerFunc)    { r.mux.Get(pattern, h) }
func (r *Router) Post(pattern string, h http.HandlerFunc)   { r.mux.Post(pattern, h) }
func (r *Router) Put(pattern string, h http.HandlerFunc)    { r.mux.Put(pattern, h) }
func (r *Router) Patch(pattern string, h http.HandlerFunc)  { r.mux.Patch(pattern, h) }
func (r *Router) Delete(pattern string, h http.HandlerFunc) { r.mux.Delete(pattern, h) }

// ── Groups & Prefixes ────────────────────────────────────────────────────────

// Group creates an inline group: Laravel: Route::group([], fn)
func (r *Router) Group(fn func(r *Router)) {
	r.mux.Group(func(mx chi.Router) {
		fn(&Router{mux: mx})
	})
}

// Prefix creates a sub-router with a URL prefix: Laravel: Route::prefix('/api')
func (r *Router) Prefix(pattern string, fn func(r *Router)) {
	r.mux.Route(pattern, func(mx chi.Router) {
		fn(&Router{mux: mx})
	})
}

// ── Middleware ───────────────────────────────────────────────────────────────

// Middleware adds one or more middleware to the router.
func (r *Router) Middleware(mw ...func(http.Handler) http.Handler) {
	r.mux.Use(mw...)
}

// ── Form routes ──────────────────────────────────────────────────────────────

// Form describes a form request served with client-side validation.
type Form struct {
	Factory *jsvalidation.Factory
	Request jsvalidation.FormRequest
	// Options apply to server-side validation only (extensions such as
	// unique, fallback messages).
	Options []validation.Option
	// Submit runs once the posted input validates. Validated(r) returns
	// the input.
	Submit http.HandlerFunc
}

// Form registers the routes of a validated form:
//
//	GET  {pattern}/rules     → client rules view data (?selector=#id)
//	POST {pattern}/validate  → remote validation of one field
//	POST {pattern}           → full validation, 422 or Submit
func (r *Router) Form(pattern string, f Form) {
	r.mux.Get(pattern+"/rules", func(w http.ResponseWriter, req *http.Request) {
		res := gohttp.NewResponse(w)
		m, err := f.Factory.FormRequest(f.Request)
		if err != nil {
			res.ServerError()
			return
		}
		res.JSON(http.StatusOK, m.Selector(req.URL.Query().Get("selector")).ValidationData())
	})

	r.mux.Post(pattern+"/validate", gohttp.RemoteValidation(f.Request.Rules(), f.options()...))

	r.mux.Post(pattern, func(w http.ResponseWriter, req *http.Request) {
		in, res := gohttp.NewRequest(req), gohttp.NewResponse(w)
		v, err := in.Validate(f.Request.Rules(), f.options()...)
		if err != nil {
			res.BadRequest(err.Error())
			return
		}
		if v.Fails() {
			res.ValidationError(v.Errors())
			return
		}
		if f.Submit == nil {
			res.NoContent()
			return
		}
		data, _ := in.All()
		f.Submit(w, req.WithContext(context.WithValue(req.Context(), validatedKey{}, data)))
	})
}

func (f Form) options() []validation.Option {
	opts := []validation.Option{
		validation.WithMessages(f.Request.Messages()),
		validation.WithAttributes(f.Request.Attributes()),
	}
	return append(opts, f.Options...)
}

type validatedKey struct{}

// Validated returns the input that passed validation in a Form's Submit.
func Validated(r *http.Request) map[string]string {
	data, _ := r.Context().Value(validatedKey{}).(map[string]string)
	return data
}

// ── Static files ─────────────────────────────────────────────────────────────

// Static serves a filesystem at the given prefix.
// e.g. router.Static("/public", "./public")
func (r *Router) Static(prefix string, fsys http.FileSystem) {
	fs := http.StripPrefix(prefix, http.FileServer(fsys))
	r.mux.Get(prefix+"/*", func(w http.ResponseWriter, req *http.Request) {
		fs.ServeHTTP(w, req)
	})
}

// ── Params ───────────────────────────────────────────────────────────────────

// Param extracts a URL param, equivalent to $request->route('id')
func Param(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// ── Serve ────────────────────────────────────────────────────────────────────

// ServeHTTP implements http.Handler so Router can be passed to http.ListenAndServe.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Handler returns the underlying http.Handler (for testing etc.).
func (r *Router) Handler() http.Handler {
	return r.mux
}
