package main

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/km-arc/go-jsvalidation/framework/app"
	gohttp "github.com/km-arc/go-jsvalidation/framework/http"
	"github.com/km-arc/go-jsvalidation/framework/routing"
	"github.com/km-arc/go-jsvalidation/framework/validation"
)

//go:embed resources/views
var resources embed.FS

func main() {
	views, _ := fs.Sub(resources, "resources/views")
	application, err := app.New(app.WithViews(views)) // loads .env automatically
	if err != nil {
		slog.Error("bootstrap failed", slog.Any("error", err))
		os.Exit(1)
	}

	if err := registerRoutes(application, newUserStore("taken@example.com")); err != nil {
		slog.Error("routes", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := application.Run(ctx); err != nil {
		application.Logger().Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
}

// registerRoutes mounts the sign-up page and its form routes.
func registerRoutes(application *app.Application, users *userStore) error {
	jsv, err := application.JsValidator()
	if err != nil {
		return err
	}

	r := application.Router()

	// ── Registration page ────────────────────────────────────────────────────

	r.Get("/register", func(w http.ResponseWriter, req *http.Request) {
		m, err := jsv.FormRequest(RegisterRequest{})
		if err != nil {
			gohttp.NewResponse(w).ServerError()
			return
		}
		script, err := m.Selector("#register").Render(application.Views())
		if err != nil {
			gohttp.NewResponse(w).ServerError()
			return
		}
		application.Views().ViewWithLayout(w, "layout", "register", map[string]any{
			"Title":  "Sign up",
			"Script": script,
		})
	})

	// GET /register/rules, POST /register/validate, POST /register
	r.Form("/register", routing.Form{
		Factory: jsv,
		Request: RegisterRequest{},
		Options: []validation.Option{validation.WithExtension("unique", users.unique)},
		Submit: func(w http.ResponseWriter, req *http.Request) {
			data := routing.Validated(req)
			users.add(data["email"])
			gohttp.NewResponse(w).Created(map[string]any{
				"name":  data["name"],
				"email": data["email"],
			})
		},
	})
	return nil
}

// RegisterRequest is the sign-up form: its rules drive both the client
// script and the server-side check.
type RegisterRequest struct{}

func (RegisterRequest) Rules() any {
	return validation.RuleSet{
		validation.Field("name", "required", "string", "between:2,100"),
		validation.Field("email", "required", "email", "unique:users,email"),
		validation.Field("age", "nullable", "integer", "min:18"),
		validation.Field("password", "required", "confirmed", "min:8"),
		validation.Field("terms", "accepted"),
	}
}

func (RegisterRequest) Messages() map[string]string {
	return map[string]string{
		"email.unique":   "That :attribute is already registered.",
		"terms.accepted": "Please accept the terms.",
	}
}

func (RegisterRequest) Attributes() map[string]string {
	return map[string]string{"email": "e-mail address"}
}

// userStore stands in for the users table behind unique:users.
type userStore struct {
	mu     sync.RWMutex
	emails map[string]bool
}

func newUserStore(emails ...string) *userStore {
	s := &userStore{emails: make(map[string]bool, len(emails))}
	for _, e := range emails {
		s.add(e)
	}
	return s
}

func (s *userStore) unique(_, value string, _ []string, _ map[string]string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.emails[strings.ToLower(value)]
}

func (s *userStore) add(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails[strings.ToLower(email)] = true
}
