// Package handler exposes the ledger over HTTP
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/chucky-1/uangjajan/internal/model"
	"github.com/chucky-1/uangjajan/internal/repository"
	"github.com/chucky-1/uangjajan/internal/service"
)

type Ledger interface {
	List(ctx context.Context) ([]model.Entry, error)
	Get(ctx context.Context, id string) (*model.Entry, error)
	Create(ctx context.Context, input *model.EntryInput) (*model.Entry, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context) (*model.Summary, error)
}

type Entries struct {
	ledger Ledger
}

func NewEntries(ledger Ledger) *Entries {
	return &Entries{
		ledger: ledger,
	}
}

// Router wires the entry routes behind CORS and request logging
func (e *Entries) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/entries", func(r chi.Router) {
		r.Get("/", e.list)
		r.Post("/", e.create)
		r.Get("/summary", e.summary)
		r.Get("/{id}", e.get)
		r.Delete("/{id}", e.delete)
	})
	return r
}

func (e *Entries) list(w http.ResponseWriter, r *http.Request) {
	entries, err := e.ledger.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (e *Entries) get(w http.ResponseWriter, r *http.Request) {
	entry, err := e.ledger.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (e *Entries) create(w http.ResponseWriter, r *http.Request) {
	var input model.EntryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		logrus.Debugf("create entry, couldn't decode body: %v", err)
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "incomplete data"})
		return
	}
	entry, err := e.ledger.Create(r.Context(), &input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (e *Entries) delete(w http.ResponseWriter, r *http.Request) {
	if err := e.ledger.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (e *Entries) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := e.ledger.Summary(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: validationErr.Error()})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "entry not found"})
	case errors.Is(err, repository.ErrConstraint):
		logrus.Warnf("%s %s: %v", r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "entry violates storage constraint"})
	case errors.Is(err, repository.ErrUnavailable):
		logrus.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "storage unavailable"})
	default:
		logrus.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Errorf("handler couldn't encode response: %v", err)
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start),
		}).Info("http request")
	})
}
