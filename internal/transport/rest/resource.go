package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/query"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/record"
	"github.com/heartmarshall/temple-api/internal/domain"
)

// Store is the repository surface a Resource serves.
type Store[T any, K record.ID] interface {
	ParseID(raw string) (K, error)
	List(ctx context.Context, p query.ListParams) (record.Page[T], error)
	GetByID(ctx context.Context, id K) (T, error)
	GetBy(ctx context.Context, column, raw string) (T, error)
	ListBy(ctx context.Context, column, raw string) ([]T, error)
	Create(ctx context.Context, in domain.Input) (T, error)
	Update(ctx context.Context, id K, in domain.Input) (T, error)
	Delete(ctx context.Context, id K) error
}

// Lookup is an alternate read route: GET /by-<Path>/{value}.
type Lookup struct {
	Path   string
	Column string
	// Many returns every match instead of the first.
	Many bool
}

// Resource serves CRUD routes for one entity. C and U are the create and
// patch bodies.
type Resource[T any, K record.ID, C, U domain.Input] struct {
	name    string
	store   Store[T, K]
	lookups []Lookup
	log     *slog.Logger
}

// NewResource creates a Resource. name is used in response messages.
func NewResource[T any, K record.ID, C, U domain.Input](
	name string, store Store[T, K], logger *slog.Logger, lookups ...Lookup,
) *Resource[T, K, C, U] {
	return &Resource[T, K, C, U]{
		name:    name,
		store:   store,
		lookups: lookups,
		log:     logger.With("handler", name),
	}
}

// Routes registers the resource's routes on r.
func (h *Resource[T, K, C, U]) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	for _, l := range h.lookups {
		r.Get("/by-"+l.Path+"/{value}", h.lookup(l))
	}
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// List handles GET /.
func (h *Resource[T, K, C, U]) List(w http.ResponseWriter, r *http.Request) {
	params, err := query.ParseQuery(r.URL.RawQuery)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	page, err := h.store.List(r.Context(), params)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, OKWithMeta(page.Items, Meta{
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}))
}

// Get handles GET /{id}.
func (h *Resource[T, K, C, U]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.store.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	row, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, OK(row))
}

func (h *Resource[T, K, C, U]) lookup(l Lookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value := chi.URLParam(r, "value")

		var (
			data any
			err  error
		)
		if l.Many {
			data, err = h.store.ListBy(r.Context(), l.Column, value)
		} else {
			data, err = h.store.GetBy(r.Context(), l.Column, value)
		}
		if err != nil {
			handleError(w, r, h.log, err)
			return
		}

		writeJSON(w, http.StatusOK, OK(data))
	}
}

// Create handles POST /.
func (h *Resource[T, K, C, U]) Create(w http.ResponseWriter, r *http.Request) {
	var in C
	if err := decodeBody(w, r, &in); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	row, err := h.store.Create(r.Context(), in)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, OKWithMessage(row, h.name+" created successfully"))
}

// Update handles PATCH /{id}.
func (h *Resource[T, K, C, U]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.store.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var in U
	if err := decodeBody(w, r, &in); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	row, err := h.store.Update(r.Context(), id, in)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, OKWithMessage(row, h.name+" updated successfully"))
}

// Delete handles DELETE /{id}.
func (h *Resource[T, K, C, U]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.store.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, OKWithMessage(nil, h.name+" deleted successfully"))
}
