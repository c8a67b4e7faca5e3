// Package httptransport is the thin HTTP layer. It delegates to the content,
// validation, and suppliers packages without embedding business logic so
// transport concerns remain isolated.
package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/content"
	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/objectstore"
	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/platform/metrics"
	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/suppliers"
)

// DataAPI is the slice of the Data API client that the handlers need. Tests
// substitute a fake.
type DataAPI interface {
	GetFramework(ctx context.Context, slug string) (*suppliers.Framework, error)
	GetSupplierDeclaration(ctx context.Context, supplierID int, frameworkSlug string) (map[string]any, error)
	SetSupplierDeclaration(ctx context.Context, supplierID int, frameworkSlug string, declaration map[string]any, updatedBy string) error
	FindDraftServices(ctx context.Context, supplierID int, frameworkSlug string) ([]suppliers.DraftService, error)
}

// Handler carries the dependencies shared by all routes.
type Handler struct {
	logger    *log.Logger
	metrics   *metrics.Metrics
	loader    *content.Loader
	api       DataAPI
	documents objectstore.Lister
	started   time.Time
}

func NewHandler(logger *log.Logger, m *metrics.Metrics, loader *content.Loader, api DataAPI, documents objectstore.Lister) *Handler {
	return &Handler{
		logger:    logger,
		metrics:   m,
		loader:    loader,
		api:       api,
		documents: documents,
		started:   time.Now(),
	}
}

// NewRouter wires all public endpoints behind the request-scoping middleware.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(withRequestID)
	r.Use(h.withContentCopy)

	r.Get("/_status", h.handleStatus)

	r.Route("/suppliers/frameworks/{framework}", func(r chi.Router) {
		r.Use(requireSupplier)
		r.Get("/declaration/{section}", h.handleDeclarationSection)
		r.Post("/declaration/{section}", h.handleDeclarationUpdate)
		r.Get("/files", h.handleFrameworkFiles)
		r.Get("/services", h.handleDraftServices)
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError centralizes error translation to HTTP responses. Data API status
// codes pass through uninterpreted; missing content maps to 404.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var apiErr *suppliers.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.StatusCode
	case errors.Is(err, content.ErrContentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, content.ErrQuestionNotFound):
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
