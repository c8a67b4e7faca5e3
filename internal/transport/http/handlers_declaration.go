package httptransport

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/content"
	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/suppliers"
	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/validation"
	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/pkg/requestcontext"
)

type questionView struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Label    string `json:"label"`
	Hint     string `json:"hint,omitempty"`
	Optional bool   `json:"optional,omitempty"`
	Answer   any    `json:"answer,omitempty"`
}

type sectionView struct {
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Questions   []questionView `json:"questions"`
	NextSection string         `json:"nextSection,omitempty"`
}

// handleDeclarationSection renders one section of the supplier declaration
// with any previously saved answers filled in.
func (h *Handler) handleDeclarationSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	frameworkSlug := chi.URLParam(r, "framework")
	sectionSlug := chi.URLParam(r, "section")

	builder, section, err := h.declarationSection(ctx, frameworkSlug, sectionSlug)
	if err != nil {
		writeError(w, err)
		return
	}
	declaration, err := h.savedDeclaration(ctx, frameworkSlug)
	if err != nil {
		writeError(w, err)
		return
	}

	view := sectionView{
		Slug:        section.Slug,
		Name:        section.Name,
		Description: section.Description,
	}
	for _, q := range section.Questions {
		view.Questions = append(view.Questions, questionView{
			ID:       q.ID,
			Type:     string(q.Type),
			Label:    q.Label,
			Hint:     q.Hint,
			Optional: q.Optional,
			Answer:   declaration[q.ID],
		})
	}
	if next, ok := builder.NextEditableSectionSlug(section.Slug); ok {
		view.NextSection = next
	}
	writeJSON(w, http.StatusOK, view)
}

// handleDeclarationUpdate merges the posted answers into the saved declaration,
// validates the section, and persists the result when it is clean. Validation
// failures return the rendered messages so the form can be redisplayed.
func (h *Handler) handleDeclarationUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	frameworkSlug := chi.URLParam(r, "framework")
	sectionSlug := chi.URLParam(r, "section")
	supplierID := requestcontext.SupplierID(ctx)

	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed form body"})
		return
	}

	builder, section, err := h.declarationSection(ctx, frameworkSlug, sectionSlug)
	if err != nil {
		writeError(w, err)
		return
	}
	declaration, err := h.savedDeclaration(ctx, frameworkSlug)
	if err != nil {
		writeError(w, err)
		return
	}

	for field, value := range builder.AllData(r.PostForm) {
		declaration[field] = value
	}

	validator, err := validation.ForFramework(frameworkSlug, builder, validation.Answers(declaration))
	if err != nil {
		writeError(w, err)
		return
	}
	errs := validator.ErrorsForSection(section)
	h.metrics.ObserveValidation(errs.Len())

	if errs.Len() > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"errors": validator.MessagesFor(errs),
		})
		return
	}

	if err := h.api.SetSupplierDeclaration(ctx, supplierID, frameworkSlug, declaration, requestcontext.RequestID(ctx)); err != nil {
		writeError(w, err)
		return
	}

	h.logger.Printf("declaration section saved framework=%s section=%s supplier=%d", frameworkSlug, sectionSlug, supplierID)
	body := map[string]any{"status": "saved"}
	if next, ok := builder.NextEditableSectionSlug(section.Slug); ok {
		body["nextSection"] = next
	}
	writeJSON(w, http.StatusOK, body)
}

// declarationSection resolves the declaration builder and section from the
// request-scoped content copy.
func (h *Handler) declarationSection(ctx context.Context, frameworkSlug, sectionSlug string) (*content.Builder, *content.Section, error) {
	repo := requestcontext.Content(ctx)
	if repo == nil {
		repo = content.NewRequestCopy(h.loader)
	}
	builder, err := repo.Get().GetBuilder(frameworkSlug, "declaration")
	if err != nil {
		return nil, nil, err
	}
	section, err := builder.Section(sectionSlug)
	if err != nil {
		return nil, nil, err
	}
	return builder, section, nil
}

// savedDeclaration fetches the supplier's stored answers; a 404 from the Data
// API means the supplier has not started and is treated as an empty set.
func (h *Handler) savedDeclaration(ctx context.Context, frameworkSlug string) (map[string]any, error) {
	supplierID := requestcontext.SupplierID(ctx)
	declaration, err := h.api.GetSupplierDeclaration(ctx, supplierID, frameworkSlug)
	if err != nil {
		var apiErr *suppliers.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return map[string]any{}, nil
		}
		return nil, err
	}
	if declaration == nil {
		declaration = map[string]any{}
	}
	return declaration, nil
}
