package httptransport

import (
	"net/http"
	"path"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/pkg/requestcontext"
)

const signedURLExpiry = 30 * time.Minute

type fileView struct {
	Name         string `json:"name"`
	Key          string `json:"key"`
	Size         int64  `json:"size"`
	LastModified string `json:"lastModified"`
	URL          string `json:"url"`
}

// handleFrameworkFiles lists the documents published for a framework, such as
// the agreement and result letters, with signed download URLs.
func (h *Handler) handleFrameworkFiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	frameworkSlug := chi.URLParam(r, "framework")

	framework, err := h.api.GetFramework(ctx, frameworkSlug)
	if err != nil {
		writeError(w, err)
		return
	}

	objects, err := h.documents.ListKeys(ctx, frameworkSlug+"/communications/")
	if err != nil {
		writeError(w, err)
		return
	}

	files := make([]fileView, 0, len(objects))
	for _, obj := range objects {
		url, err := h.documents.SignedURL(ctx, obj.Key, signedURLExpiry)
		if err != nil {
			writeError(w, err)
			return
		}
		files = append(files, fileView{
			Name:         path.Base(obj.Key),
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified.UTC().Format(time.RFC3339),
			URL:          url,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"framework": framework.Name,
		"files":     files,
	})
}

// handleDraftServices lists the supplier's draft services for a framework.
func (h *Handler) handleDraftServices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	frameworkSlug := chi.URLParam(r, "framework")
	supplierID := requestcontext.SupplierID(ctx)

	services, err := h.api.FindDraftServices(ctx, supplierID, frameworkSlug)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": services})
}
