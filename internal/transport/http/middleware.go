package httptransport

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/content"
	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/pkg/requestcontext"
)

const supplierIDHeader = "X-Supplier-Id"

// withRequestID assigns each request a UUID, honouring one supplied upstream.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withContentCopy installs a lazily materialised copy of the content loader so
// every read within one request sees the same content, isolated from other
// requests.
func (h *Handler) withContentCopy(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithContent(r.Context(), content.NewRequestCopy(h.loader))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireSupplier reads the supplier identity set by the authenticating proxy.
func requireSupplier(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		supplierID, err := strconv.Atoi(r.Header.Get(supplierIDHeader))
		if err != nil || supplierID <= 0 {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "supplier identity required"})
			return
		}
		ctx := requestcontext.WithSupplierID(r.Context(), supplierID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
