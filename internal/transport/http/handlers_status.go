package httptransport

import (
	"net/http"
	"time"
)

// handleStatus is the load balancer probe. It reports the frameworks whose
// content is registered; an empty list means the process came up without any
// content and should be recycled.
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	frameworks := h.loader.Frameworks()
	status := "ok"
	code := http.StatusOK
	if len(frameworks) == 0 {
		status = "no content loaded"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]any{
		"status":     status,
		"frameworks": frameworks,
		"uptime":     time.Since(h.started).Round(time.Second).String(),
	})
}
