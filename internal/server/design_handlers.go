package server

import (
	"encoding/json"
	"net/http"

	"github.com/dgellow/canva-front/internal/canva"
	"github.com/dgellow/canva-front/internal/jsonwriter"
	"github.com/dgellow/canva-front/internal/log"
)

// ListDesignsHandler proxies a design search to the Connect API.
func (h *Handlers) ListDesignsHandler(w http.ResponseWriter, r *http.Request) {
	token := accessTokenFromContext(r.Context())

	resp, err := h.canva.ListDesigns(r.Context(), token, r.URL.Query().Get("q"))
	if err != nil {
		log.LogError("Failed to list designs: %v", err)
		jsonwriter.WriteUpstreamUnreachable(w)
		return
	}
	writeUpstream(w, resp)
}

// GetDesignHandler proxies a design fetch by ID.
func (h *Handlers) GetDesignHandler(w http.ResponseWriter, r *http.Request) {
	token := accessTokenFromContext(r.Context())

	resp, err := h.canva.GetDesign(r.Context(), token, r.PathValue("id"))
	if err != nil {
		log.LogError("Failed to get design: %v", err)
		jsonwriter.WriteUpstreamUnreachable(w)
		return
	}
	writeUpstream(w, resp)
}

type importURLRequest struct {
	FileURL string `json:"fileUrl"`
}

// ImportURLHandler proxies a design import from a publicly reachable file URL.
func (h *Handlers) ImportURLHandler(w http.ResponseWriter, r *http.Request) {
	var req importURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FileURL == "" {
		jsonwriter.WriteBadRequest(w, jsonwriter.ErrMissingParameter, "fileUrl is required")
		return
	}

	token := accessTokenFromContext(r.Context())

	resp, err := h.canva.ImportFromURL(r.Context(), token, req.FileURL)
	if err != nil {
		log.LogError("Failed to import design from URL: %v", err)
		jsonwriter.WriteUpstreamUnreachable(w)
		return
	}
	writeUpstream(w, resp)
}

// writeUpstream passes an upstream response through verbatim: same status,
// same body.
func writeUpstream(w http.ResponseWriter, resp *canva.Response) {
	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(resp.Body)
}
