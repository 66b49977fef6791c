package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jomei/notionapi"
	"github.com/rs/zerolog"

	"github.com/codenuga/ledger-api/internal/ledger"
	"github.com/codenuga/ledger-api/internal/notion"
)

// PagesHandler serves the raw page-property endpoints under /notion.
type PagesHandler struct {
	store notion.Store
	log   zerolog.Logger
}

// NewPagesHandler creates the /notion handler.
func NewPagesHandler(store notion.Store, log zerolog.Logger) *PagesHandler {
	return &PagesHandler{
		store: store,
		log:   log,
	}
}

// Register mounts every /notion route on the mux.
func (h *PagesHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/notion/get-property", postOnly(h.GetProperty))
	mux.HandleFunc("/notion/update-property", postOnly(h.UpdateProperty))
	mux.HandleFunc("/notion/extract-page-id", postOnly(h.ExtractPageID))
}

type propertyRequest struct {
	PageID        string      `json:"pageId"`
	PropertyName  string      `json:"propertyName"`
	PropertyValue interface{} `json:"propertyValue"`
	Format        string      `json:"format"`
}

type urlRequest struct {
	URL    string `json:"url"`
	Format string `json:"format"`
}

// GetProperty handles POST /notion/get-property
func (h *PagesHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if !decode(w, r, &req) {
		return
	}
	if req.PageID == "" || req.PropertyName == "" {
		RespondError(w, req.Format, errors.New("pageId와 propertyName이 필요합니다."))
		return
	}

	page, err := h.store.GetPage(r.Context(), req.PageID)
	if err != nil {
		h.log.Error().Err(err).Str("page_id", req.PageID).Msg("Failed to read page")
		RespondError(w, req.Format, err)
		return
	}

	prop, ok := page.Properties[req.PropertyName]
	if !ok {
		RespondError(w, req.Format, fmt.Errorf("property %q not found", req.PropertyName))
		return
	}

	typ, value := notion.PropertyPayload(prop)
	Respond(w, req.Format, ledger.PropertyResult{
		Success: true,
		Type:    typ,
		Value:   value,
	})
}

// UpdateProperty handles POST /notion/update-property
func (h *PagesHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if !decode(w, r, &req) {
		return
	}
	if req.PageID == "" || req.PropertyName == "" || req.PropertyValue == nil {
		RespondError(w, req.Format, errors.New("pageId, propertyName과 propertyValue가 필요합니다."))
		return
	}

	prop := notion.CoerceValue(req.PropertyValue)
	if prop == nil {
		RespondError(w, req.Format, fmt.Errorf("unsupported value type %T", req.PropertyValue))
		return
	}

	if _, err := h.store.UpdatePage(r.Context(), req.PageID, notionapi.Properties{
		req.PropertyName: prop,
	}); err != nil {
		h.log.Error().Err(err).Str("page_id", req.PageID).Msg("Failed to update property")
		RespondError(w, req.Format, err)
		return
	}

	Respond(w, req.Format, ledger.AckResult{Success: true})
}

// ExtractPageID handles POST /notion/extract-page-id
func (h *PagesHandler) ExtractPageID(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if !decode(w, r, &req) {
		return
	}
	if req.URL == "" {
		RespondError(w, req.Format, errors.New("URL이 필요합니다."))
		return
	}

	pageID, err := notion.ExtractPageID(req.URL)
	if err != nil {
		RespondError(w, req.Format, err)
		return
	}

	Respond(w, req.Format, ledger.PageIDResult{Success: true, PageID: pageID})
}
