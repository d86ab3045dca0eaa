package settings

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/till/internal/http/respond"
	"github.com/MrJamesThe3rd/till/internal/settings"
)

type Handler struct {
	svc *settings.Service
}

func NewHandler(svc *settings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/settings", h.list)
	r.Put("/settings/{key}", h.set)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.All(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]settingResponse, len(all))
	for i, st := range all {
		resp[i] = toResponse(st)
	}

	respond.JSON(w, http.StatusOK, resp)
}

// setRequest takes the value as a JSON string or a bare number.
type setRequest struct {
	Value json.RawMessage `json:"value"`
}

func (req setRequest) text() (string, bool) {
	raw := bytes.TrimSpace(req.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}

		return s, true
	}

	return string(raw), true
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body: "+err.Error())
		return
	}

	value, ok := req.text()
	if !ok {
		respond.BadRequest(w, "value is required")
		return
	}

	key := settings.Key(chi.URLParam(r, "key"))

	stored, err := h.svc.Set(r.Context(), key, value)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, settingResponse{Key: key, Value: stored})
}
