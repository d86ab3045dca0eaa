package report

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/till/internal/http/respond"
	"github.com/MrJamesThe3rd/till/internal/report"
)

// DayParser resolves the date query parameter to a business day.
type DayParser interface {
	ParseDay(v string) (time.Time, error)
}

type Handler struct {
	svc  *report.Service
	days DayParser
}

func NewHandler(svc *report.Service, days DayParser) *Handler {
	return &Handler{svc: svc, days: days}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/reports/daily", h.daily)
}

func (h *Handler) daily(w http.ResponseWriter, r *http.Request) {
	date, err := h.days.ParseDay(r.URL.Query().Get("date"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	daily, err := h.svc.Daily(r.Context(), date)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := daily.WriteXLSX(&buf); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", daily.Filename()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write report", "date", daily.Date.Format(time.DateOnly), "error", err)
	}
}
