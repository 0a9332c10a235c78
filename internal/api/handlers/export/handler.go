package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/m04kA/SMC-GymBooking/internal/api/handlers"
	"github.com/m04kA/SMC-GymBooking/internal/domain"
)

const (
	msgInvalidParams = "invalid query parameters"

	contentTypeCSV = "text/csv; charset=utf-8"
	contentTypeICS = "text/calendar; charset=utf-8"
)

type Handler struct {
	service      ExportService
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(service ExportService, logger Logger) *Handler {
	return &Handler{
		service:      service,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (h *Handler) WithTimeProvider(tp TimeProvider) *Handler {
	h.timeProvider = tp
	return h
}

// BookingsCSV GET /api/v1/admin/export/bookings.csv
// Query params: from, to (YYYY-MM-DD), slotId (опционально)
func (h *Handler) BookingsCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /admin/export/bookings.csv - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	h.write(w, r, "GET /admin/export/bookings.csv", contentTypeCSV, h.filename("bookings", "csv"),
		func(ctx context.Context, out io.Writer) (int, error) {
			return h.service.WriteBookingsCSV(ctx, out, filter)
		})
}

// BookingsICS GET /api/v1/admin/export/bookings.ics
func (h *Handler) BookingsICS(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /admin/export/bookings.ics - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	h.write(w, r, "GET /admin/export/bookings.ics", contentTypeICS, h.filename("bookings", "ics"),
		func(ctx context.Context, out io.Writer) (int, error) {
			return h.service.WriteBookingsICS(ctx, out, filter)
		})
}

// ClientsCSV GET /api/v1/admin/export/clients.csv
func (h *Handler) ClientsCSV(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, "GET /admin/export/clients.csv", contentTypeCSV, h.filename("clients", "csv"),
		h.service.WriteClientsCSV)
}

// write собирает файл в буфер, чтобы при ошибке вернуть 500 вместо обрезанного файла
func (h *Handler) write(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	contentType string,
	filename string,
	render func(ctx context.Context, out io.Writer) (int, error),
) {
	var buf bytes.Buffer
	rows, err := render(r.Context(), &buf)
	if err != nil {
		h.logger.Error("%s - Failed to export: error=%v", route, err)
		handlers.RespondInternalError(w)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("%s - Failed to write response: %v", route, err)
		return
	}

	h.logger.Info("%s - Export completed: rows=%d", route, rows)
}

func (h *Handler) filename(kind, ext string) string {
	return fmt.Sprintf("fit2fly-%s-%s.%s", kind, h.timeProvider.Now().Format(domain.DateFormat), ext)
}

func parseFilter(query url.Values) (domain.BookingsFilter, error) {
	var (
		filter domain.BookingsFilter
		err    error
	)
	if filter.StartDate, err = handlers.ParseOptionalDate(query.Get("from")); err != nil {
		return filter, err
	}
	if filter.EndDate, err = handlers.ParseOptionalDate(query.Get("to")); err != nil {
		return filter, err
	}
	if filter.SlotID, err = handlers.ParseOptionalID(query.Get("slotId")); err != nil {
		return filter, err
	}
	return filter, nil
}
