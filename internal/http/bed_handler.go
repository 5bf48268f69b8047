package httpapi

import (
	"net/http"
	"strings"

	"bedboard/internal/domain"
	"bedboard/internal/service"

	"go.uber.org/zap"
)

const bedsPrefix = "/data/api/v1/beds"

// BedHandler serves the bed listing, booking and status-change endpoints.
type BedHandler struct {
	ledger *service.LedgerService
	logger *zap.Logger
}

func NewBedHandler(ledger *service.LedgerService, logger *zap.Logger) *BedHandler {
	return &BedHandler{
		ledger: ledger,
		logger: logger,
	}
}

// ServeHTTP implements http.Handler.
func (h *BedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == bedsPrefix && r.Method == http.MethodGet:
		h.ListBeds(w, r)
	case strings.HasSuffix(r.URL.Path, "/book") && r.Method == http.MethodPost:
		h.BookBed(w, r)
	case strings.HasSuffix(r.URL.Path, "/status") && r.Method == http.MethodPatch:
		h.SetStatus(w, r)
	case strings.HasPrefix(r.URL.Path, bedsPrefix+"/") && r.Method == http.MethodGet:
		h.GetBed(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// bedIDFromPath extracts {id} from /data/api/v1/beds/{id}[/suffix].
func bedIDFromPath(path, suffix string) string {
	rest := strings.TrimPrefix(path, bedsPrefix+"/")
	rest = strings.TrimSuffix(rest, suffix)
	rest = strings.TrimSuffix(rest, "/")
	if rest == "" || strings.Contains(rest, "/") {
		return ""
	}
	return rest
}

// ListBeds returns the current snapshot, with optional ward_id / status
// query filters.
func (h *BedHandler) ListBeds(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	wardID := r.URL.Query().Get("ward_id")
	status := r.URL.Query().Get("status")

	beds, err := h.ledger.List(ctx, wardID, status)
	if err != nil {
		h.logger.Error("list beds failed", zap.Error(err))
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(beds))
}

// GetBed returns one bed by id.
func (h *BedHandler) GetBed(w http.ResponseWriter, r *http.Request) {
	bedID := bedIDFromPath(r.URL.Path, "")
	if bedID == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	bed, err := h.ledger.Bed(r.Context(), bedID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(bed))
}

type bookBedRequest struct {
	PatientName   string `json:"patientName"`
	Age           int    `json:"age"`
	Contact       string `json:"contact"`
	MedicalReason string `json:"medicalReason"`
}

// BookBed reserves an available bed for a patient.
// 404 unknown bed, 409 already booked, 400 missing patient fields.
func (h *BedHandler) BookBed(w http.ResponseWriter, r *http.Request) {
	bedID := bedIDFromPath(r.URL.Path, "/book")
	if bedID == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var req bookBedRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	patient := &domain.Patient{
		Name:          req.PatientName,
		Age:           req.Age,
		Contact:       req.Contact,
		MedicalReason: req.MedicalReason,
	}
	bed, err := h.ledger.Book(r.Context(), bedID, patient)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(bed))
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus applies an administrative status change.
// Unrecognized status values are rejected before any store access.
func (h *BedHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	bedID := bedIDFromPath(r.URL.Path, "/status")
	if bedID == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var req setStatusRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	bed, err := h.ledger.SetStatus(r.Context(), bedID, req.Status)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(bed))
}
