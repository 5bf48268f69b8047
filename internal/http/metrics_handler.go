package httpapi

import (
	"net/http"

	"bedboard/internal/service"

	"go.uber.org/zap"
)

// MetricsHandler serves the aggregate occupancy view and the ward listing.
// Read-only; everything here is derived from one snapshot read.
type MetricsHandler struct {
	ledger *service.LedgerService
	logger *zap.Logger
}

func NewMetricsHandler(ledger *service.LedgerService, logger *zap.Logger) *MetricsHandler {
	return &MetricsHandler{
		ledger: ledger,
		logger: logger,
	}
}

// GetMetrics returns counts by status, globally and per ward, plus the
// occupancy rate.
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.ledger.Metrics(r.Context())
	if err != nil {
		h.logger.Error("metrics aggregation failed", zap.Error(err))
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(metrics))
}

// ListWards returns the ward structure.
func (h *MetricsHandler) ListWards(w http.ResponseWriter, r *http.Request) {
	wards, err := h.ledger.ListWards(r.Context())
	if err != nil {
		h.logger.Error("list wards failed", zap.Error(err))
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(wards))
}
