package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"bedboard/internal/service"

	"go.uber.org/zap"
)

// ReportHandler serves the occupancy report download.
type ReportHandler struct {
	ledger *service.LedgerService
	logger *zap.Logger
}

func NewReportHandler(ledger *service.LedgerService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		ledger: ledger,
		logger: logger,
	}
}

// ExportOccupancy streams the current snapshot as an .xlsx attachment.
func (h *ReportHandler) ExportOccupancy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	beds, err := h.ledger.Snapshot(ctx)
	if err != nil {
		h.logger.Error("occupancy export snapshot failed", zap.Error(err))
		writeLedgerError(w, err)
		return
	}
	metrics, err := h.ledger.Metrics(ctx)
	if err != nil {
		h.logger.Error("occupancy export metrics failed", zap.Error(err))
		writeLedgerError(w, err)
		return
	}

	data, err := GenerateOccupancyReport(beds, metrics)
	if err != nil {
		h.logger.Error("occupancy report generation failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to generate report"))
		return
	}

	filename := fmt.Sprintf("occupancy-%s.xlsx", time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
