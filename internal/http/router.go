package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router uses the standard library http.ServeMux (avoids a third-party
// router dependency).
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterBedRoutes wires the bed data API.
func (r *Router) RegisterBedRoutes(beds *BedHandler, updates *UpdatesHandler, metrics *MetricsHandler) {
	// exact pattern wins over the /beds/ subtree on the mux
	r.Handle("/data/api/v1/beds/updates", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		updates.ServeHTTP(w, req)
	})

	r.Handle("/data/api/v1/beds", beds.ServeHTTP)
	r.Handle("/data/api/v1/beds/", beds.ServeHTTP)

	r.Handle("/data/api/v1/metrics", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		metrics.GetMetrics(w, req)
	})
}

// RegisterAdminRoutes wires the ward listing and report export.
func (r *Router) RegisterAdminRoutes(metrics *MetricsHandler, reports *ReportHandler) {
	r.Handle("/admin/api/v1/wards", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		metrics.ListWards(w, req)
	})

	r.Handle("/admin/api/v1/reports/occupancy", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		reports.ExportOccupancy(w, req)
	})
}

// RegisterHealthRoutes wires the liveness probe.
func (r *Router) RegisterHealthRoutes() {
	r.Handle("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}
