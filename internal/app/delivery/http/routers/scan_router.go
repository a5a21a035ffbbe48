package routers

import (
	"chartscan-service/internal/app/services/core/scan"

	"github.com/go-chi/chi/v5"
)

func attachScanRoutes(router chi.Router, scanController *scan.ScanController) {
	router.Post("/", scanController.FindCompletePatients)
}
