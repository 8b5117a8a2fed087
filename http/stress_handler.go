package http

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"stress-advisor/domain"
	"stress-advisor/observability"
	"stress-advisor/service"
)

type StressHandler struct {
	service *service.StressService
	metrics *observability.Metrics
	log     logrus.FieldLogger
}

func NewStressHandler(
	service *service.StressService,
	metrics *observability.Metrics,
	log logrus.FieldLogger,
) *StressHandler {
	return &StressHandler{service: service, metrics: metrics, log: log}
}

func (h *StressHandler) CalculateStress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input domain.MonthlyInputs
	if err := decodeJSON(w, r, &input); err != nil {
		badRequest(w, requestLogger(r, h.log), err)
		return
	}

	result := h.service.CalculateStress(input.Sanitize())
	h.metrics.ObserveStressScore(result.StressScore)

	writeJSON(w, requestLogger(r, h.log), result)
}
