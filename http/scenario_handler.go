package http

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"stress-advisor/domain"
	"stress-advisor/service"
)

type ScenarioHandler struct {
	service *service.ScenarioService
	log     logrus.FieldLogger
}

func NewScenarioHandler(service *service.ScenarioService, log logrus.FieldLogger) *ScenarioHandler {
	return &ScenarioHandler{service: service, log: log}
}

func (h *ScenarioHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input domain.ScenarioInput
	if err := decodeJSON(w, r, &input); err != nil {
		badRequest(w, requestLogger(r, h.log), err)
		return
	}

	result := h.service.Simulate(input.Base.Sanitize(), input.Changes.Sanitize())
	writeJSON(w, requestLogger(r, h.log), result)
}
