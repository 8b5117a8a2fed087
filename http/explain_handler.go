package http

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"stress-advisor/domain"
	"stress-advisor/service"
)

type ExplainHandler struct {
	service *service.ExplainService
	log     logrus.FieldLogger
}

func NewExplainHandler(service *service.ExplainService, log logrus.FieldLogger) *ExplainHandler {
	return &ExplainHandler{service: service, log: log}
}

func (h *ExplainHandler) Explain(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log := requestLogger(r, h.log)

	var input domain.ExplainRequest
	if err := decodeJSON(w, r, &input); err != nil {
		badRequest(w, log, err)
		return
	}
	if input.Type == "" {
		http.Error(w, "type is required", http.StatusBadRequest)
		return
	}
	if len(input.Facts) > service.MaxFactKeys {
		http.Error(w, fmt.Sprintf("facts may hold at most %d keys", service.MaxFactKeys), http.StatusBadRequest)
		return
	}

	result := h.service.Explain(r.Context(), input.Type, input.Facts)
	writeJSON(w, log, result)
}
