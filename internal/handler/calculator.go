package handler

import (
	"encoding/json"
	"net/http"

	"github.com/finassist/finassist/internal/calculator"
	"github.com/finassist/finassist/internal/models"
)

// Calculate runs one of the financial calculators
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.userID(w, r); !ok {
		return
	}

	var req models.CalculatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := calculator.Calculate(req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}
