package handler

import (
	"encoding/json"
	"net/http"

	"github.com/finassist/finassist/internal/models"
)

// CreateBudget creates a new budget
func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var budget models.Budget
	if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.budgets.CreateBudget(userID, &budget)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, created)
}

// ListBudgets lists the user's budgets with derived figures
func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	budgets, err := h.budgets.GetUserBudgets(userID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, budgets)
}

// UpdateBudget updates one of the user's budgets
func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	budgetID, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid budget id", http.StatusBadRequest)
		return
	}

	var budget models.Budget
	if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.budgets.UpdateBudget(userID, budgetID, &budget)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, updated)
}

// DeleteBudget removes one of the user's budgets
func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	budgetID, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid budget id", http.StatusBadRequest)
		return
	}

	if err := h.budgets.DeleteBudget(userID, budgetID); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
