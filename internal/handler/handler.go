// Package handler exposes the HTTP API. Handlers decode requests, resolve
// the acting user from the request context and delegate to services,
// returning plain JSON.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/finassist/finassist/internal/calculator"
	"github.com/finassist/finassist/internal/gamification"
	"github.com/finassist/finassist/internal/integrations/rates"
	"github.com/finassist/finassist/internal/middleware"
	"github.com/finassist/finassist/internal/repository"
	"github.com/finassist/finassist/internal/service"
)

// Handler bundles the services behind the HTTP API
type Handler struct {
	auth          *service.AuthService
	expenses      *service.ExpenseService
	budgets       *service.BudgetService
	goals         *service.SavingsGoalService
	dashboard     *service.DashboardService
	notifications *service.NotificationService
	game          *gamification.Engine
	rates         *rates.Client
	log           *logrus.Logger
}

// NewHandler initializes the handler
func NewHandler(
	auth *service.AuthService,
	expenses *service.ExpenseService,
	budgets *service.BudgetService,
	goals *service.SavingsGoalService,
	dashboard *service.DashboardService,
	notifications *service.NotificationService,
	game *gamification.Engine,
	rates *rates.Client,
	log *logrus.Logger,
) *Handler {
	return &Handler{
		auth:          auth,
		expenses:      expenses,
		budgets:       budgets,
		goals:         goals,
		dashboard:     dashboard,
		notifications: notifications,
		game:          game,
		rates:         rates,
		log:           log,
	}
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.auth.Register(req.Username, req.Email, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// KeyRate returns the latest central-bank key rate
func (h *Handler) KeyRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.rates.GetKeyRate()
	if err != nil {
		http.Error(w, "failed to get key rate", http.StatusBadGateway)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]float64{"key_rate": rate})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var validationErr *calculator.ValidationError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.As(err, &validationErr), errors.Is(err, calculator.ErrUnsupportedKind):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.log.Errorf("Internal error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// userID resolves the acting user from the request context
func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "user not authenticated", http.StatusUnauthorized)
		return 0, false
	}
	return id, true
}

// pathID parses the {id} path variable
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
