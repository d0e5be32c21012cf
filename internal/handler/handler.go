package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/honeynil/TokenWalletPayments/internal/infrastructure/auth"
	service "github.com/honeynil/TokenWalletPayments/internal/services"
	pkgerrors "github.com/honeynil/TokenWalletPayments/pkg/errors"
)

const (
	allowOrigin  = "*"
	allowHeaders = "authorization, x-client-info, apikey, content-type"
)

type Handler struct {
	service service.PaymentService
}

func NewHandler(s service.PaymentService) *Handler {
	return &Handler{service: s}
}

type errorResponse struct {
	Error string `json:"error"`
}

type verifyRequest struct {
	ClientSecret string `json:"clientSecret"`
}

// writeError answers every failure with 400; clients tell errors apart by message only.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(CORS)
	r.HandleFunc("/create-payment-intent", h.CreatePaymentIntent).Methods(http.MethodPost)
	r.HandleFunc("/create-payment-intent", Preflight).Methods(http.MethodOptions)
	r.HandleFunc("/verify-payment", h.VerifyPayment).Methods(http.MethodPost)
	r.HandleFunc("/verify-payment", Preflight).Methods(http.MethodOptions)
	r.HandleFunc("/healthz", Healthz).Methods(http.MethodGet)

	// mux skips router middleware when no route matches, so these carry CORS themselves.
	r.MethodNotAllowedHandler = CORS(http.HandlerFunc(h.methodNotAllowed))
	r.NotFoundHandler = CORS(http.HandlerFunc(h.notFound))
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	slog.Warn("method not allowed", "method", r.Method, "path", r.URL.Path)
	h.writeError(w, pkgerrors.ErrMethodNotAllowed)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	slog.Warn("route not found", "method", r.Method, "path", r.URL.Path)
	h.writeError(w, pkgerrors.ErrRouteNotFound)
}

// CORS sets the cross-origin headers browsers need to call the payment endpoints.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		w.Header().Set("Access-Control-Allow-Headers", allowHeaders)
		next.ServeHTTP(w, r)
	})
}

func Preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (h *Handler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	token, ok := auth.BearerToken(r)
	if !ok {
		h.writeError(w, pkgerrors.ErrMissingCredential)
		return
	}

	var req service.CreateIntentInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("failed to decode create intent request", "error", err)
		h.writeError(w, err)
		return
	}

	res, err := h.service.CreateIntent(r.Context(), token, req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	token, ok := auth.BearerToken(r)
	if !ok {
		h.writeError(w, pkgerrors.ErrMissingCredential)
		return
	}

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("failed to decode verify request", "error", err)
		h.writeError(w, err)
		return
	}

	res, err := h.service.VerifyPayment(r.Context(), token, req.ClientSecret)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}
