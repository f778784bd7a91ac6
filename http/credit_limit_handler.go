package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"credit-limit/domain"
	"credit-limit/logger"
	"credit-limit/service"
)

type calculateRequest struct {
	MonthlyIncome *float64 `json:"monthly_income" validate:"required"`
	CreditScore   *int     `json:"credit_score" validate:"required"`
}

type calculateResponse struct {
	CreditLimit      string          `json:"credit_limit"`
	MaxCreditLimit   string          `json:"max_credit_limit"`
	AdjustmentFactor float64         `json:"adjustment_factor"`
	RiskBand         domain.RiskBand `json:"risk_band"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"errors,omitempty"`
}

type CreditLimitHandler struct {
	service  *service.CreditLimitService
	validate *validator.Validate
}

func NewCreditLimitHandler(service *service.CreditLimitService) *CreditLimitHandler {
	return &CreditLimitHandler{service: service, validate: validator.New()}
}

func (h *CreditLimitHandler) CalculateCreditLimit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	log := logger.FromContext(r.Context())

	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debug("error decoding request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "invalid request",
			Fields: missingFields(err),
		})
		return
	}

	decision, err := h.service.Evaluate(r.Context(), domain.ApplicantInput{
		MonthlyIncome: *req.MonthlyIncome,
		CreditScore:   *req.CreditScore,
	})
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request", Fields: verr.Fields})
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "credit limit cannot be computed for this input")
		default:
			log.Error("error computing credit limit", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, calculateResponse{
		CreditLimit:      decision.CreditLimit.StringFixed(2),
		MaxCreditLimit:   decision.MaxCreditLimit.StringFixed(2),
		AdjustmentFactor: decision.AdjustmentFactor,
		RiskBand:         decision.RiskBand,
	})
}

func (h *CreditLimitHandler) Bands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, service.Bands())
}

func missingFields(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Field() {
		case "MonthlyIncome":
			fields["monthly_income"] = "This field is required"
		case "CreditScore":
			fields["credit_score"] = "This field is required"
		}
	}
	return fields
}

// writeJSON encodes into a buffer first so a failed encode can still become a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
