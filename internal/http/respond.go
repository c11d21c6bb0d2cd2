package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fjod/cozy_storefront/internal/catalog"
	"github.com/fjod/cozy_storefront/internal/orders"
	"github.com/fjod/cozy_storefront/internal/service"
	"github.com/fjod/cozy_storefront/pkg/logger"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// errorKind maps service errors to a status and a stable error code.
func errorKind(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusUnprocessableEntity, "validation_failed"
	case errors.Is(err, service.ErrSubmissionFailed):
		return http.StatusBadGateway, "submission_failed"
	case errors.Is(err, service.ErrSubmissionInFlight):
		return http.StatusConflict, "submission_in_flight"
	case errors.Is(err, service.ErrIllegalTransition):
		return http.StatusConflict, "illegal_transition"
	case errors.Is(err, service.ErrCheckoutCompleted):
		return http.StatusConflict, "checkout_completed"
	case errors.Is(err, service.ErrNotCompleted):
		return http.StatusConflict, "checkout_not_completed"
	case errors.Is(err, service.ErrInvalidProduct):
		return http.StatusBadRequest, "invalid_product_id"
	case errors.Is(err, catalog.ErrProductNotFound), errors.Is(err, orders.ErrOrderNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// handleServiceError writes err as an ErrorResponse. Only messages meant
// for the customer are passed through; anything unexpected is logged and
// reported generically.
func handleServiceError(ctx context.Context, w http.ResponseWriter, log *zap.Logger, err error) {
	status, code := errorKind(err)
	resp := ErrorResponse{Code: code, Error: err.Error()}

	var verr *service.ValidationError
	var serr *service.SubmissionError
	switch {
	case errors.As(err, &verr):
		resp.Field = verr.Field
		resp.Error = verr.Message
	case errors.As(err, &serr):
		resp.Error = serr.Message
	case status >= http.StatusInternalServerError:
		logger.WithContext(ctx, log).Error("request failed", zap.Error(err))
		resp.Error = "internal server error"
	}
	respondJSON(w, status, resp)
}
