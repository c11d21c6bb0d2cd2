package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fjod/cozy_storefront/internal/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// HTTPClient posts orders to a remote order API at <baseURL>/orders.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

func (c *HTTPClient) Submit(ctx context.Context, payload domain.OrderPayload) (*domain.SubmitResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read order response: %w", err)
	}

	var result domain.SubmitResult
	decodeErr := json.Unmarshal(raw, &result)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("order api rejected request",
			zap.Int("status", resp.StatusCode),
			zap.String("error", result.Error),
			zap.String("message", result.Message))
		return nil, &RejectionError{Status: resp.StatusCode, Message: rejectionMessage(result)}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, decodeErr)
	}
	if !result.Success {
		return nil, &RejectionError{Status: resp.StatusCode, Message: rejectionMessage(result)}
	}
	return &result, nil
}

func rejectionMessage(r domain.SubmitResult) string {
	if r.Error != "" {
		return r.Error
	}
	return r.Message
}
