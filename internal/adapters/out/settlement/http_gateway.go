// Package settlement provides SettlementGateway implementations: an HTTP
// client for a real payment provider and a local simulator for development
// and tests.
package settlement

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"mediflow/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

type settleRequest struct {
	OrderID string          `json:"order_id"`
	Amount  decimal.Decimal `json:"amount"`
	Method  string          `json:"method"`
}

type settleResponse struct {
	TransactionRef string `json:"transaction_ref"`
	Status         string `json:"status"`
}

// HTTPGateway settles payments against an external provider over HTTP.
type HTTPGateway struct {
	client  *http.Client
	baseURL string
}

// NewHTTPGateway creates a gateway for the provider at baseURL.
func NewHTTPGateway(baseURL string) *HTTPGateway {
	return &HTTPGateway{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
}

// Settle charges the given amount for the order.
func (g *HTTPGateway) Settle(
	ctx context.Context,
	orderID kernel.UUID,
	amount decimal.Decimal,
	method string,
) (string, error) {
	body, err := json.Marshal(settleRequest{
		OrderID: orderID.String(),
		Amount:  amount,
		Method:  method,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/settlements", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("settlement declined: %s", res.Status)
	}

	var payload settleResponse
	if err = json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.Status != "approved" {
		return "", fmt.Errorf("settlement declined: %s", payload.Status)
	}

	return payload.TransactionRef, nil
}
