package khalti

//go:generate go run go.uber.org/mock/mockgen -source=./khalti.go -destination=./mocks/khalti_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"oasis/config"
	"oasis/infras/otel"
	"oasis/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	initiatePath = "/epayment/initiate/"
	lookupPath   = "/epayment/lookup/"

	otelAttrOrderID = "order_id"
	otelAttrPidx    = "pidx"
)

type InitiateRequest struct {
	ReturnURL         string `json:"return_url"`
	WebsiteURL        string `json:"website_url"`
	Amount            int64  `json:"amount"`
	PurchaseOrderID   string `json:"purchase_order_id"`
	PurchaseOrderName string `json:"purchase_order_name"`
}

type InitiateResponse struct {
	Pidx       string `json:"pidx"`
	PaymentURL string `json:"payment_url"`
	ExpiresAt  string `json:"expires_at"`
}

type LookupResponse struct {
	Pidx          string `json:"pidx"`
	TotalAmount   int64  `json:"total_amount"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	Refunded      bool   `json:"refunded"`
}

type gatewayError struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// Khalti is the e-payment gateway client. Initiate registers a payment intent
// and returns the hosted payment page, Lookup reports the settled state of a
// previously initiated transaction.
type Khalti interface {
	Initiate(ctx context.Context, req InitiateRequest) (InitiateResponse, error)
	Lookup(ctx context.Context, pidx string) (LookupResponse, error)
}

type khaltiImpl struct {
	client *http.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) Khalti {
	timeout := time.Duration(cfg.External.Khalti.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &khaltiImpl{
		client: &http.Client{Timeout: timeout},
		cfg:    cfg,
		otel:   ot,
	}
}

func (k *khaltiImpl) Initiate(ctx context.Context, req InitiateRequest) (res InitiateResponse, err error) {
	ctx, scope := k.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".khalti.Initiate")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrOrderID, req.PurchaseOrderID)

	if err = k.post(ctx, initiatePath, req, &res); err != nil {
		log.Error().Err(err).Str("orderID", req.PurchaseOrderID).Msg("failed to initiate khalti payment")

		return res, err
	}

	return res, nil
}

func (k *khaltiImpl) Lookup(ctx context.Context, pidx string) (res LookupResponse, err error) {
	ctx, scope := k.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".khalti.Lookup")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrPidx, pidx)

	req := map[string]string{"pidx": pidx}

	if err = k.post(ctx, lookupPath, req, &res); err != nil {
		log.Error().Err(err).Str("pidx", pidx).Msg("failed to look up khalti payment")

		return res, err
	}

	return res, nil
}

func (k *khaltiImpl) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal khalti request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, k.cfg.External.Khalti.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build khalti request: %w", err)
	}

	request.Header.Set(constant.RequestHeaderAuthorization, "Key "+k.cfg.External.Khalti.SecretKey)
	request.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	resp, err := k.client.Do(request)
	if err != nil {
		return fmt.Errorf("failed to call khalti: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		gwErr := gatewayError{}
		_ = json.NewDecoder(resp.Body).Decode(&gwErr)

		message := gwErr.Detail
		if message == constant.Empty {
			message = gwErr.Message
		}

		if message == constant.Empty {
			message = http.StatusText(resp.StatusCode)
		}

		return fmt.Errorf("khalti returned %d: %s", resp.StatusCode, message)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode khalti response: %w", err)
	}

	return nil
}
