package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hiyoshi/pos-register/internal/application/ports"
	domainErrors "github.com/hiyoshi/pos-register/internal/domain/errors"
	"github.com/hiyoshi/pos-register/internal/domain/register"
	"github.com/hiyoshi/pos-register/internal/infrastructure/monitoring"
	"github.com/hiyoshi/pos-register/internal/pkg/logger"
)

// Client consumes the catalog/ledger backend over its REST contract. It
// implements both ports.CatalogClient and ports.TransactionLedger. No
// caching and no retries: every call is a fresh round-trip.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

type productResponse struct {
	ProductID string `json:"productId"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
}

type transactionRequest struct {
	DateTime     string `json:"dateTime"`
	EmployeeCode string `json:"employeeCode"`
	StoreCode    string `json:"storeCode"`
	PosNumber    int    `json:"posNumber"`
	TotalAmount  int64  `json:"totalAmount"`
}

type transactionResponse struct {
	TransactionID string `json:"transactionId"`
	TotalAmount   int64  `json:"totalAmount"`
}

type detailRequest struct {
	DetailID     string `json:"detailId"`
	ProductID    string `json:"productId"`
	ProductCode  string `json:"productCode"`
	ProductName  string `json:"productName"`
	ProductPrice int64  `json:"productPrice"`
}

func (c *Client) GetProductByCode(ctx context.Context, code string) (register.Product, error) {
	done := monitoring.TimeBackendRequest("products_by_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products-by-code/"+url.PathEscape(code), nil)
	if err != nil {
		done("error")
		return register.Product{}, fmt.Errorf("%w: %v", domainErrors.ErrBackendUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		done("error")
		return register.Product{}, fmt.Errorf("%w: %v", domainErrors.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()
	done(strconv.Itoa(resp.StatusCode))

	// 404 is the catalog's "no such code", not a transport failure.
	if resp.StatusCode == http.StatusNotFound {
		return register.Product{}, domainErrors.ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return register.Product{}, fmt.Errorf("%w: products-by-code returned %d", domainErrors.ErrBackendUnavailable, resp.StatusCode)
	}

	var body productResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return register.Product{}, fmt.Errorf("%w: %v", domainErrors.ErrBackendUnavailable, err)
	}

	return register.Product{
		ID:    body.ProductID,
		Code:  body.Code,
		Name:  body.Name,
		Price: body.Price,
	}, nil
}

func (c *Client) CreateTransaction(ctx context.Context, draft ports.TransactionDraft) (ports.TransactionRecord, error) {
	done := monitoring.TimeBackendRequest("create_transaction")

	body := transactionRequest{
		DateTime:     draft.DateTime.Format(time.RFC3339),
		EmployeeCode: draft.EmployeeCode,
		StoreCode:    draft.StoreCode,
		PosNumber:    draft.PosNumber,
		TotalAmount:  draft.TotalAmount,
	}

	var record transactionResponse
	status, err := c.postJSON(ctx, c.baseURL+"/transactions", body, &record)
	done(statusLabel(status, err))
	if err != nil {
		return ports.TransactionRecord{}, err
	}

	return ports.TransactionRecord{
		TransactionID: record.TransactionID,
		TotalAmount:   record.TotalAmount,
	}, nil
}

func (c *Client) GetTransaction(ctx context.Context, transactionID string) (ports.TransactionRecord, error) {
	done := monitoring.TimeBackendRequest("get_transaction")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/transactions/"+url.PathEscape(transactionID), nil)
	if err != nil {
		done("error")
		return ports.TransactionRecord{}, fmt.Errorf("%w: %v", domainErrors.ErrBackendUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		done("error")
		return ports.TransactionRecord{}, fmt.Errorf("%w: %v", domainErrors.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()
	done(strconv.Itoa(resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return ports.TransactionRecord{}, fmt.Errorf("%w: transactions returned %d", domainErrors.ErrBackendUnavailable, resp.StatusCode)
	}

	var body transactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.TransactionRecord{}, fmt.Errorf("%w: %v", domainErrors.ErrBackendUnavailable, err)
	}

	return ports.TransactionRecord{
		TransactionID: body.TransactionID,
		TotalAmount:   body.TotalAmount,
	}, nil
}

func (c *Client) CreateDetail(ctx context.Context, transactionID string, detail ports.DetailRecord) error {
	done := monitoring.TimeBackendRequest("create_detail")

	body := detailRequest{
		DetailID:     detail.DetailID,
		ProductID:    detail.ProductID,
		ProductCode:  detail.ProductCode,
		ProductName:  detail.ProductName,
		ProductPrice: detail.ProductPrice,
	}

	status, err := c.postJSON(ctx, c.baseURL+"/transactions/"+url.PathEscape(transactionID)+"/details", body, nil)
	done(statusLabel(status, err))
	return err
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body interface{}, out interface{}) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domainErrors.ErrBackendUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domainErrors.ErrBackendUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domainErrors.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp.StatusCode, fmt.Errorf("%w: %s returned %d", domainErrors.ErrBackendUnavailable, endpoint, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("%w: %v", domainErrors.ErrBackendUnavailable, err)
		}
	}
	return resp.StatusCode, nil
}

func statusLabel(status int, err error) string {
	if status == 0 && err != nil {
		return "error"
	}
	return strconv.Itoa(status)
}
