package ocr

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	financeErrors "github.com/pkoziol/ReceiptLedger/internal/finance/errors"
)

// ParsedExpense is one line item recognized by the OCR module.
type ParsedExpense struct {
	ProductName  string          `json:"productName"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	CategoryName string          `json:"categoryName"`
}

type processResponse struct {
	Expenses []ParsedExpense `json:"expenses"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ProcessReceipt uploads the receipt image as multipart form data and
// returns the recognized line items. Transport failures and timeouts come
// back as upstream errors so handlers can answer 502 instead of 500.
func (c *Client) ProcessReceipt(image []byte, filename string) ([]ParsedExpense, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(image); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/ai/ocr/process", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, financeErrors.NewUpstreamTimeoutError("OCR module timed out")
		}
		return nil, financeErrors.NewUpstreamError(fmt.Sprintf("OCR module unreachable: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, financeErrors.NewUpstreamError(fmt.Sprintf("OCR module returned %s", resp.Status))
	}

	var result processResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, financeErrors.NewUpstreamError(fmt.Sprintf("invalid OCR module response: %v", err))
	}
	return result.Expenses, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
