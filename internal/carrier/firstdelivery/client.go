// Package firstdelivery talks to the First Delivery REST API (JSON, bearer
// token). It supports single create, bulk create up to 100 parcels, status by
// barcode and paginated listing. Their docs require 10 seconds between
// consecutive calls of the same kind; that policy is enforced by the caller,
// not here.
package firstdelivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxBulkOrders is the documented ceiling of /bulk-create.
const MaxBulkOrders = 100

type ClientInfo struct {
	Nom         string `json:"nom"`
	Gouvernerat string `json:"gouvernerat"`
	Ville       string `json:"ville"`
	Adresse     string `json:"adresse"`
	Telephone   string `json:"telephone"`
	Telephone2  string `json:"telephone2,omitempty"`
}

type Product struct {
	Article       string  `json:"article"`
	Prix          float64 `json:"prix"`
	Designation   string  `json:"designation"`
	NombreArticle int     `json:"nombreArticle"`
	Commentaire   string  `json:"commentaire"`
	NombreEchange int     `json:"nombreEchange"`
}

// BulkProduct is Product without nombreEchange; /bulk-create rejects the
// field, so the two shapes stay separate structs.
type BulkProduct struct {
	Article       string  `json:"article"`
	Prix          float64 `json:"prix"`
	Designation   string  `json:"designation"`
	NombreArticle int     `json:"nombreArticle"`
	Commentaire   string  `json:"commentaire"`
}

type Order struct {
	Client  ClientInfo `json:"Client"`
	Produit Product    `json:"Produit"`
}

type BulkOrder struct {
	Client  ClientInfo  `json:"Client"`
	Produit BulkProduct `json:"Produit"`
}

type Response struct {
	Success        bool
	TrackingNumber string
	Message        string
	Status         int
	IsError        bool
	Result         map[string]any
	ErrorMessage   string
	RawBody        []byte
}

// Barcodes extracts the per-index barcode array of a bulk response. The key is
// the submission index; indices the carrier did not accept are absent.
func (r *Response) Barcodes() map[int]string {
	out := map[int]string{}
	if r.Result == nil {
		return out
	}
	arr, ok := r.Result["barCodes"].([]any)
	if !ok {
		return out
	}
	for i, v := range arr {
		if s, ok := v.(string); ok && s != "" {
			out[i] = s
		}
	}
	return out
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Create submits one parcel. The API signals success with status 201 inside
// the body, separate from the HTTP status.
func (c *Client) Create(ctx context.Context, order Order) (*Response, error) {
	httpOK, raw, err := c.post(ctx, "/create", order)
	if err != nil {
		return nil, err
	}
	return interpret(httpOK, raw, []int{201}), nil
}

// BulkCreate submits up to MaxBulkOrders parcels in one call. Body status 207
// means partial acceptance; per-index outcomes come from Barcodes().
func (c *Client) BulkCreate(ctx context.Context, orders []BulkOrder) (*Response, error) {
	if len(orders) > MaxBulkOrders {
		return nil, fmt.Errorf("firstdelivery: bulk of %d exceeds the %d order maximum", len(orders), MaxBulkOrders)
	}
	httpOK, raw, err := c.post(ctx, "/bulk-create", orders)
	if err != nil {
		return nil, err
	}
	return interpret(httpOK, raw, []int{201, 207}), nil
}

// Status queries the state of a parcel by barcode.
func (c *Client) Status(ctx context.Context, barCode string) (*Response, error) {
	httpOK, raw, err := c.post(ctx, "/etat", map[string]string{"barCode": barCode})
	if err != nil {
		return nil, err
	}
	return interpret(httpOK, raw, nil), nil
}

// Orders lists parcels; used as a connectivity probe with page=1, limit=1.
func (c *Client) Orders(ctx context.Context, pageNumber, limit int) (*Response, error) {
	body := map[string]any{
		"pagination": map[string]int{"pageNumber": pageNumber, "limit": limit},
	}
	httpOK, raw, err := c.post(ctx, "/filter", body)
	if err != nil {
		return nil, err
	}
	return interpret(httpOK, raw, nil), nil
}

func (c *Client) post(ctx context.Context, path string, payload any) (bool, []byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return false, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return false, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	res, err := c.http.Do(req)
	if err != nil {
		return false, nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return false, nil, err
	}
	return res.StatusCode >= 200 && res.StatusCode < 300, raw, nil
}

type wireBody struct {
	Status  int            `json:"status"`
	IsError bool           `json:"isError"`
	Message string         `json:"message"`
	Result  map[string]any `json:"result"`
}

func interpret(httpOK bool, raw []byte, okStatuses []int) *Response {
	var body wireBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return &Response{
			Success:      false,
			ErrorMessage: "invalid response body: " + err.Error(),
			RawBody:      raw,
		}
	}

	ok := httpOK && !body.IsError
	if okStatuses != nil {
		matched := false
		for _, s := range okStatuses {
			if body.Status == s {
				matched = true
				break
			}
		}
		ok = ok && matched
	}

	resp := &Response{
		Success: ok,
		Message: body.Message,
		Status:  body.Status,
		IsError: body.IsError,
		Result:  body.Result,
		RawBody: raw,
	}
	if body.Result != nil {
		if link, okLink := body.Result["link"].(string); okLink && link != "" {
			resp.TrackingNumber = link
		}
	}
	if !ok {
		if body.Message != "" {
			resp.ErrorMessage = body.Message
		} else {
			resp.ErrorMessage = "Unknown error"
		}
	}
	return resp
}
