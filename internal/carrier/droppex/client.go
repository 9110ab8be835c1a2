// Package droppex talks to the Droppex parcel API: a single form-urlencoded
// endpoint multiplexed by an "action" field, authenticated with a static
// code_api/cle_api pair. There is no bulk action.
package droppex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Package is one outbound parcel. Everything is a string because the API is
// form-urlencoded; cod carries the cash-on-delivery amount as "12.50".
type Package struct {
	TelL      string
	NomClient string
	GovL      string // governorate id "1".."24"
	CpL       string
	Cod       string
	Libelle   string
	NbPiece   string
	AdresseL  string
	Remarque  string
	Tel2L     string
	Service   string
}

type Response struct {
	Success        bool
	TrackingNumber string
	CodeBarre      string
	Message        string
	ErrorMessage   string
	Raw            map[string]any
	RawBody        []byte
}

type Client struct {
	url     string
	codeAPI string
	cleAPI  string
	http    *http.Client
}

func NewClient(apiURL, codeAPI, cleAPI string) *Client {
	return &Client{
		url:     apiURL,
		codeAPI: codeAPI,
		cleAPI:  cleAPI,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Add registers a parcel. Success is judged by indicators in the body, not by
// the HTTP status: the API answers 200 for business failures too.
func (c *Client) Add(ctx context.Context, pkg Package) (*Response, error) {
	form := url.Values{}
	form.Set("action", "add")
	form.Set("code_api", c.codeAPI)
	form.Set("cle_api", c.cleAPI)
	form.Set("tel_l", pkg.TelL)
	form.Set("nom_client", pkg.NomClient)
	form.Set("gov_l", pkg.GovL)
	form.Set("cp_l", pkg.CpL)
	form.Set("cod", pkg.Cod)
	form.Set("libelle", pkg.Libelle)
	form.Set("nb_piece", pkg.NbPiece)
	form.Set("adresse_l", pkg.AdresseL)
	form.Set("remarque", pkg.Remarque)
	form.Set("tel2_l", pkg.Tel2L)
	form.Set("service", pkg.Service)

	raw, err := c.post(ctx, form)
	if err != nil {
		return nil, err
	}
	return interpretAdd(raw), nil
}

// Get fetches a parcel by its barcode.
func (c *Client) Get(ctx context.Context, codeBarre string) (*Response, error) {
	form := url.Values{}
	form.Set("action", "get")
	form.Set("code_api", c.codeAPI)
	form.Set("cle_api", c.cleAPI)
	form.Set("code_barre", codeBarre)

	raw, err := c.post(ctx, form)
	if err != nil {
		return nil, err
	}

	parsed := parseBody(raw)
	hasPackage := parsed["code_barre"] != nil || parsed["reference"] != nil ||
		parsed["nom_livraison"] != nil || parsed["dernier_etat"] != nil
	msg := stringField(parsed, "message")
	notFound := strings.Contains(strings.ToLower(msg), "pas trouvé") ||
		strings.Contains(strings.ToLower(msg), "not found")
	ok := hasPackage && parsed["error"] == nil && !notFound

	resp := &Response{
		Success:        ok,
		TrackingNumber: firstNonEmpty(stringField(parsed, "code_barre"), stringField(parsed, "reference"), codeBarre),
		Message:        firstNonEmpty(msg, stringField(parsed, "dernier_etat")),
		Raw:            parsed,
		RawBody:        raw,
	}
	if !ok {
		resp.ErrorMessage = firstNonEmpty(msg, "Package not found")
	}
	return resp, nil
}

// List is used as a connectivity probe for the status endpoint.
func (c *Client) List(ctx context.Context) (*Response, error) {
	form := url.Values{}
	form.Set("action", "list")
	form.Set("code_api", c.codeAPI)
	form.Set("cle_api", c.cleAPI)

	raw, err := c.post(ctx, form)
	if err != nil {
		return nil, err
	}
	parsed := parseBody(raw)
	return &Response{
		Success: true,
		Message: stringField(parsed, "message"),
		Raw:     parsed,
		RawBody: raw,
	}, nil
}

func (c *Client) post(ctx context.Context, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("droppex: http %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

// The API sometimes answers plain text instead of JSON; wrap text bodies as a
// message so callers see one shape.
func parseBody(raw []byte) map[string]any {
	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return map[string]any{"message": strings.TrimSpace(string(raw))}
	}
	return parsed
}

// Observed success body: {"reference": 61934246738, "url": "...", "message": "..."}.
func interpretAdd(raw []byte) *Response {
	parsed := parseBody(raw)

	msg := stringField(parsed, "message")
	hasReference := parsed["reference"] != nil
	hasCodeBarre := parsed["code_barre"] != nil
	successMsg := strings.Contains(strings.ToLower(msg), "success")
	hasError := parsed["error"] != nil || strings.Contains(strings.ToLower(msg), "error")
	ok := (hasReference || hasCodeBarre || successMsg) && !hasError

	tracking := firstNonEmpty(stringField(parsed, "reference"), stringField(parsed, "code_barre"))
	resp := &Response{
		Success:        ok,
		TrackingNumber: tracking,
		CodeBarre:      tracking,
		Message:        msg,
		Raw:            parsed,
		RawBody:        raw,
	}
	if !ok {
		resp.ErrorMessage = firstNonEmpty(msg, "Unknown error")
	}
	return resp
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return json.Number(fmt.Sprintf("%.0f", v)).String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
