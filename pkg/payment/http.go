package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPGateway คุยกับ payment provider จริงผ่าน JSON API
type HTTPGateway struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewHTTPGateway(baseURL, apiKey string) *HTTPGateway {
	return &HTTPGateway{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type createIntentReq struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

func (g *HTTPGateway) CreateIntent(amount int64, currency, description string) (*Intent, error) {
	body := createIntentReq{Amount: amount, Currency: currency, Description: description}
	var out Intent
	if err := g.post("/v1/intents", body, &out); err != nil {
		return nil, err
	}
	if out.ExternalID == "" {
		return nil, fmt.Errorf("gateway returned empty intent id")
	}
	return &out, nil
}

func (g *HTTPGateway) Capture(externalID string) (*CaptureResult, error) {
	var out CaptureResult
	if err := g.post("/v1/intents/"+externalID+"/capture", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *HTTPGateway) post(path string, in any, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, g.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	resp, err := g.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("gateway %s: status %d: %s", path, resp.StatusCode, string(b))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
