package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// MailscanClient calls the Mailscan subscription discovery API.
type MailscanClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type mailscanScanRequest struct {
	Email    string `json:"email"`
	Provider string `json:"provider,omitempty"`
}

type mailscanScanResponse struct {
	Subscriptions []Item `json:"subscriptions"`
	Error         *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewMailscanClient создает клиент Mailscan с заданными параметрами.
func NewMailscanClient(apiKey, baseURL string, timeout time.Duration) *MailscanClient {
	trimmedURL := strings.TrimRight(baseURL, "/")
	return &MailscanClient{
		apiKey:  apiKey,
		baseURL: trimmedURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Scan запрашивает сканирование почтового ящика и возвращает найденные
// подписки вместе с сырым ответом API.
func (c *MailscanClient) Scan(ctx context.Context, account Account) ([]Item, []byte, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, nil, ErrScanDisabled
	}

	reqBody := mailscanScanRequest{
		Email:    account.Email,
		Provider: account.Provider,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, nil, err
	}

	endpoint := fmt.Sprintf("%s/scan", c.baseURL)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, err
	}

	request.Header.Set("Authorization", "Bearer "+c.apiKey)
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, nil, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, nil, err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var apiErr mailscanScanResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != nil {
			return nil, body, fmt.Errorf("mailscan api error: %s", apiErr.Error.Message)
		}
		return nil, body, fmt.Errorf("mailscan api error: %s", strings.TrimSpace(string(body)))
	}

	var parsed mailscanScanResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, body, err
	}

	if parsed.Subscriptions == nil {
		return nil, body, errors.New("mailscan response missing subscriptions")
	}

	return parsed.Subscriptions, body, nil
}
