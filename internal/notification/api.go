package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// APISender delivers e-mail through a transactional mail HTTP API.
type APISender struct {
	endpoint   *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

type apiAddress struct {
	Email string `json:"email"`
}

type apiRequest struct {
	Sender      apiAddress   `json:"sender"`
	To          []apiAddress `json:"to"`
	Subject     string       `json:"subject"`
	HTMLContent string       `json:"htmlContent,omitempty"`
	TextContent string       `json:"textContent,omitempty"`
}

// NewAPISender creates API sender with default timeout.
func NewAPISender(endpoint, apiKey string, logger *slog.Logger) (*APISender, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse mail api url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("mail api url must be absolute")
	}
	return &APISender{
		endpoint: parsed,
		apiKey:   apiKey,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

func (s *APISender) Name() string {
	return "api"
}

// SendEmail posts msg as JSON; any non-2xx answer is a failure.
func (s *APISender) SendEmail(ctx context.Context, from string, msg Message) error {
	payload := apiRequest{
		Sender:  apiAddress{Email: from},
		Subject: msg.Subject,
	}
	for _, to := range msg.To {
		payload.To = append(payload.To, apiAddress{Email: to})
	}
	if msg.HTML {
		payload.HTMLContent = msg.Body
	} else {
		payload.TextContent = msg.Body
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		s.logger.Error("mail api request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(respBody)))
		return fmt.Errorf("mail api error: %s", resp.Status)
	}
	return nil
}
