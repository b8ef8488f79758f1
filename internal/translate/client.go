// Package translate provides a client for a LibreTranslate-compatible
// message translation service. The shell uses it to render error messages
// in the configured display language; the core never calls it.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Translator turns a message into its display-language form. Implementations
// must be safe to call with any text; callers fall back to the original
// message when translation fails.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Config holds settings for the translation service.
type Config struct {
	BaseURL string // e.g. "http://localhost:5000"
	APIKey  string // optional
	Target  string // ISO language code, e.g. "pt"
}

// Client communicates with a LibreTranslate-compatible API.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a translation client.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error,omitempty"`
}

// Translate returns text in the configured target language.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", nil
	}

	payload, err := json.Marshal(translateRequest{
		Q:      text,
		Source: "auto",
		Target: c.cfg.Target,
		APIKey: c.cfg.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("translate: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/translate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("translate: read response: %w", err)
	}

	var resp translateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("translate: unmarshal: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		if resp.Error != "" {
			return "", fmt.Errorf("translate: %s", resp.Error)
		}
		return "", fmt.Errorf("translate: status %d", res.StatusCode)
	}

	return resp.TranslatedText, nil
}

// Message returns err's message through t, or the original message when t
// is nil or the call fails. This is the single entry point the shell uses
// for error display.
func Message(ctx context.Context, t Translator, err error) string {
	if err == nil {
		return ""
	}
	if t == nil {
		return err.Error()
	}

	out, terr := t.Translate(ctx, err.Error())
	if terr != nil || out == "" {
		return err.Error()
	}
	return out
}
