package gateway

import (
	"context"
	"encoding/json"
	"net/http"
)

// AI endpoints embed human-readable error detail and an optional
// remediation suggestion in non-2xx bodies, so both paths always
// attempt a JSON decode. A decoded rejection comes back as a declined
// result, not an error; only transport failures and unusable bodies
// fail the call.

const (
	translatePath = "/api/translate/"
	summarizePath = "/api/summarize/"
)

// Translate asks the AI service to translate text into targetLanguage
// (language code, e.g. "en", "fr").
func (c *Client) Translate(ctx context.Context, text, targetLanguage string) (*Translation, error) {
	if targetLanguage == "" {
		targetLanguage = "en"
	}
	payload := map[string]string{"text": text, "target_language": targetLanguage}

	body, status, err := c.request(ctx, http.MethodPost, translatePath, nil, payload)
	if err != nil {
		return nil, err
	}

	var translation Translation
	if err := json.Unmarshal(body, &translation); err != nil {
		return nil, newStatusError(status, nil)
	}
	if !success(status) && translation.Error == "" {
		translation.Error = newStatusError(status, body).Message
	}
	return &translation, nil
}

// Summarize asks the AI service to condense text to at most maxLength.
func (c *Client) Summarize(ctx context.Context, text string, maxLength int) (*Summary, error) {
	if maxLength <= 0 {
		maxLength = 150
	}
	payload := map[string]any{"text": text, "max_length": maxLength}

	body, status, err := c.request(ctx, http.MethodPost, summarizePath, nil, payload)
	if err != nil {
		return nil, err
	}

	var summary Summary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, newStatusError(status, nil)
	}
	if !success(status) && summary.Error == "" {
		summary.Error = newStatusError(status, body).Message
	}
	return &summary, nil
}
