package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	apperrors "github.com/popslsls21/CServices/pkg/errors"
	"github.com/popslsls21/CServices/pkg/metrics"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// GenerateContentRequest is the payload sent to the Generative Language API.
type GenerateContentRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// Content holds one turn of a conversation.
type Content struct {
	Parts []Part `json:"parts"`
	Role  string `json:"role,omitempty"`
}

// Part is a single fragment of model input or output.
type Part struct {
	Text string `json:"text"`
}

// GenerationConfig tunes sampling behaviour.
type GenerationConfig struct {
	Temperature     float32 `json:"temperature,omitempty"`
	TopP            float32 `json:"topP,omitempty"`
	TopK            int     `json:"topK,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// GenerateContentResponse captures the fields the adapter consumes.
type GenerateContentResponse struct {
	Candidates []struct {
		Content      Content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata *usageMetadata `json:"usageMetadata,omitempty"`
}

type usageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// Client performs HTTP requests to the Generative Language API.
type Client struct {
	apiKey      string
	baseURL     string
	temperature float32
	timeout     time.Duration
	httpClient  *http.Client

	mu    sync.Mutex
	usage metrics.TokenUsage
}

// NewClient constructs a Gemini client. The timeout bounds each generate call.
func NewClient(apiKey, baseURL string, temperature float32, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		temperature: temperature,
		timeout:     timeout,
		httpClient:  &http.Client{Timeout: timeout},
	}, nil
}

// GenerateContent sends a prompt to the named model and returns the first
// candidate's text. Failures carry a provider error code so callers can tell
// quota and credential problems apart from transient ones.
func (c *Client) GenerateContent(ctx context.Context, model, prompt string) (string, error) {
	payload := GenerateContentRequest{
		Contents: []Content{{Parts: []Part{{Text: prompt}}}},
		GenerationConfig: &GenerationConfig{
			Temperature:     c.temperature,
			TopP:            0.8,
			TopK:            40,
			MaxOutputTokens: 1024,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeProviderError, "encode generate request", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeProviderError, "build generate request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeProviderError, "gemini request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", statusError(resp.StatusCode, model, string(detail))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeProviderError, "read gemini response", err)
	}
	var out GenerateContentResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", apperrors.Wrap(apperrors.CodeProviderError, "decode gemini response", err)
	}
	if out.UsageMetadata != nil {
		c.recordUsage(metrics.TokenUsage{
			PromptTokens:     out.UsageMetadata.PromptTokenCount,
			CompletionTokens: out.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      out.UsageMetadata.TotalTokenCount,
		})
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", apperrors.Wrap(apperrors.CodeProviderError, "gemini returned no candidates", nil)
	}

	var text strings.Builder
	for _, part := range out.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String(), nil
}

func (c *Client) recordUsage(sample metrics.TokenUsage) {
	if sample.IsZero() {
		return
	}
	c.mu.Lock()
	c.usage.Add(sample)
	c.mu.Unlock()
}

// Usage returns the token counts accumulated over the client's lifetime.
func (c *Client) Usage() metrics.TokenUsage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.usage
}

func statusError(status int, model, detail string) error {
	err := fmt.Errorf("model %s: status=%d body=%s", model, status, detail)
	switch status {
	case http.StatusTooManyRequests:
		return apperrors.Wrap(apperrors.CodeQuotaExceeded, "gemini quota exceeded", err)
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.Wrap(apperrors.CodeInvalidCredentials, "gemini rejected credentials", err)
	default:
		return apperrors.Wrap(apperrors.CodeProviderError, "gemini request rejected", err)
	}
}
