package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/popslsls21/CServices/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key", server.URL, 0.4, 5*time.Second)
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("  ", "", 0.4, time.Second)
	require.Error(t, err)
}

func TestGenerateContentConcatenatesParts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1beta/models/gemini-pro:generateContent", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req GenerateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Equal(t, "diagnose this", req.Contents[0].Parts[0].Text)
		require.NotNil(t, req.GenerationConfig)
		require.InDelta(t, 0.4, req.GenerationConfig.Temperature, 0.001)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{"content": {"parts": [{"text": "{\"results\""}, {"text": ": []}"}]}}],
			"usageMetadata": {"promptTokenCount": 12, "candidatesTokenCount": 7, "totalTokenCount": 19}
		}`))
	})

	text, err := client.GenerateContent(context.Background(), "gemini-pro", "diagnose this")
	require.NoError(t, err)
	require.Equal(t, `{"results": []}`, text)

	usage := client.Usage()
	require.Equal(t, 12, usage.PromptTokens)
	require.Equal(t, 7, usage.CompletionTokens)
	require.Equal(t, 19, usage.TotalTokens)
}

func TestGenerateContentQuotaStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.GenerateContent(context.Background(), "gemini-pro", "prompt")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeQuotaExceeded))
}

func TestGenerateContentCredentialStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.GenerateContent(context.Background(), "gemini-pro", "prompt")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidCredentials))
}

func TestGenerateContentNoCandidates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	})

	_, err := client.GenerateContent(context.Background(), "gemini-pro", "prompt")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeProviderError))
}
