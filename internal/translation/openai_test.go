package translation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIProviderNoAPIKey(t *testing.T) {
	p := NewOpenAIProvider("", "", "")

	_, err := p.Translate(context.Background(), "Hallo", "de", "en")
	require.Error(t, err)
	assert.Equal(t, "OpenAI API key not found", err.Error())
}

func TestOpenAIProviderDefaults(t *testing.T) {
	p := NewOpenAIProvider("key", "", "")
	assert.Equal(t, DefaultOpenAIModel, p.model)
	assert.NotNil(t, p.client)
	assert.Equal(t, "openai", p.Name())
}

func newChatServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-test", req["model"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "gpt-test",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIProviderTranslate(t *testing.T) {
	srv := newChatServer(t, http.StatusOK, "  How are you?\n")
	p := NewOpenAIProvider("test-key", "gpt-test", srv.URL)

	got, err := p.Translate(context.Background(), "Wie geht's?", "de", "en")
	require.NoError(t, err)
	assert.Equal(t, "How are you?", got)
}

func TestOpenAIProviderEmptyAnswer(t *testing.T) {
	srv := newChatServer(t, http.StatusOK, "   ")
	p := NewOpenAIProvider("test-key", "gpt-test", srv.URL)

	_, err := p.Translate(context.Background(), "Hallo", "de", "en")
	assert.Error(t, err)
}

func TestOpenAIProviderAPIError(t *testing.T) {
	srv := newChatServer(t, http.StatusTooManyRequests, "")
	p := NewOpenAIProvider("test-key", "gpt-test", srv.URL)

	_, err := p.Translate(context.Background(), "Hallo", "de", "en")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OpenAI API error")
}

func TestOpenAIProviderIntegration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	p := NewOpenAIProvider(apiKey, "", "")
	got, err := p.Translate(context.Background(), "Guten Morgen", "de", "en")
	require.NoError(t, err)
	assert.NotEmpty(t, got)
	t.Logf("Translation of 'Guten Morgen': %s", got)
}
