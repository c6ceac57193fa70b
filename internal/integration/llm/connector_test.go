package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/config"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

func completionServer(t *testing.T, content string, captured *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if captured != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}

		body, _ := json.Marshal(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "gpt-4o",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
			"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
}

func testConfig(url string) config.LLMConnectorConfig {
	return config.LLMConnectorConfig{
		APIKey:      "test-key",
		BaseURL:     url + "/",
		Model:       "gpt-4o",
		Temperature: 0.7,
		MaxTokens:   2000,
		Timeout:     5 * time.Second,
	}
}

func TestConnector_CompleteWithSchema(t *testing.T) {
	var captured map[string]any
	srv := completionServer(t, `{"description":"hi"}`, &captured)
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zap.NewNop())

	out, err := c.Complete(context.Background(), &entity.CompletionRequest{
		SystemPrompt: "system",
		UserPrompt:   "user",
		Schema: &entity.OutputSchema{
			Name:   entity.SchemaMarketingContent,
			Schema: map[string]any{"type": "object"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"description":"hi"}`, out)

	assert.Equal(t, "gpt-4o", captured["model"])
	assert.InDelta(t, 0.7, captured["temperature"], 1e-9)
	format, ok := captured["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_schema", format["type"])
	schema, ok := format["json_schema"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, entity.SchemaMarketingContent, schema["name"])
	assert.Equal(t, true, schema["strict"])
}

func TestConnector_EmptyContent(t *testing.T) {
	srv := completionServer(t, "   ", nil)
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zap.NewNop())

	_, err := c.Complete(context.Background(), &entity.CompletionRequest{UserPrompt: "user"})
	assert.ErrorIs(t, err, entity.ErrEmptyCompletion)
}

func TestMockConnector(t *testing.T) {
	m := NewMockConnector(zap.NewNop())

	critique, err := m.Complete(context.Background(), &entity.CompletionRequest{Schema: &entity.OutputSchema{Name: entity.SchemaContentCritique}})
	require.NoError(t, err)
	assert.Contains(t, critique, "overallScore")

	content, err := m.Complete(context.Background(), &entity.CompletionRequest{Schema: &entity.OutputSchema{Name: entity.SchemaMarketingContent}})
	require.NoError(t, err)
	assert.Contains(t, content, `"hashtags"`)
}
