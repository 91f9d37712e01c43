package provider

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/siherrmann/tripler/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const openAIEnvelope = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"created": 1700000000,
	"model": "gpt-4-turbo",
	"choices": [{
		"index": 0,
		"message": {"role": "assistant", "content": %s},
		"finish_reason": "stop"
	}],
	"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
}`

const anthropicEnvelope = `{
	"id": "msg_1",
	"type": "message",
	"role": "assistant",
	"model": "claude-3-opus-20240229",
	"content": [{"type": "text", "text": %s}],
	"stop_reason": "end_turn",
	"stop_sequence": null,
	"usage": {"input_tokens": 10, "output_tokens": 5}
}`

// newServer responds with the given status and body and records every request body
func newServer(t *testing.T, status int, body string, requests *[]map[string]interface{}, calls *int32) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		request := map[string]interface{}{}
		if len(raw) > 0 {
			require.NoError(t, json.Unmarshal(raw, &request))
		}
		request["_path"] = r.URL.Path
		*requests = append(*requests, request)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func quoted(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestOpenAIComplete(t *testing.T) {
	t.Run("Sends a deterministic JSON mode request and returns the message content", func(t *testing.T) {
		var requests []map[string]interface{}
		var calls int32
		reply := `{"relationships": []}`
		server := newServer(t, http.StatusOK, strings.Replace(openAIEnvelope, "%s", quoted(reply), 1), &requests, &calls)

		p := NewOpenAI("test-key", "gpt-4-turbo", server.URL, 1024)
		result, err := p.Complete(context.Background(), "extract this")

		require.NoError(t, err)
		assert.Equal(t, reply, result)
		require.Len(t, requests, 1)

		request := requests[0]
		assert.True(t, strings.HasSuffix(request["_path"].(string), "/chat/completions"), "unexpected path %v", request["_path"])
		assert.Equal(t, "gpt-4-turbo", request["model"])
		assert.Equal(t, float64(0), request["temperature"])
		assert.Equal(t, map[string]interface{}{"type": "json_object"}, request["response_format"])

		messages, ok := request["messages"].([]interface{})
		require.True(t, ok)
		require.Len(t, messages, 2)
		assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])
		assert.Equal(t, "user", messages[1].(map[string]interface{})["role"])
		assert.Equal(t, "extract this", messages[1].(map[string]interface{})["content"])
	})

	t.Run("Server errors are provider errors and are not retried", func(t *testing.T) {
		var requests []map[string]interface{}
		var calls int32
		server := newServer(t, http.StatusInternalServerError, `{"error": {"message": "boom", "type": "server_error"}}`, &requests, &calls)

		p := NewOpenAI("test-key", "gpt-4-turbo", server.URL, 1024)
		_, err := p.Complete(context.Background(), "extract this")

		require.Error(t, err)
		var providerErr *model.ProviderError
		require.True(t, errors.As(err, &providerErr))
		assert.Equal(t, model.ProviderOpenAI, providerErr.Provider)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "Expected exactly one call without retries")
	})

	t.Run("No choices is a provider error", func(t *testing.T) {
		var requests []map[string]interface{}
		var calls int32
		body := `{"id": "x", "object": "chat.completion", "created": 1, "model": "gpt-4-turbo", "choices": []}`
		server := newServer(t, http.StatusOK, body, &requests, &calls)

		p := NewOpenAI("test-key", "gpt-4-turbo", server.URL, 0)
		_, err := p.Complete(context.Background(), "extract this")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})
}

func TestAnthropicComplete(t *testing.T) {
	t.Run("Sends a single user message and returns the first text block", func(t *testing.T) {
		var requests []map[string]interface{}
		var calls int32
		reply := `[{"subject": "A", "relation": "citation", "object": "B"}]`
		server := newServer(t, http.StatusOK, strings.Replace(anthropicEnvelope, "%s", quoted(reply), 1), &requests, &calls)

		p := NewAnthropic("test-key", "claude-3-opus-20240229", server.URL, 512)
		result, err := p.Complete(context.Background(), "extract this")

		require.NoError(t, err)
		assert.Equal(t, reply, result)
		require.Len(t, requests, 1)

		request := requests[0]
		assert.True(t, strings.HasSuffix(request["_path"].(string), "/v1/messages"), "unexpected path %v", request["_path"])
		assert.Equal(t, "claude-3-opus-20240229", request["model"])
		assert.Equal(t, float64(512), request["max_tokens"])
		assert.Equal(t, float64(0), request["temperature"])

		messages, ok := request["messages"].([]interface{})
		require.True(t, ok)
		require.Len(t, messages, 1)
		assert.Equal(t, "user", messages[0].(map[string]interface{})["role"])
	})

	t.Run("Rate limits are provider errors and are not retried", func(t *testing.T) {
		var requests []map[string]interface{}
		var calls int32
		server := newServer(t, http.StatusTooManyRequests, `{"type": "error", "error": {"type": "rate_limit_error", "message": "slow down"}}`, &requests, &calls)

		p := NewAnthropic("test-key", "claude-3-opus-20240229", server.URL, 0)
		_, err := p.Complete(context.Background(), "extract this")

		var providerErr *model.ProviderError
		require.True(t, errors.As(err, &providerErr))
		assert.Equal(t, model.ProviderAnthropic, providerErr.Provider)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("Cancellation is a provider error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
		}))
		t.Cleanup(server.Close)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		p := NewAnthropic("test-key", "claude-3-opus-20240229", server.URL, 0)
		_, err := p.Complete(ctx, "extract this")

		var providerErr *model.ProviderError
		require.True(t, errors.As(err, &providerErr))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestNew(t *testing.T) {
	t.Run("Selects the OpenAI backend", func(t *testing.T) {
		config := model.DefaultExtractorConfig()
		config.APIKey = "test-key"

		p, err := New(config)
		require.NoError(t, err)
		assert.Equal(t, model.ProviderOpenAI, p.ID())
		assert.IsType(t, &OpenAI{}, p)
	})

	t.Run("Selects the Anthropic backend with its default model", func(t *testing.T) {
		config := model.DefaultExtractorConfig()
		config.ProviderID = model.ProviderAnthropic
		config.ModelName = ""
		config.APIKey = "test-key"

		p, err := New(config)
		require.NoError(t, err)
		require.IsType(t, &Anthropic{}, p)
		assert.Equal(t, "claude-3-opus-20240229", string(p.(*Anthropic).model))
	})

	t.Run("Unsupported provider fails construction", func(t *testing.T) {
		config := model.DefaultExtractorConfig()
		config.ProviderID = "llama"
		config.APIKey = "test-key"

		_, err := New(config)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrConfiguration)
	})

	t.Run("Missing API key fails construction", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		config := model.DefaultExtractorConfig()

		_, err := New(config)
		require.Error(t, err)
		var configErr *model.ConfigurationError
		require.True(t, errors.As(err, &configErr))
		assert.Equal(t, "api_key", configErr.Field)
	})

	t.Run("API key falls back to the provider environment variable", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "env-key")
		config := model.DefaultExtractorConfig()
		config.ProviderID = model.ProviderAnthropic

		p, err := New(config)
		require.NoError(t, err)
		assert.Equal(t, model.ProviderAnthropic, p.ID())
	})
}
