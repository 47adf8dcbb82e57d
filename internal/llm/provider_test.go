package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"LIFE_OS_API_KEY", "API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "ANTHROPIC_API_KEY"} {
		t.Setenv(k, "")
	}
}

func captureServer(t *testing.T, response string, status int) (*httptest.Server, *map[string]any, *string) {
	t.Helper()
	var body map[string]any
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, &body, &path
}

const chatResponse = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gemini-3-flash-preview",
  "choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "{\"category\":\"Idea\",\"intent\":\"x\"}"}}]
}`

func TestOpenAIGenerate(t *testing.T) {
	clearKeyEnv(t)
	srv, body, path := captureServer(t, chatResponse, http.StatusOK)

	p, err := NewOpenAIProvider("test-key", WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	out, err := p.Generate(context.Background(), Request{
		Model:       "gemini-3-flash-preview",
		System:      "be terse",
		Prompt:      "bought a bike",
		Temperature: Float(0.2),
		Schema:      &Schema{Name: "analysis", Description: "memory analysis", Definition: map[string]any{"type": "object"}},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"category":"Idea","intent":"x"}`, out)
	assert.Equal(t, "/chat/completions", *path)

	b := *body
	assert.Equal(t, "gemini-3-flash-preview", b["model"])
	assert.InDelta(t, 0.2, b["temperature"], 1e-9)
	msgs, ok := b["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
	rf, ok := b["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_schema", rf["type"])
}

func TestOpenAIGenerateWithoutSchema(t *testing.T) {
	clearKeyEnv(t)
	srv, body, _ := captureServer(t, chatResponse, http.StatusOK)

	p, err := NewOpenAIProvider("test-key", WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), Request{Model: "m", Prompt: "what did i say"})
	require.NoError(t, err)
	assert.NotContains(t, *body, "response_format")
	assert.NotContains(t, *body, "temperature")
	assert.Len(t, (*body)["messages"], 1)
}

func TestOpenAIGenerateError(t *testing.T) {
	clearKeyEnv(t)
	srv, _, _ := captureServer(t, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)

	p, err := NewOpenAIProvider("test-key", WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), Request{Model: "m", Prompt: "x"})
	assert.Error(t, err)
}

func TestOpenAINoChoices(t *testing.T) {
	clearKeyEnv(t)
	srv, _, _ := captureServer(t, `{"id":"c","object":"chat.completion","created":1,"model":"m","choices":[]}`, http.StatusOK)

	p, err := NewOpenAIProvider("test-key", WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), Request{Model: "m", Prompt: "x"})
	assert.ErrorContains(t, err, "no choices")
}

const messageResponse = `{
  "id": "msg_1",
  "type": "message",
  "role": "assistant",
  "model": "claude-test",
  "content": [{"type": "text", "text": "You said you wanted to run."}],
  "stop_reason": "end_turn",
  "usage": {"input_tokens": 10, "output_tokens": 6}
}`

func TestAnthropicGenerate(t *testing.T) {
	clearKeyEnv(t)
	srv, body, path := captureServer(t, messageResponse, http.StatusOK)

	p, err := NewAnthropicProvider("test-key", WithAnthropicBaseURL(srv.URL))
	require.NoError(t, err)

	out, err := p.Generate(context.Background(), Request{
		Model:  "claude-test",
		System: "be terse",
		Prompt: "what did i say about running",
		Schema: &Schema{Name: "analysis", Definition: map[string]any{"type": "object"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "You said you wanted to run.", out)
	assert.Equal(t, "/v1/messages", *path)

	b := *body
	assert.Equal(t, "claude-test", b["model"])
	assert.EqualValues(t, DefaultAnthropicMaxTokens, b["max_tokens"])
	system, ok := b["system"].([]any)
	require.True(t, ok)
	require.Len(t, system, 1)
	text := system[0].(map[string]any)["text"].(string)
	assert.Contains(t, text, "be terse")
	assert.Contains(t, text, `{"type":"object"}`)
}

func TestAnthropicGenerateError(t *testing.T) {
	clearKeyEnv(t)
	srv, _, _ := captureServer(t, `{"type":"error","error":{"type":"api_error","message":"boom"}}`, http.StatusInternalServerError)

	p, err := NewAnthropicProvider("test-key", WithAnthropicBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), Request{Model: "m", Prompt: "x"})
	assert.Error(t, err)
}

func TestMissingKey(t *testing.T) {
	clearKeyEnv(t)

	_, err := NewOpenAIProvider("")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	_, err = NewAnthropicProvider("")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNew(t *testing.T) {
	clearKeyEnv(t)

	_, err := New(Options{Provider: "openai"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	t.Setenv("API_KEY", "from-env")
	p, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())

	p, err = New(Options{Provider: "anthropic"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", p.Name())

	_, err = New(Options{Provider: "carrier-pigeon"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestAPIKeyFromEnv(t *testing.T) {
	clearKeyEnv(t)
	assert.Empty(t, APIKeyFromEnv())

	t.Setenv("API_KEY", "generic")
	assert.Equal(t, "generic", APIKeyFromEnv())

	t.Setenv("LIFE_OS_API_KEY", "specific")
	assert.Equal(t, "specific", APIKeyFromEnv())
}

func TestDefaultModels(t *testing.T) {
	storage, retrieval := DefaultModels(ProviderAnthropic)
	assert.True(t, strings.HasPrefix(storage, "claude-"))
	assert.True(t, strings.HasPrefix(retrieval, "claude-"))

	storage, retrieval = DefaultModels(ProviderOpenAI)
	assert.Equal(t, DefaultOpenAIStorageModel, storage)
	assert.Equal(t, DefaultOpenAIRetrievalModel, retrieval)
}
