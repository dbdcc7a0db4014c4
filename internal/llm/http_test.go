package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idworks/idscan/internal/common"
)

func testRequest() ChatRequest {
	return BuildBatchRequest("test-model", []ImageAttachment{
		{Filename: "scan.jpg", Data: []byte("img")},
	})
}

func TestClientSendSuccess(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody ChatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "[]"}},
			},
			"usage": map[string]any{
				"prompt_tokens":     1200,
				"completion_tokens": 340,
				"total_tokens":      1540,
			},
		})
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "secret-key", Endpoint: srv.URL, Model: "test-model"}, nil)
	resp, err := c.Send(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "test-model", gotBody.Model)
	assert.Equal(t, 4096, gotBody.MaxTokens)

	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "[]", resp.Choices[0].Message.Content)
	assert.Equal(t, 1200, resp.Usage.PromptTokens)
	assert.Equal(t, 340, resp.Usage.CompletionTokens)
	assert.Equal(t, 1540, resp.Usage.TotalTokens)
}

func TestClientSendMissingUsageDefaultsToZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "[]"}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", Endpoint: srv.URL}, nil)
	resp, err := c.Send(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, Usage{}, resp.Usage)
}

func TestClientSendNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", Endpoint: srv.URL}, nil)
	_, err := c.Send(context.Background(), testRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNetwork)
	assert.Contains(t, err.Error(), "503")
}

func TestClientSendTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	c := NewClient(Config{APIKey: "k", Endpoint: srv.URL}, nil)
	_, err := c.Send(context.Background(), testRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNetwork)
}

func TestClientSendMalformedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", Endpoint: srv.URL}, nil)
	_, err := c.Send(context.Background(), testRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNetwork)
}
