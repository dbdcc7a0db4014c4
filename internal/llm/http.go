package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/idworks/idscan/internal/common"
)

// Config for the inference-endpoint client. All three identity values come
// from the environment via common.LoadConfig; they are injected here so the
// client never reads ambient process state.
type Config struct {
	APIKey   string
	Endpoint string        // full URL of the chat-completions endpoint
	Model    string        // recorded for logging; the request carries its own copy
	Timeout  time.Duration // 0 means no client-side timeout
}

// Client posts chat requests to a hosted vision-language model. It
// implements Sender. No retries: a transport failure or non-2xx status is
// surfaced as a NetworkError and aborts the run.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	hc := &http.Client{}
	if cfg.Timeout > 0 {
		hc.Timeout = cfg.Timeout
	}
	return &Client{cfg: cfg, httpClient: hc, logger: logger}
}

// Send posts one request and decodes the success envelope.
func (c *Client) Send(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	reqID := common.RequestIDFromContext(ctx)
	if reqID == "" {
		reqID = uuid.New().String()
	}
	start := time.Now()

	body, err := json.Marshal(req)
	if err != nil {
		c.logger.Error("llm.http.encode_error", "req_id", reqID, "error", err)
		return ChatResponse{}, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("llm.http.build_request_error", "req_id", reqID, "error", err)
		return ChatResponse{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	c.logger.Info("llm.http.request",
		"req_id", reqID,
		"url", c.cfg.Endpoint,
		"model", c.cfg.Model,
		"content_length", len(body),
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("llm.http.send_error", "req_id", reqID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return ChatResponse{}, common.NewNetworkError("send request", err)
	}
	defer func(b io.ReadCloser) {
		if cerr := b.Close(); cerr != nil {
			c.logger.Warn("llm.http.response_body_close_error", "req_id", reqID, "error", cerr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)

	c.logger.Info("llm.http.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return ChatResponse{}, common.NewNetworkError(
			fmt.Sprintf("status %d: %s", resp.StatusCode, truncate(string(raw), 2048)), nil)
	}

	var out ChatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		c.logger.Error("llm.http.decode_error", "req_id", reqID, "error", err, "raw_bytes", len(raw))
		return ChatResponse{}, common.NewNetworkError("decode response envelope", err)
	}
	return out, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
