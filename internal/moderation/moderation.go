package moderation

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"wedding_memories/internal/config"
	"wedding_memories/internal/lib/logger/sl"
)

// Result is the classifier verdict for one image.
type Result struct {
	IsSafe     bool           `json:"is_safe"`
	Confidence float64        `json:"confidence"`
	Categories map[string]any `json:"categories,omitempty"`
}

func (r Result) IsAppropriate() bool {
	return r.IsSafe
}

// ModerationScore is 1-confidence for safe content and confidence for unsafe content.
func (r Result) ModerationScore() float64 {
	if r.IsSafe {
		return 1 - r.Confidence
	}
	return r.Confidence
}

type Recorder interface {
	RecordModerationVerdict(safe bool)
	RecordModerationFailure()
}

// Client sends images to the external NSFW classifier.
type Client struct {
	httpClient *http.Client
	log        *slog.Logger
	endpoint   string
	apiKey     string
	failOpen   bool
	rec        Recorder
}

func New(log *slog.Logger, cfg config.ModerationConfig, rec Recorder) *Client {
	return NewWithHTTPClient(log, cfg, &http.Client{Timeout: cfg.Timeout}, rec)
}

func NewWithHTTPClient(log *slog.Logger, cfg config.ModerationConfig, httpClient *http.Client, rec Recorder) *Client {
	if rec == nil {
		rec = nopRecorder{}
	}

	return &Client{
		httpClient: httpClient,
		log:        log,
		endpoint:   cfg.APIURL,
		apiKey:     cfg.APIKey,
		failOpen:   cfg.FailOpen,
		rec:        rec,
	}
}

// Enabled reports whether both the endpoint and the key are configured.
func (c *Client) Enabled() bool {
	return c.endpoint != "" && c.apiKey != ""
}

// Check classifies data. It never returns an error: an unconfigured client passes everything,
// and classifier failures resolve to the configured failure policy.
func (c *Client) Check(ctx context.Context, data []byte) Result {
	const op = "moderation.Check"

	if !c.Enabled() {
		return Result{IsSafe: true, Confidence: 0}
	}

	log := c.log.With(slog.String("op", op))

	res, err := c.classify(ctx, data)
	if err != nil {
		c.rec.RecordModerationFailure()
		log.Error("moderation request failed",
			sl.Err(err),
			slog.Bool("fail_open", c.failOpen),
		)

		return Result{IsSafe: c.failOpen, Confidence: 0}
	}

	c.rec.RecordModerationVerdict(res.IsSafe)
	log.Debug("image classified",
		slog.Bool("is_safe", res.IsSafe),
		slog.Float64("confidence", res.Confidence),
	)

	return res
}

func (c *Client) classify(ctx context.Context, data []byte) (Result, error) {
	payload, err := json.Marshal(map[string]string{
		"image": base64.StdEncoding.EncodeToString(data),
	})
	if err != nil {
		return Result{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Result{}, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return Result{}, fmt.Errorf("decode response: %w", err)
	}

	return res, nil
}

type nopRecorder struct{}

func (nopRecorder) RecordModerationVerdict(bool) {}
func (nopRecorder) RecordModerationFailure()     {}
