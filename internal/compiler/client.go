// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package compiler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jeranaias/simpledoc-tui/internal/catalog"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 8 << 20

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the compile client.
type ClientConfig struct {
	// BaseURL is the compile service base URL (default: http://127.0.0.1:5000)
	BaseURL string

	// Timeout for a compile round trip. Zero uses the default (30s);
	// negative disables the client-side timeout and leaves it to the transport.
	Timeout time.Duration

	// RateLimit caps compile requests per second. 0 means unlimited.
	RateLimit float64

	// Burst is the token bucket size used with RateLimit (default: 1)
	Burst int

	// UserAgent is sent with every request.
	UserAgent string
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:   "http://127.0.0.1:5000",
		Timeout:   30 * time.Second,
		RateLimit: 0,
		Burst:     1,
		UserAgent: "simpledoc-tui",
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client sends SimpleDoc source to the compile service.
//
// The Client is safe for concurrent use; overlapping Compile calls proceed
// independently.
type Client struct {
	mu         sync.RWMutex
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new compile client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new compile client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	c := &Client{}
	c.Configure(config)
	return c
}

// Configure replaces the client configuration. Requests already in flight
// keep the settings they started with.
func (c *Client) Configure(config *ClientConfig) {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config
	defaults := DefaultConfig()

	// Fill in defaults for any zero values
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout == 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaults.Burst
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}

	httpClient := &http.Client{}
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}

	limiter := rate.NewLimiter(rate.Inf, cfg.Burst)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.config = &cfg
	c.httpClient = httpClient
	c.limiter = limiter
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config.BaseURL
}

// Endpoint returns the full compile endpoint URL.
func (c *Client) Endpoint() string {
	return c.BaseURL() + CompilePath
}

// =============================================================================
// COMPILE
// =============================================================================

// Compile sends source at the given tier to the compile service.
//
// Blank source fails with ErrEmptySource before any network activity.
// A success=false answer yields an ErrTypeCompile error carrying the
// service's message; anything else that goes wrong is ErrTypeTransport.
func (c *Client) Compile(ctx context.Context, source string, tier catalog.Tier) (*Result, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptySource
	}

	c.mu.RLock()
	cfg := c.config
	httpClient := c.httpClient
	limiter := c.limiter
	c.mu.RUnlock()

	if err := limiter.Wait(ctx); err != nil {
		return nil, transportError("compile request not sent", err)
	}

	form := url.Values{}
	form.Set(FieldSource, source)
	form.Set(FieldTier, tier.Clamp().String())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.BaseURL+CompilePath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, transportError("failed to create request", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("X-Request-ID", requestID)

	log.Printf("COMPILE_REQUEST | id=%s tier=%s bytes=%d url=%s", requestID, tier, len(source), req.URL)
	start := time.Now()

	resp, err := httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, transportError("request timed out", err)
		}
		return nil, transportError("failed to reach compile service", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, transportError("failed to read response", err)
	}

	var parsed compileResponse
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Success == nil {
		if resp.StatusCode != http.StatusOK {
			return nil, transportError("unexpected status from compile service", errors.New(resp.Status))
		}
		if err == nil {
			err = errors.New(`missing "success" field`)
		}
		return nil, transportError("invalid response from compile service", err)
	}

	elapsed := time.Since(start)

	if !*parsed.Success {
		msg := parsed.Error
		if msg == "" {
			msg = "compilation failed"
		}
		log.Printf("COMPILE_ERROR | id=%s status=%d latency=%dms error=%q", requestID, resp.StatusCode, elapsed.Milliseconds(), msg)
		return nil, &ClientError{Type: ErrTypeCompile, Message: msg, Detail: parsed.Message}
	}

	log.Printf("COMPILE_OK | id=%s latency=%dms html_bytes=%d", requestID, elapsed.Milliseconds(), len(parsed.HTML))
	return &Result{
		HTML:      parsed.HTML,
		Message:   parsed.Message,
		RequestID: requestID,
		Duration:  elapsed,
	}, nil
}
