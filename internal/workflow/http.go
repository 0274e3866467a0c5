package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// HTTPClient talks to the system-service over JSON/HTTPS.
type HTTPClient struct {
	baseURL string
	httpc   *http.Client
	log     *logrus.Entry
}

// NewHTTPClient builds a client for the given system-service base URL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		log:     logrus.WithField("component", "workflow-client"),
	}
}

func (c *HTTPClient) Run(ctx context.Context, req RunRequest) (*Result, error) {
	return c.post(ctx, "/workflow/execution", req)
}

func (c *HTTPClient) View(ctx context.Context, req ViewRequest) (*Result, error) {
	return c.post(ctx, "/workflow/execution", req)
}

func (c *HTTPClient) ListCodes(ctx context.Context, cdgrp, cdname string) ([]map[string]any, error) {
	res, err := c.post(ctx, "/codes/list", map[string]string{"cdgrp": cdgrp, "cdname": cdname})
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, fmt.Errorf("code lookup %s/%s: %s", cdgrp, cdname, res.Err.Info)
	}
	return res.Items, nil
}

// post issues one backend call and normalizes the envelope. Transport
// failures surface as errors; execution failures ride inside the Result.
func (c *HTTPClient) post(ctx context.Context, path string, body any) (*Result, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling system-service: %w", err)
	}
	defer resp.Body.Close()

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}
	if env.Status == 0 {
		env.Status = resp.StatusCode
	}

	result := Normalize(&env)
	if !result.OK() {
		c.log.WithFields(logrus.Fields{
			"path":       path,
			"code":       result.Err.Code,
			"execute_id": result.Err.ExecuteID,
		}).Warn("system-service reported an execution error")
	}
	return result, nil
}
