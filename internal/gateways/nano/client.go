// Package nano calls the fal.ai nano-banana image editing model.
package nano

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://fal.run"

// EditRequest is the caller-facing shape; the wire body uses the provider's
// snake_case field names.
type EditRequest struct {
	Prompt       string   `json:"prompt"`
	ImageURLs    []string `json:"imageUrls"`
	NumImages    int      `json:"numImages"`
	OutputFormat string   `json:"outputFormat"`
}

type editWireBody struct {
	Prompt       string   `json:"prompt"`
	ImageURLs    []string `json:"image_urls"`
	NumImages    int      `json:"num_images"`
	OutputFormat string   `json:"output_format"`
}

// UpstreamError carries the provider's HTTP status so handlers can relay it.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("fal.ai returned status %d: %s", e.Status, e.Body)
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Edit submits an image editing job and returns the provider's response
// envelope untouched; the frontend consumes it as-is.
func (c *Client) Edit(ctx context.Context, req EditRequest) (json.RawMessage, error) {
	if req.NumImages <= 0 {
		req.NumImages = 1
	}
	if req.OutputFormat == "" {
		req.OutputFormat = "jpeg"
	}

	body, err := json.Marshal(editWireBody{
		Prompt:       req.Prompt,
		ImageURLs:    req.ImageURLs,
		NumImages:    req.NumImages,
		OutputFormat: req.OutputFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal edit request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/fal-ai/nano-banana/edit", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build edit request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Key "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call fal.ai: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read fal.ai response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(data)}
	}
	return json.RawMessage(data), nil
}
