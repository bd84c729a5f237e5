package analysis

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Feature selects an analysis capability on the service side.
type Feature string

const (
	FeatureForms  Feature = "FORMS"
	FeatureTables Feature = "TABLES"
)

// Client calls the document-analysis HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type analyzeRequest struct {
	Document struct {
		Bytes string `json:"Bytes"`
	} `json:"Document"`
	FeatureTypes []Feature `json:"FeatureTypes"`
}

// AnalyzeOutput is the decoded analysis response.
type AnalyzeOutput struct {
	Blocks           []Block          `json:"Blocks"`
	DocumentMetadata DocumentMetadata `json:"DocumentMetadata"`
	ModelVersion     string           `json:"AnalyzeDocumentModelVersion,omitempty"`
}

// serviceFailure is the error body the analysis service returns.
type serviceFailure struct {
	Type    string `json:"__type"`
	Message string `json:"Message"`
}

// ServiceError is a failure reported by the analysis service itself, as
// opposed to a transport-level failure.
type ServiceError struct {
	StatusCode int
	Kind       string
	Message    string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("analysis service %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
}

// AnalyzeDocument submits document bytes for analysis with the given
// feature selector and returns the service's block collection.
func (c *Client) AnalyzeDocument(ctx context.Context, document []byte, features []Feature) (*AnalyzeOutput, error) {
	var reqBody analyzeRequest
	reqBody.Document.Bytes = base64.StdEncoding.EncodeToString(document)
	reqBody.FeatureTypes = features

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/analyze-document", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("analyze document: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, decodeServiceError(resp.StatusCode, respBody)
	}

	var out AnalyzeOutput
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// Identity describes the credentials the service sees for this client.
type Identity struct {
	Account string `json:"Account"`
	ARN     string `json:"Arn"`
}

// VerifyIdentity checks that the configured credentials authenticate against
// the analysis service. Used at startup to fail fast before serving.
func (c *Client) VerifyIdentity(ctx context.Context) (*Identity, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/caller-identity", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("verify identity: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeServiceError(resp.StatusCode, respBody)
	}

	var id Identity
	if err := json.Unmarshal(respBody, &id); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	return &id, nil
}

func decodeServiceError(status int, body []byte) *ServiceError {
	var fail serviceFailure
	if err := json.Unmarshal(body, &fail); err != nil || fail.Type == "" {
		fail.Type = "UnknownError"
	}
	if fail.Message == "" {
		fail.Message = truncate(string(body), 200)
	}
	return &ServiceError{
		StatusCode: status,
		Kind:       fail.Type,
		Message:    fail.Message,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
