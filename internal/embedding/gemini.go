package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"givegot_backend/internal/logger"
)

// GeminiProvider calls the Gemini embedContent REST endpoint. The raw model
// output is wider than we store; the vector is truncated to the configured
// dimension.
type GeminiProvider struct {
	apiKey    string
	baseURL   string
	model     string
	dimension int
	client    *http.Client
}

type GeminiConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Dimension      int
	TimeoutSeconds int
}

func NewGeminiProvider(cfg GeminiConfig) *GeminiProvider {
	return &GeminiProvider{
		apiKey:    cfg.APIKey,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		model:     cfg.Model,
		dimension: cfg.Dimension,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

func (p *GeminiProvider) Dimension() int {
	return p.dimension
}

type embedContentRequest struct {
	Content struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"content"`
}

type embedContentResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

func (p *GeminiProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		logger.Warn("empty text provided for embedding generation")
		return ZeroVector(p.dimension), nil
	}

	var reqBody embedContentRequest
	reqBody.Content.Parts = []struct {
		Text string `json:"text"`
	}{{Text: text}}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize request: %v", ErrProviderFailure, err)
	}

	url := fmt.Sprintf("%s/models/%s:embedContent?key=%s", p.baseURL, p.model, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrProviderFailure, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrProviderFailure, resp.StatusCode, string(body))
	}

	var parsed embedContentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", ErrProviderFailure, err)
	}

	values := parsed.Embedding.Values
	if len(values) < p.dimension {
		return nil, fmt.Errorf("%w: got %d dimensions, expected at least %d", ErrProviderFailure, len(values), p.dimension)
	}

	// The model returns a wider vector; keep the leading dimensions.
	return values[:p.dimension], nil
}
