package embedding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"semnotes/internal/domain"
)

// HTTPEmbedder talks to any OpenAI-compatible /embeddings endpoint. The
// original system embedded notes with all-MiniLM-L6-v2; the equivalent local
// setup here is ollama's all-minilm, which produces the same 384-dimension
// vectors.
type HTTPEmbedder struct {
	apiKey    string
	model     string
	baseURL   string
	dimension int
	batchSize int
	client    *http.Client
}

type embeddingRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

type embeddingResponse struct {
	Data  []embeddingData `json:"data"`
	Error *apiError       `json:"error,omitempty"`
}

type embeddingData struct {
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// NewOpenAIEmbedder reads the API key from the named environment variable.
func NewOpenAIEmbedder(apiKeyEnv, model string) (*HTTPEmbedder, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not set in %s: %w", apiKeyEnv, domain.ErrEmbeddingUnavailable)
	}

	dimension := 1536
	switch model {
	case "text-embedding-3-small", "text-embedding-ada-002":
		dimension = 1536
	case "text-embedding-3-large":
		dimension = 3072
	}

	return &HTTPEmbedder{
		apiKey:    apiKey,
		model:     model,
		baseURL:   "https://api.openai.com/v1",
		dimension: dimension,
		batchSize: 100,
		client:    &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// NewOllamaEmbedder targets a local ollama server.
func NewOllamaEmbedder(model, baseURL string) (*HTTPEmbedder, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434/v1"
	}

	dimension := 768
	switch model {
	case "nomic-embed-text":
		dimension = 768
	case "mxbai-embed-large":
		dimension = 1024
	case "all-minilm":
		dimension = 384
	}

	return &HTTPEmbedder{
		apiKey:    "ollama",
		model:     model,
		baseURL:   baseURL,
		dimension: dimension,
		batchSize: 100,
		client:    &http.Client{Timeout: 120 * time.Second},
	}, nil
}

// WithDimension overrides the dimension inferred from the model name, for
// models not in the table above.
func (e *HTTPEmbedder) WithDimension(dimension int) *HTTPEmbedder {
	if dimension > 0 {
		e.dimension = dimension
	}
	return e
}

func (e *HTTPEmbedder) Embed(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var all [][]float32
	for i := 0; i < len(texts); i += e.batchSize {
		end := i + e.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		vecs, err := e.embedBatch(texts[i:end])
		if err != nil {
			return nil, err
		}
		all = append(all, vecs...)
	}
	return all, nil
}

func (e *HTTPEmbedder) embedBatch(texts []string) ([][]float32, error) {
	jsonData, err := json.Marshal(embeddingRequest{Input: texts, Model: e.model})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", e.baseURL+"/embeddings", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %v: %w", err, domain.ErrEmbeddingUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v: %w", err, domain.ErrEmbeddingUnavailable)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding API returned status %d: %s: %w",
			resp.StatusCode, truncate(string(body), 200), domain.ErrEmbeddingUnavailable)
	}

	var embResp embeddingResponse
	if err := json.Unmarshal(body, &embResp); err != nil {
		return nil, fmt.Errorf("failed to parse response (body: %s): %v: %w",
			truncate(string(body), 200), err, domain.ErrEmbeddingUnavailable)
	}
	if embResp.Error != nil {
		return nil, fmt.Errorf("embedding API error: %s: %w", embResp.Error.Message, domain.ErrEmbeddingUnavailable)
	}

	vecs := make([][]float32, len(texts))
	for _, data := range embResp.Data {
		if data.Index < len(vecs) {
			vecs[data.Index] = data.Embedding
		}
	}
	for i, v := range vecs {
		if len(v) != e.dimension {
			return nil, fmt.Errorf("embedding %d: expected %d components, got %d: %w",
				i, e.dimension, len(v), domain.ErrEmbeddingUnavailable)
		}
	}
	return vecs, nil
}

func (e *HTTPEmbedder) Dimension() int {
	return e.dimension
}

func (e *HTTPEmbedder) ModelName() string {
	return e.model
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// MockEmbedder produces deterministic rune-derived vectors. Tests use it to
// avoid any model dependency.
type MockEmbedder struct {
	dimension int
}

func NewMockEmbedder(dimension int) *MockEmbedder {
	return &MockEmbedder{dimension: dimension}
}

func (e *MockEmbedder) Embed(texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i := range texts {
		vecs[i] = make([]float32, e.dimension)
		for j, r := range texts[i] {
			if j < e.dimension {
				vecs[i][j] = float32(r) / 1000.0
			}
		}
	}
	return vecs, nil
}

func (e *MockEmbedder) Dimension() int {
	return e.dimension
}

func (e *MockEmbedder) ModelName() string {
	return "mock"
}
