// Package ai - gemini.go
// Google Gemini adapter implementing the LLMProvider interface.
// Flash is the default: the assistant answers short agronomy questions
// and does not need a heavyweight model.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/agrinexus/farm-twin/internal/platform/metrics"
)

// GeminiProvider implements LLMProvider for the Google Gemini API.
type GeminiProvider struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	budgetGate *BudgetGate

	mu         sync.Mutex
	usageStats UsageStats
}

// Gemini API structures
type geminiRequest struct {
	SystemInstruction *geminiContent   `json:"systemInstruction,omitempty"`
	Contents          []geminiContent  `json:"contents"`
	GenerationConfig  geminiGenConfig  `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	Temperature     float64 `json:"temperature,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
	ModelVersion string `json:"modelVersion"`
}

// NewGeminiProvider creates a new Gemini adapter. The API key comes
// from the GEMINI_API_KEY environment variable.
func NewGeminiProvider(budgetGate *BudgetGate) *GeminiProvider {
	return &GeminiProvider{
		apiKey:     os.Getenv("GEMINI_API_KEY"),
		baseURL:    "https://generativelanguage.googleapis.com/v1beta/models",
		model:      "gemini-1.5-flash",
		httpClient: &http.Client{Timeout: 60 * time.Second},
		budgetGate: budgetGate,
	}
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string {
	return "Google Gemini"
}

// IsAvailable checks if the API key is configured.
func (p *GeminiProvider) IsAvailable() bool {
	return p.apiKey != ""
}

// Complete sends a completion request to Gemini.
func (p *GeminiProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if !p.IsAvailable() {
		return nil, fmt.Errorf("Gemini API key not configured")
	}

	estimatedCost := p.estimateCost(req)
	if !p.budgetGate.CanSpend(estimatedCost) {
		return nil, fmt.Errorf("budget limit exceeded: %s", p.budgetGate.GetStatus())
	}

	// Gemini carries the system prompt separately and names the
	// assistant role "model".
	var system *geminiContent
	var contents []geminiContent
	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			system = &geminiContent{Parts: []geminiPart{{Text: m.Content}}}
		case "assistant":
			contents = append(contents, geminiContent{Role: "model", Parts: []geminiPart{{Text: m.Content}}})
		default:
			contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: m.Content}}})
		}
	}

	model := p.model
	if req.Model != "" {
		model = req.Model
	}

	gemReq := geminiRequest{
		SystemInstruction: system,
		Contents:          contents,
		GenerationConfig: geminiGenConfig{
			MaxOutputTokens: req.MaxTokens,
			Temperature:     req.Temperature,
		},
	}

	body, err := json.Marshal(gemReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", p.baseURL, model, p.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()
	latency := time.Since(start)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(respBody, &gemResp); err != nil {
		return nil, fmt.Errorf("failed to parse gemini response: %w", err)
	}
	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	totalTokens := gemResp.UsageMetadata.TotalTokenCount
	actualCost := p.calculateCost(totalTokens, model)
	p.budgetGate.RecordSpend(actualCost)
	metrics.Get().RecordLLMUsage(gemResp.UsageMetadata.PromptTokenCount,
		gemResp.UsageMetadata.CandidatesTokenCount, actualCost)

	p.mu.Lock()
	p.usageStats.TotalRequests++
	p.usageStats.TotalTokens += totalTokens
	p.usageStats.TotalCostUSD += actualCost
	p.mu.Unlock()

	return &CompletionResponse{
		Content:      gemResp.Candidates[0].Content.Parts[0].Text,
		Model:        model,
		PromptTokens: gemResp.UsageMetadata.PromptTokenCount,
		OutputTokens: gemResp.UsageMetadata.CandidatesTokenCount,
		TotalTokens:  totalTokens,
		Latency:      latency,
		FinishReason: gemResp.Candidates[0].FinishReason,
	}, nil
}

// estimateCost estimates cost before making a request.
func (p *GeminiProvider) estimateCost(req CompletionRequest) float64 {
	estimatedTokens := 2000 + req.MaxTokens
	return p.calculateCost(estimatedTokens, p.model)
}

// calculateCost computes actual cost based on tokens.
func (p *GeminiProvider) calculateCost(tokens int, model string) float64 {
	// Flash: ~$0.075/1M input, ~$0.30/1M output. Averaged.
	switch model {
	case "gemini-1.5-flash":
		return float64(tokens) * 0.0000002
	case "gemini-1.5-pro":
		return float64(tokens) * 0.000003
	default:
		return float64(tokens) * 0.000001
	}
}

// GetUsageStats returns current usage statistics.
func (p *GeminiProvider) GetUsageStats() UsageStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	stats := p.usageStats
	stats.BudgetRemaining = p.budgetGate.Remaining()
	return stats
}

// ResetUsage resets all usage counters.
func (p *GeminiProvider) ResetUsage() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.usageStats = UsageStats{LastReset: time.Now()}
}

// Ensure GeminiProvider implements LLMProvider
var _ LLMProvider = (*GeminiProvider)(nil)
