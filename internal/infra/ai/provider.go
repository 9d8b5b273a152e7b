// Package ai provides the LLM integration for the farm assistant.
// The chat layer talks to an agnostic provider interface so the
// backend can be swapped without touching the handlers.
package ai

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Message represents a chat message for the LLM.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// CompletionRequest is the input for LLM inference.
type CompletionRequest struct {
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Model       string    `json:"model,omitempty"` // Override default model
}

// CompletionResponse is the output from LLM inference.
type CompletionResponse struct {
	Content      string        `json:"content"`
	Model        string        `json:"model"`
	PromptTokens int           `json:"prompt_tokens"`
	OutputTokens int           `json:"output_tokens"`
	TotalTokens  int           `json:"total_tokens"`
	Latency      time.Duration `json:"latency"`
	FinishReason string        `json:"finish_reason"`
}

// UsageStats tracks API usage for cost monitoring.
type UsageStats struct {
	TotalRequests   int       `json:"total_requests"`
	TotalTokens     int       `json:"total_tokens"`
	TotalCostUSD    float64   `json:"total_cost_usd"`
	BudgetRemaining float64   `json:"budget_remaining"`
	LastReset       time.Time `json:"last_reset"`
}

// LLMProvider is the agnostic interface for LLM backends.
type LLMProvider interface {
	// Complete sends a prompt and returns the LLM response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// GetUsageStats returns current API usage.
	GetUsageStats() UsageStats

	// ResetUsage resets the usage counters.
	ResetUsage()

	// Name returns the provider name (for logging).
	Name() string

	// IsAvailable checks if the provider is configured.
	IsAvailable() bool
}

// BudgetGate controls spending limits for LLM calls.
type BudgetGate struct {
	mu                sync.Mutex
	DailyLimitUSD     float64
	MonthlyLimitUSD   float64
	CurrentDaySpend   float64
	CurrentMonthSpend float64
	LastDayReset      time.Time
	LastMonthReset    time.Time
}

// NewBudgetGate creates a new budget controller.
func NewBudgetGate(dailyLimit, monthlyLimit float64) *BudgetGate {
	now := time.Now()
	return &BudgetGate{
		DailyLimitUSD:   dailyLimit,
		MonthlyLimitUSD: monthlyLimit,
		LastDayReset:    now,
		LastMonthReset:  now,
	}
}

// CanSpend checks if a cost is within budget.
func (bg *BudgetGate) CanSpend(costUSD float64) bool {
	bg.mu.Lock()
	defer bg.mu.Unlock()
	bg.maybeReset()
	return (bg.CurrentDaySpend+costUSD <= bg.DailyLimitUSD) &&
		(bg.CurrentMonthSpend+costUSD <= bg.MonthlyLimitUSD)
}

// RecordSpend logs a cost.
func (bg *BudgetGate) RecordSpend(costUSD float64) {
	bg.mu.Lock()
	defer bg.mu.Unlock()
	bg.maybeReset()
	bg.CurrentDaySpend += costUSD
	bg.CurrentMonthSpend += costUSD
}

// maybeReset resets counters if day/month has changed; callers hold
// bg.mu.
func (bg *BudgetGate) maybeReset() {
	now := time.Now()

	if now.YearDay() != bg.LastDayReset.YearDay() || now.Year() != bg.LastDayReset.Year() {
		bg.CurrentDaySpend = 0
		bg.LastDayReset = now
	}

	if now.Month() != bg.LastMonthReset.Month() || now.Year() != bg.LastMonthReset.Year() {
		bg.CurrentMonthSpend = 0
		bg.LastMonthReset = now
	}
}

// GetStatus returns a human-readable budget status.
func (bg *BudgetGate) GetStatus() string {
	bg.mu.Lock()
	defer bg.mu.Unlock()
	return fmt.Sprintf("Day: $%.4f/%.2f | Month: $%.4f/%.2f",
		bg.CurrentDaySpend, bg.DailyLimitUSD, bg.CurrentMonthSpend, bg.MonthlyLimitUSD)
}

// Remaining reports the unspent monthly budget.
func (bg *BudgetGate) Remaining() float64 {
	bg.mu.Lock()
	defer bg.mu.Unlock()
	return bg.MonthlyLimitUSD - bg.CurrentMonthSpend
}
