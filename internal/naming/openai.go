// Package naming provides the habit naming collaborators used by the miner.
package naming

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/jengzang/habitminer/internal/analysis/habit"
)

// Default API configuration
const (
	DefaultBaseURL     = "https://openrouter.ai/api/v1"
	DefaultModel       = "meta-llama/llama-4-maverick:free"
	DefaultTemperature = 0.7
	DefaultTimeout     = 15 * time.Second
	DefaultMaxWords    = 6

	nameMaxTokens = 24
)

// ErrUnusableName is returned when the model reply cannot be used as a habit name
var ErrUnusableName = errors.New("unusable habit name")

// OpenAIConfig holds configuration for the OpenAI-compatible namer
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
	MaxWords    int
}

// OpenAINamer asks an OpenAI-compatible chat completion endpoint for a habit name
type OpenAINamer struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
	maxWords    int
	logger      *zap.Logger
}

// NewOpenAINamer creates a namer. An API key is required.
func NewOpenAINamer(cfg OpenAIConfig, logger *zap.Logger) (*OpenAINamer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("naming API key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxWords := cfg.MaxWords
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = baseURL

	return &OpenAINamer{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: cfg.Temperature,
		timeout:     timeout,
		maxWords:    maxWords,
		logger:      logger,
	}, nil
}

// Name implements habit.Namer
func (n *OpenAINamer) Name(ctx context.Context, p habit.NamingPrompt) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       n.model,
		MaxTokens:   nameMaxTokens,
		Temperature: n.temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: Prompt(p),
			},
		},
	}

	start := time.Now()
	resp, err := n.client.CreateChatCompletion(ctx, req)
	latency := time.Since(start)
	if err != nil {
		n.logger.Warn("habit naming request failed",
			zap.String("model", n.model),
			zap.Duration("latency", latency),
			zap.Error(err))
		return "", fmt.Errorf("naming request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrUnusableName)
	}

	name, err := CleanName(resp.Choices[0].Message.Content, n.maxWords)
	if err != nil {
		n.logger.Warn("habit naming returned unusable content",
			zap.String("model", n.model),
			zap.String("content", resp.Choices[0].Message.Content))
		return "", err
	}

	n.logger.Debug("habit named",
		zap.String("model", n.model),
		zap.String("name", name),
		zap.Duration("latency", latency),
		zap.Int("tokens_total", resp.Usage.TotalTokens))
	return name, nil
}

// Prompt renders the naming request sent to the model
func Prompt(p habit.NamingPrompt) string {
	days := make([]string, len(p.DaysOfWeek))
	for i, d := range p.DaysOfWeek {
		days[i] = strconv.Itoa(d)
	}

	var b strings.Builder
	b.WriteString("Based on this location pattern, suggest a concise habit name (max 5 words):\n")
	fmt.Fprintf(&b, "- Visits: %d times\n", p.VisitCount)
	fmt.Fprintf(&b, "- Time of day: %s\n", p.TimeOfDay)
	fmt.Fprintf(&b, "- Frequency: %s\n", p.Frequency)
	fmt.Fprintf(&b, "- Days: %s\n", strings.Join(days, ", "))
	b.WriteString("\nReturn ONLY the habit name, nothing else.")
	return b.String()
}

// CleanName reduces a model reply to a single habit name: the first non-empty
// line without surrounding quotes or trailing punctuation. Empty results and
// names longer than maxWords are rejected.
func CleanName(raw string, maxWords int) (string, error) {
	var line string
	for _, l := range strings.Split(raw, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			line = l
			break
		}
	}

	line = strings.Trim(line, "\"'`*")
	line = strings.TrimRight(line, ".!;:, ")
	line = strings.TrimSpace(line)

	words := strings.Fields(line)
	if len(words) == 0 {
		return "", fmt.Errorf("%w: empty", ErrUnusableName)
	}
	if maxWords > 0 && len(words) > maxWords {
		return "", fmt.Errorf("%w: %d words exceeds limit of %d", ErrUnusableName, len(words), maxWords)
	}
	return strings.Join(words, " "), nil
}
