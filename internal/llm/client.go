package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jmercado/resume-tailor/internal/prompts"
)

// Client is an abstraction over LLM providers. Temperature is passed per
// call because the summary rewrite ladder escalates it between attempts.
type Client interface {
	// GenerateContent generates text content at the given temperature
	GenerateContent(ctx context.Context, prompt string, tier ModelTier, temperature float32) (string, error)
	// GenerateJSON generates a JSON object, performing at most one repair
	// round-trip when the response does not parse
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	return NewGeminiClient(ctx, config, apiKey)
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, &APICallError{Message: "API key is required"}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &APICallError{Message: "failed to create Gemini client", Cause: err}
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateContent generates text content at the given temperature
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier, temperature float32) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", &APICallError{Message: fmt.Sprintf("no model configured for tier %s", tier)}
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &APICallError{Message: "failed to generate content", Cause: err}
	}

	return extractTextFromResponse(resp)
}

// GenerateJSON generates JSON content. When the response is not valid JSON
// it asks the same model once to repair it; a second failure is returned to
// the caller as a MalformedJSONError.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.generateJSONOnce(ctx, prompt, tier)
	if err != nil {
		return "", err
	}
	if json.Valid([]byte(text)) {
		return text, nil
	}

	// One repair round-trip: ask the model to fix its own output.
	repairTemplate := prompts.MustGet("llm.json", "repair-json")
	repairPrompt := prompts.Format(repairTemplate, map[string]string{
		"Malformed": text,
	})
	repaired, err := c.generateJSONOnce(ctx, repairPrompt, tier)
	if err != nil {
		return "", err
	}
	if !json.Valid([]byte(repaired)) {
		return "", &MalformedJSONError{Raw: repaired}
	}
	return repaired, nil
}

// generateJSONOnce issues a single JSON-mode generation request.
func (c *GeminiClient) generateJSONOnce(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", &APICallError{Message: fmt.Sprintf("no model configured for tier %s", tier)}
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for consistent structured output
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &APICallError{Message: "failed to generate content", Cause: err}
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	return CleanJSONBlock(text), nil
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &APICallError{Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &APICallError{Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &APICallError{Message: "no text parts in response"}
	}

	return strings.Join(parts, ""), nil
}
