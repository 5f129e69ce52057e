package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"airimpact/internal/analysis"
	"airimpact/internal/logger"
)

const systemPrompt = "You are an environmental data analyst. Given the results of a " +
	"one-sided Mann-Whitney U test comparing daily air pollution during a vehicle-restriction " +
	"policy against the same calendar window one year earlier, write a short commentary in " +
	"markdown. Explain what the numbers mean for a general audience, mention the main caveats " +
	"of a single-city before/after comparison (weather, seasonality, other interventions), " +
	"and avoid overclaiming causality. Two to four paragraphs, no headings."

// Client wraps the OpenAI API for report commentary
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new commentary client
func NewClient(apiKey, model string) *Client {
	return &Client{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// GenerateNarrative asks the model for a prose commentary on the comparison.
func (c *Client) GenerateNarrative(ctx context.Context, cmp analysis.Comparison, city string) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	prompt, err := c.buildPrompt(cmp, city)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   1024,
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	narrative := resp.Choices[0].Message.Content
	logger.Debugf("Generated narrative with %d characters", len(narrative))

	return narrative, nil
}

// buildPrompt embeds the comparison as JSON so the model sees exact figures.
func (c *Client) buildPrompt(cmp analysis.Comparison, city string) (string, error) {
	summary, err := json.MarshalIndent(cmp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal comparison: %w", err)
	}

	return fmt.Sprintf(`## Air Quality Analysis Results for %s

City: %s
Test: one-sided Mann-Whitney U (alternative: pollution lower during policy)
Significance level: %.2f

`+"```json\n%s\n```"+`

Write the commentary described in your instructions.`,
		cmp.Phase, city, analysis.SignificanceLevel, string(summary)), nil
}
