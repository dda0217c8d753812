// Package llm wraps the OpenAI chat API for the prompt work this service
// needs: the three-stage refinement chain that turns a raw user prompt into a
// generation-ready one, and the random prompt suggestions endpoint.
package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ModerationSentinel is the exact substring the moderation stage is instructed
// to emit when it cannot repair a prompt. Detection is a plain substring match.
const ModerationSentinel = "Error: Inappropriate Prompt"

const (
	moderationSystemPrompt = "You are an expert at making sure prompts use the appropriate language " +
		"and fixing them for a fantasy football mascot prompt. If you received a prompt that is not " +
		"appropriate, fix it into a fantasy football mascot prompt. If you are unable to please return " +
		"with 'Error: Inappropriate Prompt' and the reason why."

	expansionSystemPrompt = "You are an expert at creating prompts for Dall-E. Update the prompt you " +
		"received so that it is more specific and detailed and used so a user can create a fantasy " +
		"football logo. Make sure to always use a white background."

	condensationSystemPrompt = "You are an expert at keeping prompts concise and just a few sentences. " +
		"Update the prompt you received so that it's simple and to the point. Ensure white background " +
		"is strictly enforced."

	suggestionSystemPrompt = "You are an expert at generating prompts for Dall-E in JSON. Create 3 " +
		"different prompts for a user to choose from for a fantasy football mascot logo, ensure you " +
		"leverage actual mascots from NFL, college or high school teams. Should just be a few words " +
		"and put it in json format: ['prompt 1', 'prompt 2', 'prompt 3']"
)

// generationConstraints is appended to every moderated prompt before the
// expansion stage. The white background is load-bearing: the transparency
// filter keys off near-white pixels.
const generationConstraints = ". Do not include any text. Football Mascot Type Logo. " +
	"Strictly always use a white background."

// chatCompleter is the slice of the OpenAI client this package uses.
// *openai.Client satisfies it; tests inject fakes.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Client struct {
	chat   chatCompleter
	model  string
	logger *zap.Logger
}

func NewClient(apiKey, baseURL, model string, logger *zap.Logger) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		chat:   openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}
}

// NewClientWithCompleter builds a Client around an existing chat implementation.
func NewClientWithCompleter(chat chatCompleter, model string, logger *zap.Logger) *Client {
	return &Client{chat: chat, model: model, logger: logger}
}

// complete runs a single system+user chat call and returns the first choice.
func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
	}
	if userPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: userPrompt,
		})
	}

	resp, err := c.chat.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
