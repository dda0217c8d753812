// Package imagegen invokes the image-generation model and hands back the
// transient URL of the produced asset.
package imagegen

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Generator produces one image for a finished prompt. The returned URL is
// temporary and hosted by the provider; callers must download it promptly.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type imageCreator interface {
	CreateImage(ctx context.Context, req openai.ImageRequest) (openai.ImageResponse, error)
}

// OpenAIGenerator implements Generator against the DALL-E API. It requests
// exactly one square 1024x1024 image per call and applies no retries; provider
// failures surface to the caller.
type OpenAIGenerator struct {
	images imageCreator
	model  string
}

func NewOpenAIGenerator(apiKey, baseURL, model string) *OpenAIGenerator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIGenerator{
		images: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// NewOpenAIGeneratorWithClient is for tests that stub the API.
func NewOpenAIGeneratorWithClient(images imageCreator, model string) *OpenAIGenerator {
	return &OpenAIGenerator{images: images, model: model}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	resp, err := g.images.CreateImage(ctx, openai.ImageRequest{
		Model:  g.model,
		Prompt: prompt,
		N:      1,
		Size:   openai.CreateImageSize1024x1024,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate image: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("image response contained no URL")
	}

	return resp.Data[0].URL, nil
}
