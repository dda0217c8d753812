package imagegen_test

import (
	"context"
	"fmt"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mascot-logo-backend/internal/imagegen"
)

type fakeImages struct {
	resp openai.ImageResponse
	err  error
	reqs []openai.ImageRequest
}

func (f *fakeImages) CreateImage(_ context.Context, req openai.ImageRequest) (openai.ImageResponse, error) {
	f.reqs = append(f.reqs, req)
	return f.resp, f.err
}

func TestGenerate(t *testing.T) {
	images := &fakeImages{resp: openai.ImageResponse{
		Data: []openai.ImageResponseDataInner{{URL: "https://provider.example/img.png"}},
	}}
	gen := imagegen.NewOpenAIGeneratorWithClient(images, "dall-e-3")

	url, err := gen.Generate(context.Background(), "cowboy mascot logo")
	require.NoError(t, err)

	assert.Equal(t, "https://provider.example/img.png", url)
	require.Len(t, images.reqs, 1)
	assert.Equal(t, "dall-e-3", images.reqs[0].Model)
	assert.Equal(t, 1, images.reqs[0].N)
	assert.Equal(t, openai.CreateImageSize1024x1024, images.reqs[0].Size)
}

func TestGenerate_EmptyPrompt(t *testing.T) {
	gen := imagegen.NewOpenAIGeneratorWithClient(&fakeImages{}, "dall-e-3")

	_, err := gen.Generate(context.Background(), "")

	assert.Error(t, err)
}

func TestGenerate_ProviderFailure(t *testing.T) {
	images := &fakeImages{err: fmt.Errorf("quota exhausted")}
	gen := imagegen.NewOpenAIGeneratorWithClient(images, "dall-e-3")

	_, err := gen.Generate(context.Background(), "cowboy")

	assert.ErrorContains(t, err, "failed to generate image")
}

func TestGenerate_EmptyResponse(t *testing.T) {
	gen := imagegen.NewOpenAIGeneratorWithClient(&fakeImages{}, "dall-e-3")

	_, err := gen.Generate(context.Background(), "cowboy")

	assert.ErrorContains(t, err, "no URL")
}
