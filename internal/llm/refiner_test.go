package llm_test

import (
	"context"
	"fmt"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mascot-logo-backend/internal/llm"
)

// fakeChat scripts one reply per call and records the system prompts it saw.
type fakeChat struct {
	replies []string
	calls   int
	systems []string
	err     error
}

func (f *fakeChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	if f.calls >= len(f.replies) {
		return openai.ChatCompletionResponse{}, fmt.Errorf("unexpected call %d", f.calls)
	}
	f.systems = append(f.systems, req.Messages[0].Content)
	reply := f.replies[f.calls]
	f.calls++
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: reply}},
		},
	}, nil
}

func newTestClient(chat *fakeChat) *llm.Client {
	return llm.NewClientWithCompleter(chat, "gpt-4o-mini", zap.NewNop())
}

func TestRefine_RunsAllThreeStages(t *testing.T) {
	chat := &fakeChat{replies: []string{
		"A Cowboy Mascot",
		"A detailed cowboy mascot logo on a white background",
		"Cowboy mascot logo, white background",
	}}

	outcome, err := newTestClient(chat).Refine(context.Background(), "cowboy")
	require.NoError(t, err)

	assert.False(t, outcome.Rejected)
	assert.Equal(t, "A detailed cowboy mascot logo on a white background", outcome.Expanded)
	assert.Equal(t, "Cowboy mascot logo, white background", outcome.Final)
	assert.Equal(t, 3, chat.calls)
}

func TestRefine_ModerationRejectionShortCircuits(t *testing.T) {
	chat := &fakeChat{replies: []string{
		"Error: Inappropriate Prompt: contains graphic violence",
	}}

	outcome, err := newTestClient(chat).Refine(context.Background(), "something nasty")
	require.NoError(t, err)

	assert.True(t, outcome.Rejected)
	assert.Equal(t, "contains graphic violence", outcome.Reason)
	// No expansion or condensation call after the rejection.
	assert.Equal(t, 1, chat.calls)
}

func TestRefine_StageFailurePropagates(t *testing.T) {
	chat := &fakeChat{err: fmt.Errorf("upstream timeout")}

	_, err := newTestClient(chat).Refine(context.Background(), "cowboy")

	assert.ErrorContains(t, err, "moderation stage")
}

func TestModerate_SentinelAnywhereInReply(t *testing.T) {
	chat := &fakeChat{replies: []string{
		"I'm sorry. Error: Inappropriate Prompt - hateful content",
	}}

	res, err := newTestClient(chat).Moderate(context.Background(), "bad")
	require.NoError(t, err)

	assert.False(t, res.OK)
}

func TestSuggestPrompts(t *testing.T) {
	cases := []struct {
		name    string
		reply   string
		want    []string
		wantErr bool
	}{
		{
			name:  "clean array",
			reply: `["Eagle Mascot", "Bulldog Logo", "Viking Helmet"]`,
			want:  []string{"Eagle Mascot", "Bulldog Logo", "Viking Helmet"},
		},
		{
			name:  "array wrapped in prose",
			reply: "Sure! Here are some ideas: [\"Tiger\", \"Longhorn Bull\", \"Wolverine\"] Enjoy!",
			want:  []string{"Tiger", "Longhorn Bull", "Wolverine"},
		},
		{
			name:    "no brackets",
			reply:   "I cannot produce JSON right now.",
			wantErr: true,
		},
		{
			name:    "window too short",
			reply:   "[]",
			wantErr: true,
		},
		{
			name:    "single quotes are not JSON",
			reply:   "['prompt 1', 'prompt 2', 'prompt 3']",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chat := &fakeChat{replies: []string{tc.reply}}
			prompts, err := newTestClient(chat).SuggestPrompts(context.Background())
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, prompts)
		})
	}
}
