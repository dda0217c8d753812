package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ModerationResult is the tagged outcome of the moderation stage. Rejection is
// a value, not an error: the caller decides how to surface it.
type ModerationResult struct {
	OK     bool
	Prompt string // the (possibly repaired) prompt when OK
	Reason string // the model's explanation when rejected
}

// RefineOutcome carries the intermediate and final prompts of a full
// refinement run, or the rejection reason when moderation short-circuited.
type RefineOutcome struct {
	Rejected bool
	Reason   string
	Expanded string // stage b output, stored for the audit trail
	Final    string // stage c output, fed to image synthesis
}

// Moderate submits the raw user prompt to the safety gate. It runs before any
// paid image-generation call so rejected content costs one chat call, nothing
// more.
func (c *Client) Moderate(ctx context.Context, userPrompt string) (ModerationResult, error) {
	answer, err := c.complete(ctx, moderationSystemPrompt, userPrompt)
	if err != nil {
		return ModerationResult{}, fmt.Errorf("moderation stage: %w", err)
	}

	if strings.Contains(answer, ModerationSentinel) {
		reason := strings.TrimSpace(strings.TrimPrefix(answer, ModerationSentinel))
		reason = strings.TrimLeft(reason, ":.- ")
		c.logger.Info("prompt rejected by moderation", zap.String("reason", reason))
		return ModerationResult{OK: false, Reason: reason}, nil
	}

	return ModerationResult{OK: true, Prompt: answer}, nil
}

// Expand elaborates the moderated prompt into a detailed logo description.
// The fixed generation constraints are appended before the call.
func (c *Client) Expand(ctx context.Context, prompt string) (string, error) {
	expanded, err := c.complete(ctx, expansionSystemPrompt, prompt+generationConstraints)
	if err != nil {
		return "", fmt.Errorf("expansion stage: %w", err)
	}
	return expanded, nil
}

// Condense compresses the expanded prompt back down. Chat models pad their
// output; an over-long prompt degrades the image model, so expand-then-condense
// keeps the detail without the verbosity.
func (c *Client) Condense(ctx context.Context, expanded string) (string, error) {
	final, err := c.complete(ctx, condensationSystemPrompt, expanded)
	if err != nil {
		return "", fmt.Errorf("condensation stage: %w", err)
	}
	return final, nil
}

// Refine runs the three stages strictly in order. A moderation rejection stops
// the chain: no expansion, no condensation.
func (c *Client) Refine(ctx context.Context, userPrompt string) (RefineOutcome, error) {
	moderation, err := c.Moderate(ctx, userPrompt)
	if err != nil {
		return RefineOutcome{}, err
	}
	if !moderation.OK {
		return RefineOutcome{Rejected: true, Reason: moderation.Reason}, nil
	}

	expanded, err := c.Expand(ctx, moderation.Prompt)
	if err != nil {
		return RefineOutcome{}, err
	}

	final, err := c.Condense(ctx, expanded)
	if err != nil {
		return RefineOutcome{}, err
	}

	return RefineOutcome{Expanded: expanded, Final: final}, nil
}

// SuggestPrompts asks for three short mascot prompt ideas and parses them out
// of the model's free-form reply. The model is told to answer with a JSON
// array but routinely wraps it in prose, so the reply is reduced to its first
// bracket-delimited window before decoding. Any parse failure is an error;
// nothing here panics on malformed model output.
func (c *Client) SuggestPrompts(ctx context.Context) ([]string, error) {
	answer, err := c.complete(ctx, suggestionSystemPrompt, "")
	if err != nil {
		return nil, fmt.Errorf("suggestion call: %w", err)
	}

	prompts, err := extractStringArray(answer)
	if err != nil {
		c.logger.Warn("unparseable suggestion response", zap.String("answer", answer), zap.Error(err))
		return nil, fmt.Errorf("failed to parse suggestions: %w", err)
	}

	return prompts, nil
}

func extractStringArray(text string) ([]string, error) {
	start := strings.Index(text, "[")
	end := strings.Index(text, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no bracket-delimited array in response")
	}

	window := text[start : end+1]
	if len(window) < 10 {
		return nil, fmt.Errorf("array too short to hold any prompt")
	}

	var prompts []string
	if err := json.Unmarshal([]byte(window), &prompts); err != nil {
		return nil, fmt.Errorf("invalid JSON array: %w", err)
	}

	return prompts, nil
}
