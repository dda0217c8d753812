package models

import "time"

// ImageRecord is the metadata document stored for every generated artifact.
// Field names match the wire format served by the list endpoint, so existing
// frontends keep working against the same JSON.
type ImageRecord struct {
	UserPrompt  string    `bson:"user_prompt" json:"user_prompt"`
	FirstPrompt string    `bson:"first_prompt" json:"first_prompt,omitempty"`
	NewPrompt   string    `bson:"new_prompt" json:"new_prompt,omitempty"`
	S3URL       string    `bson:"s3_url" json:"s3_url"`
	Filename    string    `bson:"filename" json:"filename"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// PromptLog is a write-only audit entry for every submitted prompt, recorded
// before moderation so rejected prompts are observable too.
type PromptLog struct {
	Prompt    string    `bson:"prompt"`
	CreatedAt time.Time `bson:"created_at"`
}
