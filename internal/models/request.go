package models

type GenerateImageRequest struct {
	Prompt string `json:"prompt"`
}
