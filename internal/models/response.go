package models

type GenerateImageResponse struct {
	Status   string `json:"status"`
	Filename string `json:"filename"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ImageSummary struct {
	UserPrompt string `json:"user_prompt"`
	S3URL      string `json:"s3_url"`
	Filename   string `json:"filename"`
}

type ImageListResponse struct {
	Status      string         `json:"status"`
	Images      []ImageSummary `json:"images"`
	Page        int            `json:"page"`
	Limit       int            `json:"limit"`
	TotalPages  int            `json:"total_pages"`
	TotalImages int64          `json:"total_images"`
}

type PromptSuggestionsResponse struct {
	Status  string   `json:"status"`
	Prompts []string `json:"prompts"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
