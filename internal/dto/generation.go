package dto

// GenerateRequest is the request body for quiz and flashcard generation
type GenerateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Material    string `json:"material"`
	Type        string `json:"type"`
	Count       int    `json:"count,omitempty"`
}

// GenerateResponse carries the generated records as a JSON-encoded array.
// Cache hits are indistinguishable in shape from fresh results.
type GenerateResponse struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

// TextRequest is the request body for NAVADMIN formatting and summarization
type TextRequest struct {
	Material string `json:"material"`
}

// TextResponse carries a plain-text pipeline result
type TextResponse struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
}

// HealthResponse reports service and cache health
type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
}
