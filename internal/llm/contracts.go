package llm

import "context"

// Request defaults fixed by the endpoint contract.
const (
	DefaultMaxTokens = 4096
	DefaultTopP      = 1.0
	DefaultTopK      = 100
)

// ContentBlock is one element of a multimodal user message: either a text
// block or an embedded image.
type ContentBlock struct {
	Type     string    `json:"type"` // "text" | "image_url"
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL carries a base64 data URI.
type ImageURL struct {
	URL string `json:"url"`
}

type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// ChatRequest is the full inference payload posted to the endpoint.
type ChatRequest struct {
	Model            string    `json:"model"`
	MaxTokens        int       `json:"max_tokens"`
	TopP             float64   `json:"top_p"`
	TopK             int       `json:"top_k"`
	PresencePenalty  float64   `json:"presence_penalty"`
	FrequencyPenalty float64   `json:"frequency_penalty"`
	Temperature      float64   `json:"temperature"`
	Messages         []Message `json:"messages"`
}

// ChatResponse is the success envelope returned by the endpoint.
type ChatResponse struct {
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Message AssistantMessage `json:"message"`
}

type AssistantMessage struct {
	Content string `json:"content"`
}

// Usage holds token accounting from the response envelope. Absent fields
// decode to zero.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Record is the normalized shape we want from the model for one document.
type Record struct {
	Filename       string `json:"filename"`
	IDType         string `json:"id_type"`
	IDNumber       string `json:"id_number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DOB            string `json:"dob"`
	PlaceOfBirth   string `json:"place_of_birth"`
	Address        string `json:"address"`
	State          string `json:"state"`
	Country        string `json:"country"`
	Class          string `json:"class"`
	Sex            string `json:"sex"`
	Height         string `json:"hgt"`
	Weight         string `json:"wgt"`
	Hair           string `json:"hair"`
	Eyes           string `json:"eyes"`
	IssueDate      string `json:"issue_date_iss"`
	ExpirationDate string `json:"expiration_date_exp"`
}

// Sender is the transport capability the extraction pipeline depends on.
// Implementations block until the endpoint responds or the transport fails.
type Sender interface {
	Send(ctx context.Context, req ChatRequest) (ChatResponse, error)
}
