package llm

import "encoding/json"

// Role names used in chat completion messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single message in a chat conversation.
// Content holds plain text for ordinary turns. Parts is set instead when the
// turn carries structured content, such as an inline image next to text; in
// that case Content is ignored.
type Message struct {
	Role    string
	Content string
	Parts   []ContentPart
}

// ContentPart is one element of a structured message, either a text part or
// an image part.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL references an image, typically as a data URI.
type ImageURL struct {
	URL string `json:"url"`
}

// TextPart builds a text content part.
func TextPart(text string) ContentPart {
	return ContentPart{Type: "text", Text: text}
}

// ImagePart builds an image content part for the given URL or data URI.
func ImagePart(url string) ContentPart {
	return ContentPart{Type: "image_url", ImageURL: &ImageURL{URL: url}}
}

// MarshalJSON emits the completions wire shape: content is a plain string for
// text turns and an array of parts for structured turns.
func (m Message) MarshalJSON() ([]byte, error) {
	type wireMessage struct {
		Role    string `json:"role"`
		Content any    `json:"content"`
	}
	if len(m.Parts) > 0 {
		return json.Marshal(wireMessage{Role: m.Role, Content: m.Parts})
	}
	return json.Marshal(wireMessage{Role: m.Role, Content: m.Content})
}
