package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_completion_client.go -package=mocks visionchat/internal/service CompletionClient
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_image_compressor.go -package=mocks visionchat/internal/service ImageCompressor
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_service.go -package=mocks -mock_names=ChatService=MockChatService visionchat/internal/service ChatService

import (
	"context"
	"errors"
	"strings"

	"visionchat/internal/contextutil"
	"visionchat/internal/llm"
)

// defaultImageInstruction is used in place of the user's message when an
// image arrives with no accompanying text.
const defaultImageInstruction = "provide a detailed description of this image, focusing on key elements, colors, composition, and any notable features."

// historyPlaceholder stands in for the user turn in the returned history
// after an image analysis with no message text.
const historyPlaceholder = "Image analysis request"

// CompletionClient is an interface for the vision completion provider.
// This interface is defined from the service layer's perspective (consumer-first).
type CompletionClient interface {
	// Complete sends an assembled message list and returns the generated text.
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

// ImageCompressor re-encodes a base64 image to fit provider constraints.
type ImageCompressor interface {
	Compress(encoded string) (string, error)
}

// Turn is one entry in the client-owned conversation history. The server
// never stores it past the request/response cycle.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a chat request in the domain layer. Image, when
// set, is a base64 image with no data-URI prefix.
type ChatRequest struct {
	Message string
	Image   string
	History []Turn
}

// ChatResponse represents a chat response in the domain layer. History is
// the updated conversation the client resubmits on its next turn.
type ChatResponse struct {
	Output  string
	History []Turn
}

// ChatService relays chat requests to the vision completion provider.
type ChatService interface {
	// ProcessChat processes a chat request and returns the generated text
	// plus the updated conversation history.
	ProcessChat(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// chatService implements ChatService.
type chatService struct {
	client       CompletionClient
	compressor   ImageCompressor
	systemPrompt string
}

// NewChatService creates a new ChatService.
func NewChatService(client CompletionClient, compressor ImageCompressor, systemPrompt string) ChatService {
	return &chatService{
		client:       client,
		compressor:   compressor,
		systemPrompt: systemPrompt,
	}
}

// ProcessChat validates the request, builds the provider payload (branching
// on image presence), performs the single provider call, and assembles the
// updated history.
func (s *chatService) ProcessChat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	message := strings.TrimSpace(req.Message)
	history := req.History
	if history == nil {
		history = []Turn{}
	}

	logger.InfoContext(ctx, "processing chat request",
		"message_length", len(message), "has_image", req.Image != "", "history_turns", len(history))

	var messages []llm.Message
	if req.Image != "" {
		processed, err := s.compressor.Compress(req.Image)
		if err != nil {
			logger.WarnContext(ctx, "image compression failed", "error", err)
			return ChatResponse{}, err
		}
		messages = s.buildImageMessages(processed, message)
	} else {
		messages = s.buildTextMessages(history, message)
	}

	reply, err := s.client.Complete(ctx, messages)
	if err != nil {
		var statusErr *llm.StatusError
		if errors.As(err, &statusErr) {
			// The provider body is logged here and nowhere else; it must not
			// reach the client.
			logger.ErrorContext(ctx, "completion endpoint error",
				"status", statusErr.Code, "body", statusErr.Body)
		} else {
			logger.ErrorContext(ctx, "completion request failed", "error", err)
		}
		return ChatResponse{}, WrapError(err, "failed to get completion")
	}

	var updated []Turn
	if req.Image != "" {
		// After an image analysis the prior history is discarded: the
		// returned history is exactly the synthesized user turn plus the
		// assistant reply.
		placeholder := message
		if placeholder == "" {
			placeholder = historyPlaceholder
		}
		updated = []Turn{
			{Role: llm.RoleUser, Content: placeholder},
			{Role: llm.RoleAssistant, Content: reply},
		}
	} else {
		// Only the assistant turn is appended server-side; clients append
		// their own user turn before resubmitting.
		updated = truncate(append(history, Turn{Role: llm.RoleAssistant, Content: reply}), s.systemPrompt)
	}

	logger.InfoContext(ctx, "chat request processed", "reply_length", len(reply), "history_turns", len(updated))

	return ChatResponse{
		Output:  strings.TrimSpace(reply),
		History: updated,
	}, nil
}

// buildImageMessages produces the single structured user turn for an image
// request. The system prompt is folded into the user text because the
// provider accepts no separate system turn alongside image content. The
// supplied history is deliberately not consulted.
func (s *chatService) buildImageMessages(processedImage, message string) []llm.Message {
	instruction := message
	if instruction == "" {
		instruction = defaultImageInstruction
	}
	enhanced := s.systemPrompt + "\n\nBased on the above instructions, please " + instruction

	return []llm.Message{
		{
			Role: llm.RoleUser,
			Parts: []llm.ContentPart{
				llm.ImagePart("data:image/jpeg;base64," + processedImage),
				llm.TextPart(enhanced),
			},
		},
	}
}

// buildTextMessages seeds the payload with the system turn, extends it with
// the supplied history minus its first element, and appends the new user
// turn. The first history element is skipped whatever its role: by
// convention it duplicates the system turn.
func (s *chatService) buildTextMessages(history []Turn, message string) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: s.systemPrompt})
	if len(history) > 0 {
		for _, turn := range history[1:] {
			messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
		}
	}
	return append(messages, llm.Message{Role: llm.RoleUser, Content: message})
}
