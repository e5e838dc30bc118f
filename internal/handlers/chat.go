package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"visionchat/internal/contextutil"
	"visionchat/internal/imageproc"
	"visionchat/internal/llm"
	"visionchat/internal/service"
)

// ChatHandler handles HTTP requests for chat.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// ChatRequest represents the HTTP request payload for chat. Image is base64
// with no data-URI prefix.
type ChatRequest struct {
	Message             string         `json:"message"`
	Image               string         `json:"image,omitempty"`
	ConversationHistory []service.Turn `json:"conversation_history"`
}

// ChatResponse represents the HTTP response payload for chat.
type ChatResponse struct {
	Output              string         `json:"output"`
	ConversationHistory []service.Turn `json:"conversation_history"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles HTTP requests for chat.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if !isJSONRequest(r) {
		logger.WarnContext(ctx, "request data is not JSON", "content_type", r.Header.Get("Content-Type"))
		h.writeError(w, http.StatusBadRequest, "Request must be JSON")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	svcReq := service.ChatRequest{
		Message: req.Message,
		Image:   req.Image,
		History: req.ConversationHistory,
	}

	svcResp, err := h.chatService.ProcessChat(ctx, svcReq)
	if err != nil {
		h.handleServiceError(w, ctx, err)
		return
	}

	resp := ChatResponse{
		Output:              svcResp.Output,
		ConversationHistory: svcResp.History,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// handleServiceError maps service errors to the HTTP error contract:
// image processing failures are 400, provider timeouts 504, provider
// non-200 responses 500 mentioning the status code, everything else 500.
func (h *ChatHandler) handleServiceError(w http.ResponseWriter, ctx context.Context, err error) {
	logger := contextutil.LoggerFromContext(ctx)

	var procErr *imageproc.ProcessError
	if errors.As(err, &procErr) {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Error processing image: %s", procErr.Err))
		return
	}

	if errors.Is(err, llm.ErrTimeout) {
		h.writeError(w, http.StatusGatewayTimeout, "Request to AI model timed out. Please try again.")
		return
	}

	var statusErr *llm.StatusError
	if errors.As(err, &statusErr) {
		// The provider body was already logged by the service layer.
		h.writeError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to get response from the model. Status code: %d", statusErr.Code))
		return
	}

	logger.ErrorContext(ctx, "unexpected error", "error", err)
	h.writeError(w, http.StatusInternalServerError, fmt.Sprintf("An unexpected error occurred: %s", err))
}

// writeError writes an error response.
func (h *ChatHandler) writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

// isJSONRequest reports whether the request declares a JSON body.
func isJSONRequest(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
