package dto

// ChatRequest is the body accepted by POST /chat.
type ChatRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Message string `json:"message"`
}

// ChatReply mirrors the legacy response contract: a human-readable message
// plus the raw updates object from the oracle. Updates is kept as a string map
// so an empty object marshals as {} and partial payloads are echoed untouched.
type ChatReply struct {
	Message string            `json:"message"`
	Updates map[string]string `json:"updates"`
}

// NewChatReply builds a reply with a guaranteed non-nil updates map.
func NewChatReply(message string, updates map[string]string) ChatReply {
	if updates == nil {
		updates = map[string]string{}
	}
	return ChatReply{Message: message, Updates: updates}
}
