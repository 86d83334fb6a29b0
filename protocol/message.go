// Package protocol defines the conversation message types shared by the
// generation providers and the workflow state.
package protocol

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation message.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewMessage creates a message with the given role and content.
func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}

// InitMessages creates a message slice seeded with a single message.
func InitMessages(role Role, content string) []Message {
	return []Message{NewMessage(role, content)}
}

// LastContent returns the content of the final message. The second return is
// false when the slice is empty.
func LastContent(msgs []Message) (string, bool) {
	if len(msgs) == 0 {
		return "", false
	}
	return msgs[len(msgs)-1].Content, true
}
