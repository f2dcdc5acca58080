package model

// ChatRole identifies who produced a conversation turn.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatTurn is one prior exchange of the current book-detail session. The
// client replays its turns on every request to give the service
// conversational memory; nothing is kept server-side between requests.
type ChatTurn struct {
	Role ChatRole `json:"role" binding:"required,oneof=user model"`
	Text string   `json:"text" binding:"required"`
}

// ChatMessage is a turn as it appears in the client transcript. It is scoped
// to a single open book-detail session and never merged into the Book record.
type ChatMessage struct {
	ID        string   `json:"id"`
	Role      ChatRole `json:"role"`
	Text      string   `json:"text"`
	Timestamp int64    `json:"timestamp"`
}
