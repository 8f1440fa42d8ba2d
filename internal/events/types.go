package events

type MessageReceived struct {
	SenderID  string `json:"sender_id"`
	MessageID string `json:"message_id"`
	Keywords  int    `json:"keywords"`
}

type ReplySent struct {
	SenderID  string `json:"sender_id"`
	MessageID string `json:"message_id"`
	Outcome   string `json:"outcome"`
	Matches   int    `json:"matches"`
}
