package domain

import "time"

// Message is a stored direct message. Language carries the ISO-639-1 code
// detected at ingestion time, empty when detection was inconclusive.
type Message struct {
	ID         int64
	SenderID   int64
	ReceiverID int64
	Content    string
	Language   string
	CreatedAt  time.Time
}

// ConversationMessage is a history row enriched with the sender's username,
// as returned by the conversation query.
type ConversationMessage struct {
	Message
	SenderUsername string
}
