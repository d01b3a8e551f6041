package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a direct message between two users. Sender and Receiver are
// opaque identifiers (the clients send e-mail addresses). Records are never
// updated once stored.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Sender    string             `bson:"sender" json:"sender"`
	Receiver  string             `bson:"receiver" json:"receiver"`
	Text      string             `bson:"text" json:"text"`
	ImageURL  string             `bson:"imageUrl" json:"imageUrl"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// ConversationKey is the same for both directions of a pair.
func (m Message) ConversationKey() string {
	a, b := m.Sender, m.Receiver
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// Involves reports whether id is the sender or the receiver.
func (m Message) Involves(id string) bool {
	return m.Sender == id || m.Receiver == id
}
