// Package conversation derives the read views of direct messages from a
// snapshot of message records. Nothing here touches the store; callers fetch
// the records and pass them in.
package conversation

import (
	"slices"
	"strings"
	"time"

	"github.com/fathima-sithara/social-service/internal/apperr"
	"github.com/fathima-sithara/social-service/internal/domain"
	"github.com/samber/lo"
)

const (
	opPartners = "conversation.partners"
	opThread   = "conversation.thread"
	opNew      = "conversation.new_message"
)

// ListPartners returns every user that exchanged at least one message with
// userID, each once. userID itself is never listed, even when it sent a
// message to itself. The order is first-seen and carries no meaning.
func ListPartners(userID string, records []domain.Message) ([]string, error) {
	if userID == "" {
		return nil, apperr.MissingParameter(opPartners, "User email is required.")
	}
	touching := lo.Filter(records, func(m domain.Message, _ int) bool {
		return m.Involves(userID)
	})
	others := lo.Map(touching, func(m domain.Message, _ int) string {
		return otherParty(m, userID)
	})
	return lo.Without(lo.Uniq(others), userID), nil
}

// Thread returns the messages exchanged between userID and partnerID in both
// directions, oldest first. Messages with equal timestamps keep their order
// in records.
func Thread(userID, partnerID string, records []domain.Message) ([]domain.Message, error) {
	if userID == "" || partnerID == "" {
		return nil, apperr.MissingParameter(opThread, "Both user and chatWith are required.")
	}
	thread := lo.Filter(records, func(m domain.Message, _ int) bool {
		return (m.Sender == userID && m.Receiver == partnerID) ||
			(m.Sender == partnerID && m.Receiver == userID)
	})
	slices.SortStableFunc(thread, func(a, b domain.Message) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return thread, nil
}

// NewMessage builds the record to persist. Sender, receiver and timestamp are
// required; missing text or image URL become empty strings.
func NewMessage(sender, receiver, text, imageURL string, ts time.Time) (domain.Message, error) {
	if strings.TrimSpace(sender) == "" || strings.TrimSpace(receiver) == "" || ts.IsZero() {
		return domain.Message{}, apperr.Validation(opNew, "Sender, receiver, and timestamp are required.")
	}
	return domain.Message{
		Sender:    sender,
		Receiver:  receiver,
		Text:      text,
		ImageURL:  imageURL,
		Timestamp: ts.UTC(),
	}, nil
}

func otherParty(m domain.Message, userID string) string {
	if m.Sender == userID {
		return m.Receiver
	}
	return m.Sender
}
