package domain

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxEpochMillis is the range of a JavaScript Date.
const maxEpochMillis = 8.64e15

// FromEpochMillis converts epoch milliseconds, rejecting NaN and values a
// client clock could never produce.
func FromEpochMillis(ms float64) (time.Time, bool) {
	if math.IsNaN(ms) || math.Abs(ms) > maxEpochMillis {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}

// ParseTimestamp accepts RFC 3339 or a decimal count of epoch milliseconds.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		if t, ok := FromEpochMillis(ms); ok {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// timestampFromBSON reads the timestamp field however it was written. Older
// records hold whatever the client sent: a date, epoch millis or a string.
func timestampFromBSON(v bson.RawValue) (time.Time, error) {
	switch v.Type {
	case 0, bsontype.Null, bsontype.Undefined:
		return time.Time{}, nil
	case bsontype.DateTime:
		return v.Time().UTC(), nil
	case bsontype.Timestamp:
		sec, _ := v.Timestamp()
		return time.Unix(int64(sec), 0).UTC(), nil
	case bsontype.Int64:
		if t, ok := FromEpochMillis(float64(v.Int64())); ok {
			return t, nil
		}
	case bsontype.Int32:
		return time.UnixMilli(int64(v.Int32())).UTC(), nil
	case bsontype.Double:
		if t, ok := FromEpochMillis(v.Double()); ok {
			return t, nil
		}
	case bsontype.String:
		return ParseTimestamp(v.StringValue())
	}
	return time.Time{}, fmt.Errorf("cannot decode %s into a timestamp", v.Type)
}

type storedMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Sender    string             `bson:"sender"`
	Receiver  string             `bson:"receiver"`
	Text      string             `bson:"text"`
	ImageURL  string             `bson:"imageUrl"`
	Timestamp bson.RawValue      `bson:"timestamp"`
}

// UnmarshalBSON tolerates the timestamp encodings found in older documents.
func (m *Message) UnmarshalBSON(data []byte) error {
	var doc storedMessage
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}
	ts, err := timestampFromBSON(doc.Timestamp)
	if err != nil {
		return err
	}
	*m = Message{
		ID:        doc.ID,
		Sender:    doc.Sender,
		Receiver:  doc.Receiver,
		Text:      doc.Text,
		ImageURL:  doc.ImageURL,
		Timestamp: ts,
	}
	return nil
}
