package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a feed entry. At least one of Text and Image is non-empty.
type Post struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Text       string             `bson:"text,omitempty" json:"text,omitempty"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	Author     string             `bson:"author" json:"author"`
	AuthorName string             `bson:"authorName" json:"authorName"`
	Date       time.Time          `bson:"date" json:"date"`
}
