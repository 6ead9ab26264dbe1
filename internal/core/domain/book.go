package domain

import (
	"errors"
	"time"
)

var ErrBookNotFound = errors.New("book not found")
var ErrISBNExists = errors.New("isbn already exists")
var ErrNoCopiesAvailable = errors.New("no available copies")
var ErrBookOnLoan = errors.New("book has copies on loan")

// Book is a catalog entry. AvailableCopies tracks how many physical copies
// can still be borrowed and never exceeds TotalCopies.
type Book struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	Title           string    `json:"title" bson:"title"`
	Author          string    `json:"author" bson:"author"`
	ISBN            string    `json:"isbn" bson:"isbn"`
	Description     string    `json:"description,omitempty" bson:"description,omitempty"`
	PublishYear     int       `json:"publish_year" bson:"publish_year"`
	Publisher       string    `json:"publisher,omitempty" bson:"publisher,omitempty"`
	TotalCopies     int       `json:"total_copies" bson:"total_copies"`
	AvailableCopies int       `json:"available_copies" bson:"available_copies"`
	CoverImageURL   string    `json:"cover_image_url,omitempty" bson:"cover_image_url,omitempty"`
	Categories      []string  `json:"categories,omitempty" bson:"categories,omitempty"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}

// Available reports whether at least one copy can be borrowed.
func (b *Book) Available() bool {
	return b != nil && b.AvailableCopies > 0
}
