package domain

import (
	"errors"
	"time"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrForbidden       = errors.New("access forbidden")
)

// Post is a citizen report, idea or news item. VoteCount mirrors the number
// of active votes and is only ever written from a recount.
type Post struct {
	ID         string     `json:"id" bson:"_id,omitempty"`
	AuthorID   string     `json:"author_id,omitempty" bson:"author_id,omitempty"`
	AuthorName string     `json:"author_name" bson:"author_name"`
	Title      string     `json:"title" bson:"title"`
	Content    string     `json:"content" bson:"content"`
	Kind       string     `json:"kind" bson:"kind"`
	Anonymous  bool       `json:"anonymous" bson:"anonymous"`
	State      PostState  `json:"state" bson:"state"`
	VoteCount  int64      `json:"vote_count" bson:"vote_count"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
	DeletedAt  *time.Time `json:"-" bson:"deleted_at,omitempty"`
}

// Comment is a reply on a post, optionally threaded under another comment.
type Comment struct {
	ID         string     `json:"id" bson:"_id,omitempty"`
	PostID     string     `json:"post_id" bson:"post_id"`
	ParentID   string     `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	AuthorID   string     `json:"author_id,omitempty" bson:"author_id,omitempty"`
	AuthorName string     `json:"author_name" bson:"author_name"`
	Text       string     `json:"text" bson:"text"`
	VoteCount  int64      `json:"vote_count" bson:"vote_count"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
	DeletedAt  *time.Time `json:"-" bson:"deleted_at,omitempty"`
}
