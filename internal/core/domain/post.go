package domain

import (
	"errors"
	"time"
)

var ErrPostNotFound = errors.New("post not found")
var ErrCommentNotFound = errors.New("comment not found")
var ErrAlreadyLiked = errors.New("post already liked")
var ErrLikeNotFound = errors.New("like not found")
var ErrAlreadyFollowing = errors.New("already following user")
var ErrFollowNotFound = errors.New("follow relationship not found")
var ErrSelfFollow = errors.New("cannot follow yourself")

// Post is a user's published message.
type Post struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at,omitempty"`
}

// Comment is a reply attached to a post.
type Comment struct {
	ID             string    `json:"id"`
	PostID         string    `json:"post_id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}

// Like records that a user liked a post. At most one per (post, user) pair.
type Like struct {
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
