package ports

import (
	"context"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"
)

// PageInput selects a slice of a listing. Page is zero-based.
type PageInput struct {
	Page int
	Size int
}

type CreatePostInput struct {
	AuthorID string
	Text     string
}

// PostService implements post CRUD and the timeline queries. Ownership of a
// post is enforced by the HTTP layer after loading it; the service trusts
// its callers.
type PostService interface {
	Create(ctx context.Context, input CreatePostInput) (*domain.Post, error)
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	UpdateText(ctx context.Context, id, text string) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page PageInput) ([]domain.Post, error)
	ListByUsername(ctx context.Context, username string, page PageInput) ([]domain.Post, error)
	Feed(ctx context.Context, userID string, page PageInput) ([]domain.Post, error)
}

// CommentService implements comment reads and writes on posts.
type CommentService interface {
	Add(ctx context.Context, postID, authorID, text string) (*domain.Comment, error)
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	ListByPost(ctx context.Context, postID string, page PageInput) ([]domain.Comment, error)
	Delete(ctx context.Context, id string) error
}

// LikeService implements the like/unlike pair and the public like listing.
type LikeService interface {
	Like(ctx context.Context, postID, userID string) error
	Unlike(ctx context.Context, postID, userID string) error
	ListByPost(ctx context.Context, postID string) ([]domain.Like, error)
}

// FollowService implements the follow/unfollow pair and the public
// followers/following listings.
type FollowService interface {
	Follow(ctx context.Context, followerID, targetUsername string) error
	Unfollow(ctx context.Context, followerID, targetUsername string) error
	Followers(ctx context.Context, username string) ([]domain.User, error)
	Following(ctx context.Context, username string) ([]domain.User, error)
}
