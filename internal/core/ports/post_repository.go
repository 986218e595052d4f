package ports

import (
	"context"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"
)

// PostRepository persists posts and serves the paginated listings.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	Update(ctx context.Context, post *domain.Post) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
	FindByAuthor(ctx context.Context, authorID string, limit, offset int) ([]domain.Post, error)
	FindByAuthors(ctx context.Context, authorIDs []string, limit, offset int) ([]domain.Post, error)
	FindAll(ctx context.Context, limit, offset int) ([]domain.Post, error)
}

// CommentRepository persists comments attached to posts.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	FindByPost(ctx context.Context, postID string, limit, offset int) ([]domain.Comment, error)
	Delete(ctx context.Context, id string) error
	DeleteByPost(ctx context.Context, postID string) error
}

// LikeRepository persists like edges. Uniqueness per (post, user) is enforced
// by the store itself.
type LikeRepository interface {
	Create(ctx context.Context, like *domain.Like) error
	Delete(ctx context.Context, postID, userID string) error
	FindByPost(ctx context.Context, postID string) ([]domain.Like, error)
	DeleteByPost(ctx context.Context, postID string) error
}

// FollowRepository persists follow edges between users.
type FollowRepository interface {
	Create(ctx context.Context, followerID, followedID string) error
	Delete(ctx context.Context, followerID, followedID string) error
	FollowingIDs(ctx context.Context, followerID string) ([]string, error)
	FollowerIDs(ctx context.Context, followedID string) ([]string, error)
}
