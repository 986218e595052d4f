package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PostService implements post CRUD and the timeline queries.
type PostService struct {
	posts    ports.PostRepository
	comments ports.CommentRepository
	likes    ports.LikeRepository
	users    ports.UserRepository
	follows  ports.FollowRepository
	logger   zerolog.Logger
}

func NewPostService(posts ports.PostRepository, comments ports.CommentRepository, likes ports.LikeRepository, users ports.UserRepository, follows ports.FollowRepository, logger zerolog.Logger) *PostService {
	return &PostService{
		posts:    posts,
		comments: comments,
		likes:    likes,
		users:    users,
		follows:  follows,
		logger:   logger,
	}
}

func (s *PostService) Create(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
	author, err := s.users.FindByID(ctx, input.AuthorID)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		Text:           input.Text,
		CreatedAt:      time.Now().UTC(),
	}
	return s.posts.Create(ctx, post)
}

func (s *PostService) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

func (s *PostService) UpdateText(ctx context.Context, id, text string) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Text = text
	post.UpdatedAt = time.Now().UTC()
	return s.posts.Update(ctx, post)
}

// Delete removes the post together with its comments and likes.
func (s *PostService) Delete(ctx context.Context, id string) error {
	if _, err := s.posts.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.comments.DeleteByPost(ctx, id); err != nil {
		return err
	}
	if err := s.likes.DeleteByPost(ctx, id); err != nil {
		return err
	}
	return s.posts.Delete(ctx, id)
}

// List returns the global timeline, newest first.
func (s *PostService) List(ctx context.Context, page ports.PageInput) ([]domain.Post, error) {
	limit, offset := pageBounds(page)
	return s.posts.FindAll(ctx, limit, offset)
}

func (s *PostService) ListByUsername(ctx context.Context, username string, page ports.PageInput) ([]domain.Post, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	limit, offset := pageBounds(page)
	return s.posts.FindByAuthor(ctx, user.ID, limit, offset)
}

// Feed returns the posts of everyone the user follows, newest first.
func (s *PostService) Feed(ctx context.Context, userID string, page ports.PageInput) ([]domain.Post, error) {
	ids, err := s.follows.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Post{}, nil
	}
	limit, offset := pageBounds(page)
	return s.posts.FindByAuthors(ctx, ids, limit, offset)
}

func pageBounds(page ports.PageInput) (limit, offset int) {
	size := page.Size
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	n := page.Page
	if n < 0 {
		n = 0
	}
	return size, n * size
}
