package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"
)

const likesCollection = "likes"

// LikeRepository stores like edges. The unique (post_id, user_id) index turns
// a concurrent double-like into a duplicate-key error.
type LikeRepository struct {
	coll *mongo.Collection
}

func NewLikeRepository(db *mongo.Database) *LikeRepository {
	return &LikeRepository{coll: db.Collection(likesCollection)}
}

type likeDoc struct {
	PostID    string    `bson:"post_id"`
	UserID    string    `bson:"user_id"`
	Username  string    `bson:"username"`
	CreatedAt time.Time `bson:"created_at"`
}

func (r *LikeRepository) Create(ctx context.Context, like *domain.Like) error {
	doc := likeDoc{
		PostID:    like.PostID,
		UserID:    like.UserID,
		Username:  like.Username,
		CreatedAt: like.CreatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyLiked
		}
		return fmt.Errorf("insert like: %w", err)
	}
	return nil
}

func (r *LikeRepository) Delete(ctx context.Context, postID, userID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"post_id": postID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrLikeNotFound
	}
	return nil
}

func (r *LikeRepository) FindByPost(ctx context.Context, postID string) ([]domain.Like, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.coll.Find(ctx, bson.M{"post_id": postID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find likes: %w", err)
	}
	defer cur.Close(ctx)

	likes := []domain.Like{}
	for cur.Next(ctx) {
		var doc likeDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode like: %w", err)
		}
		likes = append(likes, domain.Like{
			PostID:    doc.PostID,
			UserID:    doc.UserID,
			Username:  doc.Username,
			CreatedAt: doc.CreatedAt.UTC(),
		})
	}
	return likes, cur.Err()
}

func (r *LikeRepository) DeleteByPost(ctx context.Context, postID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"post_id": postID}); err != nil {
		return fmt.Errorf("delete likes by post: %w", err)
	}
	return nil
}
