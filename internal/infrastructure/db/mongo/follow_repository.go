package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"
)

const followsCollection = "follows"

// FollowRepository stores follow edges. The unique (follower_id, followed_id)
// index makes a double follow fail at the store.
type FollowRepository struct {
	coll *mongo.Collection
}

func NewFollowRepository(db *mongo.Database) *FollowRepository {
	return &FollowRepository{coll: db.Collection(followsCollection)}
}

type followDoc struct {
	FollowerID string    `bson:"follower_id"`
	FollowedID string    `bson:"followed_id"`
	CreatedAt  time.Time `bson:"created_at"`
}

func (r *FollowRepository) Create(ctx context.Context, followerID, followedID string) error {
	doc := followDoc{
		FollowerID: followerID,
		FollowedID: followedID,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyFollowing
		}
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

func (r *FollowRepository) Delete(ctx context.Context, followerID, followedID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"follower_id": followerID, "followed_id": followedID})
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFollowNotFound
	}
	return nil
}

func (r *FollowRepository) FollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	return r.edgeIDs(ctx, bson.M{"follower_id": followerID}, func(d followDoc) string { return d.FollowedID })
}

func (r *FollowRepository) FollowerIDs(ctx context.Context, followedID string) ([]string, error) {
	return r.edgeIDs(ctx, bson.M{"followed_id": followedID}, func(d followDoc) string { return d.FollowerID })
}

func (r *FollowRepository) edgeIDs(ctx context.Context, filter bson.M, pick func(followDoc) string) ([]string, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find follows: %w", err)
	}
	defer cur.Close(ctx)

	ids := []string{}
	for cur.Next(ctx) {
		var doc followDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode follow: %w", err)
		}
		ids = append(ids, pick(doc))
	}
	return ids, cur.Err()
}
