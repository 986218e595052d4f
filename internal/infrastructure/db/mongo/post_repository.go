package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"
)

const postsCollection = "posts"

type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(postsCollection)}
}

type postDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	AuthorID       string             `bson:"author_id"`
	AuthorUsername string             `bson:"author_username"`
	Text           string             `bson:"text"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at,omitempty"`
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	doc := postDoc{
		AuthorID:       post.AuthorID,
		AuthorUsername: post.AuthorUsername,
		Text:           post.Text,
		CreatedAt:      post.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	out := *post
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &out, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	var doc postDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(post.ID)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"text":       post.Text,
		"updated_at": post.UpdatedAt,
	}})
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) FindByAuthor(ctx context.Context, authorID string, limit, offset int) ([]domain.Post, error) {
	return r.findPage(ctx, bson.M{"author_id": authorID}, limit, offset)
}

func (r *PostRepository) FindByAuthors(ctx context.Context, authorIDs []string, limit, offset int) ([]domain.Post, error) {
	return r.findPage(ctx, bson.M{"author_id": bson.M{"$in": authorIDs}}, limit, offset)
}

func (r *PostRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	return r.findPage(ctx, bson.M{}, limit, offset)
}

func (r *PostRepository) findPage(ctx context.Context, filter bson.M, limit, offset int) ([]domain.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cur.Close(ctx)

	posts := []domain.Post{}
	for cur.Next(ctx) {
		var doc postDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, *doc.toDomain())
	}
	return posts, cur.Err()
}

func (d *postDoc) toDomain() *domain.Post {
	return &domain.Post{
		ID:             d.ID.Hex(),
		AuthorID:       d.AuthorID,
		AuthorUsername: d.AuthorUsername,
		Text:           d.Text,
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}
}
