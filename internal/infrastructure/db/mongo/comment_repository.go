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

const commentsCollection = "comments"

type CommentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{coll: db.Collection(commentsCollection)}
}

type commentDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	PostID         string             `bson:"post_id"`
	AuthorID       string             `bson:"author_id"`
	AuthorUsername string             `bson:"author_username"`
	Text           string             `bson:"text"`
	CreatedAt      time.Time          `bson:"created_at"`
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	doc := commentDoc{
		PostID:         comment.PostID,
		AuthorID:       comment.AuthorID,
		AuthorUsername: comment.AuthorUsername,
		Text:           comment.Text,
		CreatedAt:      comment.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	out := *comment
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &out, nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCommentNotFound
	}

	var doc commentDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CommentRepository) FindByPost(ctx context.Context, postID string, limit, offset int) ([]domain.Comment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cur, err := r.coll.Find(ctx, bson.M{"post_id": postID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find comments: %w", err)
	}
	defer cur.Close(ctx)

	comments := []domain.Comment{}
	for cur.Next(ctx) {
		var doc commentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode comment: %w", err)
		}
		comments = append(comments, *doc.toDomain())
	}
	return comments, cur.Err()
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCommentNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) DeleteByPost(ctx context.Context, postID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"post_id": postID}); err != nil {
		return fmt.Errorf("delete comments by post: %w", err)
	}
	return nil
}

func (d *commentDoc) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:             d.ID.Hex(),
		PostID:         d.PostID,
		AuthorID:       d.AuthorID,
		AuthorUsername: d.AuthorUsername,
		Text:           d.Text,
		CreatedAt:      d.CreatedAt.UTC(),
	}
}
