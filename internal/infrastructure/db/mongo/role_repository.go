package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"
)

const rolesCollection = "roles"

// RoleRepository reads the seeded role records. A missing role is a broken
// deployment; the repository only reports it, callers decide the severity.
type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(rolesCollection)}
}

type roleDoc struct {
	Name string `bson:"name"`
}

func (r *RoleRepository) FindByName(ctx context.Context, name domain.Role) (domain.Role, error) {
	var doc roleDoc
	if err := r.coll.FindOne(ctx, bson.M{"name": string(name)}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return "", domain.ErrRoleNotFound
		}
		return "", fmt.Errorf("find role: %w", err)
	}
	return domain.Role(doc.Name), nil
}

// Seed inserts the built-in roles if absent. Used at startup so a fresh
// database satisfies the registration precondition.
func (r *RoleRepository) Seed(ctx context.Context) error {
	for _, role := range []domain.Role{domain.RoleUser, domain.RoleAdmin} {
		_, err := r.coll.UpdateOne(ctx,
			bson.M{"name": string(role)},
			bson.M{"$setOnInsert": bson.M{"name": string(role)}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("seed role %s: %w", role, err)
		}
	}
	return nil
}
