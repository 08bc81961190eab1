package user

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"user-admin-dashboard/internal/domain/user"
)

const Collection = "users"

type Repository struct {
	c *mongo.Collection
}

func NewRepository(db *mongo.Database) user.Repository {
	return &Repository{c: db.Collection(Collection)}
}

// EnsureIndexes creates the createdAt index used by the listing sort.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(Collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("idx_users_created_desc"),
	})
	return err
}

func (r *Repository) FetchUsers(ctx context.Context) (user.Users, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.c.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var us Users
	if err = cursor.All(ctx, &us); err != nil {
		return nil, err
	}

	return fromDBModels(us), nil
}

func (r *Repository) DeleteUser(ctx context.Context, id user.ID) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return user.ErrNotFound
	}

	return nil
}

func (r *Repository) UpsertUser(ctx context.Context, u user.User) error {
	_, err := r.c.ReplaceOne(
		ctx,
		bson.M{"_id": u.ID},
		toDBModel(u),
		options.Replace().SetUpsert(true),
	)
	return err
}
