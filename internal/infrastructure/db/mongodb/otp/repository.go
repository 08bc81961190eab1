package otp

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"user-admin-dashboard/internal/domain/otp"
)

const Collection = "otp_requests"

type Request struct {
	ID         string    `bson:"_id"`
	UserPhone  string    `bson:"userPhone"`
	AdminPhone string    `bson:"adminPhone"`
	OTP        string    `bson:"otp"`
	ExpiresAt  time.Time `bson:"expiresAt"`
	CreatedAt  time.Time `bson:"createdAt"`
}

type Repository struct {
	c *mongo.Collection
}

func NewRepository(db *mongo.Database) otp.Repository {
	return &Repository{c: db.Collection(Collection)}
}

// EnsureIndexes adds the lookup index and a TTL index so expired records are
// reaped by the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetName("idx_otp_expires_ttl").SetExpireAfterSeconds(0),
		},
		{
			Keys: bson.D{
				{Key: "userPhone", Value: 1},
				{Key: "adminPhone", Value: 1},
				{Key: "otp", Value: 1},
			},
			Options: options.Index().SetName("idx_otp_lookup"),
		},
		{
			Keys:    bson.D{{Key: "adminPhone", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_otp_admin_latest"),
		},
	}
	_, err := db.Collection(Collection).Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *Repository) CreateRequest(ctx context.Context, req otp.Request) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}

	_, err := r.c.InsertOne(ctx, Request{
		ID:         req.ID.String(),
		UserPhone:  req.UserPhone,
		AdminPhone: req.AdminPhone,
		OTP:        req.OTP,
		ExpiresAt:  req.ExpiresAt,
		CreatedAt:  req.CreatedAt,
	})
	return err
}

func (r *Repository) ConsumeRequest(ctx context.Context, userPhone, adminPhone, code string) (*otp.Request, error) {
	filter := bson.M{
		"userPhone":  userPhone,
		"adminPhone": adminPhone,
		"otp":        code,
	}
	opts := options.FindOneAndDelete().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var m Request
	if err := r.c.FindOneAndDelete(ctx, filter, opts).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(m), nil
}

func (r *Repository) FetchLatestByAdmin(ctx context.Context, adminPhone string) (*otp.Request, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var m Request
	if err := r.c.FindOne(ctx, bson.M{"adminPhone": adminPhone}, opts).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(m), nil
}

func fromDBModel(m Request) *otp.Request {
	// ids written by other tools may not be UUIDs; they stay Nil here.
	id, _ := uuid.Parse(m.ID)

	return &otp.Request{
		ID:         id,
		UserPhone:  m.UserPhone,
		AdminPhone: m.AdminPhone,
		OTP:        m.OTP,
		ExpiresAt:  m.ExpiresAt,
		CreatedAt:  m.CreatedAt,
	}
}
