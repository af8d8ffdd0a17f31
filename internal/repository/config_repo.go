package repository

import (
	"context"
	"time"

	"pulsecheck/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// pulseConfigKey is the single-document key for the pulse configuration
const pulseConfigKey = "pulse_config"

// PulseConfigRepo handles MongoDB operations for the pulse configuration
type PulseConfigRepo interface {
	Get(ctx context.Context) (*model.PulseConfig, error)
	Upsert(ctx context.Context, cfg *model.PulseConfig) error
}

type pulseConfigRepo struct {
	collection *mongo.Collection
}

// NewPulseConfigRepo creates a new pulse config repository
func NewPulseConfigRepo(db *mongo.Database) PulseConfigRepo {
	return &pulseConfigRepo{
		collection: db.Collection("config"),
	}
}

type pulseConfigDoc struct {
	Key    string            `bson:"_id"`
	Config model.PulseConfig `bson:"config"`
}

func (r *pulseConfigRepo) Get(ctx context.Context) (*model.PulseConfig, error) {
	var doc pulseConfigDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": pulseConfigKey}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc.Config, nil
}

func (r *pulseConfigRepo) Upsert(ctx context.Context, cfg *model.PulseConfig) error {
	cfg.UpdatedAt = time.Now()
	doc := pulseConfigDoc{Key: pulseConfigKey, Config: *cfg}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": pulseConfigKey}, doc, opts)
	return err
}
