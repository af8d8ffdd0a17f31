package repository

import (
	"context"
	"time"

	"pulsecheck/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResponseRepo handles MongoDB operations for survey responses
type ResponseRepo interface {
	CreateMany(ctx context.Context, responses []*model.Response) error
	ListSince(ctx context.Context, since time.Time) ([]*model.Response, error)
	ListBySurvey(ctx context.Context, surveyID string) ([]*model.Response, error)
	ListRecentOpenText(ctx context.Context, limit int) ([]string, error)
	CountByUserAndSurvey(ctx context.Context, userID, surveyID string) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountDistinctRespondents(ctx context.Context) (int, error)
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("responses"),
	}
}

func (r *responseRepo) CreateMany(ctx context.Context, responses []*model.Response) error {
	docs := make([]interface{}, 0, len(responses))
	now := time.Now()
	for _, resp := range responses {
		if resp.SubmittedAt.IsZero() {
			resp.SubmittedAt = now
		}
		docs = append(docs, resp)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *responseRepo) ListSince(ctx context.Context, since time.Time) ([]*model.Response, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"submittedAt": bson.M{"$gte": since}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.Response
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) ListBySurvey(ctx context.Context, surveyID string) ([]*model.Response, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"surveyId": surveyID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.Response
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

// ListRecentOpenText returns the newest free-text answers, used for keyword
// extraction on the dashboard
func (r *responseRepo) ListRecentOpenText(ctx context.Context, limit int) ([]string, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "submittedAt", Value: -1}}).
		SetLimit(int64(limit))
	filter := bson.M{"valueText": bson.M{"$nin": bson.A{nil, ""}}}
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.Response
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(responses))
	for _, resp := range responses {
		texts = append(texts, resp.ValueText)
	}
	return texts, nil
}

func (r *responseRepo) CountByUserAndSurvey(ctx context.Context, userID, surveyID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"userId": userID, "surveyId": surveyID})
}

func (r *responseRepo) CountAll(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *responseRepo) CountDistinctRespondents(ctx context.Context) (int, error) {
	ids, err := r.collection.Distinct(ctx, "userId", bson.M{})
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}
