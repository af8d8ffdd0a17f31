package repository

import (
	"context"
	"time"

	"pulsecheck/internal/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SurveyRepo handles MongoDB operations for weekly surveys
type SurveyRepo interface {
	GetByWeek(ctx context.Context, weekNumber, year int) (*model.Survey, error)
	GetOrCreate(ctx context.Context, weekNumber, year int) (*model.Survey, error)
	ListRecent(ctx context.Context, limit int) ([]*model.Survey, error)
}

type surveyRepo struct {
	collection *mongo.Collection
}

// NewSurveyRepo creates a new survey repository
func NewSurveyRepo(db *mongo.Database) SurveyRepo {
	return &surveyRepo{
		collection: db.Collection("surveys"),
	}
}

func (r *surveyRepo) GetByWeek(ctx context.Context, weekNumber, year int) (*model.Survey, error) {
	var survey model.Survey
	err := r.collection.FindOne(ctx, bson.M{"weekNumber": weekNumber, "year": year}).Decode(&survey)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepo) GetOrCreate(ctx context.Context, weekNumber, year int) (*model.Survey, error) {
	survey, err := r.GetByWeek(ctx, weekNumber, year)
	if err != nil {
		return nil, err
	}
	if survey != nil {
		return survey, nil
	}

	survey = &model.Survey{
		ID:         uuid.New().String(),
		WeekNumber: weekNumber,
		Year:       year,
		CreatedAt:  time.Now(),
	}
	if _, err := r.collection.InsertOne(ctx, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

// ListRecent returns the most recent surveys, newest first
func (r *surveyRepo) ListRecent(ctx context.Context, limit int) ([]*model.Survey, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "year", Value: -1}, {Key: "weekNumber", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var surveys []*model.Survey
	if err := cursor.All(ctx, &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}
