package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pulsecheck/internal/model"
)

var employees = []struct {
	name       string
	email      string
	department string
}{
	{"Sanne de Vries", "sanne@pulsecheck.test", "Engineering"},
	{"Tom Bakker", "tom@pulsecheck.test", "Engineering"},
	{"Lisa Jansen", "lisa@pulsecheck.test", "Engineering"},
	{"Daan Visser", "daan@pulsecheck.test", "Sales"},
	{"Emma van Dijk", "emma@pulsecheck.test", "Sales"},
	{"Bram Smit", "bram@pulsecheck.test", "Support"},
	{"Julia Meijer", "julia@pulsecheck.test", "Support"},
	{"Lars de Boer", "lars@pulsecheck.test", "Marketing"},
}

var starterQuestions = []struct {
	text  string
	qType model.QuestionType
}{
	{"Hoe energiek voelde je je deze week op het werk?", model.QuestionTypeScale},
	{"Zie je jezelf hier over een jaar nog werken?", model.QuestionTypeScale},
	{"Hoe goed voelde je je gesteund door je team?", model.QuestionTypeScale},
	{"Hoe tevreden ben je over je werk-privébalans?", model.QuestionTypeScale},
	{"Wat zou je deze week anders willen zien?", model.QuestionTypeOpen},
}

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database("pulsecheck")
	userColl := db.Collection("users")
	questionColl := db.Collection("questions")
	surveyColl := db.Collection("surveys")
	responseColl := db.Collection("responses")

	now := time.Now()

	// HR manager account
	manager := model.User{
		ID:        uuid.New().String(),
		Email:     "hr@pulsecheck.test",
		Name:      "Noor Hendriks",
		Role:      model.RoleHRManager,
		CreatedAt: now,
	}
	if _, err := userColl.InsertOne(ctx, manager); err != nil {
		log.Fatalf("Failed to insert manager: %v", err)
	}

	// Employees
	var userIDs []string
	for _, e := range employees {
		user := model.User{
			ID:         uuid.New().String(),
			Email:      e.email,
			Name:       e.name,
			Role:       model.RoleEmployee,
			Department: e.department,
			CreatedAt:  now,
		}
		if _, err := userColl.InsertOne(ctx, user); err != nil {
			log.Fatalf("Failed to insert employee %s: %v", e.email, err)
		}
		userIDs = append(userIDs, user.ID)
	}

	// Starter question set for the current week
	var questionIDs []string
	var questionTypes []model.QuestionType
	for i, q := range starterQuestions {
		question := model.Question{
			ID:        uuid.New().String(),
			Text:      q.text,
			Type:      q.qType,
			IsActive:  true,
			Order:     i,
			CreatedAt: now,
		}
		if _, err := questionColl.InsertOne(ctx, question); err != nil {
			log.Fatalf("Failed to insert question: %v", err)
		}
		questionIDs = append(questionIDs, question.ID)
		questionTypes = append(questionTypes, q.qType)
	}

	// Survey for the current ISO week
	year, week := now.ISOWeek()
	survey := model.Survey{
		ID:         uuid.New().String(),
		WeekNumber: week,
		Year:       year,
		CreatedAt:  now,
	}
	if _, err := surveyColl.InsertOne(ctx, survey); err != nil {
		log.Fatalf("Failed to insert survey: %v", err)
	}

	// One round of responses so the dashboard has data
	openAnswers := []string{
		"Meer rustige focustijd zou helpen.",
		"De sprintdruk was deze week erg hoog.",
		"Fijne samenwerking met het team gehad.",
	}
	for i, userID := range userIDs {
		for j, questionID := range questionIDs {
			resp := model.Response{
				ID:          uuid.New().String(),
				UserID:      userID,
				QuestionID:  questionID,
				SurveyID:    survey.ID,
				SubmittedAt: now,
			}
			if questionTypes[j] == model.QuestionTypeScale {
				v := 3 + rand.Intn(3)
				resp.ValueNumeric = &v
			} else {
				resp.ValueText = openAnswers[i%len(openAnswers)]
			}
			if _, err := responseColl.InsertOne(ctx, resp); err != nil {
				log.Fatalf("Failed to insert response: %v", err)
			}
		}
	}

	fmt.Printf("Seeded %d users, %d questions and responses for week %d-%d\n",
		len(userIDs)+1, len(questionIDs), week, year)
}
