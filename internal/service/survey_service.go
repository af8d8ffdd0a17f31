package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"pulsecheck/internal/cache"
	"pulsecheck/internal/model"
	"pulsecheck/internal/repository"

	"github.com/google/uuid"
)

var (
	// ErrAlreadySubmitted is returned when an employee resubmits the same
	// survey week
	ErrAlreadySubmitted = errors.New("survey already submitted for this week")

	// ErrNoAnswers is returned for an empty submission
	ErrNoAnswers = errors.New("submission contains no answers")
)

// SurveyService handles the weekly survey lifecycle: opening the survey for
// employees, recording submissions, and rotating questions on the pulse
// schedule
type SurveyService struct {
	surveyRepo      repository.SurveyRepo
	questionRepo    repository.QuestionRepo
	responseRepo    repository.ResponseRepo
	configRepo      repository.PulseConfigRepo
	predictionCache cache.PredictionCache
	analyticsCache  cache.AnalyticsCache
	ai              *AIService
	broadcaster     Broadcaster
}

// NewSurveyService creates a new survey service
func NewSurveyService(
	surveyRepo repository.SurveyRepo,
	questionRepo repository.QuestionRepo,
	responseRepo repository.ResponseRepo,
	configRepo repository.PulseConfigRepo,
	predictionCache cache.PredictionCache,
	analyticsCache cache.AnalyticsCache,
	ai *AIService,
) *SurveyService {
	return &SurveyService{
		surveyRepo:      surveyRepo,
		questionRepo:    questionRepo,
		responseRepo:    responseRepo,
		configRepo:      configRepo,
		predictionCache: predictionCache,
		analyticsCache:  analyticsCache,
		ai:              ai,
	}
}

// SetBroadcaster injects the WebSocket hub
func (s *SurveyService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Init returns the active questions and whether the employee has already
// answered this week
func (s *SurveyService) Init(ctx context.Context, userID string) (*model.SurveyState, error) {
	questions, err := s.questionRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	weekNumber, year := currentWeekAndYear()
	state := &model.SurveyState{
		Questions:  questions,
		WeekNumber: weekNumber,
		Year:       year,
	}

	survey, err := s.surveyRepo.GetByWeek(ctx, weekNumber, year)
	if err != nil {
		return nil, err
	}
	if survey != nil {
		count, err := s.responseRepo.CountByUserAndSurvey(ctx, userID, survey.ID)
		if err != nil {
			return nil, err
		}
		state.AlreadyAnswered = count > 0
	}
	return state, nil
}

// Submit records an employee's answers for the current week. Numeric form
// values become scale responses, everything else free text. Resubmission is
// rejected.
func (s *SurveyService) Submit(ctx context.Context, userID string, answers []model.SubmittedAnswer) error {
	if len(answers) == 0 {
		return ErrNoAnswers
	}

	weekNumber, year := currentWeekAndYear()
	survey, err := s.surveyRepo.GetOrCreate(ctx, weekNumber, year)
	if err != nil {
		return err
	}

	count, err := s.responseRepo.CountByUserAndSurvey(ctx, userID, survey.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadySubmitted
	}

	responses := make([]*model.Response, 0, len(answers))
	for _, a := range answers {
		resp := &model.Response{
			ID:         uuid.New().String(),
			UserID:     userID,
			QuestionID: a.QuestionID,
			SurveyID:   survey.ID,
		}
		if n, err := strconv.Atoi(a.Value); err == nil {
			resp.ValueNumeric = &n
		} else {
			resp.ValueText = a.Value
		}
		responses = append(responses, resp)
	}

	if err := s.responseRepo.CreateMany(ctx, responses); err != nil {
		return err
	}

	// New data invalidates cached predictions and analytics
	if err := s.predictionCache.InvalidateChurn(ctx); err != nil {
		log.Printf("prediction cache invalidation failed: %v", err)
	}
	if err := s.analyticsCache.Invalidate(ctx); err != nil {
		log.Printf("analytics cache invalidation failed: %v", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastDashboard("survey_submitted", map[string]interface{}{
			"weekNumber": weekNumber,
			"year":       year,
		})
	}
	return nil
}

// RunWeeklyGeneration rotates the active questions on the configured pulse
// schedule: weekly on Mondays, biweekly on the 1st and 15th, monthly on the
// 1st. force bypasses the schedule check.
func (s *SurveyService) RunWeeklyGeneration(ctx context.Context, force bool) (string, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return "", err
	}

	frequency := model.FrequencyWeekly
	if cfg != nil && cfg.PulseFrequency != "" {
		frequency = cfg.PulseFrequency
	}

	if !force && !shouldRunNow(frequency, time.Now()) {
		return fmt.Sprintf("Skipped: frequency is set to '%s'. Use force=true to override.", frequency), nil
	}

	weekNumber, year := currentWeekAndYear()
	locale := "nl"
	if cfg != nil && cfg.Language != "" {
		locale = cfg.Language
	}

	recent, err := s.questionRepo.ListRecentTexts(ctx, 12)
	if err != nil {
		return "", err
	}

	generated := s.ai.GenerateWeeklyQuestions(ctx, weekNumber, year, cfg, recent, locale)

	if err := s.questionRepo.DeactivateAll(ctx); err != nil {
		return "", err
	}
	for i, gq := range generated {
		question := &model.Question{
			ID:       uuid.New().String(),
			Text:     gq.Text,
			Type:     gq.Type,
			IsActive: true,
			Order:    i,
		}
		if err := s.questionRepo.Create(ctx, question); err != nil {
			return "", err
		}
	}

	// Make sure the survey row for this week exists before answers arrive
	if _, err := s.surveyRepo.GetOrCreate(ctx, weekNumber, year); err != nil {
		return "", err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastDashboard("questions_rotated", map[string]interface{}{
			"weekNumber": weekNumber,
			"year":       year,
			"count":      len(generated),
		})
	}
	return fmt.Sprintf("Generated %d questions for week %d, %d.", len(generated), weekNumber, year), nil
}

// shouldRunNow applies the pulse frequency schedule
func shouldRunNow(frequency model.PulseFrequency, now time.Time) bool {
	switch frequency {
	case model.FrequencyBiweekly:
		return now.Day() == 1 || now.Day() == 15
	case model.FrequencyMonthly:
		return now.Day() == 1
	default: // weekly, on Mondays
		return now.Weekday() == time.Monday
	}
}

// Questions management (manager panel)

// ListQuestions returns all questions ordered by their display order
func (s *SurveyService) ListQuestions(ctx context.Context) ([]*model.Question, error) {
	return s.questionRepo.List(ctx)
}

// CreateQuestion adds a manager-authored question
func (s *SurveyService) CreateQuestion(ctx context.Context, text string, qType model.QuestionType, order int) (*model.Question, error) {
	if text == "" {
		return nil, errors.New("question text is required")
	}
	if qType != model.QuestionTypeScale && qType != model.QuestionTypeOpen {
		return nil, fmt.Errorf("unknown question type %q", qType)
	}
	question := &model.Question{
		ID:       uuid.New().String(),
		Text:     text,
		Type:     qType,
		IsActive: true,
		Order:    order,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// UpdateQuestion edits a question's text, type, activity or order
func (s *SurveyService) UpdateQuestion(ctx context.Context, question *model.Question) error {
	existing, err := s.questionRepo.GetByID(ctx, question.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("question %s not found", question.ID)
	}
	question.CreatedAt = existing.CreatedAt
	return s.questionRepo.Update(ctx, question)
}

// DeleteQuestion removes a question
func (s *SurveyService) DeleteQuestion(ctx context.Context, id string) error {
	return s.questionRepo.Delete(ctx, id)
}

// PulseConfig returns the stored pulse configuration, or defaults
func (s *SurveyService) PulseConfig(ctx context.Context) (*model.PulseConfig, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &model.PulseConfig{
			Language:       "nl",
			PulseFrequency: model.FrequencyWeekly,
		}
	}
	return cfg, nil
}

// UpdatePulseConfig stores the pulse configuration
func (s *SurveyService) UpdatePulseConfig(ctx context.Context, cfg *model.PulseConfig) error {
	return s.configRepo.Upsert(ctx, cfg)
}
