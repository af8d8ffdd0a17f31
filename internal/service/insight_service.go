package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"pulsecheck/internal/cache"
	"pulsecheck/internal/model"
	"pulsecheck/internal/repository"
)

// InsightService orchestrates AI insights: it gathers survey data, calls the
// AI service, and caches the results per week and locale
type InsightService struct {
	questionRepo   repository.QuestionRepo
	surveyRepo     repository.SurveyRepo
	responseRepo   repository.ResponseRepo
	configRepo     repository.PulseConfigRepo
	analyticsCache cache.AnalyticsCache
	analytics      *AnalyticsService
	ai             *AIService
}

// NewInsightService creates a new insight service
func NewInsightService(
	questionRepo repository.QuestionRepo,
	surveyRepo repository.SurveyRepo,
	responseRepo repository.ResponseRepo,
	configRepo repository.PulseConfigRepo,
	analyticsCache cache.AnalyticsCache,
	analytics *AnalyticsService,
	ai *AIService,
) *InsightService {
	return &InsightService{
		questionRepo:   questionRepo,
		surveyRepo:     surveyRepo,
		responseRepo:   responseRepo,
		configRepo:     configRepo,
		analyticsCache: analyticsCache,
		analytics:      analytics,
		ai:             ai,
	}
}

// locale returns the configured insight language, defaulting to Dutch
func (s *InsightService) locale(ctx context.Context) string {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil || cfg == nil || cfg.Language == "" {
		return "nl"
	}
	return cfg.Language
}

// CompanyInsight returns the AI executive summary for the current week,
// generating and caching it if needed
func (s *InsightService) CompanyInsight(ctx context.Context) (*model.CompanyInsight, error) {
	weekNumber, year := currentWeekAndYear()
	locale := s.locale(ctx)

	cached, err := s.analyticsCache.GetInsight(ctx, weekNumber, year, locale)
	if err != nil {
		log.Printf("insight cache read failed: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	lines, err := s.responseLines(ctx, weekNumber, year)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("no responses for week %d, %d", weekNumber, year)
	}

	text, err := s.ai.GenerateCompanyInsight(ctx, lines, weekNumber, year, locale)
	if err != nil {
		return nil, err
	}

	insight := &model.CompanyInsight{
		Text:        text,
		WeekNumber:  weekNumber,
		Year:        year,
		GeneratedAt: time.Now(),
	}
	if err := s.analyticsCache.SetInsight(ctx, insight, locale); err != nil {
		log.Printf("insight cache write failed: %v", err)
	}
	return insight, nil
}

// ActionRecommendations returns AI action items for the current week,
// generating and caching them if needed. An empty list means the AI produced
// nothing usable; that is not an error.
func (s *InsightService) ActionRecommendations(ctx context.Context) ([]model.ActionRecommendation, error) {
	weekNumber, year := currentWeekAndYear()
	locale := s.locale(ctx)

	cached, err := s.analyticsCache.GetActions(ctx, weekNumber, year, locale)
	if err != nil {
		log.Printf("actions cache read failed: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	summary, err := s.analytics.Summary(ctx)
	if err != nil {
		return nil, err
	}
	feedback, err := s.responseRepo.ListRecentOpenText(ctx, keywordSampleSize)
	if err != nil {
		return nil, err
	}

	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		log.Printf("pulse config read failed: %v", err)
	}

	actions := s.ai.GenerateActionRecommendations(ctx, summary.CurrentScore, summary.ParticipationRate, feedback, weekNumber, year, cfg, locale)
	if len(actions) > 0 {
		if err := s.analyticsCache.SetActions(ctx, weekNumber, year, locale, actions); err != nil {
			log.Printf("actions cache write failed: %v", err)
		}
	}
	return actions, nil
}

// responseLines renders this week's responses as "question: answer" lines
// for the insight prompt
func (s *InsightService) responseLines(ctx context.Context, weekNumber, year int) ([]string, error) {
	survey, err := s.surveyRepo.GetByWeek(ctx, weekNumber, year)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, nil
	}

	responses, err := s.responseRepo.ListBySurvey(ctx, survey.ID)
	if err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	questionsByID := make(map[string]*model.Question, len(questions))
	for _, q := range questions {
		questionsByID[q.ID] = q
	}

	lines := make([]string, 0, len(responses))
	for _, r := range responses {
		question, ok := questionsByID[r.QuestionID]
		if !ok {
			continue
		}
		value := r.ValueText
		if r.ValueNumeric != nil {
			value = strconv.Itoa(*r.ValueNumeric)
		}
		lines = append(lines, question.Text+": "+value)
	}
	return lines, nil
}

// currentWeekAndYear returns the current ISO week and year
func currentWeekAndYear() (int, int) {
	year, week := time.Now().ISOWeek()
	return week, year
}
