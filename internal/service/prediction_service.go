package service

import (
	"context"
	"log"
	"sort"
	"time"

	"pulsecheck/internal/cache"
	"pulsecheck/internal/model"
	"pulsecheck/internal/repository"

	"golang.org/x/sync/errgroup"
)

const (
	// churnWindow limits scoring to recent responses
	churnWindow = 28 * 24 * time.Hour

	// scoreConcurrency bounds how many entities are scored in parallel
	scoreConcurrency = 8

	// defaultDepartment groups employees without an assigned department
	defaultDepartment = "General"
)

// PredictionService assembles scoring inputs from stored survey data and
// runs the churn scorer for every employee and every department. The scorer
// stays single-entity-shaped; all fan-out and aggregation happens here.
type PredictionService struct {
	userRepo        repository.UserRepo
	questionRepo    repository.QuestionRepo
	responseRepo    repository.ResponseRepo
	predictionCache cache.PredictionCache
	churn           *ChurnService
	broadcaster     Broadcaster
}

// NewPredictionService creates a new prediction service
func NewPredictionService(
	userRepo repository.UserRepo,
	questionRepo repository.QuestionRepo,
	responseRepo repository.ResponseRepo,
	predictionCache cache.PredictionCache,
	churn *ChurnService,
) *PredictionService {
	return &PredictionService{
		userRepo:        userRepo,
		questionRepo:    questionRepo,
		responseRepo:    responseRepo,
		predictionCache: predictionCache,
		churn:           churn,
	}
}

// SetBroadcaster injects the WebSocket hub
func (s *PredictionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// ChurnPredictions returns churn risks for all employees and departments,
// sorted by descending risk. Results are cached until the next submission.
func (s *PredictionService) ChurnPredictions(ctx context.Context) (*model.ChurnPredictions, error) {
	cached, err := s.predictionCache.GetChurn(ctx)
	if err != nil {
		log.Printf("prediction cache read failed: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	predictions, err := s.computeChurnPredictions(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.predictionCache.SetChurn(ctx, predictions); err != nil {
		log.Printf("prediction cache write failed: %v", err)
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastDashboard("predictions_updated", map[string]int{
			"userCount":       len(predictions.UserRisks),
			"departmentCount": len(predictions.DepartmentRisks),
		})
	}
	return predictions, nil
}

func (s *PredictionService) computeChurnPredictions(ctx context.Context) (*model.ChurnPredictions, error) {
	users, err := s.userRepo.ListEmployees(ctx)
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

	responses, err := s.responseRepo.ListSince(ctx, time.Now().Add(-churnWindow))
	if err != nil {
		return nil, err
	}
	responsesByUser := make(map[string][]*model.Response)
	for _, r := range responses {
		responsesByUser[r.UserID] = append(responsesByUser[r.UserID], r)
	}

	// One ScoringInput per employee with data; departments are the
	// flattened concatenation of their members' items.
	var userInputs []model.ScoringInput
	departmentInputs := make(map[string]model.ScoringInput)

	for _, user := range users {
		input := buildScoringInput(user.Name, responsesByUser[user.ID], questionsByID)
		if len(input.NumericResponses) == 0 && len(input.TextResponses) == 0 {
			continue
		}
		userInputs = append(userInputs, input)

		dept := user.Department
		if dept == "" {
			dept = defaultDepartment
		}
		departmentInputs[dept] = mergeScoringInputs(dept, departmentInputs[dept], input)
	}

	userRisks := s.scoreAll(ctx, userInputs, model.EntityUser)

	deptNames := make([]string, 0, len(departmentInputs))
	for name := range departmentInputs {
		deptNames = append(deptNames, name)
	}
	sort.Strings(deptNames)
	deptInputs := make([]model.ScoringInput, 0, len(deptNames))
	for _, name := range deptNames {
		deptInputs = append(deptInputs, departmentInputs[name])
	}
	departmentRisks := s.scoreAll(ctx, deptInputs, model.EntityDepartment)

	sortByRiskDesc(userRisks)
	sortByRiskDesc(departmentRisks)

	return &model.ChurnPredictions{
		UserRisks:       userRisks,
		DepartmentRisks: departmentRisks,
	}, nil
}

// scoreAll runs the churn scorer for each input concurrently. Entities are
// independent, so only the sentiment service's rate limits bound parallelism.
func (s *PredictionService) scoreAll(ctx context.Context, inputs []model.ScoringInput, entityType model.EntityType) []model.ChurnRisk {
	risks := make([]model.ChurnRisk, len(inputs))

	var g errgroup.Group
	g.SetLimit(scoreConcurrency)
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			risks[i] = s.churn.CalculateChurnRisk(ctx, input, entityType)
			return nil
		})
	}
	// CalculateChurnRisk never fails on valid input
	_ = g.Wait()

	return risks
}

// buildScoringInput splits an entity's responses into numeric items (scale
// questions, tagged with the question wording) and free-text items (open
// questions)
func buildScoringInput(entityName string, responses []*model.Response, questionsByID map[string]*model.Question) model.ScoringInput {
	input := model.ScoringInput{EntityName: entityName}
	for _, r := range responses {
		question, ok := questionsByID[r.QuestionID]
		if !ok {
			continue
		}
		switch {
		case question.Type == model.QuestionTypeScale && r.ValueNumeric != nil:
			input.NumericResponses = append(input.NumericResponses, model.NumericResponseItem{
				QuestionText: question.Text,
				Score:        *r.ValueNumeric,
			})
		case question.Type == model.QuestionTypeOpen && r.ValueText != "":
			input.TextResponses = append(input.TextResponses, r.ValueText)
		}
	}
	return input
}

// mergeScoringInputs concatenates scoring inputs under a new entity name.
// Department scoring is exactly this: a flat concatenation fed through the
// same algorithm as a single employee.
func mergeScoringInputs(entityName string, inputs ...model.ScoringInput) model.ScoringInput {
	merged := model.ScoringInput{EntityName: entityName}
	for _, input := range inputs {
		merged.NumericResponses = append(merged.NumericResponses, input.NumericResponses...)
		merged.TextResponses = append(merged.TextResponses, input.TextResponses...)
	}
	return merged
}

func sortByRiskDesc(risks []model.ChurnRisk) {
	sort.SliceStable(risks, func(i, j int) bool {
		if risks[i].RiskScore != risks[j].RiskScore {
			return risks[i].RiskScore > risks[j].RiskScore
		}
		return risks[i].Entity < risks[j].Entity
	})
}
