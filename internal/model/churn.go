package model

// EntityType is the kind of entity a churn risk applies to
type EntityType string

const (
	EntityUser       EntityType = "USER"
	EntityDepartment EntityType = "DEPARTMENT"
)

// Risk labels, from best to worst
const (
	RiskHealthy  = "Healthy"
	RiskLow      = "Low"
	RiskMedium   = "Medium"
	RiskHigh     = "High"
	RiskCritical = "Critical"
)

// NumericResponseItem is one structured 1-5 answer together with the wording
// of the question it answered. The question text is what lets the scorer
// detect retention-intent questions.
type NumericResponseItem struct {
	QuestionText string `json:"questionText"`
	Score        int    `json:"score"` // 1-5
}

// ScoringInput is the unit of work for the churn scorer: everything one
// entity (a single employee, or a whole department flattened) answered in
// the scoring window. Both slices may be empty; the scorer still returns a
// defined result.
type ScoringInput struct {
	EntityName       string                `json:"entityName"`
	NumericResponses []NumericResponseItem `json:"numericResponses"`
	TextResponses    []string              `json:"textResponses"`
}

// ChurnRisk is the scored result for one entity
type ChurnRisk struct {
	Entity     string     `json:"entity"`
	EntityType EntityType `json:"type"`
	RiskScore  int        `json:"riskScore"` // 0-100, high is bad
	RiskLabel  string     `json:"riskLabel"`
	Details    string     `json:"details"`
}

// ChurnPredictions is the full prediction set, sorted by descending risk
type ChurnPredictions struct {
	UserRisks       []ChurnRisk `json:"userRisks"`
	DepartmentRisks []ChurnRisk `json:"departmentRisks"`
}
