package analytics

import (
	"fmt"

	"TradeLens/internal/domain/models"
	domsvc "TradeLens/internal/domain/service"
)

// Questions is the fixed questionnaire. Every option scores 1, 2 or 3.
var Questions = []models.Question{
	{
		ID:   1,
		Text: "What is your primary goal for investing?",
		Options: []models.AnswerOption{
			{Text: "Preserve my capital (Safety)", Score: 1},
			{Text: "Growth over a long period (Balanced)", Score: 2},
			{Text: "Maximum profit, even with high risk (Aggressive)", Score: 3},
		},
	},
	{
		ID:   2,
		Text: "How long do you plan to hold your investments?",
		Options: []models.AnswerOption{
			{Text: "Less than 1 year", Score: 1},
			{Text: "1 - 5 years", Score: 2},
			{Text: "More than 5 years", Score: 3},
		},
	},
	{
		ID:   3,
		Text: "If your portfolio drops 20% in a week, what do you do?",
		Options: []models.AnswerOption{
			{Text: "Sell everything immediately", Score: 1},
			{Text: "Wait it out / Do nothing", Score: 2},
			{Text: "Buy more (Buy the dip)", Score: 3},
		},
	},
}

const (
	minAnswerScore = 1
	maxAnswerScore = 3

	conservativeMax = 4 // total <= 4
	aggressiveMin   = 8 // total >= 8
)

// Questionnaire walks the questions one answer at a time:
// AwaitingAnswer(0) -> ... -> AwaitingAnswer(N-1) -> Scored(profile).
type Questionnaire struct {
	count   int
	step    int
	total   int
	profile models.RiskProfile
}

// NewQuestionnaire starts a questionnaire over the fixed question set.
func NewQuestionnaire() *Questionnaire {
	return &Questionnaire{count: len(Questions)}
}

// Answer records the score for the current question. Answering the last
// question scores the questionnaire.
func (q *Questionnaire) Answer(score int) error {
	if q.Done() {
		return &models.InvalidInputError{Field: "answers", Reason: "questionnaire already scored"}
	}
	if score < minAnswerScore || score > maxAnswerScore {
		return &models.InvalidInputError{
			Field:  fmt.Sprintf("answers[%d]", q.step),
			Reason: fmt.Sprintf("score %d outside %d..%d", score, minAnswerScore, maxAnswerScore),
		}
	}
	q.total += score
	q.step++
	if q.step == q.count {
		q.profile = profileForTotal(q.total)
	}
	return nil
}

// Step is the index of the question awaiting an answer.
func (q *Questionnaire) Step() int { return q.step }

// Total is the running score.
func (q *Questionnaire) Total() int { return q.total }

// Done reports whether the questionnaire reached its scored state.
func (q *Questionnaire) Done() bool { return q.step >= q.count }

// Profile returns the scored profile once Done.
func (q *Questionnaire) Profile() (models.RiskProfile, bool) {
	if !q.Done() {
		return "", false
	}
	return q.profile, true
}

// Reset returns to the first question.
func (q *Questionnaire) Reset() {
	q.step, q.total, q.profile = 0, 0, ""
}

func profileForTotal(total int) models.RiskProfile {
	switch {
	case total <= conservativeMax:
		return models.Conservative
	case total >= aggressiveMin:
		return models.Aggressive
	default:
		return models.Moderate
	}
}

// RiskProfiler scores complete answer sequences. It holds no state, every
// call runs a fresh questionnaire.
type RiskProfiler struct{}

func NewRiskProfiler() *RiskProfiler { return &RiskProfiler{} }

// Score returns the profile for a complete answer sequence.
func (r RiskProfiler) Score(answers []int) (models.RiskProfile, error) {
	p, _, err := r.Evaluate(answers)
	return p, err
}

// Evaluate is Score that also returns the summed score.
func (RiskProfiler) Evaluate(answers []int) (models.RiskProfile, int, error) {
	if len(answers) != len(Questions) {
		return "", 0, &models.InvalidInputError{
			Field:  "answers",
			Reason: fmt.Sprintf("expected %d answers, got %d", len(Questions), len(answers)),
		}
	}
	q := NewQuestionnaire()
	for _, a := range answers {
		if err := q.Answer(a); err != nil {
			return "", 0, err
		}
	}
	p, _ := q.Profile()
	return p, q.Total(), nil
}

// Questions returns the questionnaire catalogue.
func (RiskProfiler) Questions() []models.Question { return Questions }

var _ domsvc.RiskProfiler = (*RiskProfiler)(nil)
