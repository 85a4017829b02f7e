package scores

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"knowthee-be/internal/entity"
	"knowthee-be/internal/repository/contract"
	"knowthee-be/internal/repository/unitofwork"
	"knowthee-be/pkg/retry"
)

const (
	storeTimeout = 5 * time.Second
	storeRetries = 1
)

// Engine answers numeric score questions straight from the structured
// store. No semantic retrieval is involved, so answers are exact and
// repeatable. Every store call is timeout bounded and retried once.
type Engine struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewEngine(uowFactory unitofwork.RepositoryFactory) *Engine {
	return &Engine{
		uowFactory: uowFactory,
	}
}

func (e *Engine) withRetry(ctx context.Context, fn func(ctx context.Context, repo contract.AssessmentRepository) error) error {
	repo := e.uowFactory.NewUnitOfWork(ctx).AssessmentRepository()
	return retry.Do(ctx, storeRetries, func() error {
		callCtx, cancel := context.WithTimeout(ctx, storeTimeout)
		defer cancel()
		return fn(callCtx, repo)
	})
}

func (e *Engine) GetScore(ctx context.Context, employee *entity.Employee, trait, assessmentType string) (*entity.EmployeeTraitScore, error) {
	var score *entity.EmployeeTraitScore
	err := e.withRetry(ctx, func(ctx context.Context, repo contract.AssessmentRepository) error {
		var err error
		score, err = repo.GetTraitScore(ctx, employee.Id, trait, assessmentType)
		return err
	})
	return score, err
}

func (e *Engine) GetAllScores(ctx context.Context, employee *entity.Employee) ([]*entity.EmployeeTraitScore, error) {
	var scores []*entity.EmployeeTraitScore
	err := e.withRetry(ctx, func(ctx context.Context, repo contract.AssessmentRepository) error {
		var err error
		scores, err = repo.GetAllScores(ctx, employee.Id)
		return err
	})
	return scores, err
}

// Compare fetches one trait for each employee and orders the results by
// score descending, employee id breaking ties. Employees without the
// score are skipped.
func (e *Engine) Compare(ctx context.Context, employees []*entity.Employee, trait, assessmentType string) ([]*entity.EmployeeTraitScore, error) {
	results := make([]*entity.EmployeeTraitScore, 0, len(employees))
	for _, emp := range employees {
		score, err := e.GetScore(ctx, emp, trait, assessmentType)
		if err != nil {
			return nil, err
		}
		if score != nil {
			results = append(results, score)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].EmployeeId.String() < results[j].EmployeeId.String()
	})

	return results, nil
}

func (e *Engine) Rank(ctx context.Context, trait, assessmentType string, limit int, highest bool) ([]*entity.EmployeeTraitScore, error) {
	var results []*entity.EmployeeTraitScore
	err := e.withRetry(ctx, func(ctx context.Context, repo contract.AssessmentRepository) error {
		var err error
		results, err = repo.RankByTrait(ctx, trait, assessmentType, limit, highest)
		return err
	})
	return results, err
}

func (e *Engine) FindByCriteria(ctx context.Context, trait, assessmentType string, op contract.CriteriaOp, value float64, limit int) ([]*entity.EmployeeTraitScore, error) {
	var results []*entity.EmployeeTraitScore
	err := e.withRetry(ctx, func(ctx context.Context, repo contract.AssessmentRepository) error {
		var err error
		results, err = repo.FindByCriteria(ctx, trait, assessmentType, op, value, limit)
		return err
	})
	return results, err
}

// FormatScore renders one score line with the exact numeric value.
func FormatScore(s *entity.EmployeeTraitScore) string {
	return fmt.Sprintf("%s has a %s score of %.0f.", s.EmployeeName, s.Trait, s.Score)
}

// FormatRanking renders an ordered score list as a numbered answer.
func FormatRanking(trait, direction string, results []*entity.EmployeeTraitScore) string {
	if len(results) == 0 {
		return fmt.Sprintf("No %s scores are recorded yet.", trait)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Employees with the %s %s scores:\n", direction, trait)
	for i, s := range results {
		fmt.Fprintf(&b, "%d. %s: %.0f\n", i+1, s.EmployeeName, s.Score)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatComparison renders a pairwise comparison, leading with the gap
// between the top two.
func FormatComparison(trait string, results []*entity.EmployeeTraitScore) string {
	if len(results) == 0 {
		return fmt.Sprintf("No %s scores are recorded for the requested employees.", trait)
	}
	if len(results) == 1 {
		return FormatScore(results[0]) + " No other requested employee has this score recorded."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s comparison:\n", trait)
	for _, s := range results {
		fmt.Fprintf(&b, "- %s: %.0f\n", s.EmployeeName, s.Score)
	}
	gap := results[0].Score - results[1].Score
	if gap == 0 {
		fmt.Fprintf(&b, "%s and %s are tied.", results[0].EmployeeName, results[1].EmployeeName)
	} else {
		fmt.Fprintf(&b, "%s leads %s by %.0f points.", results[0].EmployeeName, results[1].EmployeeName, gap)
	}
	return b.String()
}
