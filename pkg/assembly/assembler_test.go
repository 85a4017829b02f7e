package assembly

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"knowthee-be/internal/entity"
	"knowthee-be/internal/repository/contract"
	"knowthee-be/internal/repository/specification"
	"knowthee-be/internal/repository/unitofwork"
	"knowthee-be/pkg/conversation"
	"knowthee-be/pkg/intent"
	"knowthee-be/pkg/search"
	"knowthee-be/pkg/tokenizer"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type failingEmployeeRepo struct {
	contract.EmployeeRepository
}

func (failingEmployeeRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Employee, error) {
	return nil, errors.New("connection refused")
}

type failingChunkRepo struct {
	contract.DocumentChunkRepository
}

func (failingChunkRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, employeeIds []uuid.UUID, threshold float64) ([]*contract.ScoredDocumentChunk, error) {
	return nil, errors.New("connection refused")
}

func (failingChunkRepo) FindTopByEmployee(ctx context.Context, employeeIds []uuid.UUID, perEmployee int) (map[uuid.UUID][]*entity.DocumentChunk, error) {
	return nil, errors.New("connection refused")
}

type failingUOW struct {
	unitofwork.UnitOfWork
}

func (failingUOW) EmployeeRepository() contract.EmployeeRepository {
	return failingEmployeeRepo{}
}

func (failingUOW) DocumentChunkRepository() contract.DocumentChunkRepository {
	return failingChunkRepo{}
}

type failingUOWFactory struct{}

func (failingUOWFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return failingUOW{}
}

type failingEmbedder struct{}

func (failingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("provider down")
}

func (failingEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, errors.New("provider down")
}

func newFailingAssembler() *Assembler {
	factory := failingUOWFactory{}
	searcher := search.NewOrchestrator(failingEmbedder{}, factory, nopLogger{}, 5)
	return NewAssembler(factory, searcher, tokenizer.ApproxCounter{}, nopLogger{}, 6000, 3)
}

// Store outages in the lookup tiers must degrade those tiers to empty,
// never abort the assembly.
func TestAssembleDegradesWhenStoreFails(t *testing.T) {
	assembler := newFailingAssembler()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	lisa := &entity.Employee{
		Id:              uuid.New(),
		FullName:        "Lisa Chen",
		CurrentPosition: "Staff Engineer",
		Department:      "Engineering",
	}
	result, err := assembler.Assemble(ctx, Input{
		Query:          "What are Lisa Chen's strengths?",
		Plan:           intent.Plan{Theme: conversation.ThemeIndividualProfile, Scope: intent.ScopeSingleEmployee},
		QueryEmployees: []*entity.Employee{lisa},
		WorkingSet: []*conversation.TrackedEmployee{
			{Id: uuid.New(), FullName: "Ahmed Hassan", Relevance: 1.0},
		},
		FocusMode: conversation.FocusModeAdaptive,
	})
	if err != nil {
		t.Fatalf("store outage must not abort assembly: %v", err)
	}
	if result == nil {
		t.Fatal("expected a result")
	}

	// The named employee still makes it into the context from the plan
	// alone, without any store round trip.
	if !strings.Contains(result.Context, "Lisa Chen") {
		t.Errorf("context missing the named employee: %q", result.Context)
	}
	if len(result.Employees) != 1 {
		t.Errorf("got %d context employees, want just the named one", len(result.Employees))
	}
	if strings.Contains(result.Context, "Ahmed Hassan") {
		t.Error("the failed working set tier should degrade to empty")
	}
}

func TestAssembleEmptyWhenNothingSurvives(t *testing.T) {
	assembler := newFailingAssembler()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	result, err := assembler.Assemble(ctx, Input{
		Query:     "Who are our strongest leaders?",
		Plan:      intent.Plan{Theme: conversation.ThemeOrganizationWide, Scope: intent.ScopeOrganizationWide},
		FocusMode: conversation.FocusModeAdaptive,
	})
	if err != nil {
		t.Fatalf("store outage must not abort assembly: %v", err)
	}
	if result.Context != "" {
		t.Errorf("expected an empty context, got %q", result.Context)
	}
	if len(result.Employees) != 0 {
		t.Errorf("expected no context employees, got %d", len(result.Employees))
	}
}
