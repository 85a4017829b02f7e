package assembly

import (
	"context"
	"fmt"
	"strings"
	"time"

	"knowthee-be/internal/entity"
	"knowthee-be/internal/pkg/logger"
	"knowthee-be/internal/repository/specification"
	"knowthee-be/internal/repository/unitofwork"
	"knowthee-be/pkg/conversation"
	"knowthee-be/pkg/intent"
	"knowthee-be/pkg/retry"
	"knowthee-be/pkg/search"
	"knowthee-be/pkg/tokenizer"

	"github.com/google/uuid"
)

const (
	storeTimeout = 5 * time.Second
	storeRetries = 1
)

// workingSetRelevanceCutoff gates which remembered employees ride along
// into a new context without being named again.
const workingSetRelevanceCutoff = 0.7

// broadChunksPerEmployee caps per-employee material when the context
// spans many people.
const broadChunksPerEmployee = 2

// Input carries everything the assembler needs for one query.
type Input struct {
	Query             string
	Plan              intent.Plan
	QueryEmployees    []*entity.Employee
	WorkingSet        []*conversation.TrackedEmployee
	FilteredEmployees []*entity.Employee
	FocusMode         string
}

// Result is the assembled employee context plus bookkeeping the memory
// layer needs.
type Result struct {
	Context    string
	Employees  map[uuid.UUID]string
	TokensUsed int
	Truncated  bool
}

// Assembler builds the token budgeted context block for a query. Sources
// are appended strictly by priority: employees the query names, then the
// remembered working set, then semantic search hits, then a deterministic
// roster sample if room remains.
type Assembler struct {
	uowFactory      unitofwork.RepositoryFactory
	searcher        *search.Orchestrator
	counter         tokenizer.Counter
	logger          logger.ILogger
	maxTokens       int
	chunksPerPerson int
}

func NewAssembler(
	uowFactory unitofwork.RepositoryFactory,
	searcher *search.Orchestrator,
	counter tokenizer.Counter,
	log logger.ILogger,
	maxTokens int,
	chunksPerPerson int,
) *Assembler {
	if maxTokens <= 0 {
		maxTokens = 6000
	}
	if chunksPerPerson <= 0 {
		chunksPerPerson = 3
	}
	return &Assembler{
		uowFactory:      uowFactory,
		searcher:        searcher,
		counter:         counter,
		logger:          log,
		maxTokens:       maxTokens,
		chunksPerPerson: chunksPerPerson,
	}
}

func (a *Assembler) Assemble(ctx context.Context, input Input) (*Result, error) {
	limits := EmployeeLimits(input.Plan.Theme, input.Plan.Scope, input.FocusMode)

	perEmployeeChunks := a.chunksPerPerson
	switch {
	case input.FocusMode == conversation.FocusModeBroad,
		input.Plan.Scope == intent.ScopeMultipleEmployees,
		input.Plan.Scope == intent.ScopeDepartment,
		input.Plan.Scope == intent.ScopeOrganizationWide:
		perEmployeeChunks = broadChunksPerEmployee
	}

	// Priority-ordered employee list, deduplicated.
	ordered := make([]*entity.Employee, 0, limits.MaxEmployees)
	seen := make(map[uuid.UUID]bool)
	appendEmployee := func(emp *entity.Employee) {
		if emp == nil || seen[emp.Id] || len(ordered) >= limits.MaxEmployees {
			return
		}
		seen[emp.Id] = true
		ordered = append(ordered, emp)
	}

	// Tier 1: employees the query names.
	for _, emp := range input.QueryEmployees {
		appendEmployee(emp)
	}

	// Tier 2: remembered employees still above the relevance cutoff.
	trackedIds := make([]uuid.UUID, 0)
	for _, tracked := range input.WorkingSet {
		if tracked.Relevance > workingSetRelevanceCutoff && !seen[tracked.Id] {
			trackedIds = append(trackedIds, tracked.Id)
		}
	}
	if len(trackedIds) > 0 {
		remembered := a.fetchEmployees(ctx, "working_set", specification.ByIDs{IDs: trackedIds}, specification.OrderBy{Field: "full_name"})
		for _, emp := range remembered {
			appendEmployee(emp)
		}
	}

	// Tier 3: semantic search, fenced to filtered employees when the
	// query carried structured constraints.
	var fence []uuid.UUID
	for _, emp := range input.FilteredEmployees {
		fence = append(fence, emp.Id)
	}
	// A failed semantic search degrades to an empty tier. The structured
	// tiers and the roster fallback still produce usable context.
	scored, err := a.searcher.Search(ctx, input.Query, fence, limits.MaxEmployees*perEmployeeChunks)
	if err != nil {
		a.logger.Warn("assembly", "semantic search degraded to empty", map[string]interface{}{
			"error": err.Error(),
		})
		scored = nil
	}
	semanticByEmployee := make(map[uuid.UUID][]string)
	for _, sc := range scored {
		if len(semanticByEmployee[sc.Chunk.EmployeeId]) < perEmployeeChunks {
			semanticByEmployee[sc.Chunk.EmployeeId] = append(semanticByEmployee[sc.Chunk.EmployeeId], sc.Chunk.Document)
		}
	}
	if len(semanticByEmployee) > 0 {
		semanticIds := make([]uuid.UUID, 0, len(semanticByEmployee))
		for id := range semanticByEmployee {
			if !seen[id] {
				semanticIds = append(semanticIds, id)
			}
		}
		if len(semanticIds) > 0 {
			found := a.fetchEmployees(ctx, "semantic", specification.ByIDs{IDs: semanticIds}, specification.OrderBy{Field: "full_name"})
			for _, emp := range found {
				appendEmployee(emp)
			}
		}
	}

	// Tier 4: deterministic roster sample to fill remaining room, ordered
	// by name so repeated queries assemble the same fallback.
	if len(ordered) < limits.MaxEmployees {
		sample := a.fetchEmployees(ctx, "roster_sample",
			specification.OrderBy{Field: "full_name"},
			specification.Pagination{Limit: limits.MaxEmployees, Offset: 0},
		)
		for _, emp := range sample {
			appendEmployee(emp)
		}
	}

	// Hydrate chunks for employees that semantic search did not already
	// cover.
	needChunks := make([]uuid.UUID, 0, len(ordered))
	for _, emp := range ordered {
		if _, ok := semanticByEmployee[emp.Id]; !ok {
			needChunks = append(needChunks, emp.Id)
		}
	}
	var topChunks map[uuid.UUID][]*entity.DocumentChunk
	err = retry.Do(ctx, storeRetries, func() error {
		callCtx, cancel := context.WithTimeout(ctx, storeTimeout)
		defer cancel()
		var err error
		topChunks, err = a.uowFactory.NewUnitOfWork(callCtx).DocumentChunkRepository().FindTopByEmployee(callCtx, needChunks, perEmployeeChunks)
		return err
	})
	if err != nil {
		// Employees still appear with their name and role; only the
		// narrative chunks are missing.
		a.logger.Warn("assembly", "chunk hydration degraded to empty", map[string]interface{}{
			"error": err.Error(),
		})
		topChunks = nil
	}

	// Render sections in priority order and cut at the token budget.
	result := &Result{Employees: make(map[uuid.UUID]string)}
	var b strings.Builder
	for _, emp := range ordered {
		section := a.renderSection(emp, semanticByEmployee, topChunks)
		cost := a.counter.Count(section)
		if result.TokensUsed+cost > a.maxTokens {
			result.Truncated = true
			break
		}
		b.WriteString(section)
		result.TokensUsed += cost
		result.Employees[emp.Id] = emp.FullName
	}
	result.Context = strings.TrimRight(b.String(), "\n")

	a.logger.Debug("assembly", "context assembled", map[string]interface{}{
		"employees": len(result.Employees),
		"tokens":    result.TokensUsed,
		"truncated": result.Truncated,
		"theme":     input.Plan.Theme,
	})

	return result, nil
}

// fetchEmployees runs a timeout bounded, retried employee lookup. A tier
// that still fails degrades to empty so the remaining sources can carry
// the context.
func (a *Assembler) fetchEmployees(ctx context.Context, tier string, specs ...specification.Specification) []*entity.Employee {
	var found []*entity.Employee
	err := retry.Do(ctx, storeRetries, func() error {
		callCtx, cancel := context.WithTimeout(ctx, storeTimeout)
		defer cancel()
		var err error
		found, err = a.uowFactory.NewUnitOfWork(callCtx).EmployeeRepository().FindAll(callCtx, specs...)
		return err
	})
	if err != nil {
		a.logger.Warn("assembly", "employee lookup degraded to empty", map[string]interface{}{
			"tier":  tier,
			"error": err.Error(),
		})
		return nil
	}
	return found
}

func (a *Assembler) renderSection(emp *entity.Employee, semantic map[uuid.UUID][]string, top map[uuid.UUID][]*entity.DocumentChunk) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n", emp.FullName)
	if emp.CurrentPosition != "" || emp.Department != "" {
		fmt.Fprintf(&b, "%s, %s\n", orUnknown(emp.CurrentPosition), orUnknown(emp.Department))
	}

	if docs, ok := semantic[emp.Id]; ok {
		for _, doc := range docs {
			b.WriteString(doc)
			b.WriteString("\n")
		}
	} else {
		for _, chunk := range top[emp.Id] {
			b.WriteString(chunk.Document)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
