package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"knowthee-be/internal/dto"
	"knowthee-be/internal/entity"
	"knowthee-be/internal/pkg/logger"
	"knowthee-be/internal/repository/contract"
	"knowthee-be/internal/repository/memory"
	"knowthee-be/pkg/assembly"
	"knowthee-be/pkg/conversation"
	"knowthee-be/pkg/events"
	"knowthee-be/pkg/intent"
	"knowthee-be/pkg/llm"
	"knowthee-be/pkg/prompt"
	"knowthee-be/pkg/resolver"
	"knowthee-be/pkg/scores"
	"knowthee-be/pkg/search"
	"knowthee-be/pkg/tokenizer"

	"github.com/google/uuid"
)

type IQueryService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	SessionInsights(ctx context.Context, sessionId string) (*dto.SessionInsightsResponse, error)
	ClearSession(ctx context.Context, sessionId string) (*dto.ClearSessionResponse, error)
}

type queryService struct {
	store       memory.ConversationStore
	manager     *conversation.Manager
	resolver    *resolver.Resolver
	classifier  *intent.Classifier
	scoreEngine *scores.Engine
	assembler   *assembly.Assembler
	searcher    *search.Orchestrator
	prompts     *prompt.Builder
	llmProvider llm.LLMProvider
	counter     tokenizer.Counter
	publisher   IPublisherService
	logger      logger.ILogger

	// One lock per session so concurrent requests cannot interleave
	// memory updates.
	sessionLocks sync.Map
}

func NewQueryService(
	store memory.ConversationStore,
	manager *conversation.Manager,
	res *resolver.Resolver,
	classifier *intent.Classifier,
	scoreEngine *scores.Engine,
	assembler *assembly.Assembler,
	searcher *search.Orchestrator,
	prompts *prompt.Builder,
	llmProvider llm.LLMProvider,
	counter tokenizer.Counter,
	publisher IPublisherService,
	log logger.ILogger,
) IQueryService {
	return &queryService{
		store:       store,
		manager:     manager,
		resolver:    res,
		classifier:  classifier,
		scoreEngine: scoreEngine,
		assembler:   assembler,
		searcher:    searcher,
		prompts:     prompts,
		llmProvider: llmProvider,
		counter:     counter,
		publisher:   publisher,
		logger:      log,
	}
}

func (s *queryService) lockSession(sessionId string) *sync.Mutex {
	actual, _ := s.sessionLocks.LoadOrStore(sessionId, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

func (s *queryService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	started := time.Now()

	sessionId := req.SessionId
	if sessionId == "" {
		sessionId = uuid.NewString()
	}

	lock := s.lockSession(sessionId)
	lock.Lock()
	defer lock.Unlock()

	state, found, err := s.store.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if !found {
		state = conversation.NewState(sessionId)
	}

	// Rewrite back-references ("how do they compare?") into explicit
	// names before anything downstream sees the query.
	rewritten := s.manager.ResolveBackReferences(state, req.Message)
	if rewritten != req.Message {
		s.logger.Debug("query", "back-references resolved", map[string]interface{}{
			"session_id": sessionId,
		})
	}

	resolution := s.resolver.Resolve(rewritten)
	if resolution.NeedsClarification() {
		return s.respondClarification(ctx, state, req.Message, resolution)
	}

	plan := s.classifier.Classify(rewritten, resolution)
	state.Theme = plan.Theme

	var answer string
	var contextNames []string
	switch plan.Intent {
	case intent.IntentGetScore:
		answer, contextNames, err = s.answerGetScore(ctx, plan)
	case intent.IntentGetAllScores:
		answer, contextNames, err = s.answerGetAllScores(ctx, plan)
	case intent.IntentCompareScores:
		answer, contextNames, err = s.answerCompare(ctx, plan)
	case intent.IntentRankScores:
		answer, contextNames, err = s.answerRank(ctx, plan)
	default:
		answer, contextNames, err = s.answerGeneral(ctx, state, rewritten, plan)
	}
	if err != nil {
		if plan.Intent == intent.IntentGeneralQuery {
			return nil, err
		}
		// A structured store failure on a numeric path degrades to the
		// no-data answer instead of failing the whole turn.
		s.logger.Error("query", "score lookup failed, degrading", map[string]interface{}{
			"session_id": sessionId,
			"intent":     string(plan.Intent),
			"error":      err.Error(),
		})
		answer, contextNames = noDataAnswer, nil
	}

	s.updateMemory(state, req.Message, rewritten, answer, plan)

	if err := s.store.Save(ctx, state); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		evt := events.NewQueryProcessed(sessionId, string(plan.Intent), plan.Theme, len(state.WorkingSet), time.Since(started).Milliseconds())
		if pubErr := s.publisher.Publish(ctx, evt); pubErr != nil {
			s.logger.Warn("query", "failed to publish query event", map[string]interface{}{
				"error": pubErr.Error(),
			})
		}
	}

	res := &dto.ChatResponse{
		Response:         answer,
		SessionId:        sessionId,
		Intent:           string(plan.Intent),
		Theme:            plan.Theme,
		ContextEmployees: contextNames,
	}
	if rewritten != req.Message {
		res.ResolvedQuery = rewritten
	}
	return res, nil
}

// respondClarification asks the user to pick between employees sharing a
// first name, without committing anything to the working set.
func (s *queryService) respondClarification(ctx context.Context, state *conversation.State, originalQuery string, resolution resolver.Resolution) (*dto.ChatResponse, error) {
	amb := resolution.Ambiguous[0]

	names := make([]string, len(amb.Candidates))
	candidates := make([]dto.CandidateResponse, len(amb.Candidates))
	for i, c := range amb.Candidates {
		names[i] = c.FullName
		candidates[i] = dto.CandidateResponse{
			Id:              c.Id,
			FullName:        c.FullName,
			CurrentPosition: c.CurrentPosition,
			Department:      c.Department,
			Email:           c.Email,
		}
	}

	answer := fmt.Sprintf(
		"I found multiple employees named %s: %s. Which one do you mean?",
		amb.Mention, strings.Join(names, ", "),
	)

	s.manager.AppendTurn(state, conversation.RoleUser, originalQuery, s.counter.Count(originalQuery), nil)
	s.manager.AppendTurn(state, conversation.RoleAssistant, answer, s.counter.Count(answer), nil)
	if err := s.store.Save(ctx, state); err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		Response:            answer,
		SessionId:           state.SessionId,
		ClarificationNeeded: true,
		Candidates:          candidates,
		Intent:              string(intent.IntentGeneralQuery),
		Theme:               state.Theme,
	}, nil
}

func (s *queryService) answerGetScore(ctx context.Context, plan intent.Plan) (string, []string, error) {
	emp := plan.Employees[0]
	score, err := s.scoreEngine.GetScore(ctx, emp, plan.Trait, plan.AssessmentType)
	if err != nil {
		return "", nil, err
	}
	if score == nil {
		return fmt.Sprintf("%s has no recorded %s score.", emp.FullName, plan.Trait), []string{emp.FullName}, nil
	}
	return scores.FormatScore(score), []string{emp.FullName}, nil
}

func (s *queryService) answerGetAllScores(ctx context.Context, plan intent.Plan) (string, []string, error) {
	emp := plan.Employees[0]
	all, err := s.scoreEngine.GetAllScores(ctx, emp)
	if err != nil {
		return "", nil, err
	}
	if len(all) == 0 {
		return fmt.Sprintf("%s has no recorded assessment scores.", emp.FullName), []string{emp.FullName}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Assessment scores for %s:\n", emp.FullName)
	for _, sc := range all {
		fmt.Fprintf(&b, "- %s: %.0f\n", sc.Trait, sc.Score)
	}
	return strings.TrimRight(b.String(), "\n"), []string{emp.FullName}, nil
}

func (s *queryService) answerCompare(ctx context.Context, plan intent.Plan) (string, []string, error) {
	results, err := s.scoreEngine.Compare(ctx, plan.Employees, plan.Trait, plan.AssessmentType)
	if err != nil {
		return "", nil, err
	}
	names := make([]string, 0, len(results))
	for _, sc := range results {
		names = append(names, sc.EmployeeName)
	}
	return scores.FormatComparison(plan.Trait, results), names, nil
}

func (s *queryService) answerRank(ctx context.Context, plan intent.Plan) (string, []string, error) {
	var results []*entity.EmployeeTraitScore
	var answer string
	var err error

	if plan.Criteria != nil {
		op := contract.CriteriaGreaterThan
		if plan.Criteria.Op == "<" {
			op = contract.CriteriaLessThan
		}
		results, err = s.scoreEngine.FindByCriteria(ctx, plan.Trait, plan.AssessmentType, op, plan.Criteria.Value, plan.Limit)
		if err != nil {
			return "", nil, err
		}
		if len(results) == 0 {
			return fmt.Sprintf("No employees have a %s score %s %.0f.", plan.Trait, plan.Criteria.Op, plan.Criteria.Value), nil, nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Employees with %s %s %.0f:\n", plan.Trait, plan.Criteria.Op, plan.Criteria.Value)
		for i, sc := range results {
			fmt.Fprintf(&b, "%d. %s: %.0f\n", i+1, sc.EmployeeName, sc.Score)
		}
		answer = strings.TrimRight(b.String(), "\n")
	} else {
		results, err = s.scoreEngine.Rank(ctx, plan.Trait, plan.AssessmentType, plan.Limit, plan.Direction == intent.DirectionHighest)
		if err != nil {
			return "", nil, err
		}
		answer = scores.FormatRanking(plan.Trait, string(plan.Direction), results)
	}

	names := make([]string, 0, len(results))
	for _, sc := range results {
		names = append(names, sc.EmployeeName)
	}
	return answer, names, nil
}

// noDataAnswer is returned when nothing in the stores can ground a
// general question. The engine never lets the model answer from thin air.
const noDataAnswer = "No employee data is available to answer this question. Load employee profiles and assessments first."

func (s *queryService) answerGeneral(ctx context.Context, state *conversation.State, query string, plan intent.Plan) (string, []string, error) {
	// A failed structured filter degrades to an unfenced search rather
	// than aborting the turn.
	filtered, err := s.searcher.FilterEmployees(ctx, plan.Filters)
	if err != nil {
		s.logger.Warn("query", "employee filter degraded to no fence", map[string]interface{}{
			"error": err.Error(),
		})
		filtered = nil
	}

	result, err := s.assembler.Assemble(ctx, assembly.Input{
		Query:             query,
		Plan:              plan,
		QueryEmployees:    plan.Employees,
		WorkingSet:        s.manager.ActiveEmployees(state, 0),
		FilteredEmployees: filtered,
		FocusMode:         s.manager.FocusMode(),
	})
	if err != nil {
		return "", nil, err
	}

	names := make([]string, 0, len(result.Employees))
	for _, name := range result.Employees {
		names = append(names, name)
	}
	sort.Strings(names)

	if result.Context == "" {
		return noDataAnswer, nil, nil
	}

	messages := s.prompts.Build(state, result.Context, query)
	answer, err := s.llmProvider.Chat(ctx, messages, llm.WithTemperature(0.2))
	if err != nil {
		return "", nil, err
	}
	return answer, names, nil
}

// updateMemory applies all relevance bookkeeping for one completed turn.
func (s *queryService) updateMemory(state *conversation.State, originalQuery, rewritten, answer string, plan intent.Plan) {
	queryEmployees := make(map[uuid.UUID]string, len(plan.Employees))
	queryIds := make([]uuid.UUID, 0, len(plan.Employees))
	for _, emp := range plan.Employees {
		queryEmployees[emp.Id] = emp.FullName
		queryIds = append(queryIds, emp.Id)
	}
	s.manager.RecordQueryEmployees(state, queryEmployees)

	// Employees the answer surfaced without being asked about join the
	// working set at reduced relevance.
	responseResolution := s.resolver.Resolve(answer)
	responseEmployees := make(map[uuid.UUID]string)
	responseIds := make([]uuid.UUID, 0)
	for _, ref := range responseResolution.Resolved {
		if _, asked := queryEmployees[ref.Employee.Id]; !asked {
			responseEmployees[ref.Employee.Id] = ref.Employee.FullName
			responseIds = append(responseIds, ref.Employee.Id)
		}
	}
	s.manager.RecordResponseMentions(state, responseEmployees)

	s.manager.AppendTurn(state, conversation.RoleUser, originalQuery, s.counter.Count(originalQuery), queryIds)
	s.manager.AppendTurn(state, conversation.RoleAssistant, answer, s.counter.Count(answer), append(queryIds, responseIds...))
}

func (s *queryService) SessionInsights(ctx context.Context, sessionId string) (*dto.SessionInsightsResponse, error) {
	// The cache store hands out the live *State pointer, so reads must
	// serialize with Chat the same way writes do.
	lock := s.lockSession(sessionId)
	lock.Lock()
	defer lock.Unlock()

	state, found, err := s.store.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	tracked := s.manager.TopEmployees(state, 0)
	workingSet := make([]dto.TrackedEmployeeResponse, len(tracked))
	for i, t := range tracked {
		workingSet[i] = dto.TrackedEmployeeResponse{
			Id:        t.Id,
			FullName:  t.FullName,
			Relevance: t.Relevance,
			LastSeen:  t.LastSeen,
		}
	}

	return &dto.SessionInsightsResponse{
		SessionId:          state.SessionId,
		Turns:              len(state.Turns),
		ConversationTokens: state.ConversationTokens(),
		TokenLimit:         s.manager.TokenLimit(state),
		Theme:              state.Theme,
		WorkingSet:         workingSet,
	}, nil
}

func (s *queryService) ClearSession(ctx context.Context, sessionId string) (*dto.ClearSessionResponse, error) {
	lock := s.lockSession(sessionId)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.Delete(ctx, sessionId); err != nil {
		return nil, err
	}
	s.sessionLocks.Delete(sessionId)

	if s.publisher != nil {
		evt := events.BaseEvent{
			Type:       events.TypeSessionCleared,
			Data:       map[string]interface{}{"session_id": sessionId},
			OccurredAt: time.Now(),
		}
		if err := s.publisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("query", "failed to publish session cleared event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &dto.ClearSessionResponse{SessionId: sessionId, Cleared: true}, nil
}
