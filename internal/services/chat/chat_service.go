package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/moneyfornothin/taxchat/internal/common"
	"github.com/moneyfornothin/taxchat/internal/interfaces"
	"github.com/moneyfornothin/taxchat/internal/models"
)

// Service answers questions over the chunk corpus. Each session owns an
// independent bounded history window; one Chat call runs the full
// rewrite/retrieve/prompt/complete pipeline and returns only when the
// turn is fully resolved.
type Service struct {
	completion interfaces.CompletionService
	rewriter   *QueryRewriter
	retriever  *Retriever
	evaluator  interfaces.Evaluator // nil when evaluation is disabled
	defaults   defaults
	logger     arbor.ILogger

	mu       sync.Mutex
	sessions map[string]*HistoryWindow
}

// defaults are the resolved configured fallbacks for per-request
// override fields.
type defaults struct {
	tier       interfaces.ModelTier
	category   string
	useContext bool
	maxChunks  int
	windowSize int
}

// NewService creates the chat service. evaluator may be nil; recording
// is then skipped entirely.
func NewService(
	completion interfaces.CompletionService,
	store interfaces.ChunkStorage,
	evaluator interfaces.Evaluator,
	cfg *common.Config,
	logger arbor.ILogger,
) *Service {
	return &Service{
		completion: completion,
		rewriter:   NewQueryRewriter(completion, interfaces.ModelTier(cfg.LLM.Tier), logger),
		retriever:  NewRetriever(store, logger),
		evaluator:  evaluator,
		defaults: defaults{
			tier:       interfaces.ModelTier(cfg.LLM.Tier),
			category:   cfg.Chat.Category,
			useContext: cfg.Chat.UseContext,
			maxChunks:  cfg.Chat.MaxChunks,
			windowSize: cfg.Chat.HistoryWindowSize,
		},
		logger:   logger,
		sessions: make(map[string]*HistoryWindow),
	}
}

// Chat resolves one question. External failures degrade: a retrieval
// error yields a context-free answer, a completion error yields the
// fixed apology with session history left untouched.
func (s *Service) Chat(ctx context.Context, req *interfaces.ChatRequest) (*interfaces.ChatResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, fmt.Errorf("question is required")
	}

	tier := s.resolveTier(req.Model)
	category := s.resolveCategory(req.Category)
	useContext := s.resolveUseContext(req.UseContext)

	history := s.session(req.SessionID)
	turns := history.Snapshot()

	s.logger.Debug().
		Str("session_id", req.SessionID).
		Str("tier", string(tier)).
		Str("category", category).
		Bool("use_context", useContext).
		Int("history_turns", len(turns)).
		Msg("Resolving chat turn")

	var (
		chunks  []*models.Chunk
		rewrote bool
		query   = question
	)
	if useContext {
		query, rewrote = s.rewriter.Rewrite(ctx, question, turns)
		chunks = s.retriever.Retrieve(models.RetrievalQuery{
			Text:     query,
			Category: category,
			Limit:    s.defaults.maxChunks,
		})
	}

	prompt := BuildPrompt(question, chunks)

	answer, err := s.completion.Complete(ctx, tier, prompt)
	if err != nil {
		s.logger.Error().Err(fmt.Errorf("%w: %v", ErrCompletionUnavailable, err)).
			Str("session_id", req.SessionID).
			Msg("Completion failed, returning apology")
		return &interfaces.ChatResponse{
			Answer:   ApologyMessage,
			Provider: s.completion.Provider(),
			Model:    s.completion.ModelName(tier),
		}, nil
	}

	history.Append(models.Turn{Role: models.RoleUser, Content: question})
	history.Append(models.Turn{Role: models.RoleAssistant, Content: answer})

	response := &interfaces.ChatResponse{
		Answer:   answer,
		Provider: s.completion.Provider(),
		Model:    s.completion.ModelName(tier),
	}
	if useContext {
		response.SourceDocuments = sourcePaths(chunks)
	}

	s.record(ctx, req.SessionID, question, category, rewrote, chunks, response)

	return response, nil
}

// Reset discards the history window of the given session.
func (s *Service) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	s.logger.Info().Str("session_id", sessionID).Msg("Session history reset")
}

// HealthCheck verifies the completion endpoint is reachable.
func (s *Service) HealthCheck(ctx context.Context) error {
	if err := s.completion.HealthCheck(ctx); err != nil {
		return fmt.Errorf("completion service unhealthy: %w", err)
	}
	return nil
}

// session returns the history window for a session, creating it on
// first use.
func (s *Service) session(sessionID string) *HistoryWindow {
	s.mu.Lock()
	defer s.mu.Unlock()

	window, ok := s.sessions[sessionID]
	if !ok {
		window = NewHistoryWindow(s.defaults.windowSize)
		s.sessions[sessionID] = window
	}
	return window
}

func (s *Service) resolveTier(model string) interfaces.ModelTier {
	if interfaces.ValidTier(model) {
		return interfaces.ModelTier(model)
	}
	if model != "" {
		s.logger.Warn().Str("model", model).Msg("Unknown model tier, using configured default")
	}
	return s.defaults.tier
}

func (s *Service) resolveCategory(category string) string {
	if category == "" {
		return s.defaults.category
	}
	return category
}

func (s *Service) resolveUseContext(override *bool) bool {
	if override != nil {
		return *override
	}
	return s.defaults.useContext
}

// record hands the resolved turn to the evaluator. Failures are logged
// and otherwise ignored; a broken evaluator never affects the answer.
func (s *Service) record(ctx context.Context, sessionID, question, category string, rewrote bool, chunks []*models.Chunk, resp *interfaces.ChatResponse) {
	if s.evaluator == nil {
		return
	}

	record := &models.ResponseRecord{
		SessionID:   sessionID,
		Question:    question,
		Answer:      resp.Answer,
		SourcePaths: resp.SourceDocuments,
		Provider:    resp.Provider,
		Model:       resp.Model,
		Category:    category,
		Rewrote:     rewrote,
	}
	record.ContextChunks = make([]models.Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		record.ContextChunks = append(record.ContextChunks, *chunk)
	}

	if err := s.evaluator.Record(ctx, record); err != nil {
		s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("Evaluation recording failed")
	}
}

// sourcePaths returns the distinct source document paths of the chunks,
// sorted for stable display.
func sourcePaths(chunks []*models.Chunk) []string {
	if len(chunks) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(chunks))
	paths := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk.SourcePath == "" {
			continue
		}
		if _, ok := seen[chunk.SourcePath]; ok {
			continue
		}
		seen[chunk.SourcePath] = struct{}{}
		paths = append(paths, chunk.SourcePath)
	}
	sort.Strings(paths)
	return paths
}
