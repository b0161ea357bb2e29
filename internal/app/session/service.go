package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kindora-ai/kindora-agent/internal/app/resolver"
	"github.com/kindora-ai/kindora-agent/internal/app/tools"
	"github.com/kindora-ai/kindora-agent/internal/domain"
	"github.com/kindora-ai/kindora-agent/internal/observability"
)

const (
	greetingText = "Halo! Saya Kindora, asisten kesehatan mental Anda. Ada yang ingin Anda ceritakan hari ini?"
	resetText    = "Riwayat chat dan dokumen telah dihapus. Silakan mulai percakapan baru."

	apologyIndex      = "Maaf, basis pengetahuan sedang tidak dapat diakses. Silakan coba beberapa saat lagi."
	apologyGeneration = "Maaf, saya sedang tidak dapat menjawab karena layanan bahasa bermasalah. Periksa kembali API key Anda atau coba beberapa saat lagi."
	apologyTranslate  = "Maaf, layanan terjemahan sedang tidak tersedia."
)

// Service owns the per-turn conversation flow: append the user message,
// resolve evidence, generate (or dispatch a tool), append the reply.
type Service struct {
	llm          domain.LLMClient
	sessionStore domain.SessionStore
	messageStore domain.MessageStore
	extractor    domain.DocumentExtractor
	resolver     *resolver.Resolver
	registry     *tools.Registry
	now          func() time.Time

	// One in-flight mutation per session: session state is mutated in place,
	// so concurrent turns on the same session are rejected, not interleaved.
	inflight sessionLocks
}

func NewService(
	llm domain.LLMClient,
	sessionStore domain.SessionStore,
	messageStore domain.MessageStore,
	extractor domain.DocumentExtractor,
	res *resolver.Resolver,
	registry *tools.Registry,
) *Service {
	return &Service{
		llm:          llm,
		sessionStore: sessionStore,
		messageStore: messageStore,
		extractor:    extractor,
		resolver:     res,
		registry:     registry,
		now:          time.Now,
	}
}

type StartSessionInput struct {
	UserID domain.UserID
	Title  string
}

type StartSessionOutput struct {
	Session *domain.Session
	Welcome *domain.Message
}

func (s *Service) StartSession(ctx context.Context, in StartSessionInput) (*StartSessionOutput, error) {
	now := s.now()

	log := observability.LoggerFromContext(ctx).With("user_id", in.UserID)
	log.Info("starting new session")

	sess := &domain.Session{
		ID:        domain.SessionID(generateID()),
		UserID:    in.UserID,
		CreatedAt: now,
		UpdatedAt: now,
		Title:     in.Title,
	}

	if err := s.sessionStore.CreateSession(sess); err != nil {
		log.Error("failed to create session", "error", err)
		return nil, err
	}

	welcome := &domain.Message{
		ID:        domain.MessageID(generateID()),
		SessionID: sess.ID,
		Author:    domain.RoleAssistant,
		Text:      greetingText,
		CreatedAt: now,
		Source:    domain.SourceNone,
	}

	if err := s.messageStore.AppendMessage(welcome); err != nil {
		log.Error("failed to append welcome message", "error", err)
		return nil, err
	}

	log.Info("session started", "session_id", sess.ID)

	return &StartSessionOutput{Session: sess, Welcome: welcome}, nil
}

type SendMessageInput struct {
	SessionID domain.SessionID
	UserID    domain.UserID
	Text      string
}

type SendMessageOutput struct {
	UserMessage      *domain.Message
	AssistantMessage *domain.Message
}

func (s *Service) SendMessage(ctx context.Context, in SendMessageInput) (*SendMessageOutput, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, domain.ErrInvalidArgument
	}

	unlock, err := s.lockTurn(in.SessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := s.sessionStore.GetSession(in.SessionID)
	if err != nil {
		return nil, err
	}

	log := observability.LoggerFromContext(ctx).With(
		"session_id", sess.ID,
		"user_id", sess.UserID,
	)
	log.Info("processing turn")

	now := s.now()

	userMsg := &domain.Message{
		ID:        domain.MessageID(generateID()),
		SessionID: sess.ID,
		Author:    domain.RoleUser,
		Text:      in.Text,
		CreatedAt: now,
	}
	if err := s.messageStore.AppendMessage(userMsg); err != nil {
		log.Error("failed to append user message", "error", err)
		return nil, err
	}

	replyText, source, contentType := s.answer(ctx, in.Text, sess, log)

	assistantMsg := &domain.Message{
		ID:          domain.MessageID(generateID()),
		SessionID:   sess.ID,
		Author:      domain.RoleAssistant,
		Text:        replyText,
		CreatedAt:   s.now(),
		Source:      source,
		ContentType: contentType,
	}
	if err := s.messageStore.AppendMessage(assistantMsg); err != nil {
		log.Error("failed to append assistant message", "error", err)
		return nil, err
	}

	sess.UpdatedAt = s.now()
	if err := s.sessionStore.UpdateSession(sess); err != nil {
		log.Error("failed to update session", "error", err)
		return nil, err
	}

	log.Info("turn completed", "source", source)

	return &SendMessageOutput{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
	}, nil
}

// answer runs the resolution pipeline for one turn and always produces
// user-facing text. Backend failures become an apology in the conversation's
// register; the user message that triggered them stays in the history.
func (s *Service) answer(ctx context.Context, query string, sess *domain.Session, log *slog.Logger) (text string, source domain.EvidenceSource, contentType string) {
	res, err := s.resolver.Resolve(ctx, query, sess.Document)
	if err != nil {
		log.Warn("resolution failed", "error", err)
		return apologyFor(err), domain.SourceNone, "error_notice"
	}

	// Web fallback short-circuit: the curated link list goes back verbatim.
	if res.Source == domain.SourceWeb {
		return res.Direct, domain.SourceWeb, "link_list"
	}

	reply, err := s.llm.Generate(ctx, res.Prompt)
	if err != nil {
		log.Warn("generation failed", "error", err)
		return apologyFor(err), domain.SourceNone, "error_notice"
	}

	// The model may answer with a single tool directive instead of text.
	name, arg, isTool := tools.ParseDirective(reply)
	if !isTool {
		return reply, res.Source, "text"
	}

	tool, registered := s.registry.Get(name)
	if !registered {
		// Fail closed: an unknown tool name is answered deterministically,
		// never silently ignored.
		log.Warn("model requested unregistered tool", "tool", name)
		return tools.UnavailableMessage(name), res.Source, "text"
	}

	tctx := tools.ToolContext{
		UserID:    string(sess.UserID),
		SessionID: string(sess.ID),
	}
	toolOut, err := tool.Call(ctx, tctx, arg)
	if err != nil {
		log.Warn("tool call failed", "tool", name, "error", err)
		return apologyFor(err), res.Source, "error_notice"
	}

	final, err := s.llm.Generate(ctx, s.resolver.FollowUp(query, name, toolOut))
	if err != nil {
		log.Warn("follow-up generation failed", "tool", name, "error", err)
		// The tool result itself is still a correct, grounded answer.
		return toolOut, res.Source, "text"
	}

	return final, res.Source, "text"
}

// AttachDocument replaces the session's active document with freshly
// extracted text. Extraction failures block only this action. It mutates the
// session in place, so it competes for the same per-session lock as turns.
func (s *Service) AttachDocument(ctx context.Context, sessionID domain.SessionID, filename string, data []byte) error {
	unlock, err := s.lockTurn(sessionID)
	if err != nil {
		return err
	}
	defer unlock()

	sess, err := s.sessionStore.GetSession(sessionID)
	if err != nil {
		return err
	}

	log := observability.LoggerFromContext(ctx).With("session_id", sessionID, "file", filename)
	log.Info("extracting uploaded document")

	text, err := s.extractor.Extract(ctx, data, filename)
	if err != nil {
		log.Warn("extraction failed", "error", err)
		return err
	}

	// Replacement is wholesale: the previous document is discarded, never
	// merged.
	sess.Document = &domain.Document{Name: filename, FullText: text}
	sess.UpdatedAt = s.now()
	if err := s.sessionStore.UpdateSession(sess); err != nil {
		return err
	}

	notice := &domain.Message{
		ID:          domain.MessageID(generateID()),
		SessionID:   sessionID,
		Author:      domain.RoleSystem,
		Text:        "Dokumen '" + filename + "' telah diunggah. Anda sekarang bisa bertanya mengenai isinya.",
		CreatedAt:   s.now(),
		ContentType: "notice",
	}
	if err := s.messageStore.AppendMessage(notice); err != nil {
		log.Error("failed to append upload notice", "error", err)
		return err
	}

	log.Info("document attached")
	return nil
}

// ClearHistory resets the session to its freshly-created shape: the log
// holds a single seed assistant message and no document remains attached.
func (s *Service) ClearHistory(ctx context.Context, sessionID domain.SessionID) (*domain.Message, error) {
	unlock, err := s.lockTurn(sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := s.sessionStore.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	log := observability.LoggerFromContext(ctx).With("session_id", sessionID)
	log.Info("clearing history and document")

	if err := s.messageStore.ResetSession(sessionID); err != nil {
		return nil, err
	}

	seed := &domain.Message{
		ID:        domain.MessageID(generateID()),
		SessionID: sessionID,
		Author:    domain.RoleAssistant,
		Text:      resetText,
		CreatedAt: s.now(),
		Source:    domain.SourceNone,
	}
	if err := s.messageStore.AppendMessage(seed); err != nil {
		return nil, err
	}

	sess.Document = nil
	sess.UpdatedAt = s.now()
	if err := s.sessionStore.UpdateSession(sess); err != nil {
		return nil, err
	}

	return seed, nil
}

func (s *Service) GetSessionTimeline(
	ctx context.Context,
	sessionID domain.SessionID,
	limit int,
) (*domain.Session, []*domain.Message, error) {

	sess, err := s.sessionStore.GetSession(sessionID)
	if err != nil {
		return nil, nil, err
	}

	msgs, err := s.messageStore.GetMessagesBySession(sessionID, limit)
	if err != nil {
		return nil, nil, err
	}

	return sess, msgs, nil
}

func (s *Service) lockTurn(id domain.SessionID) (func(), error) {
	return s.inflight.acquire(id)
}

// sessionLocks hands out one mutex per session and drops the entry once no
// caller holds or waits on it, so the registry stays proportional to the
// number of in-flight mutations, not to total session count.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[domain.SessionID]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func (l *sessionLocks) acquire(id domain.SessionID) (func(), error) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[domain.SessionID]*sessionLock)
	}
	e := l.locks[id]
	if e == nil {
		e = &sessionLock{}
		l.locks[id] = e
	}
	e.refs++
	l.mu.Unlock()

	if !e.mu.TryLock() {
		l.release(id, e)
		return nil, domain.ErrTurnInFlight
	}

	return func() {
		e.mu.Unlock()
		l.release(id, e)
	}, nil
}

func (l *sessionLocks) release(id domain.SessionID, e *sessionLock) {
	l.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, id)
	}
	l.mu.Unlock()
}

func apologyFor(err error) string {
	var idxErr *domain.IndexUnavailableError
	var genErr *domain.GenerationUnavailableError
	switch {
	case errors.As(err, &idxErr):
		return apologyIndex
	case errors.As(err, &genErr):
		return apologyGeneration
	case errors.Is(err, domain.ErrTranslationUnavailable):
		return apologyTranslate
	default:
		return "Maaf, terjadi kesalahan saat memproses pesan Anda. Silakan coba lagi."
	}
}

func generateID() string {
	return uuid.NewString()
}
