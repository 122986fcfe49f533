package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/liliang-cn/partchat/internal/compose"
	"github.com/liliang-cn/partchat/internal/domain"
	"github.com/liliang-cn/partchat/internal/intent"
	"github.com/liliang-cn/partchat/internal/session"
	"go.uber.org/zap"
)

// HistorySink durably records completed turns.
type HistorySink interface {
	Save(ctx context.Context, record *domain.HistoryRecord) error
}

// ChatService runs conversation turns: classify, assemble, compose
type ChatService struct {
	classifier intent.Classifier
	assembler  *ContextAssembler
	composer   compose.Composer
	sessions   session.Store
	history    HistorySink
	logger     *zap.Logger
}

// NewChatService creates a new chat service
func NewChatService(
	classifier intent.Classifier,
	assembler *ContextAssembler,
	composer compose.Composer,
	sessions session.Store,
	history HistorySink,
	logger *zap.Logger,
) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		classifier: classifier,
		assembler:  assembler,
		composer:   composer,
		sessions:   sessions,
		history:    history,
		logger:     logger,
	}
}

// CreateSession starts a new conversation
func (s *ChatService) CreateSession(ctx context.Context) (*domain.Session, error) {
	sess, err := s.sessions.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return sess, nil
}

// Chat handles one user message. An empty session id starts a new session;
// an unknown one is created on the fly. Session and history failures are
// logged and never fail the turn.
func (s *ChatService) Chat(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidRequest)
	}

	sessionID := req.SessionID
	var prior []domain.Message
	if sessionID == "" {
		sess, err := s.sessions.Create(ctx)
		if err != nil {
			s.logger.Warn("failed to create session", zap.Error(err))
		} else {
			sessionID = sess.ID
		}
	} else {
		sess, err := s.sessions.Ensure(ctx, sessionID)
		if err != nil {
			s.logger.Warn("failed to load session", zap.String("session_id", sessionID), zap.Error(err))
		} else {
			prior = sess.Messages
		}
	}

	s.appendMessage(ctx, sessionID, domain.RoleUser, req.Message)

	in, cc, reply := s.respond(ctx, text, prior)

	s.appendMessage(ctx, sessionID, domain.RoleAssistant, reply)
	s.saveHistory(ctx, sessionID, req.Message, reply, in)

	suggested := cc.Parts
	if suggested == nil {
		suggested = []domain.Part{}
	}
	return &domain.ChatResponse{
		Response:       reply,
		Intent:         in,
		SuggestedParts: suggested,
		SessionID:      sessionID,
	}, nil
}

func (s *ChatService) respond(ctx context.Context, text string, prior []domain.Message) (domain.Intent, *domain.Context, string) {
	start := time.Now()

	in := s.classifier.Classify(ctx, text)
	cc := s.assembler.Assemble(ctx, in)
	reply := s.composer.Compose(ctx, compose.Input{
		Text:    text,
		Intent:  in,
		Context: cc,
		History: prior,
	})

	s.logger.Info("turn completed",
		zap.String("intent", string(in.Type)),
		zap.Float64("confidence", in.Confidence),
		zap.Int("parts", len(cc.Parts)),
		zap.Duration("duration", time.Since(start)),
	)
	return in, cc, reply
}

func (s *ChatService) appendMessage(ctx context.Context, sessionID, role, content string) {
	if sessionID == "" {
		return
	}
	err := s.sessions.Append(ctx, sessionID, domain.Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn("failed to append session message",
			zap.String("session_id", sessionID),
			zap.String("role", role),
			zap.Error(err),
		)
	}
}

func (s *ChatService) saveHistory(ctx context.Context, sessionID, userMessage, reply string, in domain.Intent) {
	if s.history == nil {
		return
	}
	record := &domain.HistoryRecord{
		SessionID:   sessionID,
		UserMessage: userMessage,
		BotResponse: reply,
		Intent:      string(in.Type),
	}
	if err := s.history.Save(ctx, record); err != nil {
		s.logger.Error("failed to save chat history", zap.String("session_id", sessionID), zap.Error(err))
	}
}

// History returns the session transcript
func (s *ChatService) History(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.sessions.Get(ctx, sessionID)
}

// ClearSession drops a session; clearing an unknown session is not an error
func (s *ChatService) ClearSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}
