package service

import (
	"context"
	"errors"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/salona-bot/internal/domain"
	"github.com/kahvecikaan/salona-bot/internal/events"
	"github.com/kahvecikaan/salona-bot/internal/keywords"
	"github.com/kahvecikaan/salona-bot/internal/prompt"
	"github.com/kahvecikaan/salona-bot/internal/repository"
	"strings"
)

// SampleSize is the number of rows returned by SampleProducts
const SampleSize = 5

// TextGenerator produces a reply for a prompt
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type ChatService interface {
	Reply(ctx context.Context, message *domain.DirectMessage) (*domain.Reply, error)
	SampleProducts(ctx context.Context) ([]*domain.ProductSummary, error)
}

type chatService struct {
	repo        repository.ProductRepository
	generator   TextGenerator
	eventBus    *events.EventBus[any]
	logger      hclog.Logger
	searchLimit int
}

func NewChatService(
	repo repository.ProductRepository,
	generator TextGenerator,
	eventBus *events.EventBus[any],
	logger hclog.Logger,
	searchLimit int) ChatService {
	if searchLimit <= 0 {
		searchLimit = repository.DefaultLimit
	}
	return &chatService{
		repo:        repo,
		generator:   generator,
		eventBus:    eventBus,
		logger:      logger,
		searchLimit: searchLimit,
	}
}

// Reply searches the catalog for the message text and answers with the
// model's text, a product listing when generation fails, or the no-results
// message. Only catalog faults are returned as errors.
func (s *chatService) Reply(ctx context.Context, message *domain.DirectMessage) (*domain.Reply, error) {
	words := keywords.Extract(message.Text)
	s.logger.Debug("Received message", "sender_id", message.SenderID, "message_id", message.MessageID, "keywords", len(words))
	s.eventBus.Publish(events.MessageReceived{
		SenderID:  message.SenderID,
		MessageID: message.MessageID,
		Keywords:  len(words),
	})

	products, err := s.search(ctx, words)
	if err != nil {
		s.logger.Error("Unable to search the catalog", "message_id", message.MessageID, "error", err)
		return nil, err
	}

	reply := s.answer(ctx, message, products)
	s.eventBus.Publish(events.ReplySent{
		SenderID:  message.SenderID,
		MessageID: message.MessageID,
		Outcome:   string(reply.Outcome),
		Matches:   len(products),
	})
	return reply, nil
}

func (s *chatService) search(ctx context.Context, words []string) ([]*domain.RetrievedProduct, error) {
	products, err := s.repo.Search(ctx, words, s.searchLimit)
	if errors.Is(err, domain.ErrCatalogUnavailable) {
		s.logger.Warn("Catalog unavailable, treating as no matches", "error", err)
		return nil, nil
	}
	return products, err
}

func (s *chatService) answer(ctx context.Context, message *domain.DirectMessage, products []*domain.RetrievedProduct) *domain.Reply {
	if len(products) == 0 {
		return &domain.Reply{Text: prompt.NoResults, Outcome: domain.OutcomeNoResults}
	}

	text, err := s.generator.Generate(ctx, prompt.Build(message.Text, products))
	if err != nil {
		s.logger.Error("Generation failed, replying with product listing", "message_id", message.MessageID, "error", err)
		return &domain.Reply{Text: prompt.Fallback(products), Outcome: domain.OutcomeFallback}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		s.logger.Warn("Generation returned no text, replying with product listing", "message_id", message.MessageID)
		return &domain.Reply{Text: prompt.Fallback(products), Outcome: domain.OutcomeFallback}
	}

	return &domain.Reply{Text: text, Outcome: domain.OutcomeGenerated}
}

func (s *chatService) SampleProducts(ctx context.Context) ([]*domain.ProductSummary, error) {
	s.logger.Debug("Getting product sample")

	products, err := s.repo.Sample(ctx, SampleSize)
	if err != nil {
		s.logger.Error("Unable to get product sample", "error", err)
		return nil, err
	}
	return products, nil
}
