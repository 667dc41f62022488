package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	app_errors "merlin/backend/internal/errors"
	"merlin/backend/internal/llm"
	"merlin/backend/internal/model"
	"merlin/backend/internal/places"
	"merlin/backend/internal/repository"
)

// Output-length budgets for the two completion-calling branches.
const (
	restaurantMaxTokens = 1024
	directMaxTokens     = 4096
)

const maxChatNameLength = 100

// locationPromptReply is the fixed assistant reply when a restaurant query
// arrives without a known user location. This path never calls the
// completion API.
const locationPromptReply = "I can help with restaurant suggestions! Please share your location first by clicking the 'Share Location' button."

// TurnResult is the outcome of one message turn, returned to the client.
type TurnResult struct {
	Reasoning *string `json:"reasoning"`
	Response  string  `json:"response"`
}

// route is the branch selected for an incoming message. Exactly one is
// chosen per request, which makes the precedence rules structurally
// visible: reasoning mode wins over the restaurant heuristic, and the
// location prompt wins over the restaurant answer.
type route int

const (
	routeDirect route = iota
	routeLocationPrompt
	routeRestaurant
)

type ChatService struct {
	repo       repository.Repository
	llm        llm.CompletionProvider
	places     places.Finder
	model      string
	mapsAPIKey string
}

func NewChatService(repo repository.Repository, llmProvider llm.CompletionProvider, finder places.Finder, completionModel, mapsAPIKey string) *ChatService {
	return &ChatService{
		repo:       repo,
		llm:        llmProvider,
		places:     finder,
		model:      completionModel,
		mapsAPIKey: mapsAPIKey,
	}
}

// CreateChat creates an empty chat with a generated default name.
func (s *ChatService) CreateChat(ctx context.Context, userID int64) (*model.ChatSummary, error) {
	chatID := uuid.NewString()
	chat := &model.Chat{
		ID:     chatID,
		UserID: userID,
		Name:   "New Chat " + chatID[:4],
	}
	if err := s.repo.CreateChat(ctx, chat); err != nil {
		return nil, fmt.Errorf("could not create chat: %w", err)
	}
	return &model.ChatSummary{ID: chat.ID, Name: chat.Name}, nil
}

// ListChats returns id and name for the user's chats, newest first.
func (s *ChatService) ListChats(ctx context.Context, userID int64) ([]model.ChatSummary, error) {
	return s.repo.GetChats(ctx, userID)
}

// GetChat returns a chat with its full transcript and document context.
func (s *ChatService) GetChat(ctx context.Context, chatID string, userID int64) (*model.Chat, error) {
	chat, err := s.repo.GetChat(ctx, chatID, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return chat, nil
}

// RenameChat updates a chat's display name. The name is trimmed and must be
// non-empty and at most 100 characters.
func (s *ChatService) RenameChat(ctx context.Context, chatID string, userID int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: chat name cannot be empty", app_errors.ErrValidation)
	}
	if len(name) > maxChatNameLength {
		return fmt.Errorf("%w: chat name cannot exceed %d characters", app_errors.ErrValidation, maxChatNameLength)
	}
	if err := s.repo.RenameChat(ctx, chatID, userID, name); err != nil {
		return mapRepoError(err)
	}
	return nil
}

// DeleteChat removes a chat along with its transcript and document context.
func (s *ChatService) DeleteChat(ctx context.Context, chatID string, userID int64) error {
	if err := s.repo.DeleteChat(ctx, chatID, userID); err != nil {
		return mapRepoError(err)
	}
	return nil
}

// SendMessage runs one message turn: classify, enrich or short-circuit,
// call the completion API, interpret the response, and append the exchange
// to the transcript. Every branch, including failure, ends with an attempt
// to persist the turn; the exchange is never silently dropped.
func (s *ChatService) SendMessage(ctx context.Context, user *model.User, chatID, message string, useReasoning bool) (*TurnResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message cannot be empty", app_errors.ErrValidation)
	}

	chat, err := s.repo.GetChat(ctx, chatID, user.ID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	switch selectRoute(message, useReasoning, user) {
	case routeLocationPrompt:
		return s.answerLocationPrompt(ctx, chat, message)
	case routeRestaurant:
		return s.answerRestaurant(ctx, chat, user, message)
	default:
		return s.answerDirect(ctx, chat, message, useReasoning)
	}
}

// selectRoute picks exactly one branch per request. A reasoning-mode
// request never triggers the restaurant branch, regardless of content.
func selectRoute(message string, useReasoning bool, user *model.User) route {
	if useReasoning || !IsRestaurantQuery(message) {
		return routeDirect
	}
	if !user.HasLocation() {
		return routeLocationPrompt
	}
	return routeRestaurant
}

// answerLocationPrompt persists a fixed share-your-location reply without
// calling the completion API.
func (s *ChatService) answerLocationPrompt(ctx context.Context, chat *model.Chat, message string) (*TurnResult, error) {
	slog.Info("Restaurant query without a known location", "chat_id", chat.ID)
	appendTurns(chat, message, locationPromptReply, nil)
	if err := s.repo.SaveChatContent(ctx, chat); err != nil {
		slog.Error("Failed to persist location prompt turn", "chat_id", chat.ID, "error", err)
	}
	return &TurnResult{Reasoning: nil, Response: locationPromptReply}, nil
}

// answerRestaurant runs the location-aware branch: cuisine keyword
// extraction, nearby lookup, restaurant prompt, completion call. Reasoning
// is always nil on this path; the restaurant branch never requests
// structured output.
func (s *ChatService) answerRestaurant(ctx context.Context, chat *model.Chat, user *model.User, message string) (*TurnResult, error) {
	lat, lng := *user.Latitude, *user.Longitude
	keywords := ExtractFoodKeywords(message)
	results := s.findNearby(ctx, lat, lng, keywords)
	formatted := FormatPlaces(results, s.mapsAPIKey)

	messages := []llm.Message{
		{Role: model.RoleSystem, Content: baseSystemMessage},
		{Role: model.RoleUser, Content: BuildRestaurantPrompt(lat, lng, message, formatted)},
	}

	raw, err := s.llm.Complete(ctx, s.model, messages, restaurantMaxTokens)
	if err != nil {
		apology := fmt.Sprintf("Sorry, I encountered an error while looking for restaurants: %v", err)
		s.persistErrorTurn(ctx, chat, message, apology)
		return nil, fmt.Errorf("%w: %v", app_errors.ErrCompletion, err)
	}

	appendTurns(chat, message, raw, nil)
	if err := s.repo.SaveChatContent(ctx, chat); err != nil {
		slog.Error("Failed to persist restaurant turn", "chat_id", chat.ID, "error", err)
	}
	return &TurnResult{Reasoning: nil, Response: raw}, nil
}

// answerDirect runs the default branch: system prompt with document context
// and optional structured-output instructions, transcript replay, larger
// output budget, and conditional response parsing.
func (s *ChatService) answerDirect(ctx context.Context, chat *model.Chat, message string, useReasoning bool) (*TurnResult, error) {
	systemPrompt := BuildSystemPrompt(chat.DocumentText, useReasoning)

	messages := make([]llm.Message, 0, len(chat.Turns)+2)
	messages = append(messages, llm.Message{Role: model.RoleSystem, Content: systemPrompt})
	// Replay prior turns as role/content pairs. Stored reasoning is never
	// sent upstream.
	for _, turn := range chat.Turns {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: model.RoleUser, Content: message})

	raw, err := s.llm.Complete(ctx, s.model, messages, directMaxTokens)
	if err != nil {
		apology := fmt.Sprintf("Sorry, I encountered an error processing your request: %v", err)
		s.persistErrorTurn(ctx, chat, message, apology)
		return nil, fmt.Errorf("%w: %v", app_errors.ErrCompletion, err)
	}

	var reasoning *string
	answer := raw
	if useReasoning {
		reasoning, answer = ParseReasoningResponse(raw)
		if reasoning == nil {
			slog.Warn("Could not parse reasoning tags from completion response", "chat_id", chat.ID)
			answer = raw
		}
	}

	appendTurns(chat, message, answer, reasoning)
	if err := s.repo.SaveChatContent(ctx, chat); err != nil {
		slog.Error("Failed to persist message turn", "chat_id", chat.ID, "error", err)
	}
	return &TurnResult{Reasoning: reasoning, Response: answer}, nil
}

// findNearby delegates to the places collaborator. Lookup failures are
// recoverable: the branch continues with an empty result set.
func (s *ChatService) findNearby(ctx context.Context, lat, lng float64, keywords []string) []places.Place {
	keyword := strings.Join(keywords, " ")
	results, err := s.places.Nearby(ctx, lat, lng, nearbyRadius, keyword)
	if err != nil {
		slog.Warn("Nearby places lookup failed, continuing without restaurant context", "error", err)
		return nil
	}
	return results
}

// persistErrorTurn appends a user-facing apology turn after a completion
// failure and tries to save it. A secondary persistence failure here is
// logged, not surfaced; the caller reports the original failure.
func (s *ChatService) persistErrorTurn(ctx context.Context, chat *model.Chat, message, apology string) {
	appendTurns(chat, message, apology, nil)
	if err := s.repo.SaveChatContent(ctx, chat); err != nil {
		slog.Error("Failed to persist error turn", "chat_id", chat.ID, "error", err)
	}
}

func appendTurns(chat *model.Chat, userMessage, answer string, reasoning *string) {
	chat.Turns = append(chat.Turns,
		model.Turn{Role: model.RoleUser, Content: userMessage},
		model.Turn{Role: model.RoleAssistant, Content: answer, Reasoning: reasoning},
	)
}

func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: chat not found", app_errors.ErrNotFound)
	}
	return err
}
