package interfaces

import (
	"context"

	"merlin/backend/internal/model"
	"merlin/backend/internal/service"
)

// This file defines the interfaces for our core services.
// Depending on these interfaces, instead of concrete implementations, allows for
// decoupling (e.g., API layer from Service layer) and easier testing via mocking.

// ChatService defines the contract for chat-related business logic,
// including the message-turn pipeline.
type ChatService interface {
	CreateChat(ctx context.Context, userID int64) (*model.ChatSummary, error)
	ListChats(ctx context.Context, userID int64) ([]model.ChatSummary, error)
	GetChat(ctx context.Context, chatID string, userID int64) (*model.Chat, error)
	RenameChat(ctx context.Context, chatID string, userID int64, name string) error
	DeleteChat(ctx context.Context, chatID string, userID int64) error
	SendMessage(ctx context.Context, user *model.User, chatID, message string, useReasoning bool) (*service.TurnResult, error)
}

// DocumentService defines the contract for managing a chat's uploaded
// document context.
type DocumentService interface {
	AddDocuments(ctx context.Context, chatID string, userID int64, files []service.UploadFile) (*service.UploadResult, error)
	RemoveDocument(ctx context.Context, chatID string, userID int64, name string) error
}

// UserService defines the contract for authentication and user location.
type UserService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, userID int64) error
	Authenticate(ctx context.Context, token string) (*model.User, error)
	UpdateLocation(ctx context.Context, userID int64, latitude, longitude *float64) error
}
