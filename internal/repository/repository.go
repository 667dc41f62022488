package repository

import (
	"context"

	"merlin/backend/internal/model"
)

// Repository defines the interface for data storage operations.
// This interface makes it easy to switch database implementations.
type Repository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByToken(ctx context.Context, token string) (*model.User, error)
	SetUserToken(ctx context.Context, userID int64, token *string) error
	UpdateUserLocation(ctx context.Context, userID int64, latitude, longitude *float64) error

	CreateChat(ctx context.Context, chat *model.Chat) error
	GetChat(ctx context.Context, chatID string, userID int64) (*model.Chat, error)
	GetChats(ctx context.Context, userID int64) ([]model.ChatSummary, error)
	RenameChat(ctx context.Context, chatID string, userID int64, name string) error
	DeleteChat(ctx context.Context, chatID string, userID int64) error

	// SaveChatContent rewrites the chat's transcript and document context
	// blobs in a single commit. Last write wins; concurrent messages to the
	// same chat are not serialized here.
	SaveChatContent(ctx context.Context, chat *model.Chat) error
}
