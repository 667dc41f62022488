package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"merlin/backend/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateUser(ctx context.Context, user *model.User) error {
	query := "INSERT INTO users (username, password_hash, latitude, longitude) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, query, user.Username, user.PasswordHash, user.Latitude, user.Longitude)
	if err != nil {
		return fmt.Errorf("could not insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("could not read new user id: %w", err)
	}
	user.ID = id
	return nil
}

func (r *sqliteRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := "SELECT id, username, password_hash, token, latitude, longitude FROM users WHERE username = ?"
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *sqliteRepository) GetUserByToken(ctx context.Context, token string) (*model.User, error) {
	query := "SELECT id, username, password_hash, token, latitude, longitude FROM users WHERE token = ?"
	return r.scanUser(r.db.QueryRowContext(ctx, query, token))
}

func (r *sqliteRepository) scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	var token sql.NullString
	var lat, lng sql.NullFloat64

	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &token, &lat, &lng)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if token.Valid {
		user.Token = &token.String
	}
	if lat.Valid {
		user.Latitude = &lat.Float64
	}
	if lng.Valid {
		user.Longitude = &lng.Float64
	}
	return &user, nil
}

func (r *sqliteRepository) SetUserToken(ctx context.Context, userID int64, token *string) error {
	query := "UPDATE users SET token = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, token, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *sqliteRepository) UpdateUserLocation(ctx context.Context, userID int64, latitude, longitude *float64) error {
	query := "UPDATE users SET latitude = ?, longitude = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, latitude, longitude, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *sqliteRepository) CreateChat(ctx context.Context, chat *model.Chat) error {
	messages, names, err := marshalContent(chat)
	if err != nil {
		return err
	}
	query := "INSERT INTO chats (id, user_id, name, messages, pdf_text, uploaded_pdfs) VALUES (?, ?, ?, ?, ?, ?)"
	_, err = r.db.ExecContext(ctx, query, chat.ID, chat.UserID, chat.Name, messages, chat.DocumentText, names)
	return err
}

func (r *sqliteRepository) GetChat(ctx context.Context, chatID string, userID int64) (*model.Chat, error) {
	query := "SELECT id, user_id, name, messages, pdf_text, uploaded_pdfs FROM chats WHERE id = ? AND user_id = ?"
	row := r.db.QueryRowContext(ctx, query, chatID, userID)

	var chat model.Chat
	var messages, names string
	err := row.Scan(&chat.ID, &chat.UserID, &chat.Name, &messages, &chat.DocumentText, &names)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(messages), &chat.Turns); err != nil {
		return nil, fmt.Errorf("could not decode transcript for chat %s: %w", chat.ID, err)
	}
	if err := json.Unmarshal([]byte(names), &chat.DocumentNames); err != nil {
		return nil, fmt.Errorf("could not decode document list for chat %s: %w", chat.ID, err)
	}
	return &chat, nil
}

func (r *sqliteRepository) GetChats(ctx context.Context, userID int64) ([]model.ChatSummary, error) {
	query := "SELECT id, name FROM chats WHERE user_id = ? ORDER BY rowid DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []model.ChatSummary
	for rows.Next() {
		var chat model.ChatSummary
		if err := rows.Scan(&chat.ID, &chat.Name); err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	return chats, rows.Err()
}

func (r *sqliteRepository) RenameChat(ctx context.Context, chatID string, userID int64, name string) error {
	query := "UPDATE chats SET name = ? WHERE id = ? AND user_id = ?"
	res, err := r.db.ExecContext(ctx, query, name, chatID, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *sqliteRepository) DeleteChat(ctx context.Context, chatID string, userID int64) error {
	query := "DELETE FROM chats WHERE id = ? AND user_id = ?"
	res, err := r.db.ExecContext(ctx, query, chatID, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *sqliteRepository) SaveChatContent(ctx context.Context, chat *model.Chat) error {
	messages, names, err := marshalContent(chat)
	if err != nil {
		return err
	}
	query := "UPDATE chats SET messages = ?, pdf_text = ?, uploaded_pdfs = ? WHERE id = ? AND user_id = ?"
	res, err := r.db.ExecContext(ctx, query, messages, chat.DocumentText, names, chat.ID, chat.UserID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// marshalContent serializes the transcript and document name list. Empty
// slices are stored as '[]', never as JSON null, so reads always decode.
func marshalContent(chat *model.Chat) (messages string, names string, err error) {
	turns := chat.Turns
	if turns == nil {
		turns = []model.Turn{}
	}
	rawTurns, err := json.Marshal(turns)
	if err != nil {
		return "", "", fmt.Errorf("could not encode transcript: %w", err)
	}

	docNames := chat.DocumentNames
	if docNames == nil {
		docNames = []string{}
	}
	rawNames, err := json.Marshal(docNames)
	if err != nil {
		return "", "", fmt.Errorf("could not encode document list: %w", err)
	}
	return string(rawTurns), string(rawNames), nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
