package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	app_errors "merlin/backend/internal/errors"
	"merlin/backend/internal/extract"
	"merlin/backend/internal/repository"
)

// UploadFile is one uploaded document, already read into memory.
type UploadFile struct {
	Name string
	Data []byte
}

// UploadResult reports the outcome of a multi-file upload. Errors holds one
// human-readable entry per file that could not be processed; a request can
// partially succeed.
type UploadResult struct {
	Uploaded      []string
	Errors        []string
	DocumentNames []string
}

// DocumentService maintains each chat's document context: a single
// concatenated text built from uploads, with per-document marker pairs that
// allow one document's section to be removed later.
type DocumentService struct {
	repo      repository.Repository
	extractor extract.TextExtractor
}

func NewDocumentService(repo repository.Repository, extractor extract.TextExtractor) *DocumentService {
	return &DocumentService{repo: repo, extractor: extractor}
}

func startMarker(name string) string { return fmt.Sprintf("--- START OF %s ---", name) }
func endMarker(name string) string   { return fmt.Sprintf("--- END OF %s ---", name) }

// AddDocuments extracts text from each file and appends it to the chat's
// document context, wrapped in marker pairs. Files that fail (wrong type,
// duplicate name, unreadable, no text) are reported per file without
// aborting the rest of the batch.
func (s *DocumentService) AddDocuments(ctx context.Context, chatID string, userID int64, files []UploadFile) (*UploadResult, error) {
	chat, err := s.repo.GetChat(ctx, chatID, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	result := &UploadResult{}
	for _, file := range files {
		if !strings.HasSuffix(strings.ToLower(file.Name), ".pdf") {
			result.Errors = append(result.Errors, fmt.Sprintf("Invalid file type for '%s'. Only PDFs are allowed.", file.Name))
			continue
		}
		if containsName(chat.DocumentNames, file.Name) {
			result.Errors = append(result.Errors, fmt.Sprintf("'%s' is already uploaded to this chat.", file.Name))
			continue
		}

		text, err := s.extractor.ExtractText(file.Data)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Error processing PDF '%s': %v", file.Name, err))
			continue
		}
		if text == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Could not extract text from '%s'.", file.Name))
			continue
		}

		chat.DocumentText += fmt.Sprintf("%s\n%s\n%s\n\n", startMarker(file.Name), text, endMarker(file.Name))
		chat.DocumentNames = append(chat.DocumentNames, file.Name)
		result.Uploaded = append(result.Uploaded, file.Name)
	}

	if len(result.Uploaded) > 0 {
		if err := s.repo.SaveChatContent(ctx, chat); err != nil {
			result.Errors = append(result.Errors, "Database error saving changes.")
			result.DocumentNames = chat.DocumentNames
			return result, fmt.Errorf("could not save uploaded documents: %w", err)
		}
	}

	result.DocumentNames = chat.DocumentNames
	return result, nil
}

// RemoveDocument drops one document from the chat: its name from the
// tracking list and its marked section from the context text. When the
// marker pair cannot be found the name is still removed but the text is
// left unchanged; this inconsistency is logged, not repaired.
func (s *DocumentService) RemoveDocument(ctx context.Context, chatID string, userID int64, name string) error {
	chat, err := s.repo.GetChat(ctx, chatID, userID)
	if err != nil {
		return mapRepoError(err)
	}

	if !containsName(chat.DocumentNames, name) {
		return fmt.Errorf("%w: document '%s' not found in this chat", app_errors.ErrNotFound, name)
	}

	names := make([]string, 0, len(chat.DocumentNames)-1)
	for _, n := range chat.DocumentNames {
		if n != name {
			names = append(names, n)
		}
	}
	chat.DocumentNames = names
	chat.DocumentText = strings.TrimSpace(removeMarkedSection(chat.DocumentText, name))

	if err := s.repo.SaveChatContent(ctx, chat); err != nil {
		return fmt.Errorf("could not save document removal: %w", err)
	}
	return nil
}

// removeMarkedSection excises the marker-delimited section for the named
// document, through the end of the line that carries the end marker.
func removeMarkedSection(text, name string) string {
	start := strings.Index(text, startMarker(name))
	end := strings.Index(text, endMarker(name))
	if start == -1 || end == -1 {
		slog.Warn("Markers for document not found in context text; text content not removed", "document", name)
		return text
	}

	afterEnd := end + len(endMarker(name))
	lineEnd := strings.Index(text[afterEnd:], "\n")
	if lineEnd == -1 {
		return text[:start]
	}
	return text[:start] + strings.TrimLeft(text[afterEnd+lineEnd:], "\n")
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
