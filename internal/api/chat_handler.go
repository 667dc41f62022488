package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	app_errors "merlin/backend/internal/errors"
	"merlin/backend/internal/interfaces"
	"merlin/backend/internal/model"
	"merlin/backend/internal/service"
)

// ChatHandler handles HTTP requests for chats, messages and uploaded
// documents.
type ChatHandler struct {
	chats          interfaces.ChatService
	documents      interfaces.DocumentService
	maxUploadBytes int64
}

func NewChatHandler(chats interfaces.ChatService, documents interfaces.DocumentService, maxUploadBytes int64) *ChatHandler {
	return &ChatHandler{chats: chats, documents: documents, maxUploadBytes: maxUploadBytes}
}

// RenameChatRequest is the DTO for the chat rename endpoint.
type RenameChatRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// RemoveDocumentRequest is the DTO for the document removal endpoint.
type RemoveDocumentRequest struct {
	PDFName string `json:"pdf_name" validate:"required"`
}

// UploadResponse reports the outcome of a document upload batch.
type UploadResponse struct {
	Message      string   `json:"message"`
	Errors       []string `json:"errors,omitempty"`
	UploadedPDFs []string `json:"uploaded_pdfs"`
}

// CreateChat godoc
// @Summary      Create a chat
// @Description  Creates a new empty chat session for the authenticated user.
// @Tags         Chats
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  model.ChatSummary
// @Failure      401  {object}  ErrorResponse
// @Router       /chats [post]
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrUnauthorized)
		return
	}
	summary, err := h.chats.CreateChat(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, summary)
}

// ListChats godoc
// @Summary      List chats
// @Description  Returns id and name of the user's chats, newest first.
// @Tags         Chats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  model.ChatSummary
// @Failure      401  {object}  ErrorResponse
// @Router       /chats [get]
func (h *ChatHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrUnauthorized)
		return
	}
	chats, err := h.chats.ListChats(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if chats == nil {
		chats = []model.ChatSummary{}
	}
	respondWithJSON(w, http.StatusOK, chats)
}

// GetChat godoc
// @Summary      Get a chat
// @Description  Returns a chat with its full transcript and document context.
// @Tags         Chats
// @Produce      json
// @Security     BearerAuth
// @Param        chatID  path  string  true  "Chat ID"
// @Success      200  {object}  model.Chat
// @Failure      404  {object}  ErrorResponse
// @Router       /chats/{chatID} [get]
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrUnauthorized)
		return
	}
	chat, err := h.chats.GetChat(r.Context(), chi.URLParam(r, "chatID"), user.ID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, chat)
}

// RenameChat godoc
// @Summary      Rename a chat
// @Description  Updates a chat's display name.
// @Tags         Chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        chatID  path  string             true  "Chat ID"
// @Param        name    body  RenameChatRequest  true  "New name"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /chats/{chatID} [put]
func (h *ChatHandler) RenameChat(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrUnauthorized)
		return
	}

	var req RenameChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: new name is required", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	if err := h.chats.RenameChat(r.Context(), chi.URLParam(r, "chatID"), user.ID, req.Name); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Success: true, Message: "Chat renamed successfully"})
}

// DeleteChat godoc
// @Summary      Delete a chat
// @Description  Deletes a chat along with its transcript and document context.
// @Tags         Chats
// @Produce      json
// @Security     BearerAuth
// @Param        chatID  path  string  true  "Chat ID"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /chats/{chatID} [delete]
func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrUnauthorized)
		return
	}
	if err := h.chats.DeleteChat(r.Context(), chi.URLParam(r, "chatID"), user.ID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Success: true, Message: "Chat deleted successfully"})
}

// SendMessage godoc
// @Summary      Send a message
// @Description  Runs one message turn and returns the assistant's reply, with optional separated reasoning.
// @Tags         Chats
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        chatID         path      string  true   "Chat ID"
// @Param        message        formData  string  true   "User message"
// @Param        use_reasoning  formData  string  false  "Request structured reasoning output"
// @Success      200  {object}  service.TurnResult
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /chats/{chatID}/messages [post]
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrUnauthorized)
		return
	}

	message := r.FormValue("message")
	useReasoning := strings.EqualFold(r.FormValue("use_reasoning"), "true")

	result, err := h.chats.SendMessage(r.Context(), user, chi.URLParam(r, "chatID"), message, useReasoning)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// UploadDocuments godoc
// @Summary      Upload documents
// @Description  Extracts text from the uploaded PDFs and appends it to the chat's document context.
// @Tags         Documents
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        chatID  path      string  true  "Chat ID"
// @Param        pdfs    formData  file    true  "PDF files"
// @Success      200  {object}  UploadResponse
// @Success      207  {object}  UploadResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /chats/{chatID}/upload-pdfs [post]
func (h *ChatHandler) UploadDocuments(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		respondWithError(w, fmt.Errorf("%w: could not parse upload: %v", app_errors.ErrValidation, err))
		return
	}
	fileHeaders := r.MultipartForm.File["pdfs"]
	if len(fileHeaders) == 0 {
		respondWithError(w, fmt.Errorf("%w: no PDF files found in request", app_errors.ErrValidation))
		return
	}

	files := make([]service.UploadFile, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		f, err := header.Open()
		if err != nil {
			respondWithError(w, fmt.Errorf("could not open uploaded file '%s': %w", header.Filename, err))
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			respondWithError(w, fmt.Errorf("could not read uploaded file '%s': %w", header.Filename, err))
			return
		}
		files = append(files, service.UploadFile{Name: header.Filename, Data: data})
	}

	result, err := h.documents.AddDocuments(r.Context(), chi.URLParam(r, "chatID"), user.ID, files)
	if err != nil {
		// A save failure means nothing from this batch was committed, even
		// when some files processed cleanly. 207 would misreport that as a
		// partial success.
		if result != nil && len(result.Errors) > 0 {
			respondWithJSON(w, http.StatusInternalServerError, ErrorResponse{Error: strings.Join(result.Errors, "; ")})
			return
		}
		respondWithError(w, err)
		return
	}

	if len(result.Errors) == 0 {
		respondWithJSON(w, http.StatusOK, UploadResponse{
			Message:      "PDFs uploaded successfully.",
			UploadedPDFs: result.DocumentNames,
		})
		return
	}

	newlyAdded := "None"
	if len(result.Uploaded) > 0 {
		newlyAdded = strings.Join(result.Uploaded, ", ")
	}
	respondWithJSON(w, http.StatusMultiStatus, UploadResponse{
		Message:      fmt.Sprintf("Processed uploads with some issues. Newly added: %s.", newlyAdded),
		Errors:       result.Errors,
		UploadedPDFs: result.DocumentNames,
	})
}

// RemoveDocument godoc
// @Summary      Remove a document
// @Description  Removes one document's name and marked text section from the chat's context.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        chatID    path  string                 true  "Chat ID"
// @Param        document  body  RemoveDocumentRequest  true  "Document name"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /chats/{chatID}/remove-pdf [post]
func (h *ChatHandler) RemoveDocument(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrUnauthorized)
		return
	}

	var req RemoveDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: PDF name is required", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	if err := h.documents.RemoveDocument(r.Context(), chi.URLParam(r, "chatID"), user.ID, req.PDFName); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Success: true, Message: fmt.Sprintf("PDF '%s' removed.", req.PDFName)})
}
