package api_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"merlin/backend/internal/api"
	app_errors "merlin/backend/internal/errors"
	"merlin/backend/internal/interfaces/mocks"
	"merlin/backend/internal/model"
	"merlin/backend/internal/service"
)

func setupChatHandler(t *testing.T) (*api.ChatHandler, *mocks.MockChatService, *mocks.MockDocumentService) {
	mockChats := mocks.NewMockChatService(t)
	mockDocuments := mocks.NewMockDocumentService(t)
	handler := api.NewChatHandler(mockChats, mockDocuments, 32<<20)
	return handler, mockChats, mockDocuments
}

// addChiURLParams simulates how the chi router injects URL parameters
// (e.g. `{chatID}`) into the request context; without it chi.URLParam
// returns an empty string inside handler tests.
func addChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for key, value := range params {
		chiCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

func testUser() *model.User {
	return &model.User{ID: 1, Username: "admin"}
}

func TestChatHandler_CreateChat(t *testing.T) {
	handler, mockChats, _ := setupChatHandler(t)
	mockChats.On("CreateChat", mock.Anything, int64(1)).
		Return(&model.ChatSummary{ID: "chat1", Name: "New Chat chat"}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/chats", nil)
	rr := serveAuthed(t, testUser(), handler.CreateChat, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"id":"chat1","name":"New Chat chat"}`, rr.Body.String())
}

func TestChatHandler_ListChats(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockChats, _ := setupChatHandler(t)
		mockChats.On("ListChats", mock.Anything, int64(1)).
			Return([]model.ChatSummary{{ID: "chat2", Name: "Newest"}, {ID: "chat1", Name: "Oldest"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/chats", nil)
		rr := serveAuthed(t, testUser(), handler.ListChats, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[{"id":"chat2","name":"Newest"},{"id":"chat1","name":"Oldest"}]`, rr.Body.String())
	})

	t.Run("Success - no chats renders an empty array", func(t *testing.T) {
		handler, mockChats, _ := setupChatHandler(t)
		mockChats.On("ListChats", mock.Anything, int64(1)).Return(nil, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/chats", nil)
		rr := serveAuthed(t, testUser(), handler.ListChats, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "[]", rr.Body.String())
	})
}

func TestChatHandler_GetChat(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockChats, _ := setupChatHandler(t)
		chat := &model.Chat{ID: "chat1", Name: "My Chat"}
		mockChats.On("GetChat", mock.Anything, "chat1", int64(1)).Return(chat, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/chats/chat1", nil)
		req = addChiURLParams(req, map[string]string{"chatID": "chat1"})
		rr := serveAuthed(t, testUser(), handler.GetChat, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"name":"My Chat"`)
	})

	t.Run("Failure - not found", func(t *testing.T) {
		handler, mockChats, _ := setupChatHandler(t)
		mockChats.On("GetChat", mock.Anything, "missing", int64(1)).Return(nil, app_errors.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/chats/missing", nil)
		req = addChiURLParams(req, map[string]string{"chatID": "missing"})
		rr := serveAuthed(t, testUser(), handler.GetChat, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestChatHandler_RenameChat(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockChats, _ := setupChatHandler(t)
		mockChats.On("RenameChat", mock.Anything, "chat1", int64(1), "Trip planning").Return(nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/chats/chat1", strings.NewReader(`{"name":"Trip planning"}`))
		req = addChiURLParams(req, map[string]string{"chatID": "chat1"})
		rr := serveAuthed(t, testUser(), handler.RenameChat, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"success":true,"message":"Chat renamed successfully"}`, rr.Body.String())
	})

	t.Run("Failure - empty name rejected by validation", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)

		req := httptest.NewRequest(http.MethodPut, "/api/chats/chat1", strings.NewReader(`{"name":""}`))
		req = addChiURLParams(req, map[string]string{"chatID": "chat1"})
		rr := serveAuthed(t, testUser(), handler.RenameChat, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestChatHandler_DeleteChat(t *testing.T) {
	handler, mockChats, _ := setupChatHandler(t)
	mockChats.On("DeleteChat", mock.Anything, "chat1", int64(1)).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/chats/chat1", nil)
	req = addChiURLParams(req, map[string]string{"chatID": "chat1"})
	rr := serveAuthed(t, testUser(), handler.DeleteChat, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"message":"Chat deleted successfully"}`, rr.Body.String())
}

func TestChatHandler_SendMessage(t *testing.T) {
	newMessageRequest := func(message, useReasoning string) *http.Request {
		form := "message=" + message
		if useReasoning != "" {
			form += "&use_reasoning=" + useReasoning
		}
		req := httptest.NewRequest(http.MethodPost, "/api/chats/chat1/messages", strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return addChiURLParams(req, map[string]string{"chatID": "chat1"})
	}

	t.Run("Success", func(t *testing.T) {
		handler, mockChats, _ := setupChatHandler(t)
		user := testUser()
		mockChats.On("SendMessage", mock.Anything, user, "chat1", "hello", false).
			Return(&service.TurnResult{Response: "hi there"}, nil).Once()

		rr := serveAuthed(t, user, handler.SendMessage, newMessageRequest("hello", ""))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"reasoning":null,"response":"hi there"}`, rr.Body.String())
	})

	t.Run("Success - use_reasoning is case-insensitive", func(t *testing.T) {
		handler, mockChats, _ := setupChatHandler(t)
		user := testUser()
		reasoning := "thinking"
		mockChats.On("SendMessage", mock.Anything, user, "chat1", "hello", true).
			Return(&service.TurnResult{Reasoning: &reasoning, Response: "hi"}, nil).Once()

		rr := serveAuthed(t, user, handler.SendMessage, newMessageRequest("hello", "True"))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"reasoning":"thinking","response":"hi"}`, rr.Body.String())
	})

	t.Run("Failure - empty message", func(t *testing.T) {
		handler, mockChats, _ := setupChatHandler(t)
		user := testUser()
		mockChats.On("SendMessage", mock.Anything, user, "chat1", "", false).
			Return(nil, app_errors.ErrValidation).Once()

		rr := serveAuthed(t, user, handler.SendMessage, newMessageRequest("", ""))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - completion error surfaces the message", func(t *testing.T) {
		handler, mockChats, _ := setupChatHandler(t)
		user := testUser()
		mockChats.On("SendMessage", mock.Anything, user, "chat1", "hello", false).
			Return(nil, app_errors.ErrCompletion).Once()

		rr := serveAuthed(t, user, handler.SendMessage, newMessageRequest("hello", ""))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "completion")
	})
}

func newUploadRequest(t *testing.T, filenames ...string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, name := range filenames {
		part, err := writer.CreateFormFile("pdfs", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 stub"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/chats/chat1/upload-pdfs", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return addChiURLParams(req, map[string]string{"chatID": "chat1"})
}

func TestChatHandler_UploadDocuments(t *testing.T) {
	t.Run("Success - all files accepted", func(t *testing.T) {
		handler, _, mockDocuments := setupChatHandler(t)
		user := testUser()
		mockDocuments.On("AddDocuments", mock.Anything, "chat1", int64(1), mock.MatchedBy(func(files []service.UploadFile) bool {
			return len(files) == 1 && files[0].Name == "a.pdf" && len(files[0].Data) > 0
		})).Return(&service.UploadResult{
			Uploaded:      []string{"a.pdf"},
			DocumentNames: []string{"a.pdf"},
		}, nil).Once()

		rr := serveAuthed(t, user, handler.UploadDocuments, newUploadRequest(t, "a.pdf"))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"message":"PDFs uploaded successfully.","uploaded_pdfs":["a.pdf"]}`, rr.Body.String())
	})

	t.Run("Partial success returns 207", func(t *testing.T) {
		handler, _, mockDocuments := setupChatHandler(t)
		user := testUser()
		mockDocuments.On("AddDocuments", mock.Anything, "chat1", int64(1), mock.Anything).
			Return(&service.UploadResult{
				Uploaded:      []string{"a.pdf"},
				Errors:        []string{"'b.pdf' is already uploaded to this chat."},
				DocumentNames: []string{"b.pdf", "a.pdf"},
			}, nil).Once()

		rr := serveAuthed(t, user, handler.UploadDocuments, newUploadRequest(t, "a.pdf", "b.pdf"))

		assert.Equal(t, http.StatusMultiStatus, rr.Code)
		assert.Contains(t, rr.Body.String(), "Processed uploads with some issues. Newly added: a.pdf.")
	})

	t.Run("Nothing accepted reports None", func(t *testing.T) {
		handler, _, mockDocuments := setupChatHandler(t)
		user := testUser()
		mockDocuments.On("AddDocuments", mock.Anything, "chat1", int64(1), mock.Anything).
			Return(&service.UploadResult{
				Errors:        []string{"Could not extract text from 'a.pdf'."},
				DocumentNames: []string{},
			}, nil).Once()

		rr := serveAuthed(t, user, handler.UploadDocuments, newUploadRequest(t, "a.pdf"))

		assert.Equal(t, http.StatusMultiStatus, rr.Code)
		assert.Contains(t, rr.Body.String(), "Newly added: None.")
	})

	t.Run("Failure - save error returns 500, not a partial success", func(t *testing.T) {
		handler, _, mockDocuments := setupChatHandler(t)
		user := testUser()
		mockDocuments.On("AddDocuments", mock.Anything, "chat1", int64(1), mock.Anything).
			Return(&service.UploadResult{
				Uploaded:      []string{"a.pdf"},
				Errors:        []string{"Database error saving changes."},
				DocumentNames: []string{"a.pdf"},
			}, errors.New("could not save uploaded documents: disk full")).Once()

		rr := serveAuthed(t, user, handler.UploadDocuments, newUploadRequest(t, "a.pdf"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"error":"Database error saving changes."}`, rr.Body.String())
		assert.NotContains(t, rr.Body.String(), "uploaded_pdfs")
	})

	t.Run("Failure - no files in request", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)
		user := testUser()

		rr := serveAuthed(t, user, handler.UploadDocuments, newUploadRequest(t))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestChatHandler_RemoveDocument(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, _, mockDocuments := setupChatHandler(t)
		mockDocuments.On("RemoveDocument", mock.Anything, "chat1", int64(1), "a.pdf").Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/chats/chat1/remove-pdf", strings.NewReader(`{"pdf_name":"a.pdf"}`))
		req = addChiURLParams(req, map[string]string{"chatID": "chat1"})
		rr := serveAuthed(t, testUser(), handler.RemoveDocument, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"success":true,"message":"PDF 'a.pdf' removed."}`, rr.Body.String())
	})

	t.Run("Failure - unknown document", func(t *testing.T) {
		handler, _, mockDocuments := setupChatHandler(t)
		mockDocuments.On("RemoveDocument", mock.Anything, "chat1", int64(1), "ghost.pdf").
			Return(app_errors.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/chats/chat1/remove-pdf", strings.NewReader(`{"pdf_name":"ghost.pdf"}`))
		req = addChiURLParams(req, map[string]string{"chatID": "chat1"})
		rr := serveAuthed(t, testUser(), handler.RemoveDocument, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
