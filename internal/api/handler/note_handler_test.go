package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/noteshare/notes-api/internal/core/domain"
)

type stubNoteService struct {
	listFn   func(ctx context.Context) ([]*domain.Note, error)
	addFn    func(ctx context.Context, title, content string) (*domain.Note, error)
	removeFn func(ctx context.Context, id string) error
}

func (s *stubNoteService) List(ctx context.Context) ([]*domain.Note, error) {
	return s.listFn(ctx)
}

func (s *stubNoteService) Add(ctx context.Context, title, content string) (*domain.Note, error) {
	return s.addFn(ctx, title, content)
}

func (s *stubNoteService) Remove(ctx context.Context, id string) error {
	return s.removeFn(ctx, id)
}

func newNoteContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestNoteHandler_List(t *testing.T) {
	stub := &stubNoteService{
		listFn: func(ctx context.Context) ([]*domain.Note, error) {
			return []*domain.Note{
				{ID: "1", Title: "T1", Content: "C1"},
				{ID: "2", Title: "T2", Content: "C2"},
			}, nil
		},
	}
	h := NewNoteHandler(stub)

	c, rec := newNoteContext(t, http.MethodGet, "/api/notes", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var notes []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &notes); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(notes) != 2 || notes[0]["title"] != "T1" || notes[1]["id"] != "2" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestNoteHandler_List_StoreFailure(t *testing.T) {
	stub := &stubNoteService{
		listFn: func(ctx context.Context) ([]*domain.Note, error) {
			return nil, errors.New("connection refused")
		},
	}
	h := NewNoteHandler(stub)

	c, rec := newNoteContext(t, http.MethodGet, "/api/notes", "")
	_ = h.List(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Error:") {
		t.Fatalf("expected Error-prefixed body, got %s", rec.Body.String())
	}
}

func TestNoteHandler_Add(t *testing.T) {
	var gotTitle, gotContent string
	stub := &stubNoteService{
		addFn: func(ctx context.Context, title, content string) (*domain.Note, error) {
			gotTitle, gotContent = title, content
			return &domain.Note{ID: "1", Title: title, Content: content}, nil
		},
	}
	h := NewNoteHandler(stub)

	c, rec := newNoteContext(t, http.MethodPost, "/api/notes/add", `{"title":"T","content":"C"}`)
	if err := h.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `"Note added!"` {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if gotTitle != "T" || gotContent != "C" {
		t.Fatalf("service received %q %q", gotTitle, gotContent)
	}
}

func TestNoteHandler_Add_Validation(t *testing.T) {
	stub := &stubNoteService{
		addFn: func(ctx context.Context, title, content string) (*domain.Note, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewNoteHandler(stub)

	for _, body := range []string{`{"title":"","content":"x"}`, `{"title":"x"}`} {
		c, rec := newNoteContext(t, http.MethodPost, "/api/notes/add", body)
		_ = h.Add(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestNoteHandler_Delete(t *testing.T) {
	var gotID string
	stub := &stubNoteService{
		removeFn: func(ctx context.Context, id string) error {
			gotID = id
			return nil
		},
	}
	h := NewNoteHandler(stub)

	c, rec := newNoteContext(t, http.MethodDelete, "/", "")
	c.SetPath("/api/notes/:id")
	c.SetParamNames("id")
	c.SetParamValues("never-existed")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `"Note deleted."` {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if gotID != "never-existed" {
		t.Fatalf("service received id %q", gotID)
	}
}

func TestNoteHandler_Delete_StoreFailure(t *testing.T) {
	stub := &stubNoteService{
		removeFn: func(ctx context.Context, id string) error {
			return errors.New("connection refused")
		},
	}
	h := NewNoteHandler(stub)

	c, rec := newNoteContext(t, http.MethodDelete, "/", "")
	c.SetPath("/api/notes/:id")
	c.SetParamNames("id")
	c.SetParamValues("some-id")

	_ = h.Delete(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
