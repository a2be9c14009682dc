package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/noteshare/notes-api/internal/core/domain"
	"github.com/noteshare/notes-api/internal/core/service"
)

type memNoteRepo struct {
	mu    sync.Mutex
	notes []*domain.Note
	next  int
}

func (r *memNoteRepo) FindAll(_ context.Context) ([]*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Note, len(r.notes))
	copy(out, r.notes)
	return out, nil
}

func (r *memNoteRepo) Insert(_ context.Context, note *domain.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	note.ID = fmt.Sprintf("note-%d", r.next)
	clone := *note
	r.notes = append(r.notes, &clone)
	return nil
}

func (r *memNoteRepo) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.notes {
		if n.ID == id {
			r.notes = append(r.notes[:i], r.notes[i+1:]...)
			return nil
		}
	}
	return domain.ErrNoteNotFound
}

func (r *memNoteRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.notes)), nil
}

type gatewayFixture struct {
	srv  *httptest.Server
	hub  *Hub
	repo *memNoteRepo
	svc  *service.NoteService
}

func newGatewayFixture(t *testing.T) *gatewayFixture {
	t.Helper()

	hub := NewHub(nil, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	repo := &memNoteRepo{}
	svc := service.NewNoteService(repo, hub, zerolog.Nop())
	handler := NewHandler(hub, svc, zerolog.Nop())

	e := echo.New()
	e.GET("/ws", handler.ServeWS)
	srv := httptest.NewServer(e)

	t.Cleanup(func() {
		srv.Close()
		cancel()
	})

	return &gatewayFixture{srv: srv, hub: hub, repo: repo, svc: svc}
}

func (f *gatewayFixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial gateway: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, want int64) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for hub.ConnectionCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d connected clients, have %d", want, hub.ConnectionCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read gateway message: %v", err)
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestGateway_ClientEventFansOutToAll(t *testing.T) {
	f := newGatewayFixture(t)
	sender := f.dial(t)
	observer := f.dial(t)
	waitForClients(t, f.hub, 2)

	msg := `{"event":"note added","payload":{"title":"T","content":"C"}}`
	if err := sender.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Both the observer and the sender itself receive the broadcast.
	for _, conn := range []*websocket.Conn{observer, sender} {
		env := readEnvelope(t, conn)
		if env.Event != EventNoteAdded {
			t.Fatalf("expected %q, got %q", EventNoteAdded, env.Event)
		}
		var note domain.Note
		if err := json.Unmarshal(env.Payload, &note); err != nil {
			t.Fatalf("decode note: %v", err)
		}
		if note.Title != "T" || note.Content != "C" || note.ID == "" {
			t.Fatalf("unexpected note payload: %+v", note)
		}
	}

	// The mutation actually persisted.
	notes, _ := f.repo.FindAll(context.Background())
	if len(notes) != 1 {
		t.Fatalf("expected 1 persisted note, got %d", len(notes))
	}
}

func TestGateway_ServerMutationReachesClients(t *testing.T) {
	f := newGatewayFixture(t)
	observer := f.dial(t)
	waitForClients(t, f.hub, 1)

	// An HTTP-style mutation through the service layer fans out the same way.
	note, err := f.svc.Add(context.Background(), "T", "C")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	env := readEnvelope(t, observer)
	if env.Event != EventNoteAdded {
		t.Fatalf("expected %q, got %q", EventNoteAdded, env.Event)
	}
	var got domain.Note
	if err := json.Unmarshal(env.Payload, &got); err != nil {
		t.Fatalf("decode note: %v", err)
	}
	if got.ID != note.ID {
		t.Fatalf("expected broadcast of note %q, got %q", note.ID, got.ID)
	}

	// Deleting a never-existed id still broadcasts that id.
	if err := f.svc.Remove(context.Background(), "never-existed"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	env = readEnvelope(t, observer)
	if env.Event != EventNoteDeleted {
		t.Fatalf("expected %q, got %q", EventNoteDeleted, env.Event)
	}
	id, err := decodeIDPayload(env)
	if err != nil {
		t.Fatalf("decode id: %v", err)
	}
	if id != "never-existed" {
		t.Fatalf("expected broadcast of requested id, got %q", id)
	}

	// The real note is still there; only the broadcast id was bogus.
	if count, _ := f.repo.Count(context.Background()); count != 1 {
		t.Fatalf("expected 1 note, got %d", count)
	}
}

func TestGateway_MalformedEventIgnored(t *testing.T) {
	f := newGatewayFixture(t)
	sender := f.dial(t)
	waitForClients(t, f.hub, 1)

	if err := sender.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := sender.WriteMessage(websocket.TextMessage, []byte(`{"event":"shrug","payload":null}`)); err != nil {
		t.Fatalf("write: %v", err)
	}

	// The connection survives and a valid event still works.
	valid := `{"event":"note deleted","payload":"some-id"}`
	if err := sender.WriteMessage(websocket.TextMessage, []byte(valid)); err != nil {
		t.Fatalf("write: %v", err)
	}

	env := readEnvelope(t, sender)
	if env.Event != EventNoteDeleted {
		t.Fatalf("expected %q, got %q", EventNoteDeleted, env.Event)
	}
}
