package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/evetools/killfeed/app"
	"github.com/evetools/killfeed/ports"
)

// fakeStores serves canned rows and records whether it was queried.
type fakeStores struct {
	killmails map[int64]ports.Killmail
	queried   bool
	failWith  error
}

func (f *fakeStores) Get(ctx context.Context, id int64) (ports.Killmail, error) {
	f.queried = true
	if f.failWith != nil {
		return ports.Killmail{}, f.failWith
	}
	k, ok := f.killmails[id]
	if !ok {
		return ports.Killmail{}, ports.ErrNotFound
	}
	return k, nil
}

type emptyCharacters struct{}

func (emptyCharacters) Get(ctx context.Context, id int64) (ports.Character, error) {
	return ports.Character{}, ports.ErrNotFound
}

type emptyCorporations struct{}

func (emptyCorporations) Get(ctx context.Context, id int64) (ports.Corporation, error) {
	return ports.Corporation{}, ports.ErrNotFound
}

type emptyAlliances struct{}

func (emptyAlliances) Get(ctx context.Context, id int64) (ports.Alliance, error) {
	return ports.Alliance{}, ports.ErrNotFound
}

func newTestServer(t *testing.T, killmails *fakeStores) *httptest.Server {
	t.Helper()

	lookups := app.NewLookupService(app.LookupDeps{
		Killmails:    killmails,
		Characters:   emptyCharacters{},
		Corporations: emptyCorporations{},
		Alliances:    emptyAlliances{},
	})
	h := NewHandler(Deps{
		Lookups:        lookups,
		Logger:         zerolog.Nop(),
		StreamLifetime: 50 * time.Millisecond,
		Version:        "test",
	})

	srv := httptest.NewServer(h.Router(nil, "/metrics"))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return resp, body
}

func TestGetKillmail_Found(t *testing.T) {
	stores := &fakeStores{killmails: map[int64]ports.Killmail{
		113333333: {ID: 113333333, Hash: "abc123", SolarSystemID: 30000142},
	}}
	srv := newTestServer(t, stores)

	resp, body := getJSON(t, srv.URL+"/api/killmail/113333333")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["killmail_id"] != float64(113333333) {
		t.Errorf("killmail_id = %v, want 113333333", body["killmail_id"])
	}
	if body["hash"] != "abc123" {
		t.Errorf("hash = %v, want abc123", body["hash"])
	}
}

func TestGetKillmail_NotFound(t *testing.T) {
	srv := newTestServer(t, &fakeStores{})

	resp, body := getJSON(t, srv.URL+"/api/killmail/113333333")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if body["statusMessage"] != "Killmail not found" {
		t.Errorf("statusMessage = %v, want %q", body["statusMessage"], "Killmail not found")
	}
}

func TestGetCharacter_NotFoundMessageNamesResource(t *testing.T) {
	srv := newTestServer(t, &fakeStores{})

	resp, body := getJSON(t, srv.URL+"/api/character/90000001")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if body["statusMessage"] != "Character not found" {
		t.Errorf("statusMessage = %v, want %q", body["statusMessage"], "Character not found")
	}
}

func TestGetKillmail_InvalidID(t *testing.T) {
	stores := &fakeStores{}
	srv := newTestServer(t, stores)

	for _, id := range []string{"-1", "0", "abc"} {
		resp, body := getJSON(t, srv.URL+"/api/killmail/"+id)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("id=%s: status = %d, want 400", id, resp.StatusCode)
			continue
		}
		errs, ok := body["errors"].([]any)
		if !ok || len(errs) != 1 {
			t.Errorf("id=%s: errors = %v, want one field error", id, body["errors"])
			continue
		}
		fieldErr := errs[0].(map[string]any)
		if fieldErr["field"] != "id" {
			t.Errorf("id=%s: error field = %v, want id", id, fieldErr["field"])
		}
	}
	if stores.queried {
		t.Error("store must not be queried for invalid input")
	}
}

func TestGetKillmail_StoreFailureIsOpaque(t *testing.T) {
	stores := &fakeStores{failWith: errors.New("database is locked")}
	srv := newTestServer(t, stores)

	resp, body := getJSON(t, srv.URL+"/api/killmail/1")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	if body["statusMessage"] != "Internal server error" {
		t.Errorf("statusMessage = %v, internal cause must not leak", body["statusMessage"])
	}
}

func TestRedirectKillmail(t *testing.T) {
	stores := &fakeStores{}
	srv := newTestServer(t, stores)

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Get(srv.URL + "/killmail/113333333")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want 307", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != "/killmail/113333333/esi" {
		t.Errorf("Location = %q, want /killmail/113333333/esi", got)
	}
	if stores.queried {
		t.Error("redirect must not query the store")
	}
}

func TestKillmailESI_ServesLookup(t *testing.T) {
	stores := &fakeStores{killmails: map[int64]ports.Killmail{
		42: {ID: 42, Hash: "deadbeef"},
	}}
	srv := newTestServer(t, stores)

	resp, body := getJSON(t, srv.URL+"/killmail/42/esi")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["hash"] != "deadbeef" {
		t.Errorf("hash = %v, want deadbeef", body["hash"])
	}
}

func TestStreamTest_EmitsOrderedFramesThenCloses(t *testing.T) {
	srv := newTestServer(t, &fakeStores{})

	resp, err := http.Get(srv.URL + "/api/stream/test")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("Content-Type = %q, want text/event-stream", got)
	}

	// The stream is closed by its scheduled close, so reading to EOF
	// terminates.
	buf := new(strings.Builder)
	raw := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(raw)
		buf.Write(raw[:n])
		if err != nil {
			break
		}
	}

	body := buf.String()
	events := []string{"event: connected", "event: message", "event: done"}
	last := -1
	for _, ev := range events {
		idx := strings.Index(body, ev)
		if idx == -1 {
			t.Fatalf("frame %q missing from stream: %q", ev, body)
		}
		if idx < last {
			t.Fatalf("frame %q out of order in stream: %q", ev, body)
		}
		last = idx
	}
	if got := strings.Count(body, "data: "); got != 3 {
		t.Errorf("got %d data frames, want exactly 3: %q", got, body)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &fakeStores{})

	resp, body := getJSON(t, srv.URL+"/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
}
