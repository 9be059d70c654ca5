package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const tutorsBody = `[
  {"id":"1","first_name":"Ana","last_name":"López","email":"ana@example.com","date_of_birth":"1990-04-02",
   "nationality":"ES","speciality":"Math","created_at":null,"updated_at":null},
  {"id":2,"first_name":"Ben","last_name":"Stone","email":"ben@example.com","date_of_birth":"1985-11-30",
   "nationality":"UK","speciality":"English","created_at":"2024-01-01T10:00:00Z","updated_at":null}
]`

func upstream(t *testing.T, routes map[string]string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		if r.Method != http.MethodGet || r.URL.RawQuery != "" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL)
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetTutors(t *testing.T) {
	srv := upstream(t, map[string]string{"/api/tutors": tutorsBody}, nil)
	c := NewClient(srv.URL+"/api/", time.Second, zerolog.Nop())

	tutors, err := c.GetTutors(context.Background())
	if err != nil {
		t.Fatalf("GetTutors: %v", err)
	}
	if len(tutors) != 2 {
		t.Fatalf("got %d tutors, want 2", len(tutors))
	}
	if tutors[1].ID != "2" || tutors[0].LastName != "López" {
		t.Errorf("unexpected decode: %+v", tutors)
	}
	if !tutors[1].CreatedAt.Valid() || tutors[0].CreatedAt.Valid() {
		t.Error("created_at nullability not preserved")
	}
}

func TestGetUsersAndBookings(t *testing.T) {
	srv := upstream(t, map[string]string{
		"/users":   `[{"id":"s1","first_name":"Sara","last_name":"Gil","date_of_birth":"2010-02-01","address":"Calle Mayor 1"}]`,
		"/booking": `[{"id":"b1","tutor_id":"1","student_id":"s1","date":"2024-01-01T09:00:00Z","start_time":"2024-01-01T09:00:00Z","end_time":"2024-01-01T10:00:00Z","tutor":{"id":"1","first_name":"Ana","last_name":"López"},"student":{"id":"s1","first_name":"Sara","last_name":"Gil"}}]`,
	}, nil)
	c := NewClient(srv.URL, time.Second, zerolog.Nop())

	students, err := c.GetUsers(context.Background())
	if err != nil || len(students) != 1 || students[0].Address != "Calle Mayor 1" {
		t.Fatalf("GetUsers = %+v, %v", students, err)
	}
	classes, err := c.GetBookings(context.Background())
	if err != nil || len(classes) != 1 || classes[0].Student.FirstName != "Sara" {
		t.Fatalf("GetBookings = %+v, %v", classes, err)
	}
	raw, err := c.GetRaw(context.Background(), PathUsers)
	if err != nil || len(raw) != 1 {
		t.Fatalf("GetRaw = %v, %v", raw, err)
	}
}

func TestFailuresWrapErrUpstream(t *testing.T) {
	srv := upstream(t, map[string]string{"/tutors": `{"not":"an array"}`}, nil)
	c := NewClient(srv.URL, time.Second, zerolog.Nop())

	if _, err := c.GetTutors(context.Background()); !errors.Is(err, ErrUpstream) {
		t.Errorf("decode failure: err = %v, want ErrUpstream", err)
	}
	if _, err := c.GetUsers(context.Background()); !errors.Is(err, ErrUpstream) {
		t.Errorf("404: err = %v, want ErrUpstream", err)
	}

	dead := NewClient("http://127.0.0.1:1", 200*time.Millisecond, zerolog.Nop())
	if _, err := dead.GetBookings(context.Background()); !errors.Is(err, ErrUpstream) {
		t.Errorf("transport failure: err = %v, want ErrUpstream", err)
	}
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memCache) Get(_ context.Context, path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[path]
	return b, ok
}

func (m *memCache) Set(_ context.Context, path string, body []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[path] = body
}

func TestCacheServesRepeatedReads(t *testing.T) {
	var hits atomic.Int32
	srv := upstream(t, map[string]string{"/tutors": tutorsBody}, &hits)
	cache := &memCache{data: map[string][]byte{}}
	c := NewClient(srv.URL, time.Second, zerolog.Nop(), WithCache(cache))

	for i := 0; i < 3; i++ {
		if _, err := c.GetTutors(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("upstream hit %d times, want 1", n)
	}
}

func TestCacheSkipsFailedDecode(t *testing.T) {
	srv := upstream(t, map[string]string{"/tutors": `oops`}, nil)
	cache := &memCache{data: map[string][]byte{}}
	c := NewClient(srv.URL, time.Second, zerolog.Nop(), WithCache(cache))

	_, _ = c.GetTutors(context.Background())
	if _, ok := cache.Get(context.Background(), PathTutors); ok {
		t.Error("undecodable body was cached")
	}
}
