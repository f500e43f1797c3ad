package application_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/ericfisherdev/devfolio/internal/domain/model"
)

// --- Mock implementations ---

type mockKVStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
	setErr error
	sets   int
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{data: make(map[string][]byte)}
}

func (m *mockKVStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mockKVStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.data[key] = value
	return nil
}

func (m *mockKVStore) snapshot() map[string][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.data)
}

type mockGitHubClient struct {
	mu sync.Mutex

	profile    model.UserProfile
	profileErr error
	pages      map[int][]model.RawRepository
	pageErrs   map[int]error

	// Hooks run before the mock answers, outside the lock.
	onProfile func()
	onPage    func(page int)

	profileCalls int
	pageCalls    []int
}

func (m *mockGitHubClient) FetchProfile(_ context.Context, _ string) (model.UserProfile, error) {
	if m.onProfile != nil {
		m.onProfile()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.profileCalls++
	if m.profileErr != nil {
		return model.UserProfile{}, m.profileErr
	}
	return m.profile, nil
}

func (m *mockGitHubClient) FetchRepositoryPage(_ context.Context, _ string, page int) ([]model.RawRepository, error) {
	if m.onPage != nil {
		m.onPage(page)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageCalls = append(m.pageCalls, page)
	if err := m.pageErrs[page]; err != nil {
		return nil, err
	}
	return m.pages[page], nil
}

func (m *mockGitHubClient) calls() (profile int, pages []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profileCalls, append([]int(nil), m.pageCalls...)
}

// recordingRenderer keeps every call in order so tests can assert on the
// sequence the pipeline emitted.
type recordingRenderer struct {
	mu     sync.Mutex
	events []string

	profiles []model.Profile
	repos    [][]model.RepositoryEntry
	notices  []model.Notice
}

func (r *recordingRenderer) ShowProfile(p model.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "profile")
	r.profiles = append(r.profiles, p)
}

func (r *recordingRenderer) ShowRepos(repos []model.RepositoryEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "repos")
	r.repos = append(r.repos, repos)
}

func (r *recordingRenderer) ShowNotice(n model.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "notice")
	r.notices = append(r.notices, n)
}

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var errNetwork = errors.New("dial tcp: connection refused")
