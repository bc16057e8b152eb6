package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/helmcode/seo-ai/pkg/model"
)

// State is the screen a dashboard session is on.
type State string

const (
	StateIdle      State = "IDLE"
	StateAnalyzing State = "ANALYZING"
	StateDashboard State = "DASHBOARD"
)

type Plan string

const (
	PlanFree    Plan = "FREE"
	PlanPremium Plan = "PREMIUM"
)

const DefaultCapacity = 1024

var ErrNotFound = errors.New("session not found")

type Analyzer interface {
	Analyze(ctx context.Context, url string) (*model.AnalysisReport, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, url string, issues []string) []model.Recommendation
}

// Snapshot is a point-in-time copy of a session. Report and Recommendations
// are shared and must not be mutated.
type Snapshot struct {
	ID                     string                 `json:"id"`
	State                  State                  `json:"state"`
	Plan                   Plan                   `json:"plan"`
	URL                    string                 `json:"url,omitempty"`
	Report                 *model.AnalysisReport  `json:"report"`
	Recommendations        []model.Recommendation `json:"recommendations"`
	RecommendationsLoading bool                   `json:"recommendationsLoading"`
	Error                  string                 `json:"error,omitempty"`
	UpdatedAt              time.Time              `json:"updatedAt"`
}

type session struct {
	snap Snapshot

	// gen increments on every submit and reset; late results from an older
	// generation are dropped.
	gen     uint64
	ctx     context.Context
	cancel  context.CancelFunc
	fetched bool

	watchers map[chan Snapshot]struct{}
}

// Manager owns all sessions. A new submit cancels the session's in-flight
// analysis.
type Manager struct {
	mu       sync.Mutex
	sessions *lru.Cache[string, *session]

	analyzer        Analyzer
	fetcher         Fetcher
	analysisTimeout time.Duration
	now             func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type Option func(*Manager)

func WithAnalysisTimeout(d time.Duration) Option {
	return func(m *Manager) { m.analysisTimeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func NewManager(a Analyzer, f Fetcher, capacity int, opts ...Option) (*Manager, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	m := &Manager{analyzer: a, fetcher: f, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())

	cache, err := lru.NewWithEvict[string, *session](capacity, func(_ string, s *session) {
		s.stop()
	})
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}
	m.sessions = cache
	return m, nil
}

func (m *Manager) Create() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &session{
		snap: Snapshot{
			ID:              uuid.NewString(),
			State:           StateIdle,
			Plan:            PlanFree,
			Recommendations: []model.Recommendation{},
			UpdatedAt:       m.now(),
		},
		watchers: make(map[chan Snapshot]struct{}),
	}
	m.sessions.Add(s.snap.ID, s)
	return s.snap
}

func (m *Manager) Get(id string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions.Get(id)
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return s.snap, nil
}

// Submit starts analyzing url, replacing whatever the session was doing.
func (m *Manager) Submit(id, url string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions.Get(id)
	if !ok {
		return Snapshot{}, ErrNotFound
	}

	gen := s.restart(m.ctx)
	s.snap.State = StateAnalyzing
	s.snap.URL = url
	m.touch(s)

	m.wg.Add(1)
	go m.runAnalysis(s.ctx, s, gen, url)
	return s.snap, nil
}

// Reset returns the session to the idle screen. The plan is kept.
func (m *Manager) Reset(id string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions.Get(id)
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	s.restart(nil)
	s.snap.State = StateIdle
	s.snap.URL = ""
	m.touch(s)
	return s.snap, nil
}

// Upgrade switches the session to the premium plan. Payment is simulated.
func (m *Manager) Upgrade(id string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions.Get(id)
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	if s.snap.Plan != PlanPremium {
		s.snap.Plan = PlanPremium
		m.maybeFetch(s)
		m.touch(s)
	}
	return s.snap, nil
}

// Watch streams snapshots of the session, starting with the current one.
// Slow readers only ever see the latest snapshot. The channel is closed when
// stop is called or the session goes away.
func (m *Manager) Watch(id string) (<-chan Snapshot, func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions.Get(id)
	if !ok {
		return nil, nil, ErrNotFound
	}
	ch := make(chan Snapshot, 1)
	ch <- s.snap
	s.watchers[ch] = struct{}{}

	var once sync.Once
	stop := func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if _, ok := s.watchers[ch]; ok {
				delete(s.watchers, ch)
				close(ch)
			}
		})
	}
	return ch, stop, nil
}

// Len reports how many sessions are held.
func (m *Manager) Len() int {
	return m.sessions.Len()
}

// Close cancels all in-flight work and waits for it to finish.
func (m *Manager) Close() {
	m.mu.Lock()
	m.cancel()
	m.sessions.Purge()
	m.mu.Unlock()

	m.wg.Wait()
}

func (m *Manager) runAnalysis(ctx context.Context, s *session, gen uint64, url string) {
	defer m.wg.Done()

	if m.analysisTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.analysisTimeout)
		defer cancel()
	}
	report, err := m.analyzer.Analyze(ctx, url)

	m.mu.Lock()
	defer m.mu.Unlock()
	if s.gen != gen {
		return
	}
	if err != nil {
		s.snap.State = StateIdle
		s.snap.Error = err.Error()
		m.touch(s)
		return
	}
	s.snap.State = StateDashboard
	s.snap.Report = report
	m.maybeFetch(s)
	m.touch(s)
}

// maybeFetch starts the recommendation fetch once per analysis for premium
// sessions on the dashboard. Callers hold m.mu.
func (m *Manager) maybeFetch(s *session) {
	if s.snap.State != StateDashboard || s.snap.Plan != PlanPremium || s.fetched || s.snap.Report == nil {
		return
	}
	s.fetched = true
	s.snap.RecommendationsLoading = true

	gen, ctx := s.gen, s.ctx
	url, issues := s.snap.URL, s.snap.Report.IssueMessages()
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		recs := m.fetcher.Fetch(ctx, url, issues)

		m.mu.Lock()
		defer m.mu.Unlock()
		if s.gen != gen {
			return
		}
		s.snap.Recommendations = recs
		s.snap.RecommendationsLoading = false
		m.touch(s)
	}()
}

// touch stamps and publishes the snapshot. Callers hold m.mu.
func (m *Manager) touch(s *session) {
	s.snap.UpdatedAt = m.now()
	for ch := range s.watchers {
		select {
		case ch <- s.snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s.snap:
			default:
			}
		}
	}
}

// restart cancels in-flight work and clears results. With a nil parent no new
// work context is created.
func (s *session) restart(parent context.Context) uint64 {
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	s.ctx, s.cancel = nil, nil
	if parent != nil {
		s.ctx, s.cancel = context.WithCancel(parent)
	}
	s.fetched = false
	s.snap.Report = nil
	s.snap.Recommendations = []model.Recommendation{}
	s.snap.RecommendationsLoading = false
	s.snap.Error = ""
	return s.gen
}

// stop runs on eviction, with the manager lock held.
func (s *session) stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	for ch := range s.watchers {
		delete(s.watchers, ch)
		close(ch)
	}
}
