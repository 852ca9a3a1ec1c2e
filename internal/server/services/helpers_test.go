package services

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/graphauth/internal/credential"
	"github.com/dmitrijs2005/graphauth/internal/logging"
	"github.com/dmitrijs2005/graphauth/internal/server/config"
	"github.com/dmitrijs2005/graphauth/internal/server/repositories/blobs"
	"github.com/dmitrijs2005/graphauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/graphauth/internal/server/repositories/users"
	"github.com/dmitrijs2005/graphauth/internal/shuffle"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
		LockoutDelay:          3 * time.Second,
	}
}

func newTestService(t *testing.T) *AuthService {
	t.Helper()
	m := repomanager.NewBlobRepositoryManager(blobs.NewMemoryStore(), nil)
	s := NewAuthService(m, testConfig(), logging.NopLogger{})
	s.shuffler = shuffle.NewWithSource(rand.NewPCG(1, 2))
	return s
}

// fakeRepoManager vends a single repository.
type fakeRepoManager struct {
	u users.Repository
}

func (m *fakeRepoManager) Users() users.Repository { return m.u }
func (m *fakeRepoManager) Close() error            { return nil }

type fakeUsersRepo struct {
	getOut    *credential.UserRecord
	getErr    error
	existsOut bool
	existsErr error
	createErr error
}

func (f *fakeUsersRepo) GetUserByLogin(context.Context, string) (*credential.UserRecord, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) Exists(context.Context, string) (bool, error) {
	return f.existsOut, f.existsErr
}

func (f *fakeUsersRepo) Create(_ context.Context, u *credential.UserRecord) (*credential.UserRecord, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return u, nil
}

// recordingLogger keeps the level and message of every entry.
type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordingLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, level+": "+msg)
}

func (l *recordingLogger) Debug(_ context.Context, msg string, _ ...any) { l.add("DEBUG", msg) }
func (l *recordingLogger) Info(_ context.Context, msg string, _ ...any)  { l.add("INFO", msg) }
func (l *recordingLogger) Warn(_ context.Context, msg string, _ ...any)  { l.add("WARN", msg) }
func (l *recordingLogger) Error(_ context.Context, msg string, _ ...any) { l.add("ERROR", msg) }
func (l *recordingLogger) With(...any) logging.Logger                    { return l }

func (l *recordingLogger) levels() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

func storedClicks() credential.ClickCredential {
	return credential.ClickCredential{Points: credential.ClickSequence{
		{X: 10, Y: 10}, {X: 20, Y: 20}, {X: 30, Y: 30}, {X: 40, Y: 40}, {X: 50, Y: 50},
	}}
}

func closeClicks() credential.ClickCredential {
	return credential.ClickCredential{Points: credential.ClickSequence{
		{X: 12, Y: 9}, {X: 21, Y: 22}, {X: 29, Y: 31}, {X: 41, Y: 39}, {X: 52, Y: 51},
	}}
}

func wrongClicks() credential.ClickCredential {
	return credential.ClickCredential{Points: credential.ClickSequence{
		{X: 12, Y: 9}, {X: 21, Y: 22}, {X: 30, Y: 40}, {X: 41, Y: 39}, {X: 52, Y: 51},
	}}
}

func storedImages() credential.SequenceCredential {
	return credential.SequenceCredential{Images: credential.ImageSelection{"img-3", "img-7", "img-1", "img-9"}}
}

// stubAfterFunc captures scheduled callbacks instead of starting timers.
type stubAfterFunc struct {
	mu     sync.Mutex
	delays []time.Duration
	funcs  []func()
}

func installAfterFunc(t *testing.T) *stubAfterFunc {
	t.Helper()
	stub := &stubAfterFunc{}
	orig := afterFunc
	t.Cleanup(func() { afterFunc = orig })
	afterFunc = func(d time.Duration, f func()) {
		stub.mu.Lock()
		defer stub.mu.Unlock()
		stub.delays = append(stub.delays, d)
		stub.funcs = append(stub.funcs, f)
	}
	return stub
}

func (s *stubAfterFunc) fire() {
	s.mu.Lock()
	funcs := s.funcs
	s.funcs = nil
	s.mu.Unlock()
	for _, f := range funcs {
		f()
	}
}
