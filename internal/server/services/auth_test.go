package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/graphauth/internal/common"
	"github.com/dmitrijs2005/graphauth/internal/credential"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	origID, origNow := newID, now
	t.Cleanup(func() { newID, now = origID, origNow })
	newID = func() string { return "fixed-id" }
	now = func() time.Time { return time.Date(2026, 10, 19, 14, 0, 0, 0, time.FixedZone("EEST", 3*3600)) }

	s := newTestService(t)
	rec, err := s.Register(context.Background(), "  Alice ", storedClicks())
	require.NoError(t, err)

	assert.Equal(t, "fixed-id", rec.ID)
	assert.Equal(t, "Alice", rec.Username)
	assert.Equal(t, credential.MethodClickPoints, rec.Method())
	assert.Equal(t, time.Date(2026, 10, 19, 11, 0, 0, 0, time.UTC), rec.CreatedAt)

	got, err := s.users.GetUserByLogin(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", got.ID)
}

func TestRegister_Validation(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		cred     credential.Credential
		wantErr  error
	}{
		{"empty username", "  ", storedClicks(), common.ErrUsernameRequired},
		{"short username", "al", storedClicks(), common.ErrUsernameTooShort},
		{"four clicks", "alice", credential.ClickCredential{Points: storedClicks().Points[:4]}, common.ErrIncompleteAttempt},
		{"three images", "alice", credential.SequenceCredential{Images: credential.ImageSelection{"img-1", "img-2", "img-3"}}, common.ErrIncompleteAttempt},
		{"unknown image", "alice", credential.SequenceCredential{Images: credential.ImageSelection{"img-1", "img-2", "img-3", "img-13"}}, common.ErrInvalidCredential},
		{"no credential", "alice", nil, common.ErrInvalidCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(ctx, tt.username, tt.cred)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}

	exists, err := s.users.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRegister_DuplicateAnyCase(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	first, err := s.Register(ctx, "Alice", storedClicks())
	require.NoError(t, err)

	_, err = s.Register(ctx, "alice", storedImages())
	assert.ErrorIs(t, err, common.ErrUsernameTaken)
	assert.Equal(t, "Username already exists", common.UserMessage(err))

	got, err := s.users.GetUserByLogin(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, credential.MethodClickPoints, got.Method())
}

func TestRegister_ConcurrentSameName(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	var ok, taken atomic.Int32
	var wg sync.WaitGroup
	for _, name := range []string{"Erin", "erin", "ERIN", "eRiN", "erin ", " Erin"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_, err := s.Register(ctx, name, storedImages())
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, common.ErrUsernameTaken):
				taken.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(name)
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(5), taken.Load())
}

func TestRegister_StorageFaultIsSanitized(t *testing.T) {
	log := &recordingLogger{}
	s := NewAuthService(&fakeRepoManager{u: &fakeUsersRepo{createErr: errors.New("db error: disk full")}}, testConfig(), log)

	_, err := s.Register(context.Background(), "alice", storedClicks())
	assert.ErrorIs(t, err, common.ErrStorage)
	assert.NotContains(t, err.Error(), "disk full")
	assert.Equal(t, "Failed to register. Please try again.", common.UserMessage(err))
	assert.Contains(t, log.levels(), "ERROR: registration failed")
}

func TestCheckUsername(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	assert.NoError(t, s.CheckUsername(ctx, "frank"))
	assert.ErrorIs(t, s.CheckUsername(ctx, "fr"), common.ErrUsernameTooShort)

	_, err := s.Register(ctx, "Frank", storedClicks())
	require.NoError(t, err)
	assert.ErrorIs(t, s.CheckUsername(ctx, "FRANK"), common.ErrUsernameTaken)

	broken := NewAuthService(&fakeRepoManager{u: &fakeUsersRepo{existsErr: errors.New("boom")}}, testConfig(), &recordingLogger{})
	assert.ErrorIs(t, broken.CheckUsername(ctx, "frank"), common.ErrStorage)
}

func TestBeginLogin(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.BeginLogin(ctx, "")
	assert.ErrorIs(t, err, common.ErrUsernameRequired)

	_, err = s.BeginLogin(ctx, "ghost")
	assert.ErrorIs(t, err, common.ErrUserNotFound)
	assert.Equal(t, "Username not found", common.UserMessage(err))

	_, err = s.Register(ctx, "Grace", storedImages())
	require.NoError(t, err)

	l, err := s.BeginLogin(ctx, "grace")
	require.NoError(t, err)
	assert.Equal(t, "Grace", l.Username())
	assert.Equal(t, credential.MethodImageSequence, l.Method())
	assert.Equal(t, 3, l.Remaining())
}

func TestBeginLogin_Errors(t *testing.T) {
	ctx := context.Background()

	log := &recordingLogger{}
	s := NewAuthService(&fakeRepoManager{u: &fakeUsersRepo{getErr: errors.New("db error: timeout")}}, testConfig(), log)
	_, err := s.BeginLogin(ctx, "alice")
	assert.ErrorIs(t, err, common.ErrStorage)
	assert.Contains(t, log.levels(), "ERROR: user lookup failed")

	log = &recordingLogger{}
	s = NewAuthService(&fakeRepoManager{u: &fakeUsersRepo{getErr: common.ErrInvalidUserData}}, testConfig(), log)
	_, err = s.BeginLogin(ctx, "alice")
	assert.ErrorIs(t, err, common.ErrInvalidUserData)
	for _, entry := range log.levels() {
		assert.NotContains(t, entry, "ERROR")
	}
}
