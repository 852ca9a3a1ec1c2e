// Package services contains server-side business logic. AuthService is the
// registration and login flow controller of the graphical password engine:
// it validates input, talks to the credential store, runs the matchers and
// applies the attempt policy.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/graphauth/internal/attempt"
	"github.com/dmitrijs2005/graphauth/internal/common"
	"github.com/dmitrijs2005/graphauth/internal/credential"
	"github.com/dmitrijs2005/graphauth/internal/imagepool"
	"github.com/dmitrijs2005/graphauth/internal/logging"
	"github.com/dmitrijs2005/graphauth/internal/server/auth"
	"github.com/dmitrijs2005/graphauth/internal/server/config"
	"github.com/dmitrijs2005/graphauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/graphauth/internal/server/repositories/users"
	"github.com/dmitrijs2005/graphauth/internal/shuffle"
	"github.com/google/uuid"
)

// seams for tests
var (
	newID         = uuid.NewString
	now           = time.Now
	generateToken = auth.GenerateToken

	afterFunc = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
)

// AuthService registers users and starts login flows.
type AuthService struct {
	users         users.Repository
	logger        logging.Logger
	pool          imagepool.Pool
	shuffler      *shuffle.Shuffler
	jwtSecret     []byte
	tokenValidity time.Duration
	lockoutDelay  time.Duration
}

// NewAuthService constructs an AuthService over the repositories of m.
func NewAuthService(m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *AuthService {
	return &AuthService{
		users:         m.Users(),
		logger:        logger,
		pool:          imagepool.Default(),
		shuffler:      shuffle.New(),
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		lockoutDelay:  cfg.LockoutDelay,
	}
}

// CheckUsername is the first registration step: it validates username and
// reports common.ErrUsernameTaken when it is already registered.
func (s *AuthService) CheckUsername(ctx context.Context, username string) error {
	if err := credential.ValidateNewUsername(username); err != nil {
		return err
	}

	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		return s.storageFault(ctx, "username check failed", err, "username", username)
	}
	if exists {
		return common.ErrUsernameTaken
	}
	return nil
}

// Register validates and stores a new user. The availability check and the
// insert are one atomic repository call, so of two concurrent registrations
// of the same name exactly one succeeds.
func (s *AuthService) Register(ctx context.Context, username string, cred credential.Credential) (*credential.UserRecord, error) {
	if err := credential.ValidateNewUsername(username); err != nil {
		return nil, err
	}
	if err := credential.Validate(cred, s.pool.Contains); err != nil {
		return nil, err
	}

	record := &credential.UserRecord{
		ID:         newID(),
		Username:   strings.TrimSpace(username),
		Credential: cred,
		CreatedAt:  now().UTC(),
	}

	created, err := s.users.Create(ctx, record)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.logger.Info(ctx, "registration rejected: username taken", "username", record.Username)
			return nil, common.ErrUsernameTaken
		}
		return nil, s.storageFault(ctx, "registration failed", err, "username", record.Username)
	}

	s.logger.Info(ctx, "user registered", "username", created.Username, "method", created.Method())
	return created, nil
}

// BeginLogin looks up username and opens a login flow for it. An unknown
// user yields common.ErrUserNotFound and costs no attempt.
func (s *AuthService) BeginLogin(ctx context.Context, username string) (*Login, error) {
	if err := credential.ValidateUsername(username); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByLogin(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			s.logger.Info(ctx, "login rejected: unknown user", "username", username)
			return nil, common.ErrUserNotFound
		case errors.Is(err, common.ErrInvalidUserData):
			s.logger.Warn(ctx, "login rejected: stored record is malformed", "username", username, "error", err)
			return nil, common.ErrInvalidUserData
		default:
			return nil, s.storageFault(ctx, "user lookup failed", err, "username", username)
		}
	}

	s.logger.Debug(ctx, "login started", "username", user.Username, "method", user.Method())
	return &Login{svc: s, user: user, session: attempt.NewSession()}, nil
}

// storageFault logs the raw cause and returns the sanitized error.
func (s *AuthService) storageFault(ctx context.Context, msg string, err error, args ...any) error {
	s.logger.Error(ctx, msg, append(args, "error", err)...)
	return common.ErrStorage
}
