package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pipelineai/auth-gateway/internal/errors"
	"github.com/pipelineai/auth-gateway/users"
)

// Store is the single authoritative holder of the session. All mutation
// funnels through its named operations, which replace the whole triple
// atomically and persist it before returning. Readers never observe a
// session that is authenticated without both an identity and a credential.
type Store struct {
	mu      sync.Mutex
	current Session

	storage       Storage
	authenticator Authenticator
	minPassword   int
	signingSecret []byte
	nowTime       func() time.Time

	// pendingCode is the authorization code of the exchange in flight, if
	// any. A completed exchange whose code is no longer pending is stale
	// and must not overwrite a newer session.
	pendingCode string
}

// StoreOption modifies the Store instance.
type StoreOption func(*Store)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

// WithMinPasswordLength overrides the local credential acceptance policy.
func WithMinPasswordLength(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.minPassword = n
		}
	}
}

// NewStore creates the session store and rehydrates it from storage. A
// missing, unreadable, or corrupt record starts the store logged out;
// rehydration never fails over to a logged-in state and never errors.
func NewStore(storage Storage, authenticator Authenticator, signingSecret string, options ...StoreOption) (*Store, error) {
	if storage == nil {
		return nil, errors.Wrapf(errors.ErrInternal, "[NewStore] storage is required")
	}
	if authenticator == nil {
		return nil, errors.Wrapf(errors.ErrInternal, "[NewStore] authenticator is required")
	}

	s := &Store{
		storage:       storage,
		authenticator: authenticator,
		minPassword:   6,
		signingSecret: []byte(signingSecret),
		nowTime:       time.Now,
	}
	for _, opt := range options {
		opt(s)
	}

	s.rehydrate()
	return s, nil
}

func (s *Store) rehydrate() {
	record, ok, err := s.storage.Load()
	if err != nil {
		log.Warn().Err(err).Msg("session record unreadable, starting logged out")
		return
	}
	if !ok {
		return
	}

	// Recompute the flag from what is actually present rather than trusting
	// the persisted value.
	if record.hasIdentity() && record.Token != "" {
		record.IsAuthenticated = true
		s.current = record
		return
	}
	s.current = Session{}
}

// Current returns the session as of the last completed mutation.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Login authenticates a local email/password credential. The round trip
// happens outside the lock; whichever mutation completes last wins and is
// applied wholesale. On failure the session is left unchanged.
func (s *Store) Login(ctx context.Context, email, password string) (Session, error) {
	if err := users.ValidatePassword(password, s.minPassword); err != nil {
		return s.Current(), errors.Wrapf(errors.ErrInvalidCredentials, "[Login] %v", err)
	}

	identity, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return s.Current(), errors.Wrapf(err, "[Login] authenticate")
	}

	token, err := mintCredential(s.signingSecret, identity, s.nowTime())
	if err != nil {
		return s.Current(), errors.Wrapf(err, "[Login] mint credential")
	}

	return s.install(identity, token), nil
}

// Signup registers a new local account and logs it in. The confirm check
// runs before any network interaction.
func (s *Store) Signup(ctx context.Context, name, email, password, confirm string) (Session, error) {
	if password != confirm {
		return s.Current(), errors.ErrPasswordMismatch
	}
	if err := users.ValidatePassword(password, s.minPassword); err != nil {
		return s.Current(), errors.Wrapf(errors.ErrWeakPassword, "[Signup] %v", err)
	}

	identity, err := s.authenticator.Register(ctx, name, email, password)
	if err != nil {
		return s.Current(), errors.Wrapf(err, "[Signup] register")
	}

	token, err := mintCredential(s.signingSecret, identity, s.nowTime())
	if err != nil {
		return s.Current(), errors.Wrapf(err, "[Signup] mint credential")
	}

	return s.install(identity, token), nil
}

// SetExternalAuth installs an externally obtained identity/credential pair,
// overwriting any existing session. It is idempotent.
func (s *Store) SetExternalAuth(user Identity, token string) Session {
	return s.install(user, token)
}

// BeginExchange records code as the exchange currently in flight,
// superseding any earlier one.
func (s *Store) BeginExchange(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingCode = code
}

// CompleteExchange installs the result of the exchange started for code.
// If a later mutation or a newer exchange superseded it, the result is
// discarded and the session is left unchanged.
func (s *Store) CompleteExchange(code string, user Identity, token string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if code == "" || code != s.pendingCode {
		return s.current, errors.ErrStaleExchange
	}
	return s.installLocked(user, token), nil
}

// Logout clears the session. It always succeeds.
func (s *Store) Logout() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pendingCode = ""
	s.current = Session{}
	s.persistLocked()
	return s.current
}

func (s *Store) install(user Identity, token string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.installLocked(user, token)
}

func (s *Store) installLocked(user Identity, token string) Session {
	s.pendingCode = ""

	sess := Session{Token: token}
	if user.ID != "" {
		u := user
		sess.User = &u
	}
	sess.IsAuthenticated = sess.hasIdentity() && sess.Token != ""

	s.current = sess
	s.persistLocked()
	return s.current
}

func (s *Store) persistLocked() {
	if err := s.storage.Save(s.current); err != nil {
		// A failed durable write must not log the user out of the live
		// session; the next successful mutation will repair the record.
		log.Error().Err(err).Msg("failed to persist session record")
	}
}
