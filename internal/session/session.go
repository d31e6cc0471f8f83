// Package session — контекст сессии консоли: токен, состояние и переходы между состояниями.
//
// Initializing -> Authenticated | Unauthenticated после чтения хранилища;
// Unauthenticated -> Authenticated по успешному логину;
// Authenticated -> Unauthenticated по выходу или по 401 от API.
package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/xela07ax/inventory-console/internal/domain"
	"github.com/xela07ax/inventory-console/internal/infra/auth"
	"github.com/xela07ax/inventory-console/internal/tokenstore"
)

type State string

const (
	StateInitializing    State = "initializing"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

// Reason — почему сменилось состояние.
type Reason string

const (
	ReasonRestored Reason = "restored" // прочитано из хранилища при старте
	ReasonLogin    Reason = "login"
	ReasonLogout   Reason = "logout"
	ReasonExpired  Reason = "expired" // API ответил 401
)

var ErrEmptyToken = errors.New("session: authenticator returned empty token")

// Authenticator обменивает учетные данные на токен.
type Authenticator interface {
	Login(ctx context.Context, req domain.LoginRequest) (string, error)
}

// Snapshot — неизменяемый срез состояния сессии.
type Snapshot struct {
	State State
	Token string
}

func (s Snapshot) Authenticated() bool { return s.State == StateAuthenticated }

func (s Snapshot) Loading() bool { return s.State == StateInitializing }

// Change приходит подписчикам после каждого перехода.
type Change struct {
	Snapshot
	Reason Reason
}

type Session struct {
	mu    sync.RWMutex
	state State
	token string

	tokens   tokenstore.Store
	resolver auth.Resolver
	logger   *zap.Logger

	subMu  sync.Mutex
	subs   map[int]func(Change)
	nextID int

	// Логин и выход выполняются по одному
	actionMu sync.Mutex
}

func New(tokens tokenstore.Store, logger *zap.Logger) *Session {
	if tokens == nil {
		tokens = tokenstore.Noop{}
	}
	return &Session{
		state:    StateInitializing,
		tokens:   tokens,
		resolver: auth.NewResolver(),
		logger:   logger.Named("session"),
		subs:     make(map[int]func(Change)),
	}
}

// Init читает хранилище и выводит сессию из Initializing.
// Нечитаемое хранилище — это Unauthenticated и ошибка для лога, но не падение.
func (s *Session) Init(ctx context.Context) error {
	token, ok, err := s.tokens.Get(ctx)
	if err != nil {
		s.logger.Warn("token store unreadable, starting signed out", zap.Error(err))
		ok = false
	}
	if !ok {
		token = ""
	}

	// Логин, завершившийся во время чтения хранилища, важнее прочитанного значения
	if !s.transitionFrom(StateInitializing, token, ReasonRestored) {
		s.logger.Info("session decided during init, stored value ignored")
		return err
	}
	s.logger.Info("session initialized", zap.Bool("authenticated", token != ""))
	return err
}

// Login: токен сначала сохраняется, потом обновляется состояние.
// При ошибке состояние не меняется.
func (s *Session) Login(ctx context.Context, authn Authenticator, creds domain.LoginRequest) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	token, err := authn.Login(ctx, creds)
	if err != nil {
		return err
	}
	if token == "" {
		return ErrEmptyToken
	}
	if err := s.tokens.Set(ctx, token); err != nil {
		return err
	}

	s.transition(token, ReasonLogin)
	s.logger.Info("signed in", zap.Int("token_len", len(token)))
	return nil
}

func (s *Session) Logout(ctx context.Context) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	err := s.tokens.Clear(ctx)
	if err != nil {
		s.logger.Error("failed to clear token on logout", zap.Error(err))
	}
	// Выходим в любом случае: оператор просил выйти
	s.transition("", ReasonLogout)
	return err
}

// RedirectToLogin вызывается шлюзом после 401, когда хранилище уже очищено.
func (s *Session) RedirectToLogin(_ context.Context) {
	s.mu.RLock()
	signedIn := s.token != ""
	s.mu.RUnlock()

	if signedIn {
		s.logger.Warn("session expired, redirecting to login")
	}
	s.transition("", ReasonExpired)
}

// AccessToken отдает токен; resolved == false, пока хранилище не прочитано.
func (s *Session) AccessToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.state != StateInitializing
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{State: s.state, Token: s.token}
}

// IsAdmin пересчитывается из токена на каждый вызов.
func (s *Session) IsAdmin() bool {
	token, _ := s.AccessToken()
	claims, _ := auth.DecodeClaims(token)
	return s.resolver.IsAdmin(claims)
}

// View собирает состояние для UI.
func (s *Session) View() domain.SessionView {
	snap := s.Snapshot()
	view := domain.SessionView{
		State:         string(snap.State),
		Authenticated: snap.Authenticated(),
		Loading:       snap.Loading(),
	}

	claims, ok := auth.DecodeClaims(snap.Token)
	if !ok {
		return view
	}
	view.Roles = s.resolver.Roles(claims)
	view.IsAdmin = s.resolver.IsAdmin(claims)
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		view.Subject = sub
	} else if email, ok := claims["email"].(string); ok {
		view.Subject = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		view.ExpiresAt = &t
	}
	return view
}

// Subscribe регистрирует наблюдателя; возвращает функцию отписки.
// Наблюдатели вызываются синхронно, после того как новое состояние уже видно.
func (s *Session) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Session) transition(token string, reason Reason) {
	s.transitionFrom("", token, reason)
}

// transitionFrom меняет состояние, только если текущее равно from (пустое — любое).
func (s *Session) transitionFrom(from State, token string, reason Reason) bool {
	state := StateUnauthenticated
	if token != "" {
		state = StateAuthenticated
	}

	s.mu.Lock()
	prev := s.state
	if from != "" && prev != from {
		s.mu.Unlock()
		return false
	}
	s.state = state
	s.token = token
	s.mu.Unlock()

	// Повторный 401 из параллельных запросов не шумит
	if reason == ReasonExpired && prev == StateUnauthenticated {
		return true
	}

	change := Change{Snapshot: Snapshot{State: state, Token: token}, Reason: reason}

	s.subMu.Lock()
	subs := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(change)
	}
	return true
}
