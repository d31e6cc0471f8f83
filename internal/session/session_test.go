package session

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/xela07ax/inventory-console/internal/domain"
	"github.com/xela07ax/inventory-console/internal/gateway"
	"github.com/xela07ax/inventory-console/internal/infra"
	"github.com/xela07ax/inventory-console/internal/inventory"
	"github.com/xela07ax/inventory-console/internal/tokenstore"
)

type stubAuthenticator struct {
	token string
	err   error
	calls int
}

func (a *stubAuthenticator) Login(context.Context, domain.LoginRequest) (string, error) {
	a.calls++
	return a.token, a.err
}

type failingStore struct {
	tokenstore.Memory
	getErr error
	setErr error
}

func (f *failingStore) Get(ctx context.Context) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.Memory.Get(ctx)
}

func (f *failingStore) Set(ctx context.Context, token string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Memory.Set(ctx, token)
}

// orderedStore фиксирует, в каком состоянии была сессия в момент записи токена
type orderedStore struct {
	tokenstore.Memory
	session    *Session
	stateOnSet State
}

func (o *orderedStore) Set(ctx context.Context, token string) error {
	o.stateOnSet = o.session.Snapshot().State
	return o.Memory.Set(ctx, token)
}

// slowStore читает значение и ждет, пока тест не отпустит чтение
type slowStore struct {
	tokenstore.Memory
	read    chan struct{}
	release chan struct{}
}

func (s *slowStore) Get(ctx context.Context) (string, bool, error) {
	token, ok, err := s.Memory.Get(ctx)
	close(s.read)
	<-s.release
	return token, ok, err
}

func unsignedToken(payload string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(`{"alg":"none"}`)) + "." + enc.EncodeToString([]byte(payload)) + ".sig"
}

type recorder struct {
	mu      sync.Mutex
	changes []Change
}

func (r *recorder) add(c Change) {
	r.mu.Lock()
	r.changes = append(r.changes, c)
	r.mu.Unlock()
}

func (r *recorder) reasons() []Reason {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Reason, 0, len(r.changes))
	for _, c := range r.changes {
		out = append(out, c.Reason)
	}
	return out
}

var _ = Describe("Session", func() {
	var (
		ctx    context.Context
		tokens *tokenstore.Memory
		s      *Session
		rec    *recorder
	)

	BeforeEach(func() {
		ctx = context.Background()
		tokens = tokenstore.NewMemory()
		s = New(tokens, zap.NewNop())
		rec = &recorder{}
		DeferCleanup(s.Subscribe(rec.add))
	})

	Describe("initialization", func() {
		It("starts in Initializing and refuses to decide", func() {
			snap := s.Snapshot()
			Expect(snap.State).To(Equal(StateInitializing))
			Expect(snap.Loading()).To(BeTrue())

			_, resolved := s.AccessToken()
			Expect(resolved).To(BeFalse())
		})

		It("becomes Unauthenticated when the store is empty", func() {
			Expect(s.Init(ctx)).To(Succeed())
			Expect(s.Snapshot().State).To(Equal(StateUnauthenticated))

			token, resolved := s.AccessToken()
			Expect(resolved).To(BeTrue())
			Expect(token).To(BeEmpty())
			Expect(rec.reasons()).To(Equal([]Reason{ReasonRestored}))
		})

		It("restores a persisted token", func() {
			Expect(tokens.Set(ctx, "abc.def.ghi")).To(Succeed())
			Expect(s.Init(ctx)).To(Succeed())

			snap := s.Snapshot()
			Expect(snap.State).To(Equal(StateAuthenticated))
			Expect(snap.Token).To(Equal("abc.def.ghi"))
		})

		It("treats an unreadable store as signed out", func() {
			store := &failingStore{getErr: errors.New("disk on fire")}
			s = New(store, zap.NewNop())

			Expect(s.Init(ctx)).To(MatchError("disk on fire"))
			Expect(s.Snapshot().State).To(Equal(StateUnauthenticated))
		})
	})

	Describe("login during a slow init", func() {
		It("keeps the login instead of the value read before it", func() {
			store := &slowStore{read: make(chan struct{}), release: make(chan struct{})}
			s = New(store, zap.NewNop())

			initDone := make(chan error, 1)
			go func() { initDone <- s.Init(ctx) }()
			Eventually(store.read).Should(BeClosed())

			Expect(s.Login(ctx, &stubAuthenticator{token: "abc.def.ghi"}, domain.LoginRequest{})).To(Succeed())
			close(store.release)
			Eventually(initDone).Should(Receive(BeNil()))

			stored, ok, _ := store.Memory.Get(ctx)
			Expect(ok).To(BeTrue())
			Expect(stored).To(Equal("abc.def.ghi"))
			Expect(s.Snapshot().State).To(Equal(StateAuthenticated))
			Expect(s.Snapshot().Token).To(Equal("abc.def.ghi"))
		})
	})

	Describe("login", func() {
		BeforeEach(func() {
			Expect(s.Init(ctx)).To(Succeed())
		})

		It("persists the token and becomes Authenticated", func() {
			authn := &stubAuthenticator{token: "abc.def.ghi"}
			Expect(s.Login(ctx, authn, domain.LoginRequest{Email: "a@b.com", Password: "x"})).To(Succeed())

			stored, ok, _ := tokens.Get(ctx)
			Expect(ok).To(BeTrue())
			Expect(stored).To(Equal("abc.def.ghi"))
			Expect(s.Snapshot().Authenticated()).To(BeTrue())
			Expect(rec.reasons()).To(Equal([]Reason{ReasonRestored, ReasonLogin}))
		})

		It("persists before the state changes", func() {
			store := &orderedStore{}
			s = New(store, zap.NewNop())
			store.session = s
			Expect(s.Init(ctx)).To(Succeed())

			Expect(s.Login(ctx, &stubAuthenticator{token: "t.o.k"}, domain.LoginRequest{})).To(Succeed())
			Expect(store.stateOnSet).To(Equal(StateUnauthenticated))
			Expect(s.Snapshot().State).To(Equal(StateAuthenticated))
		})

		It("keeps the state when the API rejects the credentials", func() {
			authn := &stubAuthenticator{err: errors.New("Invalid credentials")}
			Expect(s.Login(ctx, authn, domain.LoginRequest{})).To(MatchError("Invalid credentials"))
			Expect(s.Snapshot().State).To(Equal(StateUnauthenticated))
		})

		It("rejects an empty token", func() {
			Expect(s.Login(ctx, &stubAuthenticator{}, domain.LoginRequest{})).To(MatchError(ErrEmptyToken))
			Expect(s.Snapshot().State).To(Equal(StateUnauthenticated))
		})

		It("does not authenticate when the token cannot be stored", func() {
			store := &failingStore{setErr: errors.New("read-only")}
			s = New(store, zap.NewNop())
			Expect(s.Init(ctx)).To(Succeed())

			Expect(s.Login(ctx, &stubAuthenticator{token: "t.o.k"}, domain.LoginRequest{})).To(MatchError("read-only"))
			Expect(s.Snapshot().State).To(Equal(StateUnauthenticated))
		})
	})

	Describe("logout and expiry", func() {
		BeforeEach(func() {
			Expect(tokens.Set(ctx, "abc.def.ghi")).To(Succeed())
			Expect(s.Init(ctx)).To(Succeed())
		})

		It("clears the store on logout", func() {
			Expect(s.Logout(ctx)).To(Succeed())

			_, ok, _ := tokens.Get(ctx)
			Expect(ok).To(BeFalse())
			Expect(s.Snapshot().State).To(Equal(StateUnauthenticated))
			Expect(rec.reasons()).To(ContainElement(ReasonLogout))
		})

		It("goes Unauthenticated on redirect and notifies once", func() {
			s.RedirectToLogin(ctx)
			s.RedirectToLogin(ctx)

			Expect(s.Snapshot().State).To(Equal(StateUnauthenticated))
			Expect(rec.reasons()).To(Equal([]Reason{ReasonRestored, ReasonExpired}))
		})

		It("stops notifying after unsubscribe", func() {
			other := &recorder{}
			unsubscribe := s.Subscribe(other.add)
			unsubscribe()

			Expect(s.Logout(ctx)).To(Succeed())
			Expect(other.reasons()).To(BeEmpty())
		})
	})

	Describe("roles", func() {
		It("is not admin without a token", func() {
			Expect(s.Init(ctx)).To(Succeed())
			Expect(s.IsAdmin()).To(BeFalse())
			Expect(s.View().IsAdmin).To(BeFalse())
		})

		It("reads the admin role from the payload", func() {
			Expect(tokens.Set(ctx, unsignedToken(`{"role":"Admin","sub":"u-1"}`))).To(Succeed())
			Expect(s.Init(ctx)).To(Succeed())

			Expect(s.IsAdmin()).To(BeTrue())
			view := s.View()
			Expect(view.Authenticated).To(BeTrue())
			Expect(view.Subject).To(Equal("u-1"))
			Expect(view.Roles).To(Equal([]string{"Admin"}))
		})

		It("recomputes roles when the token changes", func() {
			Expect(s.Init(ctx)).To(Succeed())
			Expect(s.Login(ctx, &stubAuthenticator{token: unsignedToken(`{"roles":["viewer"]}`)}, domain.LoginRequest{})).To(Succeed())
			Expect(s.IsAdmin()).To(BeFalse())

			Expect(s.Login(ctx, &stubAuthenticator{token: unsignedToken(`{"roles":["viewer","ADMIN"]}`)}, domain.LoginRequest{})).To(Succeed())
			Expect(s.IsAdmin()).To(BeTrue())
		})

		It("exposes subject and expiry of a signed token", func() {
			exp := time.Now().Add(time.Hour).Truncate(time.Second)
			signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
				"email": "ops@example.com",
				"exp":   exp.Unix(),
				"role":  "viewer",
			}).SignedString([]byte("test-secret"))
			Expect(err).NotTo(HaveOccurred())

			Expect(tokens.Set(ctx, signed)).To(Succeed())
			Expect(s.Init(ctx)).To(Succeed())

			view := s.View()
			Expect(view.Subject).To(Equal("ops@example.com"))
			Expect(view.ExpiresAt).NotTo(BeNil())
			Expect(view.ExpiresAt.Equal(exp)).To(BeTrue())
			Expect(view.IsAdmin).To(BeFalse())
		})
	})

	Describe("wired to the gateway", func() {
		var (
			status int
			srv    *httptest.Server
			api    *inventory.API
		)

		BeforeEach(func() {
			status = http.StatusOK
			srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				if r.URL.Path == "/api/auth/login" {
					_, _ = w.Write([]byte(`{"accessToken":"abc.def.ghi"}`))
					return
				}
				w.WriteHeader(status)
				_, _ = w.Write([]byte(`{"error":{"message":"Token expired"}}`))
			}))
			DeferCleanup(srv.Close)

			gw := gateway.New(infra.APIConfig{BaseURL: srv.URL, Timeout: time.Second}, infra.GatewayConfig{},
				tokens, zap.NewNop(), gateway.WithRedirector(s))
			api = inventory.New(gw, "")
			Expect(s.Init(ctx)).To(Succeed())
		})

		It("stores the accessToken from the login response", func() {
			Expect(s.Login(ctx, api, domain.LoginRequest{Email: "a@b.com", Password: "x"})).To(Succeed())

			stored, _, _ := tokens.Get(ctx)
			Expect(stored).To(Equal("abc.def.ghi"))
			Expect(s.Snapshot().Token).To(Equal("abc.def.ghi"))
		})

		It("signs out when the API answers 401", func() {
			Expect(s.Login(ctx, api, domain.LoginRequest{Email: "a@b.com", Password: "x"})).To(Succeed())

			status = http.StatusUnauthorized
			_, err := api.Stock(ctx)
			Expect(gateway.IsUnauthorized(err)).To(BeTrue())

			_, ok, _ := tokens.Get(ctx)
			Expect(ok).To(BeFalse())
			Expect(s.Snapshot().State).To(Equal(StateUnauthenticated))
			Expect(rec.reasons()).To(Equal([]Reason{ReasonRestored, ReasonLogin, ReasonExpired}))
		})
	})
})
