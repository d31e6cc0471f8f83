package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/xela07ax/inventory-console/internal/activity"
	"github.com/xela07ax/inventory-console/internal/domain"
	"github.com/xela07ax/inventory-console/internal/session"
)

// AuthService связывает сессию, логин через API и журнал действий.
type AuthService struct {
	session *session.Session
	authn   session.Authenticator
	journal activity.Recorder
	logger  *zap.Logger
}

func NewAuthService(s *session.Session, authn session.Authenticator, journal activity.Recorder, logger *zap.Logger) *AuthService {
	svc := &AuthService{
		session: s,
		authn:   authn,
		journal: journal,
		logger:  logger.Named("auth-service"),
	}
	s.Subscribe(svc.onChange)
	return svc
}

func (a *AuthService) onChange(c session.Change) {
	if c.Reason == session.ReasonExpired {
		a.journal.Record(activity.Info("Session expired", "Sign in again to continue"))
	}
}

func (a *AuthService) Login(ctx context.Context, req domain.LoginRequest) (domain.SessionView, error) {
	if err := a.session.Login(ctx, a.authn, req); err != nil {
		a.logger.Info("sign in failed", zap.String("email", req.Email), zap.Error(err))
		return domain.SessionView{}, err
	}
	a.journal.Record(activity.Info("Signed in", req.Email))
	return a.session.View(), nil
}

func (a *AuthService) Logout(ctx context.Context) (domain.SessionView, error) {
	err := a.session.Logout(ctx)
	a.journal.Record(activity.Info("Signed out", ""))
	return a.session.View(), err
}

func (a *AuthService) Session() domain.SessionView {
	return a.session.View()
}
