package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/xela07ax/inventory-console/internal/activity"
	"github.com/xela07ax/inventory-console/internal/console/views"
	"github.com/xela07ax/inventory-console/internal/domain"
)

type StoreService struct {
	api       InventoryAPI
	validator *Validator
	journal   activity.Recorder
	logger    *zap.Logger

	mu   sync.Mutex
	held []domain.Store
}

func NewStoreService(api InventoryAPI, v *Validator, journal activity.Recorder, logger *zap.Logger) *StoreService {
	return &StoreService{
		api:       api,
		validator: v,
		journal:   journal,
		logger:    logger.Named("store-service"),
	}
}

func (s *StoreService) List(ctx context.Context) ([]domain.Store, error) {
	stores, err := s.api.Stores(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stores: %w", err)
	}
	s.mu.Lock()
	s.held = stores
	s.mu.Unlock()
	return stores, nil
}

func (s *StoreService) Save(ctx context.Context, id domain.ID, form StoreForm) (domain.Store, error) {
	form = form.trimmed()
	if err := s.validator.Check(form, MsgStoreInvalid); err != nil {
		return domain.Store{}, err
	}

	var (
		saved domain.Store
		err   error
		title = "Store created"
	)
	if id.IsZero() {
		saved, err = s.api.CreateStore(ctx, form.store())
	} else {
		title = "Store updated"
		saved, err = s.api.UpdateStore(ctx, id, form.store())
	}
	if err != nil {
		s.logger.Warn("store save failed", zap.String("code", form.Code), zap.Error(err))
		s.journal.Record(activity.Failure("Failed to save store", err))
		return domain.Store{}, err
	}
	s.journal.Record(activity.Success(title, form.Code))

	if _, err := s.List(ctx); err != nil {
		s.logger.Warn("reload after save failed", zap.Error(err))
	}
	return saved, nil
}

func (s *StoreService) Delete(ctx context.Context, id domain.ID) ([]domain.Store, error) {
	if id.IsZero() {
		return s.Current(), nil
	}
	if err := s.api.DeleteStore(ctx, id); err != nil {
		s.journal.Record(activity.Failure("Failed to delete store", err))
		return nil, err
	}
	s.journal.Record(activity.Success("Store deleted", "#"+id.String()))

	s.mu.Lock()
	s.held = views.RemoveByID(s.held, id, views.StoreID)
	s.mu.Unlock()
	return s.Current(), nil
}

func (s *StoreService) Current() []domain.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Store{}, s.held...)
}
