package service

import (
	"context"

	"github.com/kube-rca/pizza-observability/internal/model"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

type historyRepo interface {
	ListDispatches(ctx context.Context, limit int) ([]model.DispatchRecord, error)
}

// HistoryService lists recorded dispatches.
type HistoryService struct {
	repo historyRepo
}

func NewHistoryService(repo historyRepo) *HistoryService {
	return &HistoryService{repo: repo}
}

// Enabled reports whether a history store is wired.
func (s *HistoryService) Enabled() bool {
	return s != nil && s.repo != nil
}

func (s *HistoryService) List(ctx context.Context, limit int) ([]model.DispatchRecord, error) {
	if !s.Enabled() {
		return []model.DispatchRecord{}, nil
	}
	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}
	return s.repo.ListDispatches(ctx, limit)
}
