package service

import (
	"context"

	"github.com/ibitrepair/workshop/internal/models"
	"github.com/ibitrepair/workshop/internal/repo"
)

type DashboardService struct {
	Repo *repo.GormRepo
}

type DashboardSnapshot struct {
	Counts        *repo.DashboardCounts `json:"counts"`
	LowStockParts []models.Part         `json:"lowStockParts"`
}

func (s *DashboardService) Snapshot(ctx context.Context) (*DashboardSnapshot, error) {
	counts, err := s.Repo.CountDashboard(ctx)
	if err != nil {
		return nil, err
	}
	low, err := s.Repo.ListLowStockParts(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardSnapshot{Counts: counts, LowStockParts: low}, nil
}
