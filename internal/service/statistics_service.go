package service

import (
	"context"
	"fmt"

	"pharmaops/internal/model"
	"pharmaops/internal/repository"
)

type StatisticsService interface {
	Stats(ctx context.Context) (model.DashboardStats, error)
}

type statisticsService struct {
	repo repository.StatisticsRepository
}

func NewStatisticsService(repo repository.StatisticsRepository) StatisticsService {
	return &statisticsService{repo: repo}
}

func (s *statisticsService) Stats(ctx context.Context) (model.DashboardStats, error) {
	var stats model.DashboardStats
	var err error

	if stats.OrdersByStatus, err = s.repo.OrdersByStatus(ctx); err != nil {
		return stats, fmt.Errorf("orders by status: %w", err)
	}
	if stats.VendorsByStatus, err = s.repo.VendorsByStatus(ctx); err != nil {
		return stats, fmt.Errorf("vendors by status: %w", err)
	}
	if stats.DocumentsPending, err = s.repo.CountDocuments(ctx, model.RequirementPendingReview); err != nil {
		return stats, fmt.Errorf("pending documents: %w", err)
	}
	if stats.ShipmentsInTransit, err = s.repo.CountShipments(ctx, model.ShipmentInTransit); err != nil {
		return stats, fmt.Errorf("shipments in transit: %w", err)
	}
	if stats.AuditEntries, err = s.repo.CountAuditEntries(ctx); err != nil {
		return stats, fmt.Errorf("audit entries: %w", err)
	}
	return stats, nil
}
