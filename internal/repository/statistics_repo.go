package repository

import (
	"context"
	"fmt"

	"pharmaops/internal/model"

	"gorm.io/gorm"
)

type StatisticsRepository interface {
	OrdersByStatus(ctx context.Context) (map[string]int64, error)
	VendorsByStatus(ctx context.Context) (map[string]int64, error)
	CountDocuments(ctx context.Context, status string) (int64, error)
	CountShipments(ctx context.Context, status string) (int64, error)
	CountAuditEntries(ctx context.Context) (int64, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

type statusCount struct {
	Status string
	Count  int64
}

func (r *statisticsRepository) groupByStatus(ctx context.Context, table interface{}, statuses []string) (map[string]int64, error) {
	var rows []statusCount
	if err := GetDB(ctx, r.db).Model(table).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64, len(statuses))
	for _, s := range statuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *statisticsRepository) OrdersByStatus(ctx context.Context) (map[string]int64, error) {
	return r.groupByStatus(ctx, &model.Order{}, model.OrderStatuses)
}

func (r *statisticsRepository) VendorsByStatus(ctx context.Context) (map[string]int64, error) {
	return r.groupByStatus(ctx, &model.Vendor{}, []string{model.VendorStatusInvited, model.VendorStatusAccepted})
}

func (r *statisticsRepository) CountDocuments(ctx context.Context, status string) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Document{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *statisticsRepository) CountShipments(ctx context.Context, status string) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Shipment{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *statisticsRepository) CountAuditEntries(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.AuditLog{}).Count(&count).Error
	return count, err
}
