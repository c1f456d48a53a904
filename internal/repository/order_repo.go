package repository

import (
	"context"

	"pharmaops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderFilter narrows ListOrders. Zero values match everything.
type OrderFilter struct {
	VendorID *uuid.UUID
	Status   string
}

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	CreateRequirements(ctx context.Context, reqs []model.Requirement) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	LastOrderNumber(ctx context.Context, prefix string) (string, error)
	List(ctx context.Context, filter OrderFilter, offset, limit int) ([]model.Order, int64, error)
	OpenQuantityByVendor(ctx context.Context) (map[uuid.UUID]int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func preloadRequirements(db *gorm.DB) *gorm.DB {
	return db.Order("requirements.position ASC")
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return GetDB(ctx, r.db).Omit("Requirements").Create(order).Error
}

func (r *orderRepository) CreateRequirements(ctx context.Context, reqs []model.Requirement) error {
	if len(reqs) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&reqs).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := GetDB(ctx, r.db).
		Preload("Requirements", preloadRequirements).
		First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDForUpdate locks the order row. Requirements are loaded after the
// lock so they reflect every transaction that released it.
func (r *orderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	db := GetDB(ctx, r.db)
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	if err := db.Where("order_id = ?", id).Order("position ASC").Find(&order.Requirements).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return GetDB(ctx, r.db).Model(&model.Order{}).Where("id = ?", id).Update("status", status).Error
}

// LastOrderNumber returns the highest order number with the given prefix, or
// "" when there is none.
func (r *orderRepository) LastOrderNumber(ctx context.Context, prefix string) (string, error) {
	var numbers []string
	if err := GetDB(ctx, r.db).Model(&model.Order{}).
		Where("order_number LIKE ?", prefix+"%").
		Order("order_number DESC").Limit(1).
		Pluck("order_number", &numbers).Error; err != nil {
		return "", err
	}
	if len(numbers) == 0 {
		return "", nil
	}
	return numbers[0], nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter, offset, limit int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Order{})
	if filter.VendorID != nil {
		db = db.Where("vendor_id = ?", *filter.VendorID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.
		Preload("Requirements", preloadRequirements).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// OpenQuantityByVendor sums the quantity of orders not yet shipped per vendor.
func (r *orderRepository) OpenQuantityByVendor(ctx context.Context) (map[uuid.UUID]int64, error) {
	var rows []struct {
		VendorID uuid.UUID
		Total    int64
	}
	if err := GetDB(ctx, r.db).Model(&model.Order{}).
		Select("vendor_id, COALESCE(SUM(quantity), 0) AS total").
		Where("status NOT IN ?", []string{model.OrderStatusShipped, model.OrderStatusDelivered}).
		Group("vendor_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		totals[row.VendorID] = row.Total
	}
	return totals, nil
}
