package repository

import (
	"context"

	"pharmaops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RequirementRepository interface {
	FindByOrderAndDocTypeForUpdate(ctx context.Context, orderID uuid.UUID, docType string) (*model.Requirement, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Requirement, error)
	Update(ctx context.Context, req *model.Requirement) error
}

type requirementRepository struct {
	db *gorm.DB
}

func NewRequirementRepository(db *gorm.DB) RequirementRepository {
	return &requirementRepository{db: db}
}

func (r *requirementRepository) FindByOrderAndDocTypeForUpdate(ctx context.Context, orderID uuid.UUID, docType string) (*model.Requirement, error) {
	var req model.Requirement
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ? AND doc_type = ?", orderID, docType).
		First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requirementRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Requirement, error) {
	var req model.Requirement
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requirementRepository) Update(ctx context.Context, req *model.Requirement) error {
	return GetDB(ctx, r.db).Save(req).Error
}
