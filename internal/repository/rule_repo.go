package repository

import (
	"context"

	"pharmaops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RuleRepository interface {
	Create(ctx context.Context, rule *model.ComplianceRule) error
	Update(ctx context.Context, rule *model.ComplianceRule) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ComplianceRule, error)
	FindByProductAndDocType(ctx context.Context, productID uuid.UUID, docType string) (*model.ComplianceRule, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.ComplianceRule, error)
}

type ruleRepository struct {
	db *gorm.DB
}

func NewRuleRepository(db *gorm.DB) RuleRepository {
	return &ruleRepository{db: db}
}

func (r *ruleRepository) Create(ctx context.Context, rule *model.ComplianceRule) error {
	return GetDB(ctx, r.db).Create(rule).Error
}

func (r *ruleRepository) Update(ctx context.Context, rule *model.ComplianceRule) error {
	return GetDB(ctx, r.db).Save(rule).Error
}

func (r *ruleRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ComplianceRule, error) {
	var rule model.ComplianceRule
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&rule).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *ruleRepository) FindByProductAndDocType(ctx context.Context, productID uuid.UUID, docType string) (*model.ComplianceRule, error) {
	var rule model.ComplianceRule
	if err := GetDB(ctx, r.db).
		Where("product_id = ? AND doc_type = ?", productID, docType).
		First(&rule).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

// ListByProduct returns rules in creation order.
func (r *ruleRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.ComplianceRule, error) {
	var rules []model.ComplianceRule
	if err := GetDB(ctx, r.db).
		Where("product_id = ?", productID).
		Order("created_at ASC").Order("doc_type ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}
