package repository

import (
	"context"

	"pharmaops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) error
	Update(ctx context.Context, doc *model.Document) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Document, error)
	ListPending(ctx context.Context, offset, limit int) ([]model.Document, int64, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Document, error)

	CreateMaster(ctx context.Context, doc *model.MasterDocument) error
	ListMaster(ctx context.Context, productID *uuid.UUID) ([]model.MasterDocument, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *model.Document) error {
	return GetDB(ctx, r.db).Create(doc).Error
}

func (r *documentRepository) Update(ctx context.Context, doc *model.Document) error {
	return GetDB(ctx, r.db).Save(doc).Error
}

func (r *documentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	var doc model.Document
	if err := GetDB(ctx, r.db).First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListPending is the QA queue, oldest upload first.
func (r *documentRepository) ListPending(ctx context.Context, offset, limit int) ([]model.Document, int64, error) {
	var docs []model.Document
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Document{}).Where("status = ?", model.RequirementPendingReview)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("created_at ASC").Offset(offset).Limit(limit).Find(&docs).Error; err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (r *documentRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Document, error) {
	var docs []model.Document
	if err := GetDB(ctx, r.db).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) CreateMaster(ctx context.Context, doc *model.MasterDocument) error {
	return GetDB(ctx, r.db).Create(doc).Error
}

func (r *documentRepository) ListMaster(ctx context.Context, productID *uuid.UUID) ([]model.MasterDocument, error) {
	var docs []model.MasterDocument
	db := GetDB(ctx, r.db)
	if productID != nil {
		db = db.Where("product_id = ?", *productID)
	}
	if err := db.Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}
