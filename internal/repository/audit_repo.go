package repository

import (
	"context"
	"errors"
	"strings"

	"pharmaops/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AuditFilter narrows Query. Text matches action, actor name or
// "entityType:entityId" case-insensitively.
type AuditFilter struct {
	Role       string
	Text       string
	EntityType string
	EntityID   string
}

type AuditRepository interface {
	Last(ctx context.Context) (*model.AuditLog, error)
	Append(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, filter AuditFilter, offset, limit int) ([]model.AuditLog, int64, error)
	ListByEntities(ctx context.Context, refs []model.EntityRef) ([]model.AuditLog, error)
	Each(ctx context.Context, batchSize int, fn func(entries []model.AuditLog) error) error
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

// Last returns the newest entry, or nil for an empty chain.
func (r *auditRepository) Last(ctx context.Context) (*model.AuditLog, error) {
	var entry model.AuditLog
	err := GetDB(ctx, r.db).Order("id DESC").Limit(1).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *auditRepository) Append(ctx context.Context, entry *model.AuditLog) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *auditRepository) List(ctx context.Context, filter AuditFilter, offset, limit int) ([]model.AuditLog, int64, error) {
	var logs []model.AuditLog
	var total int64

	db := GetDB(ctx, r.db).Model(&model.AuditLog{})
	if filter.Role != "" {
		db = db.Where("actor_role = ?", filter.Role)
	}
	if filter.EntityType != "" {
		db = db.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != "" {
		db = db.Where("entity_id = ?", filter.EntityID)
	}
	if text := strings.TrimSpace(filter.Text); text != "" {
		like := "%" + strings.ToLower(text) + "%"
		db = db.Where(
			"LOWER(action) LIKE ? OR LOWER(actor_name) LIKE ? OR LOWER(entity_type || ':' || entity_id) LIKE ?",
			like, like, like,
		)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}}).Order("id ASC").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// ListByEntities returns every entry describing one of refs, ascending by id.
func (r *auditRepository) ListByEntities(ctx context.Context, refs []model.EntityRef) ([]model.AuditLog, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	db := GetDB(ctx, r.db)
	cond := db.Where("entity_type = ? AND entity_id = ?", refs[0].Type, refs[0].ID)
	for _, ref := range refs[1:] {
		cond = cond.Or("entity_type = ? AND entity_id = ?", ref.Type, ref.ID)
	}

	var logs []model.AuditLog
	if err := db.Where(cond).Order("id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Each walks the whole chain in ascending id order, batchSize rows at a time.
func (r *auditRepository) Each(ctx context.Context, batchSize int, fn func(entries []model.AuditLog) error) error {
	var batch []model.AuditLog
	result := GetDB(ctx, r.db).Order("id ASC").FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
		return fn(batch)
	})
	return result.Error
}
