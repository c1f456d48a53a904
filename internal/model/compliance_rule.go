package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document categories
const (
	CategoryMaster        = "MASTER"        // product-level standing documents
	CategoryTransactional = "TRANSACTIONAL" // per-order documents
)

func ValidCategory(c string) bool {
	return c == CategoryMaster || c == CategoryTransactional
}

// ComplianceRule declares that orders of a product need a document of DocType.
// At most one rule exists per (ProductID, DocType).
type ComplianceRule struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rule_product_doc_type" json:"product_id"`
	DocType     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_rule_product_doc_type" json:"doc_type"`
	Requirement string    `gorm:"type:text" json:"requirement"`
	Category    string    `gorm:"type:varchar(20);not null" json:"category"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r *ComplianceRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
