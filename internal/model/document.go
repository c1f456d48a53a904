package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review decisions
const (
	DecisionApprove = "APPROVE"
	DecisionReject  = "REJECT"
)

// Document is the metadata of one uploaded file for an order requirement.
// The bytes live in object storage under ContentRef.
type Document struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"order_id"`
	RequirementID uuid.UUID  `gorm:"type:uuid;not null;index" json:"requirement_id"`
	DocType       string     `gorm:"type:varchar(100);not null" json:"doc_type"`
	FileName      string     `gorm:"type:varchar(255);not null" json:"file_name"`
	ContentRef    string     `gorm:"type:varchar(512)" json:"content_ref"`
	FileSize      int64      `gorm:"type:bigint" json:"file_size"`
	Status        string     `gorm:"type:varchar(20);not null;index" json:"status"` // mirrors the requirement
	UploadedBy    string     `gorm:"type:varchar(255)" json:"uploaded_by"`
	ReviewerName  string     `gorm:"type:varchar(255)" json:"reviewer_name"`
	ReviewerRole  string     `gorm:"type:varchar(30)" json:"reviewer_role"`
	Comments      string     `gorm:"type:text" json:"comments"`
	ReviewedAt    *time.Time `json:"reviewed_at"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// MasterDocument is a standing product-level document (SOP, DMF) that is not
// tied to an order.
type MasterDocument struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	DocType    string    `gorm:"type:varchar(100);not null" json:"doc_type"`
	FileName   string    `gorm:"type:varchar(255);not null" json:"file_name"`
	ContentRef string    `gorm:"type:varchar(512)" json:"content_ref"`
	FileSize   int64     `gorm:"type:bigint" json:"file_size"`
	UploadedBy string    `gorm:"type:varchar(255)" json:"uploaded_by"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (d *MasterDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
