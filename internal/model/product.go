package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is immutable reference data that compliance rules hang off.
type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SKU       string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"sku"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
