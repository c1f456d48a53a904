package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VendorStatus constants
const (
	VendorStatusInvited  = "INVITED"
	VendorStatusAccepted = "ACCEPTED"
)

// Vendor is a supplier. Only ACCEPTED vendors can be assigned new orders.
type Vendor struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyName    string     `gorm:"type:varchar(255);not null" json:"company_name"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Capacity       int        `gorm:"type:int;not null" json:"capacity"`
	Status         string     `gorm:"type:varchar(20);not null;index" json:"status"`
	InviteCodeHash string     `gorm:"type:varchar(255);not null" json:"-"`
	AcceptedAt     *time.Time `json:"accepted_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (v *Vendor) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
