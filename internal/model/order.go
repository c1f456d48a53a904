package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus constants
const (
	OrderStatusRequested   = "REQUESTED"
	OrderStatusAccepted    = "ACCEPTED"
	OrderStatusDocsPending = "DOCS_PENDING"
	OrderStatusReadyToShip = "READY_TO_SHIP"
	OrderStatusShipped     = "SHIPPED"
	OrderStatusDelivered   = "DELIVERED"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []string{
	OrderStatusRequested,
	OrderStatusAccepted,
	OrderStatusDocsPending,
	OrderStatusReadyToShip,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// Order is a purchase request to a vendor. Status is owned by the order
// lifecycle service; nothing else writes it.
type Order struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber  string        `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_number"`
	VendorID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"vendor_id"`
	ProductID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity     int           `gorm:"type:int;not null" json:"quantity"`
	Destination  string        `gorm:"type:varchar(255);not null" json:"destination"`
	Status       string        `gorm:"type:varchar(20);not null;index" json:"status"`
	Requirements []Requirement `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"requirements"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// RequirementStatus constants
const (
	RequirementMissing       = "MISSING"
	RequirementPendingReview = "PENDING_REVIEW"
	RequirementApproved      = "APPROVED"
	RequirementRejected      = "REJECTED"
)

// Requirement is one document obligation of an order, snapshotted from a
// compliance rule when the order was accepted.
type Requirement struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_requirement_order_doc_type" json:"order_id"`
	DocType     string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_requirement_order_doc_type" json:"doc_type"`
	Description string     `gorm:"type:text" json:"description"`
	Category    string     `gorm:"type:varchar(20);not null" json:"category"`
	Status      string     `gorm:"type:varchar(20);not null" json:"status"`
	DocumentID  *uuid.UUID `gorm:"type:uuid" json:"document_id"`
	ExpiryDate  *time.Time `json:"expiry_date"`
	Position    int        `gorm:"type:int;not null" json:"position"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (r *Requirement) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ShipmentStatus constants
const (
	ShipmentInTransit = "IN_TRANSIT"
	ShipmentDelivered = "DELIVERED"
)

// Shipment is created once per order when it leaves READY_TO_SHIP.
type Shipment struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	TrackingNumber string     `gorm:"type:varchar(100);not null" json:"tracking_number"`
	Courier        string     `gorm:"type:varchar(100);not null" json:"courier"`
	Status         string     `gorm:"type:varchar(20);not null;index" json:"status"`
	DeliveredAt    *time.Time `json:"delivered_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (s *Shipment) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
