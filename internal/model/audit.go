package model

import (
	"time"

	"gorm.io/datatypes"
)

// Audit actions
const (
	ActionProductCreated       = "PRODUCT_CREATED"
	ActionComplianceRuleCreate = "COMPLIANCE_RULE_CREATED"
	ActionComplianceRuleUpdate = "COMPLIANCE_RULE_UPDATED"
	ActionVendorInviteSent     = "VENDOR_INVITE_SENT"
	ActionInvitationAccepted   = "INVITATION_ACCEPTED"
	ActionOrderCreated         = "ORDER_CREATED"
	ActionOrderAccepted        = "ORDER_ACCEPTED"
	ActionOrderReadyToShip     = "ORDER_READY_TO_SHIP"
	ActionDocumentUploaded     = "DOCUMENT_UPLOADED"
	ActionDocumentApproved     = "DOCUMENT_APPROVED"
	ActionDocumentRejected     = "DOCUMENT_REJECTED"
	ActionMasterSOPUploaded    = "MASTER_SOP_UPLOADED"
	ActionShipmentCreated      = "SHIPMENT_CREATED"
	ActionOrderDelivered       = "ORDER_DELIVERED"
)

// Audited entity types
const (
	EntityProduct        = "PRODUCT"
	EntityComplianceRule = "COMPLIANCE_RULE"
	EntityVendor         = "VENDOR"
	EntityOrder          = "ORDER"
	EntityDocument       = "DOCUMENT"
	EntityMasterDocument = "MASTER_DOCUMENT"
	EntityShipment       = "SHIPMENT"
)

// EntityRef points an audit entry at the entity it describes.
type EntityRef struct {
	Type string
	ID   string
}

func (e EntityRef) String() string { return e.Type + ":" + e.ID }

// AuditLog is one link of the append-only hash chain. Rows are never updated
// or deleted; ID is a gapless sequence starting at 1. Changes is stored as
// json rather than jsonb so the column returns the hashed bytes unchanged.
type AuditLog struct {
	ID           int64          `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Timestamp    time.Time      `gorm:"not null;index" json:"timestamp"`
	ActorName    string         `gorm:"type:varchar(255);not null" json:"actor_name"`
	ActorRole    string         `gorm:"type:varchar(30);not null;index" json:"actor_role"`
	Action       string         `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityType   string         `gorm:"type:varchar(50);not null;index" json:"entity_type"`
	EntityID     string         `gorm:"type:varchar(64);index" json:"entity_id"`
	Changes      datatypes.JSON `gorm:"type:json" json:"changes"`
	PreviousHash string         `gorm:"type:char(64);not null" json:"previous_hash"`
	EntryHash    string         `gorm:"type:char(64);not null;uniqueIndex" json:"entry_hash"`
}

func (a AuditLog) Entity() EntityRef {
	return EntityRef{Type: a.EntityType, ID: a.EntityID}
}
