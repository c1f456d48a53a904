package model

import "github.com/google/uuid"

// Actor roles as carried in the access token.
const (
	RoleAdmin   = "ADMIN"
	RoleVendor  = "VENDOR"
	RoleQA      = "QA"
	RoleAuditor = "AUDITOR"
	RoleSystem  = "SYSTEM"
)

// Actor is the opaque identity handed to every mutating operation. Name and
// Role are stored verbatim in the audit trail.
type Actor struct {
	Name     string     `json:"name"`
	Role     string     `json:"role"`
	VendorID *uuid.UUID `json:"vendor_id,omitempty"` // set for VENDOR actors
}

// SystemActor is used for events that come from integrations rather than a user.
func SystemActor(name string) Actor {
	return Actor{Name: name, Role: RoleSystem}
}
