package service

import (
	"pharmaops/internal/model"
	"pharmaops/pkg/apperror"
)

// Capability names an action a role may perform.
type Capability string

const (
	CapProductCreate   Capability = "product.create"
	CapRuleDefine      Capability = "rule.define"
	CapRuleUpdate      Capability = "rule.update"
	CapVendorInvite    Capability = "vendor.invite"
	CapVendorAccept    Capability = "vendor.accept"
	CapOrderCreate     Capability = "order.create"
	CapOrderAccept     Capability = "order.accept"
	CapDocumentUpload  Capability = "document.upload"
	CapDocumentReview  Capability = "document.review"
	CapMasterUpload    Capability = "master.upload"
	CapShipmentCreate  Capability = "shipment.create"
	CapShipmentDeliver Capability = "shipment.deliver"
	CapAuditRead       Capability = "audit.read"
	CapAuditVerify     Capability = "audit.verify"
	CapAuditExport     Capability = "audit.export"
)

var roleCapabilities = map[string][]Capability{
	model.RoleAdmin: {
		CapProductCreate, CapRuleDefine, CapRuleUpdate, CapVendorInvite,
		CapOrderCreate, CapMasterUpload, CapShipmentDeliver, CapAuditRead,
	},
	model.RoleVendor: {
		CapVendorAccept, CapOrderAccept, CapDocumentUpload, CapShipmentCreate,
	},
	model.RoleQA: {
		CapDocumentReview, CapMasterUpload,
	},
	model.RoleAuditor: {
		CapAuditRead, CapAuditVerify, CapAuditExport,
	},
	// Integrations such as the courier tracking feed.
	model.RoleSystem: {
		CapShipmentDeliver,
	},
}

// Can reports whether role holds capability c.
func Can(role string, c Capability) bool {
	for _, granted := range roleCapabilities[role] {
		if granted == c {
			return true
		}
	}
	return false
}

func authorize(actor model.Actor, c Capability) error {
	if actor.Name == "" {
		return apperror.Forbidden("anonymous actor may not perform %s", c)
	}
	if !Can(actor.Role, c) {
		return apperror.Forbidden("role %s may not perform %s", actor.Role, c)
	}
	return nil
}
