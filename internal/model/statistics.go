package model

// DashboardStats holds the counters shown on every role's dashboard.
type DashboardStats struct {
	OrdersByStatus     map[string]int64 `json:"orders_by_status"`
	VendorsByStatus    map[string]int64 `json:"vendors_by_status"`
	DocumentsPending   int64            `json:"documents_pending_review"`
	ShipmentsInTransit int64            `json:"shipments_in_transit"`
	AuditEntries       int64            `json:"audit_entries"`
}
