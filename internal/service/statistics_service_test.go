package service

import (
	"testing"

	"pharmaops/internal/model"
)

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustProduct(t, "STAT-1")
	env.mustRule(t, product.ID, "CoA", model.CategoryTransactional)
	vendor := env.mustVendor(t, "stats@vendor.test", 100)

	pending := env.mustOrder(t, vendor.ID, product.ID, 5)
	env.mustOrder(t, vendor.ID, product.ID, 5)
	if _, err := env.orders.AcceptOrder(env.ctx, vendorActor(vendor.ID), pending.ID); err != nil {
		t.Fatal(err)
	}
	env.mustUpload(t, vendor, pending.ID, "CoA")

	stats, err := env.stats.Stats(env.ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.OrdersByStatus[model.OrderStatusRequested] != 1 || stats.OrdersByStatus[model.OrderStatusDocsPending] != 1 {
		t.Fatalf("orders by status %v", stats.OrdersByStatus)
	}
	if stats.VendorsByStatus[model.VendorStatusAccepted] != 1 {
		t.Fatalf("vendors by status %v", stats.VendorsByStatus)
	}
	if stats.DocumentsPending != 1 || stats.ShipmentsInTransit != 0 {
		t.Fatalf("stats %+v", stats)
	}
	if stats.AuditEntries != int64(len(env.auditActions(t))) {
		t.Fatalf("audit entries %d", stats.AuditEntries)
	}
}
