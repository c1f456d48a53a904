package service

import (
	"context"
	"sync/atomic"
	"testing"

	"pharmaops/internal/events"
	"pharmaops/internal/model"
	"pharmaops/internal/repository"
	"pharmaops/internal/testutil"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	adminActor   = model.Actor{Name: "alice.admin", Role: model.RoleAdmin}
	qaActor      = model.Actor{Name: "quinn.qa", Role: model.RoleQA}
	auditorActor = model.Actor{Name: "ada.auditor", Role: model.RoleAuditor}
)

func vendorActor(id uuid.UUID) model.Actor {
	return model.Actor{Name: "victor.vendor", Role: model.RoleVendor, VendorID: &id}
}

// countingGenerator records how often requirements were generated.
type countingGenerator struct {
	inner RequirementGenerator
	calls int32
}

func (g *countingGenerator) GenerateRequirements(ctx context.Context, order *model.Order) ([]model.Requirement, error) {
	atomic.AddInt32(&g.calls, 1)
	return g.inner.GenerateRequirements(ctx, order)
}

type testEnv struct {
	ctx       context.Context
	db        *gorm.DB
	events    *events.Recorder
	generator *countingGenerator

	audit     AuditService
	rules     RuleService
	products  ProductService
	vendors   VendorService
	orders    OrderService
	documents DocumentService
	stats     StatisticsService
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithVerifier(t, nil)
}

func newTestEnvWithVerifier(t *testing.T, verifier ObjectVerifier) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	log := testutil.Logger()
	recorder := events.NewRecorder(256)
	txManager := repository.NewTransactionManager(db)

	productRepo := repository.NewProductRepository(db)
	ruleRepo := repository.NewRuleRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	requirementRepo := repository.NewRequirementRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	shipmentRepo := repository.NewShipmentRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	auditSvc := NewAuditService(auditRepo, txManager, log)
	rules := NewRuleService(ruleRepo, productRepo, auditSvc, txManager, log)
	generator := &countingGenerator{inner: NewRequirementGenerator(rules)}
	orders := NewOrderService(orderRepo, vendorRepo, productRepo, documentRepo, shipmentRepo, generator, auditSvc, txManager, recorder, log)
	vendors := NewVendorService(vendorRepo, orderRepo, auditSvc, txManager, recorder, log)
	vendors.(*vendorService).bcryptCost = bcrypt.MinCost

	var docVerifier ObjectVerifier
	if verifier != nil {
		docVerifier = verifier
	}

	return &testEnv{
		ctx:       context.Background(),
		db:        db,
		events:    recorder,
		generator: generator,
		audit:     auditSvc,
		rules:     rules,
		products:  NewProductService(productRepo, auditSvc, txManager, log),
		vendors:   vendors,
		orders:    orders,
		documents: NewDocumentService(documentRepo, requirementRepo, orderRepo, productRepo, orders, auditSvc, txManager, docVerifier, recorder, log),
		stats:     NewStatisticsService(repository.NewStatisticsRepository(db)),
	}
}

func (e *testEnv) mustProduct(t *testing.T, sku string) *model.Product {
	t.Helper()
	p, err := e.products.CreateProduct(e.ctx, adminActor, CreateProductRequest{SKU: sku, Name: "Product " + sku})
	if err != nil {
		t.Fatalf("create product %s: %v", sku, err)
	}
	return p
}

func (e *testEnv) mustRule(t *testing.T, productID uuid.UUID, docType, category string) *model.ComplianceRule {
	t.Helper()
	r, err := e.rules.DefineRule(e.ctx, adminActor, DefineRuleRequest{
		ProductID:   productID.String(),
		DocType:     docType,
		Requirement: docType + " must be signed by QA",
		Category:    category,
	})
	if err != nil {
		t.Fatalf("define rule %s: %v", docType, err)
	}
	return r
}

// mustVendor invites and accepts a vendor.
func (e *testEnv) mustVendor(t *testing.T, email string, capacity int) *model.Vendor {
	t.Helper()
	v, code, err := e.vendors.InviteVendor(e.ctx, adminActor, InviteVendorRequest{
		CompanyName: "Vendor " + email,
		Email:       email,
		Capacity:    capacity,
	})
	if err != nil {
		t.Fatalf("invite vendor: %v", err)
	}
	v, err = e.vendors.AcceptInvitation(e.ctx, vendorActor(v.ID), v.ID, code)
	if err != nil {
		t.Fatalf("accept invitation: %v", err)
	}
	return v
}

func (e *testEnv) mustOrder(t *testing.T, vendorID, productID uuid.UUID, qty int) *model.Order {
	t.Helper()
	o, err := e.orders.CreateOrder(e.ctx, adminActor, CreateOrderRequest{
		VendorID:    vendorID.String(),
		ProductID:   productID.String(),
		Quantity:    qty,
		Destination: "Hamburg DC",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return o
}

func (e *testEnv) mustUpload(t *testing.T, vendor *model.Vendor, orderID uuid.UUID, docType string) *model.Document {
	t.Helper()
	doc, err := e.documents.UploadDocument(e.ctx, vendorActor(vendor.ID), orderID, UploadDocumentRequest{
		DocType:      docType,
		FileMetadata: FileMetadata{FileName: docType + ".pdf", ContentRef: "orders/" + orderID.String() + "/" + docType + ".pdf"},
	})
	if err != nil {
		t.Fatalf("upload %s: %v", docType, err)
	}
	return doc
}

func (e *testEnv) mustReview(t *testing.T, docID uuid.UUID, decision, comments string) *model.Document {
	t.Helper()
	doc, err := e.documents.ReviewDocument(e.ctx, qaActor, docID, ReviewDocumentRequest{Decision: decision, Comments: comments})
	if err != nil {
		t.Fatalf("review %s: %v", decision, err)
	}
	return doc
}

func (e *testEnv) getOrder(t *testing.T, id uuid.UUID) *model.Order {
	t.Helper()
	o, err := e.orders.GetOrder(e.ctx, adminActor, id)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	return o
}

func requirementStatus(t *testing.T, o *model.Order, docType string) string {
	t.Helper()
	for _, r := range o.Requirements {
		if r.DocType == docType {
			return r.Status
		}
	}
	t.Fatalf("order %s has no %s requirement", o.OrderNumber, docType)
	return ""
}

// auditActions returns every recorded action in chain order.
func (e *testEnv) auditActions(t *testing.T) []string {
	t.Helper()
	var logs []model.AuditLog
	if err := e.db.Order("id ASC").Find(&logs).Error; err != nil {
		t.Fatalf("read audit log: %v", err)
	}
	actions := make([]string, 0, len(logs))
	for _, l := range logs {
		actions = append(actions, l.Action)
	}
	return actions
}

func countAction(actions []string, action string) int {
	n := 0
	for _, a := range actions {
		if a == action {
			n++
		}
	}
	return n
}
