package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"pharmaops/internal/events"
	"pharmaops/internal/model"
	"pharmaops/internal/repository"
	"pharmaops/pkg/apperror"
	"pharmaops/pkg/pagination"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateOrderRequest struct {
	VendorID    string `json:"vendor_id" binding:"required"`
	ProductID   string `json:"product_id" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}

type CreateShipmentRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required"`
	Courier        string `json:"courier" binding:"required"`
}

type OrderService interface {
	CreateOrder(ctx context.Context, actor model.Actor, req CreateOrderRequest) (*model.Order, error)
	AcceptOrder(ctx context.Context, actor model.Actor, orderID uuid.UUID) (*model.Order, error)
	// RecomputeReadiness moves a DOCS_PENDING order whose requirements are all
	// APPROVED to READY_TO_SHIP. It must run inside the caller's transaction
	// and is a no-op otherwise.
	RecomputeReadiness(ctx context.Context, actor model.Actor, orderID uuid.UUID) (bool, error)
	CreateShipment(ctx context.Context, actor model.Actor, orderID uuid.UUID, req CreateShipmentRequest) (*model.Shipment, error)
	ConfirmDelivery(ctx context.Context, actor model.Actor, orderID uuid.UUID) (*model.Order, error)
	GetOrder(ctx context.Context, actor model.Actor, orderID uuid.UUID) (*model.Order, error)
	ListOrders(ctx context.Context, actor model.Actor, filter repository.OrderFilter, page pagination.Params) ([]model.Order, int64, error)
	OrderTrace(ctx context.Context, actor model.Actor, orderID uuid.UUID) ([]model.AuditLog, error)
}

const (
	orderNumberLockName    = "order-number"
	orderNumberAdvisoryKey = int64(0x50484f4f52444e4f) // "PHOORDNO"
)

type orderService struct {
	orderRepo    repository.OrderRepository
	vendorRepo   repository.VendorRepository
	productRepo  repository.ProductRepository
	documentRepo repository.DocumentRepository
	shipmentRepo repository.ShipmentRepository
	generator    RequirementGenerator
	auditSvc     AuditService
	txManager    repository.TransactionManager
	publisher    events.Publisher
	log          *zap.Logger
	now          func() time.Time

	numberMu sync.Mutex
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	vendorRepo repository.VendorRepository,
	productRepo repository.ProductRepository,
	documentRepo repository.DocumentRepository,
	shipmentRepo repository.ShipmentRepository,
	generator RequirementGenerator,
	auditSvc AuditService,
	txManager repository.TransactionManager,
	publisher events.Publisher,
	log *zap.Logger,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		vendorRepo:   vendorRepo,
		productRepo:  productRepo,
		documentRepo: documentRepo,
		shipmentRepo: shipmentRepo,
		generator:    generator,
		auditSvc:     auditSvc,
		txManager:    txManager,
		publisher:    publisher,
		log:          log,
		now:          time.Now,
	}
}

// ownsOrder is true for every non-vendor actor and for the order's own vendor.
func ownsOrder(actor model.Actor, order *model.Order) bool {
	if actor.Role != model.RoleVendor {
		return true
	}
	return actor.VendorID != nil && *actor.VendorID == order.VendorID
}

func orderRef(id uuid.UUID) model.EntityRef {
	return model.EntityRef{Type: model.EntityOrder, ID: id.String()}
}

func (s *orderService) publishAfterCommit(ctx context.Context, event events.Event) {
	repository.AfterCommit(ctx, func() {
		s.publisher.Publish(context.WithoutCancel(ctx), event)
	})
}

func (s *orderService) CreateOrder(ctx context.Context, actor model.Actor, req CreateOrderRequest) (*model.Order, error) {
	if err := authorize(actor, CapOrderCreate); err != nil {
		return nil, err
	}
	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		return nil, apperror.Validation("invalid vendor_id %q", req.VendorID)
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apperror.Validation("invalid product_id %q", req.ProductID)
	}
	if req.Quantity <= 0 {
		return nil, apperror.Validation("quantity must be positive, got %d", req.Quantity)
	}
	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		return nil, apperror.Validation("destination is required")
	}

	order := &model.Order{
		VendorID:    vendorID,
		ProductID:   productID,
		Quantity:    req.Quantity,
		Destination: destination,
		Status:      model.OrderStatusRequested,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		vendor, err := s.vendorRepo.FindByID(txCtx, vendorID)
		if err != nil {
			return notFoundOr(err, "vendor %s not found", vendorID)
		}
		if vendor.Status != model.VendorStatusAccepted {
			return apperror.InvalidState("vendor %s has not accepted its invitation", vendor.CompanyName)
		}
		if _, err := s.productRepo.FindByID(txCtx, productID); err != nil {
			return notFoundOr(err, "product %s not found", productID)
		}

		number, err := s.nextOrderNumber(txCtx)
		if err != nil {
			return err
		}
		order.OrderNumber = number

		if err := s.orderRepo.Create(txCtx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		_, err = s.auditSvc.Record(txCtx, model.ActionOrderCreated, actor, orderRef(order.ID),
			map[string]interface{}{
				"order_number": order.OrderNumber,
				"vendor_id":    vendorID.String(),
				"product_id":   productID.String(),
				"quantity":     order.Quantity,
				"destination":  order.Destination,
				"status":       order.Status,
			})
		if err != nil {
			return err
		}

		s.publishAfterCommit(txCtx, events.New(events.OrderCreated, map[string]interface{}{
			"order_id":     order.ID.String(),
			"order_number": order.OrderNumber,
			"vendor_id":    vendorID.String(),
		}))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("actor", actor.Name))
	return order, nil
}

// nextOrderNumber allocates ORD-YYYYMMDD-NNNNN, sequential per UTC day.
func (s *orderService) nextOrderNumber(ctx context.Context) (string, error) {
	if err := repository.LockUntilDone(ctx, orderNumberLockName, &s.numberMu); err != nil {
		return "", err
	}
	if err := repository.AdvisoryXactLock(ctx, orderNumberAdvisoryKey); err != nil {
		return "", fmt.Errorf("lock order numbers: %w", err)
	}

	prefix := "ORD-" + s.now().UTC().Format("20060102") + "-"
	last, err := s.orderRepo.LastOrderNumber(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("read last order number: %w", err)
	}

	seq := 1
	if last != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(last, prefix))
		if err != nil {
			return "", fmt.Errorf("malformed order number %q: %w", last, err)
		}
		seq = n + 1
	}
	return fmt.Sprintf("%s%05d", prefix, seq), nil
}

func (s *orderService) AcceptOrder(ctx context.Context, actor model.Actor, orderID uuid.UUID) (*model.Order, error) {
	if err := authorize(actor, CapOrderAccept); err != nil {
		return nil, err
	}

	var order *model.Order
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		order, err = s.orderRepo.FindByIDForUpdate(txCtx, orderID)
		if err != nil {
			return notFoundOr(err, "order %s not found", orderID)
		}
		if !ownsOrder(actor, order) {
			return apperror.Forbidden("order %s is not assigned to this vendor", order.OrderNumber)
		}
		if order.Status != model.OrderStatusRequested {
			return apperror.InvalidState("order %s cannot be accepted from status %s", order.OrderNumber, order.Status)
		}

		order.Status = model.OrderStatusAccepted
		reqs, err := s.generator.GenerateRequirements(txCtx, order)
		if err != nil {
			return fmt.Errorf("generate requirements: %w", err)
		}
		if err := s.orderRepo.CreateRequirements(txCtx, reqs); err != nil {
			return fmt.Errorf("failed to create requirements: %w", err)
		}
		order.Requirements = reqs

		next := model.OrderStatusDocsPending
		if len(reqs) == 0 {
			next = model.OrderStatusReadyToShip
		}
		if err := s.orderRepo.UpdateStatus(txCtx, order.ID, next); err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		order.Status = next

		docTypes := make([]string, 0, len(reqs))
		for _, r := range reqs {
			docTypes = append(docTypes, r.DocType)
		}
		_, err = s.auditSvc.Record(txCtx, model.ActionOrderAccepted, actor, orderRef(order.ID),
			map[string]interface{}{
				"order_number": order.OrderNumber,
				"status":       map[string]string{"from": model.OrderStatusRequested, "to": next},
				"requirements": docTypes,
			})
		if err != nil {
			return err
		}
		s.publishAfterCommit(txCtx, events.New(events.OrderAccepted, map[string]interface{}{
			"order_id":     order.ID.String(),
			"order_number": order.OrderNumber,
			"status":       next,
		}))

		if next == model.OrderStatusReadyToShip {
			return s.recordReady(txCtx, actor, order, model.OrderStatusRequested, "no documents required")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order accepted",
		zap.String("order_id", order.ID.String()),
		zap.String("status", order.Status),
		zap.Int("requirements", len(order.Requirements)))
	return order, nil
}

func (s *orderService) RecomputeReadiness(ctx context.Context, actor model.Actor, orderID uuid.UUID) (bool, error) {
	if !repository.InTx(ctx) {
		return false, repository.ErrNoTransaction
	}

	order, err := s.orderRepo.FindByIDForUpdate(ctx, orderID)
	if err != nil {
		return false, notFoundOr(err, "order %s not found", orderID)
	}
	if order.Status != model.OrderStatusDocsPending {
		return false, nil
	}
	for _, r := range order.Requirements {
		if r.Status != model.RequirementApproved {
			return false, nil
		}
	}

	if err := s.orderRepo.UpdateStatus(ctx, order.ID, model.OrderStatusReadyToShip); err != nil {
		return false, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = model.OrderStatusReadyToShip
	if err := s.recordReady(ctx, actor, order, model.OrderStatusDocsPending, "all requirements approved"); err != nil {
		return false, err
	}

	s.log.Info("order ready to ship", zap.String("order_id", order.ID.String()), zap.String("order_number", order.OrderNumber))
	return true, nil
}

func (s *orderService) recordReady(ctx context.Context, actor model.Actor, order *model.Order, from, reason string) error {
	_, err := s.auditSvc.Record(ctx, model.ActionOrderReadyToShip, actor, orderRef(order.ID),
		map[string]interface{}{
			"order_number": order.OrderNumber,
			"status":       map[string]string{"from": from, "to": model.OrderStatusReadyToShip},
			"reason":       reason,
		})
	if err != nil {
		return err
	}
	s.publishAfterCommit(ctx, events.New(events.OrderReadyToShip, map[string]interface{}{
		"order_id":     order.ID.String(),
		"order_number": order.OrderNumber,
	}))
	return nil
}

func (s *orderService) CreateShipment(ctx context.Context, actor model.Actor, orderID uuid.UUID, req CreateShipmentRequest) (*model.Shipment, error) {
	if err := authorize(actor, CapShipmentCreate); err != nil {
		return nil, err
	}
	tracking := strings.TrimSpace(req.TrackingNumber)
	courier := strings.TrimSpace(req.Courier)
	if tracking == "" || courier == "" {
		return nil, apperror.Validation("tracking_number and courier are required")
	}

	var shipment *model.Shipment
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		order, err := s.orderRepo.FindByIDForUpdate(txCtx, orderID)
		if err != nil {
			return notFoundOr(err, "order %s not found", orderID)
		}
		if !ownsOrder(actor, order) {
			return apperror.Forbidden("order %s is not assigned to this vendor", order.OrderNumber)
		}
		if order.Status != model.OrderStatusReadyToShip {
			return apperror.InvalidState("order %s cannot ship from status %s", order.OrderNumber, order.Status)
		}

		shipment = &model.Shipment{
			OrderID:        order.ID,
			TrackingNumber: tracking,
			Courier:        courier,
			Status:         model.ShipmentInTransit,
		}
		if err := s.shipmentRepo.Create(txCtx, shipment); err != nil {
			if isDuplicateKey(err) {
				return apperror.Wrap(err, apperror.KindConflict, "order %s already has a shipment", order.OrderNumber)
			}
			return fmt.Errorf("failed to create shipment: %w", err)
		}
		if err := s.orderRepo.UpdateStatus(txCtx, order.ID, model.OrderStatusShipped); err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		_, err = s.auditSvc.Record(txCtx, model.ActionShipmentCreated, actor,
			model.EntityRef{Type: model.EntityShipment, ID: shipment.ID.String()},
			map[string]interface{}{
				"order_id":        order.ID.String(),
				"order_number":    order.OrderNumber,
				"tracking_number": tracking,
				"courier":         courier,
				"status":          map[string]string{"from": model.OrderStatusReadyToShip, "to": model.OrderStatusShipped},
			})
		if err != nil {
			return err
		}
		s.publishAfterCommit(txCtx, events.New(events.ShipmentCreated, map[string]interface{}{
			"order_id":        order.ID.String(),
			"shipment_id":     shipment.ID.String(),
			"tracking_number": tracking,
			"courier":         courier,
		}))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return shipment, nil
}

// ConfirmDelivery records the courier's delivery event.
func (s *orderService) ConfirmDelivery(ctx context.Context, actor model.Actor, orderID uuid.UUID) (*model.Order, error) {
	if err := authorize(actor, CapShipmentDeliver); err != nil {
		return nil, err
	}

	var order *model.Order
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		order, err = s.orderRepo.FindByIDForUpdate(txCtx, orderID)
		if err != nil {
			return notFoundOr(err, "order %s not found", orderID)
		}
		if order.Status != model.OrderStatusShipped {
			return apperror.InvalidState("order %s cannot be delivered from status %s", order.OrderNumber, order.Status)
		}

		shipment, err := s.shipmentRepo.FindByOrderIDForUpdate(txCtx, order.ID)
		if err != nil {
			return notFoundOr(err, "shipment for order %s not found", order.OrderNumber)
		}
		deliveredAt := s.now().UTC()
		shipment.Status = model.ShipmentDelivered
		shipment.DeliveredAt = &deliveredAt
		if err := s.shipmentRepo.Update(txCtx, shipment); err != nil {
			return fmt.Errorf("failed to update shipment: %w", err)
		}
		if err := s.orderRepo.UpdateStatus(txCtx, order.ID, model.OrderStatusDelivered); err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		order.Status = model.OrderStatusDelivered

		_, err = s.auditSvc.Record(txCtx, model.ActionOrderDelivered, actor, orderRef(order.ID),
			map[string]interface{}{
				"order_number":    order.OrderNumber,
				"shipment_id":     shipment.ID.String(),
				"tracking_number": shipment.TrackingNumber,
				"status":          map[string]string{"from": model.OrderStatusShipped, "to": model.OrderStatusDelivered},
			})
		if err != nil {
			return err
		}
		s.publishAfterCommit(txCtx, events.New(events.OrderDelivered, map[string]interface{}{
			"order_id":     order.ID.String(),
			"order_number": order.OrderNumber,
		}))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, actor model.Actor, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, notFoundOr(err, "order %s not found", orderID)
	}
	if !ownsOrder(actor, order) {
		return nil, apperror.Forbidden("order %s is not assigned to this vendor", order.OrderNumber)
	}
	return order, nil
}

// ListOrders restricts vendor actors to their own orders.
func (s *orderService) ListOrders(ctx context.Context, actor model.Actor, filter repository.OrderFilter, page pagination.Params) ([]model.Order, int64, error) {
	if actor.Role == model.RoleVendor {
		if actor.VendorID == nil {
			return nil, 0, apperror.Forbidden("vendor actor carries no vendor id")
		}
		filter.VendorID = actor.VendorID
	}
	orders, total, err := s.orderRepo.List(ctx, filter, page.Offset, page.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, total, nil
}

// OrderTrace returns the audit history of an order, its documents and its
// shipment, oldest first.
func (s *orderService) OrderTrace(ctx context.Context, actor model.Actor, orderID uuid.UUID) ([]model.AuditLog, error) {
	order, err := s.GetOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	refs := []model.EntityRef{orderRef(order.ID)}
	docs, err := s.documentRepo.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	for _, d := range docs {
		refs = append(refs, model.EntityRef{Type: model.EntityDocument, ID: d.ID.String()})
	}
	shipment, err := s.shipmentRepo.FindByOrderID(ctx, order.ID)
	switch {
	case err == nil:
		refs = append(refs, model.EntityRef{Type: model.EntityShipment, ID: shipment.ID.String()})
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("find shipment: %w", err)
	}

	return s.auditSvc.EntriesFor(ctx, refs)
}
