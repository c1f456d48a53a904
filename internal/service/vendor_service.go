package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pharmaops/internal/events"
	"pharmaops/internal/model"
	"pharmaops/internal/repository"
	"pharmaops/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type InviteVendorRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Capacity    int    `json:"capacity" binding:"required"`
}

type AcceptInvitationRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

// VendorSummary is a vendor with its current load.
type VendorSummary struct {
	model.Vendor
	OpenQuantity int64           `json:"open_quantity"`
	Utilization  decimal.Decimal `json:"utilization"`
}

type VendorService interface {
	// InviteVendor returns the one-time invite code; only its hash is stored.
	InviteVendor(ctx context.Context, actor model.Actor, req InviteVendorRequest) (*model.Vendor, string, error)
	AcceptInvitation(ctx context.Context, actor model.Actor, vendorID uuid.UUID, inviteCode string) (*model.Vendor, error)
	ListVendors(ctx context.Context, status string) ([]VendorSummary, error)
}

type vendorService struct {
	vendorRepo repository.VendorRepository
	orderRepo  repository.OrderRepository
	auditSvc   AuditService
	txManager  repository.TransactionManager
	publisher  events.Publisher
	log        *zap.Logger
	bcryptCost int
	now        func() time.Time
}

func NewVendorService(
	vendorRepo repository.VendorRepository,
	orderRepo repository.OrderRepository,
	auditSvc AuditService,
	txManager repository.TransactionManager,
	publisher events.Publisher,
	log *zap.Logger,
) VendorService {
	return &vendorService{
		vendorRepo: vendorRepo,
		orderRepo:  orderRepo,
		auditSvc:   auditSvc,
		txManager:  txManager,
		publisher:  publisher,
		log:        log,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

func (s *vendorService) InviteVendor(ctx context.Context, actor model.Actor, req InviteVendorRequest) (*model.Vendor, string, error) {
	if err := authorize(actor, CapVendorInvite); err != nil {
		return nil, "", err
	}
	company := strings.TrimSpace(req.CompanyName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if company == "" || email == "" {
		return nil, "", apperror.Validation("company_name and email are required")
	}
	if req.Capacity <= 0 {
		return nil, "", apperror.Validation("capacity must be positive, got %d", req.Capacity)
	}

	code := strings.ReplaceAll(uuid.NewString(), "-", "")
	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash invite code: %w", err)
	}

	vendor := &model.Vendor{
		CompanyName:    company,
		Email:          email,
		Capacity:       req.Capacity,
		Status:         model.VendorStatusInvited,
		InviteCodeHash: string(hash),
	}
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := s.vendorRepo.FindByEmail(txCtx, email)
		if err == nil {
			return apperror.Conflict("vendor with email %s already exists", email)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("database error: %w", err)
		}

		if err := s.vendorRepo.Create(txCtx, vendor); err != nil {
			if isDuplicateKey(err) {
				return apperror.Wrap(err, apperror.KindConflict, "vendor with email %s already exists", email)
			}
			return fmt.Errorf("failed to create vendor: %w", err)
		}

		_, err = s.auditSvc.Record(txCtx, model.ActionVendorInviteSent, actor,
			model.EntityRef{Type: model.EntityVendor, ID: vendor.ID.String()},
			map[string]interface{}{
				"company_name": company,
				"email":        email,
				"capacity":     req.Capacity,
			})
		if err != nil {
			return err
		}

		repository.AfterCommit(txCtx, func() {
			s.publisher.Publish(context.WithoutCancel(ctx), events.New(events.VendorInvited, map[string]interface{}{
				"vendor_id":    vendor.ID.String(),
				"company_name": company,
				"email":        email,
			}))
		})
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	s.log.Info("vendor invited", zap.String("vendor_id", vendor.ID.String()), zap.String("email", email))
	return vendor, code, nil
}

func (s *vendorService) AcceptInvitation(ctx context.Context, actor model.Actor, vendorID uuid.UUID, inviteCode string) (*model.Vendor, error) {
	if err := authorize(actor, CapVendorAccept); err != nil {
		return nil, err
	}
	if actor.VendorID != nil && *actor.VendorID != vendorID {
		return nil, apperror.Forbidden("actor belongs to a different vendor")
	}

	var vendor *model.Vendor
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		vendor, err = s.vendorRepo.FindByIDForUpdate(txCtx, vendorID)
		if err != nil {
			return notFoundOr(err, "vendor %s not found", vendorID)
		}
		if vendor.Status == model.VendorStatusAccepted {
			return apperror.InvalidState("vendor %s already accepted its invitation", vendor.CompanyName)
		}
		if bcrypt.CompareHashAndPassword([]byte(vendor.InviteCodeHash), []byte(inviteCode)) != nil {
			return apperror.Forbidden("invalid invite code")
		}

		acceptedAt := s.now().UTC()
		vendor.Status = model.VendorStatusAccepted
		vendor.AcceptedAt = &acceptedAt
		if err := s.vendorRepo.Update(txCtx, vendor); err != nil {
			return fmt.Errorf("failed to update vendor: %w", err)
		}

		_, err = s.auditSvc.Record(txCtx, model.ActionInvitationAccepted, actor,
			model.EntityRef{Type: model.EntityVendor, ID: vendor.ID.String()},
			map[string]interface{}{
				"company_name": vendor.CompanyName,
				"status":       map[string]string{"from": model.VendorStatusInvited, "to": model.VendorStatusAccepted},
			})
		return err
	})
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *vendorService) ListVendors(ctx context.Context, status string) ([]VendorSummary, error) {
	vendors, err := s.vendorRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	open, err := s.orderRepo.OpenQuantityByVendor(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum open orders: %w", err)
	}

	res := make([]VendorSummary, 0, len(vendors))
	for _, v := range vendors {
		qty := open[v.ID]
		utilization := decimal.Zero
		if v.Capacity > 0 {
			utilization = decimal.NewFromInt(qty).Div(decimal.NewFromInt(int64(v.Capacity))).Round(4)
		}
		res = append(res, VendorSummary{Vendor: v, OpenQuantity: qty, Utilization: utilization})
	}
	return res, nil
}
