package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pharmaops/internal/model"
	"pharmaops/internal/repository"
	"pharmaops/pkg/apperror"
	"pharmaops/pkg/pagination"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateProductRequest struct {
	SKU  string `json:"sku" binding:"required"`
	Name string `json:"name" binding:"required"`
}

type ProductService interface {
	CreateProduct(ctx context.Context, actor model.Actor, req CreateProductRequest) (*model.Product, error)
	ListProducts(ctx context.Context, page pagination.Params, search string) ([]model.Product, int64, error)
}

type productService struct {
	productRepo repository.ProductRepository
	auditSvc    AuditService
	txManager   repository.TransactionManager
	log         *zap.Logger
}

func NewProductService(
	productRepo repository.ProductRepository,
	auditSvc AuditService,
	txManager repository.TransactionManager,
	log *zap.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		auditSvc:    auditSvc,
		txManager:   txManager,
		log:         log,
	}
}

func (s *productService) CreateProduct(ctx context.Context, actor model.Actor, req CreateProductRequest) (*model.Product, error) {
	if err := authorize(actor, CapProductCreate); err != nil {
		return nil, err
	}
	sku := strings.TrimSpace(req.SKU)
	name := strings.TrimSpace(req.Name)
	if sku == "" || name == "" {
		return nil, apperror.Validation("sku and name are required")
	}

	product := &model.Product{SKU: sku, Name: name}
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := s.productRepo.FindBySKU(txCtx, sku)
		if err == nil {
			return apperror.Conflict("product with sku %s already exists", sku)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("database error: %w", err)
		}

		if err := s.productRepo.Create(txCtx, product); err != nil {
			if isDuplicateKey(err) {
				return apperror.Wrap(err, apperror.KindConflict, "product with sku %s already exists", sku)
			}
			return fmt.Errorf("failed to create product: %w", err)
		}

		_, err = s.auditSvc.Record(txCtx, model.ActionProductCreated, actor,
			model.EntityRef{Type: model.EntityProduct, ID: product.ID.String()},
			map[string]interface{}{"sku": sku, "name": name})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("product created", zap.String("product_id", product.ID.String()), zap.String("sku", sku))
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, page pagination.Params, search string) ([]model.Product, int64, error) {
	products, total, err := s.productRepo.List(ctx, page.Offset, page.Limit, search)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}
