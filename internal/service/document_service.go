package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pharmaops/internal/events"
	"pharmaops/internal/model"
	"pharmaops/internal/repository"
	"pharmaops/pkg/apperror"
	"pharmaops/pkg/pagination"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectVerifier confirms a content reference exists in object storage and
// reports its size.
type ObjectVerifier interface {
	Stat(ctx context.Context, contentRef string) (int64, error)
}

// FileMetadata describes an upload. The bytes themselves live in object
// storage under ContentRef.
type FileMetadata struct {
	FileName   string     `json:"file_name" binding:"required"`
	ContentRef string     `json:"content_ref"`
	ExpiryDate *time.Time `json:"expiry_date"`
}

type UploadDocumentRequest struct {
	DocType string `json:"doc_type" binding:"required"`
	FileMetadata
}

type ReviewDocumentRequest struct {
	Decision string `json:"decision" binding:"required"`
	Comments string `json:"comments"`
}

type UploadMasterRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	DocType   string `json:"doc_type" binding:"required"`
	FileMetadata
}

type DocumentService interface {
	UploadDocument(ctx context.Context, actor model.Actor, orderID uuid.UUID, req UploadDocumentRequest) (*model.Document, error)
	ReviewDocument(ctx context.Context, actor model.Actor, documentID uuid.UUID, req ReviewDocumentRequest) (*model.Document, error)
	ListPendingDocuments(ctx context.Context, page pagination.Params) ([]model.Document, int64, error)
	ListOrderDocuments(ctx context.Context, actor model.Actor, orderID uuid.UUID) ([]model.Document, error)
	UploadMasterDocument(ctx context.Context, actor model.Actor, req UploadMasterRequest) (*model.MasterDocument, error)
	ListMasterDocuments(ctx context.Context, productID *uuid.UUID) ([]model.MasterDocument, error)
}

type documentService struct {
	documentRepo    repository.DocumentRepository
	requirementRepo repository.RequirementRepository
	orderRepo       repository.OrderRepository
	productRepo     repository.ProductRepository
	orders          OrderService
	auditSvc        AuditService
	txManager       repository.TransactionManager
	verifier        ObjectVerifier
	publisher       events.Publisher
	log             *zap.Logger
	now             func() time.Time
}

// NewDocumentService wires the review workflow. verifier may be nil, in
// which case content references are accepted unchecked.
func NewDocumentService(
	documentRepo repository.DocumentRepository,
	requirementRepo repository.RequirementRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	orders OrderService,
	auditSvc AuditService,
	txManager repository.TransactionManager,
	verifier ObjectVerifier,
	publisher events.Publisher,
	log *zap.Logger,
) DocumentService {
	return &documentService{
		documentRepo:    documentRepo,
		requirementRepo: requirementRepo,
		orderRepo:       orderRepo,
		productRepo:     productRepo,
		orders:          orders,
		auditSvc:        auditSvc,
		txManager:       txManager,
		verifier:        verifier,
		publisher:       publisher,
		log:             log,
		now:             time.Now,
	}
}

// statContent runs before any transaction is opened.
func (s *documentService) statContent(ctx context.Context, meta FileMetadata) (int64, error) {
	if s.verifier == nil || meta.ContentRef == "" {
		return 0, nil
	}
	return s.verifier.Stat(ctx, meta.ContentRef)
}

func (s *documentService) UploadDocument(ctx context.Context, actor model.Actor, orderID uuid.UUID, req UploadDocumentRequest) (*model.Document, error) {
	if err := authorize(actor, CapDocumentUpload); err != nil {
		return nil, err
	}
	docType := strings.TrimSpace(req.DocType)
	if docType == "" || strings.TrimSpace(req.FileName) == "" {
		return nil, apperror.Validation("doc_type and file_name are required")
	}
	size, err := s.statContent(ctx, req.FileMetadata)
	if err != nil {
		return nil, err
	}

	var doc *model.Document
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		requirement, err := s.requirementRepo.FindByOrderAndDocTypeForUpdate(txCtx, orderID, docType)
		if err != nil {
			return notFoundOr(err, "order %s has no %s requirement", orderID, docType)
		}
		order, err := s.orderRepo.FindByIDForUpdate(txCtx, orderID)
		if err != nil {
			return notFoundOr(err, "order %s not found", orderID)
		}
		if !ownsOrder(actor, order) {
			return apperror.Forbidden("order %s is not assigned to this vendor", order.OrderNumber)
		}
		if order.Status != model.OrderStatusDocsPending {
			return apperror.InvalidState("order %s does not accept documents in status %s", order.OrderNumber, order.Status)
		}
		switch requirement.Status {
		case model.RequirementApproved:
			return apperror.InvalidState("%s for order %s is already approved", docType, order.OrderNumber)
		case model.RequirementPendingReview:
			return apperror.InvalidState("%s for order %s is awaiting review", docType, order.OrderNumber)
		}

		previous := requirement.Status
		doc = &model.Document{
			OrderID:       order.ID,
			RequirementID: requirement.ID,
			DocType:       docType,
			FileName:      req.FileName,
			ContentRef:    req.ContentRef,
			FileSize:      size,
			Status:        model.RequirementPendingReview,
			UploadedBy:    actor.Name,
		}
		if err := s.documentRepo.Create(txCtx, doc); err != nil {
			return fmt.Errorf("failed to create document: %w", err)
		}

		requirement.Status = model.RequirementPendingReview
		requirement.DocumentID = &doc.ID
		requirement.ExpiryDate = req.ExpiryDate
		if err := s.requirementRepo.Update(txCtx, requirement); err != nil {
			return fmt.Errorf("failed to update requirement: %w", err)
		}

		changes := map[string]interface{}{
			"order_id":     order.ID.String(),
			"order_number": order.OrderNumber,
			"doc_type":     docType,
			"file_name":    doc.FileName,
			"content_ref":  doc.ContentRef,
			"requirement":  map[string]string{"from": previous, "to": model.RequirementPendingReview},
		}
		if req.ExpiryDate != nil {
			changes["expiry_date"] = req.ExpiryDate.UTC().Format("2006-01-02")
		}
		_, err = s.auditSvc.Record(txCtx, model.ActionDocumentUploaded, actor,
			model.EntityRef{Type: model.EntityDocument, ID: doc.ID.String()}, changes)
		if err != nil {
			return err
		}

		repository.AfterCommit(txCtx, func() {
			s.publisher.Publish(context.WithoutCancel(ctx), events.New(events.DocumentUploaded, map[string]interface{}{
				"document_id":  doc.ID.String(),
				"order_id":     order.ID.String(),
				"order_number": order.OrderNumber,
				"doc_type":     docType,
			}))
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("document uploaded",
		zap.String("document_id", doc.ID.String()),
		zap.String("doc_type", doc.DocType),
		zap.String("actor", actor.Name))
	return doc, nil
}

func (s *documentService) ReviewDocument(ctx context.Context, actor model.Actor, documentID uuid.UUID, req ReviewDocumentRequest) (*model.Document, error) {
	if err := authorize(actor, CapDocumentReview); err != nil {
		return nil, err
	}
	decision := strings.ToUpper(strings.TrimSpace(req.Decision))
	comments := strings.TrimSpace(req.Comments)
	switch decision {
	case model.DecisionApprove:
	case model.DecisionReject:
		if comments == "" {
			return nil, apperror.Validation("comments are required when rejecting a document")
		}
	default:
		return nil, apperror.Validation("unknown decision %q", req.Decision)
	}

	var doc *model.Document
	var ready bool
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		doc, err = s.documentRepo.FindByID(txCtx, documentID)
		if err != nil {
			return notFoundOr(err, "document %s not found", documentID)
		}
		requirement, err := s.requirementRepo.FindByIDForUpdate(txCtx, doc.RequirementID)
		if err != nil {
			return notFoundOr(err, "requirement for document %s not found", documentID)
		}
		if requirement.Status != model.RequirementPendingReview {
			return apperror.InvalidState("%s is %s, not awaiting review", requirement.DocType, requirement.Status)
		}
		if requirement.DocumentID == nil || *requirement.DocumentID != doc.ID {
			return apperror.InvalidState("document %s is not the current upload for %s", documentID, requirement.DocType)
		}
		order, err := s.orderRepo.FindByIDForUpdate(txCtx, doc.OrderID)
		if err != nil {
			return notFoundOr(err, "order %s not found", doc.OrderID)
		}

		status, action, eventType := model.RequirementApproved, model.ActionDocumentApproved, events.DocumentApproved
		if decision == model.DecisionReject {
			status, action, eventType = model.RequirementRejected, model.ActionDocumentRejected, events.DocumentRejected
		}

		reviewedAt := s.now().UTC()
		doc.Status = status
		doc.ReviewerName = actor.Name
		doc.ReviewerRole = actor.Role
		doc.Comments = comments
		doc.ReviewedAt = &reviewedAt
		if err := s.documentRepo.Update(txCtx, doc); err != nil {
			return fmt.Errorf("failed to update document: %w", err)
		}
		requirement.Status = status
		if err := s.requirementRepo.Update(txCtx, requirement); err != nil {
			return fmt.Errorf("failed to update requirement: %w", err)
		}

		_, err = s.auditSvc.Record(txCtx, action, actor,
			model.EntityRef{Type: model.EntityDocument, ID: doc.ID.String()},
			map[string]interface{}{
				"order_id":     order.ID.String(),
				"order_number": order.OrderNumber,
				"doc_type":     doc.DocType,
				"decision":     decision,
				"comments":     comments,
				"requirement":  map[string]string{"from": model.RequirementPendingReview, "to": status},
			})
		if err != nil {
			return err
		}

		repository.AfterCommit(txCtx, func() {
			s.publisher.Publish(context.WithoutCancel(ctx), events.New(eventType, map[string]interface{}{
				"document_id":  doc.ID.String(),
				"order_id":     order.ID.String(),
				"order_number": order.OrderNumber,
				"doc_type":     doc.DocType,
				"comments":     comments,
			}))
		})

		if decision == model.DecisionApprove {
			ready, err = s.orders.RecomputeReadiness(txCtx, actor, order.ID)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("document reviewed",
		zap.String("document_id", doc.ID.String()),
		zap.String("decision", decision),
		zap.Bool("order_ready", ready),
		zap.String("reviewer", actor.Name))
	return doc, nil
}

func (s *documentService) ListPendingDocuments(ctx context.Context, page pagination.Params) ([]model.Document, int64, error) {
	docs, total, err := s.documentRepo.ListPending(ctx, page.Offset, page.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list pending documents: %w", err)
	}
	return docs, total, nil
}

func (s *documentService) ListOrderDocuments(ctx context.Context, actor model.Actor, orderID uuid.UUID) ([]model.Document, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, notFoundOr(err, "order %s not found", orderID)
	}
	if !ownsOrder(actor, order) {
		return nil, apperror.Forbidden("order %s is not assigned to this vendor", order.OrderNumber)
	}
	docs, err := s.documentRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

func (s *documentService) UploadMasterDocument(ctx context.Context, actor model.Actor, req UploadMasterRequest) (*model.MasterDocument, error) {
	if err := authorize(actor, CapMasterUpload); err != nil {
		return nil, err
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apperror.Validation("invalid product_id %q", req.ProductID)
	}
	if strings.TrimSpace(req.DocType) == "" || strings.TrimSpace(req.FileName) == "" {
		return nil, apperror.Validation("doc_type and file_name are required")
	}
	size, err := s.statContent(ctx, req.FileMetadata)
	if err != nil {
		return nil, err
	}

	doc := &model.MasterDocument{
		ProductID:  productID,
		DocType:    strings.TrimSpace(req.DocType),
		FileName:   req.FileName,
		ContentRef: req.ContentRef,
		FileSize:   size,
		UploadedBy: actor.Name,
	}
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.productRepo.FindByID(txCtx, productID); err != nil {
			return notFoundOr(err, "product %s not found", productID)
		}
		if err := s.documentRepo.CreateMaster(txCtx, doc); err != nil {
			return fmt.Errorf("failed to create master document: %w", err)
		}
		_, err := s.auditSvc.Record(txCtx, model.ActionMasterSOPUploaded, actor,
			model.EntityRef{Type: model.EntityMasterDocument, ID: doc.ID.String()},
			map[string]interface{}{
				"product_id":  productID.String(),
				"doc_type":    doc.DocType,
				"file_name":   doc.FileName,
				"content_ref": doc.ContentRef,
			})
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) ListMasterDocuments(ctx context.Context, productID *uuid.UUID) ([]model.MasterDocument, error) {
	docs, err := s.documentRepo.ListMaster(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list master documents: %w", err)
	}
	return docs, nil
}
