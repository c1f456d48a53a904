package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pharmaops/internal/model"
	"pharmaops/internal/repository"
	"pharmaops/pkg/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DefineRuleRequest struct {
	ProductID   string `json:"product_id" binding:"required"`
	DocType     string `json:"doc_type" binding:"required"`
	Requirement string `json:"requirement"`
	Category    string `json:"category" binding:"required"`
}

type UpdateRuleRequest struct {
	Requirement string `json:"requirement"`
	Category    string `json:"category" binding:"required"`
}

type RuleService interface {
	DefineRule(ctx context.Context, actor model.Actor, req DefineRuleRequest) (*model.ComplianceRule, error)
	UpdateRule(ctx context.Context, actor model.Actor, ruleID uuid.UUID, req UpdateRuleRequest) (*model.ComplianceRule, error)
	RulesForProduct(ctx context.Context, productID uuid.UUID) ([]model.ComplianceRule, error)
}

type ruleService struct {
	ruleRepo    repository.RuleRepository
	productRepo repository.ProductRepository
	auditSvc    AuditService
	txManager   repository.TransactionManager
	log         *zap.Logger
}

func NewRuleService(
	ruleRepo repository.RuleRepository,
	productRepo repository.ProductRepository,
	auditSvc AuditService,
	txManager repository.TransactionManager,
	log *zap.Logger,
) RuleService {
	return &ruleService{
		ruleRepo:    ruleRepo,
		productRepo: productRepo,
		auditSvc:    auditSvc,
		txManager:   txManager,
		log:         log,
	}
}

func (s *ruleService) DefineRule(ctx context.Context, actor model.Actor, req DefineRuleRequest) (*model.ComplianceRule, error) {
	if err := authorize(actor, CapRuleDefine); err != nil {
		return nil, err
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apperror.Validation("invalid product_id %q", req.ProductID)
	}
	docType := strings.TrimSpace(req.DocType)
	if docType == "" {
		return nil, apperror.Validation("doc_type is required")
	}
	if !model.ValidCategory(req.Category) {
		return nil, apperror.Validation("unknown category %q", req.Category)
	}

	rule := &model.ComplianceRule{
		ProductID:   productID,
		DocType:     docType,
		Requirement: req.Requirement,
		Category:    req.Category,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.productRepo.FindByID(txCtx, productID); err != nil {
			return notFoundOr(err, "product %s not found", productID)
		}

		_, err := s.ruleRepo.FindByProductAndDocType(txCtx, productID, docType)
		if err == nil {
			return apperror.Conflict("rule for %s on product %s already exists", docType, productID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("database error: %w", err)
		}

		if err := s.ruleRepo.Create(txCtx, rule); err != nil {
			if isDuplicateKey(err) {
				return apperror.Wrap(err, apperror.KindConflict, "rule for %s on product %s already exists", docType, productID)
			}
			return fmt.Errorf("failed to create rule: %w", err)
		}

		_, err = s.auditSvc.Record(txCtx, model.ActionComplianceRuleCreate, actor,
			model.EntityRef{Type: model.EntityComplianceRule, ID: rule.ID.String()},
			map[string]interface{}{
				"product_id":  productID.String(),
				"doc_type":    docType,
				"requirement": rule.Requirement,
				"category":    rule.Category,
			})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("compliance rule defined",
		zap.String("rule_id", rule.ID.String()),
		zap.String("doc_type", docType),
		zap.String("actor", actor.Name))
	return rule, nil
}

// UpdateRule changes the rule for future acceptances only. Requirements
// already generated keep their snapshot.
func (s *ruleService) UpdateRule(ctx context.Context, actor model.Actor, ruleID uuid.UUID, req UpdateRuleRequest) (*model.ComplianceRule, error) {
	if err := authorize(actor, CapRuleUpdate); err != nil {
		return nil, err
	}
	if !model.ValidCategory(req.Category) {
		return nil, apperror.Validation("unknown category %q", req.Category)
	}

	var rule *model.ComplianceRule
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		rule, err = s.ruleRepo.FindByIDForUpdate(txCtx, ruleID)
		if err != nil {
			return notFoundOr(err, "rule %s not found", ruleID)
		}

		before := map[string]interface{}{"requirement": rule.Requirement, "category": rule.Category}
		rule.Requirement = req.Requirement
		rule.Category = req.Category
		if err := s.ruleRepo.Update(txCtx, rule); err != nil {
			return fmt.Errorf("failed to update rule: %w", err)
		}

		_, err = s.auditSvc.Record(txCtx, model.ActionComplianceRuleUpdate, actor,
			model.EntityRef{Type: model.EntityComplianceRule, ID: rule.ID.String()},
			map[string]interface{}{
				"doc_type": rule.DocType,
				"before":   before,
				"after":    map[string]interface{}{"requirement": rule.Requirement, "category": rule.Category},
			})
		return err
	})
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *ruleService) RulesForProduct(ctx context.Context, productID uuid.UUID) ([]model.ComplianceRule, error) {
	rules, err := s.ruleRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	return rules, nil
}
