package service

import (
	"context"

	"pharmaops/internal/model"
)

// RequirementGenerator turns the rules of an order's product into its
// document checklist.
type RequirementGenerator interface {
	GenerateRequirements(ctx context.Context, order *model.Order) ([]model.Requirement, error)
}

type ruleRequirementGenerator struct {
	rules RuleService
}

func NewRequirementGenerator(rules RuleService) RequirementGenerator {
	return &ruleRequirementGenerator{rules: rules}
}

// GenerateRequirements returns one MISSING requirement per rule, in rule
// creation order. Zero rules yields an empty checklist.
func (g *ruleRequirementGenerator) GenerateRequirements(ctx context.Context, order *model.Order) ([]model.Requirement, error) {
	rules, err := g.rules.RulesForProduct(ctx, order.ProductID)
	if err != nil {
		return nil, err
	}

	reqs := make([]model.Requirement, 0, len(rules))
	for i, rule := range rules {
		reqs = append(reqs, model.Requirement{
			OrderID:     order.ID,
			DocType:     rule.DocType,
			Description: rule.Requirement,
			Category:    rule.Category,
			Status:      model.RequirementMissing,
			Position:    i,
		})
	}
	return reqs, nil
}
