package service

import (
	"errors"
	"testing"

	"pharmaops/internal/model"
	"pharmaops/pkg/apperror"

	"github.com/google/uuid"
)

func TestDefineRule(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustProduct(t, "RULE-1")

	tests := []struct {
		name    string
		actor   model.Actor
		req     DefineRuleRequest
		wantErr error
	}{
		{
			name:  "valid master rule",
			actor: adminActor,
			req:   DefineRuleRequest{ProductID: product.ID.String(), DocType: "GMP Certificate", Category: model.CategoryMaster},
		},
		{
			name:    "duplicate doc type",
			actor:   adminActor,
			req:     DefineRuleRequest{ProductID: product.ID.String(), DocType: "GMP Certificate", Category: model.CategoryTransactional},
			wantErr: apperror.ErrConflict,
		},
		{
			name:    "unknown product",
			actor:   adminActor,
			req:     DefineRuleRequest{ProductID: uuid.NewString(), DocType: "CoA", Category: model.CategoryTransactional},
			wantErr: apperror.ErrNotFound,
		},
		{
			name:    "invalid category",
			actor:   adminActor,
			req:     DefineRuleRequest{ProductID: product.ID.String(), DocType: "CoA", Category: "OPTIONAL"},
			wantErr: apperror.ErrValidation,
		},
		{
			name:    "blank doc type",
			actor:   adminActor,
			req:     DefineRuleRequest{ProductID: product.ID.String(), DocType: "  ", Category: model.CategoryMaster},
			wantErr: apperror.ErrValidation,
		},
		{
			name:    "malformed product id",
			actor:   adminActor,
			req:     DefineRuleRequest{ProductID: "not-a-uuid", DocType: "CoA", Category: model.CategoryMaster},
			wantErr: apperror.ErrValidation,
		},
		{
			name:    "qa cannot define rules",
			actor:   qaActor,
			req:     DefineRuleRequest{ProductID: product.ID.String(), DocType: "CoA", Category: model.CategoryMaster},
			wantErr: apperror.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := env.rules.DefineRule(env.ctx, tt.actor, tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rule.ID == uuid.Nil || rule.ProductID != product.ID {
				t.Fatalf("rule not persisted: %+v", rule)
			}
		})
	}

	if got := countAction(env.auditActions(t), model.ActionComplianceRuleCreate); got != 1 {
		t.Fatalf("%d rule audit entries, want 1", got)
	}
}

func TestRulesForProductKeepsCreationOrder(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustProduct(t, "RULE-2")
	order := []string{"Stability Report", "CoA", "Batch Record"}
	for _, docType := range order {
		env.mustRule(t, product.ID, docType, model.CategoryTransactional)
	}

	rules, err := env.rules.RulesForProduct(env.ctx, product.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rules) != len(order) {
		t.Fatalf("got %d rules", len(rules))
	}
	for i, r := range rules {
		if r.DocType != order[i] {
			t.Fatalf("rule %d = %s, want %s", i, r.DocType, order[i])
		}
	}

	other, _ := env.rules.RulesForProduct(env.ctx, uuid.New())
	if len(other) != 0 {
		t.Fatal("unknown product must have no rules")
	}
}

func TestUpdateRuleIsNotRetroactive(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustProduct(t, "RULE-3")
	rule := env.mustRule(t, product.ID, "CoA", model.CategoryTransactional)
	vendor := env.mustVendor(t, "rules@vendor.test", 100)

	first := env.mustOrder(t, vendor.ID, product.ID, 10)
	if _, err := env.orders.AcceptOrder(env.ctx, vendorActor(vendor.ID), first.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	updated, err := env.rules.UpdateRule(env.ctx, adminActor, rule.ID, UpdateRuleRequest{
		Requirement: "CoA signed by the qualified person",
		Category:    model.CategoryMaster,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Category != model.CategoryMaster {
		t.Fatalf("category = %s", updated.Category)
	}

	accepted := env.getOrder(t, first.ID)
	if accepted.Requirements[0].Category != model.CategoryTransactional {
		t.Fatal("existing requirement changed after rule update")
	}

	second := env.mustOrder(t, vendor.ID, product.ID, 10)
	if _, err := env.orders.AcceptOrder(env.ctx, vendorActor(vendor.ID), second.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	fresh := env.getOrder(t, second.ID)
	if fresh.Requirements[0].Category != model.CategoryMaster || fresh.Requirements[0].Description != updated.Requirement {
		t.Fatalf("new requirement %+v does not follow the updated rule", fresh.Requirements[0])
	}

	if got := countAction(env.auditActions(t), model.ActionComplianceRuleUpdate); got != 1 {
		t.Fatalf("%d update entries, want 1", got)
	}

	if _, err := env.rules.UpdateRule(env.ctx, adminActor, uuid.New(), UpdateRuleRequest{Category: model.CategoryMaster}); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("unknown rule: %v", err)
	}
}
