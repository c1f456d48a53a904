package service

import (
	"errors"
	"testing"

	"pharmaops/internal/model"
	"pharmaops/pkg/apperror"
	"pharmaops/pkg/pagination"

	"github.com/google/uuid"
)

func TestCreateProductValidation(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.products.CreateProduct(env.ctx, adminActor, CreateProductRequest{SKU: " ", Name: "Blank"}); !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("blank sku: %v", err)
	}
	if _, err := env.products.CreateProduct(env.ctx, vendorActor(uuid.New()), CreateProductRequest{SKU: "V-1", Name: "Vendor"}); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("vendor create: %v", err)
	}
	if got := countAction(env.auditActions(t), model.ActionProductCreated); got != 0 {
		t.Fatalf("%d entries after rejected creates", got)
	}
}

func TestListProductsSearchAndPaging(t *testing.T) {
	env := newTestEnv(t)
	for _, sku := range []string{"AMX-250", "AMX-500", "IBU-200"} {
		env.mustProduct(t, sku)
	}

	all, total, err := env.products.ListProducts(env.ctx, pagination.New(1, 10), "")
	if err != nil || total != 3 || len(all) != 3 {
		t.Fatalf("list: %d %v", total, err)
	}

	found, total, err := env.products.ListProducts(env.ctx, pagination.New(1, 10), "amx")
	if err != nil || total != 2 || len(found) != 2 {
		t.Fatalf("search: %d %v", total, err)
	}

	page, total, _ := env.products.ListProducts(env.ctx, pagination.New(2, 2), "")
	if total != 3 || len(page) != 1 {
		t.Fatalf("second page: %d items of %d", len(page), total)
	}
}
