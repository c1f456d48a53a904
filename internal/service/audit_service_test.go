package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"pharmaops/internal/audit"
	"pharmaops/internal/model"
	"pharmaops/internal/repository"
	"pharmaops/pkg/apperror"
	"pharmaops/pkg/pagination"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

func TestRecordBuildsGaplessChain(t *testing.T) {
	env := newTestEnv(t)

	var prev *model.AuditLog
	for i := 0; i < 5; i++ {
		entry, err := env.audit.Record(env.ctx, model.ActionProductCreated, adminActor,
			model.EntityRef{Type: model.EntityProduct, ID: fmt.Sprintf("p-%d", i)},
			map[string]interface{}{"i": i})
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		if entry.ID != int64(i+1) {
			t.Fatalf("entry id = %d, want %d", entry.ID, i+1)
		}
		if prev == nil && entry.PreviousHash != audit.GenesisHash {
			t.Fatal("first entry must link to the genesis hash")
		}
		if prev != nil && entry.PreviousHash != prev.EntryHash {
			t.Fatalf("entry %d does not link to its predecessor", entry.ID)
		}
		if entry.Timestamp.Location() != time.UTC || entry.Timestamp.Nanosecond()%1000 != 0 {
			t.Fatalf("timestamp not normalized: %v", entry.Timestamp)
		}
		prev = entry
	}

	report, err := env.audit.VerifyChain(env.ctx, auditorActor)
	if err != nil || !report.OK || report.Checked != 5 || report.LastHash != prev.EntryHash {
		t.Fatalf("report %+v, %v", report, err)
	}
}

func TestConcurrentRecordsKeepChainVerifiable(t *testing.T) {
	env := newTestEnv(t)
	const writers = 8
	const perWriter = 10

	var wg sync.WaitGroup
	errs := make(chan error, writers*perWriter)
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_, err := env.audit.Record(env.ctx, model.ActionDocumentUploaded, qaActor,
					model.EntityRef{Type: model.EntityDocument, ID: fmt.Sprintf("w%d-%d", w, i)},
					map[string]interface{}{"writer": w, "seq": i})
				errs <- err
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	report, err := env.audit.VerifyOrError(env.ctx, auditorActor)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if report.Checked != writers*perWriter || report.LastID != writers*perWriter {
		t.Fatalf("report %+v", report)
	}
}

func TestTamperedChangesDetected(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 6; i++ {
		env.mustProduct(t, "TMP-"+strconv.Itoa(i))
	}

	if err := env.db.Exec(`UPDATE audit_logs SET changes = ? WHERE id = ?`, `{"name":"Forged","sku":"TMP-3"}`, 4).Error; err != nil {
		t.Fatalf("tamper: %v", err)
	}

	report, err := env.audit.VerifyChain(env.ctx, auditorActor)
	if err != nil {
		t.Fatal(err)
	}
	if report.OK || report.FirstInvalidID != 4 || report.Checked != 3 {
		t.Fatalf("report %+v", report)
	}

	_, err = env.audit.VerifyOrError(env.ctx, auditorActor)
	if !errors.Is(err, apperror.ErrIntegrity) {
		t.Fatalf("error = %v, want integrity", err)
	}
}

func TestDeletedEntryDetected(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 4; i++ {
		env.mustProduct(t, "DEL-"+strconv.Itoa(i))
	}
	if err := env.db.Exec(`DELETE FROM audit_logs WHERE id = ?`, 2).Error; err != nil {
		t.Fatal(err)
	}
	report, err := env.audit.VerifyChain(env.ctx, auditorActor)
	if err != nil {
		t.Fatal(err)
	}
	if report.OK || report.FirstInvalidID != 3 {
		t.Fatalf("report %+v", report)
	}
}

func TestFailedOperationLeavesNoAuditEntry(t *testing.T) {
	env := newTestEnv(t)
	env.mustProduct(t, "DUP-1")
	before := len(env.auditActions(t))

	_, err := env.products.CreateProduct(env.ctx, adminActor, CreateProductRequest{SKU: "DUP-1", Name: "Duplicate"})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("error = %v, want conflict", err)
	}
	if after := len(env.auditActions(t)); after != before {
		t.Fatalf("audit entries %d -> %d after a failed create", before, after)
	}
}

func TestAuditFailureRollsBackMutation(t *testing.T) {
	env := newTestEnv(t)

	// Changes that cannot be serialized make Record fail inside the transaction.
	txManager := repository.NewTransactionManager(env.db)
	productRepo := repository.NewProductRepository(env.db)
	err := txManager.RunInTx(env.ctx, func(txCtx context.Context) error {
		if err := productRepo.Create(txCtx, &model.Product{SKU: "ROLLBACK-1", Name: "Rollback"}); err != nil {
			return err
		}
		_, err := env.audit.Record(txCtx, model.ActionProductCreated, adminActor,
			model.EntityRef{Type: model.EntityProduct, ID: "x"},
			map[string]interface{}{"bad": make(chan int)})
		return err
	})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("error = %v, want validation", err)
	}

	var count int64
	env.db.Model(&model.Product{}).Where("sku = ?", "ROLLBACK-1").Count(&count)
	if count != 0 {
		t.Fatal("mutation committed without its audit entry")
	}
}

func TestQueryFilters(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustProduct(t, "QRY-1")
	env.mustRule(t, product.ID, "CoA", model.CategoryMaster)
	vendor := env.mustVendor(t, "query@vendor.test", 10)

	page := pagination.New(1, 50)
	all, total, err := env.audit.Query(env.ctx, auditorActor, repository.AuditFilter{}, page)
	if err != nil || total != 4 || len(all) != 4 {
		t.Fatalf("all: %d, %v", total, err)
	}
	for i := 1; i < len(all); i++ {
		if all[i].ID < all[i-1].ID {
			t.Fatal("query must be ascending")
		}
	}

	byRole, total, _ := env.audit.Query(env.ctx, auditorActor, repository.AuditFilter{Role: model.RoleVendor}, page)
	if total != 1 || byRole[0].Action != model.ActionInvitationAccepted {
		t.Fatalf("role filter: %+v", byRole)
	}

	byText, total, _ := env.audit.Query(env.ctx, adminActor, repository.AuditFilter{Text: "compliance_rule"}, page)
	if total != 1 || byText[0].Action != model.ActionComplianceRuleCreate {
		t.Fatalf("text filter: %+v", byText)
	}

	byEntity, total, _ := env.audit.Query(env.ctx, auditorActor, repository.AuditFilter{EntityType: model.EntityVendor, EntityID: vendor.ID.String()}, page)
	if total != 2 || len(byEntity) != 2 {
		t.Fatalf("entity filter: %d", total)
	}

	byActor, total, _ := env.audit.Query(env.ctx, auditorActor, repository.AuditFilter{Text: "ALICE"}, page)
	if total != 3 || len(byActor) != 3 {
		t.Fatalf("case-insensitive actor search: %d", total)
	}

	paged, total, _ := env.audit.Query(env.ctx, auditorActor, repository.AuditFilter{}, pagination.New(2, 3))
	if total != 4 || len(paged) != 1 || paged[0].ID != 4 {
		t.Fatalf("second page: %+v", paged)
	}

	if _, _, err := env.audit.Query(env.ctx, qaActor, repository.AuditFilter{}, page); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("QA query error = %v, want forbidden", err)
	}
}

func TestExportCSV(t *testing.T) {
	env := newTestEnv(t)
	env.mustProduct(t, "CSV-1")
	env.mustProduct(t, "CSV-2")

	var buf bytes.Buffer
	if err := env.audit.ExportReport(env.ctx, auditorActor, FormatCSV, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	for i, h := range ReportHeaders {
		if rows[0][i] != h {
			t.Fatalf("header %v", rows[0])
		}
	}
	if rows[1][0] != "1" || rows[1][4] != model.ActionProductCreated || len(rows[2][6]) != 64 {
		t.Fatalf("row %v", rows[1])
	}
	if rows[1][2] != adminActor.Name || rows[1][3] != model.RoleAdmin {
		t.Fatalf("actor columns %v", rows[1])
	}
}

func TestExportXLSX(t *testing.T) {
	env := newTestEnv(t)
	env.mustProduct(t, "XLS-1")

	var buf bytes.Buffer
	if err := env.audit.ExportReport(env.ctx, auditorActor, FormatXLSX, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Audit Trail")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0][0] != "ID" || rows[0][6] != "IntegrityHash" {
		t.Fatalf("rows %v", rows)
	}
	if rows[1][4] != model.ActionProductCreated {
		t.Fatalf("data row %v", rows[1])
	}
}

func TestExportRejectsUnknownFormatAndRoles(t *testing.T) {
	env := newTestEnv(t)
	var buf bytes.Buffer
	if err := env.audit.ExportReport(env.ctx, auditorActor, "pdf", &buf); !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("pdf export: %v", err)
	}
	if err := env.audit.ExportReport(env.ctx, adminActor, FormatCSV, &buf); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("admin export: %v", err)
	}
	if _, err := env.audit.VerifyChain(env.ctx, vendorActor(uuid.New())); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("vendor verify: %v", err)
	}
}
