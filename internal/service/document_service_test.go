package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pharmaops/internal/model"
	"pharmaops/pkg/apperror"
	"pharmaops/pkg/pagination"

	"github.com/google/uuid"
)

// docsPendingOrder returns an accepted order whose product requires each docType.
func docsPendingOrder(t *testing.T, env *testEnv, sku string, docTypes ...string) (*model.Vendor, *model.Order) {
	t.Helper()
	product := env.mustProduct(t, sku)
	for _, dt := range docTypes {
		env.mustRule(t, product.ID, dt, model.CategoryTransactional)
	}
	vendor := env.mustVendor(t, sku+"@vendor.test", 1000)
	order := env.mustOrder(t, vendor.ID, product.ID, 10)
	if _, err := env.orders.AcceptOrder(env.ctx, vendorActor(vendor.ID), order.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	return vendor, order
}

func TestReviewTwiceFails(t *testing.T) {
	env := newTestEnv(t)
	vendor, order := docsPendingOrder(t, env, "DBL-1", "CoA", "SDS")
	doc := env.mustUpload(t, vendor, order.ID, "CoA")

	env.mustReview(t, doc.ID, model.DecisionApprove, "")
	_, err := env.documents.ReviewDocument(env.ctx, qaActor, doc.ID, ReviewDocumentRequest{Decision: model.DecisionApprove})
	if !errors.Is(err, apperror.ErrInvalidState) {
		t.Fatalf("second approve error = %v, want invalid state", err)
	}
	if n := countAction(env.auditActions(t), model.ActionDocumentApproved); n != 1 {
		t.Fatalf("DOCUMENT_APPROVED recorded %d times", n)
	}
}

func TestUploadApprovedRequirementFails(t *testing.T) {
	env := newTestEnv(t)
	vendor, order := docsPendingOrder(t, env, "APR-1", "CoA", "SDS")
	doc := env.mustUpload(t, vendor, order.ID, "CoA")
	env.mustReview(t, doc.ID, model.DecisionApprove, "")

	_, err := env.documents.UploadDocument(env.ctx, vendorActor(vendor.ID), order.ID, UploadDocumentRequest{
		DocType:      "CoA",
		FileMetadata: FileMetadata{FileName: "CoA-v2.pdf"},
	})
	if !errors.Is(err, apperror.ErrInvalidState) {
		t.Fatalf("error = %v, want invalid state", err)
	}
}

func TestUploadWhilePendingReviewFails(t *testing.T) {
	env := newTestEnv(t)
	vendor, order := docsPendingOrder(t, env, "PND-1", "CoA")
	env.mustUpload(t, vendor, order.ID, "CoA")

	_, err := env.documents.UploadDocument(env.ctx, vendorActor(vendor.ID), order.ID, UploadDocumentRequest{
		DocType:      "CoA",
		FileMetadata: FileMetadata{FileName: "again.pdf"},
	})
	if !errors.Is(err, apperror.ErrInvalidState) {
		t.Fatalf("error = %v, want invalid state", err)
	}
}

func TestUploadUnknownRequirement(t *testing.T) {
	env := newTestEnv(t)
	vendor, order := docsPendingOrder(t, env, "UNK-1", "CoA")

	for name, orderID := range map[string]uuid.UUID{"unknown doc type": order.ID, "unknown order": uuid.New()} {
		t.Run(name, func(t *testing.T) {
			docType := "CoA"
			if orderID == order.ID {
				docType = "Stability"
			}
			_, err := env.documents.UploadDocument(env.ctx, vendorActor(vendor.ID), orderID, UploadDocumentRequest{
				DocType:      docType,
				FileMetadata: FileMetadata{FileName: "x.pdf"},
			})
			if !errors.Is(err, apperror.ErrNotFound) {
				t.Fatalf("error = %v, want not found", err)
			}
		})
	}
}

func TestRejectThenReupload(t *testing.T) {
	env := newTestEnv(t)
	vendor, order := docsPendingOrder(t, env, "REJ-1", "CoA")
	first := env.mustUpload(t, vendor, order.ID, "CoA")

	if _, err := env.documents.ReviewDocument(env.ctx, qaActor, first.ID, ReviewDocumentRequest{Decision: model.DecisionReject}); !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("reject without comments: %v", err)
	}

	rejected := env.mustReview(t, first.ID, model.DecisionReject, "batch number illegible")
	if rejected.Status != model.RequirementRejected || rejected.ReviewerName != qaActor.Name || rejected.ReviewedAt == nil {
		t.Fatalf("rejected document %+v", rejected)
	}
	if got := requirementStatus(t, env.getOrder(t, order.ID), "CoA"); got != model.RequirementRejected {
		t.Fatalf("requirement after reject = %s", got)
	}

	second := env.mustUpload(t, vendor, order.ID, "CoA")
	if second.ID == first.ID {
		t.Fatal("re-upload must create a new document")
	}

	// The rejected document is history and can no longer be reviewed.
	if _, err := env.documents.ReviewDocument(env.ctx, qaActor, first.ID, ReviewDocumentRequest{Decision: model.DecisionApprove}); !errors.Is(err, apperror.ErrInvalidState) {
		t.Fatalf("review of superseded document: %v", err)
	}

	env.mustReview(t, second.ID, model.DecisionApprove, "")
	if got := env.getOrder(t, order.ID).Status; got != model.OrderStatusReadyToShip {
		t.Fatalf("order status = %s", got)
	}

	docs, err := env.documents.ListOrderDocuments(env.ctx, vendorActor(vendor.ID), order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 || docs[0].Status != model.RequirementRejected || docs[1].Status != model.RequirementApproved {
		t.Fatalf("document history %+v", docs)
	}
}

func TestUploadRequiresDocsPending(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustProduct(t, "NDP-1")
	env.mustRule(t, product.ID, "CoA", model.CategoryTransactional)
	vendor := env.mustVendor(t, "ndp@vendor.test", 10)
	order := env.mustOrder(t, vendor.ID, product.ID, 1)

	// REQUESTED orders have no checklist yet.
	_, err := env.documents.UploadDocument(env.ctx, vendorActor(vendor.ID), order.ID, UploadDocumentRequest{
		DocType:      "CoA",
		FileMetadata: FileMetadata{FileName: "coa.pdf"},
	})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}

	if _, err := env.orders.AcceptOrder(env.ctx, vendorActor(vendor.ID), order.ID); err != nil {
		t.Fatal(err)
	}
	doc := env.mustUpload(t, vendor, order.ID, "CoA")
	env.mustReview(t, doc.ID, model.DecisionApprove, "")
	if _, err := env.orders.CreateShipment(env.ctx, vendorActor(vendor.ID), order.ID, CreateShipmentRequest{TrackingNumber: "T1", Courier: "FedEx"}); err != nil {
		t.Fatal(err)
	}

	// Requirement exists but the order has shipped.
	_, err = env.documents.UploadDocument(env.ctx, vendorActor(vendor.ID), order.ID, UploadDocumentRequest{
		DocType:      "CoA",
		FileMetadata: FileMetadata{FileName: "late.pdf"},
	})
	if !errors.Is(err, apperror.ErrInvalidState) {
		t.Fatalf("error = %v, want invalid state", err)
	}
}

func TestReviewRequiresQA(t *testing.T) {
	env := newTestEnv(t)
	vendor, order := docsPendingOrder(t, env, "QAO-1", "CoA")
	doc := env.mustUpload(t, vendor, order.ID, "CoA")

	for _, actor := range []model.Actor{adminActor, vendorActor(vendor.ID), auditorActor} {
		_, err := env.documents.ReviewDocument(env.ctx, actor, doc.ID, ReviewDocumentRequest{Decision: model.DecisionApprove})
		if !errors.Is(err, apperror.ErrForbidden) {
			t.Fatalf("%s review error = %v, want forbidden", actor.Role, err)
		}
	}
	_, err := env.documents.ReviewDocument(env.ctx, qaActor, uuid.New(), ReviewDocumentRequest{Decision: model.DecisionApprove})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("unknown document error = %v", err)
	}
}

func TestUploadStoresExpiryDate(t *testing.T) {
	env := newTestEnv(t)
	vendor, order := docsPendingOrder(t, env, "EXP-1", "GMP")
	expiry := time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)

	_, err := env.documents.UploadDocument(env.ctx, vendorActor(vendor.ID), order.ID, UploadDocumentRequest{
		DocType:      "GMP",
		FileMetadata: FileMetadata{FileName: "gmp.pdf", ExpiryDate: &expiry},
	})
	if err != nil {
		t.Fatal(err)
	}
	req := env.getOrder(t, order.ID).Requirements[0]
	if req.ExpiryDate == nil || !req.ExpiryDate.Equal(expiry) {
		t.Fatalf("expiry = %v", req.ExpiryDate)
	}
}

func TestListPendingDocumentsOldestFirst(t *testing.T) {
	env := newTestEnv(t)
	vendor, order := docsPendingOrder(t, env, "QUE-1", "CoA", "SDS")
	first := env.mustUpload(t, vendor, order.ID, "CoA")
	env.mustUpload(t, vendor, order.ID, "SDS")

	docs, total, err := env.documents.ListPendingDocuments(env.ctx, pagination.New(1, 10))
	if err != nil || total != 2 {
		t.Fatalf("pending: %d, %v", total, err)
	}
	if docs[0].ID != first.ID {
		t.Fatal("queue must be oldest first")
	}
}

type fakeVerifier struct {
	sizes map[string]int64
	calls int
}

func (f *fakeVerifier) Stat(_ context.Context, ref string) (int64, error) {
	f.calls++
	size, ok := f.sizes[ref]
	if !ok {
		return 0, apperror.Validation("content reference %q does not exist", ref)
	}
	return size, nil
}

func TestUploadVerifiesContentReference(t *testing.T) {
	verifier := &fakeVerifier{sizes: map[string]int64{"bucket/coa.pdf": 2048}}
	env := newTestEnvWithVerifier(t, verifier)
	vendor, order := docsPendingOrder(t, env, "VER-1", "CoA")

	_, err := env.documents.UploadDocument(env.ctx, vendorActor(vendor.ID), order.ID, UploadDocumentRequest{
		DocType:      "CoA",
		FileMetadata: FileMetadata{FileName: "coa.pdf", ContentRef: "bucket/missing.pdf"},
	})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("error = %v, want validation", err)
	}
	if got := requirementStatus(t, env.getOrder(t, order.ID), "CoA"); got != model.RequirementMissing {
		t.Fatalf("requirement changed to %s", got)
	}

	doc, err := env.documents.UploadDocument(env.ctx, vendorActor(vendor.ID), order.ID, UploadDocumentRequest{
		DocType:      "CoA",
		FileMetadata: FileMetadata{FileName: "coa.pdf", ContentRef: "bucket/coa.pdf"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if doc.FileSize != 2048 || verifier.calls != 2 {
		t.Fatalf("size = %d, calls = %d", doc.FileSize, verifier.calls)
	}
}

func TestMasterDocumentLibrary(t *testing.T) {
	env := newTestEnv(t)
	a := env.mustProduct(t, "MST-A")
	b := env.mustProduct(t, "MST-B")

	if _, err := env.documents.UploadMasterDocument(env.ctx, qaActor, UploadMasterRequest{ProductID: a.ID.String(), DocType: "SOP", FileMetadata: FileMetadata{FileName: "sop.pdf"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := env.documents.UploadMasterDocument(env.ctx, adminActor, UploadMasterRequest{ProductID: b.ID.String(), DocType: "DMF", FileMetadata: FileMetadata{FileName: "dmf.pdf"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := env.documents.UploadMasterDocument(env.ctx, adminActor, UploadMasterRequest{ProductID: uuid.NewString(), DocType: "DMF", FileMetadata: FileMetadata{FileName: "x.pdf"}}); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("unknown product: %v", err)
	}
	if _, err := env.documents.UploadMasterDocument(env.ctx, auditorActor, UploadMasterRequest{ProductID: a.ID.String(), DocType: "SOP", FileMetadata: FileMetadata{FileName: "x.pdf"}}); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("auditor upload: %v", err)
	}

	all, err := env.documents.ListMasterDocuments(env.ctx, nil)
	if err != nil || len(all) != 2 {
		t.Fatalf("all master docs: %d, %v", len(all), err)
	}
	onlyA, err := env.documents.ListMasterDocuments(env.ctx, &a.ID)
	if err != nil || len(onlyA) != 1 || onlyA[0].DocType != "SOP" {
		t.Fatalf("product A docs: %+v, %v", onlyA, err)
	}
	if n := countAction(env.auditActions(t), model.ActionMasterSOPUploaded); n != 2 {
		t.Fatalf("MASTER_SOP_UPLOADED recorded %d times", n)
	}
}
