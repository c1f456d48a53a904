package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"pharmaops/internal/audit"
	"pharmaops/internal/model"
	"pharmaops/internal/repository"
	"pharmaops/pkg/apperror"
	"pharmaops/pkg/pagination"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Report formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ReportHeaders are the columns of an exported audit report.
var ReportHeaders = []string{"ID", "Timestamp", "Actor", "Role", "Action", "Entity", "IntegrityHash"}

const (
	chainLockName      = "audit-chain"
	chainAdvisoryKey   = int64(0x50484f4155444954) // "PHOAUDIT"
	verifyBatchSize    = 500
	exportSheet        = "Audit Trail"
	reportTimestampFmt = "2006-01-02T15:04:05.000000Z07:00"
)

type AuditService interface {
	// Record appends one entry to the chain inside the caller's transaction.
	Record(ctx context.Context, action string, actor model.Actor, entity model.EntityRef, changes interface{}) (*model.AuditLog, error)
	Query(ctx context.Context, actor model.Actor, filter repository.AuditFilter, page pagination.Params) ([]model.AuditLog, int64, error)
	VerifyChain(ctx context.Context, actor model.Actor) (audit.VerifyReport, error)
	VerifyOrError(ctx context.Context, actor model.Actor) (audit.VerifyReport, error)
	ExportReport(ctx context.Context, actor model.Actor, format string, w io.Writer) error
	EntriesFor(ctx context.Context, refs []model.EntityRef) ([]model.AuditLog, error)
}

type auditService struct {
	repo      repository.AuditRepository
	txManager repository.TransactionManager
	log       *zap.Logger
	now       func() time.Time

	// chainMu serializes appends from this process; the advisory lock covers
	// other processes sharing the database.
	chainMu sync.Mutex
}

func NewAuditService(repo repository.AuditRepository, txManager repository.TransactionManager, log *zap.Logger) AuditService {
	return &auditService{
		repo:      repo,
		txManager: txManager,
		log:       log,
		now:       time.Now,
	}
}

func (s *auditService) Record(ctx context.Context, action string, actor model.Actor, entity model.EntityRef, changes interface{}) (*model.AuditLog, error) {
	if !repository.InTx(ctx) {
		var entry *model.AuditLog
		err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
			var err error
			entry, err = s.Record(txCtx, action, actor, entity, changes)
			return err
		})
		return entry, err
	}

	payload, err := audit.CanonicalChanges(changes)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.KindValidation, "audit changes for %s are not serializable", action)
	}

	if err := repository.LockUntilDone(ctx, chainLockName, &s.chainMu); err != nil {
		return nil, fmt.Errorf("lock audit chain: %w", err)
	}
	if err := repository.AdvisoryXactLock(ctx, chainAdvisoryKey); err != nil {
		return nil, fmt.Errorf("lock audit chain: %w", err)
	}

	last, err := s.repo.Last(ctx)
	if err != nil {
		return nil, fmt.Errorf("read audit chain head: %w", err)
	}

	entry := &model.AuditLog{
		ID:           1,
		Timestamp:    s.now(),
		ActorName:    actor.Name,
		ActorRole:    actor.Role,
		Action:       action,
		EntityType:   entity.Type,
		EntityID:     entity.ID,
		Changes:      datatypes.JSON(payload),
		PreviousHash: audit.GenesisHash,
	}
	if last != nil {
		entry.ID = last.ID + 1
		entry.PreviousHash = last.EntryHash
		// Keep timestamps non-decreasing along the chain even if clocks step back.
		if entry.Timestamp.Before(last.Timestamp) {
			entry.Timestamp = last.Timestamp
		}
	}

	if err := audit.Seal(entry); err != nil {
		return nil, err
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("append audit entry: %w", err)
	}

	return entry, nil
}

func (s *auditService) Query(ctx context.Context, actor model.Actor, filter repository.AuditFilter, page pagination.Params) ([]model.AuditLog, int64, error) {
	if err := authorize(actor, CapAuditRead); err != nil {
		return nil, 0, err
	}
	logs, total, err := s.repo.List(ctx, filter, page.Offset, page.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("query audit log: %w", err)
	}
	return logs, total, nil
}

// VerifyChain walks the chain from genesis. A broken chain is reported in the
// result, not as an error.
func (s *auditService) VerifyChain(ctx context.Context, actor model.Actor) (audit.VerifyReport, error) {
	if err := authorize(actor, CapAuditVerify); err != nil {
		return audit.VerifyReport{}, err
	}

	v := audit.NewVerifier()
	err := s.repo.Each(ctx, verifyBatchSize, func(entries []model.AuditLog) error {
		for _, e := range entries {
			if !v.Check(e) {
				return errStopWalk
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		return audit.VerifyReport{}, fmt.Errorf("read audit chain: %w", err)
	}

	report := v.Report()
	if !report.OK {
		s.log.Error("audit chain verification failed",
			zap.Int64("first_invalid_id", report.FirstInvalidID),
			zap.String("reason", report.Reason),
			zap.String("verified_by", actor.Name))
	}
	return report, nil
}

var errStopWalk = errors.New("stop walk")

func (s *auditService) VerifyOrError(ctx context.Context, actor model.Actor) (audit.VerifyReport, error) {
	report, err := s.VerifyChain(ctx, actor)
	if err != nil {
		return report, err
	}
	if !report.OK {
		return report, apperror.Integrity("audit chain broken at entry %d: %s", report.FirstInvalidID, report.Reason)
	}
	return report, nil
}

func (s *auditService) ExportReport(ctx context.Context, actor model.Actor, format string, w io.Writer) error {
	if err := authorize(actor, CapAuditExport); err != nil {
		return err
	}
	switch format {
	case FormatCSV:
		return s.exportCSV(ctx, w)
	case FormatXLSX:
		return s.exportXLSX(ctx, w)
	default:
		return apperror.Validation("unsupported report format %q", format)
	}
}

func reportRow(e model.AuditLog) []string {
	return []string{
		strconv.FormatInt(e.ID, 10),
		e.Timestamp.UTC().Format(reportTimestampFmt),
		e.ActorName,
		e.ActorRole,
		e.Action,
		e.Entity().String(),
		e.EntryHash,
	}
}

func (s *auditService) exportCSV(ctx context.Context, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ReportHeaders); err != nil {
		return err
	}
	err := s.repo.Each(ctx, verifyBatchSize, func(entries []model.AuditLog) error {
		for _, e := range entries {
			if err := cw.Write(reportRow(e)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("export audit report: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func (s *auditService) exportXLSX(ctx context.Context, w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		return err
	}
	colWidths := []float64{8, 28, 20, 10, 26, 50, 68}
	for i, width := range colWidths {
		if err := sw.SetColWidth(i+1, i+1, width); err != nil {
			return err
		}
	}

	header := make([]interface{}, len(ReportHeaders))
	for i, h := range ReportHeaders {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	row := 2
	err = s.repo.Each(ctx, verifyBatchSize, func(entries []model.AuditLog) error {
		for _, e := range entries {
			cells := reportRow(e)
			values := make([]interface{}, len(cells))
			values[0] = e.ID
			for i := 1; i < len(cells); i++ {
				values[i] = cells[i]
			}
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := sw.SetRow(cell, values); err != nil {
				return err
			}
			row++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("export audit report: %w", err)
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}

func (s *auditService) EntriesFor(ctx context.Context, refs []model.EntityRef) ([]model.AuditLog, error) {
	return s.repo.ListByEntities(ctx, refs)
}
