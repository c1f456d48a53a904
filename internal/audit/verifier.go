package audit

import (
	"fmt"

	"pharmaops/internal/model"
)

// VerifyReport summarizes a chain verification.
type VerifyReport struct {
	OK             bool   `json:"ok"`
	Checked        int64  `json:"checked"`
	LastID         int64  `json:"last_id"`
	LastHash       string `json:"last_hash"`
	FirstInvalidID int64  `json:"first_invalid_id,omitempty"`
	Reason         string `json:"reason,omitempty"`
}

// Verifier checks entries one at a time in ascending id order and stops at
// the first broken link.
type Verifier struct {
	prevHash string
	nextID   int64
	report   VerifyReport
	failed   bool
}

func NewVerifier() *Verifier {
	return &Verifier{
		prevHash: GenesisHash,
		nextID:   1,
		report:   VerifyReport{OK: true, LastHash: GenesisHash},
	}
}

// Check verifies e against the chain so far. It returns false once the chain
// is broken; later calls are ignored.
func (v *Verifier) Check(e model.AuditLog) bool {
	if v.failed {
		return false
	}

	switch {
	case e.ID != v.nextID:
		v.fail(e.ID, fmt.Sprintf("sequence gap: expected id %d, found %d", v.nextID, e.ID))
		return false
	case e.PreviousHash != v.prevHash:
		v.fail(e.ID, "previous hash does not match the preceding entry")
		return false
	}

	hash, err := ComputeHash(e)
	if err != nil {
		v.fail(e.ID, err.Error())
		return false
	}
	if hash != e.EntryHash {
		v.fail(e.ID, "entry hash mismatch: contents were altered")
		return false
	}

	v.prevHash = e.EntryHash
	v.nextID++
	v.report.Checked++
	v.report.LastID = e.ID
	v.report.LastHash = e.EntryHash
	return true
}

func (v *Verifier) fail(id int64, reason string) {
	v.failed = true
	v.report.OK = false
	v.report.FirstInvalidID = id
	v.report.Reason = reason
}

func (v *Verifier) Report() VerifyReport { return v.report }

// Verify checks a complete chain held in memory.
func Verify(entries []model.AuditLog) VerifyReport {
	v := NewVerifier()
	for _, e := range entries {
		if !v.Check(e) {
			break
		}
	}
	return v.Report()
}
