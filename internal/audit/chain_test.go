package audit

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"testing"
	"testing/quick"
	"time"

	"pharmaops/internal/model"
)

func buildChain(t *testing.T, n int) []model.AuditLog {
	t.Helper()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	prev := GenesisHash
	entries := make([]model.AuditLog, 0, n)
	for i := 1; i <= n; i++ {
		e := model.AuditLog{
			ID:           int64(i),
			Timestamp:    base.Add(time.Duration(i) * time.Second),
			ActorName:    "qa.lead",
			ActorRole:    model.RoleQA,
			Action:       model.ActionDocumentApproved,
			EntityType:   model.EntityDocument,
			EntityID:     fmt.Sprintf("doc-%d", i),
			Changes:      []byte(fmt.Sprintf(`{"status":"APPROVED","seq":%d}`, i)),
			PreviousHash: prev,
		}
		if err := Seal(&e); err != nil {
			t.Fatalf("seal entry %d: %v", i, err)
		}
		prev = e.EntryHash
		entries = append(entries, e)
	}
	return entries
}

func TestGenesisHash(t *testing.T) {
	if len(GenesisHash) != 64 || strings.Trim(GenesisHash, "0") != "" {
		t.Fatalf("unexpected genesis hash %q", GenesisHash)
	}
}

func TestCanonicalizeSortsKeys(t *testing.T) {
	a, err := Canonicalize([]byte(`{"b": 2, "a": {"y": 1.50, "x": [3, 1]}}`))
	if err != nil {
		t.Fatalf("canonicalize: %v", err)
	}
	want := `{"a":{"x":[3,1],"y":1.50},"b":2}`
	if string(a) != want {
		t.Fatalf("got %s, want %s", a, want)
	}

	empty, err := Canonicalize(nil)
	if err != nil || string(empty) != "{}" {
		t.Fatalf("empty input: %s, %v", empty, err)
	}

	if _, err := Canonicalize([]byte(`{"a":1} {"b":2}`)); err == nil {
		t.Fatal("expected error on trailing data")
	}
}

func TestVerifyValidChain(t *testing.T) {
	entries := buildChain(t, 5)
	report := Verify(entries)
	if !report.OK || report.Checked != 5 || report.LastID != 5 {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.LastHash != entries[4].EntryHash {
		t.Fatalf("last hash mismatch")
	}
}

func TestVerifyEmptyChain(t *testing.T) {
	report := Verify(nil)
	if !report.OK || report.Checked != 0 || report.LastHash != GenesisHash {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestVerifyDetectsTamperedChanges(t *testing.T) {
	entries := buildChain(t, 5)
	entries[2].Changes = []byte(`{"status":"REJECTED","seq":3}`)

	report := Verify(entries)
	if report.OK {
		t.Fatal("expected verification failure")
	}
	if report.FirstInvalidID != 3 {
		t.Fatalf("first invalid id = %d, want 3", report.FirstInvalidID)
	}
	if report.Checked != 2 {
		t.Fatalf("checked = %d, want 2", report.Checked)
	}
}

func TestVerifyDetectsRewrittenHash(t *testing.T) {
	entries := buildChain(t, 4)
	// Re-sealing an altered entry fixes its own hash but breaks the next link.
	entries[1].ActorName = "someone.else"
	if err := Seal(&entries[1]); err != nil {
		t.Fatal(err)
	}

	report := Verify(entries)
	if report.OK || report.FirstInvalidID != 3 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestVerifyDetectsGap(t *testing.T) {
	entries := buildChain(t, 4)
	entries = append(entries[:1], entries[2:]...)

	report := Verify(entries)
	if report.OK || report.FirstInvalidID != 3 {
		t.Fatalf("unexpected report %+v", report)
	}
	if !strings.Contains(report.Reason, "gap") {
		t.Fatalf("reason = %q", report.Reason)
	}
}

func TestHashIgnoresStoredKeyOrderAndZone(t *testing.T) {
	entries := buildChain(t, 1)
	e := entries[0]

	reordered := e
	reordered.Changes = []byte(`{ "seq": 1, "status": "APPROVED" }`)
	reordered.Timestamp = e.Timestamp.In(time.FixedZone("CET", 3600))

	h, err := ComputeHash(reordered)
	if err != nil {
		t.Fatal(err)
	}
	if h != e.EntryHash {
		t.Fatal("hash depends on key order or time zone")
	}
}

func TestHashPropertyKeyOrder(t *testing.T) {
	prop := func(raw map[uint16]int32) bool {
		values := make(map[string]int32, len(raw))
		keys := make([]string, 0, len(raw))
		for k, v := range raw {
			key := fmt.Sprintf("field_%d", k)
			values[key] = v
			keys = append(keys, key)
		}
		sort.Strings(keys)

		forward := encodeOrdered(keys, values)
		sort.Sort(sort.Reverse(sort.StringSlice(keys)))
		backward := encodeOrdered(keys, values)

		e := model.AuditLog{ID: 1, Timestamp: time.Unix(1700000000, 0), PreviousHash: GenesisHash, Changes: forward}
		h1, err1 := ComputeHash(e)
		e.Changes = backward
		h2, err2 := ComputeHash(e)
		return err1 == nil && err2 == nil && h1 == h2
	}
	if err := quick.Check(prop, nil); err != nil {
		t.Fatal(err)
	}
}

func TestHashPropertyFieldSensitivity(t *testing.T) {
	prop := func(action, actor string, id uint16) bool {
		e := model.AuditLog{
			ID:           int64(id) + 1,
			Timestamp:    time.Unix(1700000000, 123456000),
			ActorName:    actor,
			ActorRole:    model.RoleAdmin,
			Action:       action,
			EntityType:   model.EntityOrder,
			EntityID:     "o-1",
			PreviousHash: GenesisHash,
		}
		h1, err := ComputeHash(e)
		if err != nil {
			return false
		}
		e.Action = action + "x"
		h2, _ := ComputeHash(e)
		e.Action = action
		e.ID++
		h3, _ := ComputeHash(e)
		return h1 != h2 && h1 != h3
	}
	if err := quick.Check(prop, nil); err != nil {
		t.Fatal(err)
	}
}

func encodeOrdered(keys []string, values map[string]int32) []byte {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, _ := json.Marshal(k)
		b.Write(kb)
		fmt.Fprintf(&b, ":%d", values[k])
	}
	b.WriteByte('}')
	return []byte(b.String())
}

func TestHashKeepsNumberLiterals(t *testing.T) {
	e := model.AuditLog{
		ID: 1, Timestamp: NormalizeTime(time.Now()), ActorName: "qa", ActorRole: model.RoleQA,
		Action: model.ActionDocumentApproved, EntityType: model.EntityDocument, EntityID: "d-1",
		Changes: []byte(`{"quantity":1.50,"ratio":1e3}`), PreviousHash: GenesisHash,
	}
	if err := Seal(&e); err != nil {
		t.Fatal(err)
	}

	// A store that normalizes numbers returns different bytes for the same value.
	rewritten := e
	rewritten.Changes = []byte(`{"quantity": 1.50, "ratio": 1000}`)
	h, err := ComputeHash(rewritten)
	if err != nil {
		t.Fatal(err)
	}
	if h == e.EntryHash {
		t.Fatal("number literal rewrite went undetected")
	}
	if !Verify([]model.AuditLog{e}).OK {
		t.Fatal("verbatim entry does not verify")
	}
}
