// Package audit implements the hash chain that makes the audit trail tamper
// evident: hashing of entries and sequential verification of a stored chain.
package audit

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pharmaops/internal/model"
)

// GenesisHash is the previous hash of the first entry.
var GenesisHash = strings.Repeat("0", 64)

// Precision is the timestamp resolution preserved by the store.
const Precision = time.Microsecond

// NormalizeTime brings t to the form that is hashed and stored.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(Precision)
}

// Canonicalize rewrites a JSON document with sorted object keys and no
// insignificant whitespace. Numbers keep their literal form. Empty input
// canonicalizes to an empty object.
func Canonicalize(raw []byte) ([]byte, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []byte("{}"), nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("canonicalize changes: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("canonicalize changes: trailing data")
	}
	return json.Marshal(v)
}

// CanonicalChanges marshals an arbitrary changes payload into canonical JSON.
func CanonicalChanges(changes interface{}) ([]byte, error) {
	if changes == nil {
		return []byte("{}"), nil
	}
	raw, err := json.Marshal(changes)
	if err != nil {
		return nil, fmt.Errorf("marshal changes: %w", err)
	}
	return Canonicalize(raw)
}

type hashedFields struct {
	ID         int64           `json:"id"`
	Timestamp  string          `json:"timestamp"`
	ActorName  string          `json:"actor_name"`
	ActorRole  string          `json:"actor_role"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Changes    json.RawMessage `json:"changes"`
}

// ComputeHash returns SHA-256 hex of PreviousHash followed by the canonical
// serialization of every other field except EntryHash.
func ComputeHash(e model.AuditLog) (string, error) {
	changes, err := Canonicalize(e.Changes)
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(hashedFields{
		ID:         e.ID,
		Timestamp:  NormalizeTime(e.Timestamp).Format(time.RFC3339Nano),
		ActorName:  e.ActorName,
		ActorRole:  e.ActorRole,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Changes:    changes,
	})
	if err != nil {
		return "", err
	}

	h := sha256.New()
	h.Write([]byte(e.PreviousHash))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Seal fills in Timestamp normalization, canonical Changes and EntryHash of an
// entry whose ID and PreviousHash are already assigned.
func Seal(e *model.AuditLog) error {
	e.Timestamp = NormalizeTime(e.Timestamp)
	changes, err := Canonicalize(e.Changes)
	if err != nil {
		return err
	}
	e.Changes = changes
	hash, err := ComputeHash(*e)
	if err != nil {
		return err
	}
	e.EntryHash = hash
	return nil
}
