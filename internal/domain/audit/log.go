package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Action identifies an auditable lifecycle event
type Action string

const (
	ActionInvoiceIssued    Action = "INVOICE_ISSUED"
	ActionInvoiceSent      Action = "INVOICE_SENT"
	ActionInvoiceViewed    Action = "INVOICE_VIEWED"
	ActionInvoiceVoided    Action = "INVOICE_VOIDED"
	ActionCreditNoteIssued Action = "CREDIT_NOTE_ISSUED"
	ActionPaymentRecorded  Action = "PAYMENT_RECORDED"
	ActionReceiptIssued    Action = "RECEIPT_ISSUED"
	ActionDataExported     Action = "DATA_EXPORTED"
	ActionMemberAdded      Action = "MEMBER_ADDED"
	ActionMemberRemoved    Action = "MEMBER_REMOVED"
	ActionRoleChanged      Action = "ROLE_CHANGED"
	ActionTierChanged      Action = "TIER_CHANGED"
	ActionAccountCreated   Action = "ACCOUNT_CREATED"
	ActionExpenseRecorded  Action = "EXPENSE_RECORDED"
	ActionAPITokenIssued   Action = "API_TOKEN_ISSUED"
)

// IsValid checks if the action is a known audit action
func (a Action) IsValid() bool {
	switch a {
	case ActionInvoiceIssued, ActionInvoiceSent, ActionInvoiceViewed,
		ActionInvoiceVoided, ActionCreditNoteIssued, ActionPaymentRecorded,
		ActionReceiptIssued, ActionDataExported, ActionMemberAdded,
		ActionMemberRemoved, ActionRoleChanged, ActionTierChanged,
		ActionAccountCreated, ActionExpenseRecorded, ActionAPITokenIssued:
		return true
	}
	return false
}

// String returns the string representation of the action
func (a Action) String() string {
	return string(a)
}

// Entry is one append-only audit log record. Entries are hash-chained
// per business: each entry's hash covers its own content plus the hash
// of the previous entry, so removing or editing any record breaks the
// chain from that point on.
type Entry struct {
	shared.BaseEntity
	BusinessID uuid.UUID
	ActorID    *uuid.UUID // Nil for system or anonymous (public view) events
	Action     Action
	EntityType string
	EntityID   uuid.UUID
	Metadata   map[string]string
	OccurredAt time.Time
	PrevHash   string
	EntryHash  string
}

// NewEntry appends a new record to the business's audit chain.
// prevHash is the hash of the business's latest entry, or empty for
// the first one.
func NewEntry(businessID uuid.UUID, actorID *uuid.UUID, action Action, entityType string, entityID uuid.UUID, metadata map[string]string, prevHash string) (*Entry, error) {
	if businessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS", "Business ID cannot be empty")
	}
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTION", "Audit action is not valid")
	}
	if entityType == "" {
		return nil, shared.NewDomainError("INVALID_ENTITY", "Entity type cannot be empty")
	}

	e := &Entry{
		BaseEntity: shared.NewBaseEntity(),
		BusinessID: businessID,
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   metadata,
		// timestamptz keeps microseconds only; the sealed hash must
		// survive a database round trip
		OccurredAt: time.Now().UTC().Truncate(time.Microsecond),
		PrevHash:   prevHash,
	}
	e.EntryHash = e.computeHash()

	return e, nil
}

type entryContent struct {
	ID         string            `json:"id"`
	BusinessID string            `json:"business_id"`
	ActorID    string            `json:"actor_id"`
	Action     string            `json:"action"`
	EntityType string            `json:"entity_type"`
	EntityID   string            `json:"entity_id"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	OccurredAt string            `json:"occurred_at"`
	PrevHash   string            `json:"prev_hash"`
}

func (e *Entry) computeHash() string {
	actor := ""
	if e.ActorID != nil {
		actor = e.ActorID.String()
	}
	data, err := json.Marshal(entryContent{
		ID:         e.ID.String(),
		BusinessID: e.BusinessID.String(),
		ActorID:    actor,
		Action:     e.Action.String(),
		EntityType: e.EntityType,
		EntityID:   e.EntityID.String(),
		Metadata:   e.Metadata,
		OccurredAt: e.OccurredAt.UTC().Format(time.RFC3339Nano),
		PrevHash:   e.PrevHash,
	})
	if err != nil {
		panic(err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Verify recomputes the entry hash and checks it against the sealed one
func (e *Entry) Verify() bool {
	return e.EntryHash != "" && e.computeHash() == e.EntryHash
}

// VerifyChain walks entries in append order and confirms that every
// entry hashes correctly and links to its predecessor. It returns the
// index of the first broken entry, or -1 when the chain is intact.
func VerifyChain(entries []Entry) int {
	prev := ""
	for idx := range entries {
		e := &entries[idx]
		if e.PrevHash != prev || !e.Verify() {
			return idx
		}
		prev = e.EntryHash
	}
	return -1
}
