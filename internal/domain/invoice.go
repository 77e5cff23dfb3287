package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the billing state of an invoice.
type InvoiceStatus string

// Possible invoice status values. Paid and cancelled are terminal.
const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// Invoice-specific validation errors
var (
	ErrInvoiceIDEmpty        = errors.New("invoice ID cannot be empty")
	ErrInvoiceNumberEmpty    = errors.New("invoice number cannot be empty")
	ErrInvoiceClientIDEmpty  = errors.New("invoice client ID cannot be empty")
	ErrInvoiceStatusInvalid  = errors.New("invalid invoice status")
	ErrInvoiceDueBeforeIssue = errors.New("invoice due date cannot precede issue date")
	ErrInvoiceFinalized      = errors.New("invoice is in a terminal state")
	ErrInvoiceItemQuantity   = errors.New("invoice item quantity must be positive")
)

// InvoiceItem is a single billed line. Its amount is always derived from
// quantity and unit price, never stored separately.
type InvoiceItem struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   Amount `json:"unit_price"`
}

// Amount returns quantity times unit price.
func (i InvoiceItem) Amount() decimal.Decimal {
	return i.UnitPrice.Decimal().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Invoice represents a bill issued to a client, optionally tied to a project.
// The total is a computed accessor over amount and tax so it can never go
// stale when either component changes.
type Invoice struct {
	ID            uuid.UUID     `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	ClientID      uuid.UUID     `json:"client_id"`
	ProjectID     *uuid.UUID    `json:"project_id,omitempty"`
	Amount        Amount        `json:"amount"`
	Tax           Amount        `json:"tax"`
	Status        InvoiceStatus `json:"status"`
	IssueDate     time.Time     `json:"issue_date"`
	DueDate       time.Time     `json:"due_date"`
	PaidDate      *time.Time    `json:"paid_date,omitempty"`
	Items         []InvoiceItem `json:"items,omitempty"`
	Notes         string        `json:"notes"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// NewInvoice creates a new draft Invoice with a fresh UUID and UTC timestamps.
// Returns an error if validation fails.
func NewInvoice(
	invoiceNumber string,
	clientID uuid.UUID,
	amount Amount,
	tax Amount,
	issueDate time.Time,
	dueDate time.Time,
) (*Invoice, error) {
	now := time.Now().UTC()
	inv := &Invoice{
		ID:            uuid.New(),
		InvoiceNumber: invoiceNumber,
		ClientID:      clientID,
		Amount:        amount,
		Tax:           tax,
		Status:        InvoiceStatusDraft,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := inv.Validate(); err != nil {
		return nil, err
	}

	return inv, nil
}

// Validate checks if the Invoice has valid data.
// Returns an error if any field fails validation.
func (i *Invoice) Validate() error {
	if i.ID == uuid.Nil {
		return ErrInvoiceIDEmpty
	}

	if i.InvoiceNumber == "" {
		return ErrInvoiceNumberEmpty
	}

	if i.ClientID == uuid.Nil {
		return ErrInvoiceClientIDEmpty
	}

	if !isValidInvoiceStatus(i.Status) {
		return ErrInvoiceStatusInvalid
	}

	if !i.DueDate.IsZero() && !i.IssueDate.IsZero() && i.DueDate.Before(i.IssueDate) {
		return ErrInvoiceDueBeforeIssue
	}

	for _, item := range i.Items {
		if item.Quantity <= 0 {
			return ErrInvoiceItemQuantity
		}
	}

	return nil
}

// Total returns amount plus tax, computed at read time.
func (i *Invoice) Total() Amount {
	total, _ := i.Amount.Add(i.Tax) // sum of non-negatives cannot fail
	return total
}

// SetAmounts replaces the amount and tax together. Total follows automatically
// because it is derived.
func (i *Invoice) SetAmounts(amount, tax Amount) error {
	if i.isTerminal() {
		return ErrInvoiceFinalized
	}

	i.Amount = amount
	i.Tax = tax
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// AddItem appends a billed line. Returns an error on non-positive quantity.
func (i *Invoice) AddItem(item InvoiceItem) error {
	if item.Quantity <= 0 {
		return ErrInvoiceItemQuantity
	}

	i.Items = append(i.Items, item)
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkSent moves a draft invoice to sent.
func (i *Invoice) MarkSent() error {
	return i.transition(InvoiceStatusSent)
}

// MarkPaid moves the invoice to paid and records the payment date.
func (i *Invoice) MarkPaid(paidDate time.Time) error {
	if err := i.transition(InvoiceStatusPaid); err != nil {
		return err
	}
	paid := paidDate.UTC()
	i.PaidDate = &paid
	return nil
}

// MarkOverdue flags a sent invoice as overdue.
func (i *Invoice) MarkOverdue() error {
	return i.transition(InvoiceStatusOverdue)
}

// Cancel moves the invoice to cancelled.
func (i *Invoice) Cancel() error {
	return i.transition(InvoiceStatusCancelled)
}

// transition applies a status change, rejecting any move out of a terminal state.
func (i *Invoice) transition(next InvoiceStatus) error {
	if i.isTerminal() {
		return ErrInvoiceFinalized
	}

	i.Status = next
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// isTerminal reports whether the invoice reached a state that accepts no
// further transitions.
func (i *Invoice) isTerminal() bool {
	return i.Status == InvoiceStatusPaid || i.Status == InvoiceStatusCancelled
}

// ParseInvoiceStatus validates a status literal and returns the typed value.
func ParseInvoiceStatus(v string) (InvoiceStatus, error) {
	s := InvoiceStatus(v)
	if !isValidInvoiceStatus(s) {
		return "", ErrInvoiceStatusInvalid
	}
	return s, nil
}

// isValidInvoiceStatus checks if the given status is a valid InvoiceStatus.
func isValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	default:
		return false
	}
}
