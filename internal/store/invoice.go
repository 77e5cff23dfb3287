package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pvaldez/cadence-api/internal/domain"
)

// InvoiceStore defines the interface for invoice data persistence.
type InvoiceStore interface {
	// Create saves a new invoice to the store.
	// Returns ErrInvoiceNumberExists if the invoice number is already taken.
	Create(ctx context.Context, invoice *domain.Invoice) error

	// GetByID retrieves an invoice by its unique ID.
	// Returns ErrInvoiceNotFound if the invoice does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)

	// GetByInvoiceNumber retrieves an invoice by its unique human-facing number.
	// Returns ErrInvoiceNotFound if the invoice does not exist.
	GetByInvoiceNumber(ctx context.Context, number string) (*domain.Invoice, error)

	// ListByClient returns all invoices issued to a client.
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*domain.Invoice, error)

	// Update persists the full current state of the invoice, including the
	// derived total so persisted rows always match the entity.
	// Returns ErrInvoiceNotFound if the invoice does not exist.
	Update(ctx context.Context, invoice *domain.Invoice) error

	// WithTx returns a new InvoiceStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) InvoiceStore
}
