package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pvaldez/cadence-api/internal/domain"
	"github.com/pvaldez/cadence-api/internal/platform/logger"
	"github.com/pvaldez/cadence-api/internal/store"
)

// PostgresInvoiceStore implements the store.InvoiceStore interface
// using a PostgreSQL database as the storage backend. Only amount and tax are
// stored; the invoice total is always derived by the domain entity.
type PostgresInvoiceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresInvoiceStore creates a new PostgreSQL implementation of the
// InvoiceStore interface. If logger is nil, a default logger will be used.
func NewPostgresInvoiceStore(db store.DBTX, logger *slog.Logger) *PostgresInvoiceStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresInvoiceStore{
		db:     db,
		logger: logger.With(slog.String("component", "invoice_store")),
	}
}

// Ensure PostgresInvoiceStore implements store.InvoiceStore interface
var _ store.InvoiceStore = (*PostgresInvoiceStore)(nil)

// WithTx implements store.InvoiceStore.WithTx
func (s *PostgresInvoiceStore) WithTx(tx *sql.Tx) store.InvoiceStore {
	return &PostgresInvoiceStore{
		db:     tx,
		logger: s.logger,
	}
}

const invoiceColumns = `id, invoice_number, client_id, project_id, amount, tax, status,
	issue_date, due_date, paid_date, items, notes, created_at, updated_at`

// Create implements store.InvoiceStore.Create
// Returns store.ErrInvoiceNumberExists when the invoice number is taken.
func (s *PostgresInvoiceStore) Create(ctx context.Context, invoice *domain.Invoice) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := invoice.Validate(); err != nil {
		return err
	}

	items, err := marshalJSONColumn(invoice.Items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		invoice.ID,
		invoice.InvoiceNumber,
		invoice.ClientID,
		invoice.ProjectID,
		invoice.Amount.Decimal(),
		invoice.Tax.Decimal(),
		invoice.Status,
		invoice.IssueDate,
		invoice.DueDate,
		invoice.PaidDate,
		items,
		invoice.Notes,
		invoice.CreatedAt,
		invoice.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate invoice number",
				slog.String("invoice_number", invoice.InvoiceNumber))
			return store.ErrInvoiceNumberExists
		}
		log.Error("failed to create invoice",
			slog.String("error", err.Error()),
			slog.String("invoice_id", invoice.ID.String()))
		return MapError(err)
	}

	log.Info("invoice created",
		slog.String("invoice_id", invoice.ID.String()),
		slog.String("invoice_number", invoice.InvoiceNumber))
	return nil
}

// GetByID implements store.InvoiceStore.GetByID
// Returns store.ErrInvoiceNotFound if the invoice does not exist.
func (s *PostgresInvoiceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return s.get(ctx, query, id)
}

// GetByInvoiceNumber implements store.InvoiceStore.GetByInvoiceNumber
// Returns store.ErrInvoiceNotFound if no invoice carries the number.
func (s *PostgresInvoiceStore) GetByInvoiceNumber(ctx context.Context, number string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_number = $1`
	return s.get(ctx, query, number)
}

func (s *PostgresInvoiceStore) get(ctx context.Context, query string, arg any) (*domain.Invoice, error) {
	invoice, err := scanInvoice(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrInvoiceNotFound
		}
		return nil, MapError(err)
	}

	return invoice, nil
}

// ListByClient implements store.InvoiceStore.ListByClient
func (s *PostgresInvoiceStore) ListByClient(
	ctx context.Context,
	clientID uuid.UUID,
) ([]*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE client_id = $1 ORDER BY issue_date DESC`

	rows, err := s.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var invoices []*domain.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return invoices, nil
}

// Update implements store.InvoiceStore.Update
// Returns store.ErrInvoiceNotFound if the invoice does not exist.
func (s *PostgresInvoiceStore) Update(ctx context.Context, invoice *domain.Invoice) error {
	if err := invoice.Validate(); err != nil {
		return err
	}

	items, err := marshalJSONColumn(invoice.Items)
	if err != nil {
		return err
	}

	query := `
		UPDATE invoices
		SET amount = $2, tax = $3, status = $4, issue_date = $5, due_date = $6,
			paid_date = $7, items = $8, notes = $9, updated_at = $10
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		invoice.ID,
		invoice.Amount.Decimal(),
		invoice.Tax.Decimal(),
		invoice.Status,
		invoice.IssueDate,
		invoice.DueDate,
		invoice.PaidDate,
		items,
		invoice.Notes,
		invoice.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "invoice"); err != nil {
		return store.ErrInvoiceNotFound
	}

	return nil
}

func scanInvoice(row rowScanner) (*domain.Invoice, error) {
	var (
		invoice   domain.Invoice
		projectID uuid.NullUUID
		amount    decimal.Decimal
		tax       decimal.Decimal
		items     []byte
	)

	err := row.Scan(
		&invoice.ID,
		&invoice.InvoiceNumber,
		&invoice.ClientID,
		&projectID,
		&amount,
		&tax,
		&invoice.Status,
		&invoice.IssueDate,
		&invoice.DueDate,
		&invoice.PaidDate,
		&items,
		&invoice.Notes,
		&invoice.CreatedAt,
		&invoice.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if projectID.Valid {
		invoice.ProjectID = &projectID.UUID
	}

	if invoice.Amount, err = domain.NewAmount(amount); err != nil {
		return nil, fmt.Errorf("stored amount is invalid: %w", err)
	}
	if invoice.Tax, err = domain.NewAmount(tax); err != nil {
		return nil, fmt.Errorf("stored tax is invalid: %w", err)
	}

	if err := unmarshalJSONColumn(items, &invoice.Items); err != nil {
		return nil, err
	}

	return &invoice, nil
}
