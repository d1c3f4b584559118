package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/invoicemonk/backend/internal/domain/invoicing"
	"github.com/invoicemonk/backend/internal/domain/shared"
)

// newMockInvoiceRepository creates a GormInvoiceRepository with a mocked SQL connection
func newMockInvoiceRepository(t *testing.T) (*GormInvoiceRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormInvoiceRepository(gormDB), mock, mockDB
}

func invoiceRows(invoiceID, businessID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "business_id", "invoice_number", "currency_account_id", "currency",
		"rate_to_primary", "client", "line_items", "status", "amount_paid",
	}).AddRow(
		invoiceID, businessID, "INV-2026-0007", uuid.New(), "USD",
		decimal.NewFromInt(1), `{"name":"Acme Ltd","email":"billing@acme.test"}`,
		`[{"description":"Consulting","quantity":"2","unit_price":"500","tax_rate":"0"}]`,
		"draft", decimal.Zero,
	)
}

func TestGormInvoiceRepository_FindByID(t *testing.T) {
	t.Run("finds existing invoice", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()
		businessID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(invoiceID, 1).
			WillReturnRows(invoiceRows(invoiceID, businessID))

		invoice, err := repo.FindByID(context.Background(), invoiceID)

		assert.NoError(t, err)
		require.NotNil(t, invoice)
		assert.Equal(t, invoiceID, invoice.ID)
		assert.Equal(t, "INV-2026-0007", invoice.InvoiceNumber)
		assert.Equal(t, "Acme Ltd", invoice.Client.Name)
		require.Len(t, invoice.LineItems, 1)
		assert.True(t, invoice.LineItems[0].UnitPrice.Equal(decimal.NewFromInt(500)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing invoice", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(invoiceID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		invoice, err := repo.FindByID(context.Background(), invoiceID)

		assert.Nil(t, invoice)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_FindByVerificationID(t *testing.T) {
	t.Run("finds invoice by verification ID", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE verification_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("v5Kq2xR9z", 1).
			WillReturnRows(invoiceRows(invoiceID, uuid.New()))

		invoice, err := repo.FindByVerificationID(context.Background(), "v5Kq2xR9z")

		assert.NoError(t, err)
		require.NotNil(t, invoice)
		assert.Equal(t, invoiceID, invoice.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_FindAllForBusiness(t *testing.T) {
	t.Run("applies status filter and pagination", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		businessID := uuid.New()
		status := invoicing.InvoiceStatusIssued

		mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices" WHERE business_id = \$1 AND status = \$2`).
			WithArgs(businessID, "issued").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE business_id = \$1 AND status = \$2 ORDER BY created_at DESC LIMIT .* OFFSET .*`).
			WithArgs(businessID, "issued", 5, 5).
			WillReturnRows(invoiceRows(uuid.New(), businessID))

		invoices, total, err := repo.FindAllForBusiness(context.Background(), businessID, invoicing.InvoiceFilter{
			Status:   &status,
			Page:     2,
			PageSize: 5,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(11), total)
		assert.Len(t, invoices, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_CountIssuedInPeriod(t *testing.T) {
	t.Run("counts invoices issued in window", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		businessID := uuid.New()
		from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices" WHERE business_id = \$1 AND issued_at >= \$2 AND issued_at <= \$3`).
			WithArgs(businessID, from, to).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

		count, err := repo.CountIssuedInPeriod(context.Background(), businessID, from, to)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_NextInvoiceNumber(t *testing.T) {
	t.Run("formats reserved sequence value", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		businessID := uuid.New()

		mock.ExpectQuery(`INSERT INTO document_sequences .* RETURNING next_value`).
			WithArgs(businessID, "invoice", 2026).
			WillReturnRows(sqlmock.NewRows([]string{"next_value"}).AddRow(42))

		number, err := repo.NextInvoiceNumber(context.Background(), businessID, 2026)

		assert.NoError(t, err)
		assert.Equal(t, "INV-2026-0042", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
