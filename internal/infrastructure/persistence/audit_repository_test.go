package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/invoicemonk/backend/internal/domain/audit"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/infrastructure/persistence/models"
)

func newAuditTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AuditEntryModel{}, &models.ExportManifestModel{}))
	return db
}

func appendEntry(t *testing.T, repo *GormAuditEntryRepository, businessID uuid.UUID, actorID *uuid.UUID, action audit.Action, prevHash string) *audit.Entry {
	t.Helper()
	entry, err := audit.NewEntry(businessID, actorID, action, "Invoice", uuid.New(), map[string]string{"number": "INV-2026-0001"}, prevHash)
	require.NoError(t, err)
	require.NoError(t, repo.Append(context.Background(), entry))
	return entry
}

func TestGormAuditEntryRepository_AppendAndChain(t *testing.T) {
	db := newAuditTestDB(t)
	repo := NewGormAuditEntryRepository(db)
	ctx := context.Background()

	businessID := uuid.New()
	actorID := uuid.New()

	latest, err := repo.LatestForBusiness(ctx, businessID)
	require.NoError(t, err)
	assert.Nil(t, latest)

	first := appendEntry(t, repo, businessID, &actorID, audit.ActionInvoiceIssued, "")
	second := appendEntry(t, repo, businessID, &actorID, audit.ActionInvoiceSent, first.EntryHash)
	third := appendEntry(t, repo, businessID, nil, audit.ActionInvoiceViewed, second.EntryHash)

	latest, err = repo.LatestForBusiness(ctx, businessID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, third.EntryHash, latest.EntryHash)

	chain, err := repo.FindChain(ctx, businessID)
	require.NoError(t, err)
	require.Len(t, chain, 3)
	assert.Equal(t, first.ID, chain[0].ID)
	assert.Equal(t, -1, audit.VerifyChain(chain))

	// Another business's chain stays separate
	other, err := repo.FindChain(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestGormAuditEntryRepository_FindAllForBusiness(t *testing.T) {
	db := newAuditTestDB(t)
	repo := NewGormAuditEntryRepository(db)
	ctx := context.Background()

	businessID := uuid.New()
	actorID := uuid.New()

	first := appendEntry(t, repo, businessID, &actorID, audit.ActionInvoiceIssued, "")
	appendEntry(t, repo, businessID, nil, audit.ActionInvoiceViewed, first.EntryHash)

	t.Run("unfiltered returns newest first", func(t *testing.T) {
		entries, total, err := repo.FindAllForBusiness(ctx, businessID, audit.EntryFilter{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, entries, 2)
		assert.Equal(t, audit.ActionInvoiceViewed, entries[0].Action)
	})

	t.Run("filter by action", func(t *testing.T) {
		action := audit.ActionInvoiceIssued
		entries, total, err := repo.FindAllForBusiness(ctx, businessID, audit.EntryFilter{Action: &action, Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, entries, 1)
		assert.Equal(t, first.ID, entries[0].ID)
	})

	t.Run("filter by actor", func(t *testing.T) {
		entries, total, err := repo.FindAllForBusiness(ctx, businessID, audit.EntryFilter{ActorID: &actorID, Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, entries, 1)
	})

	t.Run("pagination", func(t *testing.T) {
		entries, total, err := repo.FindAllForBusiness(ctx, businessID, audit.EntryFilter{Page: 2, PageSize: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, entries, 1)
		assert.Equal(t, first.ID, entries[0].ID)
	})
}

func TestGormExportManifestRepository(t *testing.T) {
	db := newAuditTestDB(t)
	repo := NewGormExportManifestRepository(db)
	ctx := context.Background()

	businessID := uuid.New()
	actorID := uuid.New()

	manifest, err := audit.NewExportManifest(businessID, actorID, audit.ExportScope{
		ReportType: "revenue_by_period",
		Format:     "csv",
	}, 42, "a3f8d1e2c4b5a69780f1e2d3c4b5a69780f1e2d3c4b5a69780f1e2d3c4b5a697")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, manifest))

	found, err := repo.FindByID(ctx, manifest.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, found.RowCount)
	assert.Equal(t, manifest.ContentDigest, found.ContentDigest)
	assert.Equal(t, "revenue_by_period", found.Scope.ReportType)

	list, err := repo.FindAllForBusiness(ctx, businessID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
