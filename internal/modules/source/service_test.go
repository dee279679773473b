package source

import (
	"testing"

	"github.com/cite-space/core/internal/database"
	"github.com/cite-space/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the in-memory database shared.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) models.UserModel {
	t.Helper()
	u := models.UserModel{Username: username, Password: "x", Name: username}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func TestGetOrCreateByNameNormalizes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	u := createUser(t, db, "alice")

	first, created, err := svc.GetOrCreateByName("The   Matrix", u.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "The Matrix", first.Name)
	assert.Equal(t, "the matrix", first.NameNormalized)
	assert.Equal(t, models.SourcePending, first.Status)
	require.NotNil(t, first.CreatedByID)
	assert.Equal(t, u.ID, *first.CreatedByID)

	// Raw names differing only by case/whitespace resolve to the same row.
	second, created, err := svc.GetOrCreateByName("  the MATRIX ", u.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.SourceModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetOrCreateReturnsRejectedDuplicate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	src, _, err := svc.GetOrCreateByName("Dune", "")
	require.NoError(t, err)
	require.NoError(t, svc.Reject(src, createUser(t, db, "mod").ID))

	again, created, err := svc.GetOrCreateByName("dune", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, src.ID, again.ID)
	assert.Equal(t, models.SourceRejected, again.Status)
}

func TestApproveStampsApprovedAtOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	mod := createUser(t, db, "mod")

	src, _, err := svc.GetOrCreateByName("1984", "")
	require.NoError(t, err)

	require.NoError(t, svc.Approve(src, mod.ID))
	require.NotNil(t, src.ApprovedAt)
	firstStamp := *src.ApprovedAt

	// Re-approval keeps the original timestamp.
	require.NoError(t, svc.Approve(src, mod.ID))
	require.NotNil(t, src.ApprovedAt)
	assert.Equal(t, firstStamp, *src.ApprovedAt)
	assert.Equal(t, models.SourceApproved, src.Status)
}

func TestNormalizedNameUniqueAcrossStatuses(t *testing.T) {
	db := setupTestDB(t)

	a := models.SourceModel{Name: "Blade Runner", Status: models.SourceRejected}
	require.NoError(t, db.Create(&a).Error)

	b := models.SourceModel{Name: "blade  runner", Status: models.SourcePending}
	err := db.Create(&b).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
