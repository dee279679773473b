package quote

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cite-space/core/internal/database"
	"github.com/cite-space/core/internal/models"
	"github.com/cite-space/core/internal/modules/source"
	"github.com/cite-space/core/internal/pkg/pagination"
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
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	db := setupTestDB(t)
	return NewService(db, source.NewService(db)), db
}

func createUser(t *testing.T, db *gorm.DB, username string) models.UserModel {
	t.Helper()
	u := models.UserModel{Username: username, Password: "x", Name: username}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func createSource(t *testing.T, db *gorm.DB, name string, status models.SourceStatus) models.SourceModel {
	t.Helper()
	src := models.SourceModel{Name: name, Status: status}
	require.NoError(t, db.Create(&src).Error)
	return src
}

func createQuote(t *testing.T, db *gorm.DB, q models.QuoteModel) models.QuoteModel {
	t.Helper()
	if q.Weight == 0 {
		q.Weight = models.MinWeight
	}
	require.NoError(t, db.Create(&q).Error)
	return q
}

func TestSubmitCreatesDraftWithPendingSource(t *testing.T) {
	svc, db := newTestService(t)
	u := createUser(t, db, "alice")

	q, err := svc.Submit(u.ID, &CreateQuoteDTO{
		Text:       "  I'm going to   make him an offer he can't refuse. ",
		SourceName: "The Godfather",
	})
	require.NoError(t, err)

	assert.Equal(t, "I'm going to make him an offer he can't refuse.", q.Text)
	assert.Equal(t, models.QuoteDraft, q.Status)
	assert.Equal(t, models.MinWeight, q.Weight)
	assert.Equal(t, u.ID, q.AuthorID)
	assert.Equal(t, models.SourcePending, q.Source.Status)
}

func TestSubmitReusesExistingSource(t *testing.T) {
	svc, db := newTestService(t)
	u := createUser(t, db, "alice")
	src := createSource(t, db, "Dune", models.SourceApproved)

	q, err := svc.Submit(u.ID, &CreateQuoteDTO{Text: "Fear is the mind-killer.", SourceName: "  DUNE "})
	require.NoError(t, err)
	assert.Equal(t, src.ID, q.SourceID)

	var count int64
	require.NoError(t, db.Model(&models.SourceModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitValidation(t *testing.T) {
	svc, db := newTestService(t)
	u := createUser(t, db, "alice")

	_, err := svc.Submit(u.ID, &CreateQuoteDTO{Text: "   ", SourceName: "Dune"})
	assert.ErrorIs(t, err, errEmptyText)

	_, err = svc.Submit(u.ID, &CreateQuoteDTO{Text: "x", SourceName: "Dune", Weight: 11})
	assert.ErrorIs(t, err, errWeightOutOfRange)

	_, err = svc.Submit(u.ID, &CreateQuoteDTO{Text: "x", SourceName: "Dune", Weight: -1})
	assert.ErrorIs(t, err, errWeightOutOfRange)
}

func TestSubmitRejectsDuplicateTextAcrossStatuses(t *testing.T) {
	svc, db := newTestService(t)
	u := createUser(t, db, "alice")
	src := createSource(t, db, "Dune", models.SourceApproved)

	createQuote(t, db, models.QuoteModel{
		Text: "Fear is the mind-killer.", SourceID: src.ID,
		Status: models.QuoteRejected, AuthorID: u.ID,
	})

	// Same text modulo whitespace, different source, still a duplicate.
	_, err := svc.Submit(u.ID, &CreateQuoteDTO{
		Text:       "Fear   is the mind-killer.",
		SourceName: "Something Else",
	})
	assert.ErrorIs(t, err, errDuplicateQuote)
}

func TestEligibleSetFiltersBothStatuses(t *testing.T) {
	svc, db := newTestService(t)
	u := createUser(t, db, "alice")
	approved := createSource(t, db, "Dune", models.SourceApproved)
	pending := createSource(t, db, "Drafts", models.SourcePending)

	visible := createQuote(t, db, models.QuoteModel{
		Text: "visible", SourceID: approved.ID, Status: models.QuoteApproved, AuthorID: u.ID,
	})
	createQuote(t, db, models.QuoteModel{
		Text: "draft quote", SourceID: approved.ID, Status: models.QuoteDraft, AuthorID: u.ID,
	})
	createQuote(t, db, models.QuoteModel{
		Text: "rejected quote", SourceID: approved.ID, Status: models.QuoteRejected, AuthorID: u.ID,
	})
	createQuote(t, db, models.QuoteModel{
		Text: "approved quote, pending source", SourceID: pending.ID, Status: models.QuoteApproved, AuthorID: u.ID,
	})

	items, pag, err := svc.List(pagination.Query{Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, visible.ID, items[0].ID)
	assert.EqualValues(t, 1, pag.Total)
}

func TestGetVisibleHidesNonEligibleQuotes(t *testing.T) {
	svc, db := newTestService(t)
	u := createUser(t, db, "alice")
	approved := createSource(t, db, "Dune", models.SourceApproved)
	pending := createSource(t, db, "Unvetted", models.SourcePending)

	visible := createQuote(t, db, models.QuoteModel{
		Text: "public", SourceID: approved.ID, Status: models.QuoteApproved, AuthorID: u.ID,
	})
	draft := createQuote(t, db, models.QuoteModel{
		Text: "still in review", SourceID: approved.ID, Status: models.QuoteDraft, AuthorID: u.ID,
	})
	rejected := createQuote(t, db, models.QuoteModel{
		Text: "turned down", SourceID: approved.ID, Status: models.QuoteRejected, AuthorID: u.ID,
	})
	pendingSource := createQuote(t, db, models.QuoteModel{
		Text: "approved but source unvetted", SourceID: pending.ID, Status: models.QuoteApproved, AuthorID: u.ID,
	})

	got, err := svc.GetVisible(visible.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, visible.ID, got.ID)

	// Everything outside the eligible set reads as nonexistent.
	for _, id := range []string{draft.ID, rejected.ID, pendingSource.ID, "no-such-id"} {
		got, err := svc.GetVisible(id)
		require.NoError(t, err)
		assert.Nil(t, got, "quote %s must not be visible", id)
	}
}

func TestPickRandomEmptySet(t *testing.T) {
	svc, _ := newTestService(t)

	q, err := svc.PickRandom()
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestPickRandomRegistersView(t *testing.T) {
	svc, db := newTestService(t)
	u := createUser(t, db, "alice")
	src := createSource(t, db, "Dune", models.SourceApproved)
	createQuote(t, db, models.QuoteModel{
		Text: "only one", SourceID: src.ID, Status: models.QuoteApproved, AuthorID: u.ID,
	})

	q, err := svc.PickRandom()
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.EqualValues(t, 1, q.Views)

	q, err = svc.PickRandom()
	require.NoError(t, err)
	assert.EqualValues(t, 2, q.Views)
}

func TestPickRandomUniformWeights(t *testing.T) {
	svc, db := newTestService(t)
	u := createUser(t, db, "alice")
	src := createSource(t, db, "Dune", models.SourceApproved)

	for i := 0; i < 3; i++ {
		createQuote(t, db, models.QuoteModel{
			Text: fmt.Sprintf("uniform %d", i), SourceID: src.ID,
			Weight: 1, Status: models.QuoteApproved, AuthorID: u.ID,
		})
	}

	const draws = 3000
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		q, err := svc.PickRandom()
		require.NoError(t, err)
		require.NotNil(t, q)
		counts[q.ID]++
	}

	require.Len(t, counts, 3)
	for id, n := range counts {
		// Expected 1000 each; a wide band keeps the test deterministic enough.
		assert.Greater(t, n, 800, "quote %s drawn too rarely", id)
		assert.Less(t, n, 1200, "quote %s drawn too often", id)
	}
}

func TestPickRandomBiasedWeights(t *testing.T) {
	svc, db := newTestService(t)
	u := createUser(t, db, "alice")
	src := createSource(t, db, "Dune", models.SourceApproved)

	heavy := createQuote(t, db, models.QuoteModel{
		Text: "heavy", SourceID: src.ID, Weight: models.MaxWeight,
		Status: models.QuoteApproved, AuthorID: u.ID,
	})
	light := createQuote(t, db, models.QuoteModel{
		Text: "light", SourceID: src.ID, Weight: models.MinWeight,
		Status: models.QuoteApproved, AuthorID: u.ID,
	})

	const draws = 2200
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		q, err := svc.PickRandom()
		require.NoError(t, err)
		require.NotNil(t, q)
		counts[q.ID]++
	}

	// Expected split is 10:1 (2000 vs 200). Both must show up, and the heavy
	// one must dominate well past any plausible noise.
	assert.Greater(t, counts[light.ID], 0)
	assert.Greater(t, counts[heavy.ID], 6*counts[light.ID])
}

func TestTopOrdering(t *testing.T) {
	svc, db := newTestService(t)
	u := createUser(t, db, "alice")
	src := createSource(t, db, "Dune", models.SourceApproved)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	older := createQuote(t, db, models.QuoteModel{
		Base: models.Base{CreatedAt: base},
		Text: "older", SourceID: src.ID, Likes: 5, Views: 10,
		Status: models.QuoteApproved, AuthorID: u.ID,
	})
	mostViewed := createQuote(t, db, models.QuoteModel{
		Base: models.Base{CreatedAt: base.Add(time.Minute)},
		Text: "most viewed", SourceID: src.ID, Likes: 5, Views: 20,
		Status: models.QuoteApproved, AuthorID: u.ID,
	})
	fewLikes := createQuote(t, db, models.QuoteModel{
		Base: models.Base{CreatedAt: base.Add(2 * time.Minute)},
		Text: "few likes, many views", SourceID: src.ID, Likes: 3, Views: 99,
		Status: models.QuoteApproved, AuthorID: u.ID,
	})

	items, err := svc.Top(10, "")
	require.NoError(t, err)
	require.Len(t, items, 3)
	// Likes first, views break the tie, views never override likes.
	assert.Equal(t, mostViewed.ID, items[0].ID)
	assert.Equal(t, older.ID, items[1].ID)
	assert.Equal(t, fewLikes.ID, items[2].ID)
}

func TestTopFiltersByTag(t *testing.T) {
	svc, db := newTestService(t)
	u := createUser(t, db, "alice")
	src := createSource(t, db, "Dune", models.SourceApproved)

	tag := models.TagModel{Name: "wisdom"}
	require.NoError(t, db.Create(&tag).Error)

	tagged := createQuote(t, db, models.QuoteModel{
		Text: "tagged", SourceID: src.ID, Status: models.QuoteApproved, AuthorID: u.ID,
	})
	require.NoError(t, db.Model(&tagged).Association("Tags").Append(&tag))
	createQuote(t, db, models.QuoteModel{
		Text: "untagged", SourceID: src.ID, Status: models.QuoteApproved, AuthorID: u.ID,
	})

	items, err := svc.Top(10, tag.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, tagged.ID, items[0].ID)

	all, err := svc.Top(10, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestReactCounters(t *testing.T) {
	svc, db := newTestService(t)
	u := createUser(t, db, "alice")
	src := createSource(t, db, "Dune", models.SourceApproved)
	q := createQuote(t, db, models.QuoteModel{
		Text: "reactable", SourceID: src.ID, Status: models.QuoteApproved, AuthorID: u.ID,
	})

	require.NoError(t, svc.React(q.ID, "like"))
	require.NoError(t, svc.React(q.ID, "like"))
	require.NoError(t, svc.React(q.ID, "dislike"))

	got, err := svc.GetByID(q.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.Likes)
	assert.EqualValues(t, 1, got.Dislikes)

	assert.ErrorIs(t, svc.React(q.ID, "love"), errInvalidAction)
	// Unknown ids affect zero rows and are not an error.
	assert.NoError(t, svc.React("no-such-id", "like"))
}

func TestReactConcurrentIncrementsLoseNothing(t *testing.T) {
	svc, db := newTestService(t)
	u := createUser(t, db, "alice")
	src := createSource(t, db, "Dune", models.SourceApproved)
	q := createQuote(t, db, models.QuoteModel{
		Text: "contended", SourceID: src.ID, Status: models.QuoteApproved, AuthorID: u.ID,
	})

	const likes = 50
	var wg sync.WaitGroup
	for i := 0; i < likes; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.React(q.ID, "like"))
		}()
	}
	wg.Wait()

	got, err := svc.GetByID(q.ID)
	require.NoError(t, err)
	assert.EqualValues(t, likes, got.Likes)
}
