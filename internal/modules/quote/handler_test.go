package quote

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cite-space/core/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, db := newTestService(t)
	r := gin.New()
	api := r.Group("/api/v2")
	passthrough := func(c *gin.Context) { c.Next() }
	NewHandler(svc).RegisterRoutes(api, passthrough)
	return r, db
}

func TestDetailEndpointReturnsEligibleQuote(t *testing.T) {
	r, db := newTestRouter(t)
	u := createUser(t, db, "alice")
	src := createSource(t, db, "Dune", models.SourceApproved)
	q := createQuote(t, db, models.QuoteModel{
		Text: "Fear is the mind-killer.", SourceID: src.ID, Status: models.QuoteApproved, AuthorID: u.ID,
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v2/quotes/"+q.ID, nil)
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Fear is the mind-killer.")
}

func TestDetailEndpointHidesUnmoderatedQuotes(t *testing.T) {
	r, db := newTestRouter(t)
	u := createUser(t, db, "alice")
	pending := createSource(t, db, "Unvetted", models.SourcePending)
	approved := createSource(t, db, "Dune", models.SourceApproved)

	draft := createQuote(t, db, models.QuoteModel{
		Text: "draft text that must stay private", SourceID: pending.ID,
		Status: models.QuoteDraft, AuthorID: u.ID,
	})
	rejected := createQuote(t, db, models.QuoteModel{
		Text: "rejected text that must stay private", SourceID: approved.ID,
		Status: models.QuoteRejected, AuthorID: u.ID,
	})

	// Knowing the id must not be enough to read an unmoderated quote.
	for _, q := range []models.QuoteModel{draft, rejected} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v2/quotes/"+q.ID, nil)
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.NotContains(t, rec.Body.String(), "must stay private")
	}
}
