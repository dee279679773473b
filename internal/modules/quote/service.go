package quote

import (
	"errors"
	"math/rand"

	"github.com/cite-space/core/internal/models"
	"github.com/cite-space/core/internal/modules/source"
	"github.com/cite-space/core/internal/pkg/normalize"
	"github.com/cite-space/core/internal/pkg/pagination"
	"github.com/cite-space/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Service struct {
	db      *gorm.DB
	sources *source.Service
}

func NewService(db *gorm.DB, sources *source.Service) *Service {
	return &Service{db: db, sources: sources}
}

// eligible is the selection base: approved quotes of approved sources. Both
// status fields are filtered explicitly — historical rows must never leak
// even if they predate the invariant.
func (s *Service) eligible() *gorm.DB {
	return s.db.Model(&models.QuoteModel{}).
		Joins("JOIN sources ON sources.id = quotes.source_id AND sources.deleted_at IS NULL").
		Where("quotes.status = ? AND sources.status = ?", models.QuoteApproved, models.SourceApproved)
}

// Submit creates a draft quote, resolving its source by name (creating a
// pending source when unknown).
func (s *Service) Submit(authorID string, dto *CreateQuoteDTO) (*models.QuoteModel, error) {
	text := normalize.QuoteText(dto.Text)
	if text == "" {
		return nil, errEmptyText
	}
	weight := dto.Weight
	if weight == 0 {
		weight = models.MinWeight
	}
	if weight < models.MinWeight || weight > models.MaxWeight {
		return nil, errWeightOutOfRange
	}

	src, _, err := s.sources.GetOrCreateByName(dto.SourceName, authorID)
	if err != nil {
		return nil, err
	}

	q := models.QuoteModel{
		Text:     text,
		SourceID: src.ID,
		Weight:   weight,
		Status:   models.QuoteDraft,
		AuthorID: authorID,
	}
	if err := s.db.Create(&q).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errDuplicateQuote
		}
		return nil, err
	}
	q.Source = *src
	return &q, nil
}

// PickRandom performs one weighted draw over the eligible set: a weight-10
// quote is ten times as likely as a weight-1 quote. Returns nil on an empty
// set. A successful pick registers a view.
func (s *Service) PickRandom() (*models.QuoteModel, error) {
	type idWeight struct {
		ID     string
		Weight int
	}
	var rows []idWeight
	if err := s.eligible().Select("quotes.id, quotes.weight").Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	total := 0
	for _, r := range rows {
		if r.Weight < models.MinWeight {
			r.Weight = models.MinWeight
		}
		total += r.Weight
	}
	n := rand.Intn(total)
	chosen := rows[len(rows)-1].ID
	for _, r := range rows {
		w := r.Weight
		if w < models.MinWeight {
			w = models.MinWeight
		}
		if n < w {
			chosen = r.ID
			break
		}
		n -= w
	}

	// Home-page display counts as a view.
	if err := s.IncrementView(chosen); err != nil {
		return nil, err
	}
	return s.GetByID(chosen)
}

// Top returns the ranked listing: likes desc, views desc, newest first,
// optionally restricted to a tag.
func (s *Service) Top(n int, tagID string) ([]models.QuoteModel, error) {
	tx := s.eligible().
		Preload("Source").Preload("Tags").Preload("Author")
	if tagID != "" {
		tx = tx.Joins("JOIN quote_tags ON quote_tags.quote_id = quotes.id").
			Where("quote_tags.tag_id = ?", tagID)
	}
	var items []models.QuoteModel
	err := tx.Order("quotes.likes DESC, quotes.views DESC, quotes.created_at DESC").
		Limit(n).
		Find(&items).Error
	return items, err
}

// List returns the eligible set paged, newest first.
func (s *Service) List(q pagination.Query) ([]models.QuoteModel, response.Pagination, error) {
	tx := s.eligible().
		Preload("Source").Preload("Tags").Preload("Author").
		Order("quotes.created_at DESC")
	var items []models.QuoteModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

// GetVisible returns an eligible quote by id, or nil. Drafts and rejected
// quotes do not exist as far as visitors are concerned.
func (s *Service) GetVisible(id string) (*models.QuoteModel, error) {
	var q models.QuoteModel
	err := s.eligible().
		Preload("Source").Preload("Tags").Preload("Author").
		Where("quotes.id = ?", id).
		First(&q).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

// GetByID returns a quote of any status, or nil. Callers must have already
// established eligibility (PickRandom) or hold moderator rights.
func (s *Service) GetByID(id string) (*models.QuoteModel, error) {
	var q models.QuoteModel
	if err := s.db.Preload("Source").Preload("Tags").Preload("Author").
		First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

// React bumps the like or dislike counter.
func (s *Service) React(id, action string) error {
	switch action {
	case actionLike:
		return s.increment(id, "likes")
	case actionDislike:
		return s.increment(id, "dislikes")
	default:
		return errInvalidAction
	}
}

// IncrementView registers a view.
func (s *Service) IncrementView(id string) error {
	return s.increment(id, "views")
}

// increment is an atomic in-place counter bump. Updating a nonexistent id
// affects zero rows and is deliberately not an error.
func (s *Service) increment(id, col string) error {
	return s.db.Model(&models.QuoteModel{}).
		Where("id = ?", id).
		UpdateColumn(col, gorm.Expr(col+" + 1")).Error
}
