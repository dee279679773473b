package tag

import (
	"errors"

	"github.com/cite-space/core/internal/models"
	"github.com/cite-space/core/internal/pkg/normalize"
	"github.com/cite-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type tagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// List returns the whole tag vocabulary, alphabetical.
func (s *Service) List() ([]models.TagModel, error) {
	var items []models.TagModel
	err := s.db.Order("name ASC").Find(&items).Error
	return items, err
}

// GetOrCreate returns the tag with the given name, creating it when absent.
// Re-adding an existing name succeeds quietly.
func (s *Service) GetOrCreate(name string) (*models.TagModel, error) {
	name = normalize.CollapseSpaces(name)
	if name == "" {
		return nil, errEmptyName
	}

	var existing models.TagModel
	err := s.db.First(&existing, "name = ?", name).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	t := models.TagModel{Name: name}
	if err := s.db.Create(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var winner models.TagModel
			if ferr := s.db.First(&winner, "name = ?", name).Error; ferr != nil {
				return nil, ferr
			}
			return &winner, nil
		}
		return nil, err
	}
	return &t, nil
}

// GetByIDs resolves a tag id set, erroring when any id is unknown.
func (s *Service) GetByIDs(ids []string) ([]models.TagModel, error) {
	return getByIDs(s.db, ids)
}

// GetByIDsTx is GetByIDs running inside the caller's transaction.
func (s *Service) GetByIDsTx(tx *gorm.DB, ids []string) ([]models.TagModel, error) {
	return getByIDs(tx, ids)
}

func getByIDs(tx *gorm.DB, ids []string) ([]models.TagModel, error) {
	var items []models.TagModel
	if err := tx.Find(&items, "id IN ?", ids).Error; err != nil {
		return nil, err
	}
	if len(items) != len(ids) {
		return nil, errUnknownTag
	}
	return items, nil
}

var (
	errEmptyName  = errors.New("tag name must not be empty")
	errUnknownTag = errors.New("unknown tag id")
)

// IsEmptyName reports whether err is the empty-name validation error.
func IsEmptyName(err error) bool { return errors.Is(err, errEmptyName) }

// IsUnknownTag reports whether err is the unknown-id validation error.
func IsUnknownTag(err error) bool { return errors.Is(err, errUnknownTag) }

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/tags")
	g.GET("", h.list)
}

// GET /tags — vocabulary for the top-page filter.
func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]tagResponse, len(items))
	for i, t := range items {
		out[i] = tagResponse{ID: t.ID, Name: t.Name}
	}
	response.OK(c, out)
}
