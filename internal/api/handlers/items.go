package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sirupsen/logrus"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
	"github.com/BaronguyenVinasu/riftcounter/internal/services"
	"github.com/BaronguyenVinasu/riftcounter/internal/utils"
)

type ItemHandler struct {
	items  services.ItemSource
	logger *logrus.Logger
}

func NewItemHandler(items services.ItemSource, logger *logrus.Logger) *ItemHandler {
	return &ItemHandler{items: items, logger: logger}
}

// ListItems handles GET /items?tag=&search=&page=&limit=
// search is a fuzzy, case and accent insensitive match on the item name.
func (h *ItemHandler) ListItems(c *gin.Context) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	limit, err := queryInt(c, "limit", services.DefaultPageSize)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	tag := c.Query("tag")
	search := c.Query("search")

	filtered := make([]*models.Item, 0)
	for _, item := range h.items.ListItems() {
		if tag != "" && !item.HasTag(tag) {
			continue
		}
		if search != "" && !fuzzy.MatchNormalizedFold(search, item.Name) {
			continue
		}
		filtered = append(filtered, item)
	}

	data, p := paginate(filtered, page, limit)
	respondPage(c, data, p)
}

// GetItem handles GET /items/:id
func (h *ItemHandler) GetItem(c *gin.Context) {
	id := c.Param("id")
	item, ok := h.items.GetItemByID(id)
	if !ok {
		respondError(c, h.logger, utils.NewNotFoundError(utils.CodeItemNotFound, "Item", id))
		return
	}
	respondOK(c, item)
}

// paginate slices a 1-based page; limit is capped at MaxPageSize.
func paginate[T any](all []T, page, limit int) ([]T, Pagination) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = services.DefaultPageSize
	}
	if limit > services.MaxPageSize {
		limit = services.MaxPageSize
	}
	total := len(all)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)
	return all[start:end], Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}
}
