package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
	"github.com/BaronguyenVinasu/riftcounter/internal/utils"
)

func itemRouter(e *engine) *gin.Engine {
	router := gin.New()
	h := NewItemHandler(e.store, quietLogger())
	router.GET("/api/v1/items", h.ListItems)
	router.GET("/api/v1/items/:id", h.GetItem)
	return router
}

func TestListItems(t *testing.T) {
	router := itemRouter(newEngine(t))

	w, env := perform(t, router, http.MethodGet, "/api/v1/items?tag=boots", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.Item
	decode(t, env.Data, &items)
	assert.Len(t, items, 6)
	for _, it := range items {
		assert.Contains(t, it.Tags, "boots")
	}
	assert.Equal(t, 6, env.Pagination.Total)
	assert.Equal(t, 1, env.Pagination.TotalPages)
}

func TestListItems_FuzzySearch(t *testing.T) {
	router := itemRouter(newEngine(t))

	w, env := perform(t, router, http.MethodGet, "/api/v1/items?search=zhonya", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.Item
	decode(t, env.Data, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "zhonyas-hourglass", items[0].ID)

	w, env = perform(t, router, http.MethodGet, "/api/v1/items?search=inf&tag=crit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, env.Data, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "infinity-edge", items[0].ID)
}

func TestListItems_Pagination(t *testing.T) {
	router := itemRouter(newEngine(t))

	w, env := perform(t, router, http.MethodGet, "/api/v1/items?limit=10&page=4", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.Item
	decode(t, env.Data, &items)
	assert.Len(t, items, 2)
	assert.Equal(t, 32, env.Pagination.Total)
	assert.Equal(t, 4, env.Pagination.TotalPages)

	w, env = perform(t, router, http.MethodGet, "/api/v1/items?page=9", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, env.Data, &items)
	assert.Empty(t, items)
}

func TestGetItem(t *testing.T) {
	router := itemRouter(newEngine(t))

	w, env := perform(t, router, http.MethodGet, "/api/v1/items/mercury-treads", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var item models.Item
	decode(t, env.Data, &item)
	assert.Equal(t, "Mercury's Treads", item.Name)

	w, env = perform(t, router, http.MethodGet, "/api/v1/items/excalibur", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, utils.CodeItemNotFound, env.Code)
}

func TestPaginateCapsLimit(t *testing.T) {
	all := make([]int, 450)
	page, p := paginate(all, 0, 1000)
	assert.Len(t, page, 200)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 200, p.Limit)
	assert.Equal(t, 3, p.TotalPages)
}
