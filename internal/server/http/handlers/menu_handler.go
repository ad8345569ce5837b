package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/sushibar/internal/server/http/dto"
	"github.com/polkiloo/sushibar/internal/server/http/middleware"
	"github.com/polkiloo/sushibar/internal/usecase"
)

// MenuHandler serves public menu reads and staff menu maintenance.
type MenuHandler struct {
	menu MenuFacade
}

// NewMenuHandler creates MenuHandler instance.
func NewMenuHandler(menu MenuFacade) *MenuHandler {
	return &MenuHandler{menu: menu}
}

// Menu handles GET /menu.
func (h *MenuHandler) Menu(c *gin.Context) {
	view, err := h.menu.Menu(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMenuResponse(view))
}

// Featured handles GET /menu/featured.
func (h *MenuHandler) Featured(c *gin.Context) {
	items, err := h.menu.FeaturedItems(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMenuItemsResponse(items))
}

// Search handles GET /api/search-menu-items?q=.
func (h *MenuHandler) Search(c *gin.Context) {
	hits, err := h.menu.SearchMenu(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSearchResults(hits))
}

// CreateCategory handles POST /category/create.
func (h *MenuHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		writeBadRequest(c, invalidJSONMessage)
		return
	}
	in := usecase.CategoryInput{Name: req.Name, Description: req.Description, AddedBy: req.AddedBy}
	if _, err := h.menu.CreateCategory(c.Request.Context(), middleware.CurrentPrincipal(c), in); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.StatusResponse{Success: true})
}

// CreateItem handles POST /dashboard/menuitems.
func (h *MenuHandler) CreateItem(c *gin.Context) {
	var req dto.MenuItemRequest
	if err := c.ShouldBind(&req); err != nil {
		writeBadRequest(c, invalidJSONMessage)
		return
	}
	item, err := h.menu.CreateMenuItem(c.Request.Context(), middleware.CurrentPrincipal(c), req.Input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewMenuItemResponse(*item))
}

// UpdateItem handles PUT /dashboard/menuitems/:id.
func (h *MenuHandler) UpdateItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		writeBadRequest(c, "invalid menu item id")
		return
	}
	var req dto.MenuItemRequest
	if err := c.ShouldBind(&req); err != nil {
		writeBadRequest(c, invalidJSONMessage)
		return
	}
	item, err := h.menu.UpdateMenuItem(c.Request.Context(), middleware.CurrentPrincipal(c), id, req.Input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMenuItemResponse(*item))
}

// DeleteItem handles DELETE /dashboard/menuitems/:id.
func (h *MenuHandler) DeleteItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		writeBadRequest(c, "invalid menu item id")
		return
	}
	if err := h.menu.DeleteMenuItem(c.Request.Context(), middleware.CurrentPrincipal(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Success: true})
}
