package controllers

import (
	"strconv"

	"github.com/SalamHyped/BeanToMug-sub000/pkg/resp"
	"github.com/SalamHyped/BeanToMug-sub000/repository"
	"github.com/SalamHyped/BeanToMug-sub000/services"
	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Catalog *repository.CatalogRepository
	Pricing *services.PricingService
}

func NewMenuController(catalog *repository.CatalogRepository, pricing *services.PricingService) *MenuController {
	return &MenuController{Catalog: catalog, Pricing: pricing}
}

// GET /menu
func (h *MenuController) List(c *gin.Context) {
	items, err := h.Catalog.ListItems()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /menu/:id — เมนู + กลุ่มตัวเลือกทั้งหมด
func (h *MenuController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid menu id")
		return
	}
	item, err := h.Catalog.GetItemBasics(uint(id))
	if err != nil {
		resp.NotFound(c, "menu not found")
		return
	}
	groups, err := h.Catalog.GroupsForItem(uint(id))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"item": item, "groups": groups})
}

// POST /menu/:id/quote — ราคาโชว์หน้าจอ ใช้ oracle ตัวเดียวกับตอน checkout
func (h *MenuController) Quote(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid menu id")
		return
	}
	var body struct {
		IngredientIDs []uint `json:"ingredientIds"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	q, err := h.Pricing.Quote(uint(id), body.IngredientIDs)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, q)
}
