package controllers

import (
	"strconv"

	"github.com/SalamHyped/BeanToMug-sub000/entity"
	"github.com/SalamHyped/BeanToMug-sub000/middlewares"
	"github.com/SalamHyped/BeanToMug-sub000/pkg/resp"
	"github.com/SalamHyped/BeanToMug-sub000/services"
	"github.com/SalamHyped/BeanToMug-sub000/utils"
	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController {
	return &CartController{Svc: s}
}

// GET /cart — guest กับ user ใช้ endpoint เดียวกัน backend เลือกเอง
func (h *CartController) Get(c *gin.Context) {
	view, err := h.Svc.Get(utils.CurrentUserID(c), middlewares.SessionBagFrom(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, view)
}

// POST /cart/items
func (h *CartController) Add(c *gin.Context) {
	var req services.AddLineIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.AddLine(utils.CurrentUserID(c), middlewares.SessionBagFrom(c), &req); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, gin.H{"added": true})
}

// PATCH /cart/items/:id
func (h *CartController) UpdateQty(c *gin.Context) {
	lineID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid line id")
		return
	}
	// qty = 0 คือลบ line ทิ้ง
	var body struct {
		Qty int `json:"qty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.UpdateQty(utils.CurrentUserID(c), middlewares.SessionBagFrom(c), uint(lineID), body.Qty); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}

// DELETE /cart/items/:id
func (h *CartController) RemoveLine(c *gin.Context) {
	lineID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid line id")
		return
	}
	if err := h.Svc.RemoveLine(utils.CurrentUserID(c), middlewares.SessionBagFrom(c), uint(lineID)); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"removed": true})
}

// DELETE /cart
func (h *CartController) Clear(c *gin.Context) {
	if err := h.Svc.Clear(utils.CurrentUserID(c), middlewares.SessionBagFrom(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"cleared": true})
}

// PATCH /cart/order-type
func (h *CartController) SetOrderType(c *gin.Context) {
	var body struct {
		OrderType entity.OrderType `json:"orderType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.SetOrderType(utils.CurrentUserID(c), middlewares.SessionBagFrom(c), body.OrderType); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"orderType": body.OrderType})
}
