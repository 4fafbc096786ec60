package controllers

import (
	"strconv"

	"github.com/SalamHyped/BeanToMug-sub000/pkg/resp"
	"github.com/SalamHyped/BeanToMug-sub000/repository"
	"github.com/SalamHyped/BeanToMug-sub000/services"
	"github.com/SalamHyped/BeanToMug-sub000/utils"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Repo     *repository.OrderRepository
	Checkout *services.CheckoutService
}

func NewOrderController(repo *repository.OrderRepository, checkout *services.CheckoutService) *OrderController {
	return &OrderController{Repo: repo, Checkout: checkout}
}

// GET /orders
func (h *OrderController) ListForMe(c *gin.Context) {
	items, err := h.Repo.ListOrdersForUser(utils.CurrentUserID(c), 50)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /orders/:id
func (h *OrderController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}
	o, err := h.Repo.GetOrderForUser(utils.CurrentUserID(c), uint(id))
	if err != nil {
		resp.NotFound(c, "order not found")
		return
	}
	resp.OK(c, o)
}

// POST /orders/:id/cancel — ยกเลิกหลังจ่ายแล้ว คืนสต็อกด้วย
func (h *OrderController) CancelProcessing(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}
	o, err := h.Repo.GetOrderForUser(utils.CurrentUserID(c), uint(id))
	if err != nil {
		resp.NotFound(c, "order not found")
		return
	}
	if err := h.Checkout.CancelProcessing(o.ID); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"cancelled": true})
}
