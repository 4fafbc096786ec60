package controllers

import (
	"github.com/SalamHyped/BeanToMug-sub000/middlewares"
	"github.com/SalamHyped/BeanToMug-sub000/pkg/resp"
	"github.com/SalamHyped/BeanToMug-sub000/services"
	"github.com/SalamHyped/BeanToMug-sub000/utils"
	"github.com/gin-gonic/gin"
)

type CheckoutController struct{ Svc *services.CheckoutService }

func NewCheckoutController(s *services.CheckoutService) *CheckoutController {
	return &CheckoutController{Svc: s}
}

// POST /checkout — ตะกร้า → order Pending + payment intent
func (h *CheckoutController) Begin(c *gin.Context) {
	out, err := h.Svc.Begin(utils.CurrentUserID(c), middlewares.SessionBagFrom(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, out)
}

// POST /checkout/capture — เรียกเมื่อ client ยืนยันจ่ายกับ gateway แล้ว
func (h *CheckoutController) Capture(c *gin.Context) {
	var body struct {
		PaymentRef string `json:"paymentRef" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	o, err := h.Svc.Capture(body.PaymentRef)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"orderId": o.ID, "status": "Processing", "total": o.Total})
}

// POST /checkout/cancel — ผู้เรียกเลิกเอง ไม่แตะ gateway
func (h *CheckoutController) Cancel(c *gin.Context) {
	var body struct {
		PaymentRef string `json:"paymentRef" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.Cancel(body.PaymentRef); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"cancelled": true})
}
