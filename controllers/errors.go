package controllers

import (
	"errors"
	"net/http"

	"github.com/SalamHyped/BeanToMug-sub000/pkg/resp"
	"github.com/SalamHyped/BeanToMug-sub000/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// แปลง error จาก service เป็น HTTP response แบบเดียวกันทุก endpoint
func writeServiceError(c *gin.Context, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": ve.Error(), "detail": ve})
		return
	}
	var pce *services.PriceChangedError
	if errors.As(err, &pce) {
		// ลูกค้าต้องยืนยันราคาใหม่เอง ส่งส่วนต่างกลับไปครบชุด
		resp.Conflict(c, "prices changed", pce)
		return
	}
	var ge *services.GatewayError
	if errors.As(err, &ge) {
		// รายละเอียด gateway ไม่หลุดออกไป ฝั่งเราจัดสถานะเรียบร้อยแล้ว
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "payment failed"})
		return
	}
	if errors.Is(err, services.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		resp.NotFound(c, "not found")
		return
	}
	if errors.Is(err, services.ErrAlreadyProcessed) {
		resp.Conflict(c, err.Error(), nil)
		return
	}
	if errors.Is(err, services.ErrEmptyCart) {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.ServerError(c, err)
}
