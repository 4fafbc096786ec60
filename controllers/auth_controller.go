package controllers

import (
	"github.com/SalamHyped/BeanToMug-sub000/middlewares"
	"github.com/SalamHyped/BeanToMug-sub000/pkg/resp"
	"github.com/SalamHyped/BeanToMug-sub000/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type AuthController struct {
	Svc  *services.AuthService
	Cart *services.CartService
}

func NewAuthController(s *services.AuthService, cart *services.CartService) *AuthController {
	return &AuthController{Svc: s, Cart: cart}
}

type registerReq struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// POST /auth/register
func (h *AuthController) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := h.Svc.Register(req.Email, req.Password, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, gin.H{"id": user.ID, "email": user.Email})
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login — ล็อกอินสำเร็จแล้วตะกร้า guest ใน session จะถูก merge
// เข้า draft ของ user (ราคา re-resolve ใหม่หมด)
func (h *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	token, user, err := h.Svc.Login(req.Email, req.Password)
	if err != nil {
		resp.Unauthorized(c, err.Error())
		return
	}

	if bag := middlewares.SessionBagFrom(c); bag != nil {
		if err := h.Cart.MergeOnLogin(bag, user.ID); err != nil {
			// ล็อกอินสำเร็จแล้ว merge พังไม่ควรเตะลูกค้าออก — ตะกร้า session ยังอยู่ครบ
			log.WithError(err).WithField("userId", user.ID).Error("cart merge on login failed")
		}
	}

	resp.OK(c, gin.H{"token": token, "user": gin.H{"id": user.ID, "email": user.Email, "firstName": user.FirstName}})
}
