package middlewares

import (
	"sync"

	"github.com/SalamHyped/BeanToMug-sub000/entity"
	"github.com/SalamHyped/BeanToMug-sub000/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookie = "btm_session"

// SessionStore เก็บตะกร้า guest ในหน่วยความจำ key ด้วย cookie id
// ตะกร้า guest อยู่แค่ช่วงอายุ session — ดับเมื่อ process จบ ไม่ลง DB
type SessionStore struct {
	mu    sync.Mutex
	carts map[string]*services.GuestCart
}

func NewSessionStore() *SessionStore {
	return &SessionStore{carts: make(map[string]*services.GuestCart)}
}

// bag ของ session เดียว ส่งต่อให้ service ผ่าน gin context
type sessionBag struct {
	store *SessionStore
	id    string
}

func (b *sessionBag) GuestCart() *services.GuestCart {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	c, ok := b.store.carts[b.id]
	if !ok {
		c = &services.GuestCart{OrderType: entity.TakeAway}
		b.store.carts[b.id] = c
	}
	return c
}

func (b *sessionBag) SetGuestCart(c *services.GuestCart) {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	b.store.carts[b.id] = c
}

func (s *SessionStore) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetCookie(sessionCookie, id, 86400*7, "/", "", false, true)
		}
		c.Set("sessionBag", &sessionBag{store: s, id: id})
		c.Next()
	}
}

func SessionBagFrom(c *gin.Context) services.SessionBag {
	v, _ := c.Get("sessionBag")
	bag, _ := v.(services.SessionBag)
	return bag
}
