package ws

import (
	"net/http"

	"github.com/SalamHyped/BeanToMug-sub000/services"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// StockHub กระจาย event สต็อกวัตถุดิบให้ dashboard ที่ต่อ WebSocket อยู่
type StockHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan services.StockEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
}

func NewStockHub() *StockHub {
	return &StockHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan services.StockEvent, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

// คอยฟัง register/unregister/broadcast ตลอดเวลา
func (h *StockHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = true

		case conn := <-h.unregister:
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}

		case ev := <-h.broadcast:
			for conn := range h.clients {
				if err := conn.WriteJSON(ev); err != nil {
					log.WithError(err).Warn("ws write error")
					conn.Close()
					delete(h.clients, conn)
				}
			}
		}
	}
}

// NotifyStock เป็น best-effort — ช่องเต็มก็ทิ้ง event ห้าม block เส้นทาง order
func (h *StockHub) NotifyStock(ev services.StockEvent) {
	select {
	case h.broadcast <- ev:
	default:
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/stock
func (h *StockHub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("ws upgrade error")
		return
	}
	h.register <- conn

	// อ่านทิ้งไว้เฉย ๆ เพื่อจับตอน client หลุด
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.unregister <- conn
				return
			}
		}
	}()
}
