package configs

import (
	"sync"
	"time"
)

// Settings = ค่าที่ pricing ใช้ตอนรันไทม์ ฉีดเข้า service เพื่อให้เทสกำหนดค่าได้
type Settings interface {
	VATRate() float64
	PriceTolerance() int64 // ส่วนต่างราคาที่ยอมรับได้ตอน revalidate (สตางค์)
	Refresh()
}

// StaticSettings ค่าคงที่ ใช้ในเทสเป็นหลัก
type StaticSettings struct {
	VAT       float64
	Tolerance int64
}

func (s StaticSettings) VATRate() float64      { return s.VAT }
func (s StaticSettings) PriceTolerance() int64 { return s.Tolerance }
func (s StaticSettings) Refresh()              {}

// EnvSettings อ่านจาก Config แล้ว cache ตาม TTL
// (แทน cache จิปาถะรายจุด จะ Refresh เมื่อไหร่ก็ชัดเจน)
type EnvSettings struct {
	TTL time.Duration

	mu        sync.Mutex
	vat       float64
	tolerance int64
	loadedAt  time.Time
}

func NewEnvSettings(ttl time.Duration) *EnvSettings {
	s := &EnvSettings{TTL: ttl}
	s.Refresh()
	return s
}

func (s *EnvSettings) VATRate() float64 {
	s.refreshIfStale()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vat
}

func (s *EnvSettings) PriceTolerance() int64 {
	s.refreshIfStale()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tolerance
}

func (s *EnvSettings) Refresh() {
	cfg := LoadConfig()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vat = cfg.VATRate
	s.tolerance = cfg.PriceTolerance
	s.loadedAt = time.Now()
}

func (s *EnvSettings) refreshIfStale() {
	s.mu.Lock()
	stale := s.TTL > 0 && time.Since(s.loadedAt) > s.TTL
	s.mu.Unlock()
	if stale {
		s.Refresh()
	}
}
