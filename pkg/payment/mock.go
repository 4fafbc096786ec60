package payment

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MockGateway จำลอง gateway สำหรับ dev/test — สั่งให้ล้มได้ตาม ref
type MockGateway struct {
	mu      sync.Mutex
	intents map[string]*Intent

	// ตั้งค่าก่อนเรียกเพื่อจำลองความล้มเหลว
	FailCreate  bool
	DeclineNext bool
}

func NewMockGateway() *MockGateway {
	return &MockGateway{intents: make(map[string]*Intent)}
}

func (g *MockGateway) CreateIntent(amount int64, currency, description string) (*Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailCreate {
		return nil, fmt.Errorf("mock gateway: create intent unavailable")
	}
	in := &Intent{
		ExternalID: "pi_" + uuid.NewString(),
		Amount:     amount,
		Currency:   currency,
	}
	g.intents[in.ExternalID] = in
	return in, nil
}

func (g *MockGateway) Capture(externalID string) (*CaptureResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.intents[externalID]; !ok {
		return nil, fmt.Errorf("mock gateway: unknown intent %s", externalID)
	}
	if g.DeclineNext {
		g.DeclineNext = false
		return &CaptureResult{ExternalID: externalID, Status: CaptureDeclined}, nil
	}
	return &CaptureResult{ExternalID: externalID, Status: CaptureSucceeded}, nil
}
