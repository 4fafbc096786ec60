package payment

// Gateway = ขอบเขตเดียวของระบบที่ข้าม process ไปหาโลกภายนอก
// อาจช้าหรือล่มได้ — ฝั่ง checkout ไม่ retry ให้ จัดประเภทความล้มเหลวทันที
type Gateway interface {
	CreateIntent(amount int64, currency, description string) (*Intent, error)
	Capture(externalID string) (*CaptureResult, error)
}

type Intent struct {
	ExternalID string `json:"externalId"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
}

type CaptureStatus string

const (
	CaptureSucceeded CaptureStatus = "succeeded"
	CaptureDeclined  CaptureStatus = "declined"
)

type CaptureResult struct {
	ExternalID string        `json:"externalId"`
	Status     CaptureStatus `json:"status"`
}
