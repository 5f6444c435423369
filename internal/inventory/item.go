package inventory

import "time"

// Status is the lifecycle state of a tracked food item.
type Status string

const (
	StatusActive   Status = "active"
	StatusExpired  Status = "expired"
	StatusConsumed Status = "consumed"
	StatusWasted   Status = "wasted"
	StatusShared   Status = "shared"
	StatusDeleted  Status = "deleted"
)

// ValidStatus reports whether s is one of the defined lifecycle states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusExpired, StatusConsumed, StatusWasted, StatusShared, StatusDeleted:
		return true
	}
	return false
}

// FoodItem is one tracked inventory record. The expiry date comes either
// from the detection pipeline (with its OCR confidence) or manual entry
// (confidence zero).
type FoodItem struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	PurchaseDate  time.Time `json:"purchase_date"`
	ExpiryDate    time.Time `json:"expiry_date"`
	Quantity      float64   `json:"quantity"`
	Unit          string    `json:"unit"`
	Location      string    `json:"location"`
	Status        Status    `json:"status"`
	OCRConfidence float64   `json:"ocr_confidence"`
	ImagePath     string    `json:"image_path,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AlertRecord is one logged expiry alert for an item.
type AlertRecord struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"item_id"`
	Level         string    `json:"level"` // critical, warning, info
	TriggeredAt   time.Time `json:"triggered_at"`
	DaysRemaining int       `json:"days_remaining"`
}
