package domain

import "time"

const (
	RequestStatusPending   = "pending"
	RequestStatusAccepted  = "accepted"
	RequestStatusCancelled = "cancelled"
	RequestStatusFulfilled = "fulfilled"
)

var ValidRequestCategories = map[string]bool{
	"Standard":      true,
	"Express":       true,
	"Pet Transport": true,
	"Oversized":     true,
	"Luxury":        true,
}

// TransportRequest is a customer-authored ad-hoc request that transporters
// can claim. Only the owner may edit or delete it, and only while pending.
type TransportRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	Departure   string    `gorm:"column:departure;not null" json:"departure"`
	Destination string    `gorm:"column:destination;not null" json:"destination"`
	Date        time.Time `gorm:"column:date;not null" json:"date"`
	Passengers  int       `gorm:"column:passengers;not null" json:"passengers"`
	Category    string    `gorm:"column:category;not null" json:"category"`
	Notes       string    `gorm:"column:notes" json:"notes,omitempty"`
	Status      string    `gorm:"column:status;default:pending" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (TransportRequest) TableName() string {
	return "transport_requests"
}

// RequestBooking links a transporter to a transport request it accepted.
type RequestBooking struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TransporterID uint      `gorm:"column:transporter_id;not null;index" json:"transporter_id"`
	RequestID     uint      `gorm:"column:request_id;not null;index" json:"request_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func (RequestBooking) TableName() string {
	return "request_bookings"
}
