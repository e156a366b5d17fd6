package domain

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
)

// ErrInsufficientCapacity is returned when a conditional capacity decrement
// finds less capacity left than the order asks for.
var ErrInsufficientCapacity = errors.New("insufficient capacity")

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
	OrderStatusRejected  = "rejected"
)

var ValidOrderStatuses = map[string]bool{
	OrderStatusPending:   true,
	OrderStatusConfirmed: true,
	OrderStatusCompleted: true,
	OrderStatusCancelled: true,
	OrderStatusRejected:  true,
}

const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

const (
	DeletedByCustomer = "customer"
	DeletedByAdmin    = "admin"
)

// Category detail payloads. Exactly one of these is serialized into
// Order.Details, selected by Order.ServiceCategory.

type PassengerOrder struct {
	SeatsBooked     int `json:"seats_booked"`
	LuggageQuantity int `json:"luggage_quantity"`
}

type ParcelOrder struct {
	Quantity int     `json:"quantity"`
	Weight   float64 `json:"weight"`
}

type CarTowingOrder struct {
	VehicleDetails     string `json:"vehicle_details"`
	TowingRequirements string `json:"towing_requirements,omitempty"`
}

type TrailerOrder struct {
	VehicleType         string `json:"vehicle_type"`
	TrailerRequirements string `json:"trailer_requirements,omitempty"`
}

type FurnitureOrder struct {
	ItemCount    int    `json:"item_count"`
	Dimensions   string `json:"dimensions,omitempty"`
	FragileItems bool   `json:"fragile_items"`
}

type AnimalOrder struct {
	AnimalCount  int    `json:"animal_count"`
	AnimalType   string `json:"animal_type"`
	SpecialNeeds string `json:"special_needs,omitempty"`
	CageRequired bool   `json:"cage_required"`
}

// Order references a customer and a service. ServiceCategory is copied from
// the service at creation time and selects which detail payload Details
// carries.
type Order struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Reference       string         `gorm:"column:reference;unique;not null" json:"reference"`
	CustomerID      uint           `gorm:"column:customer_id;not null;index" json:"customer_id"`
	ServiceID       uint           `gorm:"column:service_id;not null;index" json:"service_id"`
	ServiceCategory string         `gorm:"column:service_category;not null" json:"service_category"`
	Details         datatypes.JSON `gorm:"column:details;type:jsonb" json:"details"`
	TotalPrice      float64        `gorm:"column:total_price;not null" json:"total_price"`
	Notes           string         `gorm:"column:notes" json:"notes,omitempty"`
	OrderStatus     string         `gorm:"column:order_status;default:pending" json:"order_status"`
	PaymentStatus   string         `gorm:"column:payment_status;default:unpaid" json:"payment_status"`
	DeletedBy       string         `gorm:"column:deleted_by" json:"deleted_by,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) EncodeDetails(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	o.Details = datatypes.JSON(raw)
	return nil
}

func (o *Order) DecodeDetails(v any) error {
	if len(o.Details) == 0 {
		return errors.New("order has no detail payload")
	}

	return json.Unmarshal(o.Details, v)
}

// OrderDetail joins an order with its service and customer summaries for
// responses and notification emails.
type OrderDetail struct {
	Order    Order          `json:"order"`
	Service  ServiceSummary `json:"service"`
	Customer UserSummary    `json:"customer"`
}
