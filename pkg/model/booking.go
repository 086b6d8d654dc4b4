package model

import (
	"time"
)

// Booking is a reservation of one room for an inclusive date range.
// JSON keys keep the camelCase wire contract of the original API;
// guests and totalPrice are accepted as-is, without range validation.
type Booking struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID       string    `json:"userId" bson:"user_id" validate:"required"`
	RoomID       string    `json:"roomId" bson:"room_id" validate:"required"`
	CheckInDate  Date      `json:"checkInDate" bson:"check_in_date" validate:"required"`
	CheckOutDate Date      `json:"checkOutDate" bson:"check_out_date" validate:"required"`
	Guests       int       `json:"guests" bson:"guests"`
	TotalPrice   float64   `json:"totalPrice" bson:"total_price"`
	CreatedAt    time.Time `json:"createdAt,omitempty" bson:"created_at"`
}
