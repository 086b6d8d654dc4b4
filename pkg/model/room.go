package model

import "time"

// Room capacity and price are informational here; admission only checks
// that the room exists.
type Room struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name          string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Type          string    `json:"type" bson:"type" validate:"required,oneof=single double suite deluxe"`
	PricePerNight float64   `json:"pricePerNight" bson:"price_per_night" validate:"gte=0"`
	Capacity      int       `json:"capacity" bson:"capacity" validate:"required,min=1,max=20"`
	CreatedAt     time.Time `json:"createdAt,omitempty" bson:"created_at"`
}
