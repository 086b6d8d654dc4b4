package model

import "time"

// BookingLock is an advisory lock guarding concurrent admission checks
// for the same room and date range. The _id doubles as the lock key, so
// a duplicate key error on insert means another request holds the slot.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
