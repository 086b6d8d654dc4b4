package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")
)

// Messages pinned by the public booking API. Clients of the service
// this one replaces match on the exact strings.
const (
	MsgUserNotFound  = "User not found!"
	MsgRoomNotFound  = "Room not found!"
	MsgRoomConflict  = "Room already booked for selected dates!"
	MsgBookingPlaced = "Room booked successfully!"
)
