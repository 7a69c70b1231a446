package domain

import "time"

type RoomType string

const (
	RoomStandard RoomType = "Standard"
	RoomFamily   RoomType = "Family"
	RoomSuite    RoomType = "Suite"
)

func ParseRoomType(s string) (RoomType, bool) {
	switch RoomType(s) {
	case RoomStandard, RoomFamily, RoomSuite:
		return RoomType(s), true
	default:
		return "", false
	}
}

type Room struct {
	ID         int64     `json:"id"`
	RoomNumber int       `json:"room_number"`
	Type       RoomType  `json:"type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RoomAvailability is a room joined with the availability verdict for a
// requested window.
type RoomAvailability struct {
	ID         int64    `json:"id"`
	RoomNumber int      `json:"room_number"`
	Type       RoomType `json:"type"`
	Available  bool     `json:"available"`
}
