package domain

// RoomID is a client-supplied opaque identifier. There is no server-side
// create step: a room exists exactly while it has members.
type RoomID string

const MaxRoomIDLen = 64
