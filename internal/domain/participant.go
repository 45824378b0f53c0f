// Package domain contains entities without logic, just meta-data.
package domain

import (
	"fmt"
	"math/rand"
)

const MaxUsernameLen = 36

// ConnID identifies one live connection. It is assigned on connect and is
// not stable across reconnects.
type ConnID string

// Participant is the display identity bound to a single connection.
// It is immutable for the lifetime of that connection.
type Participant struct {
	ID       ConnID `json:"id"`
	Username string `json:"username"`
	Color    string `json:"color"`
}

// Palette holds the display colors participants are assigned from.
var Palette = []string{
	"#e06c75", "#98c379", "#e5c07b", "#61afef",
	"#c678dd", "#56b6c2", "#d19a66", "#abb2bf",
}

var (
	adjectives = []string{
		"brave", "calm", "eager", "fuzzy", "jolly",
		"lucky", "mellow", "nimble", "quick", "witty",
	}
	animals = []string{
		"otter", "falcon", "lynx", "panda", "heron",
		"badger", "gecko", "marmot", "puffin", "tapir",
	}
)

// NewParticipant generates a fresh display identity for a connection.
// Names and colors are random on every connect; there is no per-room
// uniqueness check and no continuity across reconnects.
func NewParticipant(id ConnID) *Participant {
	return &Participant{
		ID:       id,
		Username: fmt.Sprintf("%s-%s", adjectives[rand.Intn(len(adjectives))], animals[rand.Intn(len(animals))]),
		Color:    Palette[rand.Intn(len(Palette))],
	}
}
