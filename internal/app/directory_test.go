package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarsh286/Syncpad/internal/domain"
)

func TestDirectory_ExistsTracksMembership(t *testing.T) {
	tests := []struct {
		name  string
		steps func(*Directory)
		room  domain.RoomID
		want  bool
	}{
		{
			name:  "unknown room",
			steps: func(d *Directory) {},
			room:  "r1",
			want:  false,
		},
		{
			name: "first join creates room",
			steps: func(d *Directory) {
				d.Join("r1", "c1")
			},
			room: "r1",
			want: true,
		},
		{
			name: "last leave removes room",
			steps: func(d *Directory) {
				d.Join("r1", "c1")
				d.Join("r1", "c2")
				d.Leave("r1", "c1")
				d.Leave("r1", "c2")
			},
			room: "r1",
			want: false,
		},
		{
			name: "leave of one member keeps room",
			steps: func(d *Directory) {
				d.Join("r1", "c1")
				d.Join("r1", "c2")
				d.Leave("r1", "c1")
			},
			room: "r1",
			want: true,
		},
		{
			name: "join then leave then rejoin",
			steps: func(d *Directory) {
				d.Join("r1", "c1")
				d.Leave("r1", "c1")
				d.Join("r1", "c1")
			},
			room: "r1",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDirectory()
			tt.steps(d)
			assert.Equal(t, tt.want, d.Exists(tt.room))
		})
	}
}

func TestDirectory_JoinIdempotent(t *testing.T) {
	d := NewDirectory()

	assert.True(t, d.Join("r1", "c1"))
	assert.False(t, d.Join("r1", "c1"))
	assert.Len(t, d.Members("r1"), 1)
}

func TestDirectory_MembersJoinOrder(t *testing.T) {
	d := NewDirectory()
	d.Join("r1", "c2")
	d.Join("r1", "c1")
	d.Join("r1", "c3")

	assert.Equal(t, []domain.ConnID{"c2", "c1", "c3"}, d.Members("r1"))

	d.Leave("r1", "c1")
	assert.Equal(t, []domain.ConnID{"c2", "c3"}, d.Members("r1"))
}

func TestDirectory_MembersUnknownRoomEmpty(t *testing.T) {
	d := NewDirectory()
	assert.Empty(t, d.Members("nope"))
}

func TestDirectory_RoomsOf(t *testing.T) {
	d := NewDirectory()
	d.Join("r1", "c1")
	d.Join("r2", "c1")
	d.Join("r1", "c2")

	rooms := d.RoomsOf("c1")
	require.Len(t, rooms, 2)
	assert.ElementsMatch(t, []domain.RoomID{"r1", "r2"}, rooms)

	d.Leave("r1", "c1")
	assert.Equal(t, []domain.RoomID{"r2"}, d.RoomsOf("c1"))

	d.Leave("r2", "c1")
	assert.Empty(t, d.RoomsOf("c1"))
}

func TestDirectory_LeaveUnknownRoomNoop(t *testing.T) {
	d := NewDirectory()
	d.Leave("r1", "c1")
	assert.False(t, d.Exists("r1"))
}
