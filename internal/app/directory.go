package app

import (
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/akarsh286/Syncpad/internal/domain"
)

// roomEntry tracks members with a per-member join sequence so rosters
// keep join order.
type roomEntry struct {
	members map[domain.ConnID]int
	seq     int
}

// Directory exclusively owns room membership. A room with zero members is
// indistinguishable from a room that never existed: the entry is deleted
// on the Leave that empties it, never lazily.
type Directory struct {
	mu     sync.RWMutex
	rooms  map[domain.RoomID]*roomEntry
	byConn map[domain.ConnID]map[domain.RoomID]struct{}
}

func NewDirectory() *Directory {
	return &Directory{
		rooms:  make(map[domain.RoomID]*roomEntry),
		byConn: make(map[domain.ConnID]map[domain.RoomID]struct{}),
	}
}

// Join adds the connection to the room, creating the room if absent.
// Rejoining is a no-op; the returned bool reports whether membership
// actually changed.
func (d *Directory) Join(room domain.RoomID, cid domain.ConnID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.rooms[room]
	if !ok {
		e = &roomEntry{members: make(map[domain.ConnID]int)}
		d.rooms[room] = e
	}
	if _, member := e.members[cid]; member {
		return false
	}
	e.members[cid] = e.seq
	e.seq++

	rs, ok := d.byConn[cid]
	if !ok {
		rs = make(map[domain.RoomID]struct{})
		d.byConn[cid] = rs
	}
	rs[room] = struct{}{}

	log.Info().Str("module", "app.directory").Str("room", string(room)).Str("cid", string(cid)).Int("members", len(e.members)).Msg("joined room")
	return true
}

// Leave removes the connection from the room and garbage-collects the
// room entry the moment it becomes empty.
func (d *Directory) Leave(room domain.RoomID, cid domain.ConnID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.rooms[room]
	if !ok {
		return
	}
	delete(e.members, cid)
	if len(e.members) == 0 {
		delete(d.rooms, room)
		log.Info().Str("module", "app.directory").Str("room", string(room)).Msg("room removed")
	}

	if rs, ok := d.byConn[cid]; ok {
		delete(rs, room)
		if len(rs) == 0 {
			delete(d.byConn, cid)
		}
	}
}

// Members returns the room's connection ids in join order.
// Unknown rooms yield an empty slice.
func (d *Directory) Members(room domain.RoomID) []domain.ConnID {
	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.rooms[room]
	if !ok {
		return nil
	}
	out := make([]domain.ConnID, 0, len(e.members))
	for cid := range e.members {
		out = append(out, cid)
	}
	sort.Slice(out, func(i, j int) bool {
		return e.members[out[i]] < e.members[out[j]]
	})
	return out
}

// Exists reports whether the room currently has members.
func (d *Directory) Exists(room domain.RoomID) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.rooms[room]
	return ok
}

// RoomsOf returns every room the connection is currently a member of.
func (d *Directory) RoomsOf(cid domain.ConnID) []domain.RoomID {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rs, ok := d.byConn[cid]
	if !ok {
		return nil
	}
	out := make([]domain.RoomID, 0, len(rs))
	for room := range rs {
		out = append(out, room)
	}
	return out
}
