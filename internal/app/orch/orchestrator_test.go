package orch

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarsh286/Syncpad/internal/app"
	"github.com/akarsh286/Syncpad/internal/core"
	"github.com/akarsh286/Syncpad/internal/domain"
)

type fakeConn struct {
	mu      sync.Mutex
	frames  []core.Frame
	sendErr error
	closed  bool
}

func (f *fakeConn) TrySend(fr core.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeConn) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

// received decodes every frame the connection got, in order.
func (f *fakeConn) received(t *testing.T) []map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]any, 0, len(f.frames))
	for _, fr := range f.frames {
		var m map[string]any
		require.NoError(t, json.Unmarshal(fr, &m))
		out = append(out, m)
	}
	return out
}

// lastOfType returns the most recent decoded frame of the given type.
func (f *fakeConn) lastOfType(t *testing.T, typ string) (map[string]any, bool) {
	t.Helper()
	msgs := f.received(t)
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i]["type"] == typ {
			return msgs[i], true
		}
	}
	return nil, false
}

func (f *fakeConn) countOfType(t *testing.T, typ string) int {
	t.Helper()
	n := 0
	for _, m := range f.received(t) {
		if m["type"] == typ {
			n++
		}
	}
	return n
}

func newTestOrchestrator() *Orchestrator {
	return New(app.NewRegistry(), app.NewDirectory())
}

func connect(t *testing.T, o *Orchestrator, cid domain.ConnID) *fakeConn {
	t.Helper()
	conn := &fakeConn{}
	_, err := o.Connect(cid, conn, nil)
	require.NoError(t, err)
	return conn
}

func rosterIDs(t *testing.T, msg map[string]any) []string {
	t.Helper()
	raw, ok := msg["members"].([]any)
	require.True(t, ok)
	ids := make([]string, 0, len(raw))
	for _, m := range raw {
		entry, ok := m.(map[string]any)
		require.True(t, ok)
		ids = append(ids, entry["id"].(string))
	}
	return ids
}

func TestJoinRoomBroadcastsRoster(t *testing.T) {
	o := newTestOrchestrator()
	x := connect(t, o, "x")
	y := connect(t, o, "y")

	o.JoinRoom("x", "r1")
	update, ok := x.lastOfType(t, MsgRoomUpdate)
	require.True(t, ok, "joiner should see themselves in the roster")
	assert.Equal(t, []string{"x"}, rosterIDs(t, update))

	o.JoinRoom("y", "r1")
	update, ok = x.lastOfType(t, MsgRoomUpdate)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, rosterIDs(t, update), "roster keeps join order")

	update, ok = y.lastOfType(t, MsgRoomUpdate)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, rosterIDs(t, update))
}

func TestJoinRoomRejoinIdempotentButReemitsRoster(t *testing.T) {
	o := newTestOrchestrator()
	x := connect(t, o, "x")

	o.JoinRoom("x", "r1")
	o.JoinRoom("x", "r1")

	assert.Len(t, o.Rooms.Members("r1"), 1)
	assert.Equal(t, 2, x.countOfType(t, MsgRoomUpdate))
}

func TestJoinRoomUnknownConnection(t *testing.T) {
	o := newTestOrchestrator()
	o.JoinRoom("ghost", "r1")
	assert.False(t, o.RoomExists("r1"))
}

func TestCodeChangeFanout(t *testing.T) {
	o := newTestOrchestrator()
	x := connect(t, o, "x")
	y := connect(t, o, "y")
	z := connect(t, o, "z")

	o.JoinRoom("x", "r1")
	o.JoinRoom("y", "r1")
	o.JoinRoom("z", "r2")

	o.CodeChange("x", "r1", "a=1")

	msg, ok := y.lastOfType(t, MsgReceiveCode)
	require.True(t, ok, "other member of the room receives the update")
	assert.Equal(t, "a=1", msg["code"])

	_, ok = x.lastOfType(t, MsgReceiveCode)
	assert.False(t, ok, "sender never receives its own update")

	_, ok = z.lastOfType(t, MsgReceiveCode)
	assert.False(t, ok, "members of other rooms receive nothing")
}

func TestCodeChangeSkipsSaturatedConnections(t *testing.T) {
	o := newTestOrchestrator()
	connect(t, o, "x")
	y := connect(t, o, "y")
	z := connect(t, o, "z")
	y.sendErr = errors.New("backpressure")

	o.JoinRoom("x", "r1")
	o.JoinRoom("y", "r1")
	o.JoinRoom("z", "r1")

	o.CodeChange("x", "r1", "a=1")

	_, ok := z.lastOfType(t, MsgReceiveCode)
	assert.True(t, ok, "healthy members still get the update")
}

func TestDisconnectCleansUpAndRebroadcasts(t *testing.T) {
	o := newTestOrchestrator()
	connect(t, o, "x")
	y := connect(t, o, "y")

	o.JoinRoom("x", "r1")
	o.JoinRoom("y", "r1")

	o.Disconnect("x")

	update, ok := y.lastOfType(t, MsgRoomUpdate)
	require.True(t, ok, "remaining members get a fresh roster")
	assert.Equal(t, []string{"y"}, rosterIDs(t, update))

	assert.Empty(t, o.Rooms.RoomsOf("x"))
	_, ok = o.Registry.Lookup("x")
	assert.False(t, ok)
	assert.True(t, o.RoomExists("r1"))

	o.Disconnect("y")
	assert.False(t, o.RoomExists("r1"), "room vanishes with its last member")
}

func TestDisconnectMultipleRooms(t *testing.T) {
	o := newTestOrchestrator()
	connect(t, o, "x")
	a := connect(t, o, "a")
	b := connect(t, o, "b")

	o.JoinRoom("x", "r1")
	o.JoinRoom("x", "r2")
	o.JoinRoom("a", "r1")
	o.JoinRoom("b", "r2")

	o.Disconnect("x")

	update, ok := a.lastOfType(t, MsgRoomUpdate)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, rosterIDs(t, update))

	update, ok = b.lastOfType(t, MsgRoomUpdate)
	require.True(t, ok)
	assert.Equal(t, []string{"b"}, rosterIDs(t, update))
}

func TestSignalRelayAddressedOnly(t *testing.T) {
	o := newTestOrchestrator()
	connect(t, o, "x")
	y := connect(t, o, "y")
	z := connect(t, o, "z")

	o.JoinRoom("x", "r1")
	o.JoinRoom("y", "r1")
	o.JoinRoom("z", "r1")

	o.RelayOffer("x", "y", "sdp-offer")

	msg, ok := y.lastOfType(t, MsgOffer)
	require.True(t, ok)
	assert.Equal(t, "sdp-offer", msg["sdp"])
	assert.Equal(t, "x", msg["from"])

	_, ok = z.lastOfType(t, MsgOffer)
	assert.False(t, ok, "unaddressed members receive nothing")
}

func TestSignalRelayAnswerAndCandidate(t *testing.T) {
	o := newTestOrchestrator()
	x := connect(t, o, "x")
	connect(t, o, "y")

	o.RelayAnswer("y", "x", "sdp-answer")
	msg, ok := x.lastOfType(t, MsgAnswer)
	require.True(t, ok)
	assert.Equal(t, "sdp-answer", msg["sdp"])
	assert.Equal(t, "y", msg["from"])

	o.RelayCandidate("y", "x", json.RawMessage(`{"candidate":"cand","sdpMid":"0"}`))
	msg, ok = x.lastOfType(t, MsgICECandidate)
	require.True(t, ok)
	assert.Equal(t, "y", msg["from"])
	cand, ok := msg["candidate"].(map[string]any)
	require.True(t, ok, "candidate payload relayed uninterpreted")
	assert.Equal(t, "cand", cand["candidate"])
}

func TestSignalRelayUnknownTargetDropped(t *testing.T) {
	o := newTestOrchestrator()
	x := connect(t, o, "x")

	o.RelayOffer("x", "gone", "sdp")

	_, ok := x.lastOfType(t, MsgOffer)
	assert.False(t, ok, "no error is surfaced to the sender")
}
