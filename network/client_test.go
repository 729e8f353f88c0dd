package network

import (
	"net"
	"testing"
	"time"

	"github.com/automoto/boxninja/shared/netconfig"
	"github.com/automoto/boxninja/shared/protocol"
)

// exchange sends msg as the room and returns the client's reply.
func exchange(t *testing.T, room *protocol.Conn, msg string) string {
	t.Helper()
	if err := room.SendRaw(msg); err != nil {
		t.Fatalf("send %q: %v", msg, err)
	}
	reply, err := room.Recv()
	if err != nil {
		t.Fatalf("reply to %q: %v", msg, err)
	}
	return reply
}

func waitEvent(t *testing.T, c *Client, kind EventKind) Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, ev := range c.DrainEvents() {
			if ev.Kind == kind {
				return ev
			}
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("no event of kind %d", kind)
	return Event{}
}

func newPipeClient(t *testing.T) (*Client, *protocol.Conn) {
	t.Helper()
	a, b := net.Pipe()
	c := NewClient(func() netconfig.Difficulty { return netconfig.Extreme })
	c.Start(a)
	room := protocol.NewConn(b)
	t.Cleanup(func() { room.Close() })
	return c, room
}

func TestClientConversation(t *testing.T) {
	c, room := newPipeClient(t)

	if got := exchange(t, room, "Green"); got != "ACK" {
		t.Fatalf("greeting reply %q", got)
	}
	if ev := waitEvent(t, c, EventSeated); ev.Color != netconfig.Green {
		t.Errorf("seated as %q", ev.Color)
	}
	if c.Color() != netconfig.Green || c.State() != StateSeated {
		t.Errorf("color=%q state=%d", c.Color(), c.State())
	}

	if got := exchange(t, room, "DIFF"); got != "6" {
		t.Errorf("DIFF reply %q", got)
	}
	if got := exchange(t, room, "BEGIN:6"); got != "ACK" {
		t.Errorf("BEGIN reply %q", got)
	}
	if ev := waitEvent(t, c, EventBegin); ev.Levels != 6 {
		t.Errorf("begin levels = %d", ev.Levels)
	}

	c.SetStatus(LocalStatus{Position: netconfig.Position{Level: 2, X: 10, Y: 20.5}})
	table := "POS:Purple:(1, 5.0, 6.0):Red:(0, 0.0, 0.0):Green:(2, 10.0, 20.5):Brown:(0, 0.0, 0.0)"
	if got := exchange(t, room, table); got != "2:10.0:20.5" {
		t.Errorf("POS reply %q", got)
	}
	positions := c.LatestPositions()
	if positions[netconfig.Purple] != (netconfig.Position{Level: 1, X: 5, Y: 6}) {
		t.Errorf("purple = %+v", positions[netconfig.Purple])
	}

	c.SetStatus(LocalStatus{Position: netconfig.Position{Level: 6, X: 280, Y: 550}, Finished: true, Score: 95})
	if got := exchange(t, room, table); got != "DONE:6:280.0:550.0" {
		t.Errorf("finish reply %q", got)
	}
	if got := exchange(t, room, "SCORE:Purple:0:Red:0:Green:95:Brown:0"); got != "95" {
		t.Errorf("SCORE reply %q", got)
	}
	if s := c.LatestScores(); s[netconfig.Green] != 95 {
		t.Errorf("scores = %v", s)
	}
	if got := exchange(t, room, table); got != "6:280.0:550.0" {
		t.Errorf("DONE repeated: %q", got)
	}

	if got := exchange(t, room, "DATA"); got != "6:280.0:550.0" {
		t.Errorf("DATA reply %q", got)
	}
	if got := exchange(t, room, "Purple:(0, 0.0, 0.0):Red:(0, 0.0, 0.0):Green:(0, 0.0, 0.0):Brown:(0, 0.0, 0.0)"); got != "ACK" {
		t.Errorf("legacy table reply %q", got)
	}
	if got := exchange(t, room, "BEGIN"); got != "ACK" {
		t.Errorf("bare BEGIN reply %q", got)
	}

	c.Quit()
	if got := exchange(t, room, table); got != "QUIT" {
		t.Errorf("quit reply %q", got)
	}
	if ev := waitEvent(t, c, EventClosed); ev.Err != nil {
		t.Errorf("closed with %v", ev.Err)
	}
	if c.State() != StateDisconnected {
		t.Errorf("state = %d", c.State())
	}
}

func TestClientCloseSendsQuit(t *testing.T) {
	c, room := newPipeClient(t)
	if got := exchange(t, room, "Red"); got != "ACK" {
		t.Fatalf("greeting reply %q", got)
	}

	done := make(chan string, 1)
	go func() {
		raw, _ := room.Recv()
		done <- raw
	}()
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	select {
	case raw := <-done:
		if raw != "QUIT" {
			t.Errorf("got %q, want QUIT", raw)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no QUIT")
	}
}

func TestClientRoomHangup(t *testing.T) {
	c, room := newPipeClient(t)
	room.Close()
	if ev := waitEvent(t, c, EventClosed); ev.Err != nil {
		t.Errorf("hangup reported as %v", ev.Err)
	}
}

func TestLatestWins(t *testing.T) {
	ch := make(chan int, 1)
	latest(ch, 1)
	latest(ch, 2)
	if v := <-ch; v != 2 {
		t.Errorf("got %d, want 2", v)
	}
}
