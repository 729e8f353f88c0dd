package core

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/automoto/boxninja/network"
	"github.com/automoto/boxninja/shared/netconfig"
	"github.com/automoto/boxninja/shared/protocol"
)

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func waitClientEvent(t *testing.T, c *network.Client, kind network.EventKind) network.Event {
	t.Helper()
	var got network.Event
	eventually(t, "client event", func() bool {
		for _, ev := range c.DrainEvents() {
			if ev.Kind == kind {
				got = ev
				return true
			}
		}
		return false
	})
	return got
}

func TestServerRunsFourClientsToResults(t *testing.T) {
	fastRelay(t)
	ledger := openTestLedger(t)
	srv := NewServer(Options{Ledger: ledger})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ctx, ln) }()

	clients := make([]*network.Client, netconfig.RoomSize)
	for i := range clients {
		c := network.NewClient(func() netconfig.Difficulty { return netconfig.Hard })
		c.SetStatus(network.LocalStatus{Position: netconfig.Position{Level: 1, X: float64(10 * i), Y: 5}})
		if err := c.Dial(ctx, ln.Addr().String()); err != nil {
			t.Fatalf("dial %d: %v", i, err)
		}
		clients[i] = c
	}
	for _, c := range clients {
		if ev := waitClientEvent(t, c, network.EventBegin); ev.Levels != 5 {
			t.Errorf("begin levels = %d", ev.Levels)
		}
	}

	room := srv.Lobby().Rooms()[0]
	eventually(t, "every position relayed", func() bool {
		for _, p := range room.Positions() {
			if p.Level != 1 {
				return false
			}
		}
		return true
	})
	if n := srv.PlayerCount(); n != 4 {
		t.Errorf("players = %d", n)
	}

	for i, c := range clients {
		c.SetStatus(network.LocalStatus{
			Position: netconfig.Position{Level: 5, X: 280, Y: 545},
			Finished: true,
			Score:    1000 + i,
		})
	}
	eventually(t, "every score reported", func() bool {
		for _, v := range room.Scores() {
			if v < 1000 {
				return false
			}
		}
		return true
	})
	eventually(t, "opponents in the lounge", func() bool {
		latest := clients[0].LatestPositions()
		if latest == nil {
			return false
		}
		for _, p := range latest {
			if p.Level != 5 {
				return false
			}
		}
		return true
	})

	for _, c := range clients {
		c.Quit()
	}
	for _, c := range clients {
		waitClientEvent(t, c, network.EventClosed)
	}
	select {
	case <-room.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("room still %s", room.State())
	}

	results, err := ledger.RecentResults(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].RoomID != room.ID.String() || results[0].Difficulty != "5" {
		t.Fatalf("results = %+v", results)
	}
	for _, p := range results[0].Players {
		if !p.Finished || p.Score < 1000 {
			t.Errorf("player result %+v", p)
		}
	}

	cancel()
	select {
	case err := <-served:
		if err != nil {
			t.Errorf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServerSilentPeerDoesNotBlockOthers(t *testing.T) {
	srv := NewServer(Options{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ctx, ln) }()

	dial := func() *protocol.Conn {
		t.Helper()
		conn, err := net.Dial("tcp", ln.Addr().String())
		if err != nil {
			t.Fatal(err)
		}
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		c := protocol.NewConn(conn)
		t.Cleanup(func() { c.Close() })
		return c
	}

	silent := dial()
	first, err := silent.Recv()
	if err != nil {
		t.Fatalf("silent peer greeting: %v", err)
	}

	other := dial()
	second, err := other.Recv()
	if err != nil {
		t.Fatalf("second peer greeting: %v", err)
	}
	if first == second {
		t.Errorf("both peers offered %q", first)
	}
	if err := other.SendRaw("ACK"); err != nil {
		t.Fatal(err)
	}
	eventually(t, "second peer seated", func() bool { return srv.PlayerCount() == 1 })

	cancel()
	select {
	case err := <-served:
		if err != nil {
			t.Errorf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
	for name, c := range map[string]*protocol.Conn{"silent": silent, "seated": other} {
		if _, err := c.Recv(); !protocol.IsDisconnect(err) {
			t.Errorf("%s peer after shutdown: %v", name, err)
		}
	}
}
