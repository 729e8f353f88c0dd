package core

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/automoto/boxninja/shared/netconfig"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := OpenLedger(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestLedgerRecordsRooms(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()
	base := time.UnixMilli(1_700_000_000_000)

	older := RoomResult{
		RoomID:     "room-a",
		Difficulty: "3",
		StartedAt:  base,
		EndedAt:    base.Add(time.Minute),
		Players: []PlayerResult{
			{Color: netconfig.Red, Score: 0, Finished: false},
			{Color: netconfig.Purple, Score: 900, Finished: true},
		},
	}
	newer := RoomResult{
		RoomID:     "room-b",
		Difficulty: "6",
		StartedAt:  base.Add(time.Hour),
		EndedAt:    base.Add(2 * time.Hour),
		Players: []PlayerResult{
			{Color: netconfig.Green, Score: 700, Finished: true},
			{Color: netconfig.Brown, Score: 500, Finished: true},
		},
	}
	for _, res := range []RoomResult{older, newer} {
		if err := l.RecordRoom(ctx, res); err != nil {
			t.Fatalf("record %s: %v", res.RoomID, err)
		}
	}

	got, err := l.RecentResults(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].RoomID != "room-b" || got[1].RoomID != "room-a" {
		t.Fatalf("results = %+v", got)
	}
	if !got[0].EndedAt.Equal(newer.EndedAt) || got[0].Difficulty != "6" {
		t.Errorf("newest = %+v", got[0])
	}
	if p := got[0].Players; len(p) != 2 || p[0].Color != netconfig.Brown || p[0].Score != 500 {
		t.Errorf("newest players = %+v", p)
	}
	if p := got[1].Players; len(p) != 2 || p[0].Color != netconfig.Purple || !p[0].Finished || p[1].Finished {
		t.Errorf("oldest players = %+v", p)
	}

	limited, err := l.RecentResults(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].RoomID != "room-b" {
		t.Errorf("limited = %+v", limited)
	}
}

func TestLedgerRejectsDuplicateRoom(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()
	res := RoomResult{RoomID: "dup", Difficulty: "3", Players: []PlayerResult{{Color: netconfig.Red}}}
	if err := l.RecordRoom(ctx, res); err != nil {
		t.Fatal(err)
	}
	if err := l.RecordRoom(ctx, res); err == nil {
		t.Error("expected an error recording the same room twice")
	}
	got, err := l.RecentResults(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || len(got[0].Players) != 1 {
		t.Errorf("results after duplicate = %+v", got)
	}
}

func TestLedgerReopenKeepsResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	l, err := OpenLedger(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.RecordRoom(context.Background(), RoomResult{RoomID: "kept", Difficulty: "5"}); err != nil {
		t.Fatal(err)
	}
	l.Close()

	l, err = OpenLedger(path)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	got, err := l.RecentResults(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].RoomID != "kept" {
		t.Errorf("after reopen = %+v", got)
	}
}
