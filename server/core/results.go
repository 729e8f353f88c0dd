package core

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/automoto/boxninja/shared/netconfig"
	_ "modernc.org/sqlite"
)

// RoomResult is what a finished room leaves behind.
type RoomResult struct {
	RoomID     string         `json:"roomId"`
	Difficulty string         `json:"difficulty"`
	StartedAt  time.Time      `json:"startedAt"`
	EndedAt    time.Time      `json:"endedAt"`
	Players    []PlayerResult `json:"players"`
}

type PlayerResult struct {
	Color    netconfig.Color `json:"color"`
	Score    int             `json:"score"`
	Finished bool            `json:"finished"`
}

// ResultSink receives a room's result when it turns terminal.
type ResultSink interface {
	RecordRoom(ctx context.Context, res RoomResult) error
}

// ResultSource lists recorded results, newest first.
type ResultSource interface {
	RecentResults(ctx context.Context, limit int) ([]RoomResult, error)
}

// Ledger stores room results in SQLite.
type Ledger struct {
	conn *sql.DB
}

// OpenLedger opens (or creates) the results database at path.
func OpenLedger(path string) (*Ledger, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	l := &Ledger{conn: conn}
	if err := l.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return l, nil
}

func (l *Ledger) Close() error {
	return l.conn.Close()
}

func (l *Ledger) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS rooms (
		id TEXT PRIMARY KEY,
		difficulty TEXT NOT NULL DEFAULT '',
		started_at INTEGER NOT NULL DEFAULT 0,
		ended_at INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS room_players (
		room_id TEXT NOT NULL REFERENCES rooms(id),
		color TEXT NOT NULL,
		score INTEGER NOT NULL DEFAULT 0,
		finished INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (room_id, color)
	);

	CREATE INDEX IF NOT EXISTS idx_rooms_ended ON rooms(ended_at);
	`
	_, err := l.conn.Exec(schema)
	return err
}

// RecordRoom stores res in one transaction.
func (l *Ledger) RecordRoom(ctx context.Context, res RoomResult) error {
	tx, err := l.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO rooms (id, difficulty, started_at, ended_at) VALUES (?, ?, ?, ?)",
		res.RoomID, res.Difficulty, res.StartedAt.UnixMilli(), res.EndedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert room: %w", err)
	}
	for _, p := range res.Players {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO room_players (room_id, color, score, finished) VALUES (?, ?, ?, ?)",
			res.RoomID, string(p.Color), p.Score, p.Finished,
		)
		if err != nil {
			return fmt.Errorf("insert %s: %w", p.Color, err)
		}
	}
	return tx.Commit()
}

// RecentResults returns up to limit rooms, most recently ended first.
func (l *Ledger) RecentResults(ctx context.Context, limit int) ([]RoomResult, error) {
	rows, err := l.conn.QueryContext(ctx,
		"SELECT id, difficulty, started_at, ended_at FROM rooms ORDER BY ended_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	var results []RoomResult
	for rows.Next() {
		var res RoomResult
		var started, ended int64
		if err := rows.Scan(&res.RoomID, &res.Difficulty, &started, &ended); err != nil {
			rows.Close()
			return nil, err
		}
		res.StartedAt = time.UnixMilli(started)
		res.EndedAt = time.UnixMilli(ended)
		results = append(results, res)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range results {
		players, err := l.players(ctx, results[i].RoomID)
		if err != nil {
			return nil, err
		}
		results[i].Players = players
	}
	return results, nil
}

func (l *Ledger) players(ctx context.Context, roomID string) ([]PlayerResult, error) {
	rows, err := l.conn.QueryContext(ctx,
		"SELECT color, score, finished FROM room_players WHERE room_id = ? ORDER BY finished DESC, score ASC, color ASC",
		roomID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []PlayerResult
	for rows.Next() {
		var p PlayerResult
		var color string
		if err := rows.Scan(&color, &p.Score, &p.Finished); err != nil {
			return nil, err
		}
		p.Color = netconfig.Color(color)
		players = append(players, p)
	}
	return players, rows.Err()
}
