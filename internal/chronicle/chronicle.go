// Package chronicle keeps an append-only SQLite record of everything notable
// that happens to the colony: notifications, event outcomes, and a daily
// stats line.
package chronicle

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nvandermeer/suburbfall/internal/notify"
)

// Entry is one archived notification.
type Entry struct {
	ID       int64  `db:"id" json:"id"`
	Day      int    `db:"day" json:"day"`
	Clock    string `db:"clock" json:"clock"`
	Kind     string `db:"kind" json:"kind"`
	Message  string `db:"message" json:"message"`
	DataJSON string `db:"data_json" json:"data,omitempty"`
}

// DailyStats is the end-of-day colony summary row.
type DailyStats struct {
	Day            int     `db:"day" json:"day"`
	Survivors      int     `db:"survivors" json:"survivors"`
	Wanderers      int     `db:"wanderers" json:"wanderers"`
	Buildings      int     `db:"buildings" json:"buildings"`
	ConspiracyHeat float64 `db:"conspiracy_heat" json:"conspiracy_heat"`
	StockpileJSON  string  `db:"stockpile_json" json:"stockpile"`
}

// Archive wraps a SQLite connection holding the colony's history.
type Archive struct {
	conn *sqlx.DB
}

// Open opens or creates the chronicle database at path. Use ":memory:" for
// an ephemeral archive.
func Open(path string) (*Archive, error) {
	dsn := path
	if path != ":memory:" {
		dsn += "?_journal_mode=WAL&_busy_timeout=5000"
	}
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open chronicle: %w", err)
	}

	a := &Archive{conn: conn}
	if err := a.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate chronicle: %w", err)
	}
	return a, nil
}

// Close closes the underlying connection.
func (a *Archive) Close() error {
	return a.conn.Close()
}

func (a *Archive) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS notifications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		day INTEGER NOT NULL,
		clock TEXT NOT NULL,
		kind TEXT NOT NULL,
		message TEXT NOT NULL,
		data_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS daily_stats (
		day INTEGER PRIMARY KEY,
		survivors INTEGER NOT NULL,
		wanderers INTEGER NOT NULL,
		buildings INTEGER NOT NULL,
		conspiracy_heat REAL NOT NULL,
		stockpile_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_notifications_day ON notifications(day);
	CREATE INDEX IF NOT EXISTS idx_notifications_kind ON notifications(kind);
	`
	_, err := a.conn.Exec(schema)
	return err
}

// Attach subscribes the archive to a bus. timeFn supplies the in-game day
// and clock string stamped on each row.
func (a *Archive) Attach(bus *notify.Bus, timeFn func() (int, string)) {
	bus.Subscribe(func(n notify.Notification) {
		day, stamp := timeFn()
		if err := a.Record(n, day, stamp); err != nil {
			slog.Error("chronicle record failed", "kind", string(n.Kind), "error", err)
		}
	})
}

// Record appends one notification row.
func (a *Archive) Record(n notify.Notification, day int, stamp string) error {
	dataJSON := "{}"
	if n.Data != nil {
		if raw, err := json.Marshal(n.Data); err == nil {
			dataJSON = string(raw)
		}
	}
	_, err := a.conn.Exec(
		"INSERT INTO notifications (day, clock, kind, message, data_json) VALUES (?, ?, ?, ?, ?)",
		day, stamp, string(n.Kind), n.Message, dataJSON,
	)
	return err
}

// RecordDailyStats upserts the summary row for one day.
func (a *Archive) RecordDailyStats(s DailyStats) error {
	_, err := a.conn.Exec(`INSERT OR REPLACE INTO daily_stats
		(day, survivors, wanderers, buildings, conspiracy_heat, stockpile_json)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.Day, s.Survivors, s.Wanderers, s.Buildings, s.ConspiracyHeat, s.StockpileJSON,
	)
	return err
}

// RecentEntries returns the newest limit notifications, newest first.
func (a *Archive) RecentEntries(limit int) ([]Entry, error) {
	var entries []Entry
	err := a.conn.Select(&entries,
		"SELECT id, day, clock, kind, message, data_json FROM notifications ORDER BY id DESC LIMIT ?",
		limit,
	)
	return entries, err
}

// EntriesByKind returns the newest limit notifications of one kind.
func (a *Archive) EntriesByKind(kind notify.Kind, limit int) ([]Entry, error) {
	var entries []Entry
	err := a.conn.Select(&entries,
		"SELECT id, day, clock, kind, message, data_json FROM notifications WHERE kind = ? ORDER BY id DESC LIMIT ?",
		string(kind), limit,
	)
	return entries, err
}

// StatsForDay returns one day's summary row.
func (a *Archive) StatsForDay(day int) (DailyStats, error) {
	var s DailyStats
	err := a.conn.Get(&s,
		"SELECT day, survivors, wanderers, buildings, conspiracy_heat, stockpile_json FROM daily_stats WHERE day = ?",
		day,
	)
	return s, err
}

// AllStats returns every daily summary in day order.
func (a *Archive) AllStats() ([]DailyStats, error) {
	var rows []DailyStats
	err := a.conn.Select(&rows,
		"SELECT day, survivors, wanderers, buildings, conspiracy_heat, stockpile_json FROM daily_stats ORDER BY day",
	)
	return rows, err
}

// SaveMeta stores one metadata key.
func (a *Archive) SaveMeta(key, value string) error {
	_, err := a.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves one metadata value.
func (a *Archive) GetMeta(key string) (string, error) {
	var value string
	err := a.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	return value, err
}
