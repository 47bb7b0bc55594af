package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/xtding233/loot-economy/internal/reward"
)

// SQLite is the durable Store.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens/creates a SQLite database at dbPath, runs migrations and
// creates the wallet with startingBalance if it does not exist yet.
func OpenSQLite(dbPath string, startingBalance int64) (*SQLite, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // SQLite is not concurrent for writes
	s := &SQLite{db: db}
	ctx := context.Background()
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO wallet(id, balance) VALUES(1, ?)`, startingBalance); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS wallet (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			balance INTEGER NOT NULL CHECK (balance >= 0)
		);`,

		// Owned items in acquisition order
		`CREATE TABLE IF NOT EXISTS inventory (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			reward_id TEXT NOT NULL,
			name TEXT NOT NULL,
			image TEXT NOT NULL DEFAULT '',
			tier INTEGER NOT NULL,
			acquired_at INTEGER NOT NULL,
			aura_colors TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_inventory_tier ON inventory(tier, seq);`,

		// Active catalog in display order
		`CREATE TABLE IF NOT EXISTS catalog (
			position INTEGER PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			image TEXT NOT NULL DEFAULT '',
			tier INTEGER NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			aura_colors TEXT NOT NULL DEFAULT ''
		);`,

		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, q := range stmts {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// --------- Wallet ---------

func (s *SQLite) balance(ctx context.Context, q querier) (int64, error) {
	var b int64
	err := q.QueryRowContext(ctx, `SELECT balance FROM wallet WHERE id=1`).Scan(&b)
	return b, err
}

// Credit adds amount to the wallet and returns the new balance.
func (s *SQLite) Credit(ctx context.Context, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `UPDATE wallet SET balance = balance + ? WHERE id=1`, amount); err != nil {
		return 0, err
	}
	b, err := s.balance(ctx, tx)
	if err != nil {
		return 0, err
	}
	return b, tx.Commit()
}

// ApplyDelta debits, removes and inserts in one transaction.
func (s *SQLite) ApplyDelta(ctx context.Context, d Delta) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if d.Debit > 0 {
		res, err := tx.ExecContext(ctx,
			`UPDATE wallet SET balance = balance - ? WHERE id=1 AND balance >= ?`, d.Debit, d.Debit)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrBalanceConflict
		}
	}
	for _, id := range d.RemovedIDs {
		res, err := tx.ExecContext(ctx, `DELETE FROM inventory WHERE id=?`, id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("remove item %s: not found", id)
		}
	}
	for _, it := range d.Added {
		aura, err := encodeAura(it.AuraColors)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO inventory(id, reward_id, name, image, tier, acquired_at, aura_colors)
			 VALUES(?, ?, ?, ?, ?, ?, ?)`,
			it.ID, it.RewardID, it.Name, it.Image, int(it.Tier), it.AcquiredAt.UnixNano(), aura); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// --------- Catalog ---------

// LastRefresh returns the day key of the last catalog install, "" if none.
func (s *SQLite) LastRefresh(ctx context.Context) (string, error) {
	return s.lastRefresh(ctx, s.db)
}

func (s *SQLite) lastRefresh(ctx context.Context, q querier) (string, error) {
	var day string
	err := q.QueryRowContext(ctx, `SELECT value FROM meta WHERE key='last_refresh'`).Scan(&day)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return day, err
}

// ReplaceCatalog swaps the stored catalog and stamps it with day.
func (s *SQLite) ReplaceCatalog(ctx context.Context, pool []reward.Definition, day string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog`); err != nil {
		return err
	}
	for i, d := range pool {
		aura, err := encodeAura(d.AuraColors)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO catalog(position, id, name, image, tier, description, aura_colors)
			 VALUES(?, ?, ?, ?, ?, ?, ?)`,
			i, d.ID, d.Name, d.Image, int(d.Tier), d.Description, aura); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta(key, value) VALUES('last_refresh', ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`, day); err != nil {
		return err
	}
	return tx.Commit()
}

// --------- Load ---------

// Load reads balance, inventory and catalog from one read transaction.
func (s *SQLite) Load(ctx context.Context) (State, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return State{}, err
	}
	defer tx.Rollback()

	var st State
	if st.Balance, err = s.balance(ctx, tx); err != nil {
		return State{}, fmt.Errorf("load balance: %w", err)
	}
	if st.Inventory, err = loadInventory(ctx, tx); err != nil {
		return State{}, fmt.Errorf("load inventory: %w", err)
	}
	if st.Catalog, err = loadCatalog(ctx, tx); err != nil {
		return State{}, fmt.Errorf("load catalog: %w", err)
	}
	if st.LastRefresh, err = s.lastRefresh(ctx, tx); err != nil {
		return State{}, fmt.Errorf("load last refresh: %w", err)
	}
	return st, tx.Commit()
}

func loadInventory(ctx context.Context, q querier) ([]reward.Item, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, reward_id, name, image, tier, acquired_at, aura_colors
		FROM inventory ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []reward.Item
	for rows.Next() {
		var (
			it   reward.Item
			tier int
			at   int64
			aura string
		)
		if err := rows.Scan(&it.ID, &it.RewardID, &it.Name, &it.Image, &tier, &at, &aura); err != nil {
			return nil, err
		}
		it.Tier = reward.Tier(tier)
		it.AcquiredAt = time.Unix(0, at)
		if it.AuraColors, err = decodeAura(aura); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func loadCatalog(ctx context.Context, q querier) ([]reward.Definition, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, image, tier, description, aura_colors
		FROM catalog ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []reward.Definition
	for rows.Next() {
		var (
			d    reward.Definition
			tier int
			aura string
		)
		if err := rows.Scan(&d.ID, &d.Name, &d.Image, &tier, &d.Description, &aura); err != nil {
			return nil, err
		}
		d.Tier = reward.Tier(tier)
		if d.AuraColors, err = decodeAura(aura); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// --------- Helpers ---------

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func encodeAura(colors []string) (string, error) {
	if len(colors) == 0 {
		return "", nil
	}
	b, err := json.Marshal(colors)
	return string(b), err
}

func decodeAura(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var colors []string
	if err := json.Unmarshal([]byte(s), &colors); err != nil {
		return nil, fmt.Errorf("decode aura colors: %w", err)
	}
	return colors, nil
}
