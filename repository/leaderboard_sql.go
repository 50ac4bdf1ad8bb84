package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-scoundrel/entities"

	"github.com/go-sql-driver/mysql"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

var leaderboardSchema = []string{
	`CREATE TABLE IF NOT EXISTS leaderboard (
		id VARCHAR(36) PRIMARY KEY,
		nickname VARCHAR(20) NOT NULL,
		score INTEGER NOT NULL,
		hp_remaining INTEGER NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS daily_leaderboard (
		id VARCHAR(36) PRIMARY KEY,
		nickname VARCHAR(20) NOT NULL,
		score INTEGER NOT NULL,
		hp_remaining INTEGER NOT NULL,
		challenge_date CHAR(10) NOT NULL,
		created_at BIGINT NOT NULL,
		UNIQUE (challenge_date, nickname)
	)`,
}

// SQLLeaderboard stores both boards in MySQL or SQLite. created_at is
// kept as unix milliseconds so ordering is identical on both.
type SQLLeaderboard struct {
	db *sql.DB
}

// OpenMySQL opens a MySQL leaderboard from a go-sql-driver DSN.
func OpenMySQL(ctx context.Context, dsn string) (*SQLLeaderboard, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql connector: %w", err)
	}
	db := sql.OpenDB(connector)
	db.SetConnMaxLifetime(3 * time.Minute)
	return NewSQLLeaderboard(ctx, db)
}

// OpenSQLite opens (and creates) a SQLite leaderboard at path. ":memory:"
// gives a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLLeaderboard, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// 单连接，避免 :memory: 每个连接各自一份库
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure sqlite db: %w", err)
	}
	return NewSQLLeaderboard(ctx, db)
}

// NewSQLLeaderboard wraps an open handle and creates the tables.
func NewSQLLeaderboard(ctx context.Context, db *sql.DB) (*SQLLeaderboard, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	for _, stmt := range leaderboardSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create leaderboard tables: %w", err)
		}
	}
	return &SQLLeaderboard{db: db}, nil
}

func (s *SQLLeaderboard) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLLeaderboard) Insert(ctx context.Context, entry entities.LeaderboardEntry) error {
	if err := validateEntry(entry); err != nil {
		return err
	}
	var err error
	if entry.ChallengeDate == "" {
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO leaderboard (id, nickname, score, hp_remaining, created_at) VALUES (?, ?, ?, ?, ?)`,
			entry.ID, entry.Nickname, entry.Score, entry.HPRemaining, entry.CreatedAt.UTC().UnixMilli())
	} else {
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO daily_leaderboard (id, nickname, score, hp_remaining, challenge_date, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			entry.ID, entry.Nickname, entry.Score, entry.HPRemaining, entry.ChallengeDate, entry.CreatedAt.UTC().UnixMilli())
	}
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("insert leaderboard entry: %w", err)
	}
	return nil
}

func (s *SQLLeaderboard) Top(ctx context.Context, limit int) ([]entities.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, nickname, score, hp_remaining, '', created_at FROM leaderboard
		 ORDER BY score DESC, created_at ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	return scanEntries(rows)
}

func (s *SQLLeaderboard) DailyTop(ctx context.Context, date string, limit int) ([]entities.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, nickname, score, hp_remaining, challenge_date, created_at FROM daily_leaderboard
		 WHERE challenge_date = ? ORDER BY score DESC, created_at ASC LIMIT ?`, date, limit)
	if err != nil {
		return nil, fmt.Errorf("query daily leaderboard: %w", err)
	}
	return scanEntries(rows)
}

func (s *SQLLeaderboard) HasDailyEntry(ctx context.Context, date, nickname string) (bool, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM daily_leaderboard WHERE challenge_date = ? AND nickname = ? LIMIT 1`,
		date, nickname).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query daily entry: %w", err)
	}
	return true, nil
}

func scanEntries(rows *sql.Rows) ([]entities.LeaderboardEntry, error) {
	defer rows.Close()
	entries := []entities.LeaderboardEntry{}
	for rows.Next() {
		var (
			entry     entities.LeaderboardEntry
			createdAt int64
		)
		if err := rows.Scan(&entry.ID, &entry.Nickname, &entry.Score, &entry.HPRemaining, &entry.ChallengeDate, &createdAt); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		entry.CreatedAt = time.UnixMilli(createdAt).UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaderboard: %w", err)
	}
	return entries, nil
}

func isUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}

var _ LeaderboardStore = (*SQLLeaderboard)(nil)
