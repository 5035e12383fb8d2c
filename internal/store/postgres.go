package store

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// PoolOptions sizes the connection pool.
type PoolOptions struct {
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// PgStore reads console records from PostgreSQL.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore wraps an existing pool. The store owns the pool from then on.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// Connect opens a pool for url and verifies it with a ping.
func Connect(ctx context.Context, url string, opts PoolOptions) (*PgStore, error) {
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	if opts.MaxConns > 0 {
		poolConfig.MaxConns = int32(opts.MaxConns)
	}
	if opts.MinConns > 0 {
		poolConfig.MinConns = int32(opts.MinConns)
	}
	if opts.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = opts.MaxConnLifetime
	}
	if opts.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = opts.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return NewPgStore(pool), nil
}

// Migrate creates the console tables if they do not exist.
func (s *PgStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

type userRow struct {
	ID       string      `db:"id"`
	UserName string      `db:"user_name"`
	Email    pgtype.Text `db:"email"`
	Role     string      `db:"role"`
	WorkMode string      `db:"work_mode"`
	Status   string      `db:"status"`
	JoinedAt pgtype.Date `db:"joined_at"`
}

func (s *PgStore) Users(ctx context.Context) ([]User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_name, email, role, work_mode, status, joined_at
		FROM console_users
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}

	users := make([]User, len(records))
	for i, r := range records {
		users[i] = User{
			ID:       r.ID,
			UserName: r.UserName,
			Email:    r.Email.String,
			Role:     r.Role,
			WorkMode: WorkMode(r.WorkMode),
			Status:   UserStatus(r.Status),
			JoinedAt: r.JoinedAt.Time,
		}
	}
	return users, nil
}

type merchantRow struct {
	ID         string      `db:"id"`
	Name       string      `db:"name"`
	OwnerName  string      `db:"owner_name"`
	OwnerEmail pgtype.Text `db:"owner_email"`
	Category   string      `db:"category"`
	Country    string      `db:"country"`
	Volume     int64       `db:"volume"`
	Status     string      `db:"status"`
	CreatedAt  pgtype.Date `db:"created_at"`
}

func (s *PgStore) Merchants(ctx context.Context) ([]Merchant, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, owner_name, owner_email, category, country, volume, status, created_at
		FROM console_merchants
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query merchants: %w", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[merchantRow])
	if err != nil {
		return nil, fmt.Errorf("scan merchants: %w", err)
	}

	merchants := make([]Merchant, len(records))
	for i, r := range records {
		merchants[i] = Merchant{
			ID:       r.ID,
			Name:     r.Name,
			Owner:    Owner{Name: r.OwnerName, Email: r.OwnerEmail.String},
			Category: r.Category,
			Country:  r.Country,
			Volume:   r.Volume,
			Status:   MerchantStatus(r.Status),
			Created:  r.CreatedAt.Time,
		}
	}
	return merchants, nil
}

type accountRow struct {
	ID         string             `db:"id"`
	Email      string             `db:"email"`
	Role       string             `db:"role"`
	MFAEnabled bool               `db:"mfa_enabled"`
	LastLogin  pgtype.Timestamptz `db:"last_login"`
	Locked     bool               `db:"locked"`
}

func (s *PgStore) Accounts(ctx context.Context) ([]Account, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, email, role, mfa_enabled, last_login, locked
		FROM console_accounts
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[accountRow])
	if err != nil {
		return nil, fmt.Errorf("scan accounts: %w", err)
	}

	accounts := make([]Account, len(records))
	for i, r := range records {
		a := Account{
			ID:         r.ID,
			Email:      r.Email,
			Role:       r.Role,
			MFAEnabled: r.MFAEnabled,
			Locked:     r.Locked,
		}
		if r.LastLogin.Valid {
			t := r.LastLogin.Time
			a.LastLogin = &t
		}
		accounts[i] = a
	}
	return accounts, nil
}

func (s *PgStore) RecordAction(ctx context.Context, rec ActionRecord) error {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return fmt.Errorf("action id: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO console_actions
			(id, screen, action, label, variant, row_key, row_title, severity, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		pgtype.UUID{Bytes: id, Valid: true},
		rec.Screen,
		rec.Action,
		rec.Label,
		rec.Variant,
		rec.RowKey,
		toPgText(rec.RowTitle),
		rec.Severity,
		toPgText(rec.IPAddress),
		toPgText(rec.UserAgent),
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert action: %w", err)
	}
	return nil
}

type actionRow struct {
	ID        pgtype.UUID `db:"id"`
	Screen    string      `db:"screen"`
	Action    string      `db:"action"`
	Label     string      `db:"label"`
	Variant   string      `db:"variant"`
	RowKey    string      `db:"row_key"`
	RowTitle  pgtype.Text `db:"row_title"`
	Severity  string      `db:"severity"`
	IPAddress pgtype.Text `db:"ip_address"`
	UserAgent pgtype.Text `db:"user_agent"`
	CreatedAt time.Time   `db:"created_at"`
}

func (s *PgStore) RecentActions(ctx context.Context, limit int) ([]ActionRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, screen, action, label, variant, row_key, row_title, severity, ip_address, user_agent, created_at
		FROM console_actions
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query actions: %w", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[actionRow])
	if err != nil {
		return nil, fmt.Errorf("scan actions: %w", err)
	}

	out := make([]ActionRecord, len(records))
	for i, r := range records {
		out[i] = ActionRecord{
			ID:        uuid.UUID(r.ID.Bytes).String(),
			Screen:    r.Screen,
			Action:    r.Action,
			Label:     r.Label,
			Variant:   r.Variant,
			RowKey:    r.RowKey,
			RowTitle:  r.RowTitle.String,
			Severity:  r.Severity,
			IPAddress: r.IPAddress.String,
			UserAgent: r.UserAgent.String,
			CreatedAt: r.CreatedAt,
		}
	}
	return out, nil
}

// Seed replaces the screen tables with the given records using COPY.
func (s *PgStore) Seed(ctx context.Context, users []User, merchants []Merchant, accounts []Account) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	if _, err := tx.Exec(ctx, `TRUNCATE console_users, console_merchants, console_accounts`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	_, err = tx.CopyFrom(ctx, pgx.Identifier{"console_users"},
		[]string{"id", "user_name", "email", "role", "work_mode", "status", "joined_at"},
		pgx.CopyFromSlice(len(users), func(i int) ([]any, error) {
			u := users[i]
			return []any{u.ID, u.UserName, toPgText(u.Email), u.Role, string(u.WorkMode), string(u.Status), u.JoinedAt}, nil
		}))
	if err != nil {
		return fmt.Errorf("copy users: %w", err)
	}

	_, err = tx.CopyFrom(ctx, pgx.Identifier{"console_merchants"},
		[]string{"id", "name", "owner_name", "owner_email", "category", "country", "volume", "status", "created_at"},
		pgx.CopyFromSlice(len(merchants), func(i int) ([]any, error) {
			m := merchants[i]
			return []any{m.ID, m.Name, m.Owner.Name, toPgText(m.Owner.Email), m.Category, m.Country, m.Volume, string(m.Status), m.Created}, nil
		}))
	if err != nil {
		return fmt.Errorf("copy merchants: %w", err)
	}

	_, err = tx.CopyFrom(ctx, pgx.Identifier{"console_accounts"},
		[]string{"id", "email", "role", "mfa_enabled", "last_login", "locked"},
		pgx.CopyFromSlice(len(accounts), func(i int) ([]any, error) {
			a := accounts[i]
			last := pgtype.Timestamptz{}
			if a.LastLogin != nil {
				last = pgtype.Timestamptz{Time: *a.LastLogin, Valid: true}
			}
			return []any{a.ID, a.Email, a.Role, a.MFAEnabled, last, a.Locked}, nil
		}))
	if err != nil {
		return fmt.Errorf("copy accounts: %w", err)
	}

	return tx.Commit(ctx)
}

// Close releases the pool.
func (s *PgStore) Close() {
	s.pool.Close()
}

func toPgText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
