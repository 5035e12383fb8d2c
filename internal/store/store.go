// Package store loads the records shown by the console screens and persists
// the action log. Two implementations exist: MemoryStore, seeded with a fixed
// sample dataset, and PgStore, backed by PostgreSQL through pgxpool.
package store

import (
	"context"
	"time"
)

// Store is the data source of the console.
type Store interface {
	Users(ctx context.Context) ([]User, error)
	Merchants(ctx context.Context) ([]Merchant, error)
	Accounts(ctx context.Context) ([]Account, error)

	// RecordAction persists one action-log entry.
	RecordAction(ctx context.Context, rec ActionRecord) error

	// RecentActions returns up to limit entries, newest first.
	RecentActions(ctx context.Context, limit int) ([]ActionRecord, error)

	Close()
}

// WorkMode is where a user works from.
type WorkMode string

const (
	WorkModeOffice WorkMode = "Office"
	WorkModeHybrid WorkMode = "Hybrid"
	WorkModeRemote WorkMode = "Remote"
)

// UserStatus is the lifecycle state of a console user.
type UserStatus string

const (
	UserActive   UserStatus = "Active"
	UserInvited  UserStatus = "Invited"
	UserInactive UserStatus = "Inactive"
)

// User is a member of the operations team.
type User struct {
	ID       string     `json:"id"`
	UserName string     `json:"userName"`
	Email    string     `json:"email"`
	Role     string     `json:"role"`
	WorkMode WorkMode   `json:"workMode"`
	Status   UserStatus `json:"status"`
	JoinedAt time.Time  `json:"joinedAt"`
}

// MerchantStatus is the onboarding state of a merchant.
type MerchantStatus string

const (
	MerchantActive    MerchantStatus = "Active"
	MerchantPending   MerchantStatus = "Pending"
	MerchantSuspended MerchantStatus = "Suspended"
)

// Owner is the contact person of a merchant.
type Owner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Merchant is a business onboarded onto the platform.
type Merchant struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Owner    Owner          `json:"owner"`
	Category string         `json:"category"`
	Country  string         `json:"country"`
	Volume   int64          `json:"volume"` // monthly processed volume, whole currency units
	Status   MerchantStatus `json:"status"`
	Created  time.Time      `json:"created"`
}

// Account is a login with a role on the console.
type Account struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	MFAEnabled bool       `json:"mfaEnabled"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
	Locked     bool       `json:"locked"`
}

// ActionRecord is one persisted action-log entry.
type ActionRecord struct {
	ID        string    `json:"id"`
	Screen    string    `json:"screen"`
	Action    string    `json:"action"`
	Label     string    `json:"label"`
	Variant   string    `json:"variant"`
	RowKey    string    `json:"rowKey"`
	RowTitle  string    `json:"rowTitle,omitempty"`
	Severity  string    `json:"severity"`
	IPAddress string    `json:"ipAddress,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
