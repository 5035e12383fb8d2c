package store

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore serves the built-in sample dataset and keeps the action log in
// memory. It is used when no database is configured, and by tests.
type MemoryStore struct {
	mu        sync.RWMutex
	users     []User
	merchants []Merchant
	accounts  []Account
	actions   []ActionRecord
}

// NewMemoryStore returns a store seeded with the sample dataset.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     SampleUsers(),
		merchants: SampleMerchants(),
		accounts:  SampleAccounts(),
	}
}

// NewMemoryStoreWith returns a store holding the given records.
func NewMemoryStoreWith(users []User, merchants []Merchant, accounts []Account) *MemoryStore {
	return &MemoryStore{
		users:     slices.Clone(users),
		merchants: slices.Clone(merchants),
		accounts:  slices.Clone(accounts),
	}
}

func (m *MemoryStore) Users(ctx context.Context) ([]User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.users), nil
}

func (m *MemoryStore) Merchants(ctx context.Context) ([]Merchant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.merchants), nil
}

func (m *MemoryStore) Accounts(ctx context.Context) ([]Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.accounts), nil
}

// SetUsers replaces the user records. The next refresh picks them up.
func (m *MemoryStore) SetUsers(users []User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = slices.Clone(users)
}

func (m *MemoryStore) RecordAction(ctx context.Context, rec ActionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = append(m.actions, rec)
	return nil
}

func (m *MemoryStore) RecentActions(ctx context.Context, limit int) ([]ActionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.actions)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]ActionRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, m.actions[i])
	}
	return out, nil
}

func (m *MemoryStore) Close() {}

func date(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, mo time.Month, d, h, minute int) *time.Time {
	t := time.Date(y, mo, d, h, minute, 0, 0, time.UTC)
	return &t
}

// SampleUsers returns the twelve users of the sample dataset.
func SampleUsers() []User {
	return []User{
		{ID: "usr_01", UserName: "Jane Cooper", Email: "jane.cooper@example.com", Role: "Admin", WorkMode: WorkModeOffice, Status: UserActive, JoinedAt: date(2021, time.March, 4)},
		{ID: "usr_02", UserName: "Esther Howard", Email: "esther.howard@example.com", Role: "Manager", WorkMode: WorkModeHybrid, Status: UserActive, JoinedAt: date(2020, time.November, 16)},
		{ID: "usr_03", UserName: "Cody Fisher", Email: "cody.fisher@example.com", Role: "Support", WorkMode: WorkModeRemote, Status: UserActive, JoinedAt: date(2022, time.June, 1)},
		{ID: "usr_04", UserName: "Wade Warren", Email: "wade.warren@example.com", Role: "Analyst", WorkMode: WorkModeOffice, Status: UserInactive, JoinedAt: date(2019, time.August, 23)},
		{ID: "usr_05", UserName: "Jenny Wilson", Email: "jenny.wilson@example.com", Role: "Support", WorkMode: WorkModeHybrid, Status: UserActive, JoinedAt: date(2023, time.January, 9)},
		{ID: "usr_06", UserName: "Guy Hawkins", Email: "guy.hawkins@example.com", Role: "Developer", WorkMode: WorkModeOffice, Status: UserActive, JoinedAt: date(2021, time.September, 30)},
		{ID: "usr_07", UserName: "Kristin Watson", Email: "kristin.watson@example.com", Role: "Analyst", WorkMode: WorkModeHybrid, Status: UserInvited, JoinedAt: date(2024, time.February, 12)},
		{ID: "usr_08", UserName: "Robert Fox", Email: "robert.fox@example.com", Role: "Developer", WorkMode: WorkModeOffice, Status: UserActive, JoinedAt: date(2020, time.April, 2)},
		{ID: "usr_09", UserName: "Jacob Jones", Email: "jacob.jones@example.com", Role: "Manager", WorkMode: WorkModeOffice, Status: UserActive, JoinedAt: date(2018, time.December, 5)},
		{ID: "usr_10", UserName: "Savannah Nguyen", Email: "savannah.nguyen@example.com", Role: "Support", WorkMode: WorkModeHybrid, Status: UserInactive, JoinedAt: date(2022, time.October, 18)},
		{ID: "usr_11", UserName: "Leslie Alexander", Email: "leslie.alexander@example.com", Role: "Admin", WorkMode: WorkModeHybrid, Status: UserActive, JoinedAt: date(2023, time.July, 27)},
		{ID: "usr_12", UserName: "Brooklyn Simmons", Email: "brooklyn.simmons@example.com", Role: "Developer", WorkMode: WorkModeOffice, Status: UserActive, JoinedAt: date(2024, time.May, 14)},
	}
}

// SampleMerchants returns the merchants of the sample dataset.
func SampleMerchants() []Merchant {
	return []Merchant{
		{ID: "mer_01", Name: "Northwind Coffee", Owner: Owner{Name: "Marvin McKinney", Email: "marvin@northwind.example"}, Category: "Food & Beverage", Country: "US", Volume: 182400, Status: MerchantActive, Created: date(2021, time.May, 3)},
		{ID: "mer_02", Name: "Lumen Outfitters", Owner: Owner{Name: "Darlene Robertson", Email: "darlene@lumen.example"}, Category: "Retail", Country: "CA", Volume: 96350, Status: MerchantActive, Created: date(2022, time.February, 11)},
		{ID: "mer_03", Name: "Blue Harbor Travel", Owner: Owner{Name: "Ronald Richards", Email: "ronald@blueharbor.example"}, Category: "Travel", Country: "GB", Volume: 0, Status: MerchantPending, Created: date(2024, time.September, 19)},
		{ID: "mer_04", Name: "Quarry Games", Owner: Owner{Name: "Theresa Webb", Email: "theresa@quarry.example"}, Category: "Digital Goods", Country: "DE", Volume: 1250000, Status: MerchantActive, Created: date(2019, time.October, 7)},
		{ID: "mer_05", Name: "Saffron Kitchen", Owner: Owner{Name: "Annette Black", Email: "annette@saffron.example"}, Category: "Food & Beverage", Country: "IN", Volume: 45210, Status: MerchantSuspended, Created: date(2020, time.July, 22)},
		{ID: "mer_06", Name: "Atlas Freight", Owner: Owner{Name: "Courtney Henry", Email: "courtney@atlas.example"}, Category: "Logistics", Country: "US", Volume: 874000, Status: MerchantActive, Created: date(2021, time.January, 15)},
		{ID: "mer_07", Name: "Petal & Stem", Owner: Owner{Name: "Arlene McCoy", Email: "arlene@petal.example"}, Category: "Retail", Country: "AU", Volume: 0, Status: MerchantPending, Created: date(2024, time.November, 2)},
		{ID: "mer_08", Name: "Ember Fitness", Owner: Owner{Name: "Dianne Russell", Email: "dianne@ember.example"}, Category: "Health", Country: "US", Volume: 311900, Status: MerchantActive, Created: date(2023, time.March, 28)},
	}
}

// SampleAccounts returns the console accounts of the sample dataset.
func SampleAccounts() []Account {
	return []Account{
		{ID: "acc_01", Email: "jane.cooper@example.com", Role: "Owner", MFAEnabled: true, LastLogin: at(2024, time.December, 2, 9, 14)},
		{ID: "acc_02", Email: "esther.howard@example.com", Role: "Admin", MFAEnabled: true, LastLogin: at(2024, time.November, 28, 17, 2)},
		{ID: "acc_03", Email: "cody.fisher@example.com", Role: "Editor", MFAEnabled: false, LastLogin: at(2024, time.October, 5, 8, 45)},
		{ID: "acc_04", Email: "wade.warren@example.com", Role: "Viewer", MFAEnabled: false, Locked: true},
		{ID: "acc_05", Email: "jenny.wilson@example.com", Role: "Editor", MFAEnabled: true, LastLogin: at(2024, time.December, 1, 12, 30)},
		{ID: "acc_06", Email: "ops-bot@example.com", Role: "Viewer", MFAEnabled: false, LastLogin: at(2024, time.December, 3, 0, 0)},
	}
}
