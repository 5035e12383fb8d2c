package screens

import (
	"github.com/JonMunkholm/opsconsole/internal/core"
	"github.com/JonMunkholm/opsconsole/internal/datatable"
	"github.com/JonMunkholm/opsconsole/internal/store"
	"github.com/dustin/go-humanize"
)

var accountRoles = []string{"Owner", "Admin", "Editor", "Viewer"}

func accountsScreen() core.ScreenDefinition {
	return core.NewScreen(core.ScreenSpec[store.Account]{
		Info: core.ScreenInfo{
			Key:         "accounts",
			Group:       "People",
			Label:       "Accounts & roles",
			Description: "Console logins and their roles",
		},
		Rows:     func(ds *core.Dataset) []store.Account { return ds.Accounts },
		Table:    accountsTable,
		Describe: describeAccount,
	})
}

func lastLogin(a store.Account) string {
	if a.LastLogin == nil {
		return "Never"
	}
	return a.LastLogin.Format("Jan 2, 2006 15:04")
}

func accountsTable() datatable.Config[store.Account] {
	roles := make([]datatable.Option, len(accountRoles))
	for i, r := range accountRoles {
		roles[i] = datatable.Option{Label: r, Value: r}
	}

	return datatable.Config[store.Account]{
		Key: func(a store.Account) string { return a.ID },
		Columns: []datatable.Column[store.Account]{
			{
				ID:         "email",
				Header:     "Email",
				Accessor:   func(a store.Account) any { return a.Email },
				Sortable:   true,
				Searchable: true,
				Width:      32,
			},
			{
				ID:         "role",
				Header:     "Role",
				Accessor:   func(a store.Account) any { return a.Role },
				Sortable:   true,
				Searchable: true,
			},
			{
				ID:       "mfa",
				Header:   "MFA",
				Accessor: func(a store.Account) any { return a.MFAEnabled },
				Render:   func(a store.Account) string { return yesNo(a.MFAEnabled) },
				Sortable: true,
				Width:    6,
			},
			{
				// Nil for accounts that never logged in; those sort last.
				ID:       "lastLogin",
				Header:   "Last login",
				Accessor: func(a store.Account) any { return a.LastLogin },
				Render:   lastLogin,
				Sortable: true,
			},
			{
				ID:       "locked",
				Header:   "Locked",
				Accessor: func(a store.Account) any { return a.Locked },
				Render:   func(a store.Account) string { return yesNo(a.Locked) },
				Width:    6,
			},
		},
		Actions: []datatable.Action[store.Account]{
			{ID: "reset_mfa", Label: "Reset MFA", Visible: func(a store.Account) bool { return a.MFAEnabled }},
			{ID: "unlock", Label: "Unlock", Visible: func(a store.Account) bool { return a.Locked }},
			{
				ID:      "revoke",
				Label:   "Revoke access",
				Variant: datatable.VariantDestructive,
				Visible: func(a store.Account) bool { return !a.Locked },
			},
		},

		Searchable:        true,
		SearchPlaceholder: "Search accounts",

		Filterable:    true,
		FilterColumn:  "role",
		FilterLabel:   "Role",
		FilterOptions: roles,

		Sortable:             true,
		DefaultSort:          "lastLogin",
		DefaultSortDirection: datatable.SortDescending,

		Selectable: true,
		Pagination: &datatable.Pagination{PageSize: 10, PageSizeOptions: []int{10, 20, 50}},
	}
}

func describeAccount(a store.Account) (string, []core.Field) {
	seen := "Never"
	if a.LastLogin != nil {
		seen = lastLogin(a) + " (" + humanize.Time(*a.LastLogin) + ")"
	}
	return a.Email, []core.Field{
		{Label: "Role", Value: a.Role},
		{Label: "MFA enabled", Value: yesNo(a.MFAEnabled)},
		{Label: "Last login", Value: seen},
		{Label: "Locked", Value: yesNo(a.Locked)},
	}
}
