package screens

import (
	"github.com/JonMunkholm/opsconsole/internal/core"
	"github.com/JonMunkholm/opsconsole/internal/datatable"
	"github.com/JonMunkholm/opsconsole/internal/store"
	"github.com/dustin/go-humanize"
)

func usersScreen() core.ScreenDefinition {
	return core.NewScreen(core.ScreenSpec[store.User]{
		Info: core.ScreenInfo{
			Key:         "users",
			Group:       "People",
			Label:       "Users",
			Description: "Members of the operations team",
		},
		Rows:     func(ds *core.Dataset) []store.User { return ds.Users },
		Table:    usersTable,
		Describe: describeUser,
	})
}

func usersTable() datatable.Config[store.User] {
	return datatable.Config[store.User]{
		Key: func(u store.User) string { return u.ID },
		Columns: []datatable.Column[store.User]{
			{
				ID:         "user",
				Header:     "User",
				Accessor:   func(u store.User) any { return u.UserName },
				Sortable:   true,
				Searchable: true,
				Width:      24,
			},
			{
				ID:         "email",
				Header:     "Email",
				Accessor:   func(u store.User) any { return u.Email },
				Sortable:   true,
				Searchable: true,
				Width:      32,
			},
			{
				ID:         "role",
				Header:     "Role",
				Accessor:   func(u store.User) any { return u.Role },
				Sortable:   true,
				Searchable: true,
			},
			{
				ID:       "workMode",
				Header:   "Work mode",
				Accessor: func(u store.User) any { return string(u.WorkMode) },
			},
			{
				ID:       "status",
				Header:   "Status",
				Accessor: func(u store.User) any { return string(u.Status) },
				Sortable: true,
			},
			{
				ID:       "joined",
				Header:   "Joined",
				Accessor: func(u store.User) any { return u.JoinedAt },
				Render:   func(u store.User) string { return u.JoinedAt.Format(dateLayout) },
				Sortable: true,
			},
		},
		Actions: []datatable.Action[store.User]{
			{ID: "view", Label: "View profile"},
			{
				ID:      "resend_invite",
				Label:   "Resend invite",
				Visible: func(u store.User) bool { return u.Status == store.UserInvited },
			},
			{
				ID:      "deactivate",
				Label:   "Deactivate",
				Variant: datatable.VariantDestructive,
				Visible: func(u store.User) bool { return u.Status == store.UserActive },
			},
		},

		Searchable:        true,
		SearchPlaceholder: "Search users",
		SearchFields:      []string{"user"},

		Filterable:   true,
		FilterColumn: "workMode",
		FilterLabel:  "Work mode",
		FilterOptions: []datatable.Option{
			{Label: "Office", Value: string(store.WorkModeOffice)},
			{Label: "Hybrid", Value: string(store.WorkModeHybrid)},
			{Label: "Remote", Value: string(store.WorkModeRemote)},
		},

		Sortable:             true,
		DefaultSort:          "user",
		DefaultSortDirection: datatable.SortAscending,

		Selectable: true,
		Pagination: &datatable.Pagination{PageSize: 10, PageSizeOptions: []int{10, 20, 50}},
	}
}

func describeUser(u store.User) (string, []core.Field) {
	return u.UserName, []core.Field{
		{Label: "Email", Value: u.Email},
		{Label: "Role", Value: u.Role},
		{Label: "Work mode", Value: string(u.WorkMode)},
		{Label: "Status", Value: string(u.Status)},
		{Label: "Joined", Value: u.JoinedAt.Format(dateLayout) + " (" + humanize.Time(u.JoinedAt) + ")"},
	}
}
