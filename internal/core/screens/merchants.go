package screens

import (
	"github.com/JonMunkholm/opsconsole/internal/core"
	"github.com/JonMunkholm/opsconsole/internal/datatable"
	"github.com/JonMunkholm/opsconsole/internal/store"
	"github.com/dustin/go-humanize"
)

func merchantsScreen() core.ScreenDefinition {
	return core.NewScreen(core.ScreenSpec[store.Merchant]{
		Info: core.ScreenInfo{
			Key:         "merchants",
			Group:       "Commerce",
			Label:       "Merchants",
			Description: "Businesses onboarded onto the platform",
		},
		Rows:     func(ds *core.Dataset) []store.Merchant { return ds.Merchants },
		Table:    merchantsTable,
		Describe: describeMerchant,
	})
}

// formatVolume renders a whole-unit amount as $1,234.
func formatVolume(v int64) string {
	return "$" + humanize.Comma(v)
}

func merchantsTable() datatable.Config[store.Merchant] {
	return datatable.Config[store.Merchant]{
		Key: func(m store.Merchant) string { return m.ID },
		Columns: []datatable.Column[store.Merchant]{
			{
				ID:         "name",
				Header:     "Merchant",
				Accessor:   func(m store.Merchant) any { return m.Name },
				Sortable:   true,
				Searchable: true,
				Width:      24,
			},
			{
				// Owner is structured; search and sort go through the name.
				ID:         "owner",
				Header:     "Owner",
				Accessor:   func(m store.Merchant) any { return m.Owner },
				Text:       func(m store.Merchant) string { return m.Owner.Name },
				Render:     func(m store.Merchant) string { return m.Owner.Name + " <" + m.Owner.Email + ">" },
				Sortable:   true,
				Searchable: true,
				Width:      32,
			},
			{
				ID:         "category",
				Header:     "Category",
				Accessor:   func(m store.Merchant) any { return m.Category },
				Sortable:   true,
				Searchable: true,
			},
			{
				ID:         "country",
				Header:     "Country",
				Accessor:   func(m store.Merchant) any { return m.Country },
				Sortable:   true,
				Searchable: true,
				Width:      8,
			},
			{
				ID:       "volume",
				Header:   "Monthly volume",
				Accessor: func(m store.Merchant) any { return m.Volume },
				Render:   func(m store.Merchant) string { return formatVolume(m.Volume) },
				Sortable: true,
			},
			{
				ID:       "status",
				Header:   "Status",
				Accessor: func(m store.Merchant) any { return string(m.Status) },
			},
			{
				ID:       "created",
				Header:   "Created",
				Accessor: func(m store.Merchant) any { return m.Created },
				Render:   func(m store.Merchant) string { return m.Created.Format(dateLayout) },
				Sortable: true,
			},
		},
		Actions: []datatable.Action[store.Merchant]{
			{ID: "open", Label: "Open merchant"},
			{
				ID:      "approve",
				Label:   "Approve",
				Visible: func(m store.Merchant) bool { return m.Status == store.MerchantPending },
			},
			{
				ID:      "reinstate",
				Label:   "Reinstate",
				Visible: func(m store.Merchant) bool { return m.Status == store.MerchantSuspended },
			},
			{
				ID:      "suspend",
				Label:   "Suspend",
				Variant: datatable.VariantDestructive,
				Visible: func(m store.Merchant) bool { return m.Status == store.MerchantActive },
			},
		},

		Searchable:        true,
		SearchPlaceholder: "Search merchants, owners, categories",

		Filterable:   true,
		FilterColumn: "status",
		FilterLabel:  "Status",
		FilterOptions: []datatable.Option{
			{Label: "Active", Value: string(store.MerchantActive)},
			{Label: "Pending", Value: string(store.MerchantPending)},
			{Label: "Suspended", Value: string(store.MerchantSuspended)},
		},

		Sortable: true,
		SortOptions: []datatable.Option{
			{Label: "Merchant", Value: "name"},
			{Label: "Owner", Value: "owner"},
			{Label: "Monthly volume", Value: "volume"},
			{Label: "Created", Value: "created"},
		},
		DefaultSort:          "created",
		DefaultSortDirection: datatable.SortDescending,

		Selectable: true,
		Pagination: &datatable.Pagination{PageSize: 10, PageSizeOptions: []int{10, 20, 50}},
	}
}

func describeMerchant(m store.Merchant) (string, []core.Field) {
	return m.Name, []core.Field{
		{Label: "Owner", Value: m.Owner.Name},
		{Label: "Owner email", Value: m.Owner.Email},
		{Label: "Category", Value: m.Category},
		{Label: "Country", Value: m.Country},
		{Label: "Monthly volume", Value: formatVolume(m.Volume)},
		{Label: "Status", Value: string(m.Status)},
		{Label: "Created", Value: m.Created.Format(dateLayout) + " (" + humanize.Time(m.Created) + ")"},
	}
}
