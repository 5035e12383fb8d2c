// Package core provides the business logic of the operations console.
//
// The package sits between the generic table engine in internal/datatable
// and the transports (web handlers, the consolectl CLI). It has no UI
// dependencies.
//
// # Screens
//
// Screens are registered at init time using [Register]. A screen binds a
// row type to a table configuration through [NewScreen]:
//
//	core.Register(core.NewScreen(core.ScreenSpec[store.User]{
//	    Info:  core.ScreenInfo{Key: "users", Group: "People", Label: "Users"},
//	    Rows:  func(ds *core.Dataset) []store.User { return ds.Users },
//	    Table: usersTable,
//	}))
//
// The concrete screens live in internal/core/screens.
//
// # Sessions
//
// [Service.Mount] creates a table session holding a [Grid]. Sessions are
// addressed by id, serialized by a per-session mutex and dropped after an
// idle timeout. Every interaction (Apply, Select, ClickRow, InvokeAction,
// Export) goes through the session.
//
// # Datasets
//
// [Service.Refresh] loads users, merchants and accounts concurrently and
// swaps them in as one versioned [Dataset]. Sessions pick up a newer
// version on their next access, which replaces their rows wholesale and
// prunes stale selections.
//
// # Action log
//
// Row actions do not mutate data. Each invocation becomes an [ActionEntry]
// kept in a bounded in-memory ring and persisted through the store, plus
// a [Notice] for the caller to present.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a code for support reference (TBL, SES, SEL,
// EXP, DAT, DB, UPL, RATE).
package core
