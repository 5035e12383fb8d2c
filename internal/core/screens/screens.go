// Package screens registers the console's list screens with the core
// registry. Import this package to ensure all screens are registered.
package screens

import "github.com/JonMunkholm/opsconsole/internal/core"

func init() {
	Register()
}

// Register adds every screen that is not registered yet. It is safe to call
// again after core.Clear.
func Register() {
	for _, def := range []core.ScreenDefinition{
		usersScreen(),
		merchantsScreen(),
		accountsScreen(),
	} {
		if _, ok := core.Get(def.Info.Key); ok {
			continue
		}
		core.Register(def)
	}
}

const dateLayout = "Jan 2, 2006"

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
