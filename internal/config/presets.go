package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// Presets holds per-screen table preferences read from a TOML file:
//
//	[screens.users]
//	page_size = 20
//	default_sort = "joined"
//	default_sort_direction = "desc"
//
//	[screens.merchants]
//	locale = "sv"
type Presets struct {
	Screens map[string]ScreenPreset `toml:"screens"`
}

// ScreenPreset overrides the table defaults of one screen.
// Zero values leave the default in place.
type ScreenPreset struct {
	PageSize             int    `toml:"page_size"`
	PageSizeOptions      []int  `toml:"page_size_options"`
	DefaultSort          string `toml:"default_sort"`
	DefaultSortDirection string `toml:"default_sort_direction"` // asc or desc
	Locale               string `toml:"locale"`
}

// For returns the preset of a screen, or the zero preset.
func (p Presets) For(screen string) ScreenPreset {
	return p.Screens[screen]
}

// LoadPresets reads presets from path. An empty path yields no presets;
// a path that does not exist is an error since it was configured.
func LoadPresets(path string, table TableConfig) (Presets, error) {
	if path == "" {
		return Presets{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Presets{}, fmt.Errorf("reading presets file: %w", err)
	}

	return ParsePresets(data, table)
}

// ParsePresets decodes and validates TOML preset data.
func ParsePresets(data []byte, table TableConfig) (Presets, error) {
	var p Presets
	if err := toml.Unmarshal(data, &p); err != nil {
		return Presets{}, fmt.Errorf("parsing presets file: %w", err)
	}
	if err := p.Validate(table); err != nil {
		return Presets{}, fmt.Errorf("invalid presets: %w", err)
	}
	return p, nil
}

// Validate checks each preset against the table defaults it overrides.
func (p Presets) Validate(table TableConfig) error {
	var errs []error

	for name, sp := range p.Screens {
		options := table.PageSizeOptions
		if len(sp.PageSizeOptions) > 0 {
			options = sp.PageSizeOptions
		}
		for _, n := range sp.PageSizeOptions {
			if n <= 0 {
				errs = append(errs, fmt.Errorf("screen %s: page size option %d must be positive", name, n))
			}
		}

		size := sp.PageSize
		if size == 0 {
			size = table.DefaultPageSize
		}
		if size < 0 {
			errs = append(errs, fmt.Errorf("screen %s: page size %d must be positive", name, size))
		} else if len(options) > 0 && !slices.Contains(options, size) {
			errs = append(errs, fmt.Errorf("screen %s: page size %d is not one of %v", name, size, options))
		}

		switch strings.ToLower(sp.DefaultSortDirection) {
		case "", "asc", "desc":
		default:
			errs = append(errs, fmt.Errorf("screen %s: sort direction %q must be asc or desc", name, sp.DefaultSortDirection))
		}
		if sp.DefaultSortDirection != "" && sp.DefaultSort == "" {
			errs = append(errs, fmt.Errorf("screen %s: sort direction without default_sort", name))
		}

		if sp.Locale != "" {
			if _, err := language.Parse(sp.Locale); err != nil {
				errs = append(errs, fmt.Errorf("screen %s: locale %q: %w", name, sp.Locale, err))
			}
		}
	}

	return errors.Join(errs...)
}
