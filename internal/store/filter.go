package store

import "fmt"

// FilterKind selects which records the table shows.
type FilterKind int

const (
	FilterAll FilterKind = iota
	FilterActive
	FilterInactive
)

// String returns the config/flag name of the filter.
func (f FilterKind) String() string {
	switch f {
	case FilterActive:
		return "active"
	case FilterInactive:
		return "inactive"
	default:
		return "all"
	}
}

// Label returns the title-case name used in the filter bar.
func (f FilterKind) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterInactive:
		return "Inactive"
	default:
		return "All"
	}
}

// Match reports whether r belongs to the filter.
func (f FilterKind) Match(r *Record) bool {
	switch f {
	case FilterActive:
		return r.Active
	case FilterInactive:
		return !r.Active
	default:
		return true
	}
}

// Filters lists every filter in display order.
func Filters() []FilterKind {
	return []FilterKind{FilterAll, FilterActive, FilterInactive}
}

// ParseFilter parses a filter name. Empty means FilterAll.
func ParseFilter(name string) (FilterKind, error) {
	switch name {
	case "", "all":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	case "inactive":
		return FilterInactive, nil
	}
	return FilterAll, fmt.Errorf("unknown filter %q (want all, active or inactive)", name)
}
