package pagination

import (
	"strconv"

	"gorm.io/gorm"
)

// Page size bounds for collection queries.
const (
	MinLimit     = 1
	MaxLimit     = 100
	DefaultLimit = 50
)

// ClampLimit bounds a requested page size to [MinLimit, MaxLimit].
// Zero means "not provided" and yields DefaultLimit.
func ClampLimit(limit int) int {
	switch {
	case limit == 0:
		return DefaultLimit
	case limit < MinLimit:
		return MinLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

// ParseLimit reads a limit query value. Empty or non-numeric input falls
// back to DefaultLimit; numeric input is clamped.
func ParseLimit(raw string) int {
	if raw == "" {
		return DefaultLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultLimit
	}
	return ClampLimit(n)
}

// Limit returns a GORM scope that applies a clamped LIMIT.
func Limit(limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(ClampLimit(limit))
	}
}

// NonNil returns an empty slice instead of nil so JSON renders [] not null.
func NonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
