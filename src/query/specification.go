package query

import (
	"strings"

	"gorm.io/gorm"
)

// Specification is one composable filter predicate over a GORM query.
type Specification func(*gorm.DB) *gorm.DB

// Identity is the always-true predicate; building an empty set of criteria
// yields it, so a filterless list matches every row.
func Identity(db *gorm.DB) *gorm.DB {
	return db
}

// Builder composes optional filter criteria into one conjunctive predicate.
// Absent criteria contribute nothing.
type Builder struct {
	specs []Specification
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Add unconditionally appends a sub-predicate.
func (b *Builder) Add(spec Specification) *Builder {
	b.specs = append(b.specs, spec)
	return b
}

// AddIf appends the sub-predicate only when present is true. Callers gate it
// on the driving value being non-nil/non-blank.
func (b *Builder) AddIf(present bool, spec Specification) *Builder {
	if present {
		b.specs = append(b.specs, spec)
	}
	return b
}

// AddString appends make(value) only when value is non-blank.
func (b *Builder) AddString(value string, make func(string) Specification) *Builder {
	if strings.TrimSpace(value) != "" {
		b.specs = append(b.specs, make(value))
	}
	return b
}

// Build returns the conjunction of every added sub-predicate, or Identity
// when none were added.
func (b *Builder) Build() Specification {
	if len(b.specs) == 0 {
		return Identity
	}
	specs := b.specs
	return func(db *gorm.DB) *gorm.DB {
		for _, spec := range specs {
			db = spec(db)
		}
		return db
	}
}
