package query

import (
	"assethub/src/models"
)

// SortMap translates caller-facing logical sort keys into physical ordering
// expressions. Unknown keys fall back to the default key; this is the single
// choke point for sort-field redirection.
type SortMap struct {
	fields   map[string]string
	fallback string
}

func NewSortMap(fallback string, fields map[string]string) SortMap {
	return SortMap{fields: fields, fallback: fallback}
}

// Resolve maps a logical key to its physical expression.
func (m SortMap) Resolve(key string) string {
	if expr, ok := m.fields[key]; ok {
		return expr
	}
	return m.fallback
}

// Order builds the full ORDER BY expression for a logical key and a
// direction, both normalized.
func (m SortMap) Order(key, direction string) string {
	expr := m.Resolve(key)
	if NormalizeDirection(direction) == DirectionDesc {
		return expr + " DESC"
	}
	return expr + " ASC"
}

// AssignmentStatusRank is the caller-defined priority used when sorting
// assignments by status: WAITING first, then DECLINED, then ACCEPTED, then
// everything else. It deliberately ignores the enum's lexical order.
func AssignmentStatusRank(s models.AssignmentStatus) int {
	switch s {
	case models.AssignmentWaiting:
		return 1
	case models.AssignmentDeclined:
		return 2
	case models.AssignmentAccepted:
		return 3
	default:
		return 4
	}
}
