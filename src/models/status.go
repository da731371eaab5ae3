package models

// AssetStatus enumerates the lifecycle states of an asset. Assets are created
// AVAILABLE or NOT_AVAILABLE; ASSIGNED and the recycling states are reached
// only through assignment and edit flows.
type AssetStatus string

const (
	AssetAvailable    AssetStatus = "AVAILABLE"
	AssetNotAvailable AssetStatus = "NOT_AVAILABLE"
	AssetAssigned     AssetStatus = "ASSIGNED"
	AssetWaiting      AssetStatus = "WAITING"
	AssetRecycled     AssetStatus = "RECYCLED"
)

// AssignmentStatus enumerates the states of an assignment.
type AssignmentStatus string

const (
	AssignmentWaiting  AssignmentStatus = "WAITING"
	AssignmentAccepted AssignmentStatus = "ACCEPTED"
	AssignmentDeclined AssignmentStatus = "DECLINED"
	AssignmentReturned AssignmentStatus = "RETURNED"
)

// ReturningRequestStatus enumerates the states of a returning request.
type ReturningRequestStatus string

const (
	ReturningWaiting   ReturningRequestStatus = "WAITING"
	ReturningCompleted ReturningRequestStatus = "COMPLETED"
)

// RecordState models soft deletion as an explicit lifecycle state instead of
// a stray boolean. Every query path filters on it explicitly.
type RecordState string

const (
	StateActive  RecordState = "ACTIVE"
	StateDeleted RecordState = "DELETED"
)

// AssetStatusLabel maps an asset status to its human-readable label. Kept as
// a pure function beside the enum so the domain type stays display-free.
func AssetStatusLabel(s AssetStatus) string {
	switch s {
	case AssetAvailable:
		return "Available"
	case AssetNotAvailable:
		return "Not available"
	case AssetAssigned:
		return "Assigned"
	case AssetWaiting:
		return "Waiting for recycling"
	case AssetRecycled:
		return "Recycled"
	default:
		return string(s)
	}
}

// AssignmentStatusLabel maps an assignment status to its human-readable label.
func AssignmentStatusLabel(s AssignmentStatus) string {
	switch s {
	case AssignmentWaiting:
		return "Waiting for acceptance"
	case AssignmentAccepted:
		return "Accepted"
	case AssignmentDeclined:
		return "Declined"
	case AssignmentReturned:
		return "Returned"
	default:
		return string(s)
	}
}

// ReturningRequestStatusLabel maps a returning request status to its label.
func ReturningRequestStatusLabel(s ReturningRequestStatus) string {
	switch s {
	case ReturningWaiting:
		return "Waiting for returning"
	case ReturningCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// ParseAssignmentDecision validates a respond-to-assignment decision value.
// Only ACCEPTED and DECLINED are legal decisions.
func ParseAssignmentDecision(raw string) (AssignmentStatus, bool) {
	switch AssignmentStatus(raw) {
	case AssignmentAccepted:
		return AssignmentAccepted, true
	case AssignmentDeclined:
		return AssignmentDeclined, true
	default:
		return "", false
	}
}
