package model

// Decision is the outcome of admitting a record into an ingestion session.
type Decision int

const (
	DecisionNew Decision = iota
	DecisionDuplicateInSession
	DecisionDuplicateInStore
)

func (d Decision) String() string {
	switch d {
	case DecisionNew:
		return "new"
	case DecisionDuplicateInSession:
		return "duplicate_in_session"
	case DecisionDuplicateInStore:
		return "duplicate_in_store"
	}
	return "unknown"
}

// RejectionReason names why the validator dropped a record.
type RejectionReason string

const (
	MissingTitle  RejectionReason = "missing_title"
	MissingSource RejectionReason = "missing_source"
)
