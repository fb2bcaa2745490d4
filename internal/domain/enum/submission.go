package enum

// SubmissionType identifies which statutory declaration a filing record
// belongs to.
type SubmissionType string

const (
	SubmissionUstVa SubmissionType = "UStVA"
	SubmissionZm    SubmissionType = "ZM"
)

// Valid reports whether the submission type is supported.
func (s SubmissionType) Valid() bool {
	return s == SubmissionUstVa || s == SubmissionZm
}

// SubmissionStatus tracks the filing lifecycle of an ELSTER submission.
// Transitions are append-only: draft -> submitted -> accepted | rejected.
type SubmissionStatus string

const (
	SubmissionDraft     SubmissionStatus = "draft"
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionAccepted  SubmissionStatus = "accepted"
	SubmissionRejected  SubmissionStatus = "rejected"
)

// Valid reports whether the status is a known lifecycle state.
func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionDraft, SubmissionSubmitted, SubmissionAccepted, SubmissionRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may move to next. Statuses never
// move backwards and terminal states never change.
func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	switch s {
	case SubmissionDraft:
		return next == SubmissionSubmitted
	case SubmissionSubmitted:
		return next == SubmissionAccepted || next == SubmissionRejected
	}
	return false
}
