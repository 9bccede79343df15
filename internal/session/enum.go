package session

type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusSubmitted  Status = "SUBMITTED"
	StatusGraded     Status = "GRADED"
	StatusExpired    Status = "EXPIRED"
)

// Terminal reports whether the learner can no longer mutate the session.
func (s Status) Terminal() bool {
	switch s {
	case StatusSubmitted, StatusGraded, StatusExpired:
		return true
	default:
		return false
	}
}
