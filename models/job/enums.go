package job

// Status is the lifecycle state of a job.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
)

var transitions = map[Status]Status{
	StatusPending: StatusActive,
	StatusActive:  StatusCompleted,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether moving from s to next is a legal step.
func (s Status) CanTransitionTo(next Status) bool {
	return transitions[s] == next
}
