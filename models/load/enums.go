package load

// Status is the lifecycle state of a load. The string values match the rows
// stored by the marketplace frontend.
type Status string

const (
	StatusInBidding Status = "In Bidding"
	StatusAssigned  Status = "Assigned"
	StatusInTransit Status = "In Transit"
	StatusCompleted Status = "Completed"
)

// transitions is the closed table of legal status moves. Anything not listed
// here is rejected on write.
var transitions = map[Status]Status{
	StatusInBidding: StatusAssigned,
	StatusAssigned:  StatusInTransit,
	StatusInTransit: StatusCompleted,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusInBidding, StatusAssigned, StatusInTransit, StatusCompleted:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether moving from s to next is a legal step.
func (s Status) CanTransitionTo(next Status) bool {
	return transitions[s] == next
}

// IsBiddable reports whether drivers may still submit bids.
func (s Status) IsBiddable() bool {
	return s == StatusInBidding
}

// RequiresDriver reports whether a load in this state must carry an
// assigned driver reference.
func (s Status) RequiresDriver() bool {
	return s == StatusAssigned || s == StatusInTransit || s == StatusCompleted
}

// AllStatuses returns every valid load status.
func AllStatuses() []Status {
	return []Status{StatusInBidding, StatusAssigned, StatusInTransit, StatusCompleted}
}
