package bid

// Status is the lifecycle state of a bid.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusAccepted Status = "Accepted"
	StatusRejected Status = "Rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

// IsFinal reports whether the bid can no longer change. Accepted and
// rejected bids are immutable; there is no un-acceptance.
func (s Status) IsFinal() bool {
	return s == StatusAccepted || s == StatusRejected
}
