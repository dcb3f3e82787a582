package job

import "fmt"

// Counter is the single-row sequence backing job identifiers. The row is
// locked FOR UPDATE inside the spawning transaction so two concurrent offers
// can never allocate the same number.
type Counter struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	LastSeq uint64 `gorm:"not null;default:0" json:"last_seq"`
}

// TableName sets the table name for the Counter model.
func (Counter) TableName() string {
	return "job_counters"
}

// FormatJobID renders a sequence number as the human-readable job id,
// zero-padded to three digits (JOB001, JOB012, JOB1234).
func FormatJobID(seq uint64) string {
	return fmt.Sprintf("JOB%03d", seq)
}
