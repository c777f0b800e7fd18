package domain

// ReaderStatus gates borrowing.
type ReaderStatus string

const (
	ReaderStatusActive    ReaderStatus = "ACTIVE"
	ReaderStatusSuspended ReaderStatus = "SUSPENDED"
)

func (s ReaderStatus) String() string { return string(s) }

func (s ReaderStatus) IsValid() bool {
	switch s {
	case ReaderStatusActive, ReaderStatusSuspended:
		return true
	}
	return false
}

// LendStatus is the lifecycle state of a lend record. It moves exactly once,
// from ACTIVE to RETURNED.
type LendStatus string

const (
	LendStatusActive   LendStatus = "ACTIVE"
	LendStatusReturned LendStatus = "RETURNED"
)

func (s LendStatus) String() string { return string(s) }

func (s LendStatus) IsValid() bool {
	switch s {
	case LendStatusActive, LendStatusReturned:
		return true
	}
	return false
}

// ReturnStatus is the processing status of a return record.
type ReturnStatus string

const (
	ReturnStatusProcessed ReturnStatus = "PROCESSED"
)

func (s ReturnStatus) String() string { return string(s) }

func (s ReturnStatus) IsValid() bool {
	return s == ReturnStatusProcessed
}
