package domain_transfer

type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

func (s Status) IsFinal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

func (s Status) Valid() bool {
	return s == StatusPending || s.IsFinal()
}
