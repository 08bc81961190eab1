package authflow

type State int

const (
	Idle State = iota
	CodeRequested
	CodeIssued
	Verifying
	Authorized
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case CodeRequested:
		return "code_requested"
	case CodeIssued:
		return "code_issued"
	case Verifying:
		return "verifying"
	case Authorized:
		return "authorized"
	case Failed:
		return "failed"
	}
	return "unknown"
}

type Outcome int

const (
	OutcomeNone Outcome = iota
	Accepted
	Rejected
	Expired
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case Expired:
		return "expired"
	}
	return "none"
}
