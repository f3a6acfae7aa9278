package contacts

// OutcomeKind tells how an operation on a [Record] or an [AddressBook] ended.
// None of these are failures.
type OutcomeKind int

const (
	Added OutcomeKind = iota + 1
	AlreadyPresent
	Changed
	NotPresent
	Deleted
	NotExist
)

var outcomeKindNames = [...]string{
	Added:          "added",
	AlreadyPresent: "already_present",
	Changed:        "changed",
	NotPresent:     "not_present",
	Deleted:        "deleted",
	NotExist:       "not_exist",
}

func (k OutcomeKind) String() string {
	if k <= 0 || int(k) >= len(outcomeKindNames) {
		return "unknown"
	}
	return outcomeKindNames[k]
}

// Outcome is the result of a mutation with a message meant for the user.
type Outcome struct {
	Kind    OutcomeKind
	Message string
}

func (o Outcome) String() string { return o.Message }
