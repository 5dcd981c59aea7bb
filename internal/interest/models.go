package interest

// Store column names for the Interest Expressions table.
const (
	fieldCandidateID = "Candidate ID"
	fieldClientName  = "Client Name"
	fieldOrg         = "Organization"
	fieldEmail       = "Email"
	fieldPhone       = "Phone"
	fieldNotes       = "Notes"
	fieldDate        = "Date"
)

// ClientData is the inquiring client's submitted contact details.
type ClientData struct {
	Name         string
	Organization string
	Email        string
	Phone        string
	Notes        string
}

// LogOutcome reports whether the best-effort store write landed. A
// failed write never blocks notification; Err is kept so callers and
// tests can observe the swallowed failure.
type LogOutcome struct {
	Logged bool
	Err    error
}

// Receipt is the result of a completed interest submission.
type Receipt struct {
	Reference  string
	LogOutcome LogOutcome
}
