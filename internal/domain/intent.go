package domain

// Intent is the structured outcome of classifying a free-text message.
// Exactly one variant is produced per message; a nil Intent means the text
// carried no recognizable intent and the slash-command path takes over.
type Intent interface {
	isIntent()
}

// CreateMatch proposes a new match. Any of the schedule fields may be empty,
// in which case the bot asks for the missing pieces instead of creating.
type CreateMatch struct {
	Day   string
	Time  string
	Place string
}

// SignUp adds the sender to the roster.
type SignUp struct{}

// Withdraw removes the sender from the roster.
type Withdraw struct{}

// ConfirmAttendance marks the sender's existing roster entry as confirmed.
type ConfirmAttendance struct{}

// RequestRollCall resets every player's attendance so all must re-confirm.
type RequestRollCall struct{}

// DrawTeams shuffles the roster into two teams plus a bench.
type DrawTeams struct{}

// RecordResult closes the match. Winner is 1 or 2; 0 means the message did
// not say which team won and the bot must ask.
type RecordResult struct {
	Winner int
}

// ConfirmVenue marks the venue as booked. Price 0 means no price was given.
type ConfirmVenue struct {
	Price float64
}

// RecordPayment registers the sender's share. Amount 0 means unspecified.
type RecordPayment struct {
	Amount float64
}

// QueryStatus asks for the current match summary.
type QueryStatus struct{}

// Help asks what the bot understands.
type Help struct{}

func (CreateMatch) isIntent()       {}
func (SignUp) isIntent()            {}
func (Withdraw) isIntent()          {}
func (ConfirmAttendance) isIntent() {}
func (RequestRollCall) isIntent()   {}
func (DrawTeams) isIntent()         {}
func (RecordResult) isIntent()      {}
func (ConfirmVenue) isIntent()      {}
func (RecordPayment) isIntent()     {}
func (QueryStatus) isIntent()       {}
func (Help) isIntent()              {}
