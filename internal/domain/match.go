package domain

import "time"

// MinPlayers is the roster size needed before a match can be confirmed.
const MinPlayers = 4

// Match tracks one scheduled game for a chat group. A match stays "open"
// until a result is recorded; every group has at most one open match.
type Match struct {
	ID             string     `json:"id"`
	GroupID        string     `json:"group_id"`
	Day            string     `json:"day"`
	Time           string     `json:"time"`
	Place          string     `json:"place"`
	Roster         []*Player  `json:"roster"`
	VenueConfirmed bool       `json:"venue_confirmed"`
	TotalCost      float64    `json:"total_cost,omitempty"`
	Payments       []Payment  `json:"payments"`
	Teams          *TeamSplit `json:"teams,omitempty"`
	Result         *Result    `json:"result,omitempty"`
	Confirmed      bool       `json:"confirmed"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Player is one roster entry. ID is the stable per-person key from the chat
// transport; Confirmed tracks attendance and can be reset by a roll call.
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Confirmed bool      `json:"confirmed"`
	JoinedAt  time.Time `json:"joined_at"`
}

// Payment records who put money in for the venue. One payment per player.
type Payment struct {
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	Amount     float64   `json:"amount"`
	PaidAt     time.Time `json:"paid_at"`
}

// TeamSplit is the drawn pairing: two teams of two, anyone beyond the first
// four sits on the bench and rotates in.
type TeamSplit struct {
	Team1 []*Player `json:"team_1"`
	Team2 []*Player `json:"team_2"`
	Bench []*Player `json:"bench,omitempty"`
}

// Result closes a match. Winner is 1 or 2.
type Result struct {
	Winner     int       `json:"winner"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (m *Match) IsOpen() bool {
	return m.Result == nil
}

// FindPlayer returns the roster entry for the given identity, or nil.
func (m *Match) FindPlayer(playerID string) *Player {
	for _, p := range m.Roster {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// RemovePlayer drops the given identity from the roster, preserving signup
// order of the remaining players. Returns false if the player was not there.
func (m *Match) RemovePlayer(playerID string) bool {
	for i, p := range m.Roster {
		if p.ID == playerID {
			m.Roster = append(m.Roster[:i], m.Roster[i+1:]...)
			return true
		}
	}
	return false
}

// RefreshConfirmed re-evaluates the confirmation gate: a match is confirmed
// only while the roster has at least MinPlayers AND the venue is confirmed.
// Called after every roster or venue mutation, so dropping below four players
// revokes a previous confirmation.
func (m *Match) RefreshConfirmed() {
	m.Confirmed = len(m.Roster) >= MinPlayers && m.VenueConfirmed
}

// CostPerPlayer splits the venue cost. The divisor never drops below
// MinPlayers so an incomplete roster is quoted the worst-case share.
func (m *Match) CostPerPlayer() float64 {
	if m.TotalCost <= 0 {
		return 0
	}
	n := len(m.Roster)
	if n < MinPlayers {
		n = MinPlayers
	}
	return m.TotalCost / float64(n)
}

// FindPayment returns the payment already recorded for the identity, or nil.
func (m *Match) FindPayment(playerID string) *Payment {
	for i := range m.Payments {
		if m.Payments[i].PlayerID == playerID {
			return &m.Payments[i]
		}
	}
	return nil
}

// TotalPaid sums all recorded payments.
func (m *Match) TotalPaid() float64 {
	var sum float64
	for _, p := range m.Payments {
		sum += p.Amount
	}
	return sum
}

// ConfirmedCount counts roster entries with attendance confirmed.
func (m *Match) ConfirmedCount() int {
	n := 0
	for _, p := range m.Roster {
		if p.Confirmed {
			n++
		}
	}
	return n
}

// WinningPlayers returns the drawn team matching the recorded winner.
func (m *Match) WinningPlayers() []*Player {
	if m.Teams == nil || m.Result == nil {
		return nil
	}
	if m.Result.Winner == 1 {
		return m.Teams.Team1
	}
	return m.Teams.Team2
}
