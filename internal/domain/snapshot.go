package domain

import "time"

// Snapshot is the whole persisted state: every match ever tracked plus the
// per-player statistics and the queue of deferred follow-up prompts. It is
// loaded once at startup and written back in full after every mutation.
type Snapshot struct {
	Matches        []*Match                `json:"matches"`
	Stats          map[string]*PlayerStats `json:"stats"`
	PendingPrompts []PendingPrompt         `json:"pending_prompts"`
}

// PlayerStats accumulates win/loss history across matches, keyed by the
// player's stable identity.
type PlayerStats struct {
	Name   string `json:"name"`
	Played int    `json:"played"`
	Won    int    `json:"won"`
	Lost   int    `json:"lost"`
}

// PendingPrompt schedules a "how did it go?" message for a group some time
// after its match was confirmed. A periodic worker drains due entries.
type PendingPrompt struct {
	MatchID string    `json:"match_id"`
	GroupID string    `json:"group_id"`
	DueAt   time.Time `json:"due_at"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		Stats: make(map[string]*PlayerStats),
	}
}

// OpenMatch returns the group's match without a recorded result, or nil.
func (s *Snapshot) OpenMatch(groupID string) *Match {
	return s.find(groupID, func(m *Match) bool {
		return m.IsOpen()
	})
}

// UnconfirmedMatch returns the group's open match that has not reached full
// confirmation yet. Signup and venue confirmation target this phase.
func (s *Snapshot) UnconfirmedMatch(groupID string) *Match {
	return s.find(groupID, func(m *Match) bool {
		return m.IsOpen() && !m.Confirmed
	})
}

// DrawableMatch returns the group's confirmed open match with no teams drawn.
func (s *Snapshot) DrawableMatch(groupID string) *Match {
	return s.find(groupID, func(m *Match) bool {
		return m.IsOpen() && m.Confirmed && m.Teams == nil
	})
}

// ResultableMatch returns the group's open match with teams already drawn.
func (s *Snapshot) ResultableMatch(groupID string) *Match {
	return s.find(groupID, func(m *Match) bool {
		return m.IsOpen() && m.Teams != nil
	})
}

// MatchByID returns the match with the given id regardless of state, or nil.
func (s *Snapshot) MatchByID(id string) *Match {
	for _, m := range s.Matches {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// RemoveOpenMatches drops every open match for the group and reports how many
// were removed. Closed matches are kept as history.
func (s *Snapshot) RemoveOpenMatches(groupID string) int {
	kept := s.Matches[:0]
	removed := 0
	for _, m := range s.Matches {
		if m.GroupID == groupID && m.IsOpen() {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	s.Matches = kept
	return removed
}

// RecordOutcome folds a finished match into the per-player statistics.
func (s *Snapshot) RecordOutcome(m *Match) {
	if m.Teams == nil || m.Result == nil {
		return
	}
	if s.Stats == nil {
		s.Stats = make(map[string]*PlayerStats)
	}
	s.tally(m.Teams.Team1, m.Result.Winner == 1)
	s.tally(m.Teams.Team2, m.Result.Winner == 2)
}

func (s *Snapshot) tally(team []*Player, won bool) {
	for _, p := range team {
		st, ok := s.Stats[p.ID]
		if !ok {
			st = &PlayerStats{Name: p.Name}
			s.Stats[p.ID] = st
		}
		st.Played++
		if won {
			st.Won++
		} else {
			st.Lost++
		}
	}
}

func (s *Snapshot) find(groupID string, match func(*Match) bool) *Match {
	for _, m := range s.Matches {
		if m.GroupID == groupID && match(m) {
			return m
		}
	}
	return nil
}
