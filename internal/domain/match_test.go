package domain

import "testing"

func roster(ids ...string) []*Player {
	players := make([]*Player, len(ids))
	for i, id := range ids {
		players[i] = &Player{ID: id, Name: id}
	}
	return players
}

func TestRefreshConfirmed(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		venue bool
		want  bool
	}{
		{"empty", 0, true, false},
		{"three players with venue", 3, true, false},
		{"four players no venue", 4, false, false},
		{"four players with venue", 4, true, true},
		{"six players with venue", 6, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Match{VenueConfirmed: tt.venue}
			for i := 0; i < tt.size; i++ {
				m.Roster = append(m.Roster, &Player{ID: string(rune('a' + i))})
			}
			m.RefreshConfirmed()
			if m.Confirmed != tt.want {
				t.Errorf("confirmed = %v, want %v", m.Confirmed, tt.want)
			}
		})
	}
}

func TestCostPerPlayerFloorsDivisorAtFour(t *testing.T) {
	tests := []struct {
		name   string
		cost   float64
		roster int
		want   float64
	}{
		{"no cost", 0, 4, 0},
		{"two players pay a quarter each", 20000, 2, 5000},
		{"four players", 20000, 4, 5000},
		{"five players share cheaper", 20000, 5, 4000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Match{TotalCost: tt.cost}
			for i := 0; i < tt.roster; i++ {
				m.Roster = append(m.Roster, &Player{})
			}
			if got := m.CostPerPlayer(); got != tt.want {
				t.Errorf("share = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemovePlayerKeepsOrder(t *testing.T) {
	m := &Match{Roster: roster("a", "b", "c", "d")}

	if !m.RemovePlayer("b") {
		t.Fatal("remove reported false for present player")
	}
	if m.RemovePlayer("b") {
		t.Error("remove reported true for absent player")
	}

	want := []string{"a", "c", "d"}
	for i, p := range m.Roster {
		if p.ID != want[i] {
			t.Errorf("roster[%d] = %s, want %s", i, p.ID, want[i])
		}
	}
}

func TestSnapshotPhaseFilters(t *testing.T) {
	open := &Match{ID: "open", GroupID: "g1"}
	confirmed := &Match{ID: "confirmed", GroupID: "g2", Confirmed: true}
	drawn := &Match{ID: "drawn", GroupID: "g3", Confirmed: true, Teams: &TeamSplit{}}
	closed := &Match{ID: "closed", GroupID: "g4", Result: &Result{Winner: 1}}

	s := NewSnapshot()
	s.Matches = []*Match{open, confirmed, drawn, closed}

	if got := s.UnconfirmedMatch("g1"); got != open {
		t.Errorf("unconfirmed(g1) = %v", got)
	}
	if got := s.UnconfirmedMatch("g2"); got != nil {
		t.Errorf("unconfirmed(g2) = %v, want nil once confirmed", got)
	}
	if got := s.DrawableMatch("g2"); got != confirmed {
		t.Errorf("drawable(g2) = %v", got)
	}
	if got := s.DrawableMatch("g3"); got != nil {
		t.Errorf("drawable(g3) = %v, want nil once drawn", got)
	}
	if got := s.ResultableMatch("g3"); got != drawn {
		t.Errorf("resultable(g3) = %v", got)
	}
	if got := s.OpenMatch("g4"); got != nil {
		t.Errorf("open(g4) = %v, want nil after result", got)
	}
}

func TestRecordOutcomeTalliesBothTeams(t *testing.T) {
	team1 := roster("a", "b")
	team2 := roster("c", "d")
	m := &Match{
		Teams:  &TeamSplit{Team1: team1, Team2: team2},
		Result: &Result{Winner: 2},
	}

	s := NewSnapshot()
	s.RecordOutcome(m)
	s.RecordOutcome(&Match{}) // no teams, no result: no-op

	for _, id := range []string{"c", "d"} {
		if st := s.Stats[id]; st == nil || st.Won != 1 || st.Played != 1 {
			t.Errorf("winner %s stats = %+v", id, st)
		}
	}
	for _, id := range []string{"a", "b"} {
		if st := s.Stats[id]; st == nil || st.Lost != 1 || st.Played != 1 {
			t.Errorf("loser %s stats = %+v", id, st)
		}
	}
}
