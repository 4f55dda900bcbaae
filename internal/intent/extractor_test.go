package intent

import (
	"reflect"
	"testing"

	"github.com/redondonicolas-afk/padel/internal/domain"
)

func TestExtractCreateMatch(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.CreateMatch
	}{
		{
			"weekday with time and place",
			"Armemos un partido el lunes a las 20 en ClubNorte",
			domain.CreateMatch{Day: "lunes", Time: "20:00", Place: "ClubNorte"},
		},
		{
			"numeric date beats weekday",
			"Partido el 25/11 a las 20:00",
			domain.CreateMatch{Day: "25/11", Time: "20:00"},
		},
		{
			"dash date",
			"organicemos juego fecha 25-11",
			domain.CreateMatch{Day: "25/11"},
		},
		{
			"place keeps author casing",
			"hagamos un partido el sabado 18 en ClubSur y despues asado",
			domain.CreateMatch{Day: "sábado", Time: "18:00", Place: "ClubSur"},
		},
		{
			"relative day",
			"armemos un juego mañana a las 19hs",
			domain.CreateMatch{Day: "mañana", Time: "19:00"},
		},
		{
			"time with minutes",
			"proponer partido el martes 20:30 en Palermo",
			domain.CreateMatch{Day: "martes", Time: "20:30", Place: "Palermo"},
		},
		{
			"nothing extractable",
			"armemos un partido",
			domain.CreateMatch{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractRules(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.Intent
	}{
		{"sign up", "me anoto", domain.SignUp{}},
		{"sign up variant", "cuenten conmigo!", domain.SignUp{}},
		{"withdraw", "no puedo, me bajo", domain.Withdraw{}},
		{"withdraw variant", "cancelo por hoy", domain.Withdraw{}},
		{"attendance", "confirmo", domain.ConfirmAttendance{}},
		{"attendance with accent", "confirmadísimo no, confirmado sí", domain.ConfirmAttendance{}},
		{"roll call", "quién viene el jueves?", domain.RequestRollCall{}},
		{"roll call word", "pasen lista", domain.RequestRollCall{}},
		{"draw", "sortear equipos!", domain.DrawTeams{}},
		{"draw variant", "armar equipos ya", domain.DrawTeams{}},
		{"result we won", "ganamos!!", domain.RecordResult{Winner: 1}},
		{"result we lost", "perdimos...", domain.RecordResult{Winner: 2}},
		{"result team token", "ganó el equipo 2", domain.RecordResult{Winner: 2}},
		{"result color", "gano el rojo", domain.RecordResult{Winner: 2}},
		{"result unknown team", "tenemos resultado", domain.RecordResult{}},
		{"status", "cómo vamos?", domain.QueryStatus{}},
		{"status confirmed", "cuántos confirmados hay", domain.QueryStatus{}},
		{"venue confirmed with price", "cancha confirmada 20000", domain.ConfirmVenue{Price: 20000}},
		{"venue price with multiplier", "cancha reservada, salió 20 mil", domain.ConfirmVenue{Price: 20000}},
		{"venue reversed order", "ya saqué la cancha", domain.ConfirmVenue{}},
		{"venue beats attendance words", "cancha reservada, dale", domain.ConfirmVenue{}},
		{"payment", "pagué 5000", domain.RecordPayment{Amount: 5000}},
		{"payment with k", "transferí 5k", domain.RecordPayment{Amount: 5000}},
		{"payment no amount", "ya puse mi parte", domain.RecordPayment{}},
		{"payment about venue is venue", "pagué la cancha, confirmada", domain.ConfirmVenue{}},
		{"help", "ayuda", domain.Help{}},
		{"help question", "qué puedo decirte?", domain.Help{}},
		{"no intent", "hola a todos", nil},
		{"no intent emoji", "😂😂😂", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}
}

// Rule order is part of the contract: a bare affirmation is attendance only
// when the message says nothing about the venue or the match.
func TestAttendanceVenueDisambiguation(t *testing.T) {
	if _, ok := Extract("confirmo").(domain.ConfirmAttendance); !ok {
		t.Error(`"confirmo" should be attendance`)
	}
	if _, ok := Extract("cancha confirmada").(domain.ConfirmVenue); !ok {
		t.Error(`"cancha confirmada" should be venue confirmation`)
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	text := "Armemos un partido el lunes a las 20 en ClubNorte"
	first := Extract(text)
	for i := 0; i < 50; i++ {
		if got := Extract(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("Extract changed between calls: %#v vs %#v", got, first)
		}
	}
}
