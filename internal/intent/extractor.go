// Package intent classifies free-text group messages into structured intents.
// Detection is deterministic pattern matching over a fixed rule order; the
// first rule that matches wins and no rule ever combines with another.
package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/redondonicolas-afk/padel/internal/domain"
)

// Classification runs on a normalized copy of the message (lowercase, accents
// folded) so "ganó" and "gano" hit the same pattern. Field capture that must
// keep the author's casing (the place name) runs on the raw text instead.
var normalizer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
)

var (
	createVerbRe = regexp.MustCompile(`\b(armar|crear|organizar|hacer|proponer|armemos|hagamos|agregar|agrega|poner|pone|fecha|proximo)\b.*\b(partido|partidos|juego|cancha)\b`)
	createDayRe  = regexp.MustCompile(`\b(partido|juego|cancha)\b.*\b(lunes|martes|miercoles|jueves|viernes|sabado|domingo|hoy|manana)\b`)
	createDateRe = regexp.MustCompile(`\b(partido|juego|cancha)\b.*\b\d{1,2}[/-]\d{1,2}\b`)
	dateHintRe   = regexp.MustCompile(`\bfecha\b.*\b\d{1,2}[/-]\d{1,2}\b`)
	nextMatchRe  = regexp.MustCompile(`\bproximo\b.*\bpartido\b`)

	signUpRe   = regexp.MustCompile(`\b(me anoto|yo juego|me sumo|voy|cuenten conmigo|cuenta conmigo|me apunto|anotame|presente|yo|me uno)\b`)
	withdrawRe = regexp.MustCompile(`\b(me bajo|no puedo|no voy|me borro|no cuenten conmigo|cancelo|no llego|baja)\b`)

	attendanceRe = regexp.MustCompile(`\b(confirmo|confirmado|sigo|dale|ok|estoy|voy)\b`)
	matchNounRe  = regexp.MustCompile(`\b(cancha|partido)\b`)

	rollCallAskRe  = regexp.MustCompile(`\b(confirmen|confirmacion|quien|quienes)\b.*\b(viene|va|juega|confirma)\b`)
	rollCallWordRe = regexp.MustCompile(`\b(roll\s*call|pasen lista|lista|confirmar)\b`)

	drawRe = regexp.MustCompile(`\b(sortear|sorteo|armar equipos|hacer equipos|equipos|parejas|sortea)\b`)

	resultRe = regexp.MustCompile(`\b(ganamos|perdimos|gano|perdio|resultado)\b`)
	team1Re  = regexp.MustCompile(`\b(equipo\s*1|primero|azul|ganamos\s*nosotros|ganamos)\b`)
	team2Re  = regexp.MustCompile(`\b(equipo\s*2|segundo|rojo|perdimos)\b`)

	statusRe = regexp.MustCompile(`\b(estado|como vamos|quienes|quien|confirmados|cuantos)\b`)

	venueThenOkRe = regexp.MustCompile(`\b(cancha|campo|pista)\b.*\b(confirmada|confirmado|reservada|reservado|lista|listo|ok|tengo|tenemos|saque|pague)\b`)
	okThenVenueRe = regexp.MustCompile(`\b(confirmada|confirmado|reservada|reservado|lista|listo|saque|pague)\b.*\b(cancha|campo|pista)\b`)
	gotVenueRe    = regexp.MustCompile(`\bya\s+(saque|tengo|reserve)\b.*\b(cancha|campo|pista)\b`)
	venueNounRe   = regexp.MustCompile(`\bcancha\b`)

	paymentRe = regexp.MustCompile(`\b(pague|pago|transferi|puse)\b`)

	helpRe = regexp.MustCompile(`\b(ayuda|help|comandos|que puedo|como)\b`)

	dateRe  = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})\b`)
	timeRe  = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\s*(?:hs|h|am|pm)?\b`)
	placeRe = regexp.MustCompile(`(?i)\b(?:en|lugar|club|cancha)\s+([a-zñáéíóúü][a-zñáéíóúü\s]*)`)
	moneyRe = regexp.MustCompile(`\$?\s*(\d+(?:\.\d+)?)\s*(mil|k|pesos)?\b`)
)

// weekdays in the order they are probed; the first list entry present in the
// message wins, not the first in text order.
var weekdays = []string{
	"lunes", "martes", "miercoles", "jueves", "viernes", "sabado", "domingo",
	"hoy", "manana",
}

var weekdayRes = func() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(weekdays))
	for _, d := range weekdays {
		res[d] = regexp.MustCompile(`\b` + d + `\b`)
	}
	return res
}()

// display forms for days whose accents were folded during normalization
var dayDisplay = map[string]string{
	"miercoles": "miércoles",
	"sabado":    "sábado",
	"manana":    "mañana",
}

var placeStopWords = map[string]bool{
	"y": true, "el": true, "la": true, "los": true, "las": true,
}

// Extract maps one message to at most one intent. It is pure: same text, same
// result. A nil return means "no intent" and the caller falls through to the
// slash-command path.
func Extract(text string) domain.Intent {
	norm := normalizer.Replace(strings.ToLower(text))

	if createVerbRe.MatchString(norm) || createDayRe.MatchString(norm) ||
		createDateRe.MatchString(norm) || dateHintRe.MatchString(norm) ||
		nextMatchRe.MatchString(norm) {
		return extractSchedule(text, norm)
	}

	if signUpRe.MatchString(norm) {
		return domain.SignUp{}
	}

	if withdrawRe.MatchString(norm) {
		return domain.Withdraw{}
	}

	// A bare affirmation only counts as attendance when the message does not
	// talk about the venue or the match itself; those phrasings belong to the
	// venue-confirmation rule below.
	if attendanceRe.MatchString(norm) && !matchNounRe.MatchString(norm) {
		return domain.ConfirmAttendance{}
	}

	if rollCallAskRe.MatchString(norm) || rollCallWordRe.MatchString(norm) {
		return domain.RequestRollCall{}
	}

	if drawRe.MatchString(norm) {
		return domain.DrawTeams{}
	}

	if resultRe.MatchString(norm) {
		switch {
		case team1Re.MatchString(norm):
			return domain.RecordResult{Winner: 1}
		case team2Re.MatchString(norm):
			return domain.RecordResult{Winner: 2}
		default:
			return domain.RecordResult{}
		}
	}

	if statusRe.MatchString(norm) {
		return domain.QueryStatus{}
	}

	if venueThenOkRe.MatchString(norm) || okThenVenueRe.MatchString(norm) ||
		gotVenueRe.MatchString(norm) {
		return domain.ConfirmVenue{Price: extractMoney(norm)}
	}

	if paymentRe.MatchString(norm) && !venueNounRe.MatchString(norm) {
		return domain.RecordPayment{Amount: extractMoney(norm)}
	}

	if helpRe.MatchString(norm) {
		return domain.Help{}
	}

	return nil
}

func extractSchedule(raw, norm string) domain.CreateMatch {
	out := domain.CreateMatch{}

	// Numeric dd/mm (or dd-mm) beats a weekday name.
	if loc := dateRe.FindStringSubmatchIndex(norm); loc != nil {
		out.Day = norm[loc[2]:loc[3]] + "/" + norm[loc[4]:loc[5]]
		// Blank the date so the time scan below cannot mistake the day
		// number for an hour.
		norm = norm[:loc[0]] + strings.Repeat(" ", loc[1]-loc[0]) + norm[loc[1]:]
	} else {
		for _, d := range weekdays {
			if weekdayRes[d].MatchString(norm) {
				if display, ok := dayDisplay[d]; ok {
					out.Day = display
				} else {
					out.Day = d
				}
				break
			}
		}
	}

	if m := timeRe.FindStringSubmatch(norm); m != nil {
		if m[2] != "" {
			out.Time = m[1] + ":" + m[2]
		} else {
			out.Time = m[1] + ":00"
		}
	}

	if m := placeRe.FindStringSubmatch(raw); m != nil {
		out.Place = trimPlace(m[1])
	}

	return out
}

// trimPlace cuts the captured run of words at the first conjunction/article,
// mirroring how people chain clauses ("en ClubNorte y despues asado").
func trimPlace(capture string) string {
	var kept []string
	for _, tok := range strings.Fields(capture) {
		if placeStopWords[strings.ToLower(tok)] {
			break
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// extractMoney finds the first numeric token; a "mil"/"k" suffix multiplies
// by a thousand, so "20 mil" and "20000" read the same. Returns 0 when the
// message carries no number.
func extractMoney(norm string) float64 {
	m := moneyRe.FindStringSubmatch(norm)
	if m == nil {
		return 0
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	if m[2] == "mil" || m[2] == "k" {
		value *= 1000
	}
	return value
}
