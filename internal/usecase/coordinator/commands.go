package coordinator

import (
	"context"
	"strconv"
	"strings"

	"github.com/redondonicolas-afk/padel/internal/domain"
)

// Slash commands are the strict dispatch path: exact token counts and
// enumerated arguments, with a usage hint on any mismatch. They never go
// through the intent extractor.
func (c *Coordinator) runCommand(ctx context.Context, msg InboundMessage, text string) (string, error) {
	fields := strings.Fields(text)

	switch fields[0] {
	case "/partido":
		if len(fields) < 4 {
			return "❌ Uso: /partido [día] [hora] [lugar]\nEjemplo: /partido Lunes 20:00 ClubNorte", nil
		}
		return c.matches.Create(ctx, msg.GroupID, domain.CreateMatch{
			Day:   fields[1],
			Time:  fields[2],
			Place: strings.Join(fields[3:], " "),
		})

	case "/anotarse":
		if len(fields) != 1 {
			return "❌ Uso: /anotarse (sin argumentos)", nil
		}
		return c.matches.SignUp(ctx, msg.GroupID, msg.SenderID, msg.SenderName)

	case "/sortear":
		if len(fields) != 1 {
			return "❌ Uso: /sortear (sin argumentos)", nil
		}
		return c.matches.DrawTeams(ctx, msg.GroupID)

	case "/resultado", "/ganador":
		winner, ok := parseWinner(fields)
		if !ok {
			return "❌ Uso: /resultado [1 o 2]\nEjemplo: /resultado 1", nil
		}
		return c.matches.RecordResult(ctx, msg.GroupID, winner)

	case "/estado":
		if len(fields) != 1 {
			return "❌ Uso: /estado (sin argumentos)", nil
		}
		return c.matches.Status(msg.GroupID), nil

	case "/limpiar":
		if len(fields) != 1 {
			return "❌ Uso: /limpiar (sin argumentos)", nil
		}
		return c.matches.Clear(ctx, msg.GroupID)

	case "/ayuda", "/help":
		return c.matches.Help(), nil

	default:
		return "❓ No conozco ese comando. Escribí /ayuda para ver lo que entiendo.", nil
	}
}

func parseWinner(fields []string) (int, bool) {
	if len(fields) != 2 {
		return 0, false
	}
	winner, err := strconv.Atoi(fields[1])
	if err != nil || (winner != 1 && winner != 2) {
		return 0, false
	}
	return winner, true
}
