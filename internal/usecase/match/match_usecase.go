// Package match holds the state machine that drives a group's match through
// its lifecycle: created → roster filling → venue confirmed → teams drawn →
// result recorded. Every operation follows the same shape: locate the match
// under a phase-specific filter, validate, mutate, persist, reply.
//
// Validation failures are never errors. They come back as user-facing reply
// text; the only error an operation can return is a failed persistence write.
package match

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/redondonicolas-afk/padel/internal/domain"
	"github.com/redondonicolas-afk/padel/internal/repository"
)

// promptDelay is how long after full confirmation the follow-up prompt fires.
const promptDelay = 2 * time.Hour

type UseCase struct {
	repo repository.SnapshotRepository
	rng  *rand.Rand
	now  func() time.Time

	// mu guards the snapshot: the coordinator serializes messages per
	// group, but the follow-up worker and messages from other groups all
	// share this one collection.
	mu   sync.Mutex
	snap *domain.Snapshot
}

// NewUseCase loads the persisted snapshot and becomes its single owner; no
// other component reads or mutates the collection directly.
func NewUseCase(ctx context.Context, repo repository.SnapshotRepository) (*UseCase, error) {
	snap, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return &UseCase{
		repo: repo,
		snap: snap,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		now:  time.Now,
	}, nil
}

// Create opens a new match for the group. Rejected while another open match
// exists; missing schedule fields produce a clarification instead of a match.
func (u *UseCase) Create(ctx context.Context, groupID string, in domain.CreateMatch) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.snap.OpenMatch(groupID) != nil {
		return "⚠️ Ya hay un partido activo. Usá /limpiar para cancelarlo primero.", nil
	}

	var missing []string
	if in.Day == "" {
		missing = append(missing, "día/fecha")
	}
	if in.Time == "" {
		missing = append(missing, "hora")
	}
	if in.Place == "" {
		missing = append(missing, "lugar")
	}
	if len(missing) > 0 {
		return fmt.Sprintf(
			"Para crear un partido me falta: %s\n\nEjemplo: \"El 25/11 a las 20:00 en ClubNorte\"",
			strings.Join(missing, ", "),
		), nil
	}

	m := &domain.Match{
		ID:        uuid.NewString(),
		GroupID:   groupID,
		Day:       in.Day,
		Time:      in.Time,
		Place:     in.Place,
		CreatedAt: u.now(),
	}
	u.snap.Matches = append(u.snap.Matches, m)

	if err := u.persist(ctx); err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"🎾 *NUEVO PARTIDO*\n📅 %s a las %s\n📍 %s\n\n👥 Jugadores: 0/4\n🏟️ Cancha: ❌ Pendiente\n\n"+
			"Escribí \"me anoto\" para sumarte!\nCuando tengas la cancha, escribí \"cancha confirmada\"",
		m.Day, m.Time, m.Place,
	), nil
}

// SignUp adds the sender to the roster of the group's not-yet-confirmed match.
func (u *UseCase) SignUp(ctx context.Context, groupID, playerID, name string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	m := u.snap.UnconfirmedMatch(groupID)
	if m == nil {
		return "❌ No hay partidos activos. Creá uno escribiendo por ejemplo: \"Armemos un partido el lunes a las 20\"", nil
	}
	if m.FindPlayer(playerID) != nil {
		return "⚠️ Ya estás anotado!", nil
	}

	m.Roster = append(m.Roster, &domain.Player{
		ID:        playerID,
		Name:      name,
		Confirmed: true,
		JoinedAt:  u.now(),
	})
	m.RefreshConfirmed()
	if m.Confirmed {
		u.schedulePrompt(m)
	}

	if err := u.persist(ctx); err != nil {
		return "", err
	}

	total := len(m.Roster)
	switch {
	case m.Confirmed:
		rotation := ""
		if total > domain.MinPlayers {
			rotation = "⚽ Como somos más de 4, todos van a jugar el mismo tiempo con rotación!\n\n"
		}
		return fmt.Sprintf(
			"✅ *PARTIDO CONFIRMADO!*\n\n👥 Jugadores:\n%s\n🏟️ Cancha: ✅ Confirmada\n\n%s🎲 Escribí \"sortear\" para armar equipos!",
			rosterLines(m.Roster), rotation,
		), nil
	case total >= domain.MinPlayers:
		extra := ""
		if total > domain.MinPlayers {
			extra = fmt.Sprintf(" +%d", total-domain.MinPlayers)
		}
		return fmt.Sprintf(
			"✅ %s confirmado!\n\n👥 Jugadores: ✅ %d/4 COMPLETO%s\n🏟️ Cancha: ❌ Falta confirmar\n\n"+
				"Solo falta que alguien escriba \"cancha confirmada\"!",
			name, total, extra,
		), nil
	default:
		return fmt.Sprintf(
			"✅ %s confirmado!\n\n👥 Jugadores: %d/4\n🏟️ Cancha: %s",
			name, total, venueStatus(m),
		), nil
	}
}

// Withdraw removes the sender from any open match. Dropping below four
// players revokes a previous full confirmation.
func (u *UseCase) Withdraw(ctx context.Context, groupID, playerID, name string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	m := u.snap.OpenMatch(groupID)
	if m == nil {
		return "❌ No hay partidos activos.", nil
	}
	if !m.RemovePlayer(playerID) {
		return "⚠️ No estabas anotado en este partido.", nil
	}
	m.RefreshConfirmed()

	if err := u.persist(ctx); err != nil {
		return "", err
	}

	total := len(m.Roster)
	footer := "¡Ya somos 4!"
	if total < domain.MinPlayers {
		footer = fmt.Sprintf("Faltan %s para completar!", playersNeeded(domain.MinPlayers-total))
	}
	return fmt.Sprintf(
		"❌ %s se dio de baja.\n\n👥 Jugadores: %d/4\n🏟️ Cancha: %s\n\n%s",
		name, total, venueStatus(m), footer,
	), nil
}

// ConfirmAttendance marks the sender's existing roster entry as confirmed.
func (u *UseCase) ConfirmAttendance(ctx context.Context, groupID, playerID, name string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	m := u.snap.OpenMatch(groupID)
	if m == nil {
		return "❌ No hay partidos activos.", nil
	}
	p := m.FindPlayer(playerID)
	if p == nil {
		return "⚠️ No estás anotado. Escribí \"me anoto\" para sumarte!", nil
	}
	if p.Confirmed {
		return fmt.Sprintf("✅ %s, ya estabas confirmado!", name), nil
	}

	p.Confirmed = true

	if err := u.persist(ctx); err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"✅ %s confirmado!\n\n👥 Confirmados: %d/%d",
		name, m.ConfirmedCount(), len(m.Roster),
	), nil
}

// RollCall resets every player's attendance flag so all must confirm again.
// The reset is the point: a roll call demands fresh answers.
func (u *UseCase) RollCall(ctx context.Context, groupID string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	m := u.snap.OpenMatch(groupID)
	if m == nil {
		return "❌ No hay partidos activos.", nil
	}
	if len(m.Roster) == 0 {
		return "❌ No hay jugadores anotados todavía.", nil
	}

	for _, p := range m.Roster {
		p.Confirmed = false
	}

	if err := u.persist(ctx); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("📣 *CONFIRMACIÓN DE ASISTENCIA*\n\n")
	fmt.Fprintf(&b, "📅 %s a las %s\n📍 %s\n\n", m.Day, m.Time, m.Place)
	b.WriteString("Por favor, confirmen escribiendo \"confirmo\" o \"voy\":\n\n")
	for i, p := range m.Roster {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "• %s ❓", p.Name)
	}
	return b.String(), nil
}

// DrawTeams shuffles the roster with an unbiased permutation and splits it:
// first two form team 1, next two team 2, the rest sit on the bench.
func (u *UseCase) DrawTeams(ctx context.Context, groupID string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	m := u.snap.DrawableMatch(groupID)
	if m == nil {
		return "❌ No hay partido confirmado para sortear.", nil
	}
	if len(m.Roster) < domain.MinPlayers {
		return "❌ Necesitamos al menos 4 jugadores.", nil
	}

	shuffled := make([]*domain.Player, len(m.Roster))
	copy(shuffled, m.Roster)
	u.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	m.Teams = &domain.TeamSplit{
		Team1: shuffled[0:2],
		Team2: shuffled[2:4],
	}
	if len(shuffled) > domain.MinPlayers {
		m.Teams.Bench = shuffled[domain.MinPlayers:]
	}

	if err := u.persist(ctx); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("🎲 *SORTEO DE EQUIPOS*\n\n")
	fmt.Fprintf(&b, "🔵 *EQUIPO 1*\n%s\n\n", rosterLines(m.Teams.Team1))
	fmt.Fprintf(&b, "🔴 *EQUIPO 2*\n%s", rosterLines(m.Teams.Team2))
	if len(m.Teams.Bench) > 0 {
		fmt.Fprintf(&b, "\n\n⏸️ *DESCANSAN (rotarán)*\n%s", rosterLines(m.Teams.Bench))
		b.WriteString("\n\n⚽ Todos van a jugar el mismo tiempo!")
	}
	b.WriteString("\n\n📊 Al terminar, escribí \"ganamos\" o \"perdimos\"")
	return b.String(), nil
}

// RecordResult closes the match. winner 0 means the message did not identify
// the team, so the bot asks instead of guessing.
func (u *UseCase) RecordResult(ctx context.Context, groupID string, winner int) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	m := u.snap.ResultableMatch(groupID)
	if m == nil {
		return "❌ No hay partido activo con equipos sorteados.", nil
	}
	if winner != 1 && winner != 2 {
		return "¿Quién ganó? Escribí \"ganamos\" si ganó tu equipo, o usá /resultado 1 o /resultado 2", nil
	}

	m.Result = &domain.Result{
		Winner:     winner,
		RecordedAt: u.now(),
	}
	u.snap.RecordOutcome(m)

	if err := u.persist(ctx); err != nil {
		return "", err
	}

	names := make([]string, 0, 2)
	for _, p := range m.WinningPlayers() {
		names = append(names, p.Name)
	}
	return fmt.Sprintf(
		"🏆 *PARTIDO FINALIZADO*\n\n✅ Ganó el Equipo %d!\n🎉 %s\n\n¡Buen partido!",
		winner, strings.Join(names, " y "),
	), nil
}

// ConfirmVenue marks the venue booked on the not-yet-confirmed match and,
// when a price comes with it, records the total cost and the confirmer's
// payment in one step.
func (u *UseCase) ConfirmVenue(ctx context.Context, groupID, playerID, name string, price float64) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	m := u.snap.UnconfirmedMatch(groupID)
	if m == nil {
		return "❌ No hay partidos activos para confirmar la cancha.", nil
	}

	if price > 0 {
		return u.confirmVenueWithPrice(ctx, m, playerID, name, price)
	}

	if m.VenueConfirmed {
		return "✅ La cancha ya estaba confirmada!", nil
	}

	m.VenueConfirmed = true
	m.RefreshConfirmed()
	if m.Confirmed {
		u.schedulePrompt(m)
	}

	if err := u.persist(ctx); err != nil {
		return "", err
	}

	if m.Confirmed {
		return fmt.Sprintf(
			"🏟️ *CANCHA CONFIRMADA!*\n\n✅ *PARTIDO CONFIRMADO!*\n\n👥 Jugadores:\n%s\n\n"+
				"💰 ¿Cuánto sale la cancha? Decime el precio así lo divido entre todos.",
			rosterLines(m.Roster),
		), nil
	}
	return fmt.Sprintf(
		"🏟️ *CANCHA CONFIRMADA!*\n\n👥 Jugadores: %d/4\n\nFaltan %s para completar!\n\n💰 ¿Cuánto sale la cancha?",
		len(m.Roster), playersNeeded(domain.MinPlayers-len(m.Roster)),
	), nil
}

func (u *UseCase) confirmVenueWithPrice(ctx context.Context, m *domain.Match, playerID, name string, price float64) (string, error) {
	m.TotalCost = price
	m.VenueConfirmed = true
	if m.FindPayment(playerID) == nil {
		m.Payments = append(m.Payments, domain.Payment{
			PlayerID:   playerID,
			PlayerName: name,
			Amount:     price,
			PaidAt:     u.now(),
		})
	}
	m.RefreshConfirmed()
	if m.Confirmed {
		u.schedulePrompt(m)
	}

	if err := u.persist(ctx); err != nil {
		return "", err
	}

	share := m.CostPerPlayer()
	var b strings.Builder
	b.WriteString("🏟️ *CANCHA CONFIRMADA!*\n")
	fmt.Fprintf(&b, "💰 Precio total: $%s\n", fmtAmount(price))
	fmt.Fprintf(&b, "👤 Por persona: $%.0f\n\n", share)
	fmt.Fprintf(&b, "✅ %s pagó la cancha ($%s)\n\n", name, fmtAmount(price))

	if m.Confirmed {
		fmt.Fprintf(&b, "✅ *PARTIDO CONFIRMADO!*\n\n👥 Jugadores:\n%s\n\n", rosterLines(m.Roster))
		fmt.Fprintf(&b, "💸 Cada uno debe: $%.0f a %s", share, name)
	} else {
		fmt.Fprintf(&b, "👥 Jugadores: %d/4\n\nFaltan %s para completar!",
			len(m.Roster), playersNeeded(domain.MinPlayers-len(m.Roster)))
	}
	return b.String(), nil
}

// RecordPayment registers the sender's share. A second attempt by the same
// player echoes what was already recorded and stores nothing.
func (u *UseCase) RecordPayment(ctx context.Context, groupID, playerID, name string, amount float64) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	m := u.snap.OpenMatch(groupID)
	if m == nil {
		return "❌ No hay partidos activos.", nil
	}
	if m.TotalCost <= 0 {
		return "❌ Todavía no se definió el precio de la cancha.", nil
	}
	if amount <= 0 {
		return fmt.Sprintf(
			"💰 ¿Cuánto pagaste? El total es $%s ($%.0f por persona)",
			fmtAmount(m.TotalCost), m.CostPerPlayer(),
		), nil
	}
	if prev := m.FindPayment(playerID); prev != nil {
		return fmt.Sprintf("⚠️ %s, ya tenés registrado un pago de $%s", name, fmtAmount(prev.Amount)), nil
	}

	m.Payments = append(m.Payments, domain.Payment{
		PlayerID:   playerID,
		PlayerName: name,
		Amount:     amount,
		PaidAt:     u.now(),
	})

	if err := u.persist(ctx); err != nil {
		return "", err
	}

	paid := m.TotalPaid()
	remaining := m.TotalCost - paid

	var b strings.Builder
	fmt.Fprintf(&b, "✅ %s pagó $%s\n\n", name, fmtAmount(amount))
	fmt.Fprintf(&b, "💰 Total pagado: $%s / $%s\n", fmtAmount(paid), fmtAmount(m.TotalCost))
	if remaining <= 0 {
		b.WriteString("\n🎉 ¡Cancha pagada completa!")
	} else {
		fmt.Fprintf(&b, "💸 Falta: $%s", fmtAmount(remaining))
	}
	return b.String(), nil
}

// Status renders the full picture of the group's open match. Read-only.
func (u *UseCase) Status(groupID string) string {
	u.mu.Lock()
	defer u.mu.Unlock()

	m := u.snap.OpenMatch(groupID)
	if m == nil {
		return "📭 No hay partidos activos en este grupo."
	}

	total := len(m.Roster)

	var b strings.Builder
	b.WriteString("🎾 *PARTIDO*\n\n")
	fmt.Fprintf(&b, "📅 %s a las %s\n📍 %s\n\n", m.Day, m.Time, m.Place)

	plus := ""
	if total > domain.MinPlayers {
		plus = "+"
	}
	fmt.Fprintf(&b, "👥 *JUGADORES (%d/4%s)*\n", total, plus)
	if total == 0 {
		b.WriteString("(Nadie anotado todavía)")
	} else {
		for i, p := range m.Roster {
			if i > 0 {
				b.WriteString("\n")
			}
			mark := "❓"
			if p.Confirmed {
				mark = "✅"
			}
			fmt.Fprintf(&b, "%s %s", mark, p.Name)
		}
	}
	if c := m.ConfirmedCount(); c < total && total > 0 {
		fmt.Fprintf(&b, "\n⚠️ %d sin confirmar", total-c)
	}

	fmt.Fprintf(&b, "\n\n🏟️ *CANCHA*\n%s", venueStatus(m))

	if m.TotalCost > 0 {
		fmt.Fprintf(&b, "\n💰 Total: $%s ($%.0f c/u)\n", fmtAmount(m.TotalCost), m.CostPerPlayer())
		if len(m.Payments) > 0 {
			b.WriteString("\n*Pagos:*\n")
			for _, p := range m.Payments {
				fmt.Fprintf(&b, "✅ %s: $%s\n", p.PlayerName, fmtAmount(p.Amount))
			}
		}
		if remaining := m.TotalCost - m.TotalPaid(); remaining > 0 {
			fmt.Fprintf(&b, "\n💸 Falta pagar: $%s", fmtAmount(remaining))
		} else {
			b.WriteString("\n🎉 ¡Pagada!")
		}
	}

	if total < domain.MinPlayers || !m.VenueConfirmed {
		b.WriteString("\n\n⚠️ *FALTA:*\n")
		if total < domain.MinPlayers {
			fmt.Fprintf(&b, "• %s más\n", playersNeeded(domain.MinPlayers-total))
		}
		if !m.VenueConfirmed {
			b.WriteString("• Confirmar cancha\n")
		}
	} else if m.Confirmed {
		b.WriteString("\n\n✅ *¡PARTIDO CONFIRMADO!*")
		if total > domain.MinPlayers {
			fmt.Fprintf(&b, "\n⚽ Con rotación (%d jugadores)", total)
		}
	}

	if m.Teams != nil {
		fmt.Fprintf(&b, "\n\n🔵 *Equipo 1:* %s", joinNames(m.Teams.Team1, " y "))
		fmt.Fprintf(&b, "\n🔴 *Equipo 2:* %s", joinNames(m.Teams.Team2, " y "))
		if len(m.Teams.Bench) > 0 {
			fmt.Fprintf(&b, "\n⏸️ *Descansan:* %s", joinNames(m.Teams.Bench, ", "))
		}
	}

	return b.String()
}

// Help lists what the bot understands. Read-only.
func (u *UseCase) Help() string {
	return "🎾 *AYUDA*\n\n" +
		"Podés hablarme naturalmente:\n\n" +
		"💬 *Ejemplos:*\n" +
		"• \"Armemos un partido el lunes a las 20 en ClubNorte\"\n" +
		"• \"Me anoto\" / \"Yo juego\"\n" +
		"• \"Cancha confirmada $20000\"\n" +
		"• \"Sortear equipos\"\n" +
		"• \"Ganamos\" / \"Perdimos\"\n" +
		"• \"Cómo vamos?\"\n\n" +
		"También funcionan los comandos:\n" +
		"/partido [día] [hora] [lugar]\n" +
		"/anotarse | /sortear | /resultado [1 o 2] | /estado | /limpiar"
}

// Clear cancels the group's open match so a new one can be created.
func (u *UseCase) Clear(ctx context.Context, groupID string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.snap.RemoveOpenMatches(groupID) == 0 {
		return "⚠️ No hay partidos activos para limpiar", nil
	}
	if err := u.persist(ctx); err != nil {
		return "", err
	}
	return "🗑️ *PARTIDO CANCELADO*\n\nYa podés crear un nuevo partido con /partido", nil
}

// CollectDuePrompts removes every pending prompt whose time has come and
// returns the ones whose match actually finished; prompts for abandoned or
// unfinished matches are dropped silently.
func (u *UseCase) CollectDuePrompts(ctx context.Context, now time.Time) ([]domain.PendingPrompt, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	var due, remaining []domain.PendingPrompt
	for _, p := range u.snap.PendingPrompts {
		if p.DueAt.After(now) {
			remaining = append(remaining, p)
			continue
		}
		if m := u.snap.MatchByID(p.MatchID); m != nil && m.Result != nil {
			due = append(due, p)
		}
	}
	if len(u.snap.PendingPrompts) == len(remaining) {
		return nil, nil
	}

	u.snap.PendingPrompts = remaining
	if err := u.persist(ctx); err != nil {
		return nil, err
	}
	return due, nil
}

func (u *UseCase) schedulePrompt(m *domain.Match) {
	u.snap.PendingPrompts = append(u.snap.PendingPrompts, domain.PendingPrompt{
		MatchID: m.ID,
		GroupID: m.GroupID,
		DueAt:   u.now().Add(promptDelay),
	})
}

func (u *UseCase) persist(ctx context.Context) error {
	if err := u.repo.Save(ctx, u.snap); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	return nil
}

func rosterLines(players []*domain.Player) string {
	lines := make([]string, len(players))
	for i, p := range players {
		lines[i] = "• " + p.Name
	}
	return strings.Join(lines, "\n")
}

func joinNames(players []*domain.Player, sep string) string {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	return strings.Join(names, sep)
}

func venueStatus(m *domain.Match) string {
	if m.VenueConfirmed {
		return "✅ Confirmada"
	}
	return "❌ Pendiente"
}

func playersNeeded(n int) string {
	if n == 1 {
		return "1 jugador"
	}
	return fmt.Sprintf("%d jugadores", n)
}

func fmtAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
