// Package followup drains the deferred-prompt queue: a while after a match
// is fully confirmed the bot asks the group how it went, but only for
// matches that actually recorded a result by then.
package followup

import (
	"context"
	"fmt"
	"time"

	"github.com/redondonicolas-afk/padel/internal/usecase/match"
)

const promptText = "📊 *ESTADÍSTICAS DEL PARTIDO*\n\n" +
	"¿Cómo les fue? Cuéntenme sobre el partido:\n\n" +
	"• ¿Fue parejo?\n• ¿Quién jugó mejor?\n• ¿Algún punto destacable?"

// Notifier pushes a message to a group through the chat gateway.
type Notifier interface {
	SendMessage(ctx context.Context, groupID, text string) error
}

type Worker struct {
	matches  *match.UseCase
	notifier Notifier
	interval time.Duration
}

func NewWorker(matches *match.UseCase, notifier Notifier, interval time.Duration) *Worker {
	return &Worker{
		matches:  matches,
		notifier: notifier,
		interval: interval,
	}
}

// Run checks for due prompts on every tick until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.CheckDue(ctx)
		}
	}
}

// CheckDue collects every prompt whose time has come and notifies its group.
// A failed send is logged and dropped; the prompt is not re-queued.
func (w *Worker) CheckDue(ctx context.Context) {
	due, err := w.matches.CollectDuePrompts(ctx, time.Now())
	if err != nil {
		fmt.Printf("⚠️ Failed to collect due prompts: %v\n", err)
		return
	}

	for _, p := range due {
		if err := w.notifier.SendMessage(ctx, p.GroupID, promptText); err != nil {
			fmt.Printf("⚠️ Failed to send follow-up to %s: %v\n", p.GroupID, err)
		}
	}
}
