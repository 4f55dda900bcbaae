// Package coordinator is the single entry point for inbound group messages.
// It filters redelivered events, classifies the text, and dispatches to the
// match state machine — natural language first, slash commands as the
// stricter fallback. Messages with neither produce no reply at all.
package coordinator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/redondonicolas-afk/padel/internal/domain"
	"github.com/redondonicolas-afk/padel/internal/infrastructure/dedup"
	"github.com/redondonicolas-afk/padel/internal/intent"
	"github.com/redondonicolas-afk/padel/internal/usecase/match"
)

// InboundMessage is one group message as the transport delivers it.
type InboundMessage struct {
	MessageID  string
	GroupID    string
	SenderID   string
	SenderName string
	Text       string
}

type Coordinator struct {
	matches *match.UseCase
	filter  dedup.Filter

	// one lock per group keeps the read-mutate-persist sequence exclusive
	// even when the transport delivers messages concurrently; without it a
	// second "armemos un partido" could slip past the one-open-match check.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(matches *match.UseCase, filter dedup.Filter) *Coordinator {
	return &Coordinator{
		matches: matches,
		filter:  filter,
		locks:   make(map[string]*sync.Mutex),
	}
}

// Handle processes one message to completion and returns the reply text.
// An empty reply means stay silent. The only errors are persistence
// failures; everything user-facing comes back as reply text.
func (c *Coordinator) Handle(ctx context.Context, msg InboundMessage) (string, error) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return "", nil
	}

	if msg.MessageID != "" {
		seen, err := c.filter.Seen(ctx, msg.MessageID)
		if err != nil {
			// a broken dedup backend must not take the bot down; worst
			// case is one duplicate reply
			fmt.Printf("⚠️ Dedup filter error: %v\n", err)
		} else if seen {
			return "", nil
		}
	}

	lock := c.groupLock(msg.GroupID)
	lock.Lock()
	defer lock.Unlock()

	// slash-prefixed text is always a command; running it through the
	// extractor would let loose patterns ("resultado", "partido") shadow
	// the strict syntax
	if strings.HasPrefix(text, "/") {
		return c.runCommand(ctx, msg, text)
	}
	if in := intent.Extract(text); in != nil {
		return c.dispatch(ctx, msg, in)
	}
	return "", nil
}

func (c *Coordinator) dispatch(ctx context.Context, msg InboundMessage, in domain.Intent) (string, error) {
	switch v := in.(type) {
	case domain.CreateMatch:
		return c.matches.Create(ctx, msg.GroupID, v)
	case domain.SignUp:
		return c.matches.SignUp(ctx, msg.GroupID, msg.SenderID, msg.SenderName)
	case domain.Withdraw:
		return c.matches.Withdraw(ctx, msg.GroupID, msg.SenderID, msg.SenderName)
	case domain.ConfirmAttendance:
		return c.matches.ConfirmAttendance(ctx, msg.GroupID, msg.SenderID, msg.SenderName)
	case domain.RequestRollCall:
		return c.matches.RollCall(ctx, msg.GroupID)
	case domain.DrawTeams:
		return c.matches.DrawTeams(ctx, msg.GroupID)
	case domain.RecordResult:
		return c.matches.RecordResult(ctx, msg.GroupID, v.Winner)
	case domain.ConfirmVenue:
		return c.matches.ConfirmVenue(ctx, msg.GroupID, msg.SenderID, msg.SenderName, v.Price)
	case domain.RecordPayment:
		return c.matches.RecordPayment(ctx, msg.GroupID, msg.SenderID, msg.SenderName, v.Amount)
	case domain.QueryStatus:
		return c.matches.Status(msg.GroupID), nil
	case domain.Help:
		return c.matches.Help(), nil
	default:
		return "", nil
	}
}

func (c *Coordinator) groupLock(groupID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.locks[groupID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[groupID] = lock
	}
	return lock
}
