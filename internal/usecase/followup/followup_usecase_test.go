package followup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redondonicolas-afk/padel/internal/domain"
	"github.com/redondonicolas-afk/padel/internal/usecase/match"
)

type seededRepo struct {
	snap *domain.Snapshot
}

func (r *seededRepo) Load(ctx context.Context) (*domain.Snapshot, error) { return r.snap, nil }
func (r *seededRepo) Save(ctx context.Context, snap *domain.Snapshot) error {
	r.snap = snap
	return nil
}

type recordingNotifier struct {
	sent []string
	fail bool
}

func (n *recordingNotifier) SendMessage(ctx context.Context, groupID, text string) error {
	if n.fail {
		return errors.New("gateway down")
	}
	n.sent = append(n.sent, groupID)
	return nil
}

func seededMatches(t *testing.T, due time.Time) *match.UseCase {
	t.Helper()
	snap := domain.NewSnapshot()
	snap.Matches = []*domain.Match{
		{ID: "m1", GroupID: "g1", Result: &domain.Result{Winner: 1}},
		{ID: "m2", GroupID: "g2"},
	}
	snap.PendingPrompts = []domain.PendingPrompt{
		{MatchID: "m1", GroupID: "g1", DueAt: due},
		{MatchID: "m2", GroupID: "g2", DueAt: due},
	}
	matches, err := match.NewUseCase(context.Background(), &seededRepo{snap: snap})
	if err != nil {
		t.Fatalf("NewUseCase: %v", err)
	}
	return matches
}

func TestCheckDueNotifiesOnlyFinishedMatches(t *testing.T) {
	matches := seededMatches(t, time.Now().Add(-time.Minute))
	notifier := &recordingNotifier{}
	w := NewWorker(matches, notifier, time.Minute)

	w.CheckDue(context.Background())

	if len(notifier.sent) != 1 || notifier.sent[0] != "g1" {
		t.Errorf("sent = %v, want only g1", notifier.sent)
	}

	// the queue was drained: a second pass sends nothing
	w.CheckDue(context.Background())
	if len(notifier.sent) != 1 {
		t.Errorf("second pass re-sent prompts: %v", notifier.sent)
	}
}

func TestCheckDueLeavesFuturePromptsQueued(t *testing.T) {
	matches := seededMatches(t, time.Now().Add(time.Hour))
	notifier := &recordingNotifier{}
	w := NewWorker(matches, notifier, time.Minute)

	w.CheckDue(context.Background())

	if len(notifier.sent) != 0 {
		t.Errorf("sent = %v, want none before due time", notifier.sent)
	}

	due, err := matches.CollectDuePrompts(context.Background(), time.Now().Add(2*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(due) != 1 {
		t.Errorf("prompts surviving an early pass = %d, want 1", len(due))
	}
}

func TestCheckDueDropsPromptOnSendFailure(t *testing.T) {
	matches := seededMatches(t, time.Now().Add(-time.Minute))
	notifier := &recordingNotifier{fail: true}
	w := NewWorker(matches, notifier, time.Minute)

	w.CheckDue(context.Background())

	notifier.fail = false
	w.CheckDue(context.Background())
	if len(notifier.sent) != 0 {
		t.Errorf("failed send was retried: %v", notifier.sent)
	}
}
