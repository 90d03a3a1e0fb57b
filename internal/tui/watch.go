package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Pyro18/codepaw/internal/pet"
)

// RunWatch opens the live pet dashboard. It subscribes to engine snapshots
// and notices, and drives the idle-decay and daily-streak timers while open.
func RunWatch(ctx context.Context, mgr *pet.Manager, decayEvery time.Duration, out io.Writer) error {
	if decayEvery <= 0 {
		decayEvery = 5 * time.Minute
	}
	m := newWatchModel(ctx, mgr, decayEvery)
	p := tea.NewProgram(m, tea.WithOutput(out))

	mgr.Subscribe(func(r *pet.PetRecord) {
		p.Send(snapshotMsg{record: r})
	})
	mgr.OnNotice(func(s string) {
		p.Send(noticeMsg(s))
	})

	_, err := p.Run()
	return err
}
