package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Pyro18/codepaw/internal/pet"
	"github.com/Pyro18/codepaw/internal/ui"
)

type watchModel struct {
	ctx context.Context
	mgr *pet.Manager

	width  int
	height int

	snap       *pet.PetRecord
	decayEvery time.Duration

	lastLog string
	// lastUnlock is the id of the most recent achievement unlocked while the
	// dashboard is open; the persisted set carries no unlock order.
	lastUnlock string
}

type snapshotMsg struct {
	record *pet.PetRecord
}

type noticeMsg string

type fedMsg struct {
	res *pet.ActivityResult
	err error
}

type maintenanceMsg struct {
	decayed bool
	streak  *pet.StreakResult
	err     error
}

type tickMsg time.Time

func newWatchModel(ctx context.Context, mgr *pet.Manager, decayEvery time.Duration) watchModel {
	return watchModel{
		ctx:        ctx,
		mgr:        mgr,
		snap:       mgr.Snapshot(),
		decayEvery: decayEvery,
		lastLog:    "Watching.",
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.maintenanceCmd(), m.tickCmd())
}

func (m watchModel) tickCmd() tea.Cmd {
	return tea.Tick(m.decayEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// maintenanceCmd runs the two timer-driven mutations. Both funnel through the
// same single-threaded engine path, so ordering here is just sequential calls.
func (m watchModel) maintenanceCmd() tea.Cmd {
	return func() tea.Msg {
		decayed, err := m.mgr.ApplyIdleDecay(m.ctx)
		if err != nil {
			return maintenanceMsg{err: err}
		}
		streak, err := m.mgr.CheckDailyStreak(m.ctx)
		return maintenanceMsg{decayed: decayed, streak: streak, err: err}
	}
}

func (m watchModel) feedCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.mgr.RecordActivity(m.ctx, pet.Manual(10))
		return fedMsg{res: res, err: err}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case snapshotMsg:
		m.snap = msg.record
		return m, nil
	case noticeMsg:
		m.lastLog = string(msg)
		return m, nil
	case fedMsg:
		if msg.err != nil {
			m.lastLog = "Feed failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Fed %s: +%d XP", m.snap.Name, msg.res.XPAwarded)
		if msg.res.LevelUp {
			m.lastLog += fmt.Sprintf(" (%s, level %d)", ui.BadgeLevelUp, msg.res.LevelAfter)
		}
		if n := len(msg.res.NewAchievements); n > 0 {
			m.lastUnlock = msg.res.NewAchievements[n-1].ID
		}
		return m, nil
	case maintenanceMsg:
		if msg.err != nil {
			m.lastLog = "Maintenance failed: " + msg.err.Error()
			return m, m.tickCmd()
		}
		if msg.decayed {
			m.lastLog = fmt.Sprintf("%s is getting lonely…", m.snap.Name)
		}
		if msg.streak != nil && msg.streak.BonusXP > 0 {
			m.lastLog = fmt.Sprintf("%s %d day streak! +%d XP", ui.IconFire, msg.streak.CurrentStreak, msg.streak.BonusXP)
		}
		return m, m.tickCmd()
	case tickMsg:
		return m, m.maintenanceCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "f":
			return m, m.feedCmd()
		case "r":
			m.snap = m.mgr.Snapshot()
			m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
			return m, nil
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	p := m.snap
	if p == nil {
		return "Loading…"
	}

	petPanel := ui.Panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		ui.PanelTitle.Render(fmt.Sprintf("%s  %s", ui.PetFace(p.Stage, p.Happiness), p.Name)),
		ui.Muted.Render(fmt.Sprintf("%s • Level %d", p.Stage.DisplayName(), p.Level)),
		"",
		fmt.Sprintf("XP        %s %d/%d", ui.Bar(p.XP, p.MaxXP, 14), p.XP, p.MaxXP),
		fmt.Sprintf("Happiness %s %d%%", ui.Bar(p.Happiness, 100, 14), p.Happiness),
		fmt.Sprintf("Energy    %s %d%%", ui.Bar(p.Energy, 100, 14), p.Energy),
		"",
		ui.LabelValue("Mood", ui.Mood(p.Happiness, p.Energy)),
		ui.LabelValue("Streak", fmt.Sprintf("%s %d days (best %d)", ui.IconFire, p.Stats.CurrentStreak, p.Stats.LongestStreak)),
	))

	st := p.Stats
	statsPanel := ui.Panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		ui.PanelTitle.Render("📊 Stats"),
		fmt.Sprintf("Saves     %6d   Lines   %8d", st.TotalSaves, st.TotalLines),
		fmt.Sprintf("Commits   %6d   Files   %8d", st.CommitsCount, st.FilesCreated),
		fmt.Sprintf("Debug     %6d   Term    %8d", st.DebugSessions, st.TerminalSessions),
		fmt.Sprintf("Languages %6d   Repos   %8d", st.LanguagesUsed.Len(), st.RepositoriesUsed.Len()),
		fmt.Sprintf("Session   %5dm   Longest %7dm", st.TotalSessionTime, st.LongestSession),
		ui.LabelValue("Total XP", p.TotalXPEarned),
	))

	earned := p.Achievements.Len()
	total := len(pet.Catalog())
	var recent string
	switch {
	case m.lastUnlock != "":
		recent = ui.Muted.Render("Latest: " + pet.AchievementName(m.lastUnlock))
	case earned > 0:
		recent = ui.Muted.Render("Run 'paw achievements' for the list.")
	default:
		recent = ui.Muted.Render("Nothing unlocked yet.")
	}
	trophyPanel := ui.Panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		ui.PanelTitle.Render(fmt.Sprintf("%s Achievements %d/%d", ui.IconTrophy, earned, total)),
		recent,
	))

	footer := ui.Muted.Render("f feed • r refresh • q quit") + "\n" + m.lastLog

	return lipgloss.JoinVertical(lipgloss.Left,
		ui.Heading(ui.IconPaw, "CodePaw"),
		lipgloss.JoinHorizontal(lipgloss.Top, petPanel, " ", statsPanel),
		trophyPanel,
		footer,
	)
}
