package pet

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Pyro18/codepaw/internal/storage"
)

// Options configures a Manager.
type Options struct {
	// Name is the configured display name; it survives resets and remote
	// snapshot replacement.
	Name string
	// AutoSync enables the policy-gated background upload after level-ups.
	AutoSync bool
	// Now overrides the clock. Nil means time.Now.
	Now func() time.Time
}

// ActivityResult reports what a single RecordActivity call changed.
type ActivityResult struct {
	Kind            Kind
	XPAwarded       int
	LevelBefore     int
	LevelAfter      int
	LevelUp         bool
	StageBefore     Stage
	StageAfter      Stage
	StageChanged    bool
	NewAchievements []Achievement
}

// StreakResult reports the outcome of a daily streak check.
type StreakResult struct {
	CurrentStreak int
	LongestStreak int
	Continued     bool
	Broken        bool
	BonusXP       int
}

// Manager owns the single mutable PetRecord. All mutation funnels through it;
// every other component only ever sees snapshot copies. Safe for concurrent
// use: the TUI runs commands on separate goroutines, so every mutation and
// snapshot path holds mu.
type Manager struct {
	mu       sync.Mutex
	state    *storage.StateRepo
	opts     Options
	pet      *PetRecord
	subs     []func(*PetRecord)
	notices  []func(string)
	uploader func(*PetRecord) error
	now      func() time.Time
}

// NewManager loads the persisted record (or hatches a new pet) and returns
// the engine around it.
func NewManager(ctx context.Context, db *sql.DB, opts Options) (*Manager, error) {
	m := &Manager{
		state: storage.NewStateRepo(db),
		opts:  opts,
		now:   opts.Now,
	}
	if m.now == nil {
		m.now = time.Now
	}

	raw, err := m.state.Load(ctx)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		m.pet = NewRecord(opts.Name, m.now())
		if err := m.persist(ctx); err != nil {
			return nil, err
		}
		return m, nil
	}

	var rec PetRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode pet record: %w", err)
	}
	rec.Normalize(m.now())
	if rec.Name == "" {
		rec.Name = opts.Name
	}
	m.pet = &rec
	return m, nil
}

// Snapshot returns a deep copy of the current record.
func (m *Manager) Snapshot() *PetRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pet.Clone()
}

// Subscribe registers an observer invoked synchronously with a fresh snapshot
// after every state change.
func (m *Manager) Subscribe(fn func(*PetRecord)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// OnNotice registers a callback for user-facing messages from background
// work (the fire-and-forget sync push).
func (m *Manager) OnNotice(fn func(string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notices = append(m.notices, fn)
}

// SetUploader installs the sync push used by the auto-upload trigger. The
// upload runs on its own goroutine with a snapshot copy; its outcome is
// reported through notices and never affects the RecordActivity caller.
func (m *Manager) SetUploader(fn func(*PetRecord) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploader = fn
}

// RecordActivity credits an activity: streak-weighted XP, mood bumps,
// kind-specific counters, level-ups, stage evolution, achievement re-scan,
// persistence, and observer notification, in that order.
func (m *Manager) RecordActivity(ctx context.Context, act Activity) (*ActivityResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recordActivity(ctx, act)
}

// recordActivity is the unlocked mutation pipeline; callers hold mu.
func (m *Manager) recordActivity(ctx context.Context, act Activity) (*ActivityResult, error) {
	res := &ActivityResult{
		Kind:        act.Kind,
		LevelBefore: m.pet.Level,
		StageBefore: m.pet.Stage,
	}

	base := act.BaseXP
	if base < 0 {
		base = 0
	}
	effective := EffectiveXP(base, m.pet.Stats.CurrentStreak)
	res.XPAwarded = effective

	m.pet.XP += effective
	m.pet.TotalXPEarned += effective
	m.pet.Happiness = clamp(m.pet.Happiness+base/3, 0, 100)
	m.pet.Energy = clamp(m.pet.Energy+base/5, 0, 100)
	m.pet.LastActive = m.now()

	m.applyStats(act)

	for m.pet.XP >= m.pet.MaxXP {
		m.pet.XP -= m.pet.MaxXP
		m.pet.Level++
		m.pet.MaxXP = NextMaxXP(m.pet.MaxXP)
	}
	res.LevelAfter = m.pet.Level
	res.LevelUp = res.LevelAfter > res.LevelBefore

	m.pet.Stage = DeriveStage(m.pet.Level, m.pet.Stats.CommitsCount)
	res.StageAfter = m.pet.Stage
	if res.StageAfter != res.StageBefore {
		res.StageChanged = true
		m.pet.EvolutionHistory = append(m.pet.EvolutionHistory, Evolution{
			Stage: m.pet.Stage,
			Level: m.pet.Level,
			Date:  m.now(),
		})
	}

	res.NewAchievements = checkAchievements(m.pet)

	if err := m.persist(ctx); err != nil {
		// The in-memory record stays authoritative; surface the write
		// failure to the caller.
		return res, err
	}
	m.notify()
	m.maybeAutoUpload(res)
	return res, nil
}

func (m *Manager) applyStats(act Activity) {
	st := &m.pet.Stats
	switch act.Kind {
	case KindSave:
		st.TotalSaves++
		st.LanguagesUsed.Add(act.Language)
		if act.LineCount > 0 {
			st.TotalLines += act.LineCount
		}
	case KindNewFile:
		st.FilesCreated++
		if isTestFileName(act.FileName) {
			st.TestFilesCreated++
		}
	case KindTyping:
		if act.Changes > 0 {
			st.TotalLines += act.Changes
		}
	case KindCommit:
		st.CommitsCount++
		if act.Message != "" {
			st.LastCommitMessage = act.Message
			st.AverageCommitMessage = (st.AverageCommitMessage + float64(len(act.Message))) / 2
			if containsAny(act.Message, "fix", "bug") {
				st.BugFixCount++
			}
			if containsAny(act.Message, "feat", "feature") {
				st.FeatureCount++
			}
		}
		st.RepositoriesUsed.Add(act.Repository)
	case KindBranch:
		if act.Branch != "" {
			st.CurrentBranch = act.Branch
		}
	case KindDebug:
		st.DebugSessions++
	case KindTerminal:
		st.TerminalSessions++
	case KindSession:
		if act.SessionMinutes > 0 {
			st.TotalSessionTime += act.SessionMinutes
			if act.SessionMinutes > st.LongestSession {
				st.LongestSession = act.SessionMinutes
			}
		}
	default:
		// manual, streak and unknown kinds are XP-only
	}
}

// CheckDailyStreak advances or breaks the streak on a calendar-day boundary.
// Idempotent within a day.
func (m *Manager) CheckDailyStreak(ctx context.Context) (*StreakResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := &m.pet.Stats
	today := m.now().Format(time.DateOnly)
	if st.LastActiveDate == today {
		return &StreakResult{CurrentStreak: st.CurrentStreak, LongestStreak: st.LongestStreak}, nil
	}

	days := daysBetween(st.LastActiveDate, today)
	res := &StreakResult{}
	switch {
	case days == 1:
		st.CurrentStreak++
		if st.CurrentStreak > st.LongestStreak {
			st.LongestStreak = st.CurrentStreak
		}
		res.Continued = true
	case days > 1 || days < 0:
		// More than a full day without activity (or an unparseable stored
		// date) breaks the streak back to 1, never 0.
		st.CurrentStreak = 1
		res.Broken = true
	}
	st.LastActiveDate = today

	if res.Continued {
		streak := st.CurrentStreak
		if _, err := m.recordActivity(ctx, StreakBonus(StreakBonusXP, streak)); err != nil {
			return nil, err
		}
		res.BonusXP = StreakBonusXP
		if streak%7 == 0 {
			if _, err := m.recordActivity(ctx, StreakBonus(WeeklyStreakBonusXP, streak)); err != nil {
				return nil, err
			}
			res.BonusXP += WeeklyStreakBonusXP
		}
	} else {
		if err := m.persist(ctx); err != nil {
			return nil, err
		}
		m.notify()
	}

	res.CurrentStreak = st.CurrentStreak
	res.LongestStreak = st.LongestStreak
	return res, nil
}

// ApplyIdleDecay drops happiness and energy after prolonged inactivity. It is
// the only spontaneous mutation and deliberately skips level, stage and
// achievement logic. Returns whether anything changed.
func (m *Manager) ApplyIdleDecay(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hours := m.now().Sub(m.pet.LastActive).Hours()
	if hours <= DecayAfterHours {
		return false, nil
	}
	amount := int(hours / 2)
	if amount > DecayMaxStep {
		amount = DecayMaxStep
	}
	if amount <= 0 {
		return false, nil
	}
	m.pet.Happiness = clamp(m.pet.Happiness-amount, 0, 100)
	m.pet.Energy = clamp(m.pet.Energy-amount, 0, 100)
	if err := m.persist(ctx); err != nil {
		return true, err
	}
	m.notify()
	return true, nil
}

// Reset replaces the record with a freshly hatched pet, keeping only the
// configured name.
func (m *Manager) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pet = NewRecord(m.opts.Name, m.now())
	if err := m.persist(ctx); err != nil {
		return err
	}
	m.notify()
	return nil
}

// AcceptRemote replaces the record wholesale with a downloaded snapshot
// (last-write-wins at document granularity). The locally configured display
// name survives the replacement.
func (m *Manager) AcceptRemote(ctx context.Context, remote *PetRecord) error {
	if remote == nil {
		return fmt.Errorf("nil remote record")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := remote.Clone()
	rec.Normalize(m.now())
	if m.opts.Name != "" {
		rec.Name = m.opts.Name
	}
	m.pet = rec
	if err := m.persist(ctx); err != nil {
		return err
	}
	m.notify()
	return nil
}

func (m *Manager) persist(ctx context.Context) error {
	raw, err := json.Marshal(m.pet)
	if err != nil {
		return fmt.Errorf("encode pet record: %w", err)
	}
	return m.state.Save(ctx, raw)
}

func (m *Manager) notify() {
	for _, fn := range m.subs {
		fn(m.pet.Clone())
	}
}

// notice runs on the uploader goroutine, so it copies the callback list under
// mu and invokes outside it.
func (m *Manager) notice(msg string) {
	m.mu.Lock()
	fns := append(([]func(string))(nil), m.notices...)
	m.mu.Unlock()
	for _, fn := range fns {
		fn(msg)
	}
}

// maybeAutoUpload fires the background sync push when the opt-in flag is on,
// the level just changed, and either the level is a multiple of 5 or at
// least one achievement is unlocked.
func (m *Manager) maybeAutoUpload(res *ActivityResult) {
	if !m.opts.AutoSync || m.uploader == nil || !res.LevelUp {
		return
	}
	if res.LevelAfter%5 != 0 && m.pet.Achievements.Len() == 0 {
		return
	}
	upload := m.uploader
	snapshot := m.pet.Clone()
	go func() {
		if err := upload(snapshot); err != nil {
			m.notice("Auto-sync failed: " + err.Error())
			return
		}
		m.notice("Progress auto-synced to cloud.")
	}()
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if containsFold(s, sub) {
			return true
		}
	}
	return false
}

// daysBetween returns whole calendar days from one DateOnly string to
// another, or -1 when the stored date cannot be parsed.
func daysBetween(from, to string) int {
	a, err := time.Parse(time.DateOnly, from)
	if err != nil {
		return -1
	}
	b, err := time.Parse(time.DateOnly, to)
	if err != nil {
		return -1
	}
	return int(b.Sub(a).Hours() / 24)
}
