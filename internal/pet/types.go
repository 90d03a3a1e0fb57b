package pet

import (
	"encoding/json"
	"sort"
	"time"
)

// Stage is the coarse progression tier, derived from level and commit count.
type Stage string

const (
	StageBaby   Stage = "baby"
	StageTeen   Stage = "teen"
	StageAdult  Stage = "adult"
	StageMaster Stage = "master"
	StageLegend Stage = "legend"
)

func (s Stage) IsValid() bool {
	switch s {
	case StageBaby, StageTeen, StageAdult, StageMaster, StageLegend:
		return true
	default:
		return false
	}
}

// DisplayName returns the human-readable title for a stage.
func (s Stage) DisplayName() string {
	switch s {
	case StageBaby:
		return "Baby Coder"
	case StageTeen:
		return "Junior Developer"
	case StageAdult:
		return "Senior Developer"
	case StageMaster:
		return "Tech Lead"
	case StageLegend:
		return "Code Legend"
	default:
		return string(s)
	}
}

// StringSet is a set of unique strings. It marshals as a sorted slice so the
// persisted and synced representations are deterministic, and unmarshals from
// a slice (deduplicating) so documents written by older clients load cleanly.
type StringSet map[string]struct{}

func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s StringSet) Add(v string) {
	if v == "" {
		return
	}
	s[v] = struct{}{}
}

func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s StringSet) Len() int { return len(s) }

// Values returns the members in sorted order.
func (s StringSet) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s StringSet) Clone() StringSet {
	out := make(StringSet, len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}

func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

func (s *StringSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewStringSet(values...)
	return nil
}

// Evolution records a single stage transition.
type Evolution struct {
	Stage Stage     `json:"stage"`
	Level int       `json:"level"`
	Date  time.Time `json:"date"`
}

// PetStats holds the lifetime activity counters. All numeric counters are
// monotonically increasing; the set fields are union-only.
type PetStats struct {
	TotalSaves        int       `json:"totalSaves"`
	TotalLines        int       `json:"totalLines"`
	LanguagesUsed     StringSet `json:"languagesUsed"`
	FilesCreated      int       `json:"filesCreated"`
	CommitsCount      int       `json:"commitsCount"`
	LastCommitMessage string    `json:"lastCommitMessage"`
	CurrentBranch     string    `json:"currentBranch"`
	RepositoriesUsed  StringSet `json:"repositoriesUsed"`
	DebugSessions     int       `json:"debugSessions"`
	TerminalSessions  int       `json:"terminalSessions"`
	TestFilesCreated  int       `json:"testFilesCreated"`
	// Session minutes.
	LongestSession   int `json:"longestSession"`
	TotalSessionTime int `json:"totalSessionTime"`
	// Exponential moving average with smoothing 0.5: avg = (avg + len) / 2.
	// Not an arithmetic mean; kept as the original recurrence.
	AverageCommitMessage float64 `json:"averageCommitMessage"`
	BugFixCount          int     `json:"bugFixCount"`
	FeatureCount         int     `json:"featureCount"`
	// Streaks. lastActiveDate is a calendar day (2006-01-02).
	CurrentStreak  int    `json:"currentStreak"`
	LongestStreak  int    `json:"longestStreak"`
	LastActiveDate string `json:"lastActiveDate"`
}

// PetRecord is the single mutable aggregate owned by the Manager. Everything
// outside the pet package only ever sees deep copies of it.
type PetRecord struct {
	Name             string      `json:"name"`
	Level            int         `json:"level"`
	XP               int         `json:"xp"`
	MaxXP            int         `json:"maxXp"`
	Happiness        int         `json:"happiness"`
	Energy           int         `json:"energy"`
	Stage            Stage       `json:"stage"`
	LastActive       time.Time   `json:"lastActive"`
	Stats            PetStats    `json:"stats"`
	Achievements     StringSet   `json:"achievements"`
	TotalXPEarned    int         `json:"totalXpEarned"`
	CreatedAt        time.Time   `json:"createdAt"`
	EvolutionHistory []Evolution `json:"evolutionHistory"`
}

// NewRecord returns a freshly hatched pet with default values.
func NewRecord(name string, now time.Time) *PetRecord {
	return &PetRecord{
		Name:             name,
		Level:            1,
		XP:               0,
		MaxXP:            InitialMaxXP,
		Happiness:        InitialHappiness,
		Energy:           InitialEnergy,
		Stage:            StageBaby,
		LastActive:       now,
		CreatedAt:        now,
		Achievements:     NewStringSet(),
		EvolutionHistory: []Evolution{},
		Stats: PetStats{
			LanguagesUsed:    NewStringSet(),
			RepositoriesUsed: NewStringSet(),
			CurrentBranch:    "main",
			CurrentStreak:    1,
			LongestStreak:    1,
			LastActiveDate:   now.Format(time.DateOnly),
		},
	}
}

// Clone returns a deep copy safe to hand to observers.
func (r *PetRecord) Clone() *PetRecord {
	out := *r
	out.Achievements = r.Achievements.Clone()
	out.Stats.LanguagesUsed = r.Stats.LanguagesUsed.Clone()
	out.Stats.RepositoriesUsed = r.Stats.RepositoriesUsed.Clone()
	out.EvolutionHistory = make([]Evolution, len(r.EvolutionHistory))
	copy(out.EvolutionHistory, r.EvolutionHistory)
	return &out
}

// Normalize backfills zero values on records loaded from disk or accepted from
// a remote snapshot, so documents written by older clients stay loadable.
func (r *PetRecord) Normalize(now time.Time) {
	if r.Level < 1 {
		r.Level = 1
	}
	if r.MaxXP < 1 {
		r.MaxXP = InitialMaxXP
	}
	if r.XP < 0 {
		r.XP = 0
	}
	if !r.Stage.IsValid() {
		r.Stage = StageBaby
	}
	r.Happiness = clamp(r.Happiness, 0, 100)
	r.Energy = clamp(r.Energy, 0, 100)
	if r.LastActive.IsZero() {
		r.LastActive = now
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.Achievements == nil {
		r.Achievements = NewStringSet()
	}
	if r.EvolutionHistory == nil {
		r.EvolutionHistory = []Evolution{}
	}
	if r.Stats.LanguagesUsed == nil {
		r.Stats.LanguagesUsed = NewStringSet()
	}
	if r.Stats.RepositoriesUsed == nil {
		r.Stats.RepositoriesUsed = NewStringSet()
	}
	if r.Stats.CurrentBranch == "" {
		r.Stats.CurrentBranch = "main"
	}
	if r.Stats.CurrentStreak < 1 {
		r.Stats.CurrentStreak = 1
	}
	if r.Stats.LongestStreak < r.Stats.CurrentStreak {
		r.Stats.LongestStreak = r.Stats.CurrentStreak
	}
	if r.Stats.LastActiveDate == "" {
		r.Stats.LastActiveDate = now.Format(time.DateOnly)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
