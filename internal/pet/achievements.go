package pet

// Achievement is a badge the pet can earn. Predicates are monotone checks
// against cumulative stats; once unlocked an id is never removed except by a
// full reset.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      func(r *PetRecord) bool
}

// Catalog returns every achievement in display order.
func Catalog() []Achievement {
	return []Achievement{
		{
			ID: "first_milestone", Name: "First Milestone", Icon: "🎯",
			Description: "Reach level 10",
			Earned:      func(r *PetRecord) bool { return r.Level >= 10 },
		},
		{
			ID: "save_master", Name: "Save Master", Icon: "💾",
			Description: "Save files 100 times",
			Earned:      func(r *PetRecord) bool { return r.Stats.TotalSaves >= 100 },
		},
		{
			ID: "polyglot", Name: "Polyglot", Icon: "🌍",
			Description: "Code in 5 different languages",
			Earned:      func(r *PetRecord) bool { return r.Stats.LanguagesUsed.Len() >= 5 },
		},
		{
			ID: "file_creator", Name: "File Creator", Icon: "📁",
			Description: "Create 50 files",
			Earned:      func(r *PetRecord) bool { return r.Stats.FilesCreated >= 50 },
		},
		{
			ID: "commit_master", Name: "Commit Master", Icon: "📝",
			Description: "Make 50 commits",
			Earned:      func(r *PetRecord) bool { return r.Stats.CommitsCount >= 50 },
		},
		{
			ID: "bug_hunter", Name: "Bug Hunter", Icon: "🐛",
			Description: "Fix 20 bugs",
			Earned:      func(r *PetRecord) bool { return r.Stats.BugFixCount >= 20 },
		},
		{
			ID: "feature_master", Name: "Feature Master", Icon: "🚀",
			Description: "Ship 10 features",
			Earned:      func(r *PetRecord) bool { return r.Stats.FeatureCount >= 10 },
		},
		{
			ID: "repo_hopper", Name: "Repository Hopper", Icon: "🦘",
			Description: "Work in 5 repositories",
			Earned:      func(r *PetRecord) bool { return r.Stats.RepositoriesUsed.Len() >= 5 },
		},
		{
			ID: "test_writer", Name: "Test Writer", Icon: "🧪",
			Description: "Create 10 test files",
			Earned:      func(r *PetRecord) bool { return r.Stats.TestFilesCreated >= 10 },
		},
		{
			ID: "month_streak", Name: "30-Day Streak", Icon: "🔥",
			Description: "Code 30 days in a row",
			Earned:      func(r *PetRecord) bool { return r.Stats.CurrentStreak >= 30 },
		},
		{
			ID: "marathon_coder", Name: "Marathon Coder", Icon: "🏃",
			Description: "Code for 2 hours straight",
			Earned:      func(r *PetRecord) bool { return r.Stats.LongestSession >= 120 },
		},
		{
			ID: "debug_master", Name: "Debug Master", Icon: "🔍",
			Description: "Run 25 debug sessions",
			Earned:      func(r *PetRecord) bool { return r.Stats.DebugSessions >= 25 },
		},
		{
			ID: "xp_collector", Name: "XP Collector", Icon: "⭐",
			Description: "Earn 10,000 XP in total",
			Earned:      func(r *PetRecord) bool { return r.TotalXPEarned >= 10000 },
		},
		{
			ID: "code_machine", Name: "Code Machine", Icon: "🤖",
			Description: "Write 10,000 lines of code",
			Earned:      func(r *PetRecord) bool { return r.Stats.TotalLines >= 10000 },
		},
	}
}

// AchievementName returns the display name for an id, falling back to the id
// itself for ids minted by newer clients.
func AchievementName(id string) string {
	for _, a := range Catalog() {
		if a.ID == id {
			return a.Name
		}
	}
	return id
}

// checkAchievements re-scans the whole catalog against the current record and
// unlocks anything newly satisfied. The full re-scan is deliberate: counters
// can cross a threshold without a level change.
func checkAchievements(r *PetRecord) []Achievement {
	var unlocked []Achievement
	for _, a := range Catalog() {
		if r.Achievements.Has(a.ID) {
			continue
		}
		if a.Earned(r) {
			r.Achievements.Add(a.ID)
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}
