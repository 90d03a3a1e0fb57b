package pet

import "strings"

// Kind identifies the category of a recorded activity.
type Kind string

const (
	KindSave     Kind = "save"
	KindNewFile  Kind = "newFile"
	KindTyping   Kind = "typing"
	KindCommit   Kind = "commit"
	KindBranch   Kind = "branch"
	KindDebug    Kind = "debug"
	KindTerminal Kind = "terminal"
	KindSession  Kind = "timeActive"
	KindStreak   Kind = "streak"
	KindManual   Kind = "manual"
)

// Activity is a single progression event. Each constructor sets exactly the
// fields its kind reads; unknown kinds are XP-only, so an Activity built by
// hand with just Kind and BaseXP is still safe to record.
type Activity struct {
	Kind   Kind
	BaseXP int

	Language       string
	LineCount      int
	FileName       string
	Changes        int
	Message        string
	Repository     string
	Branch         string
	SessionMinutes int
	StreakDays     int
}

// Save records a file save. Language and line count feed the polyglot and
// line counters.
func Save(baseXP int, language string, lineCount int, fileName string) Activity {
	return Activity{Kind: KindSave, BaseXP: baseXP, Language: language, LineCount: lineCount, FileName: fileName}
}

// NewFile records a created file. Test files are detected from the name.
func NewFile(baseXP int, fileName string) Activity {
	return Activity{Kind: KindNewFile, BaseXP: baseXP, FileName: fileName}
}

// Typing records a burst of edits measured in changed lines.
func Typing(baseXP int, changes int) Activity {
	return Activity{Kind: KindTyping, BaseXP: baseXP, Changes: changes}
}

// Commit records a VCS commit.
func Commit(baseXP int, message, repository string) Activity {
	return Activity{Kind: KindCommit, BaseXP: baseXP, Message: message, Repository: repository}
}

// Branch records a switch to a working branch.
func Branch(baseXP int, branch string) Activity {
	return Activity{Kind: KindBranch, BaseXP: baseXP, Branch: branch}
}

// Debug records a debug session.
func Debug(baseXP int) Activity {
	return Activity{Kind: KindDebug, BaseXP: baseXP}
}

// Terminal records an opened terminal.
func Terminal(baseXP int) Activity {
	return Activity{Kind: KindTerminal, BaseXP: baseXP}
}

// Session records sessionMinutes of active coding time.
func Session(baseXP int, sessionMinutes int) Activity {
	return Activity{Kind: KindSession, BaseXP: baseXP, SessionMinutes: sessionMinutes}
}

// StreakBonus is the maintenance grant issued by the daily streak check.
func StreakBonus(baseXP int, days int) Activity {
	return Activity{Kind: KindStreak, BaseXP: baseXP, StreakDays: days}
}

// Manual records an XP-only grant with no counters attached.
func Manual(baseXP int) Activity {
	return Activity{Kind: KindManual, BaseXP: baseXP}
}

// isTestFileName reports whether a file name looks like a test or spec file.
func isTestFileName(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "test") || strings.Contains(n, "spec")
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), sub)
}
