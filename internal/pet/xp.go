package pet

const (
	// InitialMaxXP is the XP threshold at level 1.
	InitialMaxXP = 100

	// MaxXPGrowthNum/MaxXPGrowthDen encode the 1.3x per-level threshold
	// growth, floored to an integer each level-up.
	MaxXPGrowthNum = 13
	MaxXPGrowthDen = 10

	InitialHappiness = 80
	InitialEnergy    = 70

	// StreakBonusXP is granted on every continued streak day;
	// WeeklyStreakBonusXP is granted on top every 7th day.
	StreakBonusXP       = 10
	WeeklyStreakBonusXP = 100

	// Idle decay: happiness/energy drop once the pet has been idle for
	// more than DecayAfterHours, by floor(hours/2) capped at DecayMaxStep.
	DecayAfterHours = 2
	DecayMaxStep    = 2
)

// EffectiveXP applies the streak multiplier: each streak day above the first
// adds 10%, uncapped. Equivalent to floor(base * (1 + (streak-1)/10)) in
// exact arithmetic.
func EffectiveXP(base, currentStreak int) int {
	if base < 0 {
		base = 0
	}
	if currentStreak < 1 {
		currentStreak = 1
	}
	return base * (currentStreak + 9) / 10
}

// NextMaxXP grows the level threshold by 1.3x, floored.
func NextMaxXP(maxXP int) int {
	return maxXP * MaxXPGrowthNum / MaxXPGrowthDen
}
