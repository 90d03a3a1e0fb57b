package pet

// stageThreshold gates a stage behind a minimum level and commit count.
// Evaluated top-down, first match wins.
type stageThreshold struct {
	stage   Stage
	level   int
	commits int
}

var stageThresholds = []stageThreshold{
	{StageLegend, 100, 500},
	{StageMaster, 50, 100},
	{StageAdult, 25, 20},
	{StageTeen, 10, 5},
}

// DeriveStage is a pure function of level and lifetime commit count.
func DeriveStage(level, commitsCount int) Stage {
	for _, t := range stageThresholds {
		if level >= t.level && commitsCount >= t.commits {
			return t.stage
		}
	}
	return StageBaby
}
