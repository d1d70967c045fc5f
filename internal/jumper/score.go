package jumper

// ScoreState counts landings on distinct platforms. Every PointsPerLevel
// points raise the level by one.
type ScoreState struct {
	score          int
	level          int
	pointsPerLevel int
}

// NewScoreState creates a zeroed score.
func NewScoreState(pointsPerLevel int) *ScoreState {
	return &ScoreState{pointsPerLevel: max(pointsPerLevel, 1)}
}

// RecordLanding scores a landing on id unless id is the sentinel or the
// platform that scored last. It reports whether a point was awarded.
func (s *ScoreState) RecordLanding(id, lastLanded SequenceID) bool {
	if id == SentinelID || id == lastLanded {
		return false
	}
	s.score++
	s.level = s.score / s.pointsPerLevel
	return true
}

// Score returns the number of points.
func (s *ScoreState) Score() int {
	return s.score
}

// Level returns the current level.
func (s *ScoreState) Level() int {
	return s.level
}

// Reset zeroes score and level.
func (s *ScoreState) Reset() {
	s.score = 0
	s.level = 0
}
