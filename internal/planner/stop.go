package planner

// ShouldStop decides whether the interview should terminate. The max count is
// a hard ceiling: once reached the interview ends no matter how many slots
// remain. Below the ceiling the interview ends only after the min count has
// been asked and nothing is missing, so early complete profiles still get a
// minimum engagement depth.
func ShouldStop(asked, missingCount, minQuestions, maxQuestions int) bool {
	if asked >= maxQuestions {
		return true
	}
	if asked >= minQuestions && missingCount == 0 {
		return true
	}
	return false
}
