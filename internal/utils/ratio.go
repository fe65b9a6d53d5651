package utils

// DefaultAdmissionThreshold is the associate share of total membership at which
// waitlisted associates stop being offered a place.
const DefaultAdmissionThreshold = 0.2

// ComputeRatio returns associates / (students + associates) rounded half up to 2 decimal
// places. An empty roster has ratio 0. The result always lies in [0, 1].
func ComputeRatio(studentCount, associateCount int) float64 {
	total := studentCount + associateCount
	if total == 0 {
		return 0
	}
	return roundedQuotient(associateCount, total)
}

// ComputeDisplayRatio returns associates / students rounded half up to 2 decimal places.
// This is the value persisted on the club. With no students the associate count itself is
// returned.
func ComputeDisplayRatio(studentCount, associateCount int) float64 {
	if studentCount == 0 {
		return float64(associateCount)
	}
	return roundedQuotient(associateCount, studentCount)
}

// UnderAdmissionThreshold reports whether a club with the given roster may still be offered
// another associate: the club must be below threshold now, and admitting one more associate
// must not take it past threshold.
func UnderAdmissionThreshold(studentCount, associateCount int, threshold float64) bool {
	if ComputeRatio(studentCount, associateCount) >= threshold {
		return false
	}
	return ComputeRatio(studentCount, associateCount+1) <= threshold
}

// roundedQuotient computes num/den to 2 decimals in integer arithmetic so that
// half-way values like 0.145 round up instead of falling victim to binary floats.
func roundedQuotient(num, den int) float64 {
	hundredths := (200*int64(num) + int64(den)) / (2 * int64(den))
	return float64(hundredths) / 100
}
