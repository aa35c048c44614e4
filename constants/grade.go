package constants

// Grade is the categorical summary of a supplier's overall score.
type Grade string

const (
	GradeGreat Grade = "Great"
	GradeGood  Grade = "Good"
	GradeFair  Grade = "Fair"
	GradePoor  Grade = "Poor"
)

// GradeForScore maps a 0-100 score onto its grade band.
func GradeForScore(score float64) Grade {
	switch {
	case score >= 85:
		return GradeGreat
	case score >= 70:
		return GradeGood
	case score >= 50:
		return GradeFair
	default:
		return GradePoor
	}
}
