package student

const (
	// MinGrade is the lowest valid grade.
	MinGrade = 0
	// MaxGrade is the highest valid grade.
	MaxGrade = 10
	// GradeBuckets is the number of distinct valid grades.
	GradeBuckets = MaxGrade - MinGrade + 1
)

// ValidGrade reports whether g lies within [MinGrade, MaxGrade].
func ValidGrade(g int) bool {
	return g >= MinGrade && g <= MaxGrade
}

// ClampGrade pins g into [MinGrade, MaxGrade].
func ClampGrade(g int) int {
	return min(max(g, MinGrade), MaxGrade)
}
