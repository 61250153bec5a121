package helper

// LetterFromScore menurunkan huruf nilai dari skor terhadap skor maksimum.
// Skala tetap: ≥90 A, ≥80 B, ≥70 C, ≥60 D, selain itu F.
func LetterFromScore(score, max float64) string {
	if max <= 0 {
		max = 100
	}
	pct := (score / max) * 100
	switch {
	case pct >= 90:
		return "A"
	case pct >= 80:
		return "B"
	case pct >= 70:
		return "C"
	case pct >= 60:
		return "D"
	default:
		return "F"
	}
}
