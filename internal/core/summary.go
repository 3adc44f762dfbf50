package core

// Summary vectors keyed by a (region, segment)-style pair of small integers
// pack both into one integer using the same bit discipline as the rest of
// the format: the low 15 bits hold the first number and the rest holds the
// second, offset by 10.

// CombineSummaryNumbers packs two small integers into one key.
func CombineSummaryNumbers(n1, n2 int) int {
	return n1 + (1<<15)*(n2+10)
}

// SplitSummaryNumber unpacks a key produced by CombineSummaryNumbers.
func SplitSummaryNumber(n int) (int, int) {
	n1 := n % (1 << 15)
	n2 := (n / (1 << 15)) - 10

	return n1, n2
}
