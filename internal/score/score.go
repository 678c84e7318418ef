// Package score implements the sustainability score heuristic.
//
// The score is an integer in [0, 100] derived from an item's material and
// category, and decays as the item is worn. It is a rough heuristic, not
// sustainability science.
package score

import "strings"

// DefaultWearDecay is how many points an item loses per wear.
const DefaultWearDecay = 2

// Compute derives a sustainability score from material and category.
// Matching is case-insensitive and substring-based. The material tiers are
// evaluated in order and the first match wins, so "organic cotton" lands in
// the organic tier, not the plain-cotton one.
func Compute(material, category string) int {
	mat := strings.ToLower(material)
	cat := strings.ToLower(category)

	s := 100
	switch {
	case contains(mat, "polyester", "nylon", "synthetic"):
		s = 60
	case strings.Contains(mat, "cotton") && !strings.Contains(mat, "organic"):
		s = 85
	case contains(mat, "organic", "linen", "wool", "recycled"):
		s = 95
	case strings.Contains(mat, "denim"):
		s = 75
	}

	if contains(cat, "fast", "cheap") {
		s -= 10
	}

	return clamp(s)
}

// Decay lowers a score by amount, clamped to [0, 100].
func Decay(score, amount int) int {
	return clamp(score - amount)
}

func contains(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func clamp(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
