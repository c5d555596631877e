// Match scoring for the opportunity catalog.
//
// The heuristic is an additive point budget over a base of 50, clamped to
// [0, 100]. Every point value and the loose substring matching are a
// behavioral contract with the frontend ranking: do not tune them.
package opportunities

import (
	"math"
	"strings"
	"time"
)

// MatchScore computes the 0-100 relevance of an opportunity for a
// professional. Pure and deterministic given now.
func MatchScore(o *Opportunity, p *Professional, now time.Time) int {
	score := 50

	// Location: exact-ish match beats the province-level fallback.
	if o.Location != "" && p.Location != "" {
		switch {
		case fuzzyMatch(o.Location, p.Location):
			score += 20
		case containsFold(o.Location, "chubut") && containsFold(p.Location, "chubut"):
			score += 10
		}
	}

	// Skills: fraction of required skills covered by the specialties.
	if len(o.SkillsRequired) > 0 {
		matched := 0
		for _, skill := range o.SkillsRequired {
			for _, specialty := range p.Specialties {
				if fuzzyMatch(skill, specialty) {
					matched++
					break
				}
			}
		}
		fraction := float64(matched) / float64(len(o.SkillsRequired))
		score += int(math.Round(fraction * 30))
	}

	// Category affinity.
	if o.CategoryName != "" {
		for _, specialty := range p.Specialties {
			if fuzzyMatch(o.CategoryName, specialty) {
				score += 15
				break
			}
		}
	}

	// Budget tier, only when both bounds are posted.
	if o.BudgetMin != nil && o.BudgetMax != nil {
		avg := (*o.BudgetMin + *o.BudgetMax) / 2
		switch {
		case avg >= 50000:
			score += 10
		case avg >= 20000:
			score += 5
		}
	}

	// Competition penalty by current proposal count.
	switch {
	case o.ProposalCount > 10:
		score -= 20
	case o.ProposalCount > 5:
		score -= 15
	case o.ProposalCount > 2:
		score -= 10
	case o.ProposalCount > 0:
		score -= 5
	}

	// Recency bonus.
	if now.Sub(o.CreatedAt) < 7*24*time.Hour {
		score += 5
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// fuzzyMatch is the intentionally loose comparison used for locations, skills
// and categories: case-insensitive substring in either direction.
func fuzzyMatch(a, b string) bool {
	return containsFold(a, b) || containsFold(b, a)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
