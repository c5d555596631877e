package opportunities

import (
	"testing"
	"time"
)

func fp(v float64) *float64 { return &v }

// baseOpportunity returns a neutral opportunity: no location, no skills, no
// category, no budget, no competition, older than the recency window.
func baseOpportunity(now time.Time) Opportunity {
	return Opportunity{
		ID:        "p1",
		CreatedAt: now.Add(-30 * 24 * time.Hour),
	}
}

func TestMatchScore_BaseScore(t *testing.T) {
	now := time.Now()
	o := baseOpportunity(now)
	p := Professional{ID: "u1"}
	if got := MatchScore(&o, &p, now); got != 50 {
		t.Errorf("neutral pair should score the base 50, got %d", got)
	}
}

func TestMatchScore_LocationExactAndProvinceFallback(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name        string
		projectLoc  string
		profLoc     string
		wantDelta   int
	}{
		{"substring either direction", "Rawson, Chubut", "rawson", 20},
		{"professional contains project", "Rawson", "Rawson, Chubut", 20},
		{"province fallback", "Trelew, Chubut", "Comodoro Rivadavia, Chubut", 10},
		{"no relation", "Buenos Aires", "Córdoba", 0},
		{"project location empty", "", "Rawson, Chubut", 0},
	}
	for _, c := range cases {
		o := baseOpportunity(now)
		o.Location = c.projectLoc
		p := Professional{Location: c.profLoc}
		if got := MatchScore(&o, &p, now); got != 50+c.wantDelta {
			t.Errorf("%s: got %d, want %d", c.name, got, 50+c.wantDelta)
		}
	}
}

func TestMatchScore_SkillFractionMonotonicity(t *testing.T) {
	now := time.Now()
	o := baseOpportunity(now)
	o.SkillsRequired = []string{"React", "Node.js"}

	half := Professional{Specialties: []string{"React"}}
	full := Professional{Specialties: []string{"React", "Node.js"}}

	halfScore := MatchScore(&o, &half, now)
	fullScore := MatchScore(&o, &full, now)

	if halfScore != 50+15 {
		t.Errorf("1/2 skills should add round(0.5*30)=15, got %d", halfScore-50)
	}
	if fullScore != 50+30 {
		t.Errorf("2/2 skills should add 30, got %d", fullScore-50)
	}
	if fullScore-halfScore != 15 {
		t.Errorf("adding the missing skill should raise the score by exactly 15, got %d", fullScore-halfScore)
	}
}

func TestMatchScore_SkillFuzzyEitherDirection(t *testing.T) {
	now := time.Now()
	o := baseOpportunity(now)
	o.SkillsRequired = []string{"Plomería general"}

	p := Professional{Specialties: []string{"plomería"}}
	if got := MatchScore(&o, &p, now); got != 80 {
		t.Errorf("specialty that is a substring of the skill should fully match, got %d", got)
	}
}

func TestMatchScore_CategoryAffinity(t *testing.T) {
	now := time.Now()
	o := baseOpportunity(now)
	o.CategoryName = "Electricidad"
	p := Professional{Specialties: []string{"electricidad domiciliaria"}}
	if got := MatchScore(&o, &p, now); got != 65 {
		t.Errorf("category fuzzy match should add 15, got %d", got)
	}
}

func TestMatchScore_BudgetTiers(t *testing.T) {
	now := time.Now()
	cases := []struct {
		min, max  float64
		wantDelta int
	}{
		{90000, 110000, 10}, // avg 100000
		{40000, 60000, 10},  // avg exactly 50000
		{20000, 30000, 5},   // avg 25000
		{15000, 25000, 5},   // avg exactly 20000
		{5000, 10000, 0},    // avg 7500
	}
	for _, c := range cases {
		o := baseOpportunity(now)
		o.BudgetMin, o.BudgetMax = fp(c.min), fp(c.max)
		p := Professional{}
		if got := MatchScore(&o, &p, now); got != 50+c.wantDelta {
			t.Errorf("budget %v-%v: got delta %d, want %d", c.min, c.max, got-50, c.wantDelta)
		}
	}
}

func TestMatchScore_BudgetRequiresBothBounds(t *testing.T) {
	now := time.Now()
	o := baseOpportunity(now)
	o.BudgetMax = fp(200000)
	p := Professional{}
	if got := MatchScore(&o, &p, now); got != 50 {
		t.Errorf("a single budget bound must not add points, got %d", got)
	}
}

func TestMatchScore_CompetitionPenalty(t *testing.T) {
	now := time.Now()
	cases := []struct {
		count     int
		wantDelta int
	}{
		{0, 0},
		{1, -5},
		{2, -5},
		{3, -10},
		{5, -10},
		{6, -15},
		{10, -15},
		{11, -20},
	}
	for _, c := range cases {
		o := baseOpportunity(now)
		o.ProposalCount = c.count
		p := Professional{}
		if got := MatchScore(&o, &p, now); got != 50+c.wantDelta {
			t.Errorf("%d proposals: got delta %d, want %d", c.count, got-50, c.wantDelta)
		}
	}
}

func TestMatchScore_RecencyWindow(t *testing.T) {
	now := time.Now()

	fresh := baseOpportunity(now)
	fresh.CreatedAt = now.Add(-6 * 24 * time.Hour)
	stale := baseOpportunity(now)
	stale.CreatedAt = now.Add(-8 * 24 * time.Hour)

	p := Professional{}
	if got := MatchScore(&fresh, &p, now); got != 55 {
		t.Errorf("project 6 days old should get the +5 recency bonus, got %d", got)
	}
	if got := MatchScore(&stale, &p, now); got != 50 {
		t.Errorf("project 8 days old should get no recency bonus, got %d", got)
	}
}

// 50 base +20 location +30 skills +10 budget -10 competition
// +5 recency = 105, clamped to 100.
func TestMatchScore_ClampsAtHundred(t *testing.T) {
	now := time.Now()
	o := Opportunity{
		Location:       "Rawson, Chubut",
		SkillsRequired: []string{"Plomería"},
		BudgetMin:      fp(20000),
		BudgetMax:      fp(80000),
		ProposalCount:  3,
		CreatedAt:      now.Add(-2 * time.Hour),
	}
	p := Professional{
		Location:    "Rawson, Chubut",
		Specialties: []string{"Plomería", "Gas"},
	}
	if got := MatchScore(&o, &p, now); got != 100 {
		t.Errorf("scenario should clamp to 100, got %d", got)
	}
}

func TestMatchScore_Bounds(t *testing.T) {
	now := time.Now()
	// Worst case: maximum competition, nothing matching.
	worst := baseOpportunity(now)
	worst.ProposalCount = 50
	p := Professional{}
	if got := MatchScore(&worst, &p, now); got < 0 || got > 100 {
		t.Errorf("score out of bounds: %d", got)
	}
	if got := MatchScore(&worst, &p, now); got != 30 {
		t.Errorf("max competition with nothing else should score 30, got %d", got)
	}
}
