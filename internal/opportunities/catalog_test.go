package opportunities

import (
	"strings"
	"testing"
)

func TestNormalizeFilters_Defaults(t *testing.T) {
	f := normalizeFilters(Filters{})
	if f.Page != 1 || f.Limit != 12 {
		t.Errorf("defaults should be page=1 limit=12, got page=%d limit=%d", f.Page, f.Limit)
	}
}

func TestNormalizeFilters_AllCategorySpellings(t *testing.T) {
	for _, raw := range []string{"Todos", "todos", "all", "ALL"} {
		f := normalizeFilters(Filters{Category: raw})
		if f.Category != "" {
			t.Errorf("category %q should mean no filter, got %q", raw, f.Category)
		}
	}
	f := normalizeFilters(Filters{Category: "Plomería"})
	if f.Category != "Plomería" {
		t.Errorf("real category must survive normalization, got %q", f.Category)
	}
}

func TestBuildCatalogQuery_BaseFilter(t *testing.T) {
	query, args := buildCatalogQuery("caller-1", normalizeFilters(Filters{}))

	if !strings.Contains(query, "p.status = 'open'") {
		t.Error("catalog must only consider open projects")
	}
	if !strings.Contains(query, "p.client_id <> $1") {
		t.Error("catalog must exclude the caller's own projects")
	}
	if len(args) != 3 { // callerID, limit, offset
		t.Errorf("base query should carry 3 args, got %d: %v", len(args), args)
	}
	if args[0] != "caller-1" {
		t.Errorf("first arg must be the caller id, got %v", args[0])
	}
	if args[1] != 12 || args[2] != 0 {
		t.Errorf("default limit/offset should be 12/0, got %v/%v", args[1], args[2])
	}
}

func TestBuildCatalogQuery_AllFiltersCompose(t *testing.T) {
	f := normalizeFilters(Filters{
		Search:    "baño",
		Category:  "Plomería",
		BudgetMin: fp(1000),
		BudgetMax: fp(5000),
		Remote:    true,
		Location:  "Trelew",
		Page:      3,
		Limit:     10,
	})
	query, args := buildCatalogQuery("caller-1", f)

	for _, frag := range []string{
		"p.title ILIKE", "c.name ILIKE", "p.budget_max >=", "p.budget_min <=",
		"remoto", "p.location ILIKE",
	} {
		if !strings.Contains(query, frag) {
			t.Errorf("query missing filter fragment %q", frag)
		}
	}
	// caller + 3 search + category + 2 budgets + location + limit + offset
	if len(args) != 10 {
		t.Errorf("expected 10 args, got %d: %v", len(args), args)
	}
	if args[len(args)-1] != 20 {
		t.Errorf("page 3 with limit 10 should offset 20, got %v", args[len(args)-1])
	}
}

func TestBuildCatalogQuery_SortModes(t *testing.T) {
	query, _ := buildCatalogQuery("c", normalizeFilters(Filters{}))
	if !strings.Contains(query, "ORDER BY p.created_at DESC") {
		t.Error("default sort should be newest-first")
	}

	query, _ = buildCatalogQuery("c", normalizeFilters(Filters{SortBy: SortBudgetDesc}))
	if !strings.Contains(query, "ORDER BY p.budget_max DESC NULLS LAST") {
		t.Error("budget_desc should sort by budget_max at the query level")
	}
}

func TestSortByScore_StableDescending(t *testing.T) {
	data := []Opportunity{
		{ID: "a", MatchScore: 60},
		{ID: "b", MatchScore: 80},
		{ID: "c", MatchScore: 60},
		{ID: "d", MatchScore: 95},
	}
	sortByScore(data)

	wantOrder := []string{"d", "b", "a", "c"}
	for i, want := range wantOrder {
		if data[i].ID != want {
			t.Fatalf("position %d: got %s, want %s (ties must keep incoming order)", i, data[i].ID, want)
		}
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, limit, want int
	}{
		{0, 12, 0},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{25, 12, 3},
	}
	for _, c := range cases {
		if got := totalPages(c.total, c.limit); got != c.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", c.total, c.limit, got, c.want)
		}
	}
}
