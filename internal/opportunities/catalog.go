package opportunities

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	defaultPage  = 1
	defaultLimit = 12
)

// SortBudgetDesc sorts by budget at the query level and skips the match-score
// re-sort; every other sort mode gets newest-first plus a score re-sort of
// the fetched page.
const SortBudgetDesc = "budget_desc"

// ListOpportunities returns the scored, paginated catalog of open projects
// for the calling professional. Read-only.
func (s *Service) ListOpportunities(ctx context.Context, callerID string, f Filters) (*Page, error) {
	prof, err := s.professionalProfile(ctx, callerID)
	if err != nil {
		return nil, err
	}

	f = normalizeFilters(f)
	query, args := buildCatalogQuery(callerID, f)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog query: %w", err)
	}
	defer rows.Close()

	var (
		data  = []Opportunity{}
		total int
	)
	for rows.Next() {
		var o Opportunity
		if err := rows.Scan(
			&o.ID, &o.ClientID, &o.ClientName, &o.Title, &o.Description,
			&o.CategoryName, &o.BudgetMin, &o.BudgetMax, &o.Deadline,
			&o.Location, &o.SkillsRequired, &o.CreatedAt,
			&o.ProposalCount, &o.IsApplied, &total,
		); err != nil {
			return nil, fmt.Errorf("catalog scan: %w", err)
		}
		data = append(data, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range data {
		data[i].MatchScore = MatchScore(&data[i], prof, now)
	}
	// Score re-sort reorders only the fetched page, never the full result
	// set, and is skipped for budget sorting.
	if f.SortBy != SortBudgetDesc {
		sortByScore(data)
	}

	return &Page{
		Data:       data,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: totalPages(total, f.Limit),
	}, nil
}

// normalizeFilters applies defaults and folds the "no category" spellings.
func normalizeFilters(f Filters) Filters {
	if f.Page < 1 {
		f.Page = defaultPage
	}
	if f.Limit < 1 {
		f.Limit = defaultLimit
	}
	if strings.EqualFold(f.Category, "Todos") || strings.EqualFold(f.Category, "all") {
		f.Category = ""
	}
	return f
}

// buildCatalogQuery renders the dynamic WHERE clause. All filters are
// AND-composed; absent fields add nothing.
func buildCatalogQuery(callerID string, f Filters) (string, []any) {
	args := []any{callerID}
	where := []string{
		"p.status = 'open'",
		"p.client_id <> $1",
	}
	add := func(cond string, vals ...any) {
		placeholders := make([]any, len(vals))
		for i, v := range vals {
			args = append(args, v)
			placeholders[i] = len(args)
		}
		where = append(where, fmt.Sprintf(cond, placeholders...))
	}

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		add(`(p.title ILIKE $%d OR p.description ILIKE $%d OR array_to_string(p.skills_required, ' ') ILIKE $%d)`,
			pattern, pattern, pattern)
	}
	if f.Category != "" {
		add(`c.name ILIKE $%d`, "%"+f.Category+"%")
	}
	if f.BudgetMin != nil {
		add(`p.budget_max >= $%d`, *f.BudgetMin)
	}
	if f.BudgetMax != nil {
		add(`p.budget_min <= $%d`, *f.BudgetMax)
	}
	if f.Remote {
		where = append(where, `(p.location ILIKE '%remoto%' OR p.location ILIKE '%remote%')`)
	}
	if f.Location != "" {
		add(`p.location ILIKE $%d`, "%"+f.Location+"%")
	}

	orderBy := "p.created_at DESC"
	if f.SortBy == SortBudgetDesc {
		orderBy = "p.budget_max DESC NULLS LAST"
	}

	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	query := fmt.Sprintf(`
        SELECT p.id, p.client_id, u.name, p.title, p.description,
               COALESCE(c.name, ''), p.budget_min, p.budget_max, p.deadline,
               COALESCE(p.location, ''), p.skills_required, p.created_at,
               (SELECT COUNT(*) FROM proposals pr WHERE pr.project_id = p.id) AS proposal_count,
               EXISTS (SELECT 1 FROM proposals pr WHERE pr.project_id = p.id AND pr.professional_id = $1) AS is_applied,
               COUNT(*) OVER() AS total
        FROM projects p
        JOIN users u ON u.id = p.client_id
        LEFT JOIN categories c ON c.id = p.category_id
        WHERE %s
        ORDER BY %s
        LIMIT $%d OFFSET $%d`,
		strings.Join(where, " AND "), orderBy, len(args)-1, len(args),
	)
	return query, args
}

// sortByScore orders a page by match score, highest first, keeping the
// incoming order for ties.
func sortByScore(data []Opportunity) {
	sort.SliceStable(data, func(i, j int) bool {
		return data[i].MatchScore > data[j].MatchScore
	})
}

func totalPages(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
