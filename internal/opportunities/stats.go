package opportunities

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"go.uber.org/zap"
)

const statsCacheTTL = 30 * time.Second

// GetStats returns the caller's dashboard counters. Results are cached
// briefly in Redis; cache errors are treated as misses.
func (s *Service) GetStats(ctx context.Context, callerID string) (*Stats, error) {
	if _, err := s.professionalProfile(ctx, callerID); err != nil {
		return nil, err
	}

	cacheKey := "opportunities:stats:" + callerID
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached Stats
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	var st Stats
	err := s.pool.QueryRow(ctx, `
        SELECT
            (SELECT COUNT(*) FROM projects p
             WHERE p.status = 'open' AND p.client_id <> $1
               AND NOT EXISTS (SELECT 1 FROM proposals pr
                               WHERE pr.project_id = p.id AND pr.professional_id = $1)),
            (SELECT COUNT(*) FROM proposals WHERE professional_id = $1),
            (SELECT COUNT(*) FROM proposals WHERE professional_id = $1 AND status = 'accepted')`,
		callerID,
	).Scan(&st.TotalAvailableOpportunities, &st.MyProposals, &st.AcceptedProposals)
	if err != nil {
		return nil, err
	}
	st.SuccessRate = successRate(st.AcceptedProposals, st.MyProposals)

	if s.cache != nil {
		if raw, err := json.Marshal(&st); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, statsCacheTTL).Err(); err != nil {
				s.log.Debug("stats cache write failed", zap.Error(err))
			}
		}
	}
	return &st, nil
}

// successRate is round(accepted/total × 100), guarding the zero-proposal case.
func successRate(accepted, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(accepted) / float64(total) * 100))
}
