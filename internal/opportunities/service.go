// Package opportunities implements the opportunity-matching and
// proposal-acceptance workflow: catalog browsing for professionals, match
// scoring, proposal submission with a per-opportunity cap, and the
// accept/reject decision engine that materializes a Job and a Conversation.
package opportunities

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fixia-ar/fixia/internal/alerts"
	"github.com/fixia-ar/fixia/internal/metrics"
)

// Pool is the subset of *pgxpool.Pool the service uses.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Service is transport-agnostic: handlers in this package and any future
// transport call into it.
type Service struct {
	pool  Pool
	cache *redis.Client
	sink  alerts.Sink
	log   *zap.Logger
}

// NewService returns a configured Service. pool is *pgxpool.Pool in
// production. cache may be nil; stats then skip the cache entirely.
func NewService(pool Pool, cache *redis.Client, sink alerts.Sink, log *zap.Logger) *Service {
	return &Service{pool: pool, cache: cache, sink: sink, log: log}
}

// professionalProfile loads the caller's read-only projection and enforces
// the professional/dual gate shared by the catalog, stats and apply paths.
func (s *Service) professionalProfile(ctx context.Context, userID string) (*Professional, error) {
	p := Professional{ID: userID}
	err := s.pool.QueryRow(ctx,
		`SELECT name, user_type, COALESCE(location, ''), specialties FROM users WHERE id = $1`,
		userID,
	).Scan(&p.Name, &p.UserType, &p.Location, &p.Specialties)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOnlyProfessionals
		}
		return nil, err
	}
	if p.UserType != UserTypeProfessional && p.UserType != UserTypeDual {
		return nil, ErrOnlyProfessionals
	}
	return &p, nil
}

// notify dispatches through the sink and swallows any failure after logging.
// Notification delivery is never on the critical path.
func (s *Service) notify(ctx context.Context, userID string, n alerts.Notification) {
	if err := s.sink.Notify(ctx, userID, n); err != nil {
		metrics.NotificationFailures.Inc()
		s.log.Warn("notification dispatch failed",
			zap.String("user_id", userID),
			zap.String("type", n.Type),
			zap.Error(err),
		)
	}
}

// MyProposals lists the caller's own proposals, newest first.
func (s *Service) MyProposals(ctx context.Context, professionalID string) ([]MyProposal, error) {
	if _, err := s.professionalProfile(ctx, professionalID); err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT pr.id, pr.project_id, p.title, p.status, pr.quoted_price, pr.delivery_time_days,
                pr.status, pr.created_at
         FROM proposals pr
         JOIN projects p ON p.id = pr.project_id
         WHERE pr.professional_id = $1
         ORDER BY pr.created_at DESC`,
		professionalID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	proposals := []MyProposal{}
	for rows.Next() {
		var m MyProposal
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.ProjectTitle, &m.ProjectStatus,
			&m.QuotedPrice, &m.DeliveryTimeDays, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		proposals = append(proposals, m)
	}
	return proposals, rows.Err()
}
