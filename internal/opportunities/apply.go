package opportunities

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fixia-ar/fixia/internal/alerts"
	"github.com/fixia-ar/fixia/internal/metrics"
)

// Apply submits a proposal on an open project. The project owner gets a
// best-effort notification; its failure never fails the submission.
func (s *Service) Apply(ctx context.Context, professionalID, projectID string, req ApplyRequest) (*ProposalSummary, error) {
	if _, err := s.professionalProfile(ctx, professionalID); err != nil {
		return nil, err
	}

	var (
		clientID string
		status   string
		title    string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT client_id, status, title FROM projects WHERE id = $1`, projectID,
	).Scan(&clientID, &status, &title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if status != ProjectOpen {
		return nil, ErrProjectClosed
	}

	var active int
	err = s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM proposals
         WHERE project_id = $1 AND professional_id = $2 AND status <> 'withdrawn'`,
		projectID, professionalID,
	).Scan(&active)
	if err != nil {
		return nil, err
	}
	if active >= MaxActiveProposals {
		return nil, ErrProposalLimit
	}

	summary := ProposalSummary{
		ID:     uuid.New().String(),
		Status: ProposalPending,
	}
	err = s.pool.QueryRow(ctx,
		`INSERT INTO proposals (id, project_id, professional_id, message, quoted_price, delivery_time_days, status)
         VALUES ($1, $2, $3, $4, $5, $6, 'pending')
         RETURNING created_at`,
		summary.ID, projectID, professionalID, req.Message, req.ProposedBudget,
		DurationDays(req.EstimatedDuration),
	).Scan(&summary.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert proposal: %w", err)
	}

	metrics.ProposalsSubmitted.Inc()

	s.notify(ctx, clientID, alerts.Notification{
		Type:      alerts.TaskProposalReceived,
		Title:     "Nueva propuesta recibida",
		Message:   fmt.Sprintf("Recibiste una nueva propuesta para \"%s\".", title),
		ActionURL: fmt.Sprintf("/projects/%s/proposals", projectID),
	})

	return &summary, nil
}
