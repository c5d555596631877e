package opportunities

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/fixia-ar/fixia/internal/alerts"
	"github.com/fixia-ar/fixia/internal/metrics"
)

// decisionProject is the slice of the project the decision engine needs.
type decisionProject struct {
	ClientID    string
	Status      string
	Title       string
	Description string
}

// Accept accepts a pending proposal on behalf of the project owner. Marking
// the proposal accepted, moving the project to in_progress, and creating the
// job and the conversation happen in one transaction: all four commit or
// none do.
func (s *Service) Accept(ctx context.Context, clientID, projectID, proposalID string) (*AcceptResult, error) {
	project, proposal, err := s.loadForDecision(ctx, projectID, proposalID)
	if err != nil {
		return nil, err
	}
	if err := decisionGuard(project, proposal, clientID, ErrAcceptNotPending); err != nil {
		return nil, err
	}

	now := time.Now()
	job := &Job{
		ID:             uuid.New().String(),
		ProjectID:      projectID,
		ClientID:       clientID,
		ProfessionalID: proposal.ProfessionalID,
		ProposalID:     proposalID,
		Title:          project.Title,
		Description:    project.Description,
		AgreedPrice:    proposal.QuotedPrice,
		Currency:       "ARS",
		DeliveryDate:   now.Add(time.Duration(proposal.DeliveryTimeDays) * 24 * time.Hour),
		Status:         "not_started",
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin accept tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// The status guards are re-checked by the conditional updates so two
	// concurrent accepts (of this proposal, or of two proposals on the same
	// project) can never both commit.
	res, err := tx.Exec(ctx,
		`UPDATE proposals SET status = 'accepted', accepted_at = $2 WHERE id = $1 AND status = 'pending'`,
		proposalID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("accept proposal: %w", err)
	}
	if res.RowsAffected() == 0 {
		return nil, ErrAcceptNotPending
	}

	res, err = tx.Exec(ctx,
		`UPDATE projects SET status = 'in_progress' WHERE id = $1 AND status = 'open'`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("move project in_progress: %w", err)
	}
	if res.RowsAffected() == 0 {
		return nil, ErrProjectClosed
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO jobs (id, project_id, client_id, professional_id, proposal_id,
                           title, description, agreed_price, currency, delivery_date, status)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		job.ID, job.ProjectID, job.ClientID, job.ProfessionalID, job.ProposalID,
		job.Title, job.Description, job.AgreedPrice, job.Currency, job.DeliveryDate, job.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO conversations (id, project_id, client_id, professional_id, last_message_at)
         VALUES ($1, $2, $3, $4, $5)`,
		uuid.New().String(), projectID, clientID, proposal.ProfessionalID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit accept tx: %w", err)
	}

	proposal.Status = ProposalAccepted
	proposal.AcceptedAt = &now

	// Attach professional details for the response. The accept is already
	// committed, so a lookup failure only leaves these fields empty.
	if err := s.pool.QueryRow(ctx,
		`SELECT name, COALESCE(location, '') FROM users WHERE id = $1`, proposal.ProfessionalID,
	).Scan(&proposal.ProfessionalName, &proposal.ProfessionalLocation); err != nil {
		s.log.Debug("professional details lookup failed",
			zap.String("professional_id", proposal.ProfessionalID), zap.Error(err))
	}

	metrics.ProposalDecisions.WithLabelValues("accepted").Inc()

	// The accept already succeeded; a notification failure must not undo it.
	s.notify(ctx, proposal.ProfessionalID, alerts.Notification{
		Type:      alerts.TaskProposalAccepted,
		Title:     "¡Tu propuesta fue aceptada!",
		Message:   fmt.Sprintf("Tu propuesta para \"%s\" fue aceptada. Ya podés coordinar el trabajo con el cliente.", project.Title),
		ActionURL: fmt.Sprintf("/jobs/%s", job.ID),
	})

	return &AcceptResult{
		Proposal: proposal,
		Job:      job,
		Message:  "Propuesta aceptada exitosamente",
	}, nil
}

// Reject marks a pending proposal rejected. No project, job or conversation
// side effects.
func (s *Service) Reject(ctx context.Context, clientID, projectID, proposalID string) (*Proposal, error) {
	project, proposal, err := s.loadForDecision(ctx, projectID, proposalID)
	if err != nil {
		return nil, err
	}
	if err := decisionGuard(project, proposal, clientID, ErrRejectNotPending); err != nil {
		return nil, err
	}

	now := time.Now()
	res, err := s.pool.Exec(ctx,
		`UPDATE proposals SET status = 'rejected', rejected_at = $2 WHERE id = $1 AND status = 'pending'`,
		proposalID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("reject proposal: %w", err)
	}
	if res.RowsAffected() == 0 {
		return nil, ErrRejectNotPending
	}

	proposal.Status = ProposalRejected
	proposal.RejectedAt = &now

	metrics.ProposalDecisions.WithLabelValues("rejected").Inc()

	s.notify(ctx, proposal.ProfessionalID, alerts.Notification{
		Type:    alerts.TaskProposalRejected,
		Title:   "Propuesta no seleccionada",
		Message: fmt.Sprintf("Tu propuesta para \"%s\" no fue seleccionada esta vez.", project.Title),
	})

	return proposal, nil
}

// loadForDecision reads the project and the proposal, mapping missing rows
// and project mismatches to not-found errors.
func (s *Service) loadForDecision(ctx context.Context, projectID, proposalID string) (*decisionProject, *Proposal, error) {
	var project decisionProject
	err := s.pool.QueryRow(ctx,
		`SELECT client_id, status, title, description FROM projects WHERE id = $1`, projectID,
	).Scan(&project.ClientID, &project.Status, &project.Title, &project.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrProjectNotFound
		}
		return nil, nil, err
	}

	proposal := Proposal{ID: proposalID, ProjectID: projectID}
	err = s.pool.QueryRow(ctx,
		`SELECT professional_id, message, quoted_price, delivery_time_days, status, created_at
         FROM proposals WHERE id = $1 AND project_id = $2`,
		proposalID, projectID,
	).Scan(&proposal.ProfessionalID, &proposal.Message, &proposal.QuotedPrice,
		&proposal.DeliveryTimeDays, &proposal.Status, &proposal.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrProposalNotFound
		}
		return nil, nil, err
	}
	return &project, &proposal, nil
}

// decisionGuard enforces ownership and the pending-state requirement shared
// by accept and reject. notPending selects the action-specific state error.
func decisionGuard(project *decisionProject, proposal *Proposal, clientID string, notPending error) error {
	if project.ClientID != clientID {
		return ErrNotProjectOwner
	}
	if proposal.Status != ProposalPending {
		return notPending
	}
	return nil
}
