// Package projects is the minimal owner-side surface: clients post projects
// and review the proposals they receive. The professional-side workflow
// lives in the opportunities package.
package projects

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fixia-ar/fixia/internal/db"
	"github.com/fixia-ar/fixia/internal/middleware"
)

// CreateProject lets a client post a new open project.
func CreateProject(c echo.Context) error {
	uid, ok := c.Get(middleware.UserIDKey).(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req struct {
		Title          string   `json:"title"`
		Description    string   `json:"description"`
		CategoryID     *string  `json:"category_id"`
		BudgetMin      *float64 `json:"budget_min"`
		BudgetMax      *float64 `json:"budget_max"`
		Deadline       *string  `json:"deadline"`
		Location       string   `json:"location"`
		SkillsRequired []string `json:"skills_required"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if req.BudgetMin != nil && req.BudgetMax != nil && *req.BudgetMin > *req.BudgetMax {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "budget_min cannot exceed budget_max"})
	}

	var deadline *time.Time
	if req.Deadline != nil && *req.Deadline != "" {
		parsed, err := time.Parse("2006-01-02", *req.Deadline)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid deadline, use YYYY-MM-DD"})
		}
		deadline = &parsed
	}
	if req.SkillsRequired == nil {
		req.SkillsRequired = []string{}
	}

	projectID := uuid.New().String()
	_, err := db.Conn.Exec(context.Background(),
		`INSERT INTO projects (id, client_id, title, description, category_id, budget_min, budget_max,
                               deadline, location, skills_required, status)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, 'open')`,
		projectID, uid, req.Title, req.Description, req.CategoryID,
		req.BudgetMin, req.BudgetMax, deadline, req.Location, req.SkillsRequired,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create project"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"project_id": projectID,
		"message":    "Proyecto publicado",
	})
}

// GetMyProjects returns the caller's own projects, newest first.
func GetMyProjects(c echo.Context) error {
	uid, ok := c.Get(middleware.UserIDKey).(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	rows, err := db.Conn.Query(context.Background(),
		`SELECT p.id, p.client_id, p.title, p.description, p.category_id::text,
                p.budget_min, p.budget_max, p.deadline, COALESCE(p.location, ''),
                p.skills_required, p.status,
                (SELECT COUNT(*) FROM proposals pr WHERE pr.project_id = p.id),
                p.created_at
         FROM projects p WHERE p.client_id = $1 ORDER BY p.created_at DESC`, uid,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch projects"})
	}
	defer rows.Close()

	projects := []Project{}
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Title, &p.Description, &p.CategoryID,
			&p.BudgetMin, &p.BudgetMax, &p.Deadline, &p.Location,
			&p.SkillsRequired, &p.Status, &p.ProposalCount, &p.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse project record"})
		}
		projects = append(projects, p)
	}
	return c.JSON(http.StatusOK, echo.Map{"projects": projects})
}

// ListProjectProposals returns the proposals on one of the caller's projects.
func ListProjectProposals(c echo.Context) error {
	uid, ok := c.Get(middleware.UserIDKey).(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	projectID := c.Param("id")
	if projectID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing project id"})
	}

	var ownerID string
	err := db.Conn.QueryRow(context.Background(),
		`SELECT client_id FROM projects WHERE id = $1`, projectID,
	).Scan(&ownerID)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
	}
	if ownerID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you do not own this project"})
	}

	rows, err := db.Conn.Query(context.Background(),
		`SELECT pr.id, pr.professional_id, u.name, COALESCE(u.location, ''),
                pr.message, pr.quoted_price, pr.delivery_time_days, pr.status, pr.created_at
         FROM proposals pr
         JOIN users u ON u.id = pr.professional_id
         WHERE pr.project_id = $1
         ORDER BY pr.created_at ASC`, projectID,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch proposals"})
	}
	defer rows.Close()

	proposals := []ProposalRow{}
	for rows.Next() {
		var p ProposalRow
		if err := rows.Scan(&p.ID, &p.ProfessionalID, &p.ProfessionalName, &p.ProfessionalLocation,
			&p.Message, &p.QuotedPrice, &p.DeliveryTimeDays, &p.Status, &p.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse proposal record"})
		}
		proposals = append(proposals, p)
	}
	return c.JSON(http.StatusOK, echo.Map{"proposals": proposals})
}
