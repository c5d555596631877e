package opportunities

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fixia-ar/fixia/internal/middleware"
)

// Handler exposes the opportunity workflow over HTTP.
type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// List handles GET /opportunities.
func (h *Handler) List(c echo.Context) error {
	callerID, ok := c.Get(middleware.UserIDKey).(string)
	if !ok || callerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	f := Filters{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Location: c.QueryParam("location"),
		SortBy:   c.QueryParam("sortBy"),
		Remote:   c.QueryParam("remote") == "true",
	}
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Page = n
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Limit = n
		}
	}
	if v := c.QueryParam("budgetMin"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			f.BudgetMin = &n
		}
	}
	if v := c.QueryParam("budgetMax"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			f.BudgetMax = &n
		}
	}

	page, err := h.svc.ListOpportunities(c.Request().Context(), callerID, f)
	if err != nil {
		return h.fail(c, err, "list opportunities")
	}
	return c.JSON(http.StatusOK, page)
}

// Stats handles GET /opportunities/stats.
func (h *Handler) Stats(c echo.Context) error {
	callerID, ok := c.Get(middleware.UserIDKey).(string)
	if !ok || callerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	stats, err := h.svc.GetStats(c.Request().Context(), callerID)
	if err != nil {
		return h.fail(c, err, "opportunity stats")
	}
	return c.JSON(http.StatusOK, stats)
}

// Apply handles POST /opportunities/:id/apply.
func (h *Handler) Apply(c echo.Context) error {
	callerID, ok := c.Get(middleware.UserIDKey).(string)
	if !ok || callerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	projectID := c.Param("id")
	if projectID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing opportunity id"})
	}

	var req ApplyRequest
	if err := c.Bind(&req); err != nil || req.Message == "" || req.ProposedBudget <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "message and a valid proposedBudget are required"})
	}

	summary, err := h.svc.Apply(c.Request().Context(), callerID, projectID, req)
	if err != nil {
		return h.fail(c, err, "apply")
	}
	return c.JSON(http.StatusCreated, summary)
}

// Accept handles POST /projects/:projectId/proposals/:proposalId/accept.
func (h *Handler) Accept(c echo.Context) error {
	callerID, ok := c.Get(middleware.UserIDKey).(string)
	if !ok || callerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	projectID, proposalID := c.Param("projectId"), c.Param("proposalId")
	if projectID == "" || proposalID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing project or proposal id"})
	}

	result, err := h.svc.Accept(c.Request().Context(), callerID, projectID, proposalID)
	if err != nil {
		return h.fail(c, err, "accept proposal")
	}
	return c.JSON(http.StatusOK, result)
}

// Reject handles POST /projects/:projectId/proposals/:proposalId/reject.
func (h *Handler) Reject(c echo.Context) error {
	callerID, ok := c.Get(middleware.UserIDKey).(string)
	if !ok || callerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	projectID, proposalID := c.Param("projectId"), c.Param("proposalId")
	if projectID == "" || proposalID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing project or proposal id"})
	}

	proposal, err := h.svc.Reject(c.Request().Context(), callerID, projectID, proposalID)
	if err != nil {
		return h.fail(c, err, "reject proposal")
	}
	return c.JSON(http.StatusOK, echo.Map{"proposal": proposal, "message": "Propuesta rechazada"})
}

// MyProposals handles GET /opportunities/my-proposals.
func (h *Handler) MyProposals(c echo.Context) error {
	callerID, ok := c.Get(middleware.UserIDKey).(string)
	if !ok || callerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	proposals, err := h.svc.MyProposals(c.Request().Context(), callerID)
	if err != nil {
		return h.fail(c, err, "my proposals")
	}
	return c.JSON(http.StatusOK, echo.Map{"proposals": proposals})
}

// fail maps domain errors to HTTP responses; anything unexpected is logged
// and hidden behind a 500.
func (h *Handler) fail(c echo.Context, err error, op string) error {
	switch {
	case IsForbidden(err):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case IsNotFound(err):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case IsConflict(err):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		h.log.Error(op+" failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
