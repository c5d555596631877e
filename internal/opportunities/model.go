package opportunities

import "time"

// Project status values. The decision engine only ever moves a project
// open → in_progress; the remaining states belong to other flows.
const (
	ProjectOpen       = "open"
	ProjectInProgress = "in_progress"
	ProjectCompleted  = "completed"
	ProjectCancelled  = "cancelled"
)

// Proposal status values. accepted, rejected and withdrawn are terminal.
const (
	ProposalPending   = "pending"
	ProposalAccepted  = "accepted"
	ProposalRejected  = "rejected"
	ProposalWithdrawn = "withdrawn"
)

// User types eligible to browse opportunities.
const (
	UserTypeClient       = "client"
	UserTypeProfessional = "professional"
	UserTypeDual         = "dual"
)

// Professional is the read-only projection of a user this package needs for
// eligibility checks and scoring. Never mutated here.
type Professional struct {
	ID          string
	Name        string
	UserType    string
	Location    string
	Specialties []string
}

// Opportunity is an open project as a professional browsing the catalog sees
// it: project fields joined with client and category summaries plus the
// per-caller annotations.
type Opportunity struct {
	ID             string     `json:"id"`
	ClientID       string     `json:"client_id"`
	ClientName     string     `json:"client_name"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	CategoryName   string     `json:"category,omitempty"`
	BudgetMin      *float64   `json:"budget_min,omitempty"`
	BudgetMax      *float64   `json:"budget_max,omitempty"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	Location       string     `json:"location,omitempty"`
	SkillsRequired []string   `json:"skills_required"`
	CreatedAt      time.Time  `json:"created_at"`
	ProposalCount  int        `json:"proposal_count"`
	IsApplied      bool       `json:"is_applied"`
	MatchScore     int        `json:"match_score"`
}

// Filters are the recognized catalog filters. Zero values mean "no filter";
// nothing is silently coerced.
type Filters struct {
	Search    string
	Category  string
	BudgetMin *float64
	BudgetMax *float64
	Remote    bool
	Location  string
	SortBy    string
	Page      int
	Limit     int
}

// Page is the paginated catalog response.
type Page struct {
	Data       []Opportunity `json:"data"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
}

// Stats are the aggregate counters shown on a professional's dashboard.
type Stats struct {
	TotalAvailableOpportunities int `json:"total_available_opportunities"`
	MyProposals                 int `json:"my_proposals"`
	AcceptedProposals           int `json:"accepted_proposals"`
	SuccessRate                 int `json:"success_rate"`
}

// ApplyRequest is a professional's bid submission. Input is pre-validated at
// the transport edge against documented constraints.
type ApplyRequest struct {
	Message           string  `json:"message"`
	ProposedBudget    float64 `json:"proposedBudget"`
	EstimatedDuration string  `json:"estimatedDuration"`
	Portfolio         string  `json:"portfolio,omitempty"`
}

// ProposalSummary is what Apply returns.
type ProposalSummary struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Proposal is the persisted bid as the decision engine reads it.
type Proposal struct {
	ID               string     `json:"id"`
	ProjectID        string     `json:"project_id"`
	ProfessionalID   string     `json:"professional_id"`
	Message          string     `json:"message"`
	QuotedPrice      float64    `json:"quoted_price"`
	DeliveryTimeDays int        `json:"delivery_time_days"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	AcceptedAt       *time.Time `json:"accepted_at,omitempty"`
	RejectedAt       *time.Time `json:"rejected_at,omitempty"`

	// Professional details attached on the accept response.
	ProfessionalName     string `json:"professional_name,omitempty"`
	ProfessionalLocation string `json:"professional_location,omitempty"`
}

// Job is the engagement materialized the moment a proposal is accepted.
type Job struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	ClientID       string    `json:"client_id"`
	ProfessionalID string    `json:"professional_id"`
	ProposalID     string    `json:"proposal_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	AgreedPrice    float64   `json:"agreed_price"`
	Currency       string    `json:"currency"`
	DeliveryDate   time.Time `json:"delivery_date"`
	Status         string    `json:"status"`
}

// AcceptResult is the accept operation's response payload.
type AcceptResult struct {
	Proposal *Proposal `json:"proposal"`
	Job      *Job      `json:"job"`
	Message  string    `json:"message"`
}

// MyProposal is a row in a professional's own-proposals listing.
type MyProposal struct {
	ID               string    `json:"id"`
	ProjectID        string    `json:"project_id"`
	ProjectTitle     string    `json:"project_title"`
	ProjectStatus    string    `json:"project_status"`
	QuotedPrice      float64   `json:"quoted_price"`
	DeliveryTimeDays int       `json:"delivery_time_days"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}
