package projects

import "time"

// Project is a client's posted job as the owner surface returns it.
type Project struct {
	ID             string     `json:"id"`
	ClientID       string     `json:"client_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	CategoryID     *string    `json:"category_id,omitempty"`
	BudgetMin      *float64   `json:"budget_min,omitempty"`
	BudgetMax      *float64   `json:"budget_max,omitempty"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	Location       string     `json:"location,omitempty"`
	SkillsRequired []string   `json:"skills_required"`
	Status         string     `json:"status"`
	ProposalCount  int        `json:"proposal_count"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ProposalRow is a bid as the project owner reviews it.
type ProposalRow struct {
	ID                   string    `json:"id"`
	ProfessionalID       string    `json:"professional_id"`
	ProfessionalName     string    `json:"professional_name"`
	ProfessionalLocation string    `json:"professional_location,omitempty"`
	Message              string    `json:"message"`
	QuotedPrice          float64   `json:"quoted_price"`
	DeliveryTimeDays     int       `json:"delivery_time_days"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"created_at"`
}
