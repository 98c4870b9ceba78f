package dto

// ActivityInput represents a single activity entry as submitted by the client.
// All fields are optional; the handler defaults missing ones before persisting.
type ActivityInput struct {
	Place    string `json:"place"`
	Time     string `json:"time"`
	Period   string `json:"period"` // AM | PM, defaults to AM
	Activity string `json:"activity"`
}

// DayInput represents one day of the plan as submitted by the client.
// Order is optional; days without one are numbered by their position.
type DayInput struct {
	Order      int             `json:"order"`
	Title      string          `json:"title"`
	Activities []ActivityInput `json:"activities"`
}

// SavePlanRequest represents the payload for /api/save-plan and /api/share-plan.
// PlanID present means update-if-owner; absent means create.
type SavePlanRequest struct {
	PlanID         string     `json:"planId"`
	Title          string     `json:"title"`
	Destination    string     `json:"destination"`
	NumberOfPeople *int       `json:"numberOfPeople"`
	Days           []DayInput `json:"days"`
}

// SavePlanResponse is returned by save-plan, share-plan, and copy-plan
type SavePlanResponse struct {
	Message string `json:"message"`
	PlanID  string `json:"planId"`
}

// CopyPlanRequest represents the payload for /api/copy-plan
type CopyPlanRequest struct {
	PlanID string `json:"planId"`
}

// LikePlanRequest represents the payload for /api/like-plan
type LikePlanRequest struct {
	PlanID string `json:"planId"`
}

// LikePlanResponse carries the new like state after a toggle
type LikePlanResponse struct {
	Message string `json:"message"`
	Liked   bool   `json:"liked"`
	Likes   int    `json:"likes"`
}

// ActivityResponse mirrors ActivityInput in responses
type ActivityResponse struct {
	Place    string `json:"place"`
	Time     string `json:"time"`
	Period   string `json:"period"`
	Activity string `json:"activity"`
}

// DayResponse mirrors DayInput in responses
type DayResponse struct {
	Order      int                `json:"order"`
	Title      string             `json:"title"`
	Activities []ActivityResponse `json:"activities"`
}

// PlanResponse represents a plan in listing and detail responses.
// LikedBy is never exposed; IsLiked is derived per-request instead.
type PlanResponse struct {
	ID             string        `json:"_id"`
	UserID         string        `json:"userId,omitempty"`
	Title          string        `json:"title"`
	Creator        string        `json:"creator"`
	Destination    string        `json:"destination"`
	NumberOfPeople int           `json:"numberOfPeople"`
	Likes          int           `json:"likes"`
	Views          int           `json:"views"`
	IsLiked        bool          `json:"isLiked"`
	Days           []DayResponse `json:"days"`
	CreatedAt      string        `json:"createdAt"`
	UpdatedAt      string        `json:"updatedAt,omitempty"`
}

// Pagination describes the shared-plan listing window
type Pagination struct {
	Total       int  `json:"total"`
	Pages       int  `json:"pages"`
	CurrentPage int  `json:"currentPage"`
	HasMore     bool `json:"hasMore"`
}

// SharedPlansResponse envelope for /api/get-shared-plans
type SharedPlansResponse struct {
	Plans      []PlanResponse `json:"plans"`
	Pagination Pagination     `json:"pagination"`
}

// PlanDetailResponse envelope for /api/get-plan-detail
type PlanDetailResponse struct {
	MainPlan       PlanResponse   `json:"mainPlan"`
	UserOtherPlans []PlanResponse `json:"userOtherPlans"`
	OtherPlans     []PlanResponse `json:"otherPlans"`
}

// LoadPlansResponse envelope for /api/load-plan
type LoadPlansResponse struct {
	Plans   []PlanResponse `json:"plans"`
	Message string         `json:"message"`
}

// MessageResponse is a bare message envelope (delete-plan)
type MessageResponse struct {
	Message string `json:"message"`
}
