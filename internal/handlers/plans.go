package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"TRIPMOA_BACK-END/internal/config"
	"TRIPMOA_BACK-END/internal/dto"
	"TRIPMOA_BACK-END/internal/models"
	"TRIPMOA_BACK-END/internal/store"
	"TRIPMOA_BACK-END/internal/utils"
)

// PlansHandler manages the owner-facing plan endpoints
type PlansHandler struct {
	store  store.PlanStore
	config *config.Config
}

// NewPlansHandler creates a new PlansHandler
func NewPlansHandler(s store.PlanStore, cfg *config.Config) *PlansHandler {
	return &PlansHandler{store: s, config: cfg}
}

// sanitizeDays normalizes client-submitted days so persisted documents never
// carry missing fields: blank activity fields become "", period defaults to
// "AM", and days without an explicit ordinal are numbered by position.
func sanitizeDays(days []dto.DayInput) []models.Day {
	out := make([]models.Day, 0, len(days))
	for i, d := range days {
		order := d.Order
		if order <= 0 {
			order = i + 1
		}
		activities := make([]models.Activity, 0, len(d.Activities))
		for _, a := range d.Activities {
			period := strings.TrimSpace(a.Period)
			if period == "" {
				period = "AM"
			}
			activities = append(activities, models.Activity{
				Place:    a.Place,
				Time:     a.Time,
				Period:   period,
				Activity: a.Activity,
			})
		}
		out = append(out, models.Day{
			Order:      order,
			Title:      d.Title,
			Activities: activities,
		})
	}
	return out
}

// toPlanResponse converts a plan for API output. The liker set is never
// exposed; it is collapsed into the requester-specific IsLiked flag.
func toPlanResponse(p models.TravelPlan, viewerID string) dto.PlanResponse {
	days := make([]dto.DayResponse, 0, len(p.Days))
	for _, d := range p.Days {
		activities := make([]dto.ActivityResponse, 0, len(d.Activities))
		for _, a := range d.Activities {
			activities = append(activities, dto.ActivityResponse(a))
		}
		days = append(days, dto.DayResponse{
			Order:      d.Order,
			Title:      d.Title,
			Activities: activities,
		})
	}

	destination := p.Destination
	if destination == "" {
		destination = "여행지 미정"
	}
	numberOfPeople := p.NumberOfPeople
	if numberOfPeople < 1 {
		numberOfPeople = 1
	}

	return dto.PlanResponse{
		ID:             p.ID.String(),
		UserID:         p.UserID.String(),
		Title:          p.Title,
		Creator:        p.Creator,
		Destination:    destination,
		NumberOfPeople: numberOfPeople,
		Likes:          p.Likes,
		Views:          p.Views,
		IsLiked:        viewerID != "" && p.HasLiked(viewerID),
		Days:           days,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      p.UpdatedAt.Format(time.RFC3339),
	}
}

// SavePlan handles POST /api/save-plan
// @Summary Create or update a private travel plan
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SavePlanRequest true "Plan payload"
// @Success 200 {object} dto.SavePlanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/save-plan [post]
func (h *PlansHandler) SavePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.SavePlanRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = fmt.Sprintf("여행 계획 %d", time.Now().UnixMilli())
	}
	if req.NumberOfPeople != nil && *req.NumberOfPeople < 1 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "여행 인원은 1명 이상이어야 합니다.")
		return
	}

	days := sanitizeDays(req.Days)

	// planId present: update only if the caller owns the plan. A missing or
	// foreign plan is a single 404 outcome; nothing is ever upserted.
	if req.PlanID != "" {
		planID, err := uuid.Parse(req.PlanID)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid plan id", "planId must be UUID")
			return
		}

		upd := store.PlanUpdate{
			Title:          title,
			Days:           days,
			NumberOfPeople: req.NumberOfPeople,
		}
		if dest := strings.TrimSpace(req.Destination); dest != "" {
			upd.Destination = &dest
		}

		if err := h.store.UpdateOwned(r.Context(), planID, userID, upd); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				utils.WriteErrorResponse(w, http.StatusNotFound, "플랜을 찾을 수 없습니다.", "Plan not found or not owned")
				return
			}
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "저장 중 오류가 발생했습니다.", err.Error())
			return
		}

		utils.WriteJSONResponse(w, http.StatusOK, dto.SavePlanResponse{
			Message: "플랜이 수정되었습니다.",
			PlanID:  planID.String(),
		})
		return
	}

	creator, _ := utils.GetUsernameFromContext(r.Context())
	if creator == "" {
		creator = "익명"
	}
	numberOfPeople := 1
	if req.NumberOfPeople != nil {
		numberOfPeople = *req.NumberOfPeople
	}

	now := time.Now()
	plan := models.TravelPlan{
		ID:             uuid.New(),
		UserID:         userID,
		Title:          title,
		Creator:        creator,
		Destination:    strings.TrimSpace(req.Destination),
		NumberOfPeople: numberOfPeople,
		IsShared:       false,
		Likes:          0,
		Views:          0,
		LikedBy:        []string{},
		Days:           days,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.store.Create(r.Context(), plan); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "저장 중 오류가 발생했습니다.", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.SavePlanResponse{
		Message: "플랜이 저장되었습니다.",
		PlanID:  plan.ID.String(),
	})
}

// SharePlan handles POST /api/share-plan
// @Summary Publish a travel plan to the public listing
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SavePlanRequest true "Plan payload"
// @Success 200 {object} dto.SavePlanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/share-plan [post]
func (h *PlansHandler) SharePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.SavePlanRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "계획 이름을 입력해주세요.", "title is required")
		return
	}
	if req.NumberOfPeople != nil && *req.NumberOfPeople < 1 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "여행 인원은 1명 이상이어야 합니다.")
		return
	}

	days := sanitizeDays(req.Days)
	destination := strings.TrimSpace(req.Destination)
	numberOfPeople := 1
	if req.NumberOfPeople != nil {
		numberOfPeople = *req.NumberOfPeople
	}

	// Updating an existing plan keeps its likes/views/liker set; only the
	// content fields and the shared flag change.
	if req.PlanID != "" {
		planID, err := uuid.Parse(req.PlanID)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid plan id", "planId must be UUID")
			return
		}

		upd := store.PlanUpdate{
			Title:          title,
			Days:           days,
			Destination:    &destination,
			NumberOfPeople: &numberOfPeople,
			SetShared:      true,
		}
		if err := h.store.UpdateOwned(r.Context(), planID, userID, upd); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				utils.WriteErrorResponse(w, http.StatusNotFound, "플랜을 찾을 수 없습니다.", "Plan not found or not owned")
				return
			}
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "공유 중 오류가 발생했습니다.", err.Error())
			return
		}

		utils.WriteJSONResponse(w, http.StatusOK, dto.SavePlanResponse{
			Message: "플랜이 공유되었습니다.",
			PlanID:  planID.String(),
		})
		return
	}

	creator, _ := utils.GetUsernameFromContext(r.Context())
	if creator == "" {
		creator = "익명"
	}

	now := time.Now()
	plan := models.TravelPlan{
		ID:             uuid.New(),
		UserID:         userID,
		Title:          title,
		Creator:        creator,
		Destination:    destination,
		NumberOfPeople: numberOfPeople,
		IsShared:       true,
		Likes:          0,
		Views:          0,
		LikedBy:        []string{},
		Days:           days,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.store.Create(r.Context(), plan); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "공유 중 오류가 발생했습니다.", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.SavePlanResponse{
		Message: "플랜이 공유되었습니다.",
		PlanID:  plan.ID.String(),
	})
}

// LoadPlans handles GET /api/load-plan
// @Summary List the caller's own plans
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.LoadPlansResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/load-plan [get]
func (h *PlansHandler) LoadPlans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	plans, err := h.store.ListByOwner(r.Context(), userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to load plans", err.Error())
		return
	}

	viewerID := userID.String()
	items := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		items = append(items, toPlanResponse(p, viewerID))
	}

	message := "Plans loaded successfully"
	if len(items) == 0 {
		message = "No plans found"
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.LoadPlansResponse{
		Plans:   items,
		Message: message,
	})
}

// DeletePlan handles DELETE /api/delete-plan?planId=
// @Summary Delete an owned plan
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param planId query string true "Plan ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/delete-plan [delete]
func (h *PlansHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	planID, err := uuid.Parse(strings.TrimSpace(r.URL.Query().Get("planId")))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid plan ID", "planId must be UUID")
		return
	}

	if err := h.store.DeleteOwned(r.Context(), planID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Plan not found", "Plan not found or not owned")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Plan deleted successfully"})
}

// CopyPlan handles POST /api/copy-plan
// @Summary Clone a plan into a new private plan owned by the caller
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CopyPlanRequest true "Plan to copy"
// @Success 200 {object} dto.SavePlanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/copy-plan [post]
func (h *PlansHandler) CopyPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "로그인이 필요합니다.")
		return
	}

	var req dto.CopyPlanRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	planID, err := uuid.Parse(strings.TrimSpace(req.PlanID))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid plan id", "planId must be UUID")
		return
	}

	original, err := h.store.GetByID(r.Context(), planID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "플랜을 찾을 수 없습니다.", "Plan not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "플랜을 복사하는 중 오류가 발생했습니다.", err.Error())
		return
	}

	creator, _ := utils.GetUsernameFromContext(r.Context())
	if creator == "" {
		creator = "Unknown User"
	}

	now := time.Now()
	clone := models.TravelPlan{
		ID:             uuid.New(),
		UserID:         userID,
		Title:          original.Title + " (복사본)",
		Creator:        creator,
		Destination:    original.Destination,
		NumberOfPeople: original.NumberOfPeople,
		IsShared:       false,
		Likes:          0,
		Views:          0,
		LikedBy:        []string{},
		Days:           original.Days,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.store.Create(r.Context(), clone); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "플랜을 복사하는 중 오류가 발생했습니다.", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.SavePlanResponse{
		Message: "플랜이 성공적으로 복사되었습니다.",
		PlanID:  clone.ID.String(),
	})
}
