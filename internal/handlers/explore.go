package handlers

import (
	"errors"
	"log"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"TRIPMOA_BACK-END/internal/config"
	"TRIPMOA_BACK-END/internal/dto"
	"TRIPMOA_BACK-END/internal/store"
	"TRIPMOA_BACK-END/internal/utils"
	"TRIPMOA_BACK-END/internal/viewcache"
)

const (
	defaultPageLimit  = 6
	maxPageLimit      = 50
	relatedPlansLimit = 5
)

// ExploreHandler manages the public discovery endpoints
type ExploreHandler struct {
	store  store.PlanStore
	views  *viewcache.Cache
	config *config.Config
}

// NewExploreHandler creates a new ExploreHandler
func NewExploreHandler(s store.PlanStore, views *viewcache.Cache, cfg *config.Config) *ExploreHandler {
	return &ExploreHandler{store: s, views: views, config: cfg}
}

// viewerID returns the requester's identity for isLiked derivation,
// or "" for anonymous requests.
func viewerID(r *http.Request) string {
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return id.String()
	}
	return ""
}

// viewerKey composes the dedup key from the requester identity (falling
// back to the client IP for anonymous viewers) and the User-Agent string.
func viewerKey(r *http.Request) string {
	identity := viewerID(r)
	if identity == "" {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		identity = host
	}
	return identity + "|" + r.UserAgent()
}

// GetSharedPlans handles GET /api/get-shared-plans
// @Summary Paginated, searchable, sortable listing of shared plans
// @Tags explore
// @Produce json
// @Param page query int false "page number (1-based)"
// @Param limit query int false "items per page"
// @Param search query string false "substring match on title or destination"
// @Param sort query string false "recent|likes|views"
// @Success 200 {object} dto.SharedPlansResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/get-shared-plans [get]
func (h *ExploreHandler) GetSharedPlans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	page := 1
	if v := strings.TrimSpace(q.Get("page")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	limit := defaultPageLimit
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			if n > maxPageLimit {
				n = maxPageLimit
			}
			limit = n
		}
	}
	sort := strings.ToLower(strings.TrimSpace(q.Get("sort")))
	if sort == "" {
		sort = "recent"
	}
	if sort != "recent" && sort != "likes" && sort != "views" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "sort must be recent, likes, or views")
		return
	}

	offset := (page - 1) * limit
	plans, total, err := h.store.ListShared(r.Context(), store.SharedQuery{
		Search: strings.TrimSpace(q.Get("search")),
		Sort:   sort,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "플랜을 불러오는 중 오류가 발생했습니다.", err.Error())
		return
	}

	viewer := viewerID(r)
	items := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		items = append(items, toPlanResponse(p, viewer))
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.SharedPlansResponse{
		Plans: items,
		Pagination: dto.Pagination{
			Total:       total,
			Pages:       int(math.Ceil(float64(total) / float64(limit))),
			CurrentPage: page,
			HasMore:     offset+len(plans) < total,
		},
	})
}

// GetPlanDetail handles GET /api/get-plan-detail?planId=
// @Summary Single plan plus related plans, with deduplicated view counting
// @Tags explore
// @Produce json
// @Param planId query string true "Plan ID"
// @Success 200 {object} dto.PlanDetailResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/get-plan-detail [get]
func (h *ExploreHandler) GetPlanDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rawID := strings.TrimSpace(r.URL.Query().Get("planId"))
	if rawID == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "플랜 ID가 필요합니다.", "planId is required")
		return
	}
	planID, err := uuid.Parse(rawID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid plan id", "planId must be UUID")
		return
	}

	mainPlan, err := h.store.GetByID(r.Context(), planID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "플랜을 찾을 수 없습니다.", "Plan not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "플랜을 불러오는 중 오류가 발생했습니다.", err.Error())
		return
	}

	// Count the view only on the first sighting of this viewer/user-agent
	// pair within the dedup window. A failed increment is not fatal to the
	// response; the view is simply lost.
	if !h.views.Seen(planID.String(), viewerKey(r)) {
		if err := h.store.IncrementViews(r.Context(), planID); err != nil {
			log.Printf("increment views for plan %s: %v", planID, err)
		}
	}

	userOtherPlans, err := h.store.ListSharedByOwner(r.Context(), mainPlan.UserID, mainPlan.ID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "플랜을 불러오는 중 오류가 발생했습니다.", err.Error())
		return
	}
	otherPlans, err := h.store.ListSharedOthers(r.Context(), mainPlan.UserID, relatedPlansLimit)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "플랜을 불러오는 중 오류가 발생했습니다.", err.Error())
		return
	}

	viewer := viewerID(r)
	userItems := make([]dto.PlanResponse, 0, len(userOtherPlans))
	for _, p := range userOtherPlans {
		userItems = append(userItems, toPlanResponse(p, viewer))
	}
	otherItems := make([]dto.PlanResponse, 0, len(otherPlans))
	for _, p := range otherPlans {
		otherItems = append(otherItems, toPlanResponse(p, viewer))
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.PlanDetailResponse{
		MainPlan:       toPlanResponse(mainPlan, viewer),
		UserOtherPlans: userItems,
		OtherPlans:     otherItems,
	})
}

// LikePlan handles POST /api/like-plan
// @Summary Toggle the caller's like on a plan
// @Tags explore
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.LikePlanRequest true "Plan to toggle"
// @Success 200 {object} dto.LikePlanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/like-plan [post]
func (h *ExploreHandler) LikePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.LikePlanRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	planID, err := uuid.Parse(strings.TrimSpace(req.PlanID))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid plan id", "planId must be UUID")
		return
	}

	liked, likes, err := h.store.ToggleLike(r.Context(), planID, userID.String())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "플랜을 찾을 수 없습니다.", "Plan not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "좋아요 처리 중 오류가 발생했습니다.", err.Error())
		return
	}

	message := "좋아요가 취소되었습니다."
	if liked {
		message = "좋아요가 추가되었습니다."
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.LikePlanResponse{
		Message: message,
		Liked:   liked,
		Likes:   likes,
	})
}
