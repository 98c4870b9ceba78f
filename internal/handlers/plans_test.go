package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TRIPMOA_BACK-END/internal/config"
	"TRIPMOA_BACK-END/internal/dto"
	"TRIPMOA_BACK-END/internal/handlers"
	"TRIPMOA_BACK-END/internal/models"
	"TRIPMOA_BACK-END/internal/store"
	"TRIPMOA_BACK-END/internal/utils"
)

// mockPlanStore is a hand-written test double for store.PlanStore.
// Each method is a function field; set only the ones your test needs.
type mockPlanStore struct {
	create            func(ctx context.Context, plan models.TravelPlan) error
	updateOwned       func(ctx context.Context, planID, ownerID uuid.UUID, upd store.PlanUpdate) error
	getByID           func(ctx context.Context, planID uuid.UUID) (models.TravelPlan, error)
	listByOwner       func(ctx context.Context, ownerID uuid.UUID) ([]models.TravelPlan, error)
	listShared        func(ctx context.Context, q store.SharedQuery) ([]models.TravelPlan, int, error)
	listSharedByOwner func(ctx context.Context, ownerID, excludeID uuid.UUID) ([]models.TravelPlan, error)
	listSharedOthers  func(ctx context.Context, ownerID uuid.UUID, limit int) ([]models.TravelPlan, error)
	toggleLike        func(ctx context.Context, planID uuid.UUID, userID string) (bool, int, error)
	incrementViews    func(ctx context.Context, planID uuid.UUID) error
	deleteOwned       func(ctx context.Context, planID, ownerID uuid.UUID) error
}

func (m *mockPlanStore) Create(ctx context.Context, plan models.TravelPlan) error {
	return m.create(ctx, plan)
}
func (m *mockPlanStore) UpdateOwned(ctx context.Context, planID, ownerID uuid.UUID, upd store.PlanUpdate) error {
	return m.updateOwned(ctx, planID, ownerID, upd)
}
func (m *mockPlanStore) GetByID(ctx context.Context, planID uuid.UUID) (models.TravelPlan, error) {
	return m.getByID(ctx, planID)
}
func (m *mockPlanStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.TravelPlan, error) {
	return m.listByOwner(ctx, ownerID)
}
func (m *mockPlanStore) ListShared(ctx context.Context, q store.SharedQuery) ([]models.TravelPlan, int, error) {
	return m.listShared(ctx, q)
}
func (m *mockPlanStore) ListSharedByOwner(ctx context.Context, ownerID, excludeID uuid.UUID) ([]models.TravelPlan, error) {
	return m.listSharedByOwner(ctx, ownerID, excludeID)
}
func (m *mockPlanStore) ListSharedOthers(ctx context.Context, ownerID uuid.UUID, limit int) ([]models.TravelPlan, error) {
	return m.listSharedOthers(ctx, ownerID, limit)
}
func (m *mockPlanStore) ToggleLike(ctx context.Context, planID uuid.UUID, userID string) (bool, int, error) {
	return m.toggleLike(ctx, planID, userID)
}
func (m *mockPlanStore) IncrementViews(ctx context.Context, planID uuid.UUID) error {
	return m.incrementViews(ctx, planID)
}
func (m *mockPlanStore) DeleteOwned(ctx context.Context, planID, ownerID uuid.UUID) error {
	return m.deleteOwned(ctx, planID, ownerID)
}

// compile-time check: mockPlanStore must satisfy store.PlanStore.
var _ store.PlanStore = (*mockPlanStore)(nil)

func testConfig() *config.Config {
	return &config.Config{}
}

// authedRequest builds a request carrying the user context the auth
// middleware would have populated.
func authedRequest(t *testing.T, method, target string, body any, userID uuid.UUID, username string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, target, &buf)

	ctx := context.WithValue(r.Context(), utils.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, utils.ContextKeyUsername, username)
	return r.WithContext(ctx)
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&out))
	return out
}

// ---- SavePlan --------------------------------------------------------------

func TestPlansHandler_SavePlan_CreatesWithDefaults(t *testing.T) {
	var created models.TravelPlan
	st := &mockPlanStore{
		create: func(_ context.Context, plan models.TravelPlan) error {
			created = plan
			return nil
		},
	}
	h := handlers.NewPlansHandler(st, testConfig())

	userID := uuid.New()
	body := dto.SavePlanRequest{
		Title: "Test",
		Days: []dto.DayInput{
			{Title: "Day 1", Activities: []dto.ActivityInput{
				{Place: "", Time: "", Period: "", Activity: ""},
			}},
		},
	}
	w := httptest.NewRecorder()
	h.SavePlan(w, authedRequest(t, http.MethodPost, "/api/save-plan", body, userID, "tester"))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[dto.SavePlanResponse](t, w)
	assert.Equal(t, "플랜이 저장되었습니다.", resp.Message)
	assert.NotEmpty(t, resp.PlanID)

	// Persisted document never carries missing fields.
	require.Len(t, created.Days, 1)
	assert.Equal(t, 1, created.Days[0].Order)
	require.Len(t, created.Days[0].Activities, 1)
	assert.Equal(t, "AM", created.Days[0].Activities[0].Period)
	assert.Equal(t, "", created.Days[0].Activities[0].Place)
	assert.Equal(t, userID, created.UserID)
	assert.Equal(t, "tester", created.Creator)
	assert.False(t, created.IsShared)
	assert.Equal(t, 0, created.Likes)
	assert.NotNil(t, created.LikedBy)
	assert.Empty(t, created.LikedBy)
	assert.Equal(t, 1, created.NumberOfPeople)
}

func TestPlansHandler_SavePlan_DefaultsEmptyTitle(t *testing.T) {
	var created models.TravelPlan
	st := &mockPlanStore{
		create: func(_ context.Context, plan models.TravelPlan) error {
			created = plan
			return nil
		},
	}
	h := handlers.NewPlansHandler(st, testConfig())

	w := httptest.NewRecorder()
	h.SavePlan(w, authedRequest(t, http.MethodPost, "/api/save-plan", dto.SavePlanRequest{}, uuid.New(), "tester"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, created.Title, "여행 계획 ")
}

func TestPlansHandler_SavePlan_UpdateNotOwned(t *testing.T) {
	st := &mockPlanStore{
		updateOwned: func(_ context.Context, _, _ uuid.UUID, _ store.PlanUpdate) error {
			return store.ErrNotFound
		},
	}
	h := handlers.NewPlansHandler(st, testConfig())

	body := dto.SavePlanRequest{PlanID: uuid.New().String(), Title: "Test"}
	w := httptest.NewRecorder()
	h.SavePlan(w, authedRequest(t, http.MethodPost, "/api/save-plan", body, uuid.New(), "tester"))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlansHandler_SavePlan_UpdateOwned(t *testing.T) {
	planID := uuid.New()
	ownerID := uuid.New()
	var gotUpd store.PlanUpdate
	st := &mockPlanStore{
		updateOwned: func(_ context.Context, pid, oid uuid.UUID, upd store.PlanUpdate) error {
			assert.Equal(t, planID, pid)
			assert.Equal(t, ownerID, oid)
			gotUpd = upd
			return nil
		},
	}
	h := handlers.NewPlansHandler(st, testConfig())

	body := dto.SavePlanRequest{PlanID: planID.String(), Title: "Updated"}
	w := httptest.NewRecorder()
	h.SavePlan(w, authedRequest(t, http.MethodPost, "/api/save-plan", body, ownerID, "tester"))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[dto.SavePlanResponse](t, w)
	assert.Equal(t, "플랜이 수정되었습니다.", resp.Message)
	assert.Equal(t, planID.String(), resp.PlanID)
	assert.Equal(t, "Updated", gotUpd.Title)
	assert.False(t, gotUpd.SetShared)
}

func TestPlansHandler_SavePlan_InvalidNumberOfPeople(t *testing.T) {
	h := handlers.NewPlansHandler(&mockPlanStore{}, testConfig())

	zero := 0
	body := dto.SavePlanRequest{Title: "Test", NumberOfPeople: &zero}
	w := httptest.NewRecorder()
	h.SavePlan(w, authedRequest(t, http.MethodPost, "/api/save-plan", body, uuid.New(), "tester"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlansHandler_SavePlan_Unauthenticated(t *testing.T) {
	h := handlers.NewPlansHandler(&mockPlanStore{}, testConfig())

	r := httptest.NewRequest(http.MethodPost, "/api/save-plan", bytes.NewBufferString("{}"))
	w := httptest.NewRecorder()
	h.SavePlan(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlansHandler_SavePlan_MethodNotAllowed(t *testing.T) {
	h := handlers.NewPlansHandler(&mockPlanStore{}, testConfig())

	r := httptest.NewRequest(http.MethodGet, "/api/save-plan", nil)
	w := httptest.NewRecorder()
	h.SavePlan(w, r)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

// ---- SharePlan -------------------------------------------------------------

func TestPlansHandler_SharePlan_RequiresTitle(t *testing.T) {
	h := handlers.NewPlansHandler(&mockPlanStore{}, testConfig())

	w := httptest.NewRecorder()
	h.SharePlan(w, authedRequest(t, http.MethodPost, "/api/share-plan", dto.SavePlanRequest{}, uuid.New(), "tester"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlansHandler_SharePlan_CreatesShared(t *testing.T) {
	var created models.TravelPlan
	st := &mockPlanStore{
		create: func(_ context.Context, plan models.TravelPlan) error {
			created = plan
			return nil
		},
	}
	h := handlers.NewPlansHandler(st, testConfig())

	three := 3
	body := dto.SavePlanRequest{Title: "제주도 여행", Destination: "제주도", NumberOfPeople: &three}
	w := httptest.NewRecorder()
	h.SharePlan(w, authedRequest(t, http.MethodPost, "/api/share-plan", body, uuid.New(), "tester"))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[dto.SavePlanResponse](t, w)
	assert.Equal(t, "플랜이 공유되었습니다.", resp.Message)
	assert.True(t, created.IsShared)
	assert.Equal(t, "제주도", created.Destination)
	assert.Equal(t, 3, created.NumberOfPeople)
}

func TestPlansHandler_SharePlan_UpdateMarksShared(t *testing.T) {
	var gotUpd store.PlanUpdate
	st := &mockPlanStore{
		updateOwned: func(_ context.Context, _, _ uuid.UUID, upd store.PlanUpdate) error {
			gotUpd = upd
			return nil
		},
	}
	h := handlers.NewPlansHandler(st, testConfig())

	body := dto.SavePlanRequest{PlanID: uuid.New().String(), Title: "제주도 여행"}
	w := httptest.NewRecorder()
	h.SharePlan(w, authedRequest(t, http.MethodPost, "/api/share-plan", body, uuid.New(), "tester"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gotUpd.SetShared)
	require.NotNil(t, gotUpd.Destination)
	require.NotNil(t, gotUpd.NumberOfPeople)
	assert.Equal(t, 1, *gotUpd.NumberOfPeople)
}

// ---- LoadPlans -------------------------------------------------------------

func TestPlansHandler_LoadPlans(t *testing.T) {
	userID := uuid.New()
	st := &mockPlanStore{
		listByOwner: func(_ context.Context, ownerID uuid.UUID) ([]models.TravelPlan, error) {
			assert.Equal(t, userID, ownerID)
			return []models.TravelPlan{
				{ID: uuid.New(), UserID: userID, Title: "플랜 A", NumberOfPeople: 2},
			}, nil
		},
	}
	h := handlers.NewPlansHandler(st, testConfig())

	w := httptest.NewRecorder()
	h.LoadPlans(w, authedRequest(t, http.MethodGet, "/api/load-plan", nil, userID, "tester"))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[dto.LoadPlansResponse](t, w)
	assert.Equal(t, "Plans loaded successfully", resp.Message)
	require.Len(t, resp.Plans, 1)
	assert.Equal(t, "플랜 A", resp.Plans[0].Title)
}

func TestPlansHandler_LoadPlans_Empty(t *testing.T) {
	st := &mockPlanStore{
		listByOwner: func(_ context.Context, _ uuid.UUID) ([]models.TravelPlan, error) {
			return nil, nil
		},
	}
	h := handlers.NewPlansHandler(st, testConfig())

	w := httptest.NewRecorder()
	h.LoadPlans(w, authedRequest(t, http.MethodGet, "/api/load-plan", nil, uuid.New(), "tester"))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[dto.LoadPlansResponse](t, w)
	assert.Equal(t, "No plans found", resp.Message)
	assert.Empty(t, resp.Plans)
}

// ---- DeletePlan ------------------------------------------------------------

func TestPlansHandler_DeletePlan_NonOwner(t *testing.T) {
	st := &mockPlanStore{
		deleteOwned: func(_ context.Context, _, _ uuid.UUID) error {
			// Ownership miss surfaces as not-found, same as a missing plan.
			return store.ErrNotFound
		},
	}
	h := handlers.NewPlansHandler(st, testConfig())

	target := "/api/delete-plan?planId=" + uuid.New().String()
	w := httptest.NewRecorder()
	h.DeletePlan(w, authedRequest(t, http.MethodDelete, target, nil, uuid.New(), "tester"))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlansHandler_DeletePlan_Owner(t *testing.T) {
	planID := uuid.New()
	ownerID := uuid.New()
	st := &mockPlanStore{
		deleteOwned: func(_ context.Context, pid, oid uuid.UUID) error {
			assert.Equal(t, planID, pid)
			assert.Equal(t, ownerID, oid)
			return nil
		},
	}
	h := handlers.NewPlansHandler(st, testConfig())

	target := "/api/delete-plan?planId=" + planID.String()
	w := httptest.NewRecorder()
	h.DeletePlan(w, authedRequest(t, http.MethodDelete, target, nil, ownerID, "tester"))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[dto.MessageResponse](t, w)
	assert.Equal(t, "Plan deleted successfully", resp.Message)
}

func TestPlansHandler_DeletePlan_InvalidID(t *testing.T) {
	h := handlers.NewPlansHandler(&mockPlanStore{}, testConfig())

	w := httptest.NewRecorder()
	h.DeletePlan(w, authedRequest(t, http.MethodDelete, "/api/delete-plan?planId=not-a-uuid", nil, uuid.New(), "tester"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ---- CopyPlan --------------------------------------------------------------

func TestPlansHandler_CopyPlan(t *testing.T) {
	source := models.TravelPlan{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		Title:          "부산 여행",
		Destination:    "부산",
		NumberOfPeople: 2,
		IsShared:       true,
		Likes:          7,
		Views:          42,
		LikedBy:        []string{"someone"},
		Days:           []models.Day{{Order: 1, Title: "Day 1"}},
	}

	var created models.TravelPlan
	st := &mockPlanStore{
		getByID: func(_ context.Context, planID uuid.UUID) (models.TravelPlan, error) {
			assert.Equal(t, source.ID, planID)
			return source, nil
		},
		create: func(_ context.Context, plan models.TravelPlan) error {
			created = plan
			return nil
		},
	}
	h := handlers.NewPlansHandler(st, testConfig())

	callerID := uuid.New()
	body := dto.CopyPlanRequest{PlanID: source.ID.String()}
	w := httptest.NewRecorder()
	h.CopyPlan(w, authedRequest(t, http.MethodPost, "/api/copy-plan", body, callerID, "copier"))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[dto.SavePlanResponse](t, w)
	assert.Equal(t, "플랜이 성공적으로 복사되었습니다.", resp.Message)

	assert.Equal(t, "부산 여행 (복사본)", created.Title)
	assert.Equal(t, callerID, created.UserID)
	assert.False(t, created.IsShared)
	assert.Equal(t, 0, created.Likes)
	assert.Equal(t, 0, created.Views)
	assert.Empty(t, created.LikedBy)
	assert.Equal(t, source.Days, created.Days)
}

func TestPlansHandler_CopyPlan_NotFound(t *testing.T) {
	st := &mockPlanStore{
		getByID: func(_ context.Context, _ uuid.UUID) (models.TravelPlan, error) {
			return models.TravelPlan{}, store.ErrNotFound
		},
	}
	h := handlers.NewPlansHandler(st, testConfig())

	body := dto.CopyPlanRequest{PlanID: uuid.New().String()}
	w := httptest.NewRecorder()
	h.CopyPlan(w, authedRequest(t, http.MethodPost, "/api/copy-plan", body, uuid.New(), "copier"))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
