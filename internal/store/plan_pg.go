package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"TRIPMOA_BACK-END/internal/models"
)

// planColumns is the shared SELECT list; keep scanPlanRow in sync with it.
const planColumns = `id, user_id, title, creator, destination, number_of_people,
       is_shared, likes, views, liked_by, days, created_at, updated_at`

// pgPlanStore is the Postgres implementation of PlanStore.
// The day/activity tree is stored as a JSONB document column and the liker
// set as a TEXT[] column, so one row is the whole plan document.
type pgPlanStore struct {
	db db
}

// NewPlanStore constructs a PlanStore backed by the provided db connection.
func NewPlanStore(db db) PlanStore {
	return &pgPlanStore{db: db}
}

func (s *pgPlanStore) Create(ctx context.Context, plan models.TravelPlan) error {
	daysJSON, err := json.Marshal(plan.Days)
	if err != nil {
		return fmt.Errorf("store.PlanStore.Create: marshal days: %w", err)
	}

	likedBy := plan.LikedBy
	if likedBy == nil {
		likedBy = []string{}
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO travel_plans (id, user_id, title, creator, destination, number_of_people,
		        is_shared, likes, views, liked_by, days, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		plan.ID, plan.UserID, plan.Title, plan.Creator, plan.Destination, plan.NumberOfPeople,
		plan.IsShared, plan.Likes, plan.Views, likedBy, daysJSON, plan.CreatedAt, plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("store.PlanStore.Create: %w", err)
	}
	return nil
}

func (s *pgPlanStore) UpdateOwned(ctx context.Context, planID, ownerID uuid.UUID, upd PlanUpdate) error {
	daysJSON, err := json.Marshal(upd.Days)
	if err != nil {
		return fmt.Errorf("store.PlanStore.UpdateOwned: marshal days: %w", err)
	}

	// Ownership is enforced in the WHERE clause: a missing or foreign plan
	// affects zero rows and is reported as ErrNotFound, never upserted.
	tag, err := s.db.Exec(ctx,
		`UPDATE travel_plans
		    SET title = $3,
		        days = $4,
		        destination = COALESCE($5, destination),
		        number_of_people = COALESCE($6, number_of_people),
		        is_shared = (is_shared OR $7),
		        updated_at = $8
		  WHERE id = $1 AND user_id = $2`,
		planID, ownerID, upd.Title, daysJSON, upd.Destination, upd.NumberOfPeople, upd.SetShared, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("store.PlanStore.UpdateOwned: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgPlanStore) GetByID(ctx context.Context, planID uuid.UUID) (models.TravelPlan, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+planColumns+` FROM travel_plans WHERE id = $1`, planID)

	plan, err := scanPlanRow(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.TravelPlan{}, ErrNotFound
		}
		return models.TravelPlan{}, fmt.Errorf("store.PlanStore.GetByID: %w", err)
	}
	return plan, nil
}

func (s *pgPlanStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.TravelPlan, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+planColumns+` FROM travel_plans
		  WHERE user_id = $1
		  ORDER BY updated_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("store.PlanStore.ListByOwner: %w", err)
	}
	defer rows.Close()

	return collectPlans(rows)
}

// likePatternEscaper makes user input match literally inside an ILIKE
// pattern. % and _ are pattern metacharacters; \ is the escape character.
var likePatternEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *pgPlanStore) ListShared(ctx context.Context, q SharedQuery) ([]models.TravelPlan, int, error) {
	orderBy := "created_at DESC"
	switch q.Sort {
	case "likes":
		orderBy = "likes DESC, created_at DESC"
	case "views":
		orderBy = "views DESC, created_at DESC"
	}

	search := likePatternEscaper.Replace(q.Search)

	var total int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(1) FROM travel_plans
		  WHERE is_shared = TRUE
		    AND ($1 = '' OR title ILIKE '%' || $1 || '%' OR destination ILIKE '%' || $1 || '%')`,
		search).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("store.PlanStore.ListShared: count: %w", err)
	}

	rows, err := s.db.Query(ctx,
		`SELECT `+planColumns+` FROM travel_plans
		  WHERE is_shared = TRUE
		    AND ($1 = '' OR title ILIKE '%' || $1 || '%' OR destination ILIKE '%' || $1 || '%')
		  ORDER BY `+orderBy+`
		  LIMIT $2 OFFSET $3`,
		search, q.Limit, q.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("store.PlanStore.ListShared: %w", err)
	}
	defer rows.Close()

	plans, err := collectPlans(rows)
	if err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}

func (s *pgPlanStore) ListSharedByOwner(ctx context.Context, ownerID, excludeID uuid.UUID) ([]models.TravelPlan, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+planColumns+` FROM travel_plans
		  WHERE user_id = $1 AND id <> $2 AND is_shared = TRUE
		  ORDER BY created_at DESC`, ownerID, excludeID)
	if err != nil {
		return nil, fmt.Errorf("store.PlanStore.ListSharedByOwner: %w", err)
	}
	defer rows.Close()

	return collectPlans(rows)
}

func (s *pgPlanStore) ListSharedOthers(ctx context.Context, ownerID uuid.UUID, limit int) ([]models.TravelPlan, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+planColumns+` FROM travel_plans
		  WHERE user_id <> $1 AND is_shared = TRUE
		  ORDER BY created_at DESC
		  LIMIT $2`, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("store.PlanStore.ListSharedOthers: %w", err)
	}
	defer rows.Close()

	return collectPlans(rows)
}

func (s *pgPlanStore) ToggleLike(ctx context.Context, planID uuid.UUID, userID string) (bool, int, error) {
	// One statement flips membership and recomputes the counter from the
	// array under the same row lock, so the counter cannot drift from the
	// liker set or be decremented past zero by concurrent toggles.
	var liked bool
	var likes int
	err := s.db.QueryRow(ctx,
		`UPDATE travel_plans
		    SET liked_by = CASE WHEN $2 = ANY(liked_by)
		                        THEN array_remove(liked_by, $2)
		                        ELSE array_append(liked_by, $2) END,
		        likes = CASE WHEN $2 = ANY(liked_by)
		                     THEN cardinality(liked_by) - 1
		                     ELSE cardinality(liked_by) + 1 END,
		        updated_at = now()
		  WHERE id = $1
		  RETURNING $2 = ANY(liked_by), likes`,
		planID, userID).Scan(&liked, &likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, 0, ErrNotFound
		}
		return false, 0, fmt.Errorf("store.PlanStore.ToggleLike: %w", err)
	}
	return liked, likes, nil
}

func (s *pgPlanStore) IncrementViews(ctx context.Context, planID uuid.UUID) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE travel_plans SET views = views + 1, updated_at = now() WHERE id = $1`, planID)
	if err != nil {
		return fmt.Errorf("store.PlanStore.IncrementViews: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgPlanStore) DeleteOwned(ctx context.Context, planID, ownerID uuid.UUID) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM travel_plans WHERE id = $1 AND user_id = $2`, planID, ownerID)
	if err != nil {
		return fmt.Errorf("store.PlanStore.DeleteOwned: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// scanPlanRow scans one row in planColumns order.
func scanPlanRow(scan func(dest ...any) error) (models.TravelPlan, error) {
	var p models.TravelPlan
	var daysJSON []byte
	err := scan(&p.ID, &p.UserID, &p.Title, &p.Creator, &p.Destination, &p.NumberOfPeople,
		&p.IsShared, &p.Likes, &p.Views, &p.LikedBy, &daysJSON, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.TravelPlan{}, err
	}
	if err := json.Unmarshal(daysJSON, &p.Days); err != nil {
		return models.TravelPlan{}, fmt.Errorf("unmarshal days: %w", err)
	}
	return p, nil
}

func collectPlans(rows pgx.Rows) ([]models.TravelPlan, error) {
	plans := make([]models.TravelPlan, 0)
	for rows.Next() {
		p, err := scanPlanRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("store: scan plan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate plans: %w", err)
	}
	return plans, nil
}
