// Package store contains all database access for travel plans and users.
// Handlers depend on the interfaces here, not the Postgres implementations,
// so they can be unit-tested with hand-written mocks.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"TRIPMOA_BACK-END/internal/models"
)

// ErrNotFound is returned when a plan does not exist or, for owner-scoped
// operations, is not owned by the caller. The two cases are deliberately
// indistinguishable so an update can never leak or create someone else's plan.
var ErrNotFound = errors.New("plan not found")

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SharedQuery describes a page of the public plan listing.
type SharedQuery struct {
	Search string // case-insensitive substring match on title or destination
	Sort   string // recent | likes | views
	Limit  int
	Offset int
}

// PlanUpdate carries the fields an owner may change on an existing plan.
// Nil pointer fields are left unchanged; social counters are never touched.
type PlanUpdate struct {
	Title          string
	Days           []models.Day
	Destination    *string
	NumberOfPeople *int
	SetShared      bool // mark the plan publicly shared
}

// PlanStore defines the persistence operations for travel plans.
type PlanStore interface {
	// Create inserts a new plan document with the ID already set by the caller.
	Create(ctx context.Context, plan models.TravelPlan) error

	// UpdateOwned updates a plan only if ownerID owns it.
	// Returns ErrNotFound when the plan is missing or owned by someone else.
	UpdateOwned(ctx context.Context, planID, ownerID uuid.UUID, upd PlanUpdate) error

	// GetByID retrieves a single plan. Returns ErrNotFound if it does not exist.
	GetByID(ctx context.Context, planID uuid.UUID) (models.TravelPlan, error)

	// ListByOwner returns all plans of one owner, updated_at descending.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.TravelPlan, error)

	// ListShared returns one page of shared plans plus the total match count.
	// Ties on the sort key are broken by created_at descending.
	ListShared(ctx context.Context, q SharedQuery) ([]models.TravelPlan, int, error)

	// ListSharedByOwner returns the owner's other shared plans, excluding one.
	ListSharedByOwner(ctx context.Context, ownerID, excludeID uuid.UUID) ([]models.TravelPlan, error)

	// ListSharedOthers returns up to limit shared plans from other owners.
	ListSharedOthers(ctx context.Context, ownerID uuid.UUID, limit int) ([]models.TravelPlan, error)

	// ToggleLike flips userID's membership in the liker set and adjusts the
	// counter in the same atomic statement. Returns the new state.
	ToggleLike(ctx context.Context, planID uuid.UUID, userID string) (liked bool, likes int, err error)

	// IncrementViews bumps the stored view counter by one.
	IncrementViews(ctx context.Context, planID uuid.UUID) error

	// DeleteOwned removes a plan only if ownerID owns it.
	// Returns ErrNotFound when the plan is missing or owned by someone else.
	DeleteOwned(ctx context.Context, planID, ownerID uuid.UUID) error
}

// UserStore defines the persistence operations for user accounts.
type UserStore interface {
	// Create inserts a new user with the ID already set by the caller.
	Create(ctx context.Context, user models.User) error

	// GetByEmail retrieves a user by email. Returns ErrNotFound if absent.
	GetByEmail(ctx context.Context, email string) (models.User, error)

	// GetByID retrieves a user by id. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
}
