package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"TRIPMOA_BACK-END/internal/config"
	"TRIPMOA_BACK-END/internal/handlers"
	"TRIPMOA_BACK-END/internal/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	googleAuthHandler *handlers.GoogleAuthHandler,
	plansHandler *handlers.PlansHandler,
	exploreHandler *handlers.ExploreHandler,
	healthHandler *handlers.HealthHandler,
) {
	jwtCfg := &cfg.JWT

	// Health check routes
	http.HandleFunc("/healthz", healthHandler.HealthCheck)
	http.HandleFunc("/livez", healthHandler.LivenessCheck)
	http.HandleFunc("/readyz", healthHandler.ReadinessCheck)

	// Authentication routes
	http.HandleFunc("/api/auth/register", authHandler.Register)
	http.HandleFunc("/api/auth/login", authHandler.Login)
	http.HandleFunc("/api/auth/profile", middleware.AuthMiddleware(authHandler.GetProfile, jwtCfg))
	http.HandleFunc("/api/auth/google/login", googleAuthHandler.GoogleLogin)
	http.HandleFunc("/api/auth/google/callback", googleAuthHandler.GoogleCallback)

	// Plan routes (owner-facing, authenticated)
	http.HandleFunc("/api/save-plan", middleware.AuthMiddleware(plansHandler.SavePlan, jwtCfg))
	http.HandleFunc("/api/share-plan", middleware.AuthMiddleware(plansHandler.SharePlan, jwtCfg))
	http.HandleFunc("/api/load-plan", middleware.AuthMiddleware(plansHandler.LoadPlans, jwtCfg))
	http.HandleFunc("/api/delete-plan", middleware.AuthMiddleware(plansHandler.DeletePlan, jwtCfg))
	http.HandleFunc("/api/copy-plan", middleware.AuthMiddleware(plansHandler.CopyPlan, jwtCfg))
	http.HandleFunc("/api/like-plan", middleware.AuthMiddleware(exploreHandler.LikePlan, jwtCfg))

	// Discovery routes (public; user context populated when a token is sent)
	http.HandleFunc("/api/get-shared-plans", middleware.OptionalAuthMiddleware(exploreHandler.GetSharedPlans, jwtCfg))
	http.HandleFunc("/api/get-plan-detail", middleware.OptionalAuthMiddleware(exploreHandler.GetPlanDetail, jwtCfg))

	// Swagger documentation
	http.Handle("/swagger/", httpSwagger.WrapHandler)

	// Root route
	http.HandleFunc("/", rootHandler)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Tripmoa backend is running."))
}
