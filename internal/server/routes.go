package server

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/ledgerfolio/internal/modules/accounts"
	"github.com/aristath/ledgerfolio/internal/modules/goals"
	"github.com/aristath/ledgerfolio/internal/modules/importer"
	"github.com/aristath/ledgerfolio/internal/modules/portfolio"
	"github.com/aristath/ledgerfolio/internal/modules/snapshots"
)

// setupRoutes wires repositories, services and handlers per module and
// mounts the API routes.
func (s *Server) setupRoutes(log zerolog.Logger) {
	// Health check
	s.router.Get("/health", s.handleHealth)

	// Repositories
	positionRepo := portfolio.NewPositionRepository(s.db.Conn(), log)
	accountRepo := accounts.NewRepository(s.db.Conn(), log)
	goalRepo := goals.NewRepository(s.db.Conn(), log)
	snapshotRepo := snapshots.NewRepository(s.db.Conn(), log)

	// Services
	portfolioService := portfolio.NewService(positionRepo, log)
	goalService := goals.NewService(goalRepo, positionRepo, log)
	snapshotService := snapshots.NewService(positionRepo, snapshotRepo, log)
	csvImporter := importer.NewImporter(positionRepo, accountRepo, log)

	// Handlers
	portfolioHandler := portfolio.NewHandler(portfolioService, log)
	goalHandler := goals.NewHandler(goalService, log)
	accountHandler := accounts.NewHandler(accountRepo, log)
	snapshotHandler := snapshots.NewHandler(snapshotService, log)
	importHandler := importer.NewHandler(csvImporter, log)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.handleSystemStatus)
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/breakdown", portfolioHandler.HandleGetBreakdown)
		})

		r.Route("/positions", func(r chi.Router) {
			r.Get("/", portfolioHandler.HandleListPositions)
			r.Post("/", portfolioHandler.HandleCreatePosition)
			r.Post("/bulk-delete", portfolioHandler.HandleBulkDeletePositions)
			r.Put("/{id}", portfolioHandler.HandleUpdatePosition)
			r.Delete("/{id}", portfolioHandler.HandleDeletePosition)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", goalHandler.HandleListGoals)
			r.Post("/", goalHandler.HandleCreateGoal)
			r.Get("/progress", goalHandler.HandleGetProgress)
			r.Put("/{id}", goalHandler.HandleUpdateGoal)
			r.Delete("/{id}", goalHandler.HandleDeleteGoal)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", accountHandler.HandleListAccounts)
			r.Post("/", accountHandler.HandleCreateAccount)
			r.Delete("/{id}", accountHandler.HandleDeleteAccount)
		})

		r.Post("/import", importHandler.HandleImport)

		r.Route("/snapshots", func(r chi.Router) {
			r.Get("/", snapshotHandler.HandleGetHistory)
			r.Post("/record", snapshotHandler.HandleRecord)
		})
	})
}
