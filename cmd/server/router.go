package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pvaldez/cadence-api/internal/api"
	apiMiddleware "github.com/pvaldez/cadence-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService)
	projectHandler := api.NewProjectHandler(app.projectService)
	sprintHandler := api.NewSprintHandler(app.sprintService)
	taskHandler := api.NewTaskHandler(app.taskService)
	financeHandler := api.NewFinanceHandler(app.financeService)
	riskHandler := api.NewRiskHandler(app.riskService)
	goalHandler := api.NewGoalHandler(app.goalService)
	feedbackHandler := api.NewFeedbackHandler(app.feedbackService)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// User profile endpoints
			r.Get("/users/{userID}", authHandler.GetProfile)
			r.Put("/users/{userID}", authHandler.UpdateProfile)

			// Project endpoints
			r.Post("/projects", projectHandler.CreateProject)
			r.Get("/projects", projectHandler.ListProjects)
			r.Get("/projects/dashboard", projectHandler.GetDashboard)
			r.Get("/projects/{projectID}", projectHandler.GetProject)
			r.Put("/projects/{projectID}/status", projectHandler.ChangeStatus)
			r.Post("/projects/{projectID}/team", projectHandler.AddTeamMember)
			r.Get("/projects/{projectID}/metrics", projectHandler.GetMetrics)
			r.Get("/projects/{projectID}/sprints", sprintHandler.ListProjectSprints)
			r.Get("/projects/{projectID}/tasks", taskHandler.ListProjectTasks)
			r.Get("/projects/{projectID}/transactions", financeHandler.ListProjectTransactions)
			r.Get("/projects/{projectID}/risks", riskHandler.ListProjectRisks)

			// Sprint endpoints
			r.Post("/sprints", sprintHandler.CreateSprint)
			r.Get("/sprints/{sprintID}", sprintHandler.GetSprint)
			r.Post("/sprints/{sprintID}/activate", sprintHandler.ActivateSprint)
			r.Post("/sprints/{sprintID}/complete", sprintHandler.CompleteSprint)
			r.Post("/sprints/{sprintID}/commit", sprintHandler.CommitStoryPoints)
			r.Put("/sprints/{sprintID}/retrospective", sprintHandler.SetRetrospectiveNotes)
			r.Get("/sprints/{sprintID}/metrics", sprintHandler.GetMetrics)

			// Task and time tracking endpoints
			r.Post("/tasks", taskHandler.CreateTask)
			r.Get("/tasks/{taskID}", taskHandler.GetTask)
			r.Put("/tasks/{taskID}/status", taskHandler.UpdateStatus)
			r.Post("/tasks/{taskID}/dependencies", taskHandler.AddDependency)
			r.Post("/tasks/{taskID}/subtasks", taskHandler.AddSubtask)
			r.Put("/tasks/{taskID}/sprint", taskHandler.AssignToSprint)
			r.Post("/tasks/{taskID}/time", taskHandler.LogTime)
			r.Delete("/tasks/{taskID}", taskHandler.DeleteTask)
			r.Delete("/time-entries/{entryID}", taskHandler.DeleteTimeEntry)

			// Finance endpoints
			r.Post("/transactions", financeHandler.CreateTransaction)
			r.Delete("/transactions/{transactionID}", financeHandler.DeleteTransaction)
			r.Post("/invoices", financeHandler.CreateInvoice)
			r.Put("/invoices/{invoiceID}/amounts", financeHandler.UpdateInvoiceAmounts)
			r.Post("/invoices/{invoiceID}/pay", financeHandler.MarkInvoicePaid)
			r.Get("/finance/ideal-hourly-rate", financeHandler.GetIdealHourlyRate)
			r.Get("/finance/individual-salary", financeHandler.GetIndividualSalary)

			// Risk endpoints
			r.Post("/risks", riskHandler.CreateRisk)
			r.Get("/risks/{riskID}", riskHandler.GetRisk)
			r.Put("/risks/{riskID}/assessment", riskHandler.ReassessRisk)
			r.Put("/risks/{riskID}/status", riskHandler.ChangeStatus)
			r.Put("/risks/{riskID}/responsible", riskHandler.AssignResponsible)
			r.Post("/risks/{riskID}/comments", riskHandler.AddComment)

			// Goal endpoints
			r.Post("/goals", goalHandler.CreateGoal)
			r.Get("/goals", goalHandler.ListGoals)
			r.Get("/goals/{goalID}", goalHandler.GetGoal)
			r.Put("/goals/{goalID}/progress", goalHandler.UpdateProgress)

			// Feedback endpoints
			r.Post("/feedback", feedbackHandler.GiveFeedback)
			r.Get("/feedback", feedbackHandler.ListReceivedFeedback)
			r.Delete("/feedback/{feedbackID}", feedbackHandler.DeleteFeedback)
		})
	})

	// Health check endpoint
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := app.db.PingContext(r.Context()); err != nil {
			app.logger.Error("health check database ping failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
