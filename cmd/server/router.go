package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tailorent/tailorent-api/internal/api"
	apiMiddleware "github.com/tailorent/tailorent-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.verificationService)
	profileHandler := api.NewProfileHandler(app.userService, app.bookingService)
	bookingHandler := api.NewBookingHandler(app.bookingService)
	catalogHandler := api.NewCatalogHandler(app.catalogService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)
		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/verify-email/{token}", authHandler.VerifyEmail)
		r.Post("/auth/request-otp", authHandler.RequestOTP)
		r.Post("/auth/verify-otp", authHandler.VerifyOTP)

		// Public catalog endpoints
		r.Get("/professionals", profileHandler.ListProfessionals)
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{id}", catalogHandler.GetProduct)
		r.Get("/services", catalogHandler.ListServices)
		r.Get("/services/{id}", catalogHandler.GetService)
		r.Get("/style-feed", catalogHandler.ListPosts)
		r.Get("/style-feed/{id}", catalogHandler.GetPost)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Profile endpoints
			r.Get("/profile", profileHandler.GetProfile)
			r.Patch("/profile", profileHandler.UpdateProfile)
			r.Delete("/profile", profileHandler.DeleteAccount)
			r.Post("/profile/change-password", profileHandler.ChangePassword)
			r.Get("/profile/dashboard", profileHandler.Dashboard)

			// Booking endpoints
			r.Post("/bookings", bookingHandler.CreateBooking)
			r.Get("/bookings", bookingHandler.ListBookings)
			r.Get("/bookings/{id}", bookingHandler.GetBooking)
			r.Put("/bookings/{id}", bookingHandler.UpdateBooking)
			r.Delete("/bookings/{id}", bookingHandler.DeleteBooking)
			r.Post("/bookings/{id}/decide", bookingHandler.DecideBooking)

			// Vendor product endpoints
			r.Post("/products", catalogHandler.CreateProduct)
			r.Get("/products/mine", catalogHandler.ListMyProducts)
			r.Put("/products/{id}", catalogHandler.UpdateProduct)
			r.Delete("/products/{id}", catalogHandler.DeleteProduct)

			// Professional service endpoints
			r.Post("/services", catalogHandler.CreateService)
			r.Get("/services/mine", catalogHandler.ListMyServices)
			r.Put("/services/{id}", catalogHandler.UpdateService)
			r.Delete("/services/{id}", catalogHandler.DeleteService)

			// Style feed endpoints
			r.Post("/style-feed", catalogHandler.CreatePost)
			r.Put("/style-feed/{id}", catalogHandler.UpdatePost)
			r.Delete("/style-feed/{id}", catalogHandler.DeletePost)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
