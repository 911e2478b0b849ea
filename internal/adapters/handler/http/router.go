package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(authHandler *AuthHandler, userHandler *UserHandler, authMiddleware *AuthMiddleware) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"message": "Server is working..."})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/signup", authHandler.SignUp)
		r.Post("/signin", authHandler.SignIn)
		r.Post("/signout", authHandler.SignOut)
		r.Post("/forgot-password", authHandler.ForgotPassword)

		r.Route("/users", func(r chi.Router) {
			r.Use(authMiddleware.VerifyAuthToken)
			r.Get("/", userHandler.GetAll)
			r.Get("/{id}", userHandler.GetByID)
			r.Patch("/{id}", userHandler.UpdateByID)
			r.Delete("/{id}", userHandler.DeleteByID)
		})
	})

	return r
}
