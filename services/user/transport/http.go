package transport

import (
	"net/http"

	"spark/services/user/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(userHandler *handler.UserHandler, preferenceHandler *handler.PreferenceHandler) http.Handler {
	mux := chi.NewRouter()

	mux.Use(middleware.Recoverer)

	// CORS 설정
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	mux.Get("/find/list", userHandler.FindUserList)
	mux.Get("/find/{id}", userHandler.FindUserByID)
	mux.Get("/find", userHandler.FindUser)

	mux.Post("/register", userHandler.RegisterUser)

	mux.Patch("/update", userHandler.UpdateUser)

	mux.Delete("/delete", userHandler.DeleteUser)

	mux.Get("/preferences", preferenceHandler.GetPreferences)
	mux.Patch("/preferences", preferenceHandler.UpdatePreferences)

	return mux
}
