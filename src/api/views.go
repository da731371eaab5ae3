package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	handlers "assethub/src/api/handlers"
	"assethub/src/auth"
	"assethub/src/config"
	"assethub/src/repositories"
	redis_utils "assethub/src/utils/redis"
)

type Server struct {
	Router    *chi.Mux
	Handler   handlers.Handler
	tokenAuth *jwtauth.JWTAuth
	users     repositories.UserRepository
}

func NewServer(cfg *config.Config, db *gorm.DB, logger *logrus.Logger) (*Server, error) {
	var redisHandler *redis_utils.RedisHandler
	if cfg.Databases.Redis.Enabled {
		handler, err := redis_utils.NewRedisHandler(cfg)
		if err != nil {
			return nil, err
		}
		redisHandler = handler
	}

	server := &Server{
		Router:    chi.NewRouter(),
		Handler:   *handlers.NewHandler(db, redisHandler, logger),
		tokenAuth: auth.TokenAuth(cfg.Auth.JWTSecret),
		users:     repositories.NewUserRepository(db),
	}
	server.InitRoutes()
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(s.tokenAuth))
		r.Use(auth.Authenticator(s.users))

		r.Route("/api/assets", func(r chi.Router) {
			r.Get("/", s.Handler.ListAssets)
			r.Get("/{id}", s.Handler.GetAssetByID)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				r.Post("/", s.Handler.CreateAsset)
				r.Put("/{id}", s.Handler.UpdateAsset)
				r.Delete("/{id}", s.Handler.DeleteAsset)
				r.Get("/export/xlsx", s.Handler.ExportAssetsXLSX)
				r.Get("/export/csv", s.Handler.ExportAssetsCSV)
			})
		})

		r.Route("/api/assignments", func(r chi.Router) {
			r.Get("/me", s.Handler.MyAssignments)
			r.Put("/{id}/respond", s.Handler.RespondToAssignment)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				r.Get("/", s.Handler.ListAssignments)
				r.Get("/{id}", s.Handler.GetAssignmentByID)
				r.Post("/", s.Handler.CreateAssignment)
				r.Put("/{id}", s.Handler.UpdateAssignment)
				r.Delete("/{id}", s.Handler.DeleteAssignment)
			})
		})

		r.Route("/api/returning-requests", func(r chi.Router) {
			r.Post("/", s.Handler.CreateReturningRequest)
			r.Delete("/{id}", s.Handler.CancelReturningRequest)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				r.Get("/", s.Handler.ListReturningRequests)
				r.Put("/{id}/complete", s.Handler.CompleteReturningRequest)
			})
		})

		r.Get("/api/locations", s.Handler.ListLocations)
		r.Get("/api/categories", s.Handler.ListCategories)

		r.Route("/api/reports", func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Get("/", s.Handler.GetReport)
			r.Get("/page", s.Handler.GetReportPage)
			r.Get("/export/xlsx", s.Handler.ExportReportXLSX)
			r.Get("/export/csv", s.Handler.ExportReportCSV)
		})
	})
}

func NewHTTPServer(cfg *config.Config, server *Server) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + cfg.Service.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
	return httpServer
}
