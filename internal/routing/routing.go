package routing

import (
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ziggoon/tinyDEM/internal/config"
	"github.com/ziggoon/tinyDEM/pkg/handlers"
	"github.com/ziggoon/tinyDEM/pkg/middleware"
	"github.com/ziggoon/tinyDEM/pkg/password"
	"github.com/ziggoon/tinyDEM/pkg/render"
	"github.com/ziggoon/tinyDEM/pkg/session"
	"github.com/ziggoon/tinyDEM/pkg/user"
)

func InitRoutes(r *mux.Router, db *sql.DB, renderer *render.Renderer, hasher *password.Hasher, logger *slog.Logger) {

	userRepo := user.NewSQLRepo(db)
	sessionRepo := session.NewSQLRepo(db)

	userService := user.NewService(userRepo, sessionRepo, hasher)
	userHandler := handlers.NewUserHandler(userService, renderer, logger, config.CookieSecure())
	pageHandler := handlers.NewPageHandler(renderer, logger)

	/* -+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+ */

	/* public routes */
	r.HandleFunc("/home", pageHandler.Home).Methods("GET")
	r.HandleFunc("/register", userHandler.RegisterPage).Methods("GET")
	r.HandleFunc("/register", userHandler.Register).Methods("POST")
	r.HandleFunc("/login", userHandler.LoginPage).Methods("GET")
	r.HandleFunc("/login", userHandler.Login).Methods("POST")
	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/home", http.StatusFound)
	}).Methods("GET")

	/* protected routes, all behind the access guard */
	protected := r.PathPrefix("/").Subrouter()
	protected.Use(middleware.Auth(sessionRepo, userRepo, logger))
	protected.HandleFunc("/dashboard", pageHandler.Dashboard).Methods("GET")
	protected.HandleFunc("/charts", pageHandler.Charts).Methods("GET")
	protected.HandleFunc("/forms", pageHandler.Forms).Methods("GET")
	protected.HandleFunc("/tables", pageHandler.Tables).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(pageHandler.NotFound)
}

func ServeStaticFiles(r *mux.Router, staticDir string) {
	fs := http.FileServer(http.Dir(staticDir))
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", fs))
}

func StartServer(r *mux.Router, addr string) {
	fmt.Printf("\nThe server is running on http://%s\n", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("Server failed:", err)
	}
}
