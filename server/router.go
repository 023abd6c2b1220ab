package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// WeatherRoutes is the set of handlers served by the router.
type WeatherRoutes interface {
	Ping(w http.ResponseWriter, r *http.Request)
	Search(w http.ResponseWriter, r *http.Request)
	Recent(w http.ResponseWriter, r *http.Request)
	Chart(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	weatherHandler WeatherRoutes
	router         *mux.Router
}

// NewRouter creates a router with the app's routes.
func NewRouter(
	weatherHandler WeatherRoutes,
	router *mux.Router) *Router {
	return &Router{
		weatherHandler: weatherHandler,
		router:         router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.HandleFunc("/ping", r.weatherHandler.Ping).Methods("GET")

	// expects ?q={query}&units={metric|imperial}
	r.router.HandleFunc("/v1/search", r.weatherHandler.Search).Methods("GET")
	r.router.HandleFunc("/v1/recent", r.weatherHandler.Recent).Methods("GET")
	r.router.HandleFunc("/v1/chart", r.weatherHandler.Chart).Methods("GET")
}
