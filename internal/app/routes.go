package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Events
	r.HandleFunc("/api/calendar/event", deps.EventHandler.GetEvents).Methods("GET")
	r.HandleFunc("/api/calendar/event", deps.EventHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/calendar/event/{eventId}", deps.EventHandler.GetEvent).Methods("GET")
	r.HandleFunc("/api/calendar/event/{eventId}", deps.EventHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/calendar/event/{eventId}", deps.EventHandler.DeleteEvent).Methods("DELETE")

	// Views
	r.HandleFunc("/api/calendar/view", deps.ViewHandler.GetView).Methods("GET")

	// Stats
	r.HandleFunc("/api/calendar/stats", deps.StatsHandler.GetStats).Methods("GET")
	r.HandleFunc("/api/calendar/upcoming", deps.StatsHandler.GetUpcoming).Methods("GET")

	// Export
	r.HandleFunc("/api/calendar/export.ics", deps.IcsHandler.GetExport).Methods("GET")

	// Session
	r.HandleFunc("/api/session", deps.SessionHandler.GetState).Methods("GET")
	r.HandleFunc("/api/session/view", deps.SessionHandler.UpdateView).Methods("PUT")
	r.HandleFunc("/api/session/projection", deps.SessionHandler.GetProjection).Methods("GET")
	r.HandleFunc("/api/session/dialog/create", deps.SessionHandler.StartCreate).Methods("POST")
	r.HandleFunc("/api/session/dialog/edit/{eventId}", deps.SessionHandler.StartEdit).Methods("POST")
	r.HandleFunc("/api/session/dialog/draft", deps.SessionHandler.UpdateDialog).Methods("PUT")
	r.HandleFunc("/api/session/dialog/confirm", deps.SessionHandler.Confirm).Methods("POST")
	r.HandleFunc("/api/session/dialog/cancel", deps.SessionHandler.Cancel).Methods("POST")
	r.HandleFunc("/api/session/detail/{eventId}", deps.SessionHandler.OpenDetail).Methods("PUT")
	r.HandleFunc("/api/session/detail", deps.SessionHandler.CloseDetail).Methods("DELETE")
}
