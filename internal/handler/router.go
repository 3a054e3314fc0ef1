package handler

import (
	"net/http"

	"kerygma-studio/internal/config"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(LoggingMiddleware(container.GetLogger()))

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"kerygma-studio"}`))
	}).Methods("GET")

	// Initialize handlers
	notebookHandler := NewNotebookHandler(container)
	sermonHandler := NewSermonHandler(container)
	aiHandler := NewAIHandler(container)
	speechHandler := NewSpeechHandler(container)
	preferenceHandler := NewPreferenceHandler(container)

	// Notebook routes
	api.HandleFunc("/notebook", notebookHandler.GetNotebook).Methods("GET")
	api.HandleFunc("/notebook", notebookHandler.UpdateNotebook).Methods("PUT")
	api.HandleFunc("/notebook", notebookHandler.ClearNotebook).Methods("DELETE")
	api.HandleFunc("/notebook/format", notebookHandler.ApplyFormat).Methods("POST")
	api.HandleFunc("/notebook/remove-format", notebookHandler.RemoveFormat).Methods("POST")
	api.HandleFunc("/notebook/archive", notebookHandler.ArchiveNotebook).Methods("POST")
	api.HandleFunc("/notebook/history", notebookHandler.GetHistory).Methods("GET")
	api.HandleFunc("/notebook/history/{id}/restore", notebookHandler.RestoreEntry).Methods("POST")
	api.HandleFunc("/notebook/history/{id}", notebookHandler.DeleteEntry).Methods("DELETE")

	// Sermon library routes
	api.HandleFunc("/sermons", sermonHandler.ListSermons).Methods("GET")
	api.HandleFunc("/sermons", sermonHandler.SaveSermon).Methods("POST")
	api.HandleFunc("/sermons/search", sermonHandler.SearchSermons).Methods("GET")
	api.HandleFunc("/sermons/{id}", sermonHandler.GetSermon).Methods("GET")
	api.HandleFunc("/sermons/{id}", sermonHandler.DeleteSermon).Methods("DELETE")
	api.HandleFunc("/search", sermonHandler.SemanticSearch).Methods("GET")

	// Quick note routes
	api.HandleFunc("/notes", sermonHandler.ListNotes).Methods("GET")
	api.HandleFunc("/notes", sermonHandler.SaveNote).Methods("POST")
	api.HandleFunc("/notes/{id}", sermonHandler.DeleteNote).Methods("DELETE")

	// AI lookup routes
	api.HandleFunc("/ai/sermon-outline", aiHandler.GenerateOutline).Methods("POST")
	api.HandleFunc("/ai/chapter", aiHandler.GetChapter).Methods("POST")
	api.HandleFunc("/ai/verse", aiHandler.GetVerse).Methods("POST")
	api.HandleFunc("/ai/deep-dive", aiHandler.GetDeepDive).Methods("POST")
	api.HandleFunc("/ai/commentary", aiHandler.GetCommentary).Methods("POST")
	api.HandleFunc("/ai/biography", aiHandler.GetBiography).Methods("POST")
	api.HandleFunc("/ai/translate", aiHandler.Translate).Methods("POST")
	api.HandleFunc("/ai/theology", aiHandler.GetTheology).Methods("POST")
	api.HandleFunc("/ai/dictionary", aiHandler.GetDictionary).Methods("POST")
	api.HandleFunc("/ai/timeline", aiHandler.GetTimeline).Methods("POST")
	api.HandleFunc("/ai/search", aiHandler.UniversalSearch).Methods("POST")

	// Speech routes
	api.HandleFunc("/speech/synthesize", speechHandler.Synthesize).Methods("POST")
	api.HandleFunc("/playback/play", speechHandler.Play).Methods("POST")
	api.HandleFunc("/playback/stop", speechHandler.Stop).Methods("POST")
	api.HandleFunc("/playback/status", speechHandler.Status).Methods("GET")

	// Preference routes
	api.HandleFunc("/preferences", preferenceHandler.GetPreferences).Methods("GET")
	api.HandleFunc("/preferences", preferenceHandler.UpdatePreferences).Methods("PUT")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173", // Vite dev server
			"http://localhost:4173", // Vite preview
			"http://localhost:3000", // Alternative dev port
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-CSRF-Token",
		},
		ExposedHeaders: []string{
			"Link",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
