package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/example/cobra/internal/ports/primary"
)

// Server bundles the service ports behind the REST surface.
type Server struct {
	templates  primary.TemplateService
	checklists primary.ChecklistService
	library    primary.LibraryService
	chat       primary.ChatService
	analytics  primary.AnalyticsService
	settings   primary.SettingsService
	ws         http.Handler
}

// NewServer creates the REST adapter. ws handles the websocket upgrade and
// may be nil when no realtime hub is wired.
func NewServer(
	templates primary.TemplateService,
	checklists primary.ChecklistService,
	library primary.LibraryService,
	chat primary.ChatService,
	analytics primary.AnalyticsService,
	settings primary.SettingsService,
	ws http.Handler,
) *Server {
	return &Server{
		templates:  templates,
		checklists: checklists,
		library:    library,
		chat:       chat,
		analytics:  analytics,
		settings:   settings,
		ws:         ws,
	}
}

// Routes builds the full route tree.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(UserContext)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if s.ws != nil {
		r.Handle("/ws", s.ws)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", s.listTemplates)
			r.Post("/", s.createTemplate)
			r.Route("/{templateID}", func(r chi.Router) {
				r.Get("/", s.getTemplate)
				r.Put("/", s.updateTemplate)
				r.Delete("/", s.archiveTemplate)
				r.Post("/archive", s.archiveTemplate)
				r.Post("/restore", s.restoreTemplate)
				r.Post("/items", s.addTemplateItem)
				r.Post("/items/library", s.insertLibraryItem)
				r.Put("/items:reorder", s.reorderTemplateItems)
				r.Put("/items/{itemID}", s.updateTemplateItem)
				r.Delete("/items/{itemID}", s.removeTemplateItem)
			})
		})

		r.Route("/checklists", func(r chi.Router) {
			r.Get("/", s.listChecklists)
			r.Post("/", s.instantiateChecklist)
			r.Route("/{checklistID}", func(r chi.Router) {
				r.Get("/", s.getChecklist)
				r.Post("/archive", s.archiveChecklist)
				r.Post("/restore", s.restoreChecklist)
				r.Post("/clone", s.cloneChecklist)
				r.Put("/positions", s.updateChecklistPositions)
				r.Put("/items/{itemID}/completion", s.updateItemCompletion)
				r.Put("/items/{itemID}/status", s.updateItemStatus)
				r.Put("/items/{itemID}/notes", s.updateItemNotes)
			})
		})

		r.Route("/library", func(r chi.Router) {
			r.Get("/", s.listLibraryEntries)
			r.Post("/", s.createLibraryEntry)
			r.Get("/{entryID}", s.getLibraryEntry)
			r.Put("/{entryID}", s.updateLibraryEntry)
			r.Delete("/{entryID}", s.deleteLibraryEntry)
		})

		r.Route("/channels", func(r chi.Router) {
			r.Get("/", s.listChannels)
			r.Post("/", s.createChannel)
			r.Get("/{channelID}", s.getChannel)
			r.Get("/{channelID}/messages", s.listMessages)
			r.Post("/{channelID}/messages", s.postMessage)
		})

		r.Post("/webhooks/teams", s.teamsWebhook)
		r.Post("/webhooks/groupme", s.groupMeWebhook)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/summary", s.analyticsSummary)
			r.Get("/templates/top", s.topTemplates)
			r.Get("/templates/completion", s.completionRates)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", s.listSettings)
			r.Put("/", s.upsertSetting)
			r.Get("/integrations", s.integrationStatus)
			r.Get("/{key}", s.getSetting)
		})
	})

	return r
}
