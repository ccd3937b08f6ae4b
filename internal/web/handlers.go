package web

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/craycray/rocky/internal/auth/quickauth"
	"github.com/craycray/rocky/internal/platform/httpx"
	"github.com/craycray/rocky/internal/schedule"
	"github.com/craycray/rocky/internal/web/static"
	"github.com/craycray/rocky/internal/web/templates"
)

const remindersPathPrefix = "/api/reminders/"

// apiReminder is the wire shape the embedded client consumes.
type apiReminder struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Time        string `json:"time"`
	Sent        bool   `json:"sent"`
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	api := func(name string, handler http.HandlerFunc) http.Handler {
		return httpx.Chain(
			handler,
			httpx.RequestID(),
			httpx.RecoverPanic(),
			s.traced(name),
			httpx.CORS("GET, OPTIONS"),
			httpx.RequireMethod(http.MethodGet),
		)
	}

	mux.Handle("/api/auth", api("api.auth", s.handleAuth))
	mux.Handle(remindersPathPrefix, api("api.reminders", s.handleReminders))
	mux.Handle("/api/reminders", api("api.reminders", s.handleReminders))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(static.FS))))
	mux.HandleFunc("/schedule", s.handleSchedule)
	mux.HandleFunc("/", s.handlePresentation)

	return httpx.Chain(mux, httpx.RecoverPanic())
}

// traced opens one span per API request.
func (s *Server) traced(name string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := otel.Tracer("rocky/web").Start(httpx.RequestContext(r), name,
				trace.WithSpanKind(trace.SpanKindServer))
			span.SetAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.path", r.URL.Path),
			)
			defer span.End()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	if s.authErr != nil {
		_ = httpx.WriteJSONError(w, http.StatusInternalServerError, "Authentication is not configured")
		return
	}
	token := bearerToken(r)
	if token == "" {
		_ = httpx.WriteJSONError(w, http.StatusUnauthorized, "Missing token")
		return
	}
	claims, err := quickauth.Verify(token, s.auth)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"fid":           claims.Subject,
		"authenticated": true,
	})
}

func (s *Server) handleReminders(w http.ResponseWriter, r *http.Request) {
	inboxID := strings.TrimPrefix(r.URL.Path, remindersPathPrefix)
	inboxID = strings.TrimPrefix(inboxID, "/api/reminders")
	if unescaped, err := url.PathUnescape(inboxID); err == nil {
		inboxID = unescaped
	}
	inboxID = strings.TrimSpace(strings.Trim(inboxID, "/"))
	if inboxID == "" {
		_ = httpx.WriteJSONError(w, http.StatusBadRequest, "Missing inboxId")
		return
	}

	if s.authErr != nil {
		_ = httpx.WriteJSONError(w, http.StatusInternalServerError, "Authentication is not configured")
		return
	}
	token := bearerToken(r)
	if token == "" {
		_ = httpx.WriteJSONError(w, http.StatusUnauthorized, "Missing token")
		return
	}
	if _, err := quickauth.Verify(token, s.auth); err != nil {
		httpx.WriteError(w, err)
		return
	}

	if s.store == nil {
		message := "Database not configured"
		if s.storeErr != nil {
			message = "Database not configured: " + s.storeErr.Error()
		}
		_ = httpx.WriteJSONError(w, http.StatusInternalServerError, message)
		return
	}
	rows, err := s.store.ListPendingForInbox(httpx.RequestContext(r), inboxID)
	if err != nil {
		_ = httpx.WriteJSONError(w, http.StatusInternalServerError, "Failed to load reminders")
		return
	}

	payload := make([]apiReminder, 0, len(rows))
	for _, row := range rows {
		payload = append(payload, apiReminder{
			ID:          row.ID,
			Title:       row.Title,
			Description: row.Description,
			Time:        row.TargetTime.UTC().Format(time.RFC3339),
			Sent:        row.Sent,
		})
	}
	_ = httpx.WriteJSON(w, http.StatusOK, payload)
}

func (s *Server) handlePresentation(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	templ.Handler(templates.PresentationPage()).ServeHTTP(w, r)
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	sel := selectionFromQuery(r)

	events, err := s.catalog.Load(httpx.RequestContext(r))
	if err != nil {
		templ.Handler(templates.SchedulePage(templates.SchedulePageData{
			Filter:  string(sel.Category),
			Day:     sel.Day,
			LoadErr: true,
		})).ServeHTTP(w, r)
		return
	}

	now := s.now()
	groups := schedule.GroupByDay(events, now, s.loc, sel)
	data := templates.SchedulePageData{
		Filter: string(sel.Category),
		Day:    sel.Day,
		Days:   schedule.EventDays(events, s.loc),
	}
	for _, group := range groups {
		rendered := templates.ScheduleGroup{Day: group.Day}
		for _, ev := range group.Events {
			rendered.Events = append(rendered.Events, templates.ScheduleEvent{
				Title:     ev.Record.Title,
				Label:     schedule.Label(ev.Record.StartUTC, now),
				Location:  ev.Record.Location.Name,
				Organizer: ev.Record.Organizer.Name,
				EventType: ev.Record.EventType,
				Core:      ev.IsCoreEvent,
			})
		}
		data.Groups = append(data.Groups, rendered)
	}
	templ.Handler(templates.SchedulePage(data)).ServeHTTP(w, r)
}

func selectionFromQuery(r *http.Request) schedule.Selection {
	sel := schedule.DefaultSelection()
	if filter := strings.TrimSpace(r.URL.Query().Get("filter")); filter != "" {
		sel.Category = schedule.Category(filter)
	}
	if day := strings.TrimSpace(r.URL.Query().Get("day")); day != "" {
		sel.Day = day
	}
	return sel
}
