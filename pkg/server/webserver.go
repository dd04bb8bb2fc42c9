package server

import (
	"context"
	"net/http"
	"time"

	"github.com/matst80/learn-finder/pkg/app"
	"github.com/matst80/learn-finder/pkg/common"
	"github.com/matst80/learn-finder/pkg/lists"
	"github.com/matst80/learn-finder/pkg/search"
	"github.com/matst80/learn-finder/pkg/tracking"
	"github.com/matst80/learn-finder/pkg/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type ResourceClient interface {
	GetResource(ctx context.Context, t types.ObjectType, id string) (types.Resource, error)
}

type WebServer struct {
	Searcher    search.Searcher
	Resources   ResourceClient
	Lists       lists.ListClient
	Sessions    *SessionStore
	Cache       *Cache
	Tracking    tracking.Tracking
	Logger      *zap.Logger
	Secret      []byte
	Options     search.Options
	SearchTTL   time.Duration
	ResourceTTL time.Duration
}

func NewWebServer(ws *WebServer) *WebServer {
	if ws.Logger == nil {
		ws.Logger = zap.NewNop()
	}
	if ws.SearchTTL <= 0 {
		ws.SearchTTL = 30 * time.Second
	}
	if ws.ResourceTTL <= 0 {
		ws.ResourceTTL = 10 * time.Minute
	}
	ws.Sessions = NewSessionStore(ws.newApp)
	return ws
}

func (ws *WebServer) newApp(sessionId string) *app.App {
	opts := ws.Options
	if ws.Tracking != nil {
		trk := ws.Tracking
		opts.OnSettled = func(s search.Snapshot) {
			if s.State != search.StateSuccess {
				return
			}
			trk.TrackSearch(sessionId, tracking.SearchEvent{
				Text:            s.Text,
				Facets:          s.ActiveFacets,
				NumberOfResults: s.Total,
				Offset:          s.Offset,
				Incremental:     s.Offset > 0,
			})
		}
	}
	return app.New(app.Deps{
		Searcher: ws.Searcher,
		Lists:    ws.Lists,
		Options:  opts,
		Logger:   ws.Logger.With(zap.String("session", sessionId)),
	})
}

func (ws *WebServer) json(fn common.JsonHandlerFunc) http.HandlerFunc {
	var trk common.SessionTracker
	if ws.Tracking != nil {
		trk = ws.Tracking
	}
	return common.JsonHandler(ws.Logger, trk, fn)
}

func (ws *WebServer) Handler() *http.ServeMux {
	srv := http.NewServeMux()

	srv.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	srv.Handle("/metrics", promhttp.Handler())

	srv.HandleFunc("GET /api/search", ws.Search)

	srv.HandleFunc("GET /api/session", ws.json(ws.GetSession))
	srv.HandleFunc("PUT /api/session/text", ws.json(ws.SetText))
	srv.HandleFunc("POST /api/session/facets", ws.json(ws.ToggleFacet))
	srv.HandleFunc("PUT /api/session/params", ws.json(ws.SetParams))
	srv.HandleFunc("POST /api/session/clear", ws.json(ws.ClearAll))
	srv.HandleFunc("POST /api/session/more", ws.json(ws.LoadMore))
	srv.HandleFunc("POST /api/session/reset", ws.json(ws.ResetSession))

	srv.HandleFunc("GET /api/session/drawer", ws.json(ws.GetDrawer))
	srv.HandleFunc("POST /api/session/drawer", ws.json(ws.PushDrawer))
	srv.HandleFunc("DELETE /api/session/drawer", ws.json(ws.PopDrawer))
	srv.HandleFunc("DELETE /api/session/drawer/all", ws.json(ws.ClearDrawer))

	srv.HandleFunc("GET /api/lists/{id}", ws.AuthMiddleware(ws.json(ws.GetList)))
	srv.HandleFunc("POST /api/lists/{id}/items", ws.AuthMiddleware(ws.json(ws.AddListItem)))
	srv.HandleFunc("PATCH /api/lists/{id}/items/{item}", ws.AuthMiddleware(ws.json(ws.MoveListItem)))
	srv.HandleFunc("DELETE /api/lists/{id}/items/{item}", ws.AuthMiddleware(ws.json(ws.RemoveListItem)))

	srv.HandleFunc("OPTIONS /api/", common.RespondToOptions)

	return srv
}

func (ws *WebServer) Close() {
	ws.Sessions.Close()
}
