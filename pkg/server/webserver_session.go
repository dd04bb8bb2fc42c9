package server

import (
	"net/http"

	"github.com/matst80/learn-finder/pkg/app"
	"github.com/matst80/learn-finder/pkg/common/jsoncompat"
	"github.com/matst80/learn-finder/pkg/search"
	"github.com/matst80/learn-finder/pkg/types"
)

func decodeBody(r *http.Request, out any) error {
	if err := jsoncompat.NewDecoder(r.Body).Decode(out); err != nil {
		return types.NewValidationError("invalid request body: %v", err)
	}
	return nil
}

func (ws *WebServer) respondSession(w http.ResponseWriter, a *app.App, status int, enc jsoncompat.Encoder) error {
	w.WriteHeader(status)
	return enc.Encode(newSessionResponse(a.Search().Snapshot(), a.Drawer().Frames()))
}

func flushIf(d *search.Dispatcher, flush bool) {
	if flush {
		d.Flush()
	}
}

// GetSession returns the session search state. With wait set it first waits
// for requests in flight.
func (ws *WebServer) GetSession(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	a := ws.Sessions.Get(sessionId)
	if r.URL.Query().Get("wait") != "" {
		a.Search().Wait()
	}
	return ws.respondSession(w, a, http.StatusOK, enc)
}

func (ws *WebServer) SetText(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	body := textRequest{}
	if err := decodeBody(r, &body); err != nil {
		return err
	}
	a := ws.Sessions.Get(sessionId)
	a.Search().SetText(body.Text)
	flushIf(a.Search(), body.Flush)
	return ws.respondSession(w, a, http.StatusAccepted, enc)
}

func (ws *WebServer) ToggleFacet(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	body := facetRequest{}
	if err := decodeBody(r, &body); err != nil {
		return err
	}
	if body.Group == "" || body.Value == "" {
		return types.NewValidationError("group and value are required")
	}
	a := ws.Sessions.Get(sessionId)
	a.Search().ToggleFacet(body.Group, body.Value, body.Enabled)
	flushIf(a.Search(), body.Flush)
	return ws.respondSession(w, a, http.StatusAccepted, enc)
}

// SetParams restores text and facets from a serialised query string, as
// read from the address bar.
func (ws *WebServer) SetParams(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	body := paramsRequest{}
	if err := decodeBody(r, &body); err != nil {
		return err
	}
	text, active, err := search.DeserializeQueryString(body.Params)
	if err != nil {
		return err
	}
	a := ws.Sessions.Get(sessionId)
	a.Search().SetParams(text, active)
	flushIf(a.Search(), body.Flush)
	return ws.respondSession(w, a, http.StatusAccepted, enc)
}

func (ws *WebServer) ClearAll(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	a := ws.Sessions.Get(sessionId)
	a.Search().ClearAll()
	return ws.respondSession(w, a, http.StatusAccepted, enc)
}

func (ws *WebServer) LoadMore(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	a := ws.Sessions.Get(sessionId)
	issued := a.Search().LoadMore()
	status := http.StatusAccepted
	if !issued {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	return enc.Encode(loadMoreResponse{Issued: issued})
}

func (ws *WebServer) ResetSession(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	a := ws.Sessions.Get(sessionId)
	a.Reset()
	return ws.respondSession(w, a, http.StatusOK, enc)
}
