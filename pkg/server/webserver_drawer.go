package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/matst80/learn-finder/pkg/client"
	"github.com/matst80/learn-finder/pkg/common/jsoncompat"
	"github.com/matst80/learn-finder/pkg/drawer"
	"github.com/matst80/learn-finder/pkg/types"
	"go.uber.org/zap"
)

func resourceKey(t types.ObjectType, id string) string {
	return fmt.Sprintf("resource:%s:%s", t, id)
}

// resource loads a document through the cache. Documents are cached in their
// wire form since the concrete type is only known from the frame.
func (ws *WebServer) resource(ctx context.Context, frame drawer.Frame) (types.Resource, error) {
	key := resourceKey(frame.ObjectType, frame.ObjectId)
	if ws.Cache != nil {
		data, err := ws.Cache.GetRaw(ctx, key)
		if err == nil {
			if res, err := types.DecodeResource(frame.ObjectType, data); err == nil {
				cacheLookups.WithLabelValues(resourceCache, "hit").Inc()
				return res, nil
			}
		} else if !errors.Is(err, ErrCacheMiss) {
			ws.Logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		cacheLookups.WithLabelValues(resourceCache, "miss").Inc()
	}
	res, err := ws.Resources.GetResource(ctx, frame.ObjectType, frame.ObjectId)
	if err != nil {
		return nil, err
	}
	if ws.Cache != nil {
		if err = ws.Cache.Set(ctx, key, res, ws.ResourceTTL); err != nil {
			ws.Logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return res, nil
}

func (ws *WebServer) respondDrawer(ctx context.Context, w http.ResponseWriter, h *drawer.History, enc jsoncompat.Encoder) error {
	res := DrawerResponse{Depth: h.Len()}
	if frame, ok := h.Current(); ok {
		res.Frame = &frame
		if client.HasDetailEndpoint(frame.ObjectType) {
			resource, err := ws.resource(ctx, frame)
			if err != nil {
				return err
			}
			summary := Summarize(resource)
			res.Summary = &summary
			res.Resource = resource
		}
	}
	w.WriteHeader(http.StatusOK)
	return enc.Encode(res)
}

func (ws *WebServer) GetDrawer(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	return ws.respondDrawer(r.Context(), w, ws.Sessions.Get(sessionId).Drawer(), enc)
}

func (ws *WebServer) PushDrawer(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	frame := drawer.Frame{}
	if err := decodeBody(r, &frame); err != nil {
		return err
	}
	if frame.ObjectId == "" || !frame.ObjectType.IsKnown() {
		return types.NewValidationError("a known objectType and an objectId are required")
	}
	h := ws.Sessions.Get(sessionId).Drawer()
	h.Push(frame)
	if ws.Tracking != nil {
		ws.Tracking.TrackDrawer(sessionId, frame)
	}
	return ws.respondDrawer(r.Context(), w, h, enc)
}

func (ws *WebServer) PopDrawer(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	h := ws.Sessions.Get(sessionId).Drawer()
	h.Pop()
	return ws.respondDrawer(r.Context(), w, h, enc)
}

func (ws *WebServer) ClearDrawer(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	h := ws.Sessions.Get(sessionId).Drawer()
	h.Clear()
	return ws.respondDrawer(r.Context(), w, h, enc)
}
