package server

import (
	"net/http"
	"strconv"

	"github.com/matst80/learn-finder/pkg/common/jsoncompat"
	"github.com/matst80/learn-finder/pkg/types"
)

func pathInt(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, types.NewValidationError("invalid %s %q", name, r.PathValue(name))
	}
	return v, nil
}

func (ws *WebServer) GetList(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	listId, err := pathInt(r, "id")
	if err != nil {
		return err
	}
	list, err := ws.Sessions.Get(sessionId).Lists().Load(r.Context(), listId)
	if err != nil {
		return err
	}
	w.WriteHeader(http.StatusOK)
	return enc.Encode(list)
}

func (ws *WebServer) AddListItem(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	listId, err := pathInt(r, "id")
	if err != nil {
		return err
	}
	body := addItemRequest{}
	if err = decodeBody(r, &body); err != nil {
		return err
	}
	list, err := ws.Sessions.Get(sessionId).Lists().AddItem(r.Context(), listId, body.ContentType, body.ObjectId)
	if err != nil {
		return err
	}
	w.WriteHeader(http.StatusOK)
	return enc.Encode(list)
}

func (ws *WebServer) MoveListItem(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	listId, err := pathInt(r, "id")
	if err != nil {
		return err
	}
	itemId, err := pathInt(r, "item")
	if err != nil {
		return err
	}
	body := moveItemRequest{}
	if err = decodeBody(r, &body); err != nil {
		return err
	}
	list, err := ws.Sessions.Get(sessionId).Lists().MoveItem(r.Context(), listId, itemId, body.Position)
	if err != nil {
		return err
	}
	w.WriteHeader(http.StatusOK)
	return enc.Encode(list)
}

func (ws *WebServer) RemoveListItem(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	listId, err := pathInt(r, "id")
	if err != nil {
		return err
	}
	itemId, err := pathInt(r, "item")
	if err != nil {
		return err
	}
	list, err := ws.Sessions.Get(sessionId).Lists().RemoveItem(r.Context(), listId, itemId)
	if err != nil {
		return err
	}
	w.WriteHeader(http.StatusOK)
	return enc.Encode(list)
}
