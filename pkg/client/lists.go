package client

import (
	"context"
	"fmt"

	"github.com/matst80/learn-finder/pkg/types"
)

func listPath(listId int) string {
	return fmt.Sprintf("/api/v0/userlists/%d/", listId)
}

func listItemPath(listId, itemId int) string {
	return fmt.Sprintf("/api/v0/userlists/%d/items/%d/", listId, itemId)
}

type addItemBody struct {
	ContentType types.ObjectType `json:"content_type"`
	ObjectId    int              `json:"object_id"`
}

type moveItemBody struct {
	Position int `json:"position"`
}

func (c *Client) GetList(ctx context.Context, listId int) (*types.UserList, error) {
	list := &types.UserList{}
	if err := c.do(ctx, "GET", listPath(listId), nil, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) AddItem(ctx context.Context, listId int, item types.ListItem) (*types.UserList, error) {
	list := &types.UserList{}
	body := addItemBody{ContentType: item.ContentType, ObjectId: item.ObjectId}
	if err := c.do(ctx, "POST", fmt.Sprintf("/api/v0/userlists/%d/items/", listId), body, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) MoveItem(ctx context.Context, listId, itemId, position int) (*types.UserList, error) {
	list := &types.UserList{}
	if err := c.do(ctx, "PATCH", listItemPath(listId, itemId), moveItemBody{Position: position}, list); err != nil {
		return nil, err
	}
	return list, nil
}

// RemoveItem deletes the item and reads the list back, the delete endpoint
// answers without a body.
func (c *Client) RemoveItem(ctx context.Context, listId, itemId int) (*types.UserList, error) {
	if err := c.do(ctx, "DELETE", listItemPath(listId, itemId), nil, nil); err != nil {
		return nil, err
	}
	return c.GetList(ctx, listId)
}
