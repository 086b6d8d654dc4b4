package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"roomly/pkg/model"
)

// UserClient and RoomClient cover the directory resources the admission
// check resolves against.
type UserClient struct {
	httpClient *HttpClient
}

func NewUserClient(baseURL string) *UserClient {
	return &UserClient{httpClient: NewHttpClient(baseURL)}
}

func (c *UserClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/users", body)
}

func (c *UserClient) GetByID(id string) (*Response, error) {
	return c.httpClient.GET("/api/users/id/" + url.PathEscape(id))
}

func (c *UserClient) DecodeUser(resp *Response) (*model.User, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode user wrapper: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(wrapper.Data, &user); err != nil {
		return nil, fmt.Errorf("could not decode user json: %w", err)
	}
	return &user, nil
}

type RoomClient struct {
	httpClient *HttpClient
}

func NewRoomClient(baseURL string) *RoomClient {
	return &RoomClient{httpClient: NewHttpClient(baseURL)}
}

func (c *RoomClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/rooms", body)
}

func (c *RoomClient) GetByID(id string) (*Response, error) {
	return c.httpClient.GET("/api/rooms/id/" + url.PathEscape(id))
}

func (c *RoomClient) DecodeRoom(resp *Response) (*model.Room, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode room wrapper: %w", err)
	}

	var room model.Room
	if err := json.Unmarshal(wrapper.Data, &room); err != nil {
		return nil, fmt.Errorf("could not decode room json: %w", err)
	}
	return &room, nil
}
