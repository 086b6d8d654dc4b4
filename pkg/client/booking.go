package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"roomly/pkg/model"
)

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *BookingClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/bookings", body)
}

func (c *BookingClient) CreateRaw(rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw("/api/bookings", rawBody)
}

func (c *BookingClient) GetByID(id string) (*Response, error) {
	return c.httpClient.GET("/api/bookings/id/" + url.PathEscape(id))
}

func (c *BookingClient) GetAll(limit int, offset int64) (*Response, error) {
	return c.httpClient.GET(fmt.Sprintf("/api/bookings?limit=%d&offset=%d", limit, offset))
}

// DecodeCreated decodes the legacy admission response:
// {"message": ..., "booking": {...}}.
func (c *BookingClient) DecodeCreated(resp *Response) (string, *model.Booking, error) {
	var wrapper struct {
		Message string          `json:"message"`
		Booking json.RawMessage `json:"booking"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return "", nil, fmt.Errorf("could not decode admission response: %w", err)
	}

	var booking model.Booking
	if err := json.Unmarshal(wrapper.Booking, &booking); err != nil {
		return "", nil, fmt.Errorf("could not decode booking json: %w", err)
	}

	return wrapper.Message, &booking, nil
}

func (c *BookingClient) DecodeBooking(resp *Response) (*model.Booking, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode booking wrapper: %w", err)
	}

	var booking model.Booking
	if err := json.Unmarshal(wrapper.Data, &booking); err != nil {
		return nil, fmt.Errorf("could not decode booking json: %w", err)
	}

	return &booking, nil
}
