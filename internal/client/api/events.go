package api

import (
	"context"
	"net/http"
)

// ListEvents returns the caller's travel events.
func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	resp, err := c.do(ctx, http.MethodGet, "/v1/events", nil)
	if err != nil {
		return nil, err
	}

	var events []Event
	if err := decodeJSON(resp, &events, http.StatusOK); err != nil {
		return nil, err
	}

	return events, nil
}

// GetEvent returns a single event by id.
func (c *Client) GetEvent(ctx context.Context, id string) (*Event, error) {
	resp, err := c.do(ctx, http.MethodGet, "/v1/events/"+id, nil)
	if err != nil {
		return nil, err
	}

	var event Event
	if err := decodeJSON(resp, &event, http.StatusOK); err != nil {
		return nil, err
	}

	return &event, nil
}

// CreateEvent creates a travel event.
func (c *Client) CreateEvent(ctx context.Context, req EventRequest) (*Event, error) {
	resp, err := c.do(ctx, http.MethodPost, "/v1/events", req)
	if err != nil {
		return nil, err
	}

	var event Event
	if err := decodeJSON(resp, &event, http.StatusCreated); err != nil {
		return nil, err
	}

	return &event, nil
}

// UpdateEvent updates an existing travel event.
func (c *Client) UpdateEvent(ctx context.Context, id string, req EventRequest) (*Event, error) {
	resp, err := c.do(ctx, http.MethodPut, "/v1/events/"+id, req)
	if err != nil {
		return nil, err
	}

	var event Event
	if err := decodeJSON(resp, &event, http.StatusOK); err != nil {
		return nil, err
	}

	return &event, nil
}

// DeleteEvent removes an event and its expenses.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/v1/events/"+id, nil)
	if err != nil {
		return err
	}

	return expectStatus(resp, http.StatusNoContent)
}
