package api

import (
	"context"
	"net/http"
)

// ListCards returns the corporate cards visible to the caller.
func (c *Client) ListCards(ctx context.Context) ([]CorporateCard, error) {
	resp, err := c.do(ctx, http.MethodGet, "/v1/cards", nil)
	if err != nil {
		return nil, err
	}

	var cards []CorporateCard
	if err := decodeJSON(resp, &cards, http.StatusOK); err != nil {
		return nil, err
	}

	return cards, nil
}

// AssignCard binds a corporate card to an event so its transactions land
// there.
func (c *Client) AssignCard(ctx context.Context, cardID string, req AssignCardRequest) error {
	resp, err := c.do(ctx, http.MethodPost, "/v1/cards/"+cardID+"/assign", req)
	if err != nil {
		return err
	}

	return expectStatus(resp, http.StatusNoContent)
}
