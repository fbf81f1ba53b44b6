package api

import (
	"context"
	"net/http"
)

// ListExpenses returns the expenses recorded against an event.
func (c *Client) ListExpenses(ctx context.Context, eventID string) ([]Expense, error) {
	resp, err := c.do(ctx, http.MethodGet, "/v1/events/"+eventID+"/expenses", nil)
	if err != nil {
		return nil, err
	}

	var expenses []Expense
	if err := decodeJSON(resp, &expenses, http.StatusOK); err != nil {
		return nil, err
	}

	return expenses, nil
}

// CreateExpense records a new expense against an event.
func (c *Client) CreateExpense(ctx context.Context, eventID string, req ExpenseRequest) (*Expense, error) {
	resp, err := c.do(ctx, http.MethodPost, "/v1/events/"+eventID+"/expenses", req)
	if err != nil {
		return nil, err
	}

	var expense Expense
	if err := decodeJSON(resp, &expense, http.StatusCreated); err != nil {
		return nil, err
	}

	return &expense, nil
}

// UpdateExpense updates an expense line.
func (c *Client) UpdateExpense(ctx context.Context, id string, req ExpenseRequest) (*Expense, error) {
	resp, err := c.do(ctx, http.MethodPut, "/v1/expenses/"+id, req)
	if err != nil {
		return nil, err
	}

	var expense Expense
	if err := decodeJSON(resp, &expense, http.StatusOK); err != nil {
		return nil, err
	}

	return &expense, nil
}

// DeleteExpense removes an expense line.
func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/v1/expenses/"+id, nil)
	if err != nil {
		return err
	}

	return expectStatus(resp, http.StatusNoContent)
}
