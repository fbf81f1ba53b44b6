package api

import (
	"context"
	"net/http"
)

// DispatchReport asks the backend to assemble an event's expense report and
// send it to the configured recipients.
func (c *Client) DispatchReport(ctx context.Context, req DispatchReportRequest) (*DispatchReportResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, "/v1/reports/dispatch", req)
	if err != nil {
		return nil, err
	}

	var ack DispatchReportResponse
	if err := decodeJSON(resp, &ack, http.StatusAccepted); err != nil {
		return nil, err
	}

	return &ack, nil
}
