package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/agendape/agenda-api/internal/model"
)

// Fetch downloads agenda records from a remote export endpoint. The endpoint
// is expected to return a JSON array of raw records.
func Fetch(ctx context.Context, url string) ([]model.RawEventRecord, error) {
	client := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(2 * time.Second)

	var records []model.RawEventRecord
	resp, err := client.R().
		SetContext(ctx).
		SetResult(&records).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seed data: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("seed endpoint returned status %d", resp.StatusCode())
	}
	return records, nil
}
