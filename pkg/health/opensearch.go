package health

import (
	"context"
	"fmt"

	"github.com/opensearch-project/opensearch-go"
)

type OpenSearchChecker struct {
	client *opensearch.Client
}

func NewOpenSearchChecker(client *opensearch.Client) *OpenSearchChecker {
	return &OpenSearchChecker{client: client}
}

func (c *OpenSearchChecker) Name() string {
	return "opensearch"
}

// Check pings the cluster root endpoint.
func (c *OpenSearchChecker) Check(ctx context.Context) Result {
	res, err := c.client.Ping(c.client.Ping.WithContext(ctx))
	if err != nil {
		return down(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return down(fmt.Errorf("ping returned %d", res.StatusCode))
	}
	return up()
}
