// Package health serves the liveness and readiness endpoints of the order
// service. Readiness covers Postgres plus whichever of Kafka, OpenSearch
// and Redis the deployment configures.
package health

import (
	"context"
	"time"
)

const DefaultTimeout = 5 * time.Second

type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

func up() Result {
	return Result{Status: StatusUp}
}

func down(err error) Result {
	return Result{Status: StatusDown, Message: err.Error()}
}

type Checker interface {
	Name() string
	Check(ctx context.Context) Result
}
