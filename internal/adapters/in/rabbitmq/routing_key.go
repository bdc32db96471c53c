package rabbitmq

import (
	"fmt"
	"strings"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
)

type ChangeAction string

const (
	ChangeActionCreated ChangeAction = "created"
	ChangeActionUpdated ChangeAction = "updated"
	ChangeActionDeleted ChangeAction = "deleted"
)

type ChangeRoutingKey struct {
	Source   string
	Receiver string
	Resource domain.Resource
	Action   ChangeAction
}

// Routing key examples:
// backend.admin-dashboard.doctors.updated
// backend.admin-dashboard.withdrawals.created
// backend.admin-dashboard.patient_plan_subscriptions.deleted
func ParseChangeRoutingKey(routingKey string) (ChangeRoutingKey, error) {
	parts := strings.Split(routingKey, ".")
	if len(parts) < 4 {
		return ChangeRoutingKey{}, fmt.Errorf("invalid routing key: %s", routingKey)
	}

	resource, ok := domain.ParseResource(parts[2])
	if !ok {
		return ChangeRoutingKey{}, fmt.Errorf("unknown resource in routing key: %s", routingKey)
	}

	return ChangeRoutingKey{
		Source:   parts[0],
		Receiver: parts[1],
		Resource: resource,
		Action:   ChangeAction(parts[len(parts)-1]),
	}, nil
}
