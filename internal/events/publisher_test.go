package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisPublisher_NilClientIsNoOp(t *testing.T) {
	publisher := NewRedisPublisher(nil, "workflow-config.events", zap.NewNop())

	assert.NotPanics(t, func() {
		publisher.Publish(context.Background(), "issue_status", ActionCreated, uuid.New())
	})
}

func TestConfigChange_PayloadShape(t *testing.T) {
	entityID := uuid.New()
	payload, err := json.Marshal(ConfigChange{
		Entity:   "custom_field",
		Action:   ActionDeleted,
		EntityID: entityID,
	})
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "custom_field", decoded["entity"])
	assert.Equal(t, "deleted", decoded["action"])
	assert.Equal(t, entityID.String(), decoded["entityId"])
}
