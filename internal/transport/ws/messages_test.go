package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blendin/internal/domain"
)

func TestClientMessageDecoding(t *testing.T) {
	t.Parallel()

	var msg ClientMessage
	data := []byte(`{"type":"join_room","payload":{"name":"bob","code":"abcd"}}`)
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, MsgJoinRoom, msg.Type)

	var p JoinRoomPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &p))
	assert.Equal(t, "bob", p.Name)
	assert.Equal(t, "abcd", p.Code)
}

func TestFromEventCarriesTypeAndTimestamp(t *testing.T) {
	t.Parallel()

	ev := domain.NewEvent(domain.EventCountdown, domain.CountdownPayload{Count: 3})
	msg := FromEvent(ev)

	assert.Equal(t, MessageType(domain.EventCountdown), msg.Type)
	assert.Equal(t, domain.CountdownPayload{Count: 3}, msg.Payload)

	_, err := time.Parse(time.RFC3339, msg.Timestamp)
	assert.NoError(t, err)
}
