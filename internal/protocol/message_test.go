package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/splinter/internal/shamir"
)

func TestShareDeliveryWireFormat(t *testing.T) {
	s := shamir.Share{Index: 3, Payload: []byte{0xde, 0xad}}
	env := NewShareDelivery("alpha", s, 5, 3)

	data, err := env.Marshal()
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))

	assert.Equal(t, float64(1), fields["v"])
	assert.Equal(t, "share_delivery", fields["type"])
	assert.Equal(t, "alpha", fields["session"])
	assert.Equal(t, float64(3), fields["shareIndex"])
	assert.Equal(t, float64(5), fields["totalShares"])
	assert.Equal(t, float64(3), fields["threshold"])
	assert.Equal(t, "03:dead", fields["share"])
}

func TestShareAckWireFormat(t *testing.T) {
	data, err := NewShareAck(7).Marshal()
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))

	assert.Equal(t, "share_ack", fields["type"])
	assert.Equal(t, float64(7), fields["shareIndex"])
	assert.NotContains(t, fields, "session")
	assert.NotContains(t, fields, "share")
}

func TestShareRequestWireFormat(t *testing.T) {
	data, err := NewShareRequest("alpha").Marshal()
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))

	assert.Equal(t, "share_request", fields["type"])
	assert.Equal(t, "alpha", fields["session"])
	assert.NotContains(t, fields, "shareIndex")
}

func TestParseEnvelopeRoundTrip(t *testing.T) {
	env := NewShareDelivery("alpha", shamir.Share{Index: 1, Payload: []byte{0x01}}, 3, 2)
	data, err := env.Marshal()
	require.NoError(t, err)

	parsed, err := ParseEnvelope(data)
	require.NoError(t, err)
	assert.Equal(t, env, parsed)
}

func TestParseEnvelopeRejectsGarbage(t *testing.T) {
	_, err := ParseEnvelope([]byte("not json"))
	assert.Error(t, err)
}
