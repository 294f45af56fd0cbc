package inclusion

import (
	"encoding/json"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zmesh-protocol/zmesh-go/pkg/wire"
)

func TestViewWithoutContextKeepsPayload(t *testing.T) {
	report, err := Decode([]byte{0x00, 0x05})
	require.NoError(t, err)

	rec := report.View()
	assert.Equal(t, "PROTOCOL_DONE", rec.Status)
	assert.Equal(t, uint8(5), rec.StatusCode)
	assert.Nil(t, rec.Context)
	assert.Equal(t, wire.HexBytes{0x00, 0x05}, rec.Payload)
}

func TestViewWithContextDropsPayload(t *testing.T) {
	report, err := Decode(addingSlavePayload)
	require.NoError(t, err)

	rec := report.View()
	assert.Equal(t, "ADDING_SLAVE", rec.Status)
	assert.Equal(t, report.Context, rec.Context)
	assert.Nil(t, rec.Payload)
}

func TestViewUnknownStatus(t *testing.T) {
	report, err := Decode([]byte{0x00, 0x42, 0x01})
	require.NoError(t, err)

	rec := report.View()
	assert.Equal(t, "UNKNOWN", rec.Status)
	assert.Equal(t, uint8(0x42), rec.StatusCode)
	assert.Equal(t, wire.HexBytes{0x00, 0x42, 0x01}, rec.Payload)
}

func TestViewDoesNotAliasReport(t *testing.T) {
	report, err := Decode([]byte{0x00, 0x01})
	require.NoError(t, err)

	rec := report.View()
	rec.Payload[0] = 0xFF
	assert.Equal(t, byte(0x00), report.Raw[0])
}

func TestViewJSON(t *testing.T) {
	report, err := Decode(addingSlavePayload)
	require.NoError(t, err)

	data, err := json.Marshal(report.View())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "ADDING_SLAVE", got["status"])
	assert.NotContains(t, got, "payload")

	ctx := got["context"].(map[string]any)
	assert.Equal(t, float64(2), ctx["nodeId"])
	assert.Equal(t, []any{"UNKNOWN(0x01)", "ZWAVEPLUS_INFO"}, ctx["supportedCommandClasses"])
	assert.Equal(t, []any{"SWITCH_BINARY", "SWITCH_MULTILEVEL"}, ctx["controlledCommandClasses"])

	specific := ctx["specificClass"].(map[string]any)
	assert.Equal(t, "UNKNOWN(0x18)", specific["name"])
	assert.Equal(t, false, specific["known"])
}

func TestViewYAML(t *testing.T) {
	report, err := Decode([]byte{0x00, 0x07, 0xAB})
	require.NoError(t, err)

	data, err := yaml.Marshal(report.View())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "FAILED", got["status"])
	assert.Equal(t, "0007ab", got["payload"])
	assert.NotContains(t, got, "context")
}

func TestViewCBOR(t *testing.T) {
	report, err := Decode([]byte{0x00, 0x06, 0x09})
	require.NoError(t, err)

	data, err := cbor.Marshal(report.View())
	require.NoError(t, err)

	var got map[int]any
	require.NoError(t, cbor.Unmarshal(data, &got))
	assert.Equal(t, "DONE", got[1])
	assert.NotContains(t, got, 4)
}
