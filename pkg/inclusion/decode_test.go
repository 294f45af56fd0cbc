package inclusion

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zmesh-protocol/zmesh-go/pkg/commandclass"
	"github.com/zmesh-protocol/zmesh-go/pkg/deviceclass"
	"github.com/zmesh-protocol/zmesh-go/pkg/wire"
)

// mockRegistry is a testify mock of deviceclass.Registry.
type mockRegistry struct {
	mock.Mock
}

func (m *mockRegistry) LookupGeneric(generic uint8) deviceclass.Descriptor {
	args := m.Called(generic)
	return args.Get(0).(deviceclass.Descriptor)
}

func (m *mockRegistry) LookupSpecific(generic, specific uint8) deviceclass.Descriptor {
	args := m.Called(generic, specific)
	return args.Get(0).(deviceclass.Descriptor)
}

var addingSlavePayload = []byte{0x00, 0x03, 0x02, 0x03, 0x15, 0x04, 0x18, 0x01, 0x5E, 0xEF, 0x25, 0x26}

func TestDecodeAddingSlaveExample(t *testing.T) {
	report, err := Decode(addingSlavePayload)
	require.NoError(t, err)

	assert.Equal(t, StatusAddingSlave, report.Status)
	require.IsType(t, SlaveContext{}, report.Context)

	ctx := report.Context.(SlaveContext)
	assert.Equal(t, uint8(2), ctx.NodeID)
	assert.Equal(t, uint8(0x15), ctx.BasicClass)
	assert.Equal(t, uint8(0x04), ctx.GenericClass.Key)
	assert.Equal(t, uint8(0x18), ctx.SpecificClass.Key)
	assert.Equal(t, []commandclass.ID{0x01, 0x5E}, ctx.SupportedCommandClasses)
	assert.Equal(t, []commandclass.ID{0x25, 0x26}, ctx.ControlledCommandClasses)

	nodeID, ok := report.NodeID()
	assert.True(t, ok)
	assert.Equal(t, uint8(2), nodeID)
}

func TestDecodeResolvesThroughRegistry(t *testing.T) {
	reg := &mockRegistry{}
	reg.On("LookupGeneric", uint8(0x04)).Return(deviceclass.Descriptor{Key: 0x04, Name: "DISPLAY", Known: true}).Once()
	reg.On("LookupSpecific", uint8(0x04), uint8(0x18)).Return(deviceclass.Unknown(0x18)).Once()

	report, err := NewDecoder(reg).Decode(addingSlavePayload)
	require.NoError(t, err)
	reg.AssertExpectations(t)

	ctx := report.Context.(SlaveContext)
	assert.Equal(t, "DISPLAY", ctx.GenericClass.Name)
	assert.Equal(t, deviceclass.Descriptor{Key: 0x18, Name: "UNKNOWN(0x18)"}, ctx.SpecificClass)
}

func TestDecodeUnknownDeviceClassesSucceed(t *testing.T) {
	payload := []byte{0x00, 0x03, 0x07, 0x08, 0x04, 0xEE, 0xDD, 0x20}

	report, err := Decode(payload)
	require.NoError(t, err)

	ctx := report.Context.(SlaveContext)
	assert.False(t, ctx.GenericClass.Known)
	assert.Equal(t, uint8(0xEE), ctx.GenericClass.Key)
	assert.Equal(t, "UNKNOWN(0xEE)", ctx.GenericClass.Name)
	assert.False(t, ctx.SpecificClass.Known)
	assert.Equal(t, uint8(0xDD), ctx.SpecificClass.Key)
	assert.Equal(t, "ROUTING_SLAVE", ctx.BasicClassName())
}

func TestDecodeKnownDeviceClasses(t *testing.T) {
	// Binary power switch, supports BASIC and SWITCH_BINARY.
	payload := []byte{0x00, 0x03, 0x05, 0x04, 0x04, 0x10, 0x01, 0x20, 0x25}

	report, err := Decode(payload)
	require.NoError(t, err)

	ctx := report.Context.(SlaveContext)
	assert.Equal(t, "SWITCH_BINARY", ctx.GenericClass.Name)
	assert.Equal(t, "POWER_SWITCH_BINARY", ctx.SpecificClass.Name)
	assert.Equal(t, []commandclass.ID{commandclass.Basic, commandclass.SwitchBinary}, ctx.SupportedCommandClasses)
	assert.Empty(t, ctx.ControlledCommandClasses)
}

func TestDecodeNoContextStatuses(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		status  Status
	}{
		{"ready", []byte{0x00, 0x01}, StatusReady},
		{"node found", []byte{0x00, 0x02}, StatusNodeFound},
		{"protocol done", []byte{0x00, 0x05}, StatusProtocolDone},
		{"failed", []byte{0x00, 0x07}, StatusFailed},
		{"ready with trailing bytes", []byte{0x11, 0x01, 0x05, 0x00}, StatusReady},
		{"failed with trailing bytes", []byte{0x00, 0x07, 0x00, 0x00, 0xEF}, StatusFailed},
		{"protocol done with node id", []byte{0x00, 0x05, 0x09, 0x00}, StatusProtocolDone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Decode(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.status, report.Status)
			assert.Nil(t, report.Context)
			assert.Equal(t, tt.payload, report.Raw)

			_, ok := report.NodeID()
			assert.False(t, ok)
		})
	}
}

func TestDecodeProtocolDoneExample(t *testing.T) {
	report, err := Decode([]byte{0x00, 0x05})
	require.NoError(t, err)
	assert.Equal(t, StatusProtocolDone, report.Status)
	assert.Nil(t, report.Context)
}

func TestDecodeNodeContextStatuses(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		status  Status
		nodeID  uint8
	}{
		{"adding controller", []byte{0x00, 0x04, 0x0C}, StatusAddingController, 0x0C},
		{"done", []byte{0x00, 0x06, 0x02}, StatusDone, 0x02},
		{"done with trailing bytes", []byte{0x00, 0x06, 0xE8, 0x00, 0x01}, StatusDone, 0xE8},
		{"adding controller node zero", []byte{0x00, 0x04, 0x00}, StatusAddingController, 0x00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Decode(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.status, report.Status)
			assert.Equal(t, NodeContext{NodeID: tt.nodeID}, report.Context)
		})
	}
}

// TestDecodeUnrecognisedStatus accepts status bytes outside the defined
// range as context-free reports.
func TestDecodeUnrecognisedStatus(t *testing.T) {
	for _, code := range []byte{0x00, 0x08, 0x23, 0xFF} {
		report, err := Decode([]byte{0x00, code})
		require.NoError(t, err)
		assert.Equal(t, Status(code), report.Status)
		assert.Nil(t, report.Context)
		assert.Equal(t, "UNKNOWN", report.Status.String())
	}
}

func TestDecodeMalformedPayload(t *testing.T) {
	tests := []struct {
		name     string
		payload  []byte
		status   Status
		expected int
	}{
		{"empty", nil, 0, 2},
		{"single byte", []byte{0x00}, 0, 2},
		{"adding controller without node", []byte{0x00, 0x04}, StatusAddingController, 3},
		{"done without node", []byte{0x00, 0x06}, StatusDone, 3},
		{"adding slave without node", []byte{0x00, 0x03}, StatusAddingSlave, 7},
		{"adding slave without specific", []byte{0x00, 0x03, 0x02, 0x03, 0x15, 0x04}, StatusAddingSlave, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Decode(tt.payload)
			require.Error(t, err)
			assert.Nil(t, report)
			assert.True(t, errors.Is(err, ErrMalformedPayload))

			var mpe *MalformedPayloadError
			require.True(t, errors.As(err, &mpe))
			assert.Equal(t, tt.status, mpe.Status)
			assert.Equal(t, tt.expected, mpe.ExpectedMinLength)
			assert.Equal(t, len(tt.payload), mpe.ActualLength)
		})
	}
}

func TestMalformedPayloadErrorMessage(t *testing.T) {
	err := &MalformedPayloadError{Status: StatusAddingSlave, ExpectedMinLength: 7, ActualLength: 4}
	assert.Equal(t, "malformed add-node payload: status ADDING_SLAVE (3) needs at least 7 bytes, got 4", err.Error())
}

func TestSplitCommandClasses(t *testing.T) {
	const mark = byte(commandclass.SupportControlMark)

	tests := []struct {
		name       string
		list       []byte
		supported  []commandclass.ID
		controlled []commandclass.ID
	}{
		{
			name:       "empty list",
			list:       []byte{},
			supported:  []commandclass.ID{},
			controlled: []commandclass.ID{},
		},
		{
			name:       "no mark",
			list:       []byte{0x20, 0x25, 0x86},
			supported:  []commandclass.ID{0x20, 0x25, 0x86},
			controlled: []commandclass.ID{},
		},
		{
			name:       "mark first",
			list:       []byte{mark, 0x20, 0x26},
			supported:  []commandclass.ID{},
			controlled: []commandclass.ID{0x20, 0x26},
		},
		{
			name:       "mark last",
			list:       []byte{0x20, 0x26, mark},
			supported:  []commandclass.ID{0x20, 0x26},
			controlled: []commandclass.ID{},
		},
		{
			name:       "mark only",
			list:       []byte{mark},
			supported:  []commandclass.ID{},
			controlled: []commandclass.ID{},
		},
		{
			// Assumption: a repeated mark is consumed and changes nothing.
			name:       "repeated mark",
			list:       []byte{0x01, mark, 0x25, mark, 0x26},
			supported:  []commandclass.ID{0x01},
			controlled: []commandclass.ID{0x25, 0x26},
		},
		{
			name:       "adjacent marks",
			list:       []byte{0x72, mark, mark, 0x2B},
			supported:  []commandclass.ID{0x72},
			controlled: []commandclass.ID{0x2B},
		},
		{
			name:       "unknown ids kept",
			list:       []byte{0xD7, 0x00, mark, 0xF1},
			supported:  []commandclass.ID{0xD7, 0x00},
			controlled: []commandclass.ID{0xF1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			supported, controlled := splitCommandClasses(tt.list, commandclass.SupportControlMark)
			assert.Equal(t, tt.supported, supported)
			assert.Equal(t, tt.controlled, controlled)
		})
	}
}

// TestSplitReconstructsList re-inserts the mark between the two lists and
// compares with the wire bytes, for lists with at most one mark.
func TestSplitReconstructsList(t *testing.T) {
	const mark = byte(commandclass.SupportControlMark)

	lists := [][]byte{
		{},
		{0x01, 0x5E, mark, 0x25, 0x26},
		{0x20, 0x25, 0x27, 0x72, 0x86},
		{mark, 0x20},
		{0x5E, 0x86, 0x72, 0x5A, 0x73, 0x85, 0x59, mark},
	}

	for _, list := range lists {
		payload := append([]byte{0x00, 0x03, 0x02, byte(len(list) + 3), 0x04, 0x10, 0x01}, list...)
		report, err := Decode(payload)
		require.NoError(t, err)

		ctx := report.Context.(SlaveContext)
		var rebuilt []byte
		for _, id := range ctx.SupportedCommandClasses {
			rebuilt = append(rebuilt, byte(id))
		}
		if bytes.IndexByte(list, mark) >= 0 {
			rebuilt = append(rebuilt, mark)
		}
		for _, id := range ctx.ControlledCommandClasses {
			rebuilt = append(rebuilt, byte(id))
		}
		assert.Equal(t, list, append([]byte{}, rebuilt...), "list % X", list)
	}
}

func TestDecodeAddingSlaveBoundaries(t *testing.T) {
	// Exactly the fixed prefix: both lists empty.
	report, err := Decode(addingSlavePayload[:7])
	require.NoError(t, err)
	ctx := report.Context.(SlaveContext)
	assert.NotNil(t, ctx.SupportedCommandClasses)
	assert.NotNil(t, ctx.ControlledCommandClasses)
	assert.Empty(t, ctx.SupportedCommandClasses)
	assert.Empty(t, ctx.ControlledCommandClasses)
}

func TestDecodeIsDeterministicAndDoesNotAlias(t *testing.T) {
	payload := append([]byte(nil), addingSlavePayload...)

	first, err := Decode(payload)
	require.NoError(t, err)
	second, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Mutating the input leaves the report untouched.
	payload[2] = 0x7F
	payload[7] = 0x99
	ctx := first.Context.(SlaveContext)
	assert.Equal(t, uint8(2), ctx.NodeID)
	assert.Equal(t, commandclass.ID(0x01), ctx.SupportedCommandClasses[0])
	assert.Equal(t, byte(0x02), first.Raw[2])
}

func TestDecodeConcurrent(t *testing.T) {
	want, err := Decode(addingSlavePayload)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got, err := Decode(addingSlavePayload)
				if err != nil {
					errs <- err
					return
				}
				if got.Context.(SlaveContext).NodeID != want.Context.(SlaveContext).NodeID {
					errs <- errors.New("inconsistent decode")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestDecodeFrame(t *testing.T) {
	f := &wire.Frame{Type: wire.FrameTypeRequest, Function: wire.FuncAddNodeToNetwork, Payload: []byte{0x00, 0x06, 0x05}}

	report, err := DecodeFrame(f)
	require.NoError(t, err)
	assert.Equal(t, StatusDone, report.Status)
	assert.Equal(t, NodeContext{NodeID: 5}, report.Context)

	_, err = DecodeFrame(&wire.Frame{Type: wire.FrameTypeResponse, Function: wire.FuncAddNodeToNetwork, Payload: []byte{0x01}})
	assert.ErrorIs(t, err, ErrUnexpectedFunction)

	_, err = DecodeFrame(&wire.Frame{Type: wire.FrameTypeRequest, Function: wire.FuncSendData, Payload: []byte{0x00, 0x01}})
	assert.ErrorIs(t, err, ErrUnexpectedFunction)

	_, err = DecodeFrame(&wire.Frame{Type: wire.FrameTypeRequest, Function: wire.FuncAddNodeToNetwork, Payload: []byte{0x00}})
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestStatusProperties(t *testing.T) {
	tests := []struct {
		status     Status
		name       string
		hasContext bool
		terminal   bool
		minLen     int
	}{
		{StatusReady, "READY", false, false, 2},
		{StatusNodeFound, "NODE_FOUND", false, false, 2},
		{StatusAddingSlave, "ADDING_SLAVE", true, false, 7},
		{StatusAddingController, "ADDING_CONTROLLER", true, false, 3},
		{StatusProtocolDone, "PROTOCOL_DONE", false, false, 2},
		{StatusDone, "DONE", true, true, 3},
		{StatusFailed, "FAILED", false, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.status.String())
			assert.Equal(t, tt.hasContext, tt.status.HasContext())
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
			assert.Equal(t, tt.minLen, tt.status.MinPayloadLength())
		})
	}
}
