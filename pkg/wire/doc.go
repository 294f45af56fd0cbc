// Package wire defines the serial frame envelope spoken between a host and
// a mesh network controller.
//
// # Data Frames
//
// Every command and report travels in a data frame:
//
//	SOF | LEN | TYPE | FUNC | PAYLOAD... | CHECKSUM
//
//   - SOF: start of frame, always 0x01
//   - LEN: number of bytes after LEN, i.e. TYPE..CHECKSUM
//   - TYPE: 0x00 request (host to controller), 0x01 response
//   - FUNC: function id selecting the command
//   - CHECKSUM: 0xFF XOR every byte from LEN to the last payload byte
//
// # Control Bytes
//
// Data frames are acknowledged with single-byte control frames: ACK (0x06),
// NAK (0x15, checksum failure) and CAN (0x18, frame dropped).
//
// # Dispatch
//
// Callers dispatch inbound frames on the (TYPE, FUNC) pair, see MessageKey.
// Unsolicited callbacks from the controller (for example add-node status
// reports) arrive as request frames carrying the same function id as the
// command that triggered them.
package wire
