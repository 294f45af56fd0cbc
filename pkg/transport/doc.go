// Package transport carries serial API frames between the host and a
// controller.
//
// The transport layer handles:
//   - Serial port setup (115200 baud, 8N1)
//   - SOF-delimited framing with checksum validation
//   - ACK/NAK/CAN acknowledgement and retransmission
//   - Connection state management
//
// # Protocol Stack
//
//	┌────────────────────────────────┐
//	│   Function payloads            │
//	├────────────────────────────────┤
//	│   SOF LEN TYPE FUNC .. CHK     │
//	├────────────────────────────────┤
//	│   UART / USB CDC ACM           │
//	└────────────────────────────────┘
//
// # Acknowledgement
//
// Every data frame is answered with a single control byte:
//   - ACK: frame accepted
//   - NAK: checksum or format error, sender retransmits
//   - CAN: frame collided with one sent by the other side
//
// Send retransmits up to three times, waiting 1.6 seconds for each ACK.
package transport
