// Package inclusion implements the add-node (inclusion) message of the
// controller serial API.
//
// # Request
//
// The host opens the inclusion window by sending ADD_NODE_TO_NETWORK with a
// single mode byte:
//
//	bit 7    high power
//	bit 6    network wide
//	bits 0-5 node type (1=any .. 6=stop failed)
//
// # Status Reports
//
// While the window is open the controller sends callbacks with the same
// function id. The payload layout depends on the status byte:
//
//	[0] opaque  [1] status  [...] status dependent
//
//	READY, NODE_FOUND, PROTOCOL_DONE, FAILED   no further fields
//	ADDING_CONTROLLER, DONE                    [2] node id
//	ADDING_SLAVE                               [2] node id  [3] length
//	                                           [4] basic  [5] generic  [6] specific
//	                                           [7:] command classes
//
// The command class list of ADDING_SLAVE holds the supported command classes,
// then the Support/Control Mark (0xEF), then the controlled command classes.
//
// Encode and Decode are pure functions and safe for concurrent use. Sequencing
// the reports of one inclusion attempt is left to the caller.
package inclusion
