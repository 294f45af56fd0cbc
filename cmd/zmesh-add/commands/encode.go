package commands

import (
	"fmt"
	"io"

	"github.com/zmesh-protocol/zmesh-go/pkg/inclusion"
	"github.com/zmesh-protocol/zmesh-go/pkg/wire"
)

// RunEncode prints the payload and complete frame of an add-node request.
func RunEncode(req inclusion.Request, w io.Writer) error {
	frame, err := inclusion.MarshalFrame(req)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	fmt.Fprintf(w, "Request: %s\n", req)
	fmt.Fprintf(w, "Payload: %s\n", wire.HexBytes(inclusion.Encode(req)))
	fmt.Fprintf(w, "Frame:   %s\n", wire.HexBytes(frame))
	return nil
}
