package logger

import (
	"context"
	"os"
	"strings"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

// FormatEnv selects the log format; "json" switches to structured output.
const FormatEnv = "KILN_LOG_FORMAT"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			l := &Logger{}
			l.SetOutput(os.Stderr)
			l.SetJSON(strings.EqualFold(os.Getenv(FormatEnv), "json"))
			return l, nil
		},
	})
}
