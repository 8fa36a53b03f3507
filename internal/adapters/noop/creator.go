package noop

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/goliatone/go-docmigrate/internal/logging"
	"github.com/goliatone/go-docmigrate/pkg/interfaces"
)

// ObjectCreator stands in for a remote content space. It announces every call
// on its writer and always succeeds; nothing is sent anywhere.
type ObjectCreator struct {
	mu     sync.Mutex
	out    io.Writer
	logger interfaces.Logger
	calls  int
}

var _ interfaces.ObjectCreator = (*ObjectCreator)(nil)

// NewObjectCreator returns the stub creator. A nil writer discards the
// announcement line; a nil logger disables logging.
func NewObjectCreator(out io.Writer, logger interfaces.Logger) *ObjectCreator {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &ObjectCreator{out: out, logger: logger}
}

// CreateObject prints "  Creating: <title>" and reports success.
func (c *ObjectCreator) CreateObject(ctx context.Context, spaceID, title string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.out, "  Creating: %s\n", title)
	c.calls++
	c.logger.Debug("creator.noop.accepted", "space_id", spaceID, "title", title, "size_bytes", len(body))
	return nil
}

// Calls reports how many objects the stub has accepted.
func (c *ObjectCreator) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
