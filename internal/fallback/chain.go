package fallback

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/leonwijng/filechooser/internal/logger"
)

// ErrUnsupported is returned by a Toolkit that cannot show the requested
// kind of chooser, for example one mixing files and directories.
var ErrUnsupported = errors.New("request not supported by toolkit")

// Chain is a Toolkit that tries its toolkits in order and hands a request
// to the next one when a toolkit returns ErrUnsupported.
type Chain struct {
	toolkits []Toolkit
	log      *slog.Logger
}

var _ Toolkit = (*Chain)(nil)

// NewChain returns a Chain trying toolkits in order.
func NewChain(log *slog.Logger, toolkits ...Toolkit) *Chain {
	return &Chain{toolkits: toolkits, log: logger.Or(log)}
}

func (c *Chain) Choose(req Request) (Response, bool, error) {
	for _, tk := range c.toolkits {
		resp, ok, err := tk.Choose(req)
		if errors.Is(err, ErrUnsupported) {
			c.log.Debug("toolkit passed on request",
				"toolkit", fmt.Sprintf("%T", tk),
				"reason", err)
			continue
		}
		return resp, ok, err
	}
	return Response{}, false, fmt.Errorf("%w: mode %s, multi %t", ErrUnsupported, req.Mode, req.MultiSelection)
}
