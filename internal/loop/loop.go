// Package loop provides the terminal game loop: one Client per connection,
// each driving its own game session at a fixed frame rate.
package loop

import (
	"bufio"
	"context"
	"io"
)

// Run plays on a single terminal until the player quits or ctx is cancelled.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts ClientOptions) error {
	c, err := NewClient(r, w, opts)
	if err != nil {
		return err
	}
	return c.Run(ctx)
}
