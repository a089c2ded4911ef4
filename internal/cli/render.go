package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/bookcourier/bookcourier/internal/notify"
)

// Renderer is the single subscriber that turns notifications into terminal
// output. Core components publish; only the renderer prints.
type Renderer struct {
	out    io.Writer
	cancel func()
	wg     sync.WaitGroup
}

// NewRenderer subscribes to the broadcaster and starts printing.
func NewRenderer(out io.Writer, b *notify.Broadcaster) *Renderer {
	ch, cancel := b.Subscribe()
	r := &Renderer{out: out, cancel: cancel}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for n := range ch {
			fmt.Fprintf(out, "%s %s\n", prefix(n.Level), n.Message)
		}
	}()
	return r
}

// Stop unsubscribes and waits for in-flight notifications to drain.
func (r *Renderer) Stop() {
	r.cancel()
	r.wg.Wait()
}

func prefix(level notify.Level) string {
	switch level {
	case notify.LevelSuccess:
		return "[ok]"
	case notify.LevelError:
		return "[error]"
	case notify.LevelWarning:
		return "[warn]"
	default:
		return "[info]"
	}
}
