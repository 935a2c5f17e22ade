package app

import (
	"context"
	goerrors "errors"

	"github.com/muesli/cancelreader"

	"github.com/rileyhilliard/cgtop/internal/events"
)

// runInput owns the terminal input stream for the lifetime of the run. It
// blocks in Read, decodes raw bytes into intents, and publishes them. The
// coordinator unblocks it at shutdown through reader.Cancel. If the input
// stream fails for any other reason the worker requests termination, since
// an unresponsive monitor with no keyboard is worse than no monitor.
func (a *App) runInput(ctx context.Context, reader cancelreader.CancelReader) {
	buf := make([]byte, 64)
	for {
		n, err := reader.Read(buf)
		if err != nil {
			if goerrors.Is(err, cancelreader.ErrCanceled) || ctx.Err() != nil {
				return
			}
			a.log.Error("input stream failed: %v", err)
			a.publish(ctx, events.Terminate{})
			return
		}
		for _, intent := range decodeKeys(buf[:n]) {
			if !a.publish(ctx, events.KeyInput{Intent: intent}) {
				return
			}
		}
	}
}

// decodeKeys translates a raw read into zero or more intents. Arrow keys
// arrive as three-byte CSI sequences; everything else is a single byte.
// Unrecognized bytes are dropped.
func decodeKeys(buf []byte) []events.Intent {
	var intents []events.Intent
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == 0x1b && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				intents = append(intents, events.IntentUp)
			case 'B':
				intents = append(intents, events.IntentDown)
			case 'C':
				intents = append(intents, events.IntentToggle)
			case 'D':
				intents = append(intents, events.IntentCollapse)
			}
			i += 2
			continue
		}

		switch b {
		case 'q', 0x03: // ctrl-c
			intents = append(intents, events.IntentQuit)
		case 'k':
			intents = append(intents, events.IntentUp)
		case 'j':
			intents = append(intents, events.IntentDown)
		case 'h':
			intents = append(intents, events.IntentCollapse)
		case 'l', '\r', '\n', ' ':
			intents = append(intents, events.IntentToggle)
		case 'p':
			intents = append(intents, events.IntentParent)
		case 'r':
			intents = append(intents, events.IntentRefresh)
		case '?':
			intents = append(intents, events.IntentHelp)
		}
	}
	return intents
}
