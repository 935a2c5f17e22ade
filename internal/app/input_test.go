package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rileyhilliard/cgtop/internal/events"
)

func TestDecodeKeys(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []events.Intent
	}{
		{name: "quit letter", in: []byte("q"), want: []events.Intent{events.IntentQuit}},
		{name: "ctrl-c", in: []byte{0x03}, want: []events.Intent{events.IntentQuit}},
		{name: "vim up", in: []byte("k"), want: []events.Intent{events.IntentUp}},
		{name: "vim down", in: []byte("j"), want: []events.Intent{events.IntentDown}},
		{name: "arrow up", in: []byte{0x1b, '[', 'A'}, want: []events.Intent{events.IntentUp}},
		{name: "arrow down", in: []byte{0x1b, '[', 'B'}, want: []events.Intent{events.IntentDown}},
		{name: "arrow right expands", in: []byte{0x1b, '[', 'C'}, want: []events.Intent{events.IntentToggle}},
		{name: "arrow left collapses", in: []byte{0x1b, '[', 'D'}, want: []events.Intent{events.IntentCollapse}},
		{name: "enter toggles", in: []byte("\r"), want: []events.Intent{events.IntentToggle}},
		{name: "space toggles", in: []byte(" "), want: []events.Intent{events.IntentToggle}},
		{name: "parent", in: []byte("p"), want: []events.Intent{events.IntentParent}},
		{name: "refresh", in: []byte("r"), want: []events.Intent{events.IntentRefresh}},
		{name: "help", in: []byte("?"), want: []events.Intent{events.IntentHelp}},
		{name: "unknown bytes dropped", in: []byte("zx9"), want: nil},
		{name: "empty read", in: nil, want: nil},
		{
			name: "burst decodes in order",
			in:   append([]byte("jj"), 0x1b, '[', 'A', 'q'),
			want: []events.Intent{events.IntentDown, events.IntentDown, events.IntentUp, events.IntentQuit},
		},
		{
			name: "truncated escape sequence dropped",
			in:   []byte{0x1b, '['},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeKeys(tt.in))
		})
	}
}
