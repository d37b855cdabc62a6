package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcdev12/orderalone/go/internal/kiosk"
)

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "01:00", formatTime(60))
	assert.Equal(t, "00:09", formatTime(9))
	assert.Equal(t, "00:00", formatTime(0))
}

func TestDispatch_LocalCommands(t *testing.T) {
	var out bytes.Buffer
	view := newTerminal(&out)

	assert.False(t, view.dispatch(context.Background(), nil, "   "))
	assert.False(t, view.dispatch(context.Background(), nil, "help"))
	assert.Contains(t, out.String(), "commands:")

	out.Reset()
	assert.False(t, view.dispatch(context.Background(), nil, "dance"))
	assert.Contains(t, out.String(), `unknown command "dance"`)

	assert.True(t, view.dispatch(context.Background(), nil, "quit"))
}

func TestOnChange_RendersOnceWhenRoundEnds(t *testing.T) {
	var out bytes.Buffer
	view := newTerminal(&out)

	view.onChange(kiosk.Snapshot{Authenticated: true, Phase: kiosk.PhaseRunning, Remaining: 31})
	assert.Empty(t, out.String())

	view.onChange(kiosk.Snapshot{Authenticated: true, Phase: kiosk.PhaseRunning, Remaining: 30})
	assert.Contains(t, out.String(), "00:30 left")

	out.Reset()
	score := 4
	ended := kiosk.Snapshot{Authenticated: true, View: kiosk.ViewScore, Phase: kiosk.PhaseEnded, FinalScore: &score}
	view.onChange(ended)
	assert.Contains(t, out.String(), "final score 4")

	out.Reset()
	view.onChange(ended)
	assert.Empty(t, out.String())
}
