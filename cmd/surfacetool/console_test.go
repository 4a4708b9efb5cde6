package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-surface/protocol"
)

type sendLog struct{ msgs []protocol.Message }

func (l *sendLog) Send(m protocol.Message) error {
	l.msgs = append(l.msgs, m)
	return nil
}

func TestParseSend(t *testing.T) {
	m, err := parseSend(`TransportTempo {"Tempo": 120.5}`)
	require.NoError(t, err)
	assert.Equal(t, &protocol.TransportTempo{Tempo: 120.5}, m)

	m, err = parseSend("TransportStop")
	require.NoError(t, err)
	assert.Equal(t, &protocol.TransportStop{}, m)
}

func TestParseSendRejects(t *testing.T) {
	for _, line := range []string{
		"",
		"NoSuchMessage",
		"TransportAutomationOverrideActive", // host to controller only
		`TransportTempo {"Tempo":`,
	} {
		_, err := parseSend(line)
		assert.Error(t, err, line)
	}
}

func TestExecLine(t *testing.T) {
	var out bytes.Buffer
	log := &sendLog{}

	require.NoError(t, execLine(&out, log, `send TransportPlay {"Playing":true}`))
	require.Len(t, log.msgs, 1)
	assert.Equal(t, &protocol.TransportPlay{Playing: true}, log.msgs[0])

	require.NoError(t, execLine(&out, log, "catalog TransportTempo"))
	assert.Contains(t, out.String(), "TransportTempo")

	assert.ErrorIs(t, execLine(&out, log, "quit"), errQuit)
	assert.Error(t, execLine(&out, log, "frobnicate"))
	assert.NoError(t, execLine(&out, log, "   "))
}

func TestPrintCatalogListsEveryMessage(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printCatalog(&out, nil))
	lines := bytes.Count(out.Bytes(), []byte("\n"))
	assert.Equal(t, len(protocol.All())+1, lines)
}
