package sampledata

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marketfeed/itchreplay/framer"
)

func TestGenerateDecodesCleanly(t *testing.T) {
	b := Generate(DefaultConfig)
	count, err := Verify(b)
	require.NoError(t, err)
	require.Greater(t, count, 0)
}

func TestGenerateFramesCleanly(t *testing.T) {
	b := Generate(DefaultConfig)
	fr := framer.New(bytes.NewReader(b))
	n := 0
	for fr.Scan() {
		n++
	}
	require.NoError(t, fr.Err())
	require.Greater(t, n, 0)
}
