package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/Adda-Baaj/nievex-client/internal/history"
	"github.com/Adda-Baaj/nievex-client/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPayloadJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, formatJSON, api.Payload(`{"shortUrl":"https://s.id/abc"}`)))
	assert.Equal(t, "{\n  \"shortUrl\": \"https://s.id/abc\"\n}\n", buf.String())
}

func TestRenderPayloadYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, formatYAML, api.Payload(`{"shortUrl":"https://s.id/abc"}`)))
	assert.Equal(t, "shortUrl: https://s.id/abc\n", buf.String())
}

func TestRenderHistoryYAML(t *testing.T) {
	entries := []history.Entry{{
		ID:        "id-1",
		Kind:      history.KindUpload,
		Subject:   "cat.png",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}}

	var buf bytes.Buffer
	require.NoError(t, render(&buf, formatYAML, entries))
	assert.Contains(t, buf.String(), "kind: upload")
	assert.Contains(t, buf.String(), "subject: cat.png")
}

func TestValidateFormat(t *testing.T) {
	require.NoError(t, validateFormat("json"))
	require.NoError(t, validateFormat("yaml"))
	require.Error(t, validateFormat("xml"))
}
