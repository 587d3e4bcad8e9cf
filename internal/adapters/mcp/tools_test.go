package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treewarden/internal/adapters/memfs"
	"treewarden/internal/application/commands"
	"treewarden/internal/domain"
)

func newGuard(t *testing.T) (*guard, *memfs.FS) {
	t.Helper()

	fs := memfs.New("", domain.DefaultRoot)
	session, err := commands.NewSession(fs, domain.DefaultSchema())
	require.NoError(t, err)
	return &guard{session: session}, fs
}

func call(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()

	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text, res.IsError
}

func TestPing(t *testing.T) {
	text, isErr := call(t, pingHandler(), nil)
	assert.False(t, isErr)
	assert.Equal(t, "pong", text)
}

func TestPaths_RequiresBaseName(t *testing.T) {
	g, _ := newGuard(t)

	text, isErr := call(t, g.pathsHandler(), nil)
	assert.True(t, isErr)
	assert.Contains(t, text, "base directory name is required")

	text, isErr = call(t, g.pathsHandler(), map[string]any{"base_name": "Game"})
	assert.False(t, isErr)
	assert.Contains(t, text, "Assets/Game/Art/UI")
	assert.Contains(t, text, "Assets/Plugins/ThirdParty")
}

func TestCreateValidateRemediate(t *testing.T) {
	g, fs := newGuard(t)

	text, isErr := call(t, g.createHandler(), map[string]any{"base_name": "Game"})
	require.False(t, isErr, text)
	assert.Contains(t, text, "35 folder(s) created")

	// base name is remembered between calls
	text, isErr = call(t, g.validateHandler(), nil)
	require.False(t, isErr, text)
	assert.Equal(t, domain.SuccessMessage, text)

	fs.MkdirAll("Assets/LegacyStuff")

	text, isErr = call(t, g.remediateHandler(), nil)
	require.False(t, isErr, text)
	assert.Contains(t, text, "moved Assets/LegacyStuff -> Assets/Plugins/ThirdParty/LegacyStuff")
	assert.Contains(t, text, domain.SuccessMessage)
	assert.True(t, fs.Exists("Assets/Plugins/ThirdParty/LegacyStuff"))
}

func TestRemediate_ReportsFailures(t *testing.T) {
	g, fs := newGuard(t)
	_, isErr := call(t, g.createHandler(), map[string]any{"base_name": "Game"})
	require.False(t, isErr)
	fs.MkdirAll("Assets/Dup")
	fs.MkdirAll("Assets/Plugins/ThirdParty/Dup")

	text, isErr := call(t, g.remediateHandler(), nil)
	assert.False(t, isErr, "per-item failures are part of the summary")
	assert.Contains(t, text, "failed Assets/Dup")
	assert.Contains(t, text, "1 failed")
}

func TestInvalidBaseName(t *testing.T) {
	g, fs := newGuard(t)

	text, isErr := call(t, g.createHandler(), map[string]any{"base_name": "../escape"})
	assert.True(t, isErr)
	assert.Contains(t, text, "path separators")
	assert.Equal(t, memfs.Stats{}, fs.Stats())
}
