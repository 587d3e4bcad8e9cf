package memfs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treewarden/internal/domain"
)

func TestCreateDirectory(t *testing.T) {
	fs := New("", "Assets")

	require.NoError(t, fs.CreateDirectory("Assets", "Game"))
	assert.True(t, fs.Exists("Assets/Game"))
	assert.Equal(t, 1, fs.Stats().Mkdirs)

	// existing directory is not an error and not counted
	require.NoError(t, fs.CreateDirectory("Assets", "Game"))
	assert.Equal(t, 1, fs.Stats().Mkdirs)

	err := fs.CreateDirectory("Assets/Missing", "Art")
	assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)

	fs.AddFile("Assets/readme")
	err = fs.CreateDirectory("Assets", "readme")
	assert.True(t, errors.Is(err, domain.ErrConflict), "got %v", err)

	err = fs.CreateDirectory("Assets", "a/b")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "got %v", err)
}

func TestListSubdirectories(t *testing.T) {
	fs := New("", "Assets/Zeta", "Assets/Alpha/Nested", "Assets/Mid")
	fs.AddFile("Assets/file.txt")

	got, err := fs.ListSubdirectories("Assets")
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/Alpha", "Assets/Mid", "Assets/Zeta"}, got)

	_, err = fs.ListSubdirectories("Nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestWriteMarker_Idempotent(t *testing.T) {
	fs := New("", "Assets/Game")

	require.NoError(t, fs.WriteMarker("Assets/Game"))
	require.NoError(t, fs.WriteMarker("Assets/Game"))
	assert.True(t, fs.HasMarker("Assets/Game"))
	assert.Equal(t, 1, fs.Stats().Markers)

	err := fs.WriteMarker("Assets/Gone")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMoveDirectory(t *testing.T) {
	fs := New("", "Assets/Legacy/Deep", "Assets/Plugins/ThirdParty")
	fs.AddFile("Assets/Legacy/Deep/.gitkeep")

	require.NoError(t, fs.MoveDirectory("Assets/Legacy", "Assets/Plugins/ThirdParty/Legacy"))
	assert.False(t, fs.Exists("Assets/Legacy"))
	assert.True(t, fs.Exists("Assets/Plugins/ThirdParty/Legacy/Deep"))
	assert.True(t, fs.HasFile("Assets/Plugins/ThirdParty/Legacy/Deep/.gitkeep"))
	assert.Equal(t, 1, fs.Stats().Moves)
}

func TestMoveDirectory_Failures(t *testing.T) {
	fs := New("", "Assets/A", "Assets/Q/A", "Assets/B")

	err := fs.MoveDirectory("Assets/A", "Assets/Q/A")
	assert.True(t, errors.Is(err, domain.ErrConflict), "got %v", err)
	assert.True(t, fs.Exists("Assets/A"), "source must be unchanged after a failed move")

	err = fs.MoveDirectory("Assets/Nope", "Assets/Q/Nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)

	err = fs.MoveDirectory("Assets/B", "Assets/Missing/B")
	assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)

	assert.Equal(t, 0, fs.Stats().Moves)
}

func TestFailOn(t *testing.T) {
	fs := New("", "Assets")
	boom := errors.New("permission denied")

	fs.FailOn(OpList, "Assets", boom)
	_, err := fs.ListSubdirectories("Assets")
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, domain.KindIOFailure, domain.KindOf(err))

	fs.FailOn(OpList, "Assets", nil)
	_, err = fs.ListSubdirectories("Assets")
	assert.NoError(t, err)
}
