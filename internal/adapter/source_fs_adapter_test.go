package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "elmscope.dev/pkg/elmscope/internal/model"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func TestLocalSourceFSAdapter_WalkRecursive(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Top.elm":           "module Top exposing (..)\n",
		"Nested/Deep.elm":   "module Nested.Deep exposing (..)\n",
		"Nested/notes.txt":  "ignore\n",
		"Other/Another.elm": "module Other.Another exposing (..)\n",
	})

	fs := NewLocalSourceFSAdapter()

	var visited []string

	err := fs.Walk(m.Path(root), true, func(path string, info os.FileInfo, err error) error {
		require.NoError(t, err)

		if !info.IsDir() {
			rel, relErr := filepath.Rel(root, path)
			require.NoError(t, relErr)
			visited = append(visited, filepath.ToSlash(rel))
		}

		return nil
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"Top.elm",
		"Nested/Deep.elm",
		"Nested/notes.txt",
		"Other/Another.elm",
	}, visited)
}

func TestLocalSourceFSAdapter_WalkNonRecursive(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Top.elm":         "module Top exposing (..)\n",
		"Nested/Deep.elm": "module Nested.Deep exposing (..)\n",
	})

	fs := NewLocalSourceFSAdapter()

	var visited []string

	err := fs.Walk(m.Path(root), false, func(path string, info os.FileInfo, err error) error {
		require.NoError(t, err)

		if !info.IsDir() {
			visited = append(visited, filepath.Base(path))
		}

		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Top.elm"}, visited)
}

func TestLocalSourceFSAdapter_OpenAndReadFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"Module.elm": "module Module exposing (..)\n"})

	fs := NewLocalSourceFSAdapter()
	path := fs.JoinPath(root, "Module.elm")

	content, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "module Module exposing (..)\n", string(content))

	reader, err := fs.Open(path)
	require.NoError(t, err)
	require.NoError(t, reader.Close())

	_, err = fs.Open(fs.JoinPath(root, "Absent.elm"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalSourceFSAdapter_WriteFileAndMkdirAll(t *testing.T) {
	root := t.TempDir()
	fs := NewLocalSourceFSAdapter()

	dir := fs.JoinPath(root, "reports", "shard_0")
	require.NoError(t, fs.MkdirAll(dir, 0o750))

	target := fs.JoinPath(string(dir), "out.yaml")
	require.NoError(t, fs.WriteFile(target, []byte("version: 1\n"), 0o600))

	content, err := fs.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "version: 1\n", string(content))
}

func TestLocalSourceFSAdapter_ReadDirNames(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"shard_0/reports.yaml": "version: 1\n",
		"shard_1/reports.yaml": "version: 1\n",
		"stray.txt":            "x\n",
	})

	fs := NewLocalSourceFSAdapter()

	entries, err := fs.ReadDirNames(m.Path(root))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	byName := make(map[string]bool, len(entries))
	for _, entry := range entries {
		byName[entry.Name] = entry.IsDir
	}

	assert.True(t, byName["shard_0"])
	assert.True(t, byName["shard_1"])
	assert.False(t, byName["stray.txt"])
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"Module.elm": "x = 1\n"})

	fs := NewLocalSourceFSAdapter()

	info, err := fs.FileInfo(fs.JoinPath(root, "Module.elm"))
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	info, err = fs.FileInfo(m.Path(root))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = fs.FileInfo(fs.JoinPath(root, "Absent.elm"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalSourceFSAdapter_FindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"elm.json":              "{}\n",
		"tests/Sub/Module.elm":  "module Sub.Module exposing (..)\n",
		"tests/AnotherTest.elm": "module AnotherTest exposing (..)\n",
	})

	fs := NewLocalSourceFSAdapter()

	found, err := fs.FindProjectRoot(fs.JoinPath(root, "tests", "Sub", "Module.elm"))
	require.NoError(t, err)
	assert.Equal(t, m.Path(root), found)

	found, err = fs.FindProjectRoot(fs.JoinPath(root, "tests"))
	require.NoError(t, err)
	assert.Equal(t, m.Path(root), found)
}

func TestLocalSourceFSAdapter_RelPath(t *testing.T) {
	fs := NewLocalSourceFSAdapter()

	rel, err := fs.RelPath(m.Path(filepath.Join("a", "b")), m.Path(filepath.Join("a", "b", "c", "D.elm")))
	require.NoError(t, err)
	assert.Equal(t, m.Path(filepath.Join("c", "D.elm")), rel)
}
