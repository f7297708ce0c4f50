package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewBoardFileForTesting returns a BoardFile inside the test's temp dir.
func NewBoardFileForTesting(t *testing.T) *BoardFile {
	t.Helper()
	return NewBoardFileWithPath(filepath.Join(t.TempDir(), "board.json"))
}

func TestDefaultBoardFilePath(t *testing.T) {
	t.Run("environment override", func(t *testing.T) {
		t.Setenv(boardFileEnv, "/tmp/some/../board.json")
		assert.Equal(t, "/tmp/board.json", DefaultBoardFilePath())
	})

	t.Run("home directory", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv(boardFileEnv, "")
		t.Setenv("HOME", home)
		assert.Equal(t, filepath.Join(home, "kanbanterm.json"), DefaultBoardFilePath())
	})
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	boardFile := NewBoardFileForTesting(t)

	board := NewBoard()
	board.Append(Backlog, "A")
	board.Append(Done, "B")

	require.NoError(t, boardFile.Save(board))

	loaded := boardFile.Load()
	assert.Equal(t, []string{"A"}, loaded.Texts(Backlog))
	assert.Empty(t, loaded.Texts(InProgress))
	assert.Equal(t, []string{"B"}, loaded.Texts(Done))

	for _, column := range AllColumns {
		original := board.Tasks(column)
		got := loaded.Tasks(column)
		require.Len(t, got, len(original))
		for i := range got {
			assert.Equal(t, original[i], got[i])
		}
	}
}

func TestRoundTripKeepsOrderDuplicatesAndBlankText(t *testing.T) {
	boardFile := NewBoardFileForTesting(t)

	board := NewBoard()
	for _, text := range []string{"same", "", "same", "日本語 🎉"} {
		board.Append(InProgress, text)
	}
	board.Append(Done, "same")

	require.NoError(t, boardFile.Save(board))
	loaded := boardFile.Load()

	assert.Equal(t, []string{"same", "", "same", "日本語 🎉"}, loaded.Texts(InProgress))
	assert.Equal(t, []string{"same"}, loaded.Texts(Done))
}

func TestSaveWritesNamedArrays(t *testing.T) {
	boardFile := NewBoardFileForTesting(t)

	board := NewBoard()
	board.Append(Backlog, "A")
	board.Append(InProgress, "B")
	require.NoError(t, boardFile.Save(board))

	data, err := os.ReadFile(boardFile.Path)
	require.NoError(t, err)

	var raw map[string][]map[string]string
	require.NoError(t, json.Unmarshal(data, &raw))

	require.Contains(t, raw, "backlog")
	require.Contains(t, raw, "in_progress")
	require.Contains(t, raw, "done")
	assert.Equal(t, "Backlog", raw["backlog"][0]["status"])
	assert.Equal(t, "A", raw["backlog"][0]["text"])
	assert.Equal(t, "InProgress", raw["in_progress"][0]["status"])
	assert.Empty(t, raw["done"])
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	boardFile := NewBoardFileForTesting(t)
	board := NewBoard()
	board.Append(Backlog, "A")

	require.NoError(t, boardFile.Save(board))
	require.NoError(t, boardFile.Save(board))

	entries, err := os.ReadDir(filepath.Dir(boardFile.Path))
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".tmp")
	}
}

func TestSaveCreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "board.json")
	boardFile := NewBoardFileWithPath(path)

	board := NewBoard()
	board.Append(Backlog, "A")
	require.NoError(t, boardFile.Save(board))

	assert.Equal(t, []string{"A"}, boardFile.Load().Texts(Backlog))
}

func TestSaveFailsWhenDestinationUnwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	boardFile := NewBoardFileWithPath(filepath.Join(blocker, "board.json"))
	err := boardFile.Save(NewBoard())
	require.Error(t, err)
}

func TestLoadMissingFileYieldsEmptyBoard(t *testing.T) {
	boardFile := NewBoardFileWithPath(filepath.Join(t.TempDir(), "does-not-exist.json"))

	board := boardFile.Load()
	require.NotNil(t, board)
	for _, column := range AllColumns {
		assert.Empty(t, board.Texts(column))
	}
}

func TestLoadCorruptFileYieldsEmptyBoard(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid json", "{not json"},
		{"array document", `[{"status":"Backlog","text":"A"}]`},
		{"wrong field type", `{"backlog":"A"}`},
		{"empty file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boardFile := NewBoardFileForTesting(t)
			require.NoError(t, os.WriteFile(boardFile.Path, []byte(tt.content), 0644))

			board := boardFile.Load()
			assert.Equal(t, 0, board.Total())
		})
	}
}

func TestLoadUnreadableFileYieldsEmptyBoard(t *testing.T) {
	// A directory where the file should be makes ReadFile fail with something
	// other than "not exist".
	path := filepath.Join(t.TempDir(), "board.json")
	require.NoError(t, os.Mkdir(path, 0755))

	board := NewBoardFileWithPath(path).Load()
	assert.Equal(t, 0, board.Total())
}

func TestLoadUsesSectionOverStatusAndAssignsIDs(t *testing.T) {
	boardFile := NewBoardFileForTesting(t)
	content := `{
  "backlog": [{"status": "Done", "text": "misfiled"}],
  "in_progress": [{"id": "fixed-id", "status": "InProgress", "text": "kept"}],
  "done": null
}`
	require.NoError(t, os.WriteFile(boardFile.Path, []byte(content), 0644))

	board := boardFile.Load()

	backlog := board.Tasks(Backlog)
	require.Len(t, backlog, 1)
	assert.Equal(t, Backlog, backlog[0].Column)
	assert.NotEmpty(t, backlog[0].ID)

	inProgress := board.Tasks(InProgress)
	require.Len(t, inProgress, 1)
	assert.Equal(t, "fixed-id", inProgress[0].ID)
	assert.Empty(t, board.Tasks(Done))
}

func TestSaveKeepsHiddenLockFileBesideBoard(t *testing.T) {
	boardFile := NewBoardFileForTesting(t)
	dir := filepath.Dir(boardFile.Path)
	assert.Equal(t, filepath.Join(dir, ".board.json.lock"), boardFile.lockPath())

	require.NoError(t, boardFile.Save(NewBoard()))

	_, err := os.Stat(boardFile.lockPath())
	assert.NoError(t, err)
}

func TestUpdateAppliesChange(t *testing.T) {
	boardFile := NewBoardFileForTesting(t)
	board := NewBoard()
	board.Append(Backlog, "existing")
	require.NoError(t, boardFile.Save(board))

	err := boardFile.Update(func(b *Board) error {
		_, err := b.Append(Done, "added")
		return err
	})
	require.NoError(t, err)

	loaded := boardFile.Load()
	assert.Equal(t, []string{"existing"}, loaded.Texts(Backlog))
	assert.Equal(t, []string{"added"}, loaded.Texts(Done))
}

func TestUpdateDoesNotWriteWhenChangeFails(t *testing.T) {
	boardFile := NewBoardFileForTesting(t)
	errRejected := errors.New("rejected")

	err := boardFile.Update(func(b *Board) error {
		b.Append(Backlog, "never saved")
		return errRejected
	})
	require.ErrorIs(t, err, errRejected)

	_, statErr := os.Stat(boardFile.Path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestConcurrentUpdatesKeepEveryTask(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	const writers = 20

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Separate BoardFiles open separate lock descriptors, like separate processes.
			errs <- NewBoardFileWithPath(path).Update(func(b *Board) error {
				_, err := b.Append(Backlog, fmt.Sprintf("task %d", i))
				return err
			})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	want := make([]string, 0, writers)
	for i := 0; i < writers; i++ {
		want = append(want, fmt.Sprintf("task %d", i))
	}
	assert.ElementsMatch(t, want, NewBoardFileWithPath(path).Load().Texts(Backlog))
}
