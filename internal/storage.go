package internal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

const boardFileEnv = "KANBANTERM_FILE"

// BoardFile loads and saves a Board as a single JSON document.
type BoardFile struct {
	Path   string
	logger *log.Logger
}

type boardDocument struct {
	Backlog    []taskRecord `json:"backlog"`
	InProgress []taskRecord `json:"in_progress"`
	Done       []taskRecord `json:"done"`
}

type taskRecord struct {
	ID     string `json:"id,omitempty"`
	Status string `json:"status"`
	Text   string `json:"text"`
}

// DefaultBoardFilePath returns $KANBANTERM_FILE, or ~/kanbanterm.json.
func DefaultBoardFilePath() string {
	if path := os.Getenv(boardFileEnv); path != "" {
		return filepath.Clean(path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "kanbanterm.json"
	}
	return filepath.Join(home, "kanbanterm.json")
}

func NewBoardFile() *BoardFile {
	return NewBoardFileWithPath(DefaultBoardFilePath())
}

func NewBoardFileWithPath(path string) *BoardFile {
	if path == "" {
		path = DefaultBoardFilePath()
	}
	return &BoardFile{
		Path:   filepath.Clean(path),
		logger: log.New(io.Discard),
	}
}

// WithLogger sets the logger used to report absorbed load failures.
func (f *BoardFile) WithLogger(logger *log.Logger) *BoardFile {
	if logger != nil {
		f.logger = logger
	}
	return f
}

// lockPath is a hidden file next to the board. It is left in place after a
// save so that every writer locks the same inode.
func (f *BoardFile) lockPath() string {
	dir, name := filepath.Split(f.Path)
	return filepath.Join(dir, "."+name+".lock")
}

// lock takes the exclusive writer lock, creating the board directory first.
func (f *BoardFile) lock() (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create board directory: %w", err)
	}
	lock := flock.New(f.lockPath())
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock board file: %w", err)
	}
	return lock, nil
}

// Load reads the board. A missing or unreadable file yields an empty board;
// the cause is logged, never returned.
func (f *BoardFile) Load() *Board {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			f.logger.Debug("board file not found, starting empty", "path", f.Path)
		} else {
			f.logger.Warn("failed to read board file, starting empty", "path", f.Path, "err", err)
		}
		return NewBoard()
	}

	var doc boardDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		f.logger.Warn("failed to parse board file, starting empty", "path", f.Path, "err", err)
		return NewBoard()
	}

	board := NewBoard()
	sections := []struct {
		column  Column
		records []taskRecord
	}{
		{Backlog, doc.Backlog},
		{InProgress, doc.InProgress},
		{Done, doc.Done},
	}
	for _, section := range sections {
		for _, record := range section.records {
			if record.Status != section.column.String() {
				f.logger.Debug("retagging task to its section", "status", record.Status, "column", section.column)
			}
			id := record.ID
			if id == "" {
				id = uuid.New().String()
			}
			if err := board.put(Task{ID: id, Text: record.Text, Column: section.column}); err != nil {
				f.logger.Warn("skipping task", "text", record.Text, "err", err)
			}
		}
	}

	f.logger.Info("board loaded", "path", f.Path, "tasks", board.Total())
	return board
}

// Save writes the whole board through a temp file and a rename, holding the
// writer lock for the duration.
func (f *BoardFile) Save(board *Board) error {
	lock, err := f.lock()
	if err != nil {
		return err
	}
	defer lock.Unlock()

	return f.write(board)
}

// Update loads the board, applies change and saves the result, all under the
// writer lock, so concurrent updates from other processes are not lost.
func (f *BoardFile) Update(change func(*Board) error) error {
	lock, err := f.lock()
	if err != nil {
		return err
	}
	defer lock.Unlock()

	board := f.Load()
	if err := change(board); err != nil {
		return err
	}
	return f.write(board)
}

// write replaces the board file. The caller holds the lock.
func (f *BoardFile) write(board *Board) error {
	dir := filepath.Dir(f.Path)
	doc := boardDocument{
		Backlog:    toRecords(board.Tasks(Backlog)),
		InProgress: toRecords(board.Tasks(InProgress)),
		Done:       toRecords(board.Tasks(Done)),
	}
	jsonData, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, ".kanbanterm-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		tempFile.Close()
		os.Remove(tempPath)
	}()

	writer := bufio.NewWriter(tempFile)
	if _, err := writer.Write(jsonData); err != nil {
		return fmt.Errorf("write board: %w", err)
	}
	if err := writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("write board: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("write board: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("sync board: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close board: %w", err)
	}

	if err := os.Rename(tempPath, f.Path); err != nil {
		return fmt.Errorf("replace board file: %w", err)
	}

	f.logger.Info("board saved", "path", f.Path, "tasks", board.Total())
	return nil
}

func toRecords(tasks []Task) []taskRecord {
	records := make([]taskRecord, 0, len(tasks))
	for _, task := range tasks {
		records = append(records, taskRecord{
			ID:     task.ID,
			Status: task.Column.String(),
			Text:   task.Text,
		})
	}
	return records
}
