// Package csvfile stores friendship rows as `"handle",id` lines without a
// header.
package csvfile

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lisanmuaddib/twfriends/pkg/friends"
	"github.com/sirupsen/logrus"
)

// Store reads and writes friendship rows on the local filesystem.
type Store struct {
	logger *logrus.Logger
}

// New creates a Store.
func New(logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.New()
	}
	return &Store{logger: logger}
}

// ReadRows loads the rows of the file at path. Reading stops with a
// *friends.TooBigError as soon as a row past maxRows is found.
func (s *Store) ReadRows(path string, maxRows int) ([]friends.Friendship, error) {
	log := s.logger.WithField("path", path)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", friends.ErrCSVNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	var rows []friends.Friendship
	for rowNumber := 1; ; rowNumber++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", friends.ErrBadCSV, err)
		}
		if rowNumber > maxRows {
			log.WithField("row", rowNumber).Warn("CSV file is too big")
			return nil, &friends.TooBigError{Row: rowNumber, Limit: maxRows}
		}

		row, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", friends.ErrBadCSV, rowNumber, err)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", friends.ErrEmptyCSV, path)
	}

	log.WithField("rows", len(rows)).Debug("Loaded rows")
	return rows, nil
}

func parseRecord(record []string) (friends.Friendship, error) {
	if len(record) < 2 {
		return friends.Friendship{}, fmt.Errorf("expected 2 columns, got %d", len(record))
	}
	id, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
	if err != nil {
		return friends.Friendship{}, fmt.Errorf("invalid id %q: %w", record[1], err)
	}
	return friends.Friendship{Handle: record[0], RemoteID: id}, nil
}

// WriteRows writes rows to path, creating its directory when needed. Handles
// are always quoted, ids never are.
func (s *Store) WriteRows(path string, rows []friends.Friendship) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	for _, row := range rows {
		handle := strings.ReplaceAll(row.Handle, `"`, `""`)
		if _, err := fmt.Fprintf(w, "\"%s\",%d\r\n", handle, row.RemoteID); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	s.logger.WithFields(logrus.Fields{
		"path": path,
		"rows": len(rows),
	}).Debug("Wrote rows")
	return nil
}

var _ friends.Store = (*Store)(nil)
