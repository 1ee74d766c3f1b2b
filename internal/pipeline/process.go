package pipeline

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sheetnorm/internal"
	"sheetnorm/internal/config"
	"sheetnorm/internal/fileio"
	"sheetnorm/internal/schema"
	"sheetnorm/internal/storage"
)

// ProcessingService drives the engine over files: load, run, write the
// standardized copy and record the outcome.
type ProcessingService struct {
	db     *storage.DB
	cfg    config.Config
	engine *Engine
}

func NewProcessingService(db *storage.DB, cfg config.Config, s *schema.Schema) (*ProcessingService, error) {
	engine, err := NewEngine(cfg, s)
	if err != nil {
		return nil, err
	}
	return &ProcessingService{db: db, cfg: cfg, engine: engine}, nil
}

type ProcessResult struct {
	File   string
	Output string
	Result *RunResult
}

// ProcessFile standardizes one spreadsheet into outDir, keeping the original
// file name. The run is recorded whether it succeeds or fails.
func (s *ProcessingService) ProcessFile(path, sheet, outDir string, review ReviewFunc) (ProcessResult, error) {
	trace := traceID()
	name := filepath.Base(path)

	table, err := fileio.ReadSheet(path, sheet)
	if err != nil {
		s.record(trace, name, nil, err)
		return ProcessResult{}, err
	}

	result, err := s.engine.Run(table, review)
	if err != nil {
		s.record(trace, name, nil, err)
		return ProcessResult{}, err
	}

	outPath := filepath.Join(outDir, name)
	if err := fileio.WriteTable(result.Table, outPath); err != nil {
		s.record(trace, name, &result.Report, err)
		return ProcessResult{}, err
	}

	s.record(trace, name, &result.Report, nil)
	return ProcessResult{File: path, Output: outPath, Result: result}, nil
}

// ProcessFolder standardizes every supported file of a folder into outDir.
// One file's failure is captured and the batch keeps going.
func (s *ProcessingService) ProcessFolder(dir, outDir string, review ReviewFunc) ([]ProcessResult, []*internal.BatchItemError, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	var done []ProcessResult
	var failed []*internal.BatchItemError
	for _, entry := range entries {
		if entry.IsDir() || !supportedTableFile(entry.Name()) {
			continue
		}
		res, err := s.ProcessFile(filepath.Join(dir, entry.Name()), "", outDir, review)
		if err != nil {
			failed = append(failed, &internal.BatchItemError{File: entry.Name(), Err: err})
			continue
		}
		done = append(done, res)
	}
	return done, failed, nil
}

func (s *ProcessingService) record(trace, file string, report *internal.Report, runErr error) {
	if s.db == nil {
		return
	}
	status := string(internal.StageFinalized)
	msg := ""
	if runErr != nil {
		status = string(internal.StageFailed)
		msg = runErr.Error()
	}
	_, _ = s.db.InsertRun(trace, file, status, report, msg)
}

func supportedTableFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xls", ".csv", ".html", ".htm":
		return true
	}
	return false
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
