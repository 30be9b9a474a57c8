package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/lanabank/scenariogen/internal/scenario"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No scenario files found
	ErrCodeParseFailed = "E004" // Scenario parse failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeWriteFailed = "E007" // File write error
)

// LoadError represents an error that occurred while loading scenarios.
type LoadError struct {
	Code    string
	Path    string // offending file, when known
	Message string
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadedScenario pairs a parsed scenario with its source file.
type LoadedScenario struct {
	Path     string
	Scenario *scenario.Scenario
}

// LoadScenarios parses every scenario file under dir. A malformed file is
// fatal to that scenario only: the error is collected and parsing
// continues with the remaining files, so one bad document never aborts
// the batch.
func LoadScenarios(dir string) ([]LoadedScenario, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("scenarios directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing scenarios directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	files, err := FindScenarioFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(files) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no scenario files found in %s", dir)}}
	}

	var (
		loaded []LoadedScenario
		errs   []error
	)
	for _, path := range files {
		s, err := scenario.ParseFile(path)
		if err != nil {
			errs = append(errs, convertParseError(err, path))
			continue
		}
		loaded = append(loaded, LoadedScenario{Path: path, Scenario: s})
	}

	return loaded, errs
}

// FindScenarioFiles walks the directory and returns all .yml/.yaml file
// paths, sorted for deterministic batch order.
func FindScenarioFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yml", ".yaml":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// convertParseError converts a scenario parse error to a LoadError.
func convertParseError(err error, path string) *LoadError {
	var perr *scenario.ParseError
	if errors.As(err, &perr) {
		return &LoadError{Code: ErrCodeParseFailed, Path: path, Message: perr.Message}
	}
	return &LoadError{Code: ErrCodeGeneric, Path: path, Message: err.Error()}
}
