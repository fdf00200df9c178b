// Package health checks that the files a run depends on are usable before any
// question is asked, returning structured reports used by 'astroname doctor'.
package health

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/astroname/internal/definition"
	"github.com/ariel-frischer/astroname/internal/memory"
	"github.com/ariel-frischer/astroname/internal/output"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// Options names the files and directories to check.
type Options struct {
	DefinitionFile string
	AnswersFile    string
	StateDir       string
	// HistoryEnabled adds the state directory check.
	HistoryEnabled bool
}

// RunHealthChecks runs all health checks and returns a report.
func RunHealthChecks(opts Options) *HealthReport {
	report := &HealthReport{Passed: true}

	report.add(CheckDefinition(opts.DefinitionFile))
	report.add(CheckAnswers(opts.AnswersFile))
	report.add(CheckWritableDir("Answers directory", filepath.Dir(opts.AnswersFile)))
	if opts.HistoryEnabled {
		report.add(CheckWritableDir("State directory", opts.StateDir))
	}

	return report
}

func (r *HealthReport) add(check CheckResult) {
	r.Checks = append(r.Checks, check)
	if !check.Passed {
		r.Passed = false
	}
}

// CheckDefinition verifies the definition file can be read and validated.
func CheckDefinition(path string) CheckResult {
	def, warnings, err := definition.ReadFile(path)
	if err != nil {
		return CheckResult{Name: "Definition", Passed: false, Message: err.Error()}
	}
	msg := fmt.Sprintf("%s (%d items", path, len(def))
	if len(warnings) > 0 {
		msg += fmt.Sprintf(", %d warnings; run 'astroname validate'", len(warnings))
	}
	return CheckResult{Name: "Definition", Passed: true, Message: msg + ")"}
}

// CheckAnswers verifies the answers file is absent or parsable. A malformed
// file fails: the next run would start from defaults and overwrite it.
func CheckAnswers(path string) CheckResult {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return CheckResult{Name: "Answers", Passed: true, Message: fmt.Sprintf("%s not found (first run uses defaults)", path)}
	}

	snapshot, err := memory.NewFileStore(path, nil).Load()
	if err != nil {
		return CheckResult{Name: "Answers", Passed: false, Message: err.Error()}
	}
	if snapshot.UseDefaults {
		return CheckResult{
			Name:    "Answers",
			Passed:  false,
			Message: fmt.Sprintf("%s is unreadable or malformed; the next run starts from defaults and overwrites it", path),
		}
	}
	return CheckResult{Name: "Answers", Passed: true, Message: fmt.Sprintf("%s (%d remembered answers)", path, len(snapshot.Answers))}
}

// CheckWritableDir verifies files can be created in dir. A missing directory
// passes when its closest existing ancestor is writable, since it is created
// on first write.
func CheckWritableDir(name, dir string) CheckResult {
	target := dir
	for {
		info, err := os.Stat(target)
		if err == nil {
			if !info.IsDir() {
				return CheckResult{Name: name, Passed: false, Message: fmt.Sprintf("%s is not a directory", target)}
			}
			break
		}
		parent := filepath.Dir(target)
		if parent == target {
			return CheckResult{Name: name, Passed: false, Message: fmt.Sprintf("%s: %v", dir, err)}
		}
		target = parent
	}

	f, err := os.CreateTemp(target, ".astroname-doctor-*")
	if err != nil {
		return CheckResult{Name: name, Passed: false, Message: fmt.Sprintf("%s is not writable: %v", target, err)}
	}
	f.Close()
	os.Remove(f.Name())

	if target != dir {
		return CheckResult{Name: name, Passed: true, Message: fmt.Sprintf("%s (will be created)", dir)}
	}
	return CheckResult{Name: name, Passed: true, Message: dir}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport, symbols output.Symbols) string {
	var sb strings.Builder
	for _, check := range report.Checks {
		mark := symbols.Checkmark
		if !check.Passed {
			mark = symbols.Failure
		}
		fmt.Fprintf(&sb, "%s %s: %s\n", mark, check.Name, check.Message)
	}
	return sb.String()
}
