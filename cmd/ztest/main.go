// ztest runs `zelix check --json` over a set of sources and compares every
// run with a golden record stored next to the source as .<file>.json.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fatih/color"
)

var (
	zelixBin       = flag.String("zelix", "./zelix", "Path to the zelix binary under test.")
	zelixArgs      = flag.String("zelix-args", "", "Extra arguments for `zelix check` (space-separated).")
	generateGolden = flag.String("generate-golden", "", "Generate golden .json files for the given source files (space-separated globs).")
	testFiles      = flag.String("test-files", "testdata/*.zx", "Glob pattern(s) for files to test (space-separated).")
	skipFiles      = flag.String("skip-files", "", "Files to skip (space-separated).")
	outputJSON     = flag.String("output", ".test_results.json", "Output file for the JSON test report.")
	timeout        = flag.Duration("timeout", 5*time.Second, "Timeout for each zelix invocation.")
	jobs           = flag.Int("j", 4, "Number of parallel test jobs.")
	runs           = flag.Int("runs", 3, "Number of runs per file, used to detect unstable output and keep the fastest.")
	verbose        = flag.Bool("v", false, "Print timings for passing files.")
	jsonDir        = flag.String("dir", "", "Directory to store/read golden JSON files (defaults to the source file dir).")
	ignoreLines    = flag.String("ignore-lines", "", "Comma-separated substrings to ignore during output comparison.")
)

var (
	cRed    = color.New(color.FgHiRed)
	cYellow = color.New(color.FgHiYellow)
	cGreen  = color.New(color.FgHiGreen)
	cCyan   = color.New(color.FgHiCyan)
	cBold   = color.New(color.Bold)
)

const (
	statusPass  = "PASS"
	statusFail  = "FAIL"
	statusSkip  = "SKIP"
	statusError = "ERROR"
)

type FileTestResult struct {
	File    string  `json:"file"`
	Status  string  `json:"status"`
	Message string  `json:"message,omitempty"`
	Diff    string  `json:"diff,omitempty"`
	Golden  *Record `json:"golden,omitempty"`
	Actual  *Record `json:"actual,omitempty"`
}

type TestSuiteResults map[string]*FileTestResult

func main() {
	flag.Parse()
	log.SetFlags(0)

	if *runs < 1 {
		*runs = 1
	}
	if *jobs < 1 {
		*jobs = 1
	}
	setupInterruptHandler()

	r := newRunner()
	if *generateGolden != "" {
		if err := r.generate(*generateGolden); err != nil {
			log.Fatalf("%s %v\n", cRed.Sprint("[ERROR]"), err)
		}
		return
	}

	files, err := expandGlobPatterns(*testFiles)
	if err != nil {
		log.Fatalf("%s Invalid glob pattern(s): %v\n", cRed.Sprint("[ERROR]"), err)
	}
	if len(files) == 0 {
		log.Println("No test files found matching the pattern(s).")
		return
	}

	results := r.runSuite(files, strings.Fields(*skipFiles))
	printSummary(os.Stdout, results, *verbose)
	if err := writeJSONReport(reportPath(), results); err != nil {
		log.Printf("%s %v\n", cRed.Sprint("[ERROR]"), err)
	} else {
		fmt.Printf("Full test report saved to %s\n", reportPath())
	}
	if hasFailures(results) {
		os.Exit(1)
	}
}

func setupInterruptHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		fmt.Printf("\n%s Test run cancelled.\n", cYellow.Sprint("[INTERRUPT]"))
		os.Exit(1)
	}()
}

// runner holds the settings shared by every check.
type runner struct {
	bin       string
	args      []string
	goldenDir string
	timeout   time.Duration
	runs      int
	jobs      int
	ignored   []string
}

func newRunner() *runner {
	r := &runner{
		bin:       *zelixBin,
		args:      strings.Fields(*zelixArgs),
		goldenDir: *jsonDir,
		timeout:   *timeout,
		runs:      *runs,
		jobs:      *jobs,
	}
	if *ignoreLines != "" {
		r.ignored = strings.Split(*ignoreLines, ",")
	}
	return r
}

func (r *runner) goldenPath(sourceFile string) string {
	name := "." + filepath.Base(sourceFile) + ".json"
	if r.goldenDir != "" {
		return filepath.Join(r.goldenDir, name)
	}
	return filepath.Join(filepath.Dir(sourceFile), name)
}

func reportPath() string {
	if *jsonDir != "" {
		return filepath.Join(*jsonDir, *outputJSON)
	}
	return *outputJSON
}

// hashFile computes the xxhash of a file's content.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum64()), nil
}

func (r *runner) generate(patterns string) error {
	files, err := expandGlobPatterns(patterns)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files match %q", patterns)
	}
	if r.goldenDir != "" {
		if err := os.MkdirAll(r.goldenDir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", r.goldenDir, err)
		}
	}

	for _, file := range files {
		rec := r.check(file)
		if rec.TimedOut {
			return fmt.Errorf("zelix timed out on %s", file)
		}
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal golden data for %s: %w", file, err)
		}
		path := r.goldenPath(file)
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write golden file %s: %w", path, err)
		}
		log.Printf("%s Golden file created at %s\n", cGreen.Sprint("[SUCCESS]"), path)
	}
	return nil
}

// runSuite tests files in a worker pool. Files whose content is identical
// to an earlier file are skipped.
func (r *runner) runSuite(files, skip []string) []*FileTestResult {
	skipList := make(map[string]bool, len(skip))
	for _, f := range skip {
		if abs, err := filepath.Abs(f); err == nil {
			skipList[abs] = true
		}
		skipList[f] = true
	}

	tasks := make(chan string, len(files))
	resultsChan := make(chan *FileTestResult, len(files))
	var wg sync.WaitGroup

	for i := 0; i < r.jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range tasks {
				resultsChan <- r.testFile(file)
			}
		}()
	}

	seenHashes := make(map[string]string)
	for _, file := range files {
		if skipList[file] {
			resultsChan <- &FileTestResult{File: file, Status: statusSkip, Message: "Explicitly skipped"}
			continue
		}
		fileHash, err := hashFile(file)
		if err != nil {
			resultsChan <- &FileTestResult{File: file, Status: statusError, Message: fmt.Sprintf("Failed to read file for hashing: %v", err)}
			continue
		}
		if original, seen := seenHashes[fileHash]; seen {
			resultsChan <- &FileTestResult{File: file, Status: statusSkip, Message: fmt.Sprintf("Content is identical to %s", original)}
			continue
		}
		seenHashes[fileHash] = file
		tasks <- file
	}
	close(tasks)

	wg.Wait()
	close(resultsChan)

	var all []*FileTestResult
	for result := range resultsChan {
		all = append(all, result)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].File < all[j].File })
	return all
}

func (r *runner) testFile(file string) *FileTestResult {
	goldenFile := r.goldenPath(file)
	data, err := os.ReadFile(goldenFile)
	if os.IsNotExist(err) {
		return &FileTestResult{File: file, Status: statusSkip, Message: "Cannot test without a corresponding .json golden file"}
	}
	if err != nil {
		return &FileTestResult{File: file, Status: statusError, Message: fmt.Sprintf("Could not read golden file %s: %v", goldenFile, err)}
	}
	var golden Record
	if err := json.Unmarshal(data, &golden); err != nil {
		return &FileTestResult{File: file, Status: statusError, Message: fmt.Sprintf("Could not parse golden file %s: %v", goldenFile, err)}
	}

	actual := r.check(file)
	return compareRecords(file, &golden, actual, r.ignored)
}

func hasFailures(results []*FileTestResult) bool {
	for _, result := range results {
		if result.Status == statusFail || result.Status == statusError {
			return true
		}
	}
	return false
}

func expandGlobPatterns(patterns string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]bool)
	for _, pattern := range strings.Fields(patterns) {
		files, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %s: %w", pattern, err)
		}
		for _, file := range files {
			absFile, err := filepath.Abs(file)
			if err != nil {
				continue
			}
			if seen[absFile] {
				continue
			}
			if info, err := os.Stat(absFile); err == nil && info.Mode().IsRegular() {
				allFiles = append(allFiles, absFile)
				seen[absFile] = true
			}
		}
	}
	return allFiles, nil
}
