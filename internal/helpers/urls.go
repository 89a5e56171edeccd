package helpers

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrOpenTextFile indicates opening a text file failed.
	ErrOpenTextFile = errors.New("failed to open text file")
	// ErrScanTextFile indicates scanner iteration over a text file failed.
	ErrScanTextFile = errors.New("failed to scan text file")
)

// ReadTxtFile reads non-empty lines from a text file. Lines starting with
// '#' are comments.
func ReadTxtFile(path string) ([]string, error) {
	var lines []string
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrOpenTextFile, path, err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			lines = append(lines, line)
		}
	}
	if scanner.Err() != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrScanTextFile, path, scanner.Err())
	}
	return lines, nil
}

// ProcessUrls expands .txt file arguments into their lines and drops
// duplicates, keeping first-seen order. Panopto IDs are case-sensitive, so
// comparison is exact.
func ProcessUrls(urls []string) ([]string, error) {
	var processed []string
	seen := make(map[string]struct{})
	readFiles := make(map[string]struct{})
	add := func(u string) {
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		processed = append(processed, u)
	}
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if !strings.HasSuffix(u, ".txt") {
			add(u)
			continue
		}
		if _, ok := readFiles[u]; ok {
			continue
		}
		lines, err := ReadTxtFile(u)
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			add(line)
		}
		readFiles[u] = struct{}{}
	}
	return processed, nil
}
