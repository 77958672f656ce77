package results

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

const (
	commentPrefix = "#"
	utf8BOM       = "\ufeff"
)

// ParseStats counts how the lines of one result file were handled.
type ParseStats struct {
	Lines      int `json:"lines"`
	Entries    int `json:"entries"`
	Blank      int `json:"blank"`
	Comments   int `json:"comments"`
	Malformed  int `json:"malformed"`
	Duplicates int `json:"duplicates"`
}

// Parser turns result files of `testName<delimiter>status` lines into a Mapping.
type Parser struct {
	source    Source
	delimiter string
	logger    *zap.Logger
}

// NewParser creates a parser reading through source.
func NewParser(source Source, delimiter rune, logger *zap.Logger) *Parser {
	return &Parser{
		source:    source,
		delimiter: string(delimiter),
		logger:    logger,
	}
}

// ParseFile reads and parses one result file.
// A missing file returns an error wrapping ErrFileNotFound.
func (p *Parser) ParseFile(ctx context.Context, name string) (*Mapping, ParseStats, error) {
	p.logger.Debug("reading file", zap.String("file", name))

	rc, err := p.source.Open(ctx, name)
	if err != nil {
		return nil, ParseStats{}, err
	}
	defer rc.Close()

	return p.parse(rc, p.logger.With(zap.String("file", name)))
}

// Parse parses result lines from r.
func (p *Parser) Parse(r io.Reader) (*Mapping, ParseStats, error) {
	return p.parse(r, p.logger)
}

func (p *Parser) parse(r io.Reader, l *zap.Logger) (*Mapping, ParseStats, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, ParseStats{}, err
	}

	mapping := NewMapping()
	stats := ParseStats{Lines: len(lines)}

	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		l.Debug("line", zap.Int("line", lineNo), zap.String("content", line))

		switch {
		case line == "":
			stats.Blank++
			l.Debug("skipping blank line", zap.Int("line", lineNo))
			continue
		case strings.HasPrefix(line, commentPrefix):
			stats.Comments++
			l.Debug("skipping comment line", zap.Int("line", lineNo))
			continue
		}

		fields := strings.Split(line, p.delimiter)
		if len(fields) != 2 {
			stats.Malformed++
			l.Warn("skipping incorrectly formatted line",
				zap.Int("line", lineNo),
				zap.Int("fields", len(fields)),
			)
			continue
		}

		testName := strings.TrimSpace(fields[0])
		status := strings.TrimSpace(fields[1])
		l.Debug("parsed result", zap.String("test_name", testName), zap.String("status", status))

		if err := mapping.Add(testName, status); err != nil {
			stats.Duplicates++
			l.Error("duplicate test name, keeping first occurrence",
				zap.Int("line", lineNo),
				zap.String("test_name", testName),
				zap.Error(err),
			)
			continue
		}
		stats.Entries++
	}

	return mapping, stats, nil
}

// readLines loads every line before parsing starts. Lines have no length limit.
func readLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)

	var lines []string
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read result lines: %w", err)
		}
		if line == "" && err == io.EOF {
			break
		}

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if len(lines) == 0 {
			line = strings.TrimPrefix(line, utf8BOM)
		}
		lines = append(lines, line)

		if err == io.EOF {
			break
		}
	}
	return lines, nil
}
