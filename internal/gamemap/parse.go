package gamemap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMalformedMap is wrapped by every Parse error caused by the input text.
var ErrMalformedMap = errors.New("malformed map")

// Parse reads a grid in the level text format:
//
//	<node size>
//	<width>
//	<height>
//	<height rows of width characters>
//
// Blank lines are ignored. Characters past width on a row are ignored.
func Parse(r io.Reader) (*GameMap, error) {
	sc := bufio.NewScanner(r)
	var lines []string
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}
	if len(lines) < 3 {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedMap)
	}

	size, err := strconv.ParseFloat(strings.TrimSpace(lines[0]), 64)
	if err != nil || size <= 0 {
		return nil, fmt.Errorf("%w: node size %q", ErrMalformedMap, lines[0])
	}
	width, err := strconv.Atoi(strings.TrimSpace(lines[1]))
	if err != nil || width <= 0 {
		return nil, fmt.Errorf("%w: width %q", ErrMalformedMap, lines[1])
	}
	height, err := strconv.Atoi(strings.TrimSpace(lines[2]))
	if err != nil || height <= 0 {
		return nil, fmt.Errorf("%w: height %q", ErrMalformedMap, lines[2])
	}

	rows := lines[3:]
	if len(rows) < height {
		return nil, fmt.Errorf("%w: want %d rows, got %d", ErrMalformedMap, height, len(rows))
	}

	m := New(width, height, size)
	for y := 0; y < height; y++ {
		row := strings.TrimSpace(rows[y])
		if len(row) < width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedMap, y, len(row), width)
		}
		for x := 0; x < width; x++ {
			m.Set(x, y, DecodeTile(row[x]))
		}
	}
	return m, nil
}

// Format writes m in the text format Parse reads.
func Format(m *GameMap) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%d\n%d\n", strconv.FormatFloat(m.NodeSize, 'g', -1, 64), m.Width, m.Height)
	for _, row := range m.Tiles {
		for _, t := range row {
			b.WriteByte(t.Char)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseString parses a map held in memory.
func ParseString(s string) (*GameMap, error) {
	return Parse(strings.NewReader(s))
}

// Load parses the map file at path.
func Load(path string) (*GameMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map: %w", err)
	}
	defer f.Close()
	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return m, nil
}
