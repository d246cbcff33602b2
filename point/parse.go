package point

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// recordPattern matches exactly one "x,y,z" record with no signs or spaces.
var recordPattern = regexp.MustCompile(`^(\d+),(\d+),(\d+)$`)

// Parse reads one point per line from r.
//
// Leading/trailing whitespace on a line is ignored and blank lines are
// skipped. Any other line that is not three non-negative base-10 integers
// separated by commas yields ErrMalformedRecord wrapped with its 1-based
// line number; nothing is returned in that case. Input without a single
// record yields ErrEmptyInput.
//
// Complexity: O(L) time and memory in the input length.
func Parse(r io.Reader) (Set, error) {
	var (
		set     Set
		lineNum int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		p, err := parseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, lineNum, err)
		}
		set = append(set, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("point: read input: %w", err)
	}
	if len(set) == 0 {
		return nil, ErrEmptyInput
	}

	return set, nil
}

// ParseString is Parse over an in-memory string.
func ParseString(s string) (Set, error) {
	return Parse(strings.NewReader(s))
}

// parseRecord converts a single trimmed line into a Point.
func parseRecord(line string) (Point, error) {
	m := recordPattern.FindStringSubmatch(line)
	if m == nil {
		return Point{}, fmt.Errorf("%q is not of the form x,y,z", line)
	}
	var c [3]uint32
	for i := range c {
		v, err := strconv.ParseUint(m[i+1], 10, 32)
		if err != nil {
			return Point{}, fmt.Errorf("component %d: %w", i+1, err)
		}
		c[i] = uint32(v)
	}

	return Point{X: c[0], Y: c[1], Z: c[2]}, nil
}
