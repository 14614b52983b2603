package dss

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseBool interprets an engine response as a boolean. The engine emits the
// canonical tokens true/1 and false/0 in either case; anything else is a
// parse error.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not a boolean", ErrParse, strings.TrimSpace(s))
}

// ParseFloat interprets an engine response as a float.
func ParseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrParse, strings.TrimSpace(s))
	}
	return v, nil
}

// ParseLines splits an engine listing into its non-empty trimmed lines,
// preserving order.
func ParseLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Option is one entry of a device option listing.
type Option struct {
	ID          string
	Value       string
	Description string
}

// ParseOptions parses an option listing: one record per line, id, current
// value and description separated by tabs. The description is optional.
func ParseOptions(out string) ([]Option, error) {
	var opts []Option
	for _, line := range ParseLines(out) {
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: malformed option record %q", ErrParse, line)
		}
		opt := Option{ID: fields[0], Value: fields[1]}
		if len(fields) == 3 {
			opt.Description = fields[2]
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

// ParseBytes parses a memory-read response: byte values separated by
// whitespace, in any base strconv understands (the engine emits 0x-prefixed
// hex).
func ParseBytes(out string) ([]byte, error) {
	fields := strings.Fields(out)
	data := make([]byte, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a byte value", ErrParse, f)
		}
		data = append(data, byte(v))
	}
	return data, nil
}
