// ABOUTME: Lenient parsers for snap CLI terminal output
// ABOUTME: Converts search tables and info key/value blocks into structured data

package snap

import "strings"

// Package is one row of `snap search` output.
type Package struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Publisher string `json:"publisher"`
	Notes     string `json:"notes"`
	Summary   string `json:"summary"`
}

// ParseSearch converts raw `snap search` output into a slice of packages.
// The first line is always treated as the column header and skipped; its
// content is never inspected. A data line must have at least five
// whitespace-separated fields: the first four map to name, version,
// publisher, and notes, and the rest are rejoined into the summary. Lines
// with fewer fields are dropped in full. There is no error path; malformed
// output just yields fewer results.
func ParseSearch(raw string) []Package {
	lines := strings.Split(strings.TrimSpace(raw), "\n")

	// Header plus at least one result, otherwise treat as no results.
	if len(lines) < 2 {
		return []Package{}
	}

	packages := []Package{}
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		packages = append(packages, Package{
			Name:      fields[0],
			Version:   fields[1],
			Publisher: fields[2],
			Notes:     fields[3],
			Summary:   strings.Join(fields[4:], " "),
		})
	}

	return packages
}

// ParseInfo converts raw `snap info` output into a flat field map. A line
// with a colon and no leading whitespace opens a new field; indented lines
// continue the most recently opened field and are joined with newlines.
// Lines that fit neither shape are dropped. A repeated field name overwrites
// the earlier value.
func ParseInfo(raw string) map[string]string {
	info := make(map[string]string)
	lines := strings.Split(strings.TrimSpace(raw), "\n")

	var currentKey string
	var currentValue []string

	commit := func() {
		if currentKey != "" {
			info[currentKey] = strings.Join(currentValue, "\n")
		}
	}

	for _, line := range lines {
		switch {
		case strings.Contains(line, ":") && !startsWithSpace(line):
			commit()
			key, value, _ := strings.Cut(line, ":")
			currentKey = strings.TrimSpace(key)
			currentValue = []string{strings.TrimSpace(value)}
		case currentKey != "" && startsWithSpace(line):
			currentValue = append(currentValue, strings.TrimSpace(line))
		}
	}
	commit()

	return info
}

func startsWithSpace(line string) bool {
	return len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
}
