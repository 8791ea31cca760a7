package deps

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Resolve keyword-matches the capability text against the library table
// and returns the merged requirement list, base requirements included.
func Resolve(capability string) []Requirement {
	lower := strings.ToLower(capability)

	reqs := make([]Requirement, len(BaseRequirements))
	copy(reqs, BaseRequirements)

	for _, e := range table {
		for _, kw := range e.keywords {
			if strings.Contains(lower, kw) {
				reqs = append(reqs, e.requirements...)
				break
			}
		}
	}

	return Merge(reqs)
}

// Merge dedupes requirements by package name, keeping the highest minimum
// version. Order of first appearance is preserved.
func Merge(reqs []Requirement) []Requirement {
	index := make(map[string]int)
	var merged []Requirement

	for _, r := range reqs {
		name := strings.ToLower(r.Package)
		i, seen := index[name]
		if !seen {
			index[name] = len(merged)
			merged = append(merged, r)
			continue
		}
		if newerMin(r.MinVersion, merged[i].MinVersion) {
			merged[i].MinVersion = r.MinVersion
		}
	}

	return merged
}

// Parse turns a pip requirement line ("pkg", "pkg>=1.2.3", "pkg==1.2.3")
// into a Requirement. Exact pins are treated as minimums.
func Parse(line string) (Requirement, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Requirement{}, fmt.Errorf("empty requirement")
	}

	for _, op := range []string{">=", "==", "~=", ">"} {
		if name, version, found := strings.Cut(line, op); found {
			name = strings.TrimSpace(name)
			version = strings.TrimSpace(version)
			if name == "" || version == "" {
				return Requirement{}, fmt.Errorf("malformed requirement %q", line)
			}
			return Requirement{Package: name, MinVersion: version}, nil
		}
	}

	if strings.ContainsAny(line, "<>=~ ") {
		return Requirement{}, fmt.Errorf("malformed requirement %q", line)
	}
	return Requirement{Package: line}, nil
}

// ParseList parses comma- or newline-separated requirement lines,
// skipping blanks.
func ParseList(s string) ([]Requirement, error) {
	var reqs []Requirement
	for _, line := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' }) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r, err := Parse(line)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, r)
	}
	return reqs, nil
}

// Render produces requirements.txt content.
func Render(reqs []Requirement) string {
	var b strings.Builder
	for _, r := range reqs {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// newerMin reports whether version a is a strictly higher minimum than b.
// An unpinned version never wins; unparsable versions fall back to string
// comparison so resolution still terminates.
func newerMin(a, b string) bool {
	if a == "" {
		return false
	}
	if b == "" {
		return true
	}
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA != nil || errB != nil {
		return a > b
	}
	return va.GreaterThan(vb)
}
