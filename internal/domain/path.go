package domain

import "strings"

const (
	// DefaultStorageRoot is the top-level folder holding all course material.
	DefaultStorageRoot = "data"
	semesterPrefix     = "Semester "
	pathSeparator      = "/"
)

// NormalizeSemester turns a bare term value like "2" into "Semester 2".
// Empty values and values already carrying the prefix are returned unchanged.
func NormalizeSemester(semester string) string {
	if semester == "" || strings.HasPrefix(semester, semesterPrefix) {
		return semester
	}
	return semesterPrefix + semester
}

// BuildStoragePath maps the hierarchical identifiers onto an object prefix of the form
// root/college/department/Semester N/subject/unit/. Empty segments are dropped and
// the result always ends with a separator.
func BuildStoragePath(root, college, department, semester, subject, unit string) string {
	if strings.TrimSpace(root) == "" {
		root = DefaultStorageRoot
	}
	segments := []string{root, college, department, NormalizeSemester(strings.TrimSpace(semester)), subject, unit}

	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Trim(strings.TrimSpace(s), pathSeparator)
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, pathSeparator) + pathSeparator
}
