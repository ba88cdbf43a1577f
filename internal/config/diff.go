package config

import (
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Diff renders a line diff between two serialized config documents, for
// logging what a hot reload actually changed. Empty when identical.
func Diff(previous, current []byte) string {
	split := func(data []byte) []string {
		text := strings.TrimSuffix(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
		if text == "" {
			return nil
		}
		return strings.Split(text, "\n")
	}
	return cmp.Diff(split(previous), split(current))
}
