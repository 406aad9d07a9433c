// Package compare matches the findings of the custom rules against those of
// an external linter.
package compare

import (
	"sort"

	"github.com/abdidvp/pystyle/internal/domain"
)

// CustomKeys returns the distinct comparison keys of custom findings.
func CustomKeys(violations []domain.Violation) []domain.FindingKey {
	keys := make([]domain.FindingKey, 0, len(violations))
	for _, v := range violations {
		keys = append(keys, v.Key())
	}
	return unique(keys)
}

// ExternalKeys returns the distinct comparison keys of external findings.
func ExternalKeys(findings []domain.ExternalFinding) []domain.FindingKey {
	keys := make([]domain.FindingKey, 0, len(findings))
	for _, f := range findings {
		keys = append(keys, f.Key())
	}
	return unique(keys)
}

// Partition splits two key sets into the keys only in custom, only in
// external, and in both. Matching is exact on line, column and message.
func Partition(custom, external []domain.FindingKey) (customOnly, externalOnly, common []domain.FindingKey) {
	inExternal := make(map[domain.FindingKey]bool, len(external))
	for _, k := range external {
		inExternal[k] = true
	}
	inCustom := make(map[domain.FindingKey]bool, len(custom))
	for _, k := range unique(custom) {
		inCustom[k] = true
		if inExternal[k] {
			common = append(common, k)
		} else {
			customOnly = append(customOnly, k)
		}
	}
	for _, k := range unique(external) {
		if !inCustom[k] {
			externalOnly = append(externalOnly, k)
		}
	}
	return nonNil(customOnly), nonNil(externalOnly), nonNil(common)
}

// unique sorts keys by position then message and drops duplicates.
func unique(keys []domain.FindingKey) []domain.FindingKey {
	out := append([]domain.FindingKey(nil), keys...)
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	n := 0
	for i, k := range out {
		if i > 0 && k == out[n-1] {
			continue
		}
		out[n] = k
		n++
	}
	return nonNil(out[:n])
}

func less(a, b domain.FindingKey) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	if a.Column != b.Column {
		return a.Column < b.Column
	}
	return a.Message < b.Message
}

func nonNil(keys []domain.FindingKey) []domain.FindingKey {
	if keys == nil {
		return []domain.FindingKey{}
	}
	return keys
}
