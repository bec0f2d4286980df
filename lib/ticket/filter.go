// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

// FilterAll is the filter value that matches everything.
const FilterAll = "All"

// Filter selects entries by display value. Each dimension filters
// independently; FilterAll (or empty) disables that dimension.
type Filter struct {
	Tier     string
	Status   string
	Priority string
}

// Apply returns the entries matching every active dimension.
func (f Filter) Apply(entries []Entry) []Entry {
	matched := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if !f.Matches(entry) {
			continue
		}
		matched = append(matched, entry)
	}
	return matched
}

// Matches reports whether one entry passes the filter.
func (f Filter) Matches(entry Entry) bool {
	if active(f.Tier) && entry.Tier != f.Tier {
		return false
	}
	if active(f.Status) && entry.Status != f.Status {
		return false
	}
	if active(f.Priority) && entry.Priority != f.Priority {
		return false
	}
	return true
}

func active(value string) bool {
	return value != "" && value != FilterAll
}
