package expense

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Filter holds the optional, conjunctive review predicates. Empty fields are
// unconstrained. Dates compare lexically, which is correct for YYYY-MM-DD.
type Filter struct {
	Employee  string
	Trip      string
	StartDate string
	EndDate   string
	Status    Status // "" means all statuses
}

// Match reports whether e satisfies every active predicate.
func (f Filter) Match(e *Expense) bool {
	if f.Employee != "" && !containsEmployee(e.EmployeeName, f.Employee) {
		return false
	}
	if f.Trip != "" && e.TripName != f.Trip {
		return false
	}
	if f.StartDate != "" && e.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && e.Date > f.EndDate {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	return true
}

// containsEmployee reports whether name appears among the comma-split
// employee names of the joined display string.
func containsEmployee(joined, name string) bool {
	for _, n := range strings.Split(joined, ",") {
		if strings.TrimSpace(n) == name {
			return true
		}
	}
	return false
}

// Apply returns the records satisfying the filter, preserving order.
func Apply(records []*Expense, f Filter) []*Expense {
	filtered := make([]*Expense, 0, len(records))
	for _, e := range records {
		if f.Match(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Total sums the amounts of the given records. Recomputed from scratch on
// every call, never cached.
func Total(records []*Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range records {
		total = total.Add(e.Amount)
	}
	return total
}

// EmployeeNames returns the distinct employee names across all records,
// split out of the joined display strings, trimmed, deduplicated and sorted.
func EmployeeNames(records []*Expense) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, e := range records {
		for _, n := range strings.Split(e.EmployeeName, ",") {
			n = strings.TrimSpace(n)
			if n == "" {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// TripNames returns the distinct trip names in insertion order.
func TripNames(records []*Expense) []string {
	seen := make(map[string]struct{})
	trips := make([]string, 0)
	for _, e := range records {
		if _, ok := seen[e.TripName]; ok {
			continue
		}
		seen[e.TripName] = struct{}{}
		trips = append(trips, e.TripName)
	}
	return trips
}
