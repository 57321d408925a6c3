// This file adds a lightweight linter for Config values. It performs static
// checks over a decoded Config and returns a list of issues (errors and
// warnings) that callers can surface before the run starts.
package config

import "fmt"

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a finding that is surfaced but does not
	// block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into
// the config (e.g. "products_path"); Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error where one is expected.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Validate performs static validation of a Config. It does not mutate the
// config; callers decide whether warnings are fatal.
func Validate(c Config) []Issue {
	var issues []Issue

	paths := []struct{ path, val string }{
		{"products_path", c.ProductsPath},
		{"purchases_path", c.PurchasesPath},
		{"users_path", c.UsersPath},
	}
	for _, p := range paths {
		if p.val == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     p.path,
				Message:  "input path must not be empty",
			})
		}
	}

	if c.AgeMin > c.AgeMax {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "age_min",
			Message:  fmt.Sprintf("age band is empty: age_min %d > age_max %d", c.AgeMin, c.AgeMax),
		})
	}
	if c.AgeMin < 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "age_min",
			Message:  "negative age_min matches no plausible user",
		})
	}
	if c.TopN <= 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "top_n",
			Message:  "top_n must be positive",
		})
	}
	if len(c.Delimiter) > 1 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "delimiter",
			Message:  "only the first rune of delimiter is used",
		})
	}

	return issues
}
