/*
Copyright (c) DBPorter, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package compat

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Status is the terminal state of one scenario run.
type Status string

const (
	StatusPassed  Status = "PASS"
	StatusFailed  Status = "FAIL"
	StatusSkipped Status = "SKIP"
)

// Extraction path names used in failure reports.
const (
	PathDirect = "direct"
	PathFile   = "file"
)

// NullDisplay is how a SQL NULL is rendered in assertion messages.
const NullDisplay = "NULL"

// DisplayValue renders a possibly-NULL value for reports.
func DisplayValue(v *string) string {
	if v == nil {
		return NullDisplay
	}
	return *v
}

// Failure records one expected/actual mismatch on a single extraction path.
type Failure struct {
	Path     string
	Expected string
	Actual   string
}

// Outcome is the result of running one scenario. Exactly one of the three
// statuses applies; a failed outcome carries either assertion failures,
// a setup/import error, or both.
type Outcome struct {
	Scenario   TypeScenario
	Status     Status
	SkipReason string

	// Err is set when table setup, the import run, or a read raised an
	// error. This is a test error, not an assertion failure.
	Err error

	// Failures holds the expected/actual mismatches, at most one per
	// extraction path.
	Failures []Failure
}

// Detail returns a one-line human-readable reason for a non-passing outcome,
// empty for a pass.
func (o Outcome) Detail() string {
	switch o.Status {
	case StatusSkipped:
		return o.SkipReason
	case StatusFailed:
		parts := make([]string, 0, len(o.Failures)+1)
		for _, f := range o.Failures {
			parts = append(parts, fmt.Sprintf("%s path: expected %q, got %q", f.Path, f.Expected, f.Actual))
		}
		if o.Err != nil {
			parts = append(parts, o.Err.Error())
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}

// Summarize counts outcomes per status.
func Summarize(outcomes []Outcome) (passed, failed, skipped int) {
	counts := lo.CountValuesBy(outcomes, func(o Outcome) Status { return o.Status })
	return counts[StatusPassed], counts[StatusFailed], counts[StatusSkipped]
}
