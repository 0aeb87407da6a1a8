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

import "strings"

// Normalization functions map the literal text used in an INSERT statement to
// the string expected back on one extraction path. They are pure functions of
// the literal text; none of them may look at the live backend.

// WithDecimalZero returns a floating-point string in the same way it was
// entered, but integers get a trailing '.0' attached.
func WithDecimalZero(floatingPointStr string) string {
	if !strings.Contains(floatingPointStr, ".") {
		return floatingPointStr + ".0"
	}
	return floatingPointStr
}

// TimestampDBOutput converts an inserted timestamp literal to the string a
// direct database read is expected to return.
func TimestampDBOutput(tsAsInserted string) string {
	dotPos := strings.Index(tsAsInserted, ".")
	if dotPos == -1 {
		// No dot in the original string; expand to 9 places.
		return tsAsInserted + ".000000000"
	}
	// The pad width tracks the literal's length past the dot instead of a
	// fixed nanosecond width. This matches what drivers were observed to
	// return; do not "correct" it to a 9-digit pad.
	return tsAsInserted + strings.Repeat("0", len(tsAsInserted)-dotPos)
}

// TimestampFileOutput converts an inserted timestamp literal to the string
// expected after the value has passed through the import pipeline into a
// data file.
func TimestampFileOutput(tsAsInserted string) string {
	if !strings.Contains(tsAsInserted, ".") {
		return tsAsInserted + ".0"
	}
	return tsAsInserted
}

// PadToWidth right-pads s with spaces to the given width, for backends that
// return CHAR(n) values space-padded.
func PadToWidth(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// PadFraction pads the fractional part of a numeric string with zeros up to
// the given number of digits, for backends whose NUMERIC/DECIMAL output keeps
// a fixed scale. Strings that already carry enough digits are returned as is.
func PadFraction(s string, digits int) string {
	dotPos := strings.Index(s, ".")
	if dotPos == -1 {
		return s + "." + strings.Repeat("0", digits)
	}
	fracDigits := len(s) - dotPos - 1
	if fracDigits < digits {
		return s + strings.Repeat("0", digits-fracDigits)
	}
	return s
}

// Identity returns the inserted literal unchanged. It is the default for
// types whose string form survives both extraction paths untouched.
func Identity(asInserted string) string {
	return asInserted
}
