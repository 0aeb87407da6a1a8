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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDecimalZero(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"256", "256.0"},
		{"-256", "-256.0"},
		{"256.45", "256.45"},
		{"256.", "256."},
		{"0", "0.0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, WithDecimalZero(tt.input), "input %q", tt.input)
	}
}

func TestTimestampDBOutput(t *testing.T) {
	// Without a fractional part, the expectation expands to nine places.
	assert.Equal(t, "2009-04-24 18:24:00.000000000", TimestampDBOutput("2009-04-24 18:24:00"))

	// With a fractional part, the pad width follows the literal's length past
	// the dot. '2009-04-24 18:24:00.0002' has 4 fractional digits, so 5 zeros
	// are appended.
	assert.Equal(t, "2009-04-24 18:24:00.000200000", TimestampDBOutput("2009-04-24 18:24:00.0002"))
}

func TestTimestampFileOutput(t *testing.T) {
	assert.Equal(t, "2009-04-24 18:24:00.0", TimestampFileOutput("2009-04-24 18:24:00"))
	assert.Equal(t, "2009-04-24 18:24:00.0002", TimestampFileOutput("2009-04-24 18:24:00.0002"))
}

func TestPadToWidth(t *testing.T) {
	assert.Equal(t, "ab  ", PadToWidth("ab", 4))
	assert.Equal(t, "abcd", PadToWidth("abcd", 4))
	assert.Equal(t, "abcde", PadToWidth("abcde", 4))
	assert.Equal(t, "  ", PadToWidth("", 2))
}

func TestPadFraction(t *testing.T) {
	tests := []struct {
		input    string
		digits   int
		expected string
	}{
		{"1", 5, "1.00000"},
		{"-10", 5, "-10.00000"},
		{"3.14159", 5, "3.14159"},
		{"3.14", 5, "3.14000"},
		{"3.1415926", 5, "3.1415926"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, PadFraction(tt.input, tt.digits), "input %q", tt.input)
	}
}

func TestIdentity(t *testing.T) {
	assert.Equal(t, "256", Identity("256"))
	assert.Equal(t, "", Identity(""))
}
