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

import "fmt"

// Logical type names used for capability lookup and reporting.
const (
	TypeVarChar     = "varchar"
	TypeChar        = "char"
	TypeInteger     = "integer"
	TypeSmallInt    = "smallint"
	TypeTinyInt     = "tinyint"
	TypeBigInt      = "bigint"
	TypeBoolean     = "boolean"
	TypeReal        = "real"
	TypeFloat       = "float"
	TypeDouble      = "double"
	TypeDate        = "date"
	TypeTime        = "time"
	TypeTimestamp   = "timestamp"
	TypeNumeric     = "numeric"
	TypeDecimal     = "decimal"
	TypeLongVarChar = "longvarchar"
)

// Norm maps the text of an inserted literal to the string expected back on
// one extraction path.
type Norm func(asInserted string) string

// FixedCharNorm maps an inserted CHAR(width) value to its expected output.
type FixedCharNorm func(width int, asInserted string) string

// Adapter carries everything backend-specific that the verification engine
// needs: which optional types the backend has, how to spell DDL for the
// parameterized types, how to rewrite date/time/timestamp insert literals,
// and how an inserted literal is expected to come back on each extraction
// path. A backend adapter is a plain value of this struct, usually built by
// modifying DefaultAdapter(); there is no subclassing involved.
//
// Nil function fields fall back to the documented defaults (see normalize.go
// and the *Out accessors below). All fields are read-only once the adapter is
// handed to an Engine.
type Adapter struct {
	// Name is a friendly backend name, e.g. "postgresql" or "mysql".
	Name string

	// Optional data types. Scenarios for an unsupported type are skipped,
	// never failed.
	SupportsBoolean     bool
	SupportsBigInt      bool
	SupportsTinyInt     bool
	SupportsLongVarChar bool
	SupportsTime        bool

	// Digits used to spell the parameterized NUMERIC/DECIMAL types.
	NumericIntDigits  int
	NumericFracDigits int
	DecimalIntDigits  int
	DecimalFracDigits int

	DoubleTypeName      string
	LongVarCharTypeName string
	TimestampTypeName   string

	// Rewrites applied to date/time/timestamp literals before they are
	// inserted, for backends that need a special insert syntax (e.g. a
	// conversion function around the quoted literal). Nil means the literal
	// is used verbatim.
	RewriteDateLiteral      Norm
	RewriteTimeLiteral      Norm
	RewriteTimestampLiteral Norm

	// Boolean spellings per extraction path.
	TrueBoolDBOutput    string
	FalseBoolDBOutput   string
	TrueBoolFileOutput  string
	FalseBoolFileOutput string

	// Per-type normalization overrides, one per extraction path.
	RealDBOutput        Norm
	RealFileOutput      Norm
	FloatDBOutput       Norm
	FloatFileOutput     Norm
	DoubleDBOutput      Norm
	DoubleFileOutput    Norm
	DateDBOutput        Norm
	DateFileOutput      Norm
	TimestampDBOutput   Norm
	TimestampFileOutput Norm
	NumericDBOutput     Norm
	NumericFileOutput   Norm
	DecimalDBOutput     Norm
	DecimalFileOutput   Norm
	FixedCharDBOutput   FixedCharNorm
	FixedCharFileOutput FixedCharNorm
}

// DefaultAdapter returns an adapter with every capability enabled and every
// spelling and normalization at its documented default. Backend adapters
// start from this value and override only what their backend does
// differently.
func DefaultAdapter() Adapter {
	return Adapter{
		Name:                "default",
		SupportsBoolean:     true,
		SupportsBigInt:      true,
		SupportsTinyInt:     true,
		SupportsLongVarChar: true,
		SupportsTime:        true,
		NumericIntDigits:    30,
		NumericFracDigits:   5,
		DecimalIntDigits:    30,
		DecimalFracDigits:   5,
		DoubleTypeName:      "DOUBLE",
		LongVarCharTypeName: "LONGVARCHAR",
		TimestampTypeName:   "TIMESTAMP",
		TrueBoolDBOutput:    "true",
		FalseBoolDBOutput:   "false",
		TrueBoolFileOutput:  "true",
		FalseBoolFileOutput: "false",
	}
}

// Supports reports whether the logical type's capability flag is on. Logical
// types without a flag are always supported.
func (a Adapter) Supports(logicalType string) bool {
	switch logicalType {
	case TypeBoolean:
		return a.SupportsBoolean
	case TypeBigInt:
		return a.SupportsBigInt
	case TypeTinyInt:
		return a.SupportsTinyInt
	case TypeLongVarChar:
		return a.SupportsLongVarChar
	case TypeTime:
		return a.SupportsTime
	default:
		return true
	}
}

// NumericType spells a NUMERIC column that can handle NumericIntDigits digits
// total with NumericFracDigits to the right of the decimal point.
func (a Adapter) NumericType() string {
	return fmt.Sprintf("NUMERIC(%d, %d)", a.NumericIntDigits, a.NumericFracDigits)
}

// DecimalType spells the DECIMAL counterpart of NumericType.
func (a Adapter) DecimalType() string {
	return fmt.Sprintf("DECIMAL(%d, %d)", a.DecimalIntDigits, a.DecimalFracDigits)
}

// DateInsertStr specializes the canonical quoted date literal to the
// backend's insert syntax.
func (a Adapter) DateInsertStr(insertStr string) string {
	return applyNorm(a.RewriteDateLiteral, Identity, insertStr)
}

func (a Adapter) TimeInsertStr(insertStr string) string {
	return applyNorm(a.RewriteTimeLiteral, Identity, insertStr)
}

func (a Adapter) TimestampInsertStr(insertStr string) string {
	return applyNorm(a.RewriteTimestampLiteral, Identity, insertStr)
}

// The *Out accessors below resolve the per-type normalization for each
// extraction path, falling back to the defaults when no override is set.

func (a Adapter) RealDBOut(asInserted string) string {
	return applyNorm(a.RealDBOutput, WithDecimalZero, asInserted)
}

func (a Adapter) RealFileOut(asInserted string) string {
	return applyNorm(a.RealFileOutput, a.RealDBOut, asInserted)
}

func (a Adapter) FloatDBOut(asInserted string) string {
	return applyNorm(a.FloatDBOutput, WithDecimalZero, asInserted)
}

func (a Adapter) FloatFileOut(asInserted string) string {
	return applyNorm(a.FloatFileOutput, a.FloatDBOut, asInserted)
}

func (a Adapter) DoubleDBOut(asInserted string) string {
	return applyNorm(a.DoubleDBOutput, WithDecimalZero, asInserted)
}

func (a Adapter) DoubleFileOut(asInserted string) string {
	return applyNorm(a.DoubleFileOutput, a.DoubleDBOut, asInserted)
}

func (a Adapter) DateDBOut(asInserted string) string {
	return applyNorm(a.DateDBOutput, Identity, asInserted)
}

func (a Adapter) DateFileOut(asInserted string) string {
	return applyNorm(a.DateFileOutput, a.DateDBOut, asInserted)
}

func (a Adapter) TimestampDBOut(asInserted string) string {
	return applyNorm(a.TimestampDBOutput, TimestampDBOutput, asInserted)
}

func (a Adapter) TimestampFileOut(asInserted string) string {
	return applyNorm(a.TimestampFileOutput, TimestampFileOutput, asInserted)
}

func (a Adapter) NumericDBOut(asInserted string) string {
	return applyNorm(a.NumericDBOutput, Identity, asInserted)
}

func (a Adapter) NumericFileOut(asInserted string) string {
	return applyNorm(a.NumericFileOutput, a.NumericDBOut, asInserted)
}

func (a Adapter) DecimalDBOut(asInserted string) string {
	return applyNorm(a.DecimalDBOutput, Identity, asInserted)
}

func (a Adapter) DecimalFileOut(asInserted string) string {
	return applyNorm(a.DecimalFileOutput, a.DecimalDBOut, asInserted)
}

func (a Adapter) FixedCharDBOut(width int, asInserted string) string {
	if a.FixedCharDBOutput != nil {
		return a.FixedCharDBOutput(width, asInserted)
	}
	return asInserted
}

func (a Adapter) FixedCharFileOut(width int, asInserted string) string {
	if a.FixedCharFileOutput != nil {
		return a.FixedCharFileOutput(width, asInserted)
	}
	return a.FixedCharDBOut(width, asInserted)
}

func applyNorm(override, fallback Norm, asInserted string) string {
	if override != nil {
		return override(asInserted)
	}
	return fallback(asInserted)
}
