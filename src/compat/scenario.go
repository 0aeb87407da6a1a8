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

import "github.com/samber/lo"

// TypeScenario is one type-compatibility test case: a column type, the SQL
// literal inserted into it, and the strings expected back on the two
// extraction paths. A nil expected value means the scenario inserts SQL NULL
// and the read must observe NULL. Scenarios are immutable values owned by the
// catalog.
type TypeScenario struct {
	Name          string
	LogicalType   string
	ColumnType    string
	InsertLiteral string

	// DirectExpected is the value a direct database read must return.
	DirectExpected *string
	// FileExpected is the value the serialized data-file read must return.
	// It defaults to DirectExpected at construction; the two may legitimately
	// differ per backend.
	FileExpected *string
}

// NewScenario builds a scenario whose file-path expectation equals the
// direct-path expectation.
func NewScenario(name, logicalType, columnType, insertLiteral string, directExpected *string) TypeScenario {
	return NewScenarioWithFile(name, logicalType, columnType, insertLiteral, directExpected, directExpected)
}

// NewScenarioWithFile builds a scenario with independent expectations for the
// two extraction paths.
func NewScenarioWithFile(name, logicalType, columnType, insertLiteral string, directExpected, fileExpected *string) TypeScenario {
	return TypeScenario{
		Name:           name,
		LogicalType:    logicalType,
		ColumnType:     columnType,
		InsertLiteral:  insertLiteral,
		DirectExpected: directExpected,
		FileExpected:   fileExpected,
	}
}

const (
	stringValIn  = "'this is a short string'"
	stringValOut = "this is a short string"
)

// Catalog returns the built-in scenario set for the given adapter. Expected
// values are computed through the adapter's normalization functions, so the
// same catalog definition serves every backend.
//
// Time expectations are canonicalized to zero-padded HH:MM:SS here, in the
// catalog; the adapter contract leaves time values as inserted.
func Catalog(a Adapter) []TypeScenario {
	return []TypeScenario{
		NewScenario("varchar", TypeVarChar, "VARCHAR(32)", stringValIn, lo.ToPtr(stringValOut)),
		NewScenarioWithFile("char_fixed_width", TypeChar, "CHAR(32)", stringValIn,
			lo.ToPtr(a.FixedCharDBOut(32, stringValOut)),
			lo.ToPtr(a.FixedCharFileOut(32, stringValOut))),
		NewScenario("varchar_empty", TypeVarChar, "VARCHAR(32)", "''", lo.ToPtr("")),
		NewScenario("varchar_null", TypeVarChar, "VARCHAR(32)", "NULL", nil),

		NewScenario("integer", TypeInteger, "INTEGER", "42", lo.ToPtr("42")),
		NewScenario("integer_null", TypeInteger, "INTEGER", "NULL", nil),

		NewScenarioWithFile("boolean_true", TypeBoolean, "BOOLEAN", "1",
			lo.ToPtr(a.TrueBoolDBOutput), lo.ToPtr(a.TrueBoolFileOutput)),
		NewScenarioWithFile("boolean_false_zero", TypeBoolean, "BOOLEAN", "0",
			lo.ToPtr(a.FalseBoolDBOutput), lo.ToPtr(a.FalseBoolFileOutput)),
		NewScenarioWithFile("boolean_false_keyword", TypeBoolean, "BOOLEAN", "false",
			lo.ToPtr(a.FalseBoolDBOutput), lo.ToPtr(a.FalseBoolFileOutput)),

		NewScenario("tinyint_zero", TypeTinyInt, "TINYINT", "0", lo.ToPtr("0")),
		NewScenario("tinyint", TypeTinyInt, "TINYINT", "42", lo.ToPtr("42")),
		NewScenario("smallint_negative", TypeSmallInt, "SMALLINT", "-1024", lo.ToPtr("-1024")),
		NewScenario("smallint", TypeSmallInt, "SMALLINT", "2048", lo.ToPtr("2048")),
		NewScenario("bigint", TypeBigInt, "BIGINT", "10000000000", lo.ToPtr("10000000000")),

		NewScenarioWithFile("real_integral", TypeReal, "REAL", "256",
			lo.ToPtr(a.RealDBOut("256")), lo.ToPtr(a.RealFileOut("256"))),
		NewScenarioWithFile("real_fractional", TypeReal, "REAL", "256.45",
			lo.ToPtr(a.RealDBOut("256.45")), lo.ToPtr(a.RealFileOut("256.45"))),
		NewScenarioWithFile("float_integral", TypeFloat, "FLOAT", "256",
			lo.ToPtr(a.FloatDBOut("256")), lo.ToPtr(a.FloatFileOut("256"))),
		NewScenarioWithFile("float_fractional", TypeFloat, "FLOAT", "256.5",
			lo.ToPtr(a.FloatDBOut("256.5")), lo.ToPtr(a.FloatFileOut("256.5"))),
		NewScenarioWithFile("double_negative", TypeDouble, a.DoubleTypeName, "-256",
			lo.ToPtr(a.DoubleDBOut("-256")), lo.ToPtr(a.DoubleFileOut("-256"))),
		NewScenarioWithFile("double_fractional", TypeDouble, a.DoubleTypeName, "256.45",
			lo.ToPtr(a.DoubleDBOut("256.45")), lo.ToPtr(a.DoubleFileOut("256.45"))),

		NewScenarioWithFile("date_single_digit", TypeDate, "DATE", a.DateInsertStr("'2009-1-12'"),
			lo.ToPtr(a.DateDBOut("2009-01-12")), lo.ToPtr(a.DateFileOut("2009-01-12"))),
		NewScenarioWithFile("date_padded", TypeDate, "DATE", a.DateInsertStr("'2009-01-12'"),
			lo.ToPtr(a.DateDBOut("2009-01-12")), lo.ToPtr(a.DateFileOut("2009-01-12"))),
		NewScenarioWithFile("date_april", TypeDate, "DATE", a.DateInsertStr("'2009-04-24'"),
			lo.ToPtr(a.DateDBOut("2009-04-24")), lo.ToPtr(a.DateFileOut("2009-04-24"))),

		NewScenario("time_noon", TypeTime, "TIME", a.TimeInsertStr("'12:24:00'"), lo.ToPtr("12:24:00")),
		NewScenario("time_morning", TypeTime, "TIME", a.TimeInsertStr("'06:24:00'"), lo.ToPtr("06:24:00")),
		NewScenario("time_unpadded_hour", TypeTime, "TIME", a.TimeInsertStr("'6:24:00'"), lo.ToPtr("06:24:00")),
		NewScenario("time_evening", TypeTime, "TIME", a.TimeInsertStr("'18:24:00'"), lo.ToPtr("18:24:00")),

		NewScenarioWithFile("timestamp", TypeTimestamp, a.TimestampTypeName,
			a.TimestampInsertStr("'2009-04-24 18:24:00'"),
			lo.ToPtr(a.TimestampDBOut("2009-04-24 18:24:00")),
			lo.ToPtr(a.TimestampFileOut("2009-04-24 18:24:00"))),
		NewScenarioWithFile("timestamp_fractional", TypeTimestamp, a.TimestampTypeName,
			a.TimestampInsertStr("'2009-04-24 18:24:00.0002'"),
			lo.ToPtr(a.TimestampDBOut("2009-04-24 18:24:00.0002")),
			lo.ToPtr(a.TimestampFileOut("2009-04-24 18:24:00.0002"))),
		NewScenario("timestamp_null", TypeTimestamp, a.TimestampTypeName, "NULL", nil),

		numericScenario(a, "numeric_one", "1"),
		numericScenario(a, "numeric_negative", "-10"),
		numericScenario(a, "numeric_pi", "3.14159"),
		numericScenario(a, "numeric_wide", "3000000000000000000.14159"),
		numericScenario(a, "numeric_max", "99999999999999999999.14159"),
		numericScenario(a, "numeric_min", "-99999999999999999999.14159"),

		decimalScenario(a, "decimal_one", "1"),
		decimalScenario(a, "decimal_negative", "-10"),
		decimalScenario(a, "decimal_pi", "3.14159"),
		decimalScenario(a, "decimal_wide", "3000000000000000000.14159"),
		decimalScenario(a, "decimal_max", "99999999999999999999.14159"),
		decimalScenario(a, "decimal_min", "-99999999999999999999.14159"),

		NewScenario("longvarchar", TypeLongVarChar, a.LongVarCharTypeName,
			"'this is a long varchar'", lo.ToPtr("this is a long varchar")),
	}
}

func numericScenario(a Adapter, name, literal string) TypeScenario {
	return NewScenarioWithFile(name, TypeNumeric, a.NumericType(), literal,
		lo.ToPtr(a.NumericDBOut(literal)), lo.ToPtr(a.NumericFileOut(literal)))
}

func decimalScenario(a Adapter, name, literal string) TypeScenario {
	return NewScenarioWithFile(name, TypeDecimal, a.DecimalType(), literal,
		lo.ToPtr(a.DecimalDBOut(literal)), lo.ToPtr(a.DecimalFileOut(literal)))
}

// FilterScenarios returns the scenarios whose names appear in names,
// preserving catalog order. An empty names list selects everything.
func FilterScenarios(scenarios []TypeScenario, names []string) []TypeScenario {
	if len(names) == 0 {
		return scenarios
	}
	return lo.Filter(scenarios, func(sc TypeScenario, _ int) bool {
		return lo.Contains(names, sc.Name)
	})
}
