package catalog

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/google/go-cmp/cmp"
)

func TestParseType(t *testing.T) {
	varchar := DeclaredType{ID: TypeIDVarchar}
	integer := DeclaredType{ID: TypeIDInteger}

	tests := []struct {
		declared string
		want     DeclaredType
	}{
		{"BIGINT", DeclaredType{ID: TypeIDBigInt}},
		{"bigint", DeclaredType{ID: TypeIDBigInt}},
		{"INT", DeclaredType{ID: TypeIDInteger}},
		{"TEXT", DeclaredType{ID: TypeIDVarchar}},
		{"TIMESTAMP WITH TIME ZONE", DeclaredType{ID: TypeIDTimestampTZ}},
		{"DECIMAL", DeclaredType{ID: TypeIDDecimal, Width: 18, Scale: 3}},
		{"DECIMAL(10,2)", DeclaredType{ID: TypeIDDecimal, Width: 10, Scale: 2, Params: "10,2"}},
		{"NUMERIC(7)", DeclaredType{ID: TypeIDDecimal, Width: 7, Scale: 0, Params: "7"}},
		{"VARCHAR[]", DeclaredType{ID: TypeIDList, Child: &varchar}},
		{"INTEGER[3]", DeclaredType{ID: TypeIDArray, Size: 3, Child: &integer}},
		{"STRUCT(a INTEGER, b VARCHAR)", DeclaredType{ID: TypeIDStruct, Params: "A INTEGER, B VARCHAR"}},
		{"", DeclaredType{ID: TypeIDInvalid}},
	}

	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParseType(tt.declared)); diff != "" {
				t.Errorf("ParseType(%q) mismatch (-want +got):\n%s", tt.declared, diff)
			}
		})
	}
}

func TestParseTypeNestedList(t *testing.T) {
	got := ParseType("INTEGER[][]")
	if got.ID != TypeIDList || got.Child == nil || got.Child.ID != TypeIDList {
		t.Fatalf("ParseType(INTEGER[][]) = %+v, want LIST of LIST", got)
	}
	if got.Child.Child == nil || got.Child.Child.ID != TypeIDInteger {
		t.Errorf("innermost element = %+v, want INTEGER", got.Child.Child)
	}
}

func TestArrowType(t *testing.T) {
	tests := []struct {
		declared string
		want     arrow.DataType
	}{
		{"BOOLEAN", arrow.FixedWidthTypes.Boolean},
		{"TINYINT", arrow.PrimitiveTypes.Int8},
		{"INTEGER", arrow.PrimitiveTypes.Int32},
		{"BIGINT", arrow.PrimitiveTypes.Int64},
		{"UBIGINT", arrow.PrimitiveTypes.Uint64},
		{"DOUBLE", arrow.PrimitiveTypes.Float64},
		{"HUGEINT", &arrow.Decimal128Type{Precision: 38, Scale: 0}},
		{"DECIMAL(10,2)", &arrow.Decimal128Type{Precision: 10, Scale: 2}},
		{"DATE", arrow.FixedWidthTypes.Date32},
		{"TIME", arrow.FixedWidthTypes.Time64us},
		{"TIMESTAMP", &arrow.TimestampType{Unit: arrow.Microsecond}},
		{"TIMESTAMP_NS", &arrow.TimestampType{Unit: arrow.Nanosecond}},
		{"TIMESTAMP WITH TIME ZONE", &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}},
		{"INTERVAL", arrow.FixedWidthTypes.MonthDayNanoInterval},
		{"BLOB", arrow.BinaryTypes.Binary},
		{"VARCHAR", arrow.BinaryTypes.String},
		{"UUID", arrow.BinaryTypes.String},
		{"STRUCT(a INTEGER)", arrow.BinaryTypes.String},
		{"VARCHAR[]", arrow.ListOf(arrow.BinaryTypes.String)},
		{"DOUBLE[2]", arrow.FixedSizeListOf(2, arrow.PrimitiveTypes.Float64)},
	}

	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			got := ArrowType(tt.declared)
			if !arrow.TypeEqual(got, tt.want) {
				t.Errorf("ArrowType(%q) = %s, want %s", tt.declared, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := map[LogicalTypeID]LogicalTypeID{
		"INT8":        TypeIDBigInt,
		"TEXT":        TypeIDVarchar,
		"TIMESTAMPTZ": TypeIDTimestampTZ,
		"BOOL":        TypeIDBoolean,
		"VARCHAR":     TypeIDVarchar,
		"GEOMETRY":    TypeIDGeometry,
	}
	for in, want := range tests {
		if got := in.Normalize(); got != want {
			t.Errorf("Normalize(%s) = %s, want %s", in, got, want)
		}
	}
}
