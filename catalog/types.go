package catalog

import (
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
)

// LogicalTypeID identifies DuckDB data types.
type LogicalTypeID string

const (
	TypeIDInvalid      LogicalTypeID = "INVALID"
	TypeIDBoolean      LogicalTypeID = "BOOLEAN"
	TypeIDTinyInt      LogicalTypeID = "TINYINT"
	TypeIDSmallInt     LogicalTypeID = "SMALLINT"
	TypeIDInteger      LogicalTypeID = "INTEGER"
	TypeIDBigInt       LogicalTypeID = "BIGINT"
	TypeIDDate         LogicalTypeID = "DATE"
	TypeIDTime         LogicalTypeID = "TIME"
	TypeIDTimestampSec LogicalTypeID = "TIMESTAMP_SEC"
	TypeIDTimestampMs  LogicalTypeID = "TIMESTAMP_MS"
	TypeIDTimestamp    LogicalTypeID = "TIMESTAMP"
	TypeIDTimestampNs  LogicalTypeID = "TIMESTAMP_NS"
	TypeIDDecimal      LogicalTypeID = "DECIMAL"
	TypeIDFloat        LogicalTypeID = "FLOAT"
	TypeIDDouble       LogicalTypeID = "DOUBLE"
	TypeIDChar         LogicalTypeID = "CHAR"
	TypeIDVarchar      LogicalTypeID = "VARCHAR"
	TypeIDBlob         LogicalTypeID = "BLOB"
	TypeIDInterval     LogicalTypeID = "INTERVAL"
	TypeIDUTinyInt     LogicalTypeID = "UTINYINT"
	TypeIDUSmallInt    LogicalTypeID = "USMALLINT"
	TypeIDUInteger     LogicalTypeID = "UINTEGER"
	TypeIDUBigInt      LogicalTypeID = "UBIGINT"
	TypeIDTimestampTZ  LogicalTypeID = "TIMESTAMP_TZ"
	TypeIDTimeTZ       LogicalTypeID = "TIME_TZ"
	TypeIDHugeInt      LogicalTypeID = "HUGEINT"
	TypeIDUHugeInt     LogicalTypeID = "UHUGEINT"
	TypeIDUUID         LogicalTypeID = "UUID"
	TypeIDStruct       LogicalTypeID = "STRUCT"
	TypeIDList         LogicalTypeID = "LIST"
	TypeIDMap          LogicalTypeID = "MAP"
	TypeIDEnum         LogicalTypeID = "ENUM"
	TypeIDArray        LogicalTypeID = "ARRAY"
	TypeIDUnion        LogicalTypeID = "UNION"
	TypeIDBit          LogicalTypeID = "BIT"
	TypeIDJSON         LogicalTypeID = "JSON"
	TypeIDGeometry     LogicalTypeID = "GEOMETRY"
)

// typeIDMapping maps DuckDB aliases and full SQL names to normalized short names.
var typeIDMapping = map[LogicalTypeID]LogicalTypeID{
	"TIMESTAMP WITH TIME ZONE":    TypeIDTimestampTZ,
	"TIMESTAMPTZ":                 TypeIDTimestampTZ,
	"TIME WITH TIME ZONE":         TypeIDTimeTZ,
	"TIMETZ":                      TypeIDTimeTZ,
	"TIMESTAMP_S":                 TypeIDTimestampSec,
	"TIMESTAMP WITHOUT TIME ZONE": TypeIDTimestamp,
	"DATETIME":                    TypeIDTimestamp,
	"INT":                         TypeIDInteger,
	"INT4":                        TypeIDInteger,
	"SIGNED":                      TypeIDInteger,
	"INT8":                        TypeIDBigInt,
	"LONG":                        TypeIDBigInt,
	"INT2":                        TypeIDSmallInt,
	"SHORT":                       TypeIDSmallInt,
	"INT1":                        TypeIDTinyInt,
	"UINT8":                       TypeIDUBigInt,
	"UINT4":                       TypeIDUInteger,
	"UINT2":                       TypeIDUSmallInt,
	"UINT1":                       TypeIDUTinyInt,
	"INT128":                      TypeIDHugeInt,
	"UINT128":                     TypeIDUHugeInt,
	"FLOAT4":                      TypeIDFloat,
	"REAL":                        TypeIDFloat,
	"FLOAT8":                      TypeIDDouble,
	"NUMERIC":                     TypeIDDecimal,
	"STRING":                      TypeIDVarchar,
	"TEXT":                        TypeIDVarchar,
	"BPCHAR":                      TypeIDVarchar,
	"BYTEA":                       TypeIDBlob,
	"VARBINARY":                   TypeIDBlob,
	"BINARY":                      TypeIDBlob,
	"BITSTRING":                   TypeIDBit,
	"BOOL":                        TypeIDBoolean,
	"LOGICAL":                     TypeIDBoolean,
}

// Normalize returns the canonical LogicalTypeID for the given type ID.
// This handles DuckDB type aliases and full SQL names.
func (t LogicalTypeID) Normalize() LogicalTypeID {
	if mapped, ok := typeIDMapping[t]; ok {
		return mapped
	}
	return t
}

// DeclaredType is a parsed column type declaration.
type DeclaredType struct {
	ID LogicalTypeID
	// Width and Scale are set for DECIMAL.
	Width int
	Scale int
	// Size is the element count of a fixed-size ARRAY.
	Size int
	// Child is the element type of LIST and ARRAY.
	Child *DeclaredType
	// Params is the raw text between the outer parentheses, if any
	// (e.g., "a INTEGER, b VARCHAR" for a STRUCT).
	Params string
}

// DuckDB's DECIMAL without parameters.
const (
	defaultDecimalWidth = 18
	defaultDecimalScale = 3
)

// ParseType parses a declared type as reported by information_schema.columns.
//
// Examples:
//
//	ParseType("BIGINT")        // {ID: BIGINT}
//	ParseType("DECIMAL(10,2)") // {ID: DECIMAL, Width: 10, Scale: 2}
//	ParseType("VARCHAR[]")     // {ID: LIST, Child: {ID: VARCHAR}}
//	ParseType("INTEGER[3]")    // {ID: ARRAY, Size: 3, Child: {ID: INTEGER}}
func ParseType(declared string) DeclaredType {
	s := strings.ToUpper(strings.TrimSpace(declared))
	if s == "" {
		return DeclaredType{ID: TypeIDInvalid}
	}

	if strings.HasSuffix(s, "]") {
		if open := strings.LastIndex(s, "["); open > 0 {
			child := ParseType(s[:open])
			inner := s[open+1 : len(s)-1]
			if inner == "" {
				return DeclaredType{ID: TypeIDList, Child: &child}
			}
			if size, err := strconv.Atoi(inner); err == nil {
				return DeclaredType{ID: TypeIDArray, Size: size, Child: &child}
			}
		}
	}

	base, params := s, ""
	if open := strings.Index(s, "("); open > 0 && strings.HasSuffix(s, ")") {
		base = strings.TrimSpace(s[:open])
		params = s[open+1 : len(s)-1]
	}

	dt := DeclaredType{ID: LogicalTypeID(base).Normalize(), Params: params}
	if dt.ID == TypeIDDecimal {
		dt.Width, dt.Scale = defaultDecimalWidth, defaultDecimalScale
		if params != "" {
			w, sc, _ := strings.Cut(params, ",")
			if v, err := strconv.Atoi(strings.TrimSpace(w)); err == nil {
				dt.Width, dt.Scale = v, 0
			}
			if v, err := strconv.Atoi(strings.TrimSpace(sc)); err == nil {
				dt.Scale = v
			}
		}
	}
	return dt
}

// ArrowType maps a declared DuckDB type to an Arrow data type, following
// the types DuckDB produces when it exports query results to Arrow.
// Types without a direct counterpart (STRUCT, MAP, UNION, ENUM, JSON,
// GEOMETRY, ...) map to UTF-8 strings.
func ArrowType(declared string) arrow.DataType {
	return ParseType(declared).ArrowType()
}

// ArrowType returns the Arrow data type for the declaration.
func (d DeclaredType) ArrowType() arrow.DataType {
	switch d.ID {
	case TypeIDBoolean:
		return arrow.FixedWidthTypes.Boolean
	case TypeIDTinyInt:
		return arrow.PrimitiveTypes.Int8
	case TypeIDSmallInt:
		return arrow.PrimitiveTypes.Int16
	case TypeIDInteger:
		return arrow.PrimitiveTypes.Int32
	case TypeIDBigInt:
		return arrow.PrimitiveTypes.Int64
	case TypeIDUTinyInt:
		return arrow.PrimitiveTypes.Uint8
	case TypeIDUSmallInt:
		return arrow.PrimitiveTypes.Uint16
	case TypeIDUInteger:
		return arrow.PrimitiveTypes.Uint32
	case TypeIDUBigInt:
		return arrow.PrimitiveTypes.Uint64
	case TypeIDHugeInt, TypeIDUHugeInt:
		return &arrow.Decimal128Type{Precision: 38, Scale: 0}
	case TypeIDFloat:
		return arrow.PrimitiveTypes.Float32
	case TypeIDDouble:
		return arrow.PrimitiveTypes.Float64
	case TypeIDDecimal:
		return &arrow.Decimal128Type{Precision: int32(d.Width), Scale: int32(d.Scale)}
	case TypeIDDate:
		return arrow.FixedWidthTypes.Date32
	case TypeIDTime, TypeIDTimeTZ:
		return arrow.FixedWidthTypes.Time64us
	case TypeIDTimestampSec:
		return &arrow.TimestampType{Unit: arrow.Second}
	case TypeIDTimestampMs:
		return &arrow.TimestampType{Unit: arrow.Millisecond}
	case TypeIDTimestamp:
		return &arrow.TimestampType{Unit: arrow.Microsecond}
	case TypeIDTimestampNs:
		return &arrow.TimestampType{Unit: arrow.Nanosecond}
	case TypeIDTimestampTZ:
		return &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}
	case TypeIDInterval:
		return arrow.FixedWidthTypes.MonthDayNanoInterval
	case TypeIDBlob, TypeIDBit:
		return arrow.BinaryTypes.Binary
	case TypeIDList:
		return arrow.ListOf(d.Child.ArrowType())
	case TypeIDArray:
		return arrow.FixedSizeListOf(int32(d.Size), d.Child.ArrowType())
	}
	return arrow.BinaryTypes.String
}
