// Package serialize encodes catalog trees for export: as an Arrow IPC stream
// in the Flight SQL GetTables layout extended with one row per column, and as
// MessagePack. Either can be compressed with ZStandard.
package serialize

import (
	"bytes"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/duckcat/catalog"
)

// CatalogSchema is the Arrow schema of SerializeCatalog output.
// Tables without columns produce a single row with null column fields.
var CatalogSchema = arrow.NewSchema([]arrow.Field{
	{Name: "catalog_name", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "db_schema_name", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "table_name", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "table_type", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "column_name", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "data_type", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "arrow_type", Type: arrow.BinaryTypes.String, Nullable: true},
}, nil)

// SerializeCatalog writes the tree as a single-record Arrow IPC stream.
// Databases and schemas without tables have no row in this layout; use
// EncodeCatalog when they must survive.
func SerializeCatalog(tree catalog.Tree, allocator memory.Allocator) ([]byte, error) {
	if allocator == nil {
		allocator = memory.DefaultAllocator
	}

	builder := array.NewRecordBuilder(allocator, CatalogSchema)
	defer builder.Release()

	catalogName := builder.Field(0).(*array.StringBuilder)
	schemaName := builder.Field(1).(*array.StringBuilder)
	tableName := builder.Field(2).(*array.StringBuilder)
	tableType := builder.Field(3).(*array.StringBuilder)
	columnName := builder.Field(4).(*array.StringBuilder)
	dataType := builder.Field(5).(*array.StringBuilder)
	arrowType := builder.Field(6).(*array.StringBuilder)

	appendTable := func(db, schema string, table catalog.Table) {
		catalogName.Append(db)
		schemaName.Append(schema)
		tableName.Append(table.Name)
		tableType.Append(table.Kind)
	}

	for _, db := range tree {
		for _, schema := range db.Schemas {
			for _, table := range schema.Tables {
				if len(table.Columns) == 0 {
					appendTable(db.Name, schema.Name, table)
					columnName.AppendNull()
					dataType.AppendNull()
					arrowType.AppendNull()
					continue
				}
				for _, col := range table.Columns {
					appendTable(db.Name, schema.Name, table)
					columnName.Append(col.Name)
					dataType.Append(col.Type)
					arrowType.Append(catalog.ArrowType(col.Type).String())
				}
			}
		}
	}

	record := builder.NewRecord()
	defer record.Release()

	var buf bytes.Buffer
	writer := ipc.NewWriter(&buf, ipc.WithSchema(CatalogSchema), ipc.WithAllocator(allocator))

	if err := writer.Write(record); err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to write IPC record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close IPC writer: %w", err)
	}

	return buf.Bytes(), nil
}

// SerializeTableSchema writes the Arrow schema of one table as an IPC
// stream with no record batches.
func SerializeTableSchema(table catalog.Table, allocator memory.Allocator) ([]byte, error) {
	if allocator == nil {
		allocator = memory.DefaultAllocator
	}
	schema := table.ArrowSchema()

	var buf bytes.Buffer
	writer := ipc.NewWriter(&buf, ipc.WithSchema(schema), ipc.WithAllocator(allocator))
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to write schema for table %s: %w", table.Name, err)
	}
	return buf.Bytes(), nil
}

// CompressCatalog compresses serialized catalog data using ZStandard.
func CompressCatalog(data []byte) ([]byte, error) {
	compressor, err := NewCompressor()
	if err != nil {
		return nil, err
	}
	defer compressor.Close()

	return compressor.Compress(data)
}

// DecompressCatalog reverses CompressCatalog.
func DecompressCatalog(data []byte) ([]byte, error) {
	decompressor, err := NewDecompressor()
	if err != nil {
		return nil, err
	}
	defer decompressor.Close()

	return decompressor.Decompress(data)
}
