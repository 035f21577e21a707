package catalog

import (
	"github.com/apache/arrow-go/v18/arrow"
)

// Field metadata keys set by Table.ArrowSchema.
const (
	MetadataDeclaredType = "duckdb.type"
	MetadataTableKind    = "duckdb.table_kind"
)

// ArrowSchema describes the table's columns as an Arrow schema.
// Every field is nullable and carries its declared DuckDB type in metadata
// under MetadataDeclaredType; the schema carries the table kind.
func (t Table) ArrowSchema() *arrow.Schema {
	fields := make([]arrow.Field, 0, len(t.Columns))
	for _, col := range t.Columns {
		fields = append(fields, arrow.Field{
			Name:     col.Name,
			Type:     ArrowType(col.Type),
			Nullable: true,
			Metadata: arrow.NewMetadata([]string{MetadataDeclaredType}, []string{col.Type}),
		})
	}
	md := arrow.NewMetadata([]string{MetadataTableKind}, []string{t.Kind})
	return arrow.NewSchema(fields, &md)
}

// DeclaredType returns the column's declared type, parsed.
func (c Column) DeclaredType() DeclaredType {
	return ParseType(c.Type)
}
