package serialize

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/hugr-lab/duckcat/catalog"
)

// catalogVersion is bumped when the encoded layout changes.
const catalogVersion = 1

type envelope struct {
	Version   int          `msgpack:"version"`
	Databases catalog.Tree `msgpack:"databases"`
}

// EncodeCatalog serializes the full tree, including databases and schemas
// without children, into MessagePack.
func EncodeCatalog(tree catalog.Tree) ([]byte, error) {
	if tree == nil {
		tree = catalog.Tree{}
	}
	data, err := msgpack.Marshal(envelope{Version: catalogVersion, Databases: tree})
	if err != nil {
		return nil, fmt.Errorf("failed to encode MessagePack: %w", err)
	}
	return data, nil
}

// DecodeCatalog deserializes a tree written by EncodeCatalog.
// Empty child sequences decode as empty slices, never nil.
func DecodeCatalog(data []byte) (catalog.Tree, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty MessagePack data")
	}

	var env envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode MessagePack: %w", err)
	}
	if env.Version != catalogVersion {
		return nil, fmt.Errorf("unsupported catalog version %d", env.Version)
	}

	tree := env.Databases
	if tree == nil {
		tree = catalog.Tree{}
	}
	for i := range tree {
		if tree[i].Schemas == nil {
			tree[i].Schemas = []catalog.Schema{}
		}
		for j := range tree[i].Schemas {
			schema := &tree[i].Schemas[j]
			if schema.Tables == nil {
				schema.Tables = []catalog.Table{}
			}
			for k := range schema.Tables {
				if schema.Tables[k].Columns == nil {
					schema.Tables[k].Columns = []catalog.Column{}
				}
			}
		}
	}
	return tree, nil
}
