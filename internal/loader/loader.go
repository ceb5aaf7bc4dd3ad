// Package loader reads schema definitions written in YAML and builds
// schema.Package trees from them.
//
//	package: shop
//	aliases:
//	  - name: quantity
//	    type: integer
//	    min: 0
//	    max: {value: 1000, inclusive: false}
//	enumerations:
//	  - name: status
//	    values: [active, disabled]
//	entities:
//	  - name: customer
//	    fields:
//	      - {name: id, type: uuid}
//	      - {name: qty, alias: quantity}
//	      - {name: status, enumeration: status}
//	      - {name: parent, entity: customer}
package loader

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"

	omnitree "github.com/reoring/omnitree"
	"github.com/reoring/omnitree/schema"
)

// Load reads and maps the definition stored at path. Read and syntax errors
// are returned as *omnitree.OpError; definition problems as omnitree.Issues
// wrapped in an *omnitree.OpError carrying the path.
func Load(path string) (*schema.Package, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &omnitree.OpError{Op: "loader.load", Path: path, Err: err}
	}
	pkg, err := Parse(b)
	if err != nil {
		if op, ok := err.(*omnitree.OpError); ok {
			op.Path = path
			return nil, op
		}
		return nil, &omnitree.OpError{Op: "loader.load", Path: path, Err: err}
	}
	return pkg, nil
}

// Parse maps one YAML document. Unknown keys are rejected.
func Parse(data []byte) (*schema.Package, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var dto YAMLPackage
	if err := dec.Decode(&dto); err != nil {
		return nil, &omnitree.OpError{Op: "loader.parse", Err: err}
	}
	return MapPackage(dto)
}
