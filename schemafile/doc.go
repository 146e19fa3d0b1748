// Package schemafile loads schemas described in YAML or JSON documents.
//
// A document names a kind and the attributes of that kind:
//
//	kind: object
//	defs:
//	  role:
//	    kind: union
//	    anyOf:
//	      - {kind: literal, value: user}
//	      - {kind: literal, value: admin}
//	fields:
//	  - name: username
//	    schema: {kind: string, trim: true}
//	  - name: age
//	    schema: {kind: number, min: 18, max: 120}
//	  - name: role
//	    schema: {kind: ref, ref: role}
//	  - name: tags
//	    optional: true
//	    schema: {kind: array, of: {kind: string}}
//
// Compile turns a Doc into a dsl schema; Loader adds file reading and an LRU
// cache of compiled schemas.
package schemafile
