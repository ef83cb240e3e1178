// SPDX-License-Identifier: MPL-2.0

// Package cueutil decodes user files (playset exports, config.cue) against
// an embedded CUE schema.
//
// Every decode follows the same three steps:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify it with the schema definition
//  3. Validate and decode to a Go struct
//
// Because CUE is a superset of JSON, a launcher playset export can be
// decoded with the same call as a hand-written .cue file:
//
//	//go:embed playset_schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.ParseAndDecode[File](
//	    schemaBytes,
//	    exportBytes,
//	    "#Playset",
//	    cueutil.WithFilename("playset.json"),
//	)
//	if err != nil {
//	    return nil, err  // error carries the JSON path of the bad field
//	}
//	return result.Value, nil
package cueutil
