// Package deviceclass resolves basic, generic and specific device class codes
// into descriptors.
//
// Lookups are total: a code that has no table entry resolves to an Unknown
// descriptor that still carries the raw code, so callers decoding node
// information never fail on an unrecognised class.
//
// # Tables
//
// The built-in tables in classes_gen.go are generated from classes.yaml:
//
//	go generate ./pkg/deviceclass
//
// Deployments can layer their own YAML file over the built-in tables with
// LoadFile and Merge. The file format is the same as classes.yaml:
//
//	generic:
//	  - key: 0x10
//	    name: SWITCH_BINARY
//	    specific:
//	      - key: 0x01
//	        name: POWER_SWITCH_BINARY
package deviceclass

//go:generate go run ../../cmd/zmesh-classgen -input classes.yaml -output classes_gen.go
