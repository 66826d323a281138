// Package config loads build files.
//
// A build file is YAML listing the projects of a build and the actions to
// apply to each of them:
//
//	name: demo
//	suppress_errors: true
//	workers: 4
//	projects:
//	  - name: core
//	    dir: ./core
//	actions:
//	  - name: lint
//	    run: ["go", "vet", "./..."]
//
// Files are decoded strictly (unknown keys are rejected) and then checked
// against an embedded CUE schema (schema.cue).
package config
