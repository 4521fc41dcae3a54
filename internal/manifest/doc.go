// Package manifest provides types and utilities for loading and validating
// ado2tf batch manifests. A manifest lists extract and generate jobs that are
// run in file order, so one file can pull listings and turn them into
// Terraform in a single invocation.
//
// # Manifest Format
//
// Manifests can be written in YAML or JSON format:
//
//	jobs:
//	  - name: projects
//	    extract:
//	      url: https://dev.azure.com/org/_apis/projects
//	      output: projects.json
//	  - name: project-blocks
//	    generate:
//	      kind: project
//	      input: projects.json
//	      terraform: projects.tf
//	      import: projects_import.tf
//	      all: true
//	options:
//	  continue_on_error: true
//
// # Usage
//
//	loader := manifest.NewLoader()
//	cfg, err := loader.Load("jobs.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, job := range cfg.Jobs {
//	    // Run each job
//	}
//
// # Error Handling
//
// The package defines sentinel errors for common failure cases:
//   - ErrNoJobs: manifest has no jobs defined
//   - ErrNoAction: job has neither extract nor generate
//   - ErrMultipleActions: job has both extract and generate
//   - ErrEmptyURL: extract job is missing its URL
//   - ErrEmptyInput: generate job is missing its input file
//   - ErrMissingKind: generate job has no kind and no earlier extract job writes its input
//   - ErrInvalidFormat: file is not valid YAML/JSON
//   - ErrFileNotFound: manifest file does not exist
//   - ErrUnsupportedExt: unsupported file extension
//
// A generate job may omit kind when an earlier extract job writes its input;
// the kind is then inferred from that job's URL at run time. Unknown resource
// kinds are reported with domain.ErrUnknownKind.
package manifest
