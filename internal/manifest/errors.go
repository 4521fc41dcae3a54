package manifest

import "errors"

// Sentinel errors for the manifest package
var (
	// ErrNoJobs indicates the manifest has no jobs defined
	ErrNoJobs = errors.New("manifest must contain at least one job")

	// ErrNoAction indicates a job defines neither extract nor generate
	ErrNoAction = errors.New("job must define extract or generate")

	// ErrMultipleActions indicates a job defines both extract and generate
	ErrMultipleActions = errors.New("job must define only one of extract or generate")

	// ErrEmptyURL indicates an extract job is missing the required URL field
	ErrEmptyURL = errors.New("extract URL cannot be empty")

	// ErrMissingKind indicates a generate job has no kind and no upstream extract job to infer it from
	ErrMissingKind = errors.New("generate kind cannot be empty unless its input comes from an earlier extract job")

	// ErrEmptyInput indicates a generate job is missing its input file
	ErrEmptyInput = errors.New("generate input cannot be empty")

	// ErrDuplicateName indicates two jobs share a name, explicit or defaulted
	ErrDuplicateName = errors.New("job name must be unique")

	// ErrInvalidFormat indicates the manifest file is not valid YAML or JSON
	ErrInvalidFormat = errors.New("manifest must be valid YAML or JSON")

	// ErrFileNotFound indicates the manifest file does not exist
	ErrFileNotFound = errors.New("manifest file not found")

	// ErrUnsupportedExt indicates an unsupported file extension
	ErrUnsupportedExt = errors.New("unsupported file extension (use .yaml, .yml, or .json)")
)
