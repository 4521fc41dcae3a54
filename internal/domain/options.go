package domain

// CommonOptions contains shared options for the extract and generate commands.
type CommonOptions struct {
	Verbose    bool
	NoProgress bool
}

// DefaultCommonOptions returns CommonOptions with default values.
func DefaultCommonOptions() CommonOptions {
	return CommonOptions{}
}
