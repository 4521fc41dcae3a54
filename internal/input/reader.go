package input

import (
	"fmt"
	"io"
	"os"

	"github.com/quantmind-br/ado2tf/internal/domain"
	"github.com/quantmind-br/ado2tf/internal/terraform"
	"github.com/quantmind-br/ado2tf/internal/utils"
	"github.com/tidwall/gjson"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// StdinSource names standard input in errors
const StdinSource = "<stdin>"

// Reader loads generator input from a file or standard input
type Reader struct {
	stdin      io.Reader
	isTerminal func() bool
}

// NewReader creates a Reader over the process standard input
func NewReader() *Reader {
	return &Reader{
		stdin:      os.Stdin,
		isTerminal: func() bool { return utils.IsTerminal(os.Stdin) },
	}
}

// NewReaderFrom creates a Reader over an arbitrary stream that is never treated as a terminal
func NewReaderFrom(stdin io.Reader) *Reader {
	return &Reader{
		stdin:      stdin,
		isTerminal: func() bool { return false },
	}
}

// Read returns the decoded bytes of path, or of standard input when path is empty.
// UTF-8 and UTF-16 byte order marks are honoured.
func (r *Reader) Read(path string) ([]byte, string, error) {
	if path == "" {
		if r.isTerminal() {
			return nil, StdinSource, domain.NewValidationError("input", domain.ErrNoInput.Error()+" (use --json or pipe data on stdin)")
		}
		data, err := decode(r.stdin)
		if err != nil {
			return nil, StdinSource, domain.NewIOError("read", StdinSource, err)
		}
		return data, StdinSource, nil
	}

	path = utils.ExpandPath(path)
	f, err := os.Open(path)
	if err != nil {
		return nil, path, domain.NewIOError("open", path, err)
	}
	defer f.Close()

	data, err := decode(f)
	if err != nil {
		return nil, path, domain.NewIOError("read", path, err)
	}
	return data, path, nil
}

// ReadEntities reads path (or stdin) and selects the entities to render
func (r *Reader) ReadEntities(path string, all bool) ([]terraform.Entity, error) {
	data, source, err := r.Read(path)
	if err != nil {
		return nil, err
	}
	return SelectEntities(data, source, all)
}

// decode strips a byte order mark and transcodes UTF-16 input to UTF-8
func decode(r io.Reader) ([]byte, error) {
	return io.ReadAll(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
}

// SelectEntities picks the entities from one JSON document.
// A bare object yields itself; a non-empty array yields its first element, or every element when all is set.
func SelectEntities(data []byte, source string, all bool) ([]terraform.Entity, error) {
	if !gjson.ValidBytes(data) {
		return nil, domain.NewDecodeError(source, nil)
	}

	doc := gjson.ParseBytes(data)
	switch {
	case doc.IsObject():
		e, err := terraform.EntityFromResult(doc)
		if err != nil {
			return nil, err
		}
		return []terraform.Entity{e}, nil

	case doc.IsArray():
		elements := doc.Array()
		if len(elements) == 0 {
			return nil, domain.NewValidationError("input", "expected a JSON object or a non-empty array, got an empty array")
		}
		if !all {
			elements = elements[:1]
		}
		entities := make([]terraform.Entity, 0, len(elements))
		for i, element := range elements {
			e, err := terraform.EntityFromResult(element)
			if err != nil {
				return nil, domain.NewValidationError(fmt.Sprintf("input[%d]", i), "expected a JSON object")
			}
			entities = append(entities, e)
		}
		return entities, nil
	}

	return nil, domain.NewValidationError("input", "expected a JSON object or a non-empty array")
}
