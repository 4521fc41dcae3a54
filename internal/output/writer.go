package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/quantmind-br/ado2tf/internal/domain"
	"github.com/quantmind-br/ado2tf/internal/utils"
)

// Stdout section headers for rendered blocks
const (
	ResourceHeader = "--- Terraform resource block ---"
	ImportHeader   = "--- Terraform import block ---"
)

// Writer sends extraction and generation results to files or stdout
type Writer struct {
	stdout io.Writer
	logger *utils.Logger
	dryRun bool
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	Stdout io.Writer
	Logger *utils.Logger
	DryRun bool
}

// NewWriter creates a new output writer
func NewWriter(opts WriterOptions) *Writer {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = utils.Nop()
	}

	return &Writer{
		stdout: opts.Stdout,
		logger: opts.Logger.WithComponent("output"),
		dryRun: opts.DryRun,
	}
}

// EncodeItems renders items as a 4-space indented JSON array.
// HTML characters and non-ASCII text are kept literal.
func EncodeItems(items []json.RawMessage) ([]byte, error) {
	if items == nil {
		items = []json.RawMessage{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(items); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WriteJSON writes the aggregated items to path, or to stdout when path is empty
func (w *Writer) WriteJSON(path string, items []json.RawMessage) error {
	data, err := EncodeItems(items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}

	if path == "" {
		if _, err := fmt.Fprintf(w.stdout, "%s\n", data); err != nil {
			return domain.NewIOError("write", "<stdout>", err)
		}
		return nil
	}

	if err := w.writeFile(path, data); err != nil {
		return err
	}
	w.logger.Info().Str("path", path).Int("items", len(items)).Msg("Data saved")
	return nil
}

// WriteBlocks writes resource and import text to their files.
// An empty path sends that part to stdout under its section header.
func (w *Writer) WriteBlocks(resources, imports, terraformPath, importPath string) error {
	if terraformPath != "" {
		if err := w.writeFile(terraformPath, []byte(resources)); err != nil {
			return err
		}
		w.logger.Info().Str("path", terraformPath).Msg("Resource block saved")
	} else if err := w.printSection(ResourceHeader, resources); err != nil {
		return err
	}

	if importPath != "" {
		if err := w.writeFile(importPath, []byte(imports)); err != nil {
			return err
		}
		w.logger.Info().Str("path", importPath).Msg("Import block saved")
	} else if err := w.printSection("\n"+ImportHeader, imports); err != nil {
		return err
	}

	return nil
}

func (w *Writer) printSection(header, body string) error {
	if _, err := fmt.Fprintf(w.stdout, "%s\n%s\n", header, body); err != nil {
		return domain.NewIOError("write", "<stdout>", err)
	}
	return nil
}

func (w *Writer) writeFile(path string, data []byte) error {
	if w.dryRun {
		w.logger.Info().Str("path", path).Int("bytes", len(data)).Msg("Dry run, not writing")
		return nil
	}

	path = utils.ExpandPath(path)
	if err := utils.EnsureDir(path); err != nil {
		return domain.NewIOError("create directory for", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return domain.NewIOError("write", path, err)
	}
	return nil
}
