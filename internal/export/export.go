// Package export writes dashboard and insight exports to local files.
//
// Artifacts are staged under a temporary name in the destination
// directory and renamed into place only after the backend stream
// completed, so a failed export never leaves a partial file behind.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/stackless-dev/gooddata-cli/internal/gderr"
)

// Format selects the export artifact type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format name from a front end.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPDF, FormatCSV, FormatXLSX:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// defaultDir holds exports when no output path is given.
const defaultDir = "exports"

// Exporter is the streaming export capability of the backend. PDF
// exports take a dashboard id; tabular exports take an insight id.
type Exporter interface {
	ExportDashboardPDF(ctx context.Context, workspace, dashboardID string, w io.Writer) error
	ExportTabular(ctx context.Context, workspace, insightID, format string, w io.Writer) error
}

// Run produces one export artifact and returns its absolute path.
// outputPath may be empty, a directory, or a full file path.
func Run(ctx context.Context, e Exporter, workspace string, format Format, sourceID, outputPath string) (string, error) {
	dest, err := destinationPath(format, sourceID, outputPath)
	if err != nil {
		return "", &gderr.ExportError{Format: string(format), Path: outputPath, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", &gderr.ExportError{Format: string(format), Path: dest, Err: err}
	}

	// Stage in the destination directory so the final rename stays on
	// one filesystem.
	tmp := filepath.Join(filepath.Dir(dest), "."+uuid.NewString()+".part")
	f, err := os.Create(tmp)
	if err != nil {
		return "", &gderr.ExportError{Format: string(format), Path: dest, Err: err}
	}

	if err := stream(ctx, e, workspace, format, sourceID, f); err != nil {
		f.Close()
		os.Remove(tmp)
		var nf *gderr.NotFoundError
		if errors.As(err, &nf) {
			return "", err
		}
		return "", &gderr.ExportError{Format: string(format), Path: dest, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", &gderr.ExportError{Format: string(format), Path: dest, Err: err}
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return "", &gderr.ExportError{Format: string(format), Path: dest, Err: err}
	}

	abs, err := filepath.Abs(dest)
	if err != nil {
		abs = dest
	}
	log.Debug().Str("format", string(format)).Str("source", sourceID).Str("path", abs).Msg("export written")
	return abs, nil
}

func stream(ctx context.Context, e Exporter, workspace string, format Format, sourceID string, w io.Writer) error {
	if format == FormatPDF {
		return e.ExportDashboardPDF(ctx, workspace, sourceID, w)
	}
	return e.ExportTabular(ctx, workspace, sourceID, string(format), w)
}

// destinationPath resolves the final artifact path. An explicit path
// keeps whatever name the caller chose; a directory or empty path gets
// <source-id>.<ext> appended.
func destinationPath(format Format, sourceID, outputPath string) (string, error) {
	name := sourceID + "." + string(format)
	if outputPath == "" {
		return filepath.Join(defaultDir, name), nil
	}
	info, err := os.Stat(outputPath)
	if err == nil && info.IsDir() {
		return filepath.Join(outputPath, name), nil
	}
	if len(outputPath) > 0 && outputPath[len(outputPath)-1] == os.PathSeparator {
		return filepath.Join(outputPath, name), nil
	}
	return outputPath, nil
}
