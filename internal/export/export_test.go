package export

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackless-dev/gooddata-cli/internal/gderr"
)

// fakeExporter writes canned bytes or fails partway through.
type fakeExporter struct {
	payload []byte
	err     error
}

func (f *fakeExporter) ExportDashboardPDF(_ context.Context, _, _ string, w io.Writer) error {
	return f.write(w)
}

func (f *fakeExporter) ExportTabular(_ context.Context, _, _, _ string, w io.Writer) error {
	return f.write(w)
}

func (f *fakeExporter) write(w io.Writer) error {
	if _, err := w.Write(f.payload); err != nil {
		return err
	}
	return f.err
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("docx")
	assert.Error(t, err)
}

func TestRun_DefaultPathUsesSourceID(t *testing.T) {
	t.Chdir(t.TempDir())
	e := &fakeExporter{payload: []byte("a,b\n1,2\n")}

	path, err := Run(context.Background(), e, "ws1", FormatCSV, "viz1", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, "viz1.csv", filepath.Base(path))
	assert.Equal(t, "exports", filepath.Base(filepath.Dir(path)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
}

func TestRun_ExplicitFileKeepsName(t *testing.T) {
	dir := t.TempDir()
	e := &fakeExporter{payload: []byte("%PDF-")}

	target := filepath.Join(dir, "report.pdf")
	path, err := Run(context.Background(), e, "ws1", FormatPDF, "dash1", target)
	require.NoError(t, err)
	assert.Equal(t, target, path)
	assert.FileExists(t, target)
}

func TestRun_DirectoryTargetAppendsName(t *testing.T) {
	dir := t.TempDir()
	e := &fakeExporter{payload: []byte("x")}

	path, err := Run(context.Background(), e, "ws1", FormatXLSX, "viz2", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "viz2.xlsx"), path)
}

func TestRun_FailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	e := &fakeExporter{payload: []byte("partial bytes"), err: errors.New("stream cut")}

	_, err := Run(context.Background(), e, "ws1", FormatCSV, "viz1", filepath.Join(dir, "out.csv"))
	require.Error(t, err)
	assert.Equal(t, gderr.KindExport, gderr.Kind(err))

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "no artifact and no temp file may remain")
}

func TestRun_NotFoundPassesThrough(t *testing.T) {
	dir := t.TempDir()
	e := &fakeExporter{err: &gderr.NotFoundError{Kind: "dashboard", ID: "dash-x"}}

	_, err := Run(context.Background(), e, "ws1", FormatPDF, "dash-x", filepath.Join(dir, "out.pdf"))
	require.Error(t, err)
	assert.Equal(t, gderr.KindNotFound, gderr.Kind(err))
}
