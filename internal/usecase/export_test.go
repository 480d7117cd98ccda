package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/render"
	"resume-builder/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePDF struct {
	outputs  [][]byte
	errs     []error
	calls    int
	lastHTML string
}

func (f *fakePDF) RenderHTMLToPDF(_ context.Context, html string) ([]byte, error) {
	i := f.calls
	f.calls++
	f.lastHTML = html
	var out []byte
	var err error
	if i < len(f.outputs) {
		out = f.outputs[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return out, err
}

type fakeStore struct{ objects map[string][]byte }

func (s *fakeStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[key] = data
	return "mem://" + key, nil
}

type fakeExportsRepo struct {
	saved []domain.ExportRecord
	err   error
}

func (r *fakeExportsRepo) Save(_ context.Context, rec *domain.ExportRecord) error {
	r.saved = append(r.saved, *rec)
	return r.err
}

func newTestExporter(pdf Renderer, store ArtifactStore, repo ExportsRepo) *Exporter {
	return NewExporter(render.MustNew(), pdf, store, repo, nil, ExporterOptions{Backoff: time.Millisecond})
}

func TestExportRetriesUntilValidPDF(t *testing.T) {
	pdf := &fakePDF{
		outputs: [][]byte{nil, []byte("<html>not a pdf"), []byte("%PDF-1.7 ok")},
		errs:    []error{errors.New("chrome crashed"), nil, nil},
	}
	store := &fakeStore{}
	repo := &fakeExportsRepo{}
	x := newTestExporter(pdf, store, repo)
	sid := uuid.New()

	res, err := x.Export(context.Background(), sid, model.SampleResume(), render.DefaultStyle())
	require.NoError(t, err)
	assert.Equal(t, 3, pdf.calls)
	assert.Equal(t, "Alex_Morgan_Resume.pdf", res.FileName)
	assert.Equal(t, []byte("%PDF-1.7 ok"), res.PDF)
	assert.Contains(t, pdf.lastHTML, "@page{size:A4")

	require.Len(t, repo.saved, 1)
	assert.Equal(t, domain.ExportCompleted, repo.saved[0].Status)
	assert.Equal(t, sid, repo.saved[0].SessionID)
	assert.True(t, strings.HasPrefix(res.Record.StorageKey, "mem://exports/"+sid.String()))
	assert.Len(t, store.objects, 2)
}

func TestExportFailsAfterAttempts(t *testing.T) {
	pdf := &fakePDF{errs: []error{errors.New("a"), errors.New("b"), errors.New("c")}}
	store := &fakeStore{}
	repo := &fakeExportsRepo{}
	x := newTestExporter(pdf, store, repo)

	_, err := x.Export(context.Background(), uuid.New(), model.SampleResume(), render.DefaultStyle())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInternal))
	assert.Equal(t, 3, pdf.calls)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, domain.ExportFailed, repo.saved[0].Status)
	assert.Len(t, store.objects, 1, "html is kept even when rendering fails")
}

func TestExportRecordIsBestEffort(t *testing.T) {
	pdf := &fakePDF{outputs: [][]byte{[]byte("%PDF")}}
	repo := &fakeExportsRepo{err: errors.New("db down")}
	x := newTestExporter(pdf, nil, repo)

	res, err := x.Export(context.Background(), uuid.New(), model.NewResume(), render.DefaultStyle())
	require.NoError(t, err)
	assert.Equal(t, "Resume.pdf", res.FileName)
}

func TestExportHonoursCancellation(t *testing.T) {
	pdf := &fakePDF{errs: []error{errors.New("a"), errors.New("b"), errors.New("c")}}
	x := NewExporter(render.MustNew(), pdf, nil, nil, nil, ExporterOptions{Backoff: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := x.Export(ctx, uuid.New(), model.SampleResume(), render.DefaultStyle())
	require.Error(t, err)
	assert.Equal(t, 1, pdf.calls)
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "Resume.pdf", ExportFileName(""))
	assert.Equal(t, "Resume.pdf", ExportFileName("   "))
	assert.Equal(t, "Jane_Doe_Resume.pdf", ExportFileName("Jane Doe"))
	assert.Equal(t, "Jane_van_Doe_Resume.pdf", ExportFileName(" Jane \t van  Doe "))
	assert.Equal(t, "AC_DC_Smith_Resume.pdf", ExportFileName("AC/DC Smith"))
	assert.Equal(t, "A_B_Resume.pdf", ExportFileName(`A\B`))
	assert.Equal(t, "Resume.pdf", ExportFileName(" / "))
}
