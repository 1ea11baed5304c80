package payslip

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingCloseFile writes through to a real file but reports a close error.
type failingCloseFile struct {
	*os.File
}

func (f failingCloseFile) Close() error {
	_ = f.File.Close()
	return errors.New("input/output error")
}

func TestLocalStorage_SaveReportsCloseError(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	store.create = func(name string) (io.WriteCloser, error) {
		f, err := os.Create(name)
		if err != nil {
			return nil, err
		}
		return failingCloseFile{File: f}, nil
	}

	_, err = store.Save(context.Background(), "org/PAY-000001.pdf", []byte("%PDF-1.3"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "close file")
	_, statErr := os.Stat(filepath.Join(store.basePath, "org", "PAY-000001.pdf"))
	assert.True(t, os.IsNotExist(statErr), "partial payslip is removed")
}
