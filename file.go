package semdoc

import (
	"bytes"
	"io"
	"os"
)

// WriteUpdated writes data to path unless the file already holds exactly
// data, and reports whether it wrote. The file is created if missing.
//
// A test can use it to regenerate committed documentation and fail when
// the result differs, so CI catches stale files:
//
//	changed, err := semdoc.WriteUpdated("docs/tool.1", page)
//	require.NoError(t, err)
//	assert.False(t, changed, "regenerated docs/tool.1, commit it")
func WriteUpdated(path string, data []byte) (changed bool, err error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return false, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	current, err := io.ReadAll(f)
	if err != nil {
		return false, err
	}
	if bytes.Equal(current, data) {
		return false, nil
	}
	if err := f.Truncate(0); err != nil {
		return false, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return false, err
	}
	if _, err := f.Write(data); err != nil {
		return false, err
	}
	return true, nil
}
