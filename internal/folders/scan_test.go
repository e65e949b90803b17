package folders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))
	}
}

func TestScanFolder_All(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"b.txt",
		"a.txt",
		"inbox/parcel-2.pdf",
		"inbox/parcel-1.pdf",
		"inbox/nested/label.png",
		"zeta.log",
	)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	files, err := ScanFolder(root, ScanAll)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"a.txt", "b.txt", "zeta.log",
		"parcel-1.pdf", "parcel-2.pdf",
		"label.png",
	}, files)
}

func TestScanFolder_FirstPerDir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"b.txt",
		"a.txt",
		"inbox/parcel-2.pdf",
		"inbox/parcel-1.pdf",
		"outbox/sent.eml",
	)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty", "deeper"), 0o755))

	files, err := ScanFolder(root, ScanFirstPerDir)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "parcel-1.pdf", "sent.eml"}, files,
		"directories without files contribute nothing")
}

func TestScanFolder_RootSpelling(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "inbox")
	writeTree(t, root, "a.txt", "b.txt", "sub/c.txt")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(parent))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	sep := string(filepath.Separator)
	roots := map[string]string{
		"plain":           root,
		"trailing slash":  root + sep,
		"dot relative":    "." + sep + "inbox",
		"dot suffix":      "inbox" + sep + ".",
		"relative parent": "inbox" + sep + "sub" + sep + "..",
	}

	for name, dir := range roots {
		t.Run(name, func(t *testing.T) {
			all, err := ScanFolder(dir, ScanAll)
			require.NoError(t, err)
			assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, all)

			first, err := ScanFolder(dir, ScanFirstPerDir)
			require.NoError(t, err)
			assert.Equal(t, []string{"a.txt", "c.txt"}, first)
		})
	}
}

func TestScanFolder_EmptyRoot(t *testing.T) {
	files, err := ScanFolder(t.TempDir(), ScanAll)
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.NotNil(t, files)
}

func TestScanFolder_Errors(t *testing.T) {
	root := t.TempDir()

	_, err := ScanFolder(filepath.Join(root, "missing"), ScanAll)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	writeTree(t, root, "file.txt")
	_, err = ScanFolder(filepath.Join(root, "file.txt"), ScanAll)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestScanMode_String(t *testing.T) {
	assert.Equal(t, "all", ScanAll.String())
	assert.Equal(t, "first-per-dir", ScanFirstPerDir.String())
	assert.Equal(t, "ScanMode(7)", ScanMode(7).String())
}
