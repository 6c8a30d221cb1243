package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFileName(t *testing.T) {
	assert.Equal(t, "movie.mp4", ExtractFileName("movie.mp4"))
	assert.Equal(t, "movie.mp4", ExtractFileName("/uploads/videos/movie.mp4"))
	assert.Equal(t, "movie.mp4", ExtractFileName("https://cdn.example.com/videos/movie.mp4"))
}

func TestSanitizeFileNameKeepsValidNames(t *testing.T) {
	// 合法文件名清洗后保持原样，且清洗操作幂等
	for _, name := range []string{"movie.mp4", "Some_Movie-2.webm", "a.b.c.mkv"} {
		once := SanitizeFileName(name)
		assert.Equal(t, name, once)
		assert.Equal(t, once, SanitizeFileName(once))
	}
}

func TestSanitizeFileNameNeutralizesInjection(t *testing.T) {
	assert.Equal(t, "passwd", SanitizeFileName("../../etc/passwd"))
	assert.NotContains(t, SanitizeFileName("movie name?.mp4"), " ")
	assert.NotContains(t, SanitizeFileName("a;b|c.mp4"), ";")
}

func TestResolveVideoPathHappyPath(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "movie.mp4"), []byte("data"), 0o644))

	path, err := ResolveVideoPath("https://cdn.example.com/v/movie.mp4", root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "movie.mp4"), path)
}

func TestResolveVideoPathMissingFile(t *testing.T) {
	_, err := ResolveVideoPath("missing.mp4", t.TempDir())
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestResolveVideoPathRejectsDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub.mp4"), 0o755))

	_, err := ResolveVideoPath("sub.mp4", root)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestResolveVideoPathTraversalConfined(t *testing.T) {
	root := t.TempDir()
	// 根目录之外放一个诱饵文件
	outside := filepath.Join(filepath.Dir(root), "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o644))

	for _, ref := range []string{
		"../../etc/passwd",
		"..",
		"..%2Fsecret.txt",
		"a/../../secret.txt",
	} {
		path, err := ResolveVideoPath(ref, root)
		if err == nil {
			// 解析成功也必须被限制在根目录之内
			assert.True(t, strings.HasPrefix(path, root), ref)
		} else {
			assert.True(t, err == ErrVideoNotFound || err == ErrPathOutsideRoot, ref)
		}
	}
}

func TestResolveVideoPathErrorLeaksNoPath(t *testing.T) {
	root := t.TempDir()
	_, err := ResolveVideoPath("..", root)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), root)
}
