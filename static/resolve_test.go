package static

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	cfg := Config{Root: dir}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultIndex, cfg.Index)
	assert.True(t, filepath.IsAbs(cfg.Root))

	cfg = Config{}
	require.NoError(t, cfg.Validate())
	wd, err := os.Getwd()
	require.NoError(t, err)
	wd, err = filepath.EvalSymlinks(wd)
	require.NoError(t, err)
	assert.Equal(t, wd, cfg.Root)

	for _, root := range []string{filepath.Join(dir, "missing"), file} {
		cfg = Config{Root: root}
		assert.Error(t, cfg.Validate(), root)
	}
}

func TestResolve(t *testing.T) {
	parent := t.TempDir()
	cfg := Config{Root: filepath.Join(parent, "public")}
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.Root, "js"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Root, "frontend.html"), []byte("hi"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Root, "js", "app.js"), []byte("js"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret"), []byte("secret"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Root, ".env"), []byte("secret"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Root, "js", ".hidden.js"), []byte("secret"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.Root, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Root, ".git", "config"), []byte("secret"), 0o644))
	require.NoError(t, os.Symlink(filepath.Join(parent, "secret"), filepath.Join(cfg.Root, "out")))
	require.NoError(t, os.Symlink("js", filepath.Join(cfg.Root, "scripts")))
	require.NoError(t, cfg.Validate())
	root := cfg.Root

	tests := []struct {
		name string
		want string
	}{
		{name: "/frontend.html", want: filepath.Join(root, "frontend.html")},
		{name: "frontend.html", want: filepath.Join(root, "frontend.html")},
		{name: "/js/app.js", want: filepath.Join(root, "js", "app.js")},
		{name: "/js/../frontend.html", want: filepath.Join(root, "frontend.html")},
		{name: "//js//app.js", want: filepath.Join(root, "js", "app.js")},
		{name: "/scripts/app.js", want: filepath.Join(root, "js", "app.js")},
		{name: "/../secret"},
		{name: "/js/../../secret"},
		{name: "../../../../etc/passwd"},
		{name: "/out"},
		{name: "/"},
		{name: ""},
		{name: "/js"},
		{name: "/js/"},
		{name: "/missing.js"},
		{name: "/frontend.html/"},
		{name: "/js/app.js/"},
		{name: "/frontend.html/."},
		{name: "/js/app.js/.."},
		{name: "/.env"},
		{name: "/js/.hidden.js"},
		{name: "/.git/config"},
		{name: "/frontend.html\x00.png"},
		{name: "/..\\secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(root, tt.name)
			if tt.want == "" {
				assert.ErrorIs(t, err, ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	cfg := Config{Root: t.TempDir()}
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Root, "style.css"), []byte("body{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Root, "LICENSE"), []byte("plain words"), 0o644))
	require.NoError(t, cfg.Validate())

	b, ctype, err := load(cfg.Root, "/style.css")
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(b))
	assert.Contains(t, ctype, "text/css")

	// No extension, so the type is sniffed.
	_, ctype, err = load(cfg.Root, "/LICENSE")
	require.NoError(t, err)
	assert.Contains(t, ctype, "text/plain")

	_, _, err = load(cfg.Root, "/nope.css")
	assert.ErrorIs(t, err, ErrNotFound)
}
