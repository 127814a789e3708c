// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pagexml-convert/pkg/types"
)

func testCfg() types.ConvertConfig {
	return types.DefaultConfig().Convert
}

func TestOutputName(t *testing.T) {
	cfg := testCfg()
	assert.Equal(t, "doc_transkribus.xml", OutputName("doc.xml", cfg))
	assert.Equal(t, "page_transkribus.xml", OutputName(filepath.Join("a", "b", "page.xml"), cfg))
	assert.Equal(t, "noext_transkribus", OutputName("noext", cfg))
}

func TestResolveSingleFile(t *testing.T) {
	tests := []struct {
		name string
		// hint builds the output hint from the temp dir; "" means no hint.
		hint       func(t *testing.T, tmp string) string
		wantOutput func(tmp string) string
		wantDirAt  func(tmp string) string // directory expected to exist afterwards
	}{
		{
			name: "no hint writes next to the input",
			hint: func(t *testing.T, tmp string) string { return "" },
			wantOutput: func(tmp string) string {
				return filepath.Join(tmp, "doc_transkribus.xml")
			},
		},
		{
			name: "auto sentinel behaves like no hint",
			hint: func(t *testing.T, tmp string) string { return AutoSentinel },
			wantOutput: func(tmp string) string {
				return filepath.Join(tmp, "doc_transkribus.xml")
			},
		},
		{
			name: "existing directory hint",
			hint: func(t *testing.T, tmp string) string {
				dir := filepath.Join(tmp, "out")
				require.NoError(t, os.Mkdir(dir, 0o755))
				return dir
			},
			wantOutput: func(tmp string) string {
				return filepath.Join(tmp, "out", "doc_transkribus.xml")
			},
		},
		{
			name: "non-existent extensionless hint becomes a directory",
			hint: func(t *testing.T, tmp string) string {
				return filepath.Join(tmp, "converted")
			},
			wantOutput: func(tmp string) string {
				return filepath.Join(tmp, "converted", "doc_transkribus.xml")
			},
			wantDirAt: func(tmp string) string {
				return filepath.Join(tmp, "converted")
			},
		},
		{
			name: "hint with extension is a literal output file",
			hint: func(t *testing.T, tmp string) string {
				return filepath.Join(tmp, "result.xml")
			},
			wantOutput: func(tmp string) string {
				return filepath.Join(tmp, "result.xml")
			},
		},
		{
			name: "existing file hint is a literal output file",
			hint: func(t *testing.T, tmp string) string {
				path := filepath.Join(tmp, "existing.out")
				require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
				return path
			},
			wantOutput: func(tmp string) string {
				return filepath.Join(tmp, "existing.out")
			},
		},
		{
			name: "trailing separator forces directory even with extension",
			hint: func(t *testing.T, tmp string) string {
				return filepath.Join(tmp, "out.d") + string(os.PathSeparator)
			},
			wantOutput: func(tmp string) string {
				return filepath.Join(tmp, "out.d", "doc_transkribus.xml")
			},
			wantDirAt: func(tmp string) string {
				return filepath.Join(tmp, "out.d")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := t.TempDir()
			input := filepath.Join(tmp, "doc.xml")
			require.NoError(t, os.WriteFile(input, []byte("<PcGts/>"), 0o644))

			req := types.ConversionRequest{
				Source:     input,
				OutputHint: tt.hint(t, tmp),
				Mode:       types.ModeFile,
			}
			plan, err := Resolve(req, testCfg())
			require.NoError(t, err)

			require.Len(t, plan.Entries, 1)
			assert.Equal(t, input, plan.Entries[0].Input)
			assert.Equal(t, tt.wantOutput(tmp), plan.Entries[0].Output)

			if tt.wantDirAt != nil {
				info, err := os.Stat(tt.wantDirAt(tmp))
				require.NoError(t, err)
				assert.True(t, info.IsDir())
			}
		})
	}
}

func TestResolveLiteralFileDoesNotCreateParent(t *testing.T) {
	tmp := t.TempDir()
	input := filepath.Join(tmp, "doc.xml")
	require.NoError(t, os.WriteFile(input, []byte("<PcGts/>"), 0o644))

	hint := filepath.Join(tmp, "missing-parent", "result.xml")
	req := types.ConversionRequest{Source: input, OutputHint: hint, Mode: types.ModeFile}

	plan, err := Resolve(req, testCfg())
	require.NoError(t, err)
	require.Len(t, plan.Entries, 1)
	assert.Equal(t, hint, plan.Entries[0].Output)

	// The parent is the caller's responsibility; the write fails later.
	_, err = os.Stat(filepath.Join(tmp, "missing-parent"))
	assert.True(t, os.IsNotExist(err))
}

func TestResolveDirectory(t *testing.T) {
	cfg := testCfg()

	setupInput := func(t *testing.T) string {
		dir := t.TempDir()
		for _, name := range []string{"page1.xml", "page2.xml", "notes.txt"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
		}
		require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "deep.xml"), []byte("x"), 0o644))
		return dir
	}

	t.Run("default output folder inside the input directory", func(t *testing.T) {
		dir := setupInput(t)
		req := types.ConversionRequest{Source: dir, Mode: types.ModeDirectory}

		plan, err := Resolve(req, cfg)
		require.NoError(t, err)

		wantDir := filepath.Join(dir, cfg.BatchDirName)
		assert.Equal(t, wantDir, plan.OutputDir)
		info, err := os.Stat(wantDir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		// Two XML files directly in the directory; notes.txt and the
		// nested file are not part of the plan.
		require.Len(t, plan.Entries, 2)
		assert.Equal(t, filepath.Join(dir, "page1.xml"), plan.Entries[0].Input)
		assert.Equal(t, filepath.Join(wantDir, "page1_transkribus.xml"), plan.Entries[0].Output)
		assert.Equal(t, filepath.Join(wantDir, "page2_transkribus.xml"), plan.Entries[1].Output)
	})

	t.Run("explicit hint is created with parents", func(t *testing.T) {
		dir := setupInput(t)
		out := filepath.Join(t.TempDir(), "a", "b", "out")
		req := types.ConversionRequest{Source: dir, OutputHint: out, Mode: types.ModeDirectory}

		plan, err := Resolve(req, cfg)
		require.NoError(t, err)
		assert.Equal(t, out, plan.OutputDir)

		info, err := os.Stat(out)
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		require.Len(t, plan.Entries, 2)
		assert.Equal(t, filepath.Join(out, "page1_transkribus.xml"), plan.Entries[0].Output)
	})

	t.Run("distinct output paths", func(t *testing.T) {
		dir := setupInput(t)
		req := types.ConversionRequest{Source: dir, Mode: types.ModeDirectory}

		plan, err := Resolve(req, cfg)
		require.NoError(t, err)

		seen := map[string]bool{}
		for _, e := range plan.Entries {
			assert.False(t, seen[e.Output], "duplicate output %s", e.Output)
			seen[e.Output] = true
		}
	})

	t.Run("empty directory yields an empty plan", func(t *testing.T) {
		dir := t.TempDir()
		req := types.ConversionRequest{Source: dir, Mode: types.ModeDirectory}

		plan, err := Resolve(req, cfg)
		require.NoError(t, err)
		assert.Empty(t, plan.Entries)
	})

	t.Run("missing input directory is an error", func(t *testing.T) {
		req := types.ConversionRequest{
			Source: filepath.Join(t.TempDir(), "nope"),
			Mode:   types.ModeDirectory,
		}
		_, err := Resolve(req, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading input directory")
	})
}

// Resolution is a function of the request and filesystem existence: the same
// request against the same tree yields the same plan.
func TestResolveDeterministic(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.xml", "a.xml"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	req := types.ConversionRequest{Source: dir, Mode: types.ModeDirectory}

	first, err := Resolve(req, testCfg())
	require.NoError(t, err)
	second, err := Resolve(req, testCfg())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
