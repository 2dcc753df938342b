package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/config"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/history"
)

func testRoot(t *testing.T) *CLI {
	t.Helper()
	t.Chdir(t.TempDir())
	return &CLI{
		Config:    "blog.yaml",
		HistoryDB: filepath.Join(".blogbuilder", "history.db"),
	}
}

func TestInitCmd_ScaffoldsProject(t *testing.T) {
	root := testRoot(t)
	require.NoError(t, (&InitCmd{}).Run(&Global{}, root))

	require.FileExists(t, "blog.yaml")
	cfg, err := config.Load("blog.yaml")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(cfg.Content.Directory, "posts", "hello-world.md"))
	require.FileExists(t, cfg.Assets.CSSEntry)
	require.FileExists(t, cfg.Assets.JSEntry)
	require.DirExists(t, cfg.Layouts.Directory)
}

func TestInitCmd_RefusesToOverwriteWithoutForce(t *testing.T) {
	root := testRoot(t)
	require.NoError(t, (&InitCmd{Bare: true}).Run(&Global{}, root))

	err := (&InitCmd{Bare: true}).Run(&Global{}, root)
	require.Error(t, err)
	require.NoError(t, (&InitCmd{Bare: true, Force: true}).Run(&Global{}, root))
}

func TestBuildCmd_BuildsScaffoldedSiteAndRecordsHistory(t *testing.T) {
	root := testRoot(t)
	require.NoError(t, (&InitCmd{}).Run(&Global{}, root))
	require.NoError(t, (&BuildCmd{}).Run(&Global{}, root))

	cfg, err := config.Load("blog.yaml")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(cfg.Output.Directory, "posts", "hello-world", "index.html"))
	require.FileExists(t, filepath.Join(cfg.Output.Directory, "index.html"))

	store, err := history.NewStore(root.HistoryDB)
	require.NoError(t, err)
	defer store.Close()
	entries, err := store.Recent(t.Context(), 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "success", entries[0].Outcome)
}

func TestBuildCmd_NoHistorySkipsRecording(t *testing.T) {
	root := testRoot(t)
	require.NoError(t, (&InitCmd{}).Run(&Global{}, root))
	require.NoError(t, (&BuildCmd{NoHistory: true}).Run(&Global{}, root))

	require.NoFileExists(t, root.HistoryDB)
}

func TestLintCmd_PassesOnScaffoldedSite(t *testing.T) {
	root := testRoot(t)
	require.NoError(t, (&InitCmd{}).Run(&Global{}, root))
	require.NoError(t, (&BuildCmd{}).Run(&Global{}, root))
	require.NoError(t, (&LintCmd{}).Run(&Global{}, root))
}

func TestLintCmd_RequiresExistingOutput(t *testing.T) {
	root := testRoot(t)
	require.NoError(t, (&InitCmd{}).Run(&Global{}, root))

	err := (&LintCmd{}).Run(&Global{}, root)
	require.Error(t, err)
	require.Contains(t, err.Error(), "run 'blogbuilder build' first")
}
