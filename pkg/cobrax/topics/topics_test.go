// pkg/cobrax/topics/topics_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: testing/fstest, cobra
// PURPOSE: Test topic discovery, lookup and the replacement help command

package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"help/dry-run.txt":        {Data: []byte("Information about dry-run mode")},
		"help/architecture.md":    {Data: []byte("# Architecture\n\nSystem architecture details")},
		"help/config.txxt":        {Data: []byte("Configuration Guide")},
		"help/ignore.json":        {Data: []byte("This should be ignored")},
		"help/option-verbose.txt": {Data: []byte("More output")},
	}
}

func TestScanTopics(t *testing.T) {
	t.Run("default_extensions", func(t *testing.T) {
		tm := New(testFS(), Options{})
		require.NoError(t, tm.scanTopics())

		assert.Equal(t, []string{"architecture", "dry-run", "option-verbose"}, tm.ListTopics())
		topic, ok := tm.GetTopic("dry-run")
		require.True(t, ok)
		assert.Equal(t, "Information about dry-run mode", topic.Content)
		assert.Equal(t, "help/dry-run.txt", topic.FilePath)
	})

	t.Run("custom_extensions", func(t *testing.T) {
		tm := New(testFS(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.scanTopics())
		assert.Equal(t, []string{"config"}, tm.ListTopics())
	})

	t.Run("nil_fs", func(t *testing.T) {
		tm := New(nil, Options{Extra: map[string]string{"config": "defaults"}})
		require.NoError(t, tm.scanTopics())
		assert.Equal(t, []string{"config"}, tm.ListTopics())
	})
}

func TestGetTopicFlagStyle(t *testing.T) {
	tm := New(testFS(), Options{})
	require.NoError(t, tm.scanTopics())

	for _, name := range []string{"verbose", "--verbose", "-verbose", "option-verbose"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "More output", topic.Content)
	}
	_, ok := tm.GetTopic("nope")
	assert.False(t, ok)
}

func TestRenderers(t *testing.T) {
	plain := &PlainRenderer{}
	assert.Equal(t, "# x", plain.Render("# x", ".md"))

	glamour := &GlamourRenderer{Style: "notty"}
	assert.Equal(t, "plain text", glamour.Render("plain text", ".txt"))
	assert.Contains(t, glamour.Render("# Title\n\nbody", ".md"), "Title")
}

func newRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "app", Short: "test app", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(&cobra.Command{Use: "sub", Short: "a subcommand", Run: func(*cobra.Command, []string) {}})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	_, err := Initialize(root, testFS(), Options{})
	require.NoError(t, err)
	return root, &out
}

func TestHelpCommand(t *testing.T) {
	t.Run("topic", func(t *testing.T) {
		root, out := newRoot(t)
		root.SetArgs([]string{"help", "dry-run"})
		require.NoError(t, root.Execute())
		assert.Equal(t, "Information about dry-run mode", out.String())
	})

	t.Run("topic_list", func(t *testing.T) {
		root, out := newRoot(t)
		root.SetArgs([]string{"help", "topics"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "General topics:\n  architecture\n  dry-run\n")
		assert.Contains(t, out.String(), "Option topics:\n  --verbose\n")
		assert.Contains(t, out.String(), "Use 'app help <topic>'")
	})

	t.Run("command", func(t *testing.T) {
		root, out := newRoot(t)
		root.SetArgs([]string{"help", "sub"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "a subcommand")
	})
}
