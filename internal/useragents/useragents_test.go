package useragents

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Table(t *testing.T) {
	table := Default()
	assert.Same(t, table, Default())
	assert.Len(t, table.Aliases(), 33)

	ua, ok := table.Lookup(DefaultAlias)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(ua, "Mozilla/5.0"))
	assert.Contains(t, ua, "Firefox/97.0")
}

func TestLookup_CaseInsensitive(t *testing.T) {
	ua, ok := Default().Lookup("  BingBot ")
	require.True(t, ok)
	assert.Contains(t, ua, "bingbot/2.0")

	_, ok = Default().Lookup("netscape")
	assert.False(t, ok)
}

func TestAliases_ReturnsCopy(t *testing.T) {
	aliases := Default().Aliases()
	aliases[0] = "changed"
	assert.Equal(t, "firefox", Default().Aliases()[0])
}

func TestAgents_Order(t *testing.T) {
	agents := Default().Agents()
	require.NotEmpty(t, agents)
	assert.Equal(t, "firefox", agents[0].Alias)
	assert.Equal(t, "outlook", agents[len(agents)-1].Alias)
}

func TestSuggest(t *testing.T) {
	got := Default().Suggest("chrom", 3)
	require.NotEmpty(t, got)
	assert.Equal(t, "chrome", got[0])

	assert.Nil(t, Default().Suggest("", 3))
	assert.LessOrEqual(t, len(Default().Suggest("o", 2)), 2)
}

func TestNew_DuplicateAliasLastWins(t *testing.T) {
	table := New([]Agent{{"a", "one"}, {"b", "two"}, {"a", "three"}})
	v, _ := table.Lookup("a")
	assert.Equal(t, "three", v)
	assert.Equal(t, []string{"a", "b"}, table.Aliases())
}
