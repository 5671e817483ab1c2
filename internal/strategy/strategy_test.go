package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constant(v string, ok bool) Func[string] {
	return func(string) (string, bool) { return v, ok }
}

func TestChainFirstWinsInOrder(t *testing.T) {
	t.Parallel()

	chain := NewChain(
		Strategy[string]{Name: "miss", Find: constant("", false)},
		Strategy[string]{Name: "hit", Find: constant("a", true)},
		Strategy[string]{Name: "later", Find: constant("b", true)},
	)

	v, name, ok := chain.First("input")
	require.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Equal(t, "hit", name)
}

func TestChainNoHit(t *testing.T) {
	t.Parallel()

	chain := NewChain(Strategy[string]{Name: "miss", Find: constant("", false)})
	_, _, ok := chain.First("input")
	assert.False(t, ok)
}

func TestChainRegisterReplacesInPlace(t *testing.T) {
	t.Parallel()

	chain := NewChain(
		Strategy[string]{Name: "one", Find: constant("", false)},
		Strategy[string]{Name: "two", Find: constant("two", true)},
	)
	chain.Register(Strategy[string]{Name: "one", Find: constant("one", true)})

	assert.Equal(t, []string{"one", "two"}, chain.Names())
	v, _, _ := chain.First("")
	assert.Equal(t, "one", v)
}
