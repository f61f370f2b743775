package token

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterSameNameSameToken(t *testing.T) {
	a := Register("TEST_QUALIFY")
	b := Register("TEST_QUALIFY")
	assert.Equal(t, a, b)

	c := Register("TEST_ILIKE")
	assert.NotEqual(t, a, c)
}

func TestRegisterConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	ids := make([]TokenType, 64)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = Register("TEST_RACED_KEYWORD")
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		require.Equal(t, ids[0], id)
	}
}

func TestLookupDynamicKeyword(t *testing.T) {
	want := Register("TEST_RLIKE")

	got, ok := LookupDynamicKeyword("TEST_RLIKE")
	require.True(t, ok)
	assert.Equal(t, want, got)

	notFound, ok := LookupDynamicKeyword("TEST_NEVER_REGISTERED")
	assert.False(t, ok)
	assert.Equal(t, IDENT, notFound)
}

func TestIsDynamic(t *testing.T) {
	assert.False(t, IsDynamic(SELECT))
	assert.False(t, IsDynamic(EOF))
	assert.True(t, IsDynamic(Register("TEST_DYNAMIC")))
}

func TestRegisteredTokensReturnsCopy(t *testing.T) {
	id := Register("TEST_SNAPSHOT")

	snapshot := RegisteredTokens()
	assert.Equal(t, "TEST_SNAPSHOT", snapshot[id])

	snapshot[id] = "CLOBBERED"
	assert.Equal(t, "TEST_SNAPSHOT", RegisteredTokens()[id])
}

func TestGetDynamicName(t *testing.T) {
	id := Register("TEST_NAMED")

	name, ok := getDynamicName(id)
	require.True(t, ok)
	assert.Equal(t, "TEST_NAMED", name)

	_, ok = getDynamicName(TokenType(1 << 20))
	assert.False(t, ok)
}
