package snowflake_test

import (
	"testing"

	"scireda/backend/internal/snowflake"

	"github.com/stretchr/testify/require"
)

func TestNextID_UniqueAndIncreasing(t *testing.T) {
	require.NoError(t, snowflake.Init(3))

	prev := snowflake.NextID()
	for i := 0; i < 1000; i++ {
		id := snowflake.NextID()
		require.Greater(t, id, prev)
		prev = id
	}
}

func TestInit_RejectsOutOfRangeNode(t *testing.T) {
	require.Error(t, snowflake.Init(5000))
}
