package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseShardFlag(t *testing.T) {
	tt := []struct {
		name          string
		shard         string
		expectedIndex int
		expectedTotal int
	}{
		{name: "empty means no sharding", shard: "", expectedIndex: 0, expectedTotal: 1},
		{name: "first of three", shard: "0/3", expectedIndex: 0, expectedTotal: 3},
		{name: "last of three", shard: "2/3", expectedIndex: 2, expectedTotal: 3},
		{name: "index out of range", shard: "3/3", expectedIndex: 0, expectedTotal: 1},
		{name: "negative index", shard: "-1/3", expectedIndex: 0, expectedTotal: 1},
		{name: "zero total", shard: "0/0", expectedIndex: 0, expectedTotal: 1},
		{name: "garbage", shard: "abc", expectedIndex: 0, expectedTotal: 1},
		{name: "missing total", shard: "1/", expectedIndex: 0, expectedTotal: 1},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			index, total := parseShardFlag(tc.shard)

			assert.Equal(t, tc.expectedIndex, index)
			assert.Equal(t, tc.expectedTotal, total)
		})
	}
}

func TestCheckCmd_Flags(t *testing.T) {
	cmd := newCheckCmd()

	parallel := cmd.Flags().Lookup(checkParallelFlagName)
	assert.NotNil(t, parallel)
	assert.Equal(t, "p", parallel.Shorthand)

	assert.NotNil(t, cmd.Flags().Lookup(strictFlagName))

	shard := cmd.Flags().Lookup("shard")
	assert.NotNil(t, shard)
	assert.Equal(t, "s", shard.Shorthand)
}

func TestCheckCmd_Use(t *testing.T) {
	assert.Equal(t, "check", checkCmd.Name())
	assert.Contains(t, checkCmd.Long, "exposed")
}
