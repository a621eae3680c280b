package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"elmscope.dev/pkg/elmscope/internal/domain"
	m "elmscope.dev/pkg/elmscope/internal/model"
)

var checkParallelFlag int
var checkShardFlag string
var checkStrictFlag bool

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Verify that discovered tests are exposed",
		Long:  checkLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			shardIndex, totalShards := parseShardFlag(checkShardFlag)

			return workflow.Check(cmd.Context(), domain.CheckArgs{
				Paths:           parsePaths(args),
				Exclude:         viper.GetStringSlice(excludeConfigKey),
				Threads:         viper.GetInt(checkParallelConfigKey),
				Strict:          viper.GetBool(strictConfigKey),
				Reports:         m.Path(viper.GetString(outputFlagName)),
				ShardIndex:      shardIndex,
				TotalShardCount: totalShards,
			})
		},
	}

	configureCheckFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func configureCheckFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&checkParallelFlag, checkParallelFlagName, "p", viper.GetInt(checkParallelConfigKey), "number of parallel workers for module scanning")
	bindFlagToConfig(cmd.Flags().Lookup(checkParallelFlagName), checkParallelConfigKey)

	cmd.Flags().BoolVar(&checkStrictFlag, strictFlagName, viper.GetBool(strictConfigKey), "treat unexposed tests as errors instead of warnings")
	bindFlagToConfig(cmd.Flags().Lookup(strictFlagName), strictConfigKey)

	cmd.Flags().StringVarP(&checkShardFlag, "shard", "s", "", "shard index and total shard count in the format INDEX/TOTAL (e.g., 0/3)")
}

func parseShardFlag(shard string) (int, int) {
	if shard == "" {
		return 0, 1
	}

	var index, total int

	_, err := fmt.Sscanf(shard, "%d/%d", &index, &total)
	if err != nil || total <= 0 || index < 0 || index >= total {
		return 0, 1
	}

	return index, total
}
