package main

import (
	"encoding/json"
	"fmt"

	ruleRepo "email-sorter/internal/rule/repository"
	statsUsecase "email-sorter/internal/stats/usecase"
	templateRepo "email-sorter/internal/template/repository"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print rule and template counts as JSON",
	Long: `Print the same aggregate served by GET /api/stats, computed directly
against the configured database.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	uc := statsUsecase.NewStatsUsecase(ruleRepo.NewGormRuleRepository(a.db), templateRepo.NewGormTemplateRepository(a.db))
	stats, err := uc.GetStats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to compute stats: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}
