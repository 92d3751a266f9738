package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/repository"
	"github.com/vfg2006/budget-anomaly-monitor/internal/app"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/account"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/utils"
)

var syncCmd = &cobra.Command{
	Use:   "sync-accounts",
	Short: "Sincroniza as contas monitoradas com as plataformas",
	RunE:  runSyncAccounts,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().String("platform", "", "sincroniza apenas a plataforma informada (meta, google_ads)")
}

func runSyncAccounts(cmd *cobra.Command, _ []string) error {
	platformFlag, _ := cmd.Flags().GetString("platform")
	platform, err := parsePlatform(platformFlag)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	conn, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	platforms := app.NewPlatforms(ctx, cfg, repository.NewStateRepository(conn))
	service := account.NewService(repository.NewAccountRepository(conn), platforms.Sources...)

	var results []*domain.SyncAccountsResponse
	if platform != nil {
		var result *domain.SyncAccountsResponse
		result, err = service.SyncPlatform(ctx, *platform)
		if result != nil {
			results = append(results, result)
		}
	} else {
		results, err = service.SyncAccounts(ctx)
	}

	if len(results) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), utils.PrettyJson(results))
	}

	return err
}

func parsePlatform(value string) (*domain.Platform, error) {
	if value == "" {
		return nil, nil
	}

	platform := domain.Platform(strings.ToLower(value))
	if !platform.IsValid() {
		return nil, fmt.Errorf("plataforma inválida %q: valores aceitos meta, google_ads", value)
	}

	return &platform, nil
}
