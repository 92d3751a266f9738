package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/repository"
	"github.com/vfg2006/budget-anomaly-monitor/internal/app"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/acknowledging"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/utils"
)

var ackCmd = &cobra.Command{
	Use:   "ack <anomaly_id>...",
	Short: "Confirma anomalias ou marca como falso positivo",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAck,
}

func init() {
	rootCmd.AddCommand(ackCmd)

	ackCmd.Flags().Bool("false-positive", false, "marca as anomalias como falso positivo")
	ackCmd.Flags().String("by", "", "quem está confirmando")
	ackCmd.Flags().String("note", "", "observação registrada junto com a confirmação")
	_ = ackCmd.MarkFlagRequired("by")
}

func runAck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	falsePositive, _ := cmd.Flags().GetBool("false-positive")
	by, _ := cmd.Flags().GetString("by")
	note, _ := cmd.Flags().GetString("note")

	ctx := cmd.Context()

	conn, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	exporter, err := app.NewWarehouse(ctx, cfg)
	if err != nil {
		return err
	}

	var mirror acknowledging.Mirror
	if exporter != nil {
		defer exporter.Close()
		mirror = exporter
	}

	service := acknowledging.NewService(repository.NewAnomalyRepository(conn), mirror)

	result, err := service.Acknowledge(ctx, domain.Acknowledgment{
		AnomalyIDs:    args,
		By:            by,
		Note:          note,
		FalsePositive: falsePositive,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), utils.PrettyJson(result))
	return nil
}
