package warehouse

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"cloud.google.com/go/bigquery"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-anomaly-monitor/internal/config"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// insertBatchSize respeita o limite de linhas por chamada de streaming insert
const insertBatchSize = 500

// Exporter replica snapshots, anomalias e confirmações no BigQuery para
// análise histórica. O Postgres continua sendo a fonte de verdade.
type Exporter struct {
	client         *bigquery.Client
	projectID      string
	dataset        string
	snapshotsTable string
	anomaliesTable string
}

func NewExporter(ctx context.Context, cfg config.BigQuery) (*Exporter, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := bigquery.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create BigQuery client: %w", err)
	}

	return &Exporter{
		client:         client,
		projectID:      cfg.ProjectID,
		dataset:        cfg.Dataset,
		snapshotsTable: cfg.SnapshotsTable,
		anomaliesTable: cfg.AnomaliesTable,
	}, nil
}

func (e *Exporter) Close() error {
	return e.client.Close()
}

// EnsureTables cria o dataset e as tabelas quando não existem
func (e *Exporter) EnsureTables(ctx context.Context) error {
	dataset := e.client.Dataset(e.dataset)
	if err := dataset.Create(ctx, &bigquery.DatasetMetadata{}); err != nil && !isAlreadyExists(err) {
		return fmt.Errorf("erro ao criar dataset %s: %w", e.dataset, err)
	}

	tables := []struct {
		name      string
		row       any
		partition string
	}{
		{e.snapshotsTable, snapshotRow{}, "observed_at"},
		{e.anomaliesTable, anomalyRow{}, "detected_time"},
	}

	for _, table := range tables {
		schema, err := bigquery.InferSchema(table.row)
		if err != nil {
			return fmt.Errorf("erro ao montar schema de %s: %w", table.name, err)
		}

		metadata := &bigquery.TableMetadata{
			Schema:           schema,
			TimePartitioning: &bigquery.TimePartitioning{Type: bigquery.DayPartitioningType, Field: table.partition},
		}

		if err := dataset.Table(table.name).Create(ctx, metadata); err != nil && !isAlreadyExists(err) {
			return fmt.Errorf("erro ao criar tabela %s: %w", table.name, err)
		}

		logrus.WithField("table", table.name).Info("Tabela do BigQuery verificada")
	}

	return nil
}

func (e *Exporter) ExportSnapshots(ctx context.Context, snapshots []*domain.CampaignSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	schema, err := bigquery.InferSchema(snapshotRow{})
	if err != nil {
		return err
	}

	savers := make([]*bigquery.StructSaver, 0, len(snapshots))
	for _, snapshot := range snapshots {
		savers = append(savers, &bigquery.StructSaver{
			Schema:   schema,
			InsertID: snapshot.SnapshotID,
			Struct:   toSnapshotRow(snapshot),
		})
	}

	return e.put(ctx, e.snapshotsTable, savers)
}

func (e *Exporter) ExportAnomalies(ctx context.Context, anomalies []*domain.Anomaly) error {
	if len(anomalies) == 0 {
		return nil
	}

	schema, err := bigquery.InferSchema(anomalyRow{})
	if err != nil {
		return err
	}

	savers := make([]*bigquery.StructSaver, 0, len(anomalies))
	for _, anomaly := range anomalies {
		savers = append(savers, &bigquery.StructSaver{
			Schema:   schema,
			InsertID: anomaly.AnomalyID,
			Struct:   toAnomalyRow(anomaly),
		})
	}

	return e.put(ctx, e.anomaliesTable, savers)
}

func (e *Exporter) put(ctx context.Context, table string, savers []*bigquery.StructSaver) error {
	inserter := e.client.Dataset(e.dataset).Table(table).Inserter()

	for start := 0; start < len(savers); start += insertBatchSize {
		end := min(start+insertBatchSize, len(savers))

		if err := inserter.Put(ctx, savers[start:end]); err != nil {
			var multiErr bigquery.PutMultiError
			if errors.As(err, &multiErr) {
				logrus.WithFields(logrus.Fields{
					"table":       table,
					"failed_rows": len(multiErr),
				}).Error("Linhas rejeitadas pelo BigQuery")
			}
			return fmt.Errorf("erro ao inserir em %s: %w", table, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"table": table,
		"rows":  len(savers),
	}).Debug("Linhas exportadas para o BigQuery")

	return nil
}

// MirrorAcknowledgment replica a confirmação com um UPDATE parametrizado.
// Linhas ainda no buffer de streaming não aceitam DML e fazem a chamada falhar.
func (e *Exporter) MirrorAcknowledgment(ctx context.Context, ack domain.Acknowledgment) error {
	query := e.client.Query(fmt.Sprintf(acknowledgeStatement, e.tableRef(e.anomaliesTable)))
	query.Parameters = acknowledgeParameters(ack)

	job, err := query.Run(ctx)
	if err != nil {
		return fmt.Errorf("erro ao executar update no BigQuery: %w", err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("erro aguardando update no BigQuery: %w", err)
	}

	if err := status.Err(); err != nil {
		return fmt.Errorf("update no BigQuery falhou: %w", err)
	}

	return nil
}

const acknowledgeStatement = `UPDATE %s
SET acknowledged = TRUE,
    acknowledged_by = @acknowledged_by,
    acknowledged_at = @acknowledged_at,
    acknowledgment_note = @note,
    false_positive = @false_positive
WHERE anomaly_id IN UNNEST(@anomaly_ids)`

func acknowledgeParameters(ack domain.Acknowledgment) []bigquery.QueryParameter {
	return []bigquery.QueryParameter{
		{Name: "acknowledged_by", Value: ack.By},
		{Name: "acknowledged_at", Value: ack.At},
		{Name: "note", Value: ack.Note},
		{Name: "false_positive", Value: ack.FalsePositive},
		{Name: "anomaly_ids", Value: ack.AnomalyIDs},
	}
}

func (e *Exporter) tableRef(table string) string {
	return fmt.Sprintf("`%s.%s.%s`", e.projectID, e.dataset, table)
}

func isAlreadyExists(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusConflict
}
