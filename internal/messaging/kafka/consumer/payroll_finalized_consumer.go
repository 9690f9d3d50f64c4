package consumer

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/events"
)

// ConsumePayrollFinalized renders a bank transfer file for every
// finalized month and drops it in outputDir for the finance team.
// Rendering is idempotent per month, so redelivery just rewrites the
// same file.
func ConsumePayrollFinalized(
	ctx context.Context,
	reader *kafkago.Reader,
	outputDir string,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_finalized")
	log.Info("payroll finalized consumer started", zap.String("output_dir", outputDir))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll finalized consumer stopped")
				return
			}
			log.Error("fetch payroll finalized message failed", zap.Error(err))
			continue
		}

		var event events.PayrollFinalizedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll_finalized event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		path, err := writeBankFile(outputDir, event)
		if err != nil {
			log.Error("write bank file failed",
				zap.String("month", event.Month),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll finalized message failed", zap.Error(err))
			continue
		}

		log.Info("bank file written",
			zap.String("month", event.Month),
			zap.String("path", path),
			zap.Int("transfers", len(event.Lines)),
		)
	}
}

func writeBankFile(outputDir string, event events.PayrollFinalizedEvent) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"employee_code", "full_name", "bank_name", "iban", "amount", "currency"}); err != nil {
		return "", err
	}
	for _, line := range event.Lines {
		if line.IBAN == "" {
			continue
		}
		record := []string{
			line.EmployeeCode, line.FullName, line.BankName, line.IBAN,
			fmt.Sprintf("%.2f", line.NetPay), line.Currency,
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(outputDir, fmt.Sprintf("bank-transfer-%s.csv", event.Month))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
