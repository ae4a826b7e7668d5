package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/IT-Nick/garden-bot/internal/app"
	"github.com/IT-Nick/garden-bot/internal/domain/stats"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var (
		days     int
		interval string
		allTime  bool
		output   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Сохранить выгрузку статистики в Excel-файл без участия бота",
		Long: `Строит ту же выгрузку, что и команда администратора в чате, и сохраняет её на диск.

Примеры:
  gardenbot export --days 30
  gardenbot export --interval 01.01.2024-31.12.2024 --output reports
  gardenbot export --all`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			application, err := app.NewApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			svc := application.Stats()
			var p stats.Period
			switch {
			case allTime:
				p = stats.AllTimePeriod()
			case interval != "":
				if p, err = stats.ParseInterval(interval, svc.Location()); err != nil {
					return fmt.Errorf("invalid --interval: %w", err)
				}
			default:
				if days <= 0 {
					return fmt.Errorf("invalid --days: %w", stats.ErrInvalidFormat)
				}
				p = stats.LastDays(svc.Now(), days)
			}

			report, err := application.Export(ctx, p)
			if err != nil {
				return err
			}
			if report == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "За указанный период нет активности")
				return nil
			}

			path := filepath.Join(output, report.FileName)
			if err := os.WriteFile(path, report.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 0, "выгрузка за последние N дней")
	cmd.Flags().StringVarP(&interval, "interval", "i", "", "интервал в формате ДД.ММ.ГГГГ-ДД.ММ.ГГГГ")
	cmd.Flags().BoolVarP(&allTime, "all", "a", false, "выгрузка за всё время")
	cmd.Flags().StringVarP(&output, "output", "o", ".", "каталог для сохранения файла")
	cmd.MarkFlagsMutuallyExclusive("days", "interval", "all")
	cmd.MarkFlagsOneRequired("days", "interval", "all")

	return cmd
}
