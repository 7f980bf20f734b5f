package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tsootsoo/dictees/internal/service"
)

func newAssetsCommand(ctx *commandContext) *cobra.Command {
	assetsCmd := &cobra.Command{
		Use:   "assets",
		Short: "Import dictation audio and pictures into object storage",
	}

	assetsCmd.AddCommand(newAssetsPendingCommand(ctx))
	assetsCmd.AddCommand(newAssetsImportCommand(ctx))

	return assetsCmd
}

func newAssetsPendingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List files waiting in files_to_upload",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := assetService(ctx)
			if err != nil {
				return err
			}
			pending, err := svc.Pending()
			if err != nil {
				return err
			}
			printPending(cmd.OutOrStdout(), pending)
			return nil
		},
	}
}

func newAssetsImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Upload pending files and move them to files_uploaded",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := assetService(ctx)
			if err != nil {
				return err
			}
			report, err := svc.Import(cmd.Context())
			if err != nil {
				return err
			}
			printImportReport(cmd.OutOrStdout(), report)
			if len(report.Failures) > 0 {
				return fmt.Errorf("%d file(s) failed", len(report.Failures))
			}
			return nil
		},
	}
}

func assetService(ctx *commandContext) (service.AssetImportService, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	storage, err := ctx.storage()
	if err != nil {
		return nil, err
	}
	return service.NewAssetImportService(storage, cfg), nil
}

func printPending(out io.Writer, pending map[string][]string) {
	var rows [][]string
	for _, kind := range []string{service.AssetKindAudio, service.AssetKindImages} {
		for _, name := range pending[kind] {
			rows = append(rows, []string{kind, name})
		}
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "Nothing to import")
		return
	}
	fmt.Fprintln(out, renderTable([]string{"Kind", "File"}, rows, nil))
}

func printImportReport(out io.Writer, report *service.AssetImportReport) {
	rows := [][]string{
		{service.AssetKindAudio, strconv.Itoa(report.Count(service.AssetKindAudio))},
		{service.AssetKindImages, strconv.Itoa(report.Count(service.AssetKindImages))},
	}
	fmt.Fprintln(out, renderTable([]string{"Kind", "Uploaded"}, rows, []columnAlignment{alignLeft, alignRight}))
	for _, f := range report.Failures {
		fmt.Fprintf(out, "failed: %s\n", f)
	}
}
