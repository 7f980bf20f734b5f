package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tsootsoo/dictees/internal/repository"
	"github.com/tsootsoo/dictees/internal/service"
)

func newAudioCommand(ctx *commandContext) *cobra.Command {
	audioCmd := &cobra.Command{
		Use:   "audio",
		Short: "Manage dictation recordings",
	}
	audioCmd.AddCommand(newAudioSynthesizeCommand(ctx))
	return audioCmd
}

func newAudioSynthesizeCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "synthesize",
		Short: "Generate French MP3 audio for dictations that have none",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			db, err := ctx.database()
			if err != nil {
				return err
			}
			storage, err := ctx.storage()
			if err != nil {
				return err
			}
			if !dryRun && !storage.Enabled() {
				return service.ErrStorageUnavailable
			}

			var synth service.SpeechSynthesizer
			if !dryRun {
				s, client, err := service.NewGoogleSpeechSynthesizer(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				defer client.Close()
				synth = s
			}

			svc := service.NewAudioSynthesisService(repository.NewDictationRepository(db), storage, synth, cfg)
			results, err := svc.SynthesizeMissing(cmd.Context(), dryRun)
			printSynthesis(cmd.OutOrStdout(), results, dryRun)
			if err != nil {
				return err
			}
			for _, r := range results {
				if r.Err != nil {
					return fmt.Errorf("some dictations could not be synthesized")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the dictations without generating audio")
	return cmd
}

func printSynthesis(out io.Writer, results []service.SynthesisResult, dryRun bool) {
	if len(results) == 0 {
		fmt.Fprintln(out, "Every dictation already has audio")
		return
	}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := "ok"
		switch {
		case dryRun:
			status = "pending"
		case r.Err != nil:
			status = r.Err.Error()
		}
		size := ""
		if r.Bytes > 0 {
			size = strconv.Itoa(r.Bytes)
		}
		rows = append(rows, []string{r.DictationID.String(), r.AudioFile, size, status})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Dictation", "File", "Bytes", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	))
}
