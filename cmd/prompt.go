package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/sensei/internal/coach"
	"github.com/abhisek/sensei/internal/pose"
	"github.com/abhisek/sensei/internal/prompt"
	"github.com/abhisek/sensei/internal/recording"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the prompt composed from the last usable frame of a recording",
	RunE: func(cmd *cobra.Command, args []string) error {
		techID, _ := cmd.Flags().GetString("technique")
		recPath, _ := cmd.Flags().GetString("recording")
		frames, _ := cmd.Flags().GetInt("frames")

		rec, err := recording.Load(recPath)
		if err != nil {
			return err
		}
		frame, ok := rec.Last(cfg.Analysis.MinPoseConfidence)
		if !ok {
			return coach.ErrNoPose
		}
		metrics, err := pose.Extract(frame.Landmarks)
		if err != nil {
			return err
		}

		if frames < 0 {
			frames = expectedImages()
		}
		p, err := prompt.Build(prompt.Input{
			TechniqueID: techID,
			Metrics:     metrics,
			FrameCount:  frames,
			Locale:      cfg.Analysis.Lang(),
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, p.Text)
		if cfg.Analysis.Debug {
			fmt.Fprintf(out, "\nverdict: %s\n", p.Verdict)
		}
		return nil
	},
}

// expectedImages is the number of images a live capture with the current
// settings would attach.
func expectedImages() int {
	c := cfg.Analysis.Capture()
	switch {
	case !c.IncludeImage:
		return 0
	case c.CaptureSequence:
		return c.TotalFrames()
	default:
		return 1
	}
}

func init() {
	promptCmd.Flags().StringP("technique", "t", "", "Technique ID")
	promptCmd.Flags().StringP("recording", "r", "", "Landmark recording (JSON Lines)")
	promptCmd.Flags().Int("frames", -1, "Number of attached images to describe (default: derived from capture settings)")
	_ = promptCmd.MarkFlagRequired("technique")
	_ = promptCmd.MarkFlagRequired("recording")
}
