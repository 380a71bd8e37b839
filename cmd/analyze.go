package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/sensei/internal/capture"
	"github.com/abhisek/sensei/internal/coach"
	"github.com/abhisek/sensei/internal/recording"
	"github.com/abhisek/sensei/internal/technique"
	"github.com/abhisek/sensei/internal/tui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Capture a technique from a landmark recording and generate coaching feedback",
	Example: `  sensei analyze --technique ikkyo --recording session.jsonl
  sensei analyze -t shiho-nage -r session.jsonl --audio-out feedback.mp3 --tui`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("technique", "t", "", "Technique ID (see `sensei techniques`)")
	analyzeCmd.Flags().StringP("recording", "r", "", "Landmark recording (JSON Lines) replayed as the pose detector")
	analyzeCmd.Flags().StringP("audio-out", "o", "", "Also write the spoken feedback to this file")
	analyzeCmd.Flags().Bool("tui", false, "Show the interactive status display")
	_ = analyzeCmd.MarkFlagRequired("technique")
	_ = analyzeCmd.MarkFlagRequired("recording")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	techID, _ := cmd.Flags().GetString("technique")
	recPath, _ := cmd.Flags().GetString("recording")
	audioOut, _ := cmd.Flags().GetString("audio-out")
	useTUI, _ := cmd.Flags().GetBool("tui")

	loc := cfg.Analysis.Lang()
	tech, err := technique.Lookup(techID, loc)
	if err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(technique.IDs(), ", "))
	}
	rec, err := recording.Load(recPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	analyzer, err := newAnalyzer(ctx, s)
	if err != nil {
		return err
	}

	// The replayer stands in for the live detector for the whole run.
	cell := &capture.Cell{}
	replayCtx, stopReplay := context.WithCancel(ctx)
	defer stopReplay()
	replayer := recording.NewReplayer(rec,
		recording.WithMinConfidence(cfg.Analysis.MinPoseConfidence),
		recording.WithLoop(true),
		recording.WithReplayLogger(logger),
	)
	go func() {
		if err := replayer.Run(replayCtx, cell); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("replay stopped", "error", err)
		}
	}()

	capCfg := cfg.Analysis.Capture()
	analyze := func(ctx context.Context, sink capture.StatusSink) (*coach.Result, error) {
		if err := waitForPose(ctx, cell); err != nil {
			return nil, err
		}
		sampler := capture.NewSampler(capCfg, cell, capture.WithSink(sink), capture.WithLogger(logger))
		return analyzer.Analyze(ctx, coach.Request{
			Technique: tech.ID,
			Locale:    loc,
			Capturer:  sampler,
		})
	}

	var res *coach.Result
	if useTUI {
		res, err = tui.Run(ctx, tui.NewModel(tech.DisplayName, loc, capCfg.Duration), analyze)
	} else {
		res, err = analyze(ctx, &consoleSink{w: cmd.ErrOrStderr()})
	}
	stopReplay()

	switch {
	case errors.Is(err, coach.ErrInFlight):
		logger.Debug("analysis already running, request ignored")
		return nil
	case err != nil:
		return err
	}

	out := cmd.OutOrStdout()
	if !useTUI {
		printResult(out, res)
	}
	if res.SynthesisErr != nil {
		logger.Warn("speech synthesis failed, feedback is text only", "error", res.SynthesisErr)
	}
	if audioOut != "" && res.Audio != nil {
		if err := os.WriteFile(audioOut, res.Audio.Data, 0o644); err != nil {
			return fmt.Errorf("write audio: %w", err)
		}
		fmt.Fprintf(out, "\nAudio written to %s\n", audioOut)
	}
	return nil
}

// waitForPose blocks until the detector has published its first sample.
func waitForPose(ctx context.Context, cell *capture.Cell) error {
	t := time.NewTicker(20 * time.Millisecond)
	defer t.Stop()
	for cell.Load() == nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	return nil
}

func printResult(w io.Writer, res *coach.Result) {
	sep := strings.Repeat("─", 60)

	fmt.Fprintf(w, "%s  [%s]\n", res.Technique.DisplayName, res.Verdict)
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, res.Feedback)
	fmt.Fprintln(w, sep)
	for _, o := range res.ObservationTexts {
		fmt.Fprintf(w, "  - %s\n", o)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, tui.FormatPanel(res.Metrics, res.Locale))
	fmt.Fprintf(w, "\nSession %s · %d frames · %dms\n",
		res.SessionID, res.FrameCount, res.Latency.Milliseconds())
}

// consoleSink prints capture progress as plain lines.
type consoleSink struct {
	w io.Writer
}

func (c *consoleSink) CountdownTick(remaining int) { fmt.Fprintf(c.w, "%d...\n", remaining) }

func (c *consoleSink) CaptureStarted() { fmt.Fprintln(c.w, "Capturing!") }

func (c *consoleSink) RecordingTick(remaining time.Duration, frames int) {
	fmt.Fprintf(c.w, "\rRecording... %ds (%d frames)", int(remaining.Round(time.Second).Seconds()), frames)
}

func (c *consoleSink) CaptureDone(frames int) {
	fmt.Fprintf(c.w, "\nCaptured %d frames, analyzing...\n", frames)
}
