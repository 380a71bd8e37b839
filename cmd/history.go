package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sensei/internal/i18n"
	"github.com/abhisek/sensei/internal/pose"
	"github.com/abhisek/sensei/internal/store"
	"github.com/abhisek/sensei/internal/tui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past analyses",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent analyses",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		techID, _ := cmd.Flags().GetString("technique")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		recs, err := s.AnalysisRepo().QueryAnalyses(cmd.Context(), store.AnalysisQuery{
			QueryOpts: store.QueryOpts{Limit: limit},
			Technique: techID,
		})
		if err != nil {
			return fmt.Errorf("query analyses: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(recs) == 0 {
			fmt.Fprintln(out, "No analyses recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-19s  %-12s  %-6s  %-13s  %6s  %s\n",
			"Session", "Timestamp", "Technique", "Locale", "Verdict", "Frames", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 108))
		for _, r := range recs {
			ok := "✓"
			if !r.Success {
				ok = "✗"
			} else if r.SynthesisError != "" {
				ok = "✓ (no audio)"
			}
			fmt.Fprintf(out, "%-36s  %-19s  %-12s  %-6s  %-13s  %6d  %s\n",
				r.SessionID,
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				r.Technique,
				r.Locale,
				r.Verdict,
				r.FrameCount,
				ok,
			)
		}
		return nil
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <session-id>",
	Short: "Show feedback, observations and metrics of one analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		r, err := s.AnalysisRepo().GetAnalysis(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("get analysis: %w", err)
		}
		if r == nil {
			return fmt.Errorf("analysis %s not found", args[0])
		}

		out := cmd.OutOrStdout()
		sep := strings.Repeat("─", 60)

		fmt.Fprintf(out, "Session:   %s\n", r.SessionID)
		fmt.Fprintf(out, "Time:      %s\n", r.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Technique: %s (%s)\n", r.Technique, r.Locale)
		fmt.Fprintf(out, "Verdict:   %s\n", r.Verdict)
		fmt.Fprintf(out, "Frames:    %d\n", r.FrameCount)
		fmt.Fprintf(out, "Latency:   %dms\n", r.LatencyMs)
		if r.AudioPath != "" {
			fmt.Fprintf(out, "Audio:     %s\n", r.AudioPath)
		}
		if r.SynthesisError != "" {
			fmt.Fprintf(out, "Speech:    %s\n", r.SynthesisError)
		}
		if r.ErrorMessage != "" {
			fmt.Fprintf(out, "Error:     %s\n", r.ErrorMessage)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, "FEEDBACK")
		fmt.Fprintln(out, sep)
		if r.Feedback != "" {
			fmt.Fprintln(out, r.Feedback)
		} else {
			fmt.Fprintln(out, "(none)")
		}

		var m pose.Metrics
		if len(r.Metrics) > 0 && json.Unmarshal(r.Metrics, &m) == nil {
			fmt.Fprintln(out, sep)
			fmt.Fprint(out, tui.FormatPanel(m, i18n.Match(r.Locale)))
		}

		if show, _ := cmd.Flags().GetBool("prompt"); show && r.Prompt != "" {
			fmt.Fprintln(out, sep)
			fmt.Fprintln(out, "PROMPT")
			fmt.Fprintln(out, sep)
			fmt.Fprintln(out, r.Prompt)
		}
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Number of analyses to show")
	historyListCmd.Flags().StringP("technique", "t", "", "Only show this technique")
	historyViewCmd.Flags().Bool("prompt", false, "Also print the prompt sent to the model")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyViewCmd)
}
