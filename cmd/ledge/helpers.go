package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ledge/internal/diagfmt"
	"ledge/internal/driver"
)

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

func maxDiagnostics(cmd *cobra.Command) (int, error) {
	return cmd.Root().PersistentFlags().GetInt("max-diagnostics")
}

func quietMode(cmd *cobra.Command) bool {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && quiet
}

func prettyOptsFor(cmd *cobra.Command, f *os.File) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     useColor(cmd, f),
		Context:   2,
		ShowNotes: true,
	}
}

// timingSink collects phase boundaries for the --timings flag.
type timingSink struct {
	phases []driver.PhaseEvent
}

func timingObserver(cmd *cobra.Command) (driver.PhaseObserver, *timingSink) {
	enabled, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil || !enabled {
		return nil, nil
	}
	sink := &timingSink{}
	return func(ev driver.PhaseEvent) {
		if ev.Status == driver.PhaseEnd {
			sink.phases = append(sink.phases, ev)
		}
	}, sink
}

func (s *timingSink) print(out io.Writer) {
	if s == nil {
		return
	}
	for _, ev := range s.phases {
		fmt.Fprintf(out, "%s %.1f ms\n", ev.Name, toMillis(ev.Elapsed))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
