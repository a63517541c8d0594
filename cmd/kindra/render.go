package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"kindra-backend/domain/analytics"
	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
)

var (
	bold   = color.New(color.FgCyan, color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

func typeColor(t entities.InsightType) func(a ...interface{}) string {
	switch t {
	case entities.InsightPositive:
		return green
	case entities.InsightWarning:
		return yellow
	case entities.InsightCritical:
		return red
	default:
		return gray
	}
}

func renderInsights(w io.Writer, heading string, insights []entities.Insight) {
	fmt.Fprintf(w, "\n%s\n\n", bold("=== "+heading+" ==="))
	if len(insights) == 0 {
		fmt.Fprintf(w, "  %s\n", gray("No insights"))
		return
	}

	for _, in := range insights {
		c := typeColor(in.Type)
		fmt.Fprintf(w, "%s %s %s\n", c("●"), in.Title, gray(fmt.Sprintf("[%s, %d%%]", in.Category, in.Confidence)))
		fmt.Fprintf(w, "  %s\n", in.Description)
		for _, dp := range in.DataPoints {
			fmt.Fprintf(w, "    - %s\n", dp)
		}
		for _, action := range in.ActionItems {
			fmt.Fprintf(w, "    %s %s\n", green("→"), action)
		}
		fmt.Fprintln(w)
	}
}

func renderVariability(w io.Writer, v *analytics.CycleVariability) {
	if v == nil {
		fmt.Fprintf(w, "%s\n", yellow("Not enough completed cycles to measure variability"))
		return
	}
	fmt.Fprintf(w, "%s\n", v.String())
	fmt.Fprintf(w, "  %s %v\n", gray("samples:"), v.Samples)
}

func renderPrediction(w io.Writer, phase valueobjects.Phase, p *analytics.TimingPrediction) {
	if p == nil {
		fmt.Fprintf(w, "%s\n", yellow("No cycle data to project "+phase.Label()))
		return
	}

	when := green(fmt.Sprintf("in %d days", p.DaysUntilOptimal))
	switch {
	case p.DaysUntilOptimal == 0:
		when = green("today")
	case p.DaysUntilOptimal < 0:
		when = gray(fmt.Sprintf("%d days ago", -p.DaysUntilOptimal))
	}

	fmt.Fprintf(w, "%s phase: %s (%s)\n", bold(p.Phase.Label()), p.NextOptimalDate.Format("2006-01-02"), when)
	fmt.Fprintf(w, "  %s %s\n", gray("next cycle start:"), p.NextCycleStart.Format("2006-01-02"))
}
