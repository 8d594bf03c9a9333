package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/chrissnell/suncalc/pkg/lunar"
	"github.com/chrissnell/suncalc/pkg/suncalc"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true).Width(15)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("60")).Padding(0, 1)
)

func main() {
	var timeStr string
	var lat, lon float64
	flag.StringVar(&timeStr, "time", "", "UTC time to calculate phase for (RFC3339 format, e.g., 2024-01-15T12:00:00Z)")
	flag.Float64Var(&lat, "lat", 0, "Observer latitude in degrees, used for the bright limb angle")
	flag.Float64Var(&lon, "lon", 0, "Observer longitude in degrees, used for the bright limb angle")
	flag.Parse()

	var t time.Time
	if timeStr == "" {
		t = time.Now().UTC()
	} else {
		var err error
		t, err = time.Parse(time.RFC3339, timeStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing time: %v\n", err)
			os.Exit(1)
		}
	}

	ms := t.UnixMilli()
	ill := suncalc.GetMoonIllumination(ms)
	phase := lunar.Describe(ill)
	limb := lunar.BrightLimbZenithAngle(ill, suncalc.GetMoonPosition(ms, lat, lon))

	direction := "Waning"
	if phase.IsWaxing {
		direction = "Waxing"
	}

	rows := []string{
		titleStyle.Render("Moon Phase for " + t.Format(time.RFC3339)),
		row("Phase", fmt.Sprintf("%.1f%% (%.4f)", phase.Phase*100, phase.Phase)),
		row("Phase Name", phase.PhaseName),
		row("Illumination", fmt.Sprintf("%.1f%%", phase.Illumination*100)),
		row("Age", fmt.Sprintf("%.1f days", phase.AgeDays)),
		row("Limb Angle", fmt.Sprintf("%.1f°", suncalc.Degrees(limb))),
		row("Direction", direction),
	}
	if lat != 0 || lon != 0 {
		rows = append(rows, row("Observer", fmt.Sprintf("%.4f, %.4f", lat, lon)))
	}

	fmt.Println(boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}
