package main

import (
	"flag"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/charmbracelet/lipgloss"
	"github.com/chrissnell/suncalc/pkg/solar"
	"github.com/chrissnell/suncalc/pkg/suncalc"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true).Width(18)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("60")).Padding(0, 1)
)

func main() {
	lat := flag.Float64("lat", 0, "Observer latitude in degrees")
	lon := flag.Float64("lon", 0, "Observer longitude in degrees")
	height := flag.Float64("height", 0, "Observer height above the horizon in meters")
	dateStr := flag.String("date", "", "Calendar date (YYYY-MM-DD), defaults to today")
	tz := flag.String("tz", "", "IANA timezone for the date and printed times, defaults to UTC")
	flag.Parse()

	loc := time.UTC
	if *tz != "" {
		var err error
		loc, err = time.LoadLocation(*tz)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading timezone: %v\n", err)
			os.Exit(1)
		}
	}

	day := time.Now().In(loc)
	if *dateStr != "" {
		var err error
		day, err = time.ParseInLocation("2006-01-02", *dateStr, loc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			os.Exit(1)
		}
	}
	noon := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, loc)

	times := suncalc.GetTimes(noon.UnixMilli(), *lat, *lon, *height)

	rows := []string{
		titleStyle.Render(fmt.Sprintf("Sun times for %s at %.4f, %.4f", noon.Format("2006-01-02"), *lat, *lon)),
	}
	events := []struct {
		label string
		ts    suncalc.Timestamp
	}{
		{"Night ends", times.NightEnd},
		{"Nautical dawn", times.NauticalDawn},
		{"Dawn", times.Dawn},
		{"Sunrise", times.Sunrise},
		{"Sunrise ends", times.SunriseEnd},
		{"Golden hour ends", times.GoldenHourEnd},
		{"Solar noon", times.SolarNoon},
		{"Golden hour", times.GoldenHour},
		{"Sunset starts", times.SunsetStart},
		{"Sunset", times.Sunset},
		{"Dusk", times.Dusk},
		{"Nautical dusk", times.NauticalDusk},
		{"Night", times.Night},
		{"Nadir", times.Nadir},
	}
	for _, e := range events {
		value := valueStyle.Render(solar.FormatSunTime(e.ts, loc))
		if !e.ts.Valid() {
			value = dimStyle.Render("does not occur")
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(e.label), value))
	}

	if d, ok := solar.DayLength(times); ok {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render("Day length"), valueStyle.Render(d.Round(time.Minute).String())))
	}

	fmt.Println(boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}
