package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"

	"github.com/lixenwraith/wxscene/profile"
	"github.com/lixenwraith/wxscene/systems"
	"github.com/lixenwraith/wxscene/weather"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(14)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	headStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	cellStyle  = lipgloss.NewStyle().PaddingRight(2)
)

func describeCommand() *cli.Command {
	return &cli.Command{
		Name:   "describe",
		Usage:  "show how a snapshot is classified and which profile it selects",
		Flags:  sceneFlags(),
		Action: describeScene,
	}
}

func describeScene(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	var snap *weather.Snapshot
	if cfg.Feed.File != "" {
		data, err := os.ReadFile(cfg.Feed.File)
		if err != nil {
			return fmt.Errorf("read snapshot file: %w", err)
		}
		if snap, err = weather.DecodeSnapshot(bytes.NewReader(data)); err != nil {
			return err
		}
	} else if snap, err = presetSnapshot(cfg, time.Now()); err != nil {
		return err
	}

	writeDescription(c.App.Writer, snap)
	return nil
}

// writeDescription renders the scene parameters selected by snap
func writeDescription(w io.Writer, snap *weather.Snapshot) {
	cl := weather.Classify(snap)
	fam := profile.FamilyOf(cl.Category)
	p, rule := profile.Match(fam, cl.ProfileCode)

	clouds := "5"
	sun := "no"
	if cl.Category == weather.CategoryClear {
		clouds = "0"
		if cl.Daytime {
			sun = "yes"
		}
	}
	tint := systems.CloudTint(cl.Category)

	rows := [][2]string{
		{"category", cl.Category.String()},
		{"code", fmt.Sprint(cl.Code)},
		{"profile code", fmt.Sprint(cl.ProfileCode)},
		{"daytime", fmt.Sprint(cl.Daytime)},
		{"family", fam.String()},
		{"rule", rule},
		{"particles", fmt.Sprint(p.Count)},
		{"speed", fmt.Sprintf("%g..%g", p.MinSpeed, p.MaxSpeed)},
		{"size", fmt.Sprintf("%g..%g", p.MinSize, p.MaxSize)},
		{"clouds", clouds},
		{"cloud tint", fmt.Sprintf("#%02x%02x%02x", tint.R, tint.G, tint.B)},
		{"sun", sun},
	}

	var b strings.Builder
	title := "no snapshot"
	if cl.Present {
		title = cl.Main
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(r[0]), valueStyle.Render(r[1])))
		b.WriteString("\n")
	}
	io.WriteString(w, b.String())
}

func profilesCommand() *cli.Command {
	return &cli.Command{
		Name:  "profiles",
		Usage: "print the particle profile tables",
		Action: func(c *cli.Context) error {
			writeProfiles(c.App.Writer)
			return nil
		},
	}
}

// writeProfiles prints each family's rules in match order
func writeProfiles(w io.Writer) {
	header := []string{"rule", "codes", "count", "speed", "size"}
	var b strings.Builder
	for _, fam := range []profile.Family{profile.FamilyRain, profile.FamilySnow} {
		rules := profile.Rules(fam)
		table := make([][]string, 0, len(rules)+1)
		table = append(table, header)
		for _, r := range rules {
			p := r.Profile
			table = append(table, []string{
				r.Name,
				r.Codes,
				fmt.Sprint(p.Count),
				fmt.Sprintf("%g..%g", p.MinSpeed, p.MaxSpeed),
				fmt.Sprintf("%g..%g", p.MinSize, p.MaxSize),
			})
		}

		b.WriteString(titleStyle.Render(fam.String()))
		b.WriteString("\n")
		b.WriteString(renderTable(table))
		b.WriteString("\n")
	}
	io.WriteString(w, b.String())
}

// renderTable pads columns to their widest cell, the first row is the header
func renderTable(rows [][]string) string {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	for ri, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			style := cellStyle.Width(widths[i] + 2)
			if ri == 0 {
				style = style.Inherit(headStyle)
			}
			cells[i] = style.Render(cell)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}
	return b.String()
}
