package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/komapc/yearwheel/pkg/pipeline"
	"github.com/komapc/yearwheel/pkg/wheel"
)

// Preview grid size in terminal cells. Cells are roughly twice as tall as
// wide, so the grid is wider than high to keep the wheel round.
const (
	previewWidth  = 56
	previewHeight = 28
)

// newTuneCmd creates the tune command: an interactive terminal UI for
// adjusting wheel parameters. On quit the chosen parameters are written to
// the preferences file, so later render runs pick them up.
func newTuneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tune",
		Short: "Adjust wheel shape, direction, and seasons interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig("")
			if err != nil {
				loggerFromContext(cmd.Context()).Warn("ignoring unreadable config", "error", err)
				cfg = DefaultConfig()
			}

			final, err := tea.NewProgram(newTuneModel(cfg)).Run()
			if err != nil {
				return err
			}

			m := final.(tuneModel)
			if !m.save {
				printInfo("Discarded changes")
				return nil
			}
			if err := SaveConfig(m.config(), ""); err != nil {
				return fmt.Errorf("save preferences: %w", err)
			}
			printSuccess("Preferences saved")
			printDetail("corner %.0f · direction %s · seasons %s",
				m.cornerUI, directionName(m.engine.Direction()),
				strings.Join(m.engine.Seasons(), " "))
			return nil
		},
	}
}

// =============================================================================
// tuneModel - Interactive parameter tuning
// =============================================================================

// tuneModel is the bubbletea model for the tuner. It drives a real layout
// engine sized to the preview grid, so what the preview shows is exactly
// what the renderer will place.
type tuneModel struct {
	engine   *wheel.Engine
	cornerUI float64
	save     bool
}

func newTuneModel(cfg Config) tuneModel {
	opts := pipeline.Options{
		CornerUI:   cfg.Corner,
		Direction:  directionValue(cfg.Direction),
		StartAngle: &cfg.StartAngle,
		Seasons:    cfg.Seasons,
		Width:      previewWidth,
		Height:     previewHeight,
		Weeks:      pipeline.DefaultWeeks,
	}
	return tuneModel{
		engine:   pipeline.BuildEngine(opts),
		cornerUI: cfg.Corner,
	}
}

// config snapshots the tuned parameters for persistence.
func (m tuneModel) config() Config {
	cfg := DefaultConfig()
	cfg.Corner = m.cornerUI
	cfg.Direction = directionName(m.engine.Direction())
	cfg.StartAngle = m.engine.StartAngle() * 180 / math.Pi
	cfg.Seasons = m.engine.Seasons()
	return cfg
}

func (m tuneModel) Init() tea.Cmd {
	return nil
}

func (m tuneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "q", "enter":
		m.save = true
		return m, tea.Quit
	case "left", "h":
		m.setCorner(m.cornerUI - 2)
	case "right", "l":
		m.setCorner(m.cornerUI + 2)
	case "d":
		m.engine.ToggleDirection()
	case "1", "2", "3":
		i := int(key.String()[0] - '1')
		seasons := m.engine.Seasons()
		m.engine.SwapSeasons(seasons[i], seasons[i+1])
	}
	return m, nil
}

func (m *tuneModel) setCorner(ui float64) {
	if ui < 0 {
		ui = 0
	}
	if ui > wheel.CornerUIMax {
		ui = wheel.CornerUIMax
	}
	m.cornerUI = ui
	m.engine.SetCornerRadius(ui)
}

func (m tuneModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Tune Year Wheel"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ shape  d direction  1-3 swap seasons  ⏎ save  esc discard"))
	b.WriteString("\n\n")

	b.WriteString(m.renderPreview())
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("  shape     %s %s\n",
		renderGauge(m.cornerUI), shapeName(m.cornerUI)))
	b.WriteString(fmt.Sprintf("  direction %s\n", StyleValue.Render(directionName(m.engine.Direction()))))
	b.WriteString(fmt.Sprintf("  seasons   %s\n", StyleValue.Render(strings.Join(m.engine.Seasons(), " "))))

	return b.String()
}

// renderPreview plots the engine's markers into a character grid.
func (m tuneModel) renderPreview() string {
	grid := make([][]rune, previewHeight)
	for y := range grid {
		grid[y] = make([]rune, previewWidth)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	for _, marker := range m.engine.Markers() {
		x, y := int(marker.Pos.X), int(marker.Pos.Y)
		if x < 0 || x >= previewWidth || y < 0 || y >= previewHeight {
			continue
		}
		ch := '?'
		if marker.Season != "" {
			ch = rune(marker.Season[0])
		}
		grid[y][x] = ch
	}

	var b strings.Builder
	for _, row := range grid {
		b.WriteString("  ")
		b.WriteString(StyleValue.Render(string(row)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderGauge draws the corner control as a filled bar over its 0..50 range.
func renderGauge(ui float64) string {
	const width = 25
	filled := int(ui / wheel.CornerUIMax * width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(colorCyan).Render(bar)
}

// shapeName labels the ends and middle of the morph range.
func shapeName(ui float64) string {
	switch {
	case ui == 0:
		return StyleDim.Render("square")
	case ui >= wheel.CornerUIMax:
		return StyleDim.Render("circle")
	default:
		return StyleDim.Render(fmt.Sprintf("%.0f/50", ui))
	}
}
