package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vsinha/moldplan/pkg/application/dto"
	"github.com/vsinha/moldplan/pkg/domain/entities"
)

// BoardRow is one part line of the schedule board
type BoardRow struct {
	PartName   string
	PartNumber entities.PartNumber
	Lots       []int // distinct shifts worked per board day
}

// ScheduleBoard pivots a schedule into parts × days
type ScheduleBoard struct {
	Days    []time.Time
	Headers []string
	Rows    []BoardRow
}

// BuildBoard pivots the schedule of result. Columns span the planning
// horizon and extend into the lookahead days only as far as jobs were placed.
func BuildBoard(result *dto.PlanResult) *ScheduleBoard {
	start := entities.DateOf(result.StartDate)
	days := result.HorizonDays
	for _, row := range result.Schedule {
		if offset := entities.DaysBetween(start, row.Date) + 1; offset > days {
			days = offset
		}
	}

	board := &ScheduleBoard{}
	for d := 0; d < days; d++ {
		date := entities.AddDays(start, d)
		board.Days = append(board.Days, date)
		board.Headers = append(board.Headers, date.Format("02 (Mon)"))
	}

	type key struct {
		name   string
		number entities.PartNumber
	}
	shifts := make(map[key][]map[string]bool)
	for _, row := range result.Schedule {
		k := key{row.PartName, row.PartNumber}
		if _, ok := shifts[k]; !ok {
			shifts[k] = make([]map[string]bool, days)
		}
		d := entities.DaysBetween(start, row.Date)
		if d < 0 || d >= days {
			continue
		}
		if shifts[k][d] == nil {
			shifts[k][d] = make(map[string]bool)
		}
		shifts[k][d][row.ShiftLabel] = true
	}

	for k, perDay := range shifts {
		lots := make([]int, days)
		for d, labels := range perDay {
			lots[d] = len(labels)
		}
		board.Rows = append(board.Rows, BoardRow{PartName: k.name, PartNumber: k.number, Lots: lots})
	}
	sort.Slice(board.Rows, func(i, j int) bool {
		if board.Rows[i].PartName != board.Rows[j].PartName {
			return board.Rows[i].PartName < board.Rows[j].PartName
		}
		return board.Rows[i].PartNumber < board.Rows[j].PartNumber
	})

	return board
}

// Cell renders one board cell the way operators read it
func (r BoardRow) Cell(day int) string {
	if r.Lots[day] == 0 {
		return "-"
	}
	return fmt.Sprintf("%d Lot", r.Lots[day])
}

func writeBoardText(w io.Writer, board *ScheduleBoard) {
	fmt.Fprintf(w, "%-30s", "Part")
	for _, header := range board.Headers {
		fmt.Fprintf(w, " %-9s", header)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-30s", strings.Repeat("-", 30))
	for range board.Headers {
		fmt.Fprintf(w, " %-9s", strings.Repeat("-", 9))
	}
	fmt.Fprintln(w)

	for _, row := range board.Rows {
		label := fmt.Sprintf("%s (%s)", row.PartName, row.PartNumber)
		if runes := []rune(label); len(runes) > 30 {
			label = string(runes[:29]) + "…"
		}
		fmt.Fprintf(w, "%-30s", label)
		for d := range board.Headers {
			fmt.Fprintf(w, " %-9s", row.Cell(d))
		}
		fmt.Fprintln(w)
	}
}

// BoardChart lays out a schedule board as SVG
type BoardChart struct {
	CellWidth    int
	RowHeight    int
	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
}

// NewBoardChart creates a chart with the default cell geometry
func NewBoardChart() *BoardChart {
	return &BoardChart{
		CellWidth:    64,
		RowHeight:    25,
		MarginLeft:   220,
		MarginTop:    70,
		MarginRight:  30,
		MarginBottom: 80,
	}
}

// Size returns the chart width and height for board
func (bc *BoardChart) Size(board *ScheduleBoard) (int, int) {
	width := bc.MarginLeft + len(board.Days)*bc.CellWidth + bc.MarginRight
	height := bc.MarginTop + len(board.Rows)*bc.RowHeight + bc.MarginBottom
	return width, height
}

// GenerateSVG renders the board as an SVG grid shaded by lots per day
func (bc *BoardChart) GenerateSVG(board *ScheduleBoard, title string) string {
	width, height := bc.Size(board)
	if len(board.Rows) == 0 {
		return bc.generateEmptyChart()
	}

	var svg strings.Builder

	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, width, height))
	svg.WriteString(`<defs>`)
	svg.WriteString(`<style>`)
	svg.WriteString(`.part-label { font-family: Arial, sans-serif; font-size: 12px; fill: #333; }`)
	svg.WriteString(`.day-label { font-family: Arial, sans-serif; font-size: 10px; fill: #666; }`)
	svg.WriteString(`.title { font-family: Arial, sans-serif; font-size: 16px; font-weight: bold; fill: #333; }`)
	svg.WriteString(`.grid-line { stroke: #e0e0e0; stroke-width: 1; }`)
	svg.WriteString(`.lot-text { font-family: Arial, sans-serif; font-size: 10px; fill: #111; }`)
	svg.WriteString(`</style>`)
	svg.WriteString(`</defs>`)

	svg.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, width, height))
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="30" class="title">%s</text>`, bc.MarginLeft, escape(title)))

	bc.drawDayAxis(&svg, board)
	bc.drawRows(&svg, board)
	bc.drawLegend(&svg, height)

	svg.WriteString(`</svg>`)
	return svg.String()
}

func (bc *BoardChart) drawDayAxis(svg *strings.Builder, board *ScheduleBoard) {
	gridBottom := bc.MarginTop + len(board.Rows)*bc.RowHeight
	for d, header := range board.Headers {
		x := bc.MarginLeft + d*bc.CellWidth
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="day-label" text-anchor="middle">%s</text>`,
			x+bc.CellWidth/2, bc.MarginTop-10, header))
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
			x, bc.MarginTop, x, gridBottom))
	}
}

func (bc *BoardChart) drawRows(svg *strings.Builder, board *ScheduleBoard) {
	right := bc.MarginLeft + len(board.Days)*bc.CellWidth
	for i, row := range board.Rows {
		y := bc.MarginTop + i*bc.RowHeight

		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="part-label" text-anchor="end">%s</text>`,
			bc.MarginLeft-10, y+bc.RowHeight/2+4, escape(fmt.Sprintf("%s (%s)", row.PartName, row.PartNumber))))
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
			bc.MarginLeft, y+bc.RowHeight, right, y+bc.RowHeight))

		for d, lots := range row.Lots {
			if lots == 0 {
				continue
			}
			x := bc.MarginLeft + d*bc.CellWidth
			svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`,
				x+1, y+1, bc.CellWidth-2, bc.RowHeight-2, lotColor(lots)))
			svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="lot-text" text-anchor="middle">%s</text>`,
				x+bc.CellWidth/2, y+bc.RowHeight/2+4, row.Cell(d)))
			svg.WriteString(fmt.Sprintf(`<title>%s %s: %s</title>`,
				escape(string(row.PartNumber)), entities.DateKey(board.Days[d]), row.Cell(d)))
		}
	}
}

func (bc *BoardChart) drawLegend(svg *strings.Builder, height int) {
	legendY := height - bc.MarginBottom + 30
	items := []struct {
		lots  int
		label string
	}{
		{1, "1 Lot"},
		{2, "2 Lot"},
		{3, "3 Lot (full day)"},
	}

	for i, item := range items {
		x := bc.MarginLeft + i*130
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="12" height="10" fill="%s"/>`,
			x, legendY, lotColor(item.lots)))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="day-label">%s</text>`,
			x+18, legendY+9, item.label))
	}
}

// lotColor shades cells from light blue for one lot to purple for a full day
func lotColor(lots int) string {
	switch {
	case lots >= 3:
		return "#9575CD"
	case lots == 2:
		return "#64B5F6"
	default:
		return "#BBDEFB"
	}
}

func (bc *BoardChart) generateEmptyChart() string {
	width, height := 600, 200
	return fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
		<rect width="%d" height="%d" fill="white"/>
		<text x="%d" y="%d" class="title" text-anchor="middle">No Production Scheduled</text>
		<style>
			.title { font-family: Arial, sans-serif; font-size: 16px; fill: #666; }
		</style>
	</svg>`, width, height, width, height, width/2, height/2)
}

var svgEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string {
	return svgEscaper.Replace(s)
}

// generateSVGOutput writes the schedule board chart
func generateSVGOutput(result *dto.PlanResult, config Config) error {
	title := "Schedule Board"
	if result.MachineID != "" {
		title += ": " + result.MachineID
	}
	svg := NewBoardChart().GenerateSVG(BuildBoard(result), title)

	if config.OutputDir == "" {
		fmt.Fprintln(config.writer(), svg)
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(config.OutputDir, "schedule_board.svg")
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return fmt.Errorf("failed to write SVG file: %w", err)
	}
	if config.Verbose {
		fmt.Fprintf(config.writer(), "💾 Schedule board saved to: %s\n", path)
	}
	return nil
}
