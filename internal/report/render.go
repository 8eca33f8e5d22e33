package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rxtech-lab/tokenomics-studio/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrRenderingFailure = errors.New("failed to render report")

const (
	PrimaryColor = "#DC1FFF"
	AccentColor  = "#00FFA3"
	TextColor    = "#000000"

	// TopMargin is the distance from the top edge where every page starts
	TopMargin = 50.0
	// BottomMargin is the lowest position a line may be drawn at
	BottomMargin = 100.0
	// NarrativeLineWidth is the exclusive upper bound of characters per
	// narrative line
	NarrativeLineWidth = 90

	headingX = 50.0
	bodyX    = 70.0
	detailX  = 90.0
)

var numberPrinter = message.NewPrinter(language.English)

// RenderPDF renders the project into a PDF document
func RenderPDF(project *models.TokenomicsProject) ([]byte, error) {
	return Render(project, NewPDFCanvas())
}

// Render draws the project onto the canvas and returns the finished document.
// The canvas must be fresh; it is positioned on its first page.
func Render(project *models.TokenomicsProject, canvas Canvas) ([]byte, error) {
	if project == nil {
		return nil, fmt.Errorf("%w: no project", ErrRenderingFailure)
	}

	width, height := canvas.PageSize()
	l := &layout{canvas: canvas, height: height, y: height - TopMargin}

	// cover
	l.style(true, 24, PrimaryColor)
	l.centred(width/2, project.ProjectName, 25)
	l.centred(width/2, "Tokenomics Design", 45)

	l.style(true, 14, TextColor)
	l.line(headingX, "Project Overview", 30)
	l.style(false, 11, TextColor)
	l.line(bodyX, "Type: "+project.RequestData.ProjectType, 20)
	l.line(bodyX, "Target Audience: "+project.RequestData.TargetAudience, 20)
	l.line(bodyX, fmt.Sprintf("Total Supply: %s tokens", formatCount(project.TotalSupply)), 40)

	// allocations
	l.style(true, 14, TextColor)
	l.line(headingX, "Token Allocations", 20)
	for _, allocation := range project.Allocations {
		l.style(true, 11, TextColor)
		l.line(bodyX, fmt.Sprintf("%s: %s%%", allocation.Category, formatPercentage(allocation.Percentage)), 15)
		l.style(false, 9, TextColor)
		l.line(detailX, fmt.Sprintf("%s tokens - %s", formatCount(allocation.Tokens), allocation.Description), 12)
		l.line(detailX, "Vesting: "+allocation.VestingSchedule, 25)
	}

	// narrative
	l.newPage()
	l.style(true, 16, PrimaryColor)
	l.line(headingX, "Economic Model & Narrative", 40)
	l.style(false, 11, TextColor)
	for _, text := range WrapText(project.Narrative, NarrativeLineWidth) {
		l.line(headingX, text, 15)
	}

	// risks
	l.skip(30)
	l.style(true, 14, AccentColor)
	l.line(headingX, "Key Risks", 20)
	l.style(false, 11, TextColor)
	for i, risk := range project.Risks {
		l.line(bodyX, fmt.Sprintf("%d. %s", i+1, risk), 20)
	}

	// comparables
	l.skip(20)
	l.style(true, 14, AccentColor)
	l.line(headingX, "Comparable Projects", 20)
	l.style(false, 11, TextColor)
	l.line(bodyX, strings.Join(project.ComparableProjects, ", "), 20)

	data, err := canvas.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderingFailure, err)
	}
	return data, nil
}

// layout tracks the vertical cursor and re-applies the current style after
// every page break
type layout struct {
	canvas Canvas
	height float64
	y      float64

	bold  bool
	size  float64
	color string
}

func (l *layout) style(bold bool, size float64, color string) {
	l.bold, l.size, l.color = bold, size, color
	l.applyStyle()
}

func (l *layout) applyStyle() {
	l.canvas.SetFont(l.bold, l.size)
	l.canvas.SetColor(l.color)
}

func (l *layout) newPage() {
	l.canvas.NewPage()
	l.y = l.height - TopMargin
	l.applyStyle()
}

func (l *layout) ensureSpace() {
	if l.y < BottomMargin {
		l.newPage()
	}
}

// line draws text at the cursor and moves the cursor down by advance
func (l *layout) line(x float64, text string, advance float64) {
	l.ensureSpace()
	l.canvas.DrawString(x, l.y, text)
	l.y -= advance
}

func (l *layout) centred(x float64, text string, advance float64) {
	l.ensureSpace()
	l.canvas.DrawCentredString(x, l.y, text)
	l.y -= advance
}

func (l *layout) skip(distance float64) {
	l.y -= distance
}

// WrapText splits text into lines of fewer than width characters, breaking at
// whitespace. A single word that is too long gets a line of its own.
func WrapText(text string, width int) []string {
	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		if current.Len() == 0 {
			current.WriteString(word)
			continue
		}
		if utf8.RuneCountInString(current.String())+1+utf8.RuneCountInString(word) < width {
			current.WriteByte(' ')
			current.WriteString(word)
			continue
		}
		lines = append(lines, current.String())
		current.Reset()
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

func formatCount(n int64) string {
	return numberPrinter.Sprintf("%d", n)
}

func formatPercentage(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
