package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"orfscan/internal/orf"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Colors for modern design
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	secondaryColor = lipgloss.Color("#10B981") // Green
	accentColor    = lipgloss.Color("#F59E0B") // Amber
	surfaceColor   = lipgloss.Color("#1F2937") // Dark gray
	textColor      = lipgloss.Color("#F3F4F6") // Light gray
	mutedColor     = lipgloss.Color("#9CA3AF") // Muted gray
	borderColor    = lipgloss.Color("#374151") // Border gray
)

// Styles
var (
	containerStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Align(lipgloss.Center)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(surfaceColor).
			Padding(0, 1)

	sequenceStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(lipgloss.Color("#111827")).
			Padding(1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)
	// Strand styles
	strandForwardStyle = lipgloss.NewStyle().Foreground(secondaryColor).Bold(true)
	strandReverseStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
)

type listItem struct {
	record orf.Record
}

func (i listItem) FilterValue() string {
	return fmt.Sprintf("%d..%d %s", i.record.StartPos, i.record.StopPos, i.record.Protein)
}

func (i listItem) Title() string {
	return fmt.Sprintf("%d..%d", i.record.StartPos, i.record.StopPos)
}

func (i listItem) Description() string {
	var strand string
	if i.record.Strand == orf.Forward {
		strand = strandForwardStyle.Render("+1")
	} else {
		strand = strandReverseStyle.Render("-1")
	}
	return fmt.Sprintf("Strand: %s    Frame: %d    AA: %d", strand, i.record.Frame, len(strings.TrimSuffix(i.record.Protein, "*")))
}

type mode int

const (
	modeProtein mode = iota
	modeNucleotides
	modeSummary
)

func (m mode) String() string {
	switch m {
	case modeProtein:
		return "Protein"
	case modeNucleotides:
		return "Nucleotides"
	case modeSummary:
		return "Summary"
	default:
		return "Unknown"
	}
}

type model struct {
	list          list.Model
	records       []orf.Record
	currentMode   mode
	showHelp      bool
	width         int
	height        int
	totalRecords  int
	selectedIndex int
}

func initialModel(records []orf.Record) model {
	items := make([]list.Item, len(records))
	for i, record := range records {
		items[i] = listItem{record: record}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Open Reading Frames"
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(true)

	return model{
		list:         l,
		records:      records,
		currentMode:  modeProtein,
		totalRecords: len(records),
	}
}

// cycleMode advances to the next view mode, wrapping around.
func (m model) cycleMode() model {
	m.currentMode = (m.currentMode + 1) % 3
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// left panel takes 1/3 of width
		m.list.SetWidth(msg.Width / 3)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "h":
			m.showHelp = !m.showHelp
			return m, nil

		case "tab":
			return m.cycleMode(), nil

		case "1":
			m.currentMode = modeProtein
			return m, nil

		case "2":
			m.currentMode = modeNucleotides
			return m, nil

		case "3":
			m.currentMode = modeSummary
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.selectedIndex = m.list.Index()
	return m, cmd
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpModal()
	}

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderLeftPanel(),
		m.renderRightPanel(),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		main,
		m.renderStatusBar(),
	)
}

func (m model) renderLeftPanel() string {
	listWidth := m.width / 3
	return containerStyle.
		Width(listWidth - 2).
		Height(m.height - 4).
		Render(m.list.View())
}

func (m model) renderRightPanel() string {
	rightWidth := (m.width * 2) / 3

	if len(m.records) == 0 {
		return containerStyle.
			Width(rightWidth - 2).
			Height(m.height - 4).
			Render("No ORFs found")
	}

	selectedItem := m.list.SelectedItem()
	if selectedItem == nil {
		return containerStyle.
			Width(rightWidth - 2).
			Height(m.height - 4).
			Render("No ORF selected")
	}

	record := selectedItem.(listItem).record

	header := titleStyle.Render(fmt.Sprintf("ORF %d..%d", record.StartPos, record.StopPos))

	var strandStyle lipgloss.Style
	strandLabel := "+1"
	if record.Strand == orf.Forward {
		strandStyle = strandForwardStyle
	} else {
		strandStyle = strandReverseStyle
		strandLabel = "-1"
	}
	label := lipgloss.NewStyle().Foreground(mutedColor)
	metaStr := label.Render("Strand: ") + strandStyle.Render(strandLabel) +
		label.Render("    Frame: ") + strandStyle.Render(fmt.Sprintf("%d", record.Frame)) +
		label.Render("    NT: ") + strandStyle.Render(fmt.Sprintf("%d", len(record.Nucleotides)))

	var content string
	switch m.currentMode {
	case modeProtein:
		content = m.formatSequence(record.Protein, "Protein")
	case modeNucleotides:
		content = m.formatSequence(record.Nucleotides, "Nucleotides")
	case modeSummary:
		content = m.formatSummary(record)
	}

	panelContent := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		metaStr,
		"",
		content,
	)

	return containerStyle.
		Width(rightWidth - 2).
		Height(m.height - 4).
		Render(panelContent)
}

func (m model) formatSequence(sequence, title string) string {
	if sequence == "" {
		return lipgloss.NewStyle().
			Foreground(mutedColor).
			Render(fmt.Sprintf("No %s available", strings.ToLower(title)))
	}

	titleStr := lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true).
		Render(title + ":")

	sequenceContent := sequenceStyle.
		Width(m.width*2/3 - 6).
		Render(sequence)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStr,
		"",
		sequenceContent,
	)
}

func (m model) formatSummary(record orf.Record) string {
	terminated := "runs to sequence end"
	if strings.HasSuffix(record.Protein, "*") {
		terminated = "stop codon"
	}
	lines := []string{
		fmt.Sprintf("start_pos:   %d", record.StartPos),
		fmt.Sprintf("stop_pos:    %d", record.StopPos),
		fmt.Sprintf("strand:      %d", record.Strand),
		fmt.Sprintf("frame:       %d", record.Frame),
		fmt.Sprintf("length_nt:   %d", len(record.Nucleotides)),
		fmt.Sprintf("length_aa:   %d", len(strings.TrimSuffix(record.Protein, "*"))),
		fmt.Sprintf("terminated:  %s", terminated),
	}
	return sequenceStyle.
		Width(m.width*2/3 - 6).
		Render(strings.Join(lines, "\n"))
}

func (m model) renderStatusBar() string {
	leftInfo := fmt.Sprintf("%d/%d ORFs", m.selectedIndex+1, m.totalRecords)
	centerInfo := fmt.Sprintf("Mode: %s", m.currentMode.String())
	rightInfo := "Press 'h' for help, 'q' to quit"

	totalUsed := len(leftInfo) + len(centerInfo) + len(rightInfo)
	spacing := m.width - totalUsed - 6

	var statusContent string
	if spacing > 0 {
		leftSpacing := spacing / 2
		rightSpacing := spacing - leftSpacing
		statusContent = fmt.Sprintf("%s%s%s%s%s",
			leftInfo,
			strings.Repeat(" ", leftSpacing),
			centerInfo,
			strings.Repeat(" ", rightSpacing),
			rightInfo,
		)
	} else {
		// fallback for narrow terminals
		statusContent = fmt.Sprintf("%s | %s", leftInfo, centerInfo)
	}

	return statusBarStyle.
		Width(m.width).
		Render(statusContent)
}

func (m model) renderHelpModal() string {
	helpContent := `ORF Browser - Help

Navigation:
  up/down, j/k  Navigate list
  /             Filter ORFs
  Enter         Select ORF

View Modes:
  1             Show protein
  2             Show nucleotides
  3             Show summary
  Tab           Cycle modes

General:
  h             Toggle this help
  q, Ctrl+C     Quit application

Current Mode: ` + m.currentMode.String() + `
Total ORFs: ` + fmt.Sprintf("%d", m.totalRecords) + `
`

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryColor).
		Padding(1, 2).
		Background(surfaceColor).
		Foreground(textColor).
		Width(60).
		Align(lipgloss.Center)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(helpContent),
	)
}

func loadRecords(path string) ([]orf.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []orf.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func main() {
	dbPath := flag.String("db", "orfs.json", "path to the scan output JSON")
	flag.Parse()

	records, err := loadRecords(*dbPath)
	if err != nil {
		log.Fatal(err)
	}

	p := tea.NewProgram(initialModel(records), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
