package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/hpn/studyhub/internal/study"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// maxCellWidth wraps long cells so tables stay readable in a terminal.
const maxCellWidth = 60

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			WidthMax:    maxCellWidth,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// RenderQuiz renders questions with lettered options; the correct one is starred.
func RenderQuiz(q study.Quiz) string {
	rows := make([][]string, 0, len(q.Questions))
	for i, question := range q.Questions {
		opts := make([]string, 0, len(question.Options))
		for j, opt := range question.Options {
			mark := " "
			if j == question.CorrectAnswer {
				mark = "*"
			}
			opts = append(opts, fmt.Sprintf("%s %c) %s", mark, 'A'+j, opt))
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			question.Question,
			strings.Join(opts, "\n"),
			question.Explanation,
		})
	}
	return renderTable([]string{"#", "Question", "Options", "Explanation"}, rows, []columnAlignment{alignRight})
}

// RenderFlashcards renders front/back pairs.
func RenderFlashcards(f study.Flashcards) string {
	rows := make([][]string, 0, len(f.Cards))
	for i, c := range f.Cards {
		rows = append(rows, []string{strconv.Itoa(i + 1), c.Front, c.Back})
	}
	return renderTable([]string{"#", "Front", "Back"}, rows, []columnAlignment{alignRight})
}

// RenderGlossary renders term/definition pairs.
func RenderGlossary(entries []study.GlossaryEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Term, e.Definition})
	}
	return renderTable([]string{"Term", "Definition"}, rows, nil)
}

// RenderAnalysis renders the document statistics, formulas and citations.
func RenderAnalysis(a study.Analysis) string {
	var b strings.Builder

	b.WriteString(renderTable(
		[]string{"Metric", "Value"},
		[][]string{
			{"Word count", strconv.Itoa(a.WordCount)},
			{"Reading ease", strconv.FormatFloat(a.ReadingEase, 'f', 2, 64)},
			{"Recommended duration", fmt.Sprintf("%ds", a.RecommendedDuration)},
			{"Formulas", strconv.Itoa(len(a.Formulas))},
			{"Citations", strconv.Itoa(len(a.Citations))},
		},
		[]columnAlignment{alignLeft, alignRight},
	))

	if len(a.Formulas) > 0 {
		rows := make([][]string, 0, len(a.Formulas))
		for _, f := range a.Formulas {
			rows = append(rows, []string{f})
		}
		b.WriteString("\n")
		b.WriteString(renderTable([]string{"Formula"}, rows, nil))
	}

	if len(a.Citations) > 0 {
		rows := make([][]string, 0, len(a.Citations))
		for _, c := range a.Citations {
			rows = append(rows, []string{c.Title, c.Link})
		}
		b.WriteString("\n")
		b.WriteString(renderTable([]string{"Citation", "Link"}, rows, nil))
	}

	return b.String()
}
