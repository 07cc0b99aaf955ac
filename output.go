package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"student-aid-matcher/matcher"
	"student-aid-matcher/models"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeResult prints the tagged envelope for data and hands back opErr so
// the process still exits non-zero on failure.
func writeResult[T any](cmd *cobra.Command, data T, opErr error) error {
	res := models.OK(data)
	if opErr != nil {
		res = models.Fail(data, opErr)
	}
	return errors.Join(writeJSON(cmd.OutOrStdout(), res), opErr)
}

// renderMatches draws the result table with masked identity numbers.
func renderMatches(matches []models.MatchResult) string {
	if len(matches) == 0 {
		return "no matching students"
	}
	rows := make([][]string, len(matches))
	for i, m := range matcher.MaskMatches(matches) {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			m.Student.Name,
			m.Student.IDNumber,
			m.Student.School,
			m.Student.Grade,
			m.Student.Class,
			string(m.Record.DifficultyType),
		}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("序号", "姓名", "身份证号", "学校", "年级", "班级", "困难类型").
		Rows(rows...)
	return t.Render()
}

func renderStatistics(stats models.MatchStatistics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "学生总数: %d\n", stats.TotalStudents)
	fmt.Fprintf(&b, "匹配人数: %d", stats.TotalMatches)
	// keep the category dropdown order
	for _, dt := range models.AllDifficultyTypes() {
		if n, ok := stats.DifficultyTypeCounts[dt]; ok {
			fmt.Fprintf(&b, "\n  %s: %d", dt, n)
		}
	}
	return b.String()
}
