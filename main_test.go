package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-aid-matcher/models"
	"student-aid-matcher/service"
	"student-aid-matcher/sheets/sheetstest"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFixtures(t *testing.T) (students, difficulty, dir string) {
	t.Helper()
	dir = t.TempDir()
	students = filepath.Join(dir, "students.xlsx")
	difficulty = filepath.Join(dir, "monitoring.xlsx")
	sheetstest.WriteRoster(t, students,
		models.Student{Name: "张三", IDNumber: "123456789012345678", School: "第一中学"},
		models.Student{Name: "李四", IDNumber: "223456789012345678"},
	)
	// monitoring registers keep the identity number in column L
	sheetstest.WriteIDTable(t, difficulty, 11, "123456789012345678")
	return students, difficulty, dir
}

func TestCategoriesCommand(t *testing.T) {
	out, err := runCLI(t, "categories")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 10)
	assert.Equal(t, "脱贫户(继续享受政策)", lines[0])
}

func TestMatchCommandMasksIDs(t *testing.T) {
	students, difficulty, _ := writeFixtures(t)

	out, err := runCLI(t, "match", "-s", students, "-d", difficulty, "-c", string(models.AntiPovertyMonitoringRiskNotEliminated))
	require.NoError(t, err)
	assert.Contains(t, out, "张三")
	assert.Contains(t, out, "123****678")
	assert.NotContains(t, out, "123456789012345678")
	assert.NotContains(t, out, "李四")
	assert.Contains(t, out, "匹配人数: 1")
}

func TestMatchCommandJSONAndExport(t *testing.T) {
	students, difficulty, dir := writeFixtures(t)
	output := filepath.Join(dir, "out.xlsx")

	out, err := runCLI(t, "match", "--json", "-s", students, "-d", difficulty,
		"-c", string(models.AntiPovertyMonitoringRiskNotEliminated), "-o", output)
	require.NoError(t, err)
	assert.FileExists(t, output)

	var res models.Result[service.QueryOutcome]
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Success)
	require.Len(t, res.Data.Matches, 1)
	assert.Equal(t, "123456789012345678", res.Data.Matches[0].Student.IDNumber)
}

func TestStatsCommand(t *testing.T) {
	students, difficulty, _ := writeFixtures(t)

	out, err := runCLI(t, "stats", "--json", "-s", students, "-d", difficulty, "-c", string(models.UrbanMinimumLiving))
	// the single-sheet fixture has no second sheet for the urban layout
	require.Error(t, err)
	var failed models.Result[models.MatchStatistics]
	require.NoError(t, json.Unmarshal([]byte(out), &failed))
	assert.False(t, failed.Success)
	assert.NotEmpty(t, failed.Message)

	out, err = runCLI(t, "stats", "-s", students, "-d", difficulty, "-c", "未知类型")
	require.NoError(t, err)
	assert.Contains(t, out, "学生总数: 2")
	assert.Contains(t, out, "匹配人数: 0")
}

func TestExportCommand(t *testing.T) {
	students, difficulty, dir := writeFixtures(t)
	output := filepath.Join(dir, "result.csv")

	out, err := runCLI(t, "export", "-s", students, "-d", difficulty,
		"-c", string(models.AntiPovertyMonitoringRiskNotEliminated), "-o", output)
	require.NoError(t, err)
	assert.Equal(t, output, strings.TrimSpace(out))
	assert.FileExists(t, output)

	_, err = runCLI(t, "export", "-s", students, "-d", difficulty, "-c", string(models.LowIncomePopulation))
	assert.ErrorIs(t, err, service.ErrMissingSelection)
}

func TestValidateCommand(t *testing.T) {
	students, _, dir := writeFixtures(t)

	out, err := runCLI(t, "validate", students)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "students.xlsx\txlsx\t"))

	_, err = runCLI(t, "validate", filepath.Join(dir, "missing.xlsx"))
	assert.Error(t, err)
}

func TestMatchCommandRequiresSelections(t *testing.T) {
	_, err := runCLI(t, "match", "-c", "农村低保")
	assert.ErrorIs(t, err, service.ErrMissingSelection)
}
