package models

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDifficultyType(t *testing.T) {
	got, ok := ParseDifficultyType("农村低保")
	assert.True(t, ok)
	assert.Equal(t, RuralMinimumLiving, got)

	_, ok = ParseDifficultyType("不存在的类型")
	assert.False(t, ok)

	_, ok = ParseDifficultyType("")
	assert.False(t, ok)
}

func TestAllDifficultyTypes(t *testing.T) {
	all := AllDifficultyTypes()
	assert.Len(t, all, 10)

	seen := map[DifficultyType]bool{}
	for _, dt := range all {
		assert.True(t, dt.IsValid())
		assert.False(t, seen[dt], "duplicate %s", dt)
		seen[dt] = true
	}

	// callers get their own copy
	all[0] = "x"
	assert.Equal(t, PovertyAlleviatedContinuePolicy, AllDifficultyTypes()[0])
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	p := Paginate(items, 1, 2)
	assert.Equal(t, []int{1, 2}, p.Items)
	assert.Equal(t, 5, p.Total)
	assert.Equal(t, 3, p.TotalPages)

	p = Paginate(items, 3, 2)
	assert.Equal(t, []int{5}, p.Items)

	p = Paginate(items, 9, 2)
	assert.Empty(t, p.Items)
	assert.Equal(t, 9, p.Page)

	p = Paginate(items, 0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.PageSize)
	assert.Equal(t, []int{1}, p.Items)

	p = Paginate([]int(nil), 1, 20)
	assert.Empty(t, p.Items)
	assert.Equal(t, 0, p.TotalPages)
}

func TestPaginateHugeValues(t *testing.T) {
	items := []int{1, 2, 3}

	p := Paginate(items, 461168601842738792, 20)
	assert.Empty(t, p.Items)
	assert.Equal(t, 1, p.TotalPages)

	p = Paginate(items, math.MaxInt, math.MaxInt)
	assert.Empty(t, p.Items)

	p = Paginate(items, 1, math.MaxInt)
	assert.Equal(t, []int{1, 2, 3}, p.Items)
	assert.Equal(t, 1, p.TotalPages)
}

func TestResultEnvelope(t *testing.T) {
	ok := OK([]string{"a"})
	assert.True(t, ok.Success)
	assert.Empty(t, ok.Message)

	failed := Fail(3, errors.New("boom"))
	assert.False(t, failed.Success)
	assert.Equal(t, 3, failed.Data)
	assert.Equal(t, "boom", failed.Message)

	assert.Equal(t, "unknown error", Fail(0, nil).Message)
}
