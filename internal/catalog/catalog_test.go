package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_HabitCount(t *testing.T) {
	c := Default()
	assert.Len(t, c.Habits, 11)
}

func TestDefault_ColumnsAreSequential(t *testing.T) {
	c := Default()
	for i, h := range c.Habits {
		assert.Equal(t, i+2, h.Column, "habit %s", h.Name)
	}
}

func TestDefault_DailyTargetExcludesJobApplications(t *testing.T) {
	c := Default()

	sum := 0
	for _, h := range c.Habits {
		if h.Name != "Job Applications" {
			sum += h.DefaultMin
		}
	}

	assert.Equal(t, 215, c.DailyTarget())
	assert.Equal(t, sum, c.DailyTarget())
}

func TestByName(t *testing.T) {
	c := Default()

	h, ok := c.ByName("Walking/Running")
	require.True(t, ok)
	assert.Equal(t, 45, h.DefaultMin)
	assert.Equal(t, 2, h.Column)

	_, ok = c.ByName("Meditation")
	assert.False(t, ok)
}

func TestNames_OrderMatchesCatalog(t *testing.T) {
	c := Default()
	names := c.Names()

	require.Len(t, names, 11)
	assert.Equal(t, "Walking/Running", names[0])
	assert.Equal(t, "Job Applications", names[10])
}

func TestResolveAlias_SingleHabit(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{"Walking/Running"}, c.ResolveAlias("walked"))
	assert.Equal(t, []string{"Walking/Running"}, c.ResolveAlias("JOG"))
	assert.Equal(t, []string{"Audiobooks/Reading"}, c.ResolveAlias("podcast"))
	assert.Equal(t, []string{"Utensils"}, c.ResolveAlias("  wash   dishes "))
}

func TestResolveAlias_EveryRegisteredAlias(t *testing.T) {
	c := Default()
	for _, h := range c.Habits {
		for _, a := range h.Aliases {
			// Compound aliases shadow single ones; skip shadowed entries.
			if _, compound := c.CompoundAliases[Normalize(a)]; compound {
				continue
			}
			assert.Equal(t, []string{h.Name}, c.ResolveAlias(a), "alias %q", a)
		}
	}
}

func TestResolveAlias_Compound(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{"Sandhi - Morning", "Sandhi - Evening"}, c.ResolveAlias("sandhi both"))
	assert.Equal(t, []string{"Sandhi - Morning", "Sandhi - Evening"}, c.ResolveAlias("Sandhi Both"))
	assert.Equal(t, []string{"Sandhi - Morning"}, c.ResolveAlias("sandhi"))
	assert.Equal(t, []string{"Cook Morning", "Utensils", "Clothes"}, c.ResolveAlias("household"))
	assert.Equal(t, []string{"Cook Morning", "Utensils", "Clothes"}, c.ResolveAlias("all household"))
}

func TestResolveAlias_CanonicalName(t *testing.T) {
	c := Default()
	assert.Equal(t, []string{"Daily Brief"}, c.ResolveAlias("daily brief"))
	assert.Nil(t, c.ResolveAlias("meditation"))
	assert.Nil(t, c.ResolveAlias(""))
}

func TestInit_RejectsDuplicateAliases(t *testing.T) {
	c := &Catalog{
		Habits: []Habit{
			{Name: "A", Column: 2, DefaultMin: 10, Aliases: []string{"x"}},
			{Name: "B", Column: 3, DefaultMin: 10, Aliases: []string{"X"}},
		},
		CompoundAliases: map[string][]string{},
	}
	err := c.init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alias")
}

func TestInit_RejectsUnknownCompoundReference(t *testing.T) {
	c := &Catalog{
		Habits: []Habit{
			{Name: "A", Column: 2, DefaultMin: 10, Aliases: []string{"a"}},
		},
		CompoundAliases: map[string][]string{"combo": {"A", "Missing"}},
	}
	err := c.init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "habits.yaml")
	content := `
habits:
  - name: Stretching
    column: 2
    default_min: 10
    aliases: [stretch, stretched]
  - name: Journaling
    column: 3
    default_min: 15
    aliases: [journal]
compound_aliases:
  wind down: [Stretching, Journaling]
excluded_from_target: Journaling
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, c.Habits, 2)
	assert.Equal(t, 10, c.DailyTarget())
	assert.Equal(t, []string{"Stretching", "Journaling"}, c.ResolveAlias("wind down"))
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Len(t, c.Habits, 11)
}
