package catalog

import (
	"fmt"
	"strings"
)

// Habit is one immutable catalog entry. Column is the zero-based sheet
// column slot where the habit's minutes are persisted (C = 2 .. M = 12).
type Habit struct {
	Name       string   `yaml:"name"`
	Column     int      `yaml:"column"`
	DefaultMin int      `yaml:"default_min"`
	Aliases    []string `yaml:"aliases"`
}

// Catalog holds the full habit table plus compound aliases. It is built once
// at startup and never mutated afterwards.
type Catalog struct {
	Habits []Habit

	// CompoundAliases maps a single alias string to the ordered list of
	// habit names it expands to.
	CompoundAliases map[string][]string

	// ExcludedFromTarget names the one habit that is tracked but left out
	// of the daily-target denominator.
	ExcludedFromTarget string

	byName  map[string]*Habit
	byAlias map[string]string
}

// Default returns the built-in catalog matching the tracking sheet.
func Default() *Catalog {
	c := &Catalog{
		Habits: []Habit{
			{Name: "Walking/Running", Column: 2, DefaultMin: 45,
				Aliases: []string{"walk", "walked", "walking", "run", "running", "ran", "jog", "jogged"}},
			{Name: "Sandhi - Morning", Column: 3, DefaultMin: 10,
				Aliases: []string{"sandhi morning", "sandhi am", "sandhi m"}},
			{Name: "Sandhi - Evening", Column: 4, DefaultMin: 5,
				Aliases: []string{"sandhi evening", "sandhi pm", "sandhi e", "sandhi ev"}},
			{Name: "Yoga", Column: 5, DefaultMin: 15,
				Aliases: []string{"yoga"}},
			{Name: "Daily Brief", Column: 6, DefaultMin: 20,
				Aliases: []string{"brief", "daily brief", "db"}},
			{Name: "Cook Morning", Column: 7, DefaultMin: 30,
				Aliases: []string{"cook", "cooked", "cooking", "cook morning", "breakfast"}},
			{Name: "Utensils", Column: 8, DefaultMin: 15,
				Aliases: []string{"utensils", "dishes", "vessels", "wash dishes"}},
			{Name: "Clothes", Column: 9, DefaultMin: 15,
				Aliases: []string{"clothes", "laundry", "washing", "wash clothes"}},
			{Name: "Upskilling/Professional", Column: 10, DefaultMin: 30,
				Aliases: []string{"upskilling", "professional", "upskill", "networking", "study"}},
			{Name: "Audiobooks/Reading", Column: 11, DefaultMin: 30,
				Aliases: []string{"read", "reading", "audiobook", "audiobooks", "book", "podcast"}},
			{Name: "Job Applications", Column: 12, DefaultMin: 15,
				Aliases: []string{"job", "jobs", "applications", "apply", "applied"}},
		},
		CompoundAliases: map[string][]string{
			"sandhi both":   {"Sandhi - Morning", "Sandhi - Evening"},
			"sandhi":        {"Sandhi - Morning"}, // bare "sandhi" defaults to morning
			"household":     {"Cook Morning", "Utensils", "Clothes"},
			"all household": {"Cook Morning", "Utensils", "Clothes"},
		},
		ExcludedFromTarget: "Job Applications",
	}
	if err := c.init(); err != nil {
		// The built-in table is covered by tests; a broken default is a bug.
		panic(err)
	}
	return c
}

// init builds the lookup indexes and checks catalog invariants.
func (c *Catalog) init() error {
	c.byName = make(map[string]*Habit, len(c.Habits))
	c.byAlias = make(map[string]string)

	for i := range c.Habits {
		h := &c.Habits[i]
		if h.Name == "" {
			return fmt.Errorf("habit %d has an empty name", i)
		}
		if h.DefaultMin <= 0 {
			return fmt.Errorf("habit %q has non-positive default minutes", h.Name)
		}
		if len(h.Aliases) == 0 {
			return fmt.Errorf("habit %q has no aliases", h.Name)
		}
		if _, dup := c.byName[h.Name]; dup {
			return fmt.Errorf("duplicate habit name %q", h.Name)
		}
		c.byName[h.Name] = h

		for _, a := range h.Aliases {
			key := Normalize(a)
			if key == "" {
				return fmt.Errorf("habit %q has an empty alias", h.Name)
			}
			if owner, dup := c.byAlias[key]; dup {
				return fmt.Errorf("alias %q claimed by both %q and %q", a, owner, h.Name)
			}
			c.byAlias[key] = h.Name
		}
	}

	for alias, names := range c.CompoundAliases {
		if len(names) == 0 {
			return fmt.Errorf("compound alias %q expands to nothing", alias)
		}
		for _, name := range names {
			if _, ok := c.byName[name]; !ok {
				return fmt.Errorf("compound alias %q references unknown habit %q", alias, name)
			}
		}
	}

	if c.ExcludedFromTarget != "" {
		if _, ok := c.byName[c.ExcludedFromTarget]; !ok {
			return fmt.Errorf("excluded habit %q is not in the catalog", c.ExcludedFromTarget)
		}
	}

	return nil
}

// Normalize lowercases an alias and collapses internal whitespace so that
// lookups are case- and spacing-insensitive.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// ByName returns the habit with the given canonical name.
func (c *Catalog) ByName(name string) (Habit, bool) {
	h, ok := c.byName[name]
	if !ok {
		return Habit{}, false
	}
	return *h, true
}

// Names returns all habit names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Habits))
	for i, h := range c.Habits {
		names[i] = h.Name
	}
	return names
}

// ResolveAlias maps free text to the habit names it refers to. Compound
// aliases win over single-habit aliases; the canonical name itself also
// resolves. The returned slice preserves the configured expansion order.
func (c *Catalog) ResolveAlias(text string) []string {
	key := Normalize(text)
	if key == "" {
		return nil
	}
	if names, ok := c.CompoundAliases[key]; ok {
		out := make([]string, len(names))
		copy(out, names)
		return out
	}
	if name, ok := c.byAlias[key]; ok {
		return []string{name}
	}
	for _, h := range c.Habits {
		if Normalize(h.Name) == key {
			return []string{h.Name}
		}
	}
	return nil
}

// DailyTarget is the fixed completion-percentage denominator: the sum of all
// default durations except the excluded habit.
func (c *Catalog) DailyTarget() int {
	total := 0
	for _, h := range c.Habits {
		if h.Name == c.ExcludedFromTarget {
			continue
		}
		total += h.DefaultMin
	}
	return total
}
