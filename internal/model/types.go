// Package model defines shared data structures.
package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NeutralTone is the toneless syllable variant.
const NeutralTone = 5

// PhoneticUnit is one pinyin syllable split into prefix, ending and tone.
type PhoneticUnit struct {
	Prefix string
	Ending string
	Tone   int
}

// Syllable returns the toneless pinyin spelling.
func (u PhoneticUnit) Syllable() string {
	return u.Prefix + u.Ending
}

// Key returns the unit component value, e.g. "ma_3".
func (u PhoneticUnit) Key() string {
	return u.Prefix + u.Ending + "_" + strconv.Itoa(u.Tone)
}

func (u PhoneticUnit) String() string {
	return u.Key()
}

// DrillItem is the ordered unit sequence of one training round.
type DrillItem []PhoneticUnit

// Tones returns the tone of every unit in order.
func (d DrillItem) Tones() []int {
	tones := make([]int, len(d))
	for i, u := range d {
		tones[i] = u.Tone
	}
	return tones
}

// Keys joins the unit keys with spaces.
func (d DrillItem) Keys() string {
	parts := make([]string, len(d))
	for i, u := range d {
		parts[i] = u.Key()
	}
	return strings.Join(parts, " ")
}

// ComponentClass discriminates the kind of tracked component.
type ComponentClass int

// Component classes.
const (
	ClassPrefix ComponentClass = iota
	ClassEnding
	ClassTone
	ClassUnit
	ClassCombination
)

// ComponentClasses lists every class in display order.
var ComponentClasses = []ComponentClass{ClassPrefix, ClassEnding, ClassTone, ClassUnit, ClassCombination}

func (c ComponentClass) String() string {
	switch c {
	case ClassPrefix:
		return "prefix"
	case ClassEnding:
		return "ending"
	case ClassTone:
		return "tone"
	case ClassUnit:
		return "unit"
	case ClassCombination:
		return "combination"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// ParseComponentClass maps a class name back to its ComponentClass.
func ParseComponentClass(s string) (ComponentClass, error) {
	for _, c := range ComponentClasses {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown component class %q", s)
}

// ComponentKey identifies one tracked component.
type ComponentKey struct {
	Class ComponentClass
	Value string
}

func (k ComponentKey) String() string {
	return k.Class.String() + ":" + k.Value
}

// PrefixKey returns the key for a prefix value.
func PrefixKey(prefix string) ComponentKey {
	return ComponentKey{Class: ClassPrefix, Value: prefix}
}

// EndingKey returns the key for an ending value.
func EndingKey(ending string) ComponentKey {
	return ComponentKey{Class: ClassEnding, Value: ending}
}

// ToneKey returns the key for a tone.
func ToneKey(tone int) ComponentKey {
	return ComponentKey{Class: ClassTone, Value: strconv.Itoa(tone)}
}

// UnitKey returns the key for a whole unit.
func UnitKey(u PhoneticUnit) ComponentKey {
	return ComponentKey{Class: ClassUnit, Value: u.Key()}
}

// CombinationKey returns the key for a multi-unit sequence.
func CombinationKey(units []PhoneticUnit) ComponentKey {
	parts := make([]string, len(units))
	for i, u := range units {
		parts[i] = u.Key()
	}
	return ComponentKey{Class: ClassCombination, Value: strings.Join(parts, "+")}
}

// StatRecord stores attempt counts for one component.
type StatRecord struct {
	Key           ComponentKey
	Attempts      int
	Successes     int
	SuccessRate   float64
	LastTrainedAt time.Time
}

// FilterConfig is the set of components enabled for generation.
type FilterConfig struct {
	Prefixes []string
	Endings  []string
	Tones    []int
	Counts   []int
}

// Session is one answered drill item in the history.
type Session struct {
	ID      int64
	RunID   string
	Units   DrillItem
	Correct bool
	At      time.Time
}

// Config defines practice settings.
type Config struct {
	Filter        FilterConfig
	LexiconPath   string
	Audio         bool
	SpeechCommand string
	WeightFloor   float64
	ShowWeights   bool
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Class    string
	Search   string
	SortBy   string
	Desc     bool
	Sessions int
}
