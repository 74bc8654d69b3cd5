package memo

import (
	"log/slog"
	"maps"
	"strconv"
	"sync/atomic"

	"github.com/ardnew/packrat/log"
	"github.com/ardnew/packrat/seq"
)

var lastRule atomic.Uint64

// Rule identifies one memoizing wrapper. Table entries are keyed by rule and
// position, so wrappers sharing a root never see each other's results.
type Rule struct {
	name string
	id   uint64
}

func newRule(name string) Rule {
	id := lastRule.Add(1)
	if name == "" {
		name = "rule#" + strconv.FormatUint(id, 10)
	}

	return Rule{name: name, id: id}
}

// ID returns the process-unique rule identity.
func (r Rule) ID() uint64 { return r.id }

// Name returns the rule name used in statistics and logs.
func (r Rule) Name() string { return r.name }

func (r Rule) String() string { return r.name }

// Table is the memo storage reachable from a [Stateful] sequence.
type Table interface {
	// Lookup returns the result recorded for rule at key.
	Lookup(rule Rule, key seq.Key) (result any, ok bool)
	// Record stores result for rule at key unless an entry already exists.
	// It reports whether result was stored.
	Record(rule Rule, key seq.Key, result any) bool
	// Stats returns a snapshot of the table counters.
	Stats() Stats
}

// Carrier is implemented by sequences that carry a memo [Table].
type Carrier interface {
	Table() Table
}

// seedbed holds the in-progress results of left-recursive rules. Seeds are
// kept apart from recorded entries so that recorded entries stay write-once.
type seedbed interface {
	seed(rule Rule, key seq.Key) (any, bool)
	plant(rule Rule, key seq.Key, result any)
	grow(rule Rule, key seq.Key, result any)
	uproot(rule Rule, key seq.Key)
	// growing reports whether any rule has a seed planted at key.
	growing(key seq.Key) bool
}

// Stats counts memo table activity for one top-level parse.
type Stats struct {
	Rules   map[string]RuleStats `json:"rules,omitempty" yaml:"rules,omitempty"`
	Lookups int                  `json:"lookups"         yaml:"lookups"`
	Hits    int                  `json:"hits"            yaml:"hits"`
	Misses  int                  `json:"misses"          yaml:"misses"`
	Entries int                  `json:"entries"         yaml:"entries"`
	Growths int                  `json:"growths"         yaml:"growths"`
}

// RuleStats counts memo table activity for one rule. Counters are keyed by
// rule name; a second rule sharing a name is keyed "name#id".
type RuleStats struct {
	Hits    int `json:"hits"    yaml:"hits"`
	Misses  int `json:"misses"  yaml:"misses"`
	Growths int `json:"growths" yaml:"growths"`
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("lookups", s.Lookups),
		slog.Int("hits", s.Hits),
		slog.Int("misses", s.Misses),
		slog.Int("entries", s.Entries),
		slog.Int("growths", s.Growths),
	)
}

type entryKey struct {
	pos  seq.Key
	rule uint64
}

// table is the default [Table]. It is not safe for concurrent use.
type table struct {
	entries map[entryKey]any
	seeds   map[entryKey]any
	active  map[seq.Key]int   // planted seeds per position
	names   map[string]uint64 // rule id owning each stats name
	stats   Stats
	logger  log.Logger
	name    string
	tracing bool
}

func newTable(cfg config) *table {
	return &table{
		entries: make(map[entryKey]any),
		seeds:   make(map[entryKey]any),
		active:  make(map[seq.Key]int),
		names:   make(map[string]uint64),
		stats:   Stats{Rules: make(map[string]RuleStats)},
		logger:  cfg.logger,
		name:    cfg.name,
		tracing: cfg.logger.Logger != nil && cfg.logger.Level() <= log.LevelTrace,
	}
}

func (t *table) Lookup(rule Rule, key seq.Key) (any, bool) {
	v, ok := t.entries[entryKey{pos: key, rule: rule.id}]

	name := t.statsName(rule)
	rs := t.stats.Rules[name]
	t.stats.Lookups++

	if ok {
		t.stats.Hits++
		rs.Hits++
	} else {
		t.stats.Misses++
		rs.Misses++
	}

	t.stats.Rules[name] = rs

	if t.tracing {
		t.logger.Trace("memo lookup",
			slog.String("table", t.name),
			slog.String("rule", rule.name),
			slog.String("key", key.String()),
			slog.Bool("hit", ok),
		)
	}

	return v, ok
}

func (t *table) Record(rule Rule, key seq.Key, result any) bool {
	k := entryKey{pos: key, rule: rule.id}
	if _, exists := t.entries[k]; exists {
		return false
	}

	t.entries[k] = result
	t.stats.Entries++

	if t.tracing {
		t.logger.Trace("memo record",
			slog.String("table", t.name),
			slog.String("rule", rule.name),
			slog.String("key", key.String()),
		)
	}

	return true
}

// statsName returns the key of rule in [Stats.Rules].
func (t *table) statsName(rule Rule) string {
	id, ok := t.names[rule.name]
	if !ok {
		t.names[rule.name] = rule.id

		return rule.name
	}

	if id == rule.id {
		return rule.name
	}

	return rule.name + "#" + strconv.FormatUint(rule.id, 10)
}

func (t *table) Stats() Stats {
	s := t.stats
	s.Rules = maps.Clone(t.stats.Rules)

	return s
}

func (t *table) seed(rule Rule, key seq.Key) (any, bool) {
	v, ok := t.seeds[entryKey{pos: key, rule: rule.id}]

	return v, ok
}

func (t *table) plant(rule Rule, key seq.Key, result any) {
	t.seeds[entryKey{pos: key, rule: rule.id}] = result
	t.active[key]++
}

func (t *table) grow(rule Rule, key seq.Key, result any) {
	t.seeds[entryKey{pos: key, rule: rule.id}] = result

	name := t.statsName(rule)
	rs := t.stats.Rules[name]
	rs.Growths++
	t.stats.Rules[name] = rs
	t.stats.Growths++

	if t.tracing {
		t.logger.Trace("memo grow",
			slog.String("table", t.name),
			slog.String("rule", rule.name),
			slog.String("key", key.String()),
		)
	}
}

func (t *table) uproot(rule Rule, key seq.Key) {
	delete(t.seeds, entryKey{pos: key, rule: rule.id})

	t.active[key]--
	if t.active[key] <= 0 {
		delete(t.active, key)
	}
}

func (t *table) growing(key seq.Key) bool { return t.active[key] > 0 }
