package vergen

import (
	"slices"

	"go.inout.gg/vergen/internal/sliceutil"
)

// Key names a derived fact.
type Key string

const (
	KeyBuildTimestamp    Key = "BUILD_TIMESTAMP"
	KeyBuildDate         Key = "BUILD_DATE"
	KeySHA               Key = "SHA"
	KeySHAShort          Key = "SHA_SHORT"
	KeyCommitDate        Key = "COMMIT_DATE"
	KeyTargetTriple      Key = "TARGET_TRIPLE"
	KeySemver            Key = "SEMVER"
	KeySemverLightweight Key = "SEMVER_LIGHTWEIGHT"
)

type factKey struct {
	flag Flags
	key  Key
}

// factKeys is the flag-declaration order in which facts are derived and
// emitted.
//
//nolint:gochecknoglobals
var factKeys = []factKey{
	{BuildTimestamp, KeyBuildTimestamp},
	{BuildDate, KeyBuildDate},
	{SHA, KeySHA},
	{SHAShort, KeySHAShort},
	{CommitDate, KeyCommitDate},
	{TargetTriple, KeyTargetTriple},
	{Semver, KeySemver},
	{SemverLightweight, KeySemverLightweight},
}

//nolint:gochecknoglobals
var flagByKey = sliceutil.KeyBy(factKeys, func(fk factKey) Key { return fk.key })

// Flag returns the flag that selects k, or NoFlags for an unknown key.
func (k Key) Flag() Flags { return flagByKey[k].flag }

// EnvName returns the environment variable name k is exposed under.
func (k Key) EnvName() string { return "VERGEN_" + string(k) }

// Fact is a single piece of derived build provenance.
type Fact struct {
	Key   Key
	Value string
}

// Facts is an ordered set of facts, keyed uniquely by Key.
//
// The zero value is an empty set ready to use.
type Facts struct {
	items []Fact
}

// Get returns the value of k and whether it is present.
func (f Facts) Get(k Key) (string, bool) {
	i := slices.IndexFunc(f.items, func(fact Fact) bool { return fact.Key == k })
	if i < 0 {
		return "", false
	}

	return f.items[i].Value, true
}

// Keys returns the keys present in emission order.
func (f Facts) Keys() []Key {
	return sliceutil.Map(f.items, func(fact Fact) Key { return fact.Key })
}

// All returns a copy of the facts in emission order.
func (f Facts) All() []Fact { return slices.Clone(f.items) }

// Len returns the number of facts.
func (f Facts) Len() int { return len(f.items) }

// set inserts or replaces the value of k.
func (f *Facts) set(k Key, v string) {
	i := slices.IndexFunc(f.items, func(fact Fact) bool { return fact.Key == k })
	if i >= 0 {
		f.items[i].Value = v
		return
	}

	f.items = append(f.items, Fact{Key: k, Value: v})
}
