package system

import (
	"strings"

	"planets-galaxy/internal/random"

	"github.com/agnivade/levenshtein"
)

const (
	nameAttempts    = 50
	minNameDistance = 2
	classicChance   = 0.25
)

var classicNames = []string{
	"Altair", "Vega", "Sirius", "Arcturus", "Capella", "Rigel", "Procyon",
	"Betelgeuse", "Aldebaran", "Spica", "Antares", "Pollux", "Fomalhaut",
	"Deneb", "Regulus", "Adhara", "Castor", "Gacrux", "Bellatrix", "Elnath",
	"Miaplacidus", "Alnilam", "Alnair", "Alioth", "Dubhe", "Mirfak", "Wezen",
	"Sargas", "Kaus", "Avior", "Menkalinan", "Atria", "Alhena", "Peacock",
	"Alsephina", "Mirzam", "Polaris", "Alphard", "Hamal", "Algieba", "Diphda",
	"Mizar", "Nunki", "Menkent", "Mirach", "Alpheratz", "Rasalhague", "Kochab",
	"Saiph", "Zubenelgenubi", "Enif", "Schedar", "Markab", "Unukalhai", "Tau",
}

var (
	onsets = []string{"b", "c", "d", "k", "l", "m", "n", "r", "s", "t", "v", "z", "th", "ph", "dr", "kr", "st"}
	nuclei = []string{"a", "e", "i", "o", "u", "ae", "io", "ya"}
	codas  = []string{"", "", "n", "r", "s", "x", "l"}
)

// NameRegistry hands out galaxy-unique system names. Candidates within edit
// distance 1 of a used name are rejected so names stay distinguishable.
type NameRegistry struct {
	used []string
	set  map[string]struct{}
}

func NewNameRegistry() *NameRegistry {
	return &NameRegistry{set: make(map[string]struct{})}
}

func (r *NameRegistry) Len() int {
	return len(r.used)
}

// Available reports whether name is unused and not too close to a used name
func (r *NameRegistry) Available(name string) bool {
	if _, ok := r.set[name]; ok {
		return false
	}
	lower := strings.ToLower(name)
	for _, u := range r.used {
		if levenshtein.ComputeDistance(lower, strings.ToLower(u)) < minNameDistance {
			return false
		}
	}
	return true
}

func (r *NameRegistry) Reserve(name string) {
	r.set[name] = struct{}{}
	r.used = append(r.used, name)
}

// Next draws and reserves a name; ok is false once the attempt budget is spent
func (r *NameRegistry) Next(rng *random.Source) (string, bool, error) {
	for attempt := 0; attempt < nameAttempts; attempt++ {
		candidate, err := candidateName(rng)
		if err != nil {
			return "", false, err
		}
		if r.Available(candidate) {
			r.Reserve(candidate)
			return candidate, true, nil
		}
	}
	return "", false, nil
}

func candidateName(rng *random.Source) (string, error) {
	if rng.NextBoolean(classicChance) {
		return random.Choice(rng, classicNames)
	}

	syllables, err := rng.NextInt(2, 3)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i := 0; i < syllables; i++ {
		for _, table := range [][]string{onsets, nuclei} {
			part, err := random.Choice(rng, table)
			if err != nil {
				return "", err
			}
			b.WriteString(part)
		}
	}
	coda, err := random.Choice(rng, codas)
	if err != nil {
		return "", err
	}
	b.WriteString(coda)

	name := b.String()
	return strings.ToUpper(name[:1]) + name[1:], nil
}
