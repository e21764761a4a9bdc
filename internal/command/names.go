package command

import (
	"strconv"
	"strings"

	"harshagw/textanalysis/internal/config"
	"harshagw/textanalysis/internal/host"
)

// namer hands out names for generated variables. A name is the source
// variable and the suffix joined by "_". Unless overwriting, a name in use
// gets a counter appended until it is free.
type namer struct {
	taken     map[string]bool
	overwrite bool
	created   []string
}

func newNamer(vars []host.Variable, overwrite bool) *namer {
	n := &namer{taken: make(map[string]bool, len(vars)), overwrite: overwrite}
	for _, v := range vars {
		n.taken[strings.ToLower(v.Name)] = true
	}
	return n
}

func (n *namer) name(variable, suffix string) (string, error) {
	base := variable
	if suffix != "" {
		base += "_" + suffix
	}
	name := base
	for digits := 1; !n.overwrite && n.taken[strings.ToLower(name)]; digits++ {
		name = base + strconv.Itoa(digits)
	}
	if !host.ValidName(name) {
		return "", config.Errorf("generated variable name %q is not valid", name)
	}
	n.taken[strings.ToLower(name)] = true
	n.created = append(n.created, name)
	return name, nil
}
