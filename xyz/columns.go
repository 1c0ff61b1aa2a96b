package xyz

import (
	"fmt"
	"strconv"
	"strings"

	traj "github.com/atomvista/gotraj"
)

//column describes one field group of an atom line, as declared by the
//extended-XYZ Properties descriptor.
type column struct {
	name  string
	kind  byte //'S' string, 'R' real, 'I' integer, 'L' logical
	count int
}

//the plain-XYZ layout: a symbol and three coordinates
var defaultColumns = []column{{"species", 'S', 1}, {"pos", 'R', 3}}

func columnsFrom(md traj.Metadata) []column {
	v, ok := md.Get("Properties")
	if !ok {
		return defaultColumns
	}
	if cols := parseColumns(v.String()); cols != nil {
		return cols
	}
	return defaultColumns
}

//parseColumns parses "name:kind:count" triples, e.g.
//"species:S:1:pos:R:3:force:R:3". Descriptors that do not lead with a
//single species column and three coordinates are rejected, falling back
//to the plain layout.
func parseColumns(desc string) []column {
	parts := strings.Split(desc, ":")
	if len(parts) < 6 || len(parts)%3 != 0 {
		return nil
	}
	cols := make([]column, 0, len(parts)/3)
	for i := 0; i < len(parts); i += 3 {
		kind := parts[i+1]
		n, err := strconv.Atoi(parts[i+2])
		if err != nil || n < 1 || len(kind) != 1 {
			return nil
		}
		cols = append(cols, column{name: parts[i], kind: kind[0], count: n})
	}
	if cols[0].kind != 'S' || cols[0].count != 1 || cols[1].kind != 'R' || cols[1].count != 3 {
		return nil
	}
	return cols
}

//parseSite parses one atom line against the column layout. Declared
//numeric columns beyond the coordinates become per-site properties; a
//string column named label overrides the site label; logical and other
//string columns are skipped. Extra undeclared fields are ignored.
func parseSite(line []byte, cols []column) (traj.Site, error) {
	fields := strings.Fields(string(line))
	var site traj.Site
	need := 0
	for _, c := range cols {
		need += c.count
	}
	if len(fields) < need {
		return site, fmt.Errorf("%d fields, want %d", len(fields), need)
	}
	at := 0
	for ci, c := range cols {
		f := fields[at : at+c.count]
		at += c.count
		switch {
		case ci == 0:
			site.Species = canonicalSpecies(f[0])
		case ci == 1:
			for i := 0; i < 3; i++ {
				x, err := strconv.ParseFloat(f[i], 64)
				if err != nil {
					return site, fmt.Errorf("coordinate %q: %v", f[i], err)
				}
				site.Xyz[i] = x
			}
		case c.kind == 'S' && c.name == "label":
			site.Label = f[0]
		case c.kind == 'R' || c.kind == 'I':
			for i := 0; i < c.count; i++ {
				x, err := strconv.ParseFloat(f[i], 64)
				if err != nil {
					return site, fmt.Errorf("property %s %q: %v", c.name, f[i], err)
				}
				key := c.name
				if c.count > 1 {
					key = fmt.Sprintf("%s_%d", c.name, i)
				}
				if site.Properties == nil {
					site.Properties = make(map[string]float64, c.count)
				}
				site.Properties[key] = x
			}
		}
	}
	if site.Label == "" {
		site.Label = site.Species
	}
	return site, nil
}

//canonicalSpecies maps an atomic number to its symbol and leaves symbols
//as written.
func canonicalSpecies(s string) string {
	if z, err := strconv.Atoi(s); err == nil {
		return traj.SymbolFromNumber(z)
	}
	return s
}
