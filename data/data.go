//Package data reads LAMMPS data (topology) files. A data file starts with
//a free title line and a header declaring counts ("1200 atoms", "8 atom
//types", ...) and box bounds ("0.0 42.0 xlo xhi"); after that come named
//sections (Masses, Atoms, Bonds, the force-field Coeffs tables, ...), each
//introduced by its section-name line and running to the next section or the
//end of the file. Known sections get typed column schemas; anything else
//falls back to a generic first-column-integer, rest-float layout. Values
//that fail their declared type become NaN placeholders rather than errors,
//so one corrupt line never loses the whole topology.
package data

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	lammps "github.com/andersle/lammps-tools"
)

//header count phrases, longest first so e.g. "angle types" wins over
//"angles" when both could match
var countKeys = []string{
	"improper types",
	"dihedral types",
	"angle types",
	"bond types",
	"atom types",
	"impropers",
	"dihedrals",
	"angles",
	"bonds",
	"atoms",
}

//the section names a data file can contain
var sectionNames = []string{
	"Masses",
	"Pair Coeffs",
	"Bond Coeffs",
	"Angle Coeffs",
	"Dihedral Coeffs",
	"Improper Coeffs",
	"Nonbond Coeffs",
	"BondBond Coeffs",
	"BondAngle Coeffs",
	"MiddleBondTorsion Coeffs",
	"EndBondTorsion Coeffs",
	"AngleTorsion Coeffs",
	"AngleAngleTorsion Coeffs",
	"BondBond13 Coeffs",
	"AngleAngle Coeffs",
	"Atoms",
	"Velocities",
	"Bonds",
	"Angles",
	"Dihedrals",
	"Impropers",
}

//typed column schemas for the sections whose layout is fixed
var schemas = map[string][]lammps.Kind{
	"atoms":      {lammps.Int, lammps.Int, lammps.Int, lammps.Float, lammps.Float, lammps.Float, lammps.Float, lammps.Int, lammps.Int, lammps.Int},
	"velocities": {lammps.Int, lammps.Float, lammps.Float, lammps.Float},
	"bonds":      {lammps.Int, lammps.Int, lammps.Int, lammps.Int},
	"angles":     {lammps.Int, lammps.Int, lammps.Int, lammps.Int, lammps.Int},
	"dihedrals":  {lammps.Int, lammps.Int, lammps.Int, lammps.Int, lammps.Int, lammps.Int},
	"impropers":  {lammps.Int, lammps.Int, lammps.Int, lammps.Int, lammps.Int, lammps.Int},
}

// Section is one named block of a data file. Rows hold the parsed values as
// float64, with NaN for anything that failed its declared kind; Kinds
// records the schema the values were parsed under.
type Section struct {
	Name  string
	Kinds []lammps.Kind
	Rows  [][]float64
}

// Topology is a parsed data file. It is filled once by Read and not
// modified afterwards.
type Topology struct {
	Counts   map[string]int //header counts, keyed by the phrase ("atoms", "bond types")
	Box      *lammps.Box
	Sections map[string]*Section //keyed by lowercased, underscored name ("pair_coeffs")
	order    []string
}

// Section returns the named section (lowercased, underscored key), or nil.
func (t *Topology) Section(name string) *Section {
	return t.Sections[name]
}

// SectionNames returns the section keys in file order.
func (t *Topology) SectionNames() []string {
	return append([]string(nil), t.order...)
}

// Count returns the header count for the given phrase, 0 if absent.
func (t *Topology) Count(key string) int {
	return t.Counts[key]
}

// Read parses the named data file. A file that cannot be opened is a fatal
// error; in-file anomalies degrade to NaN values or missing sections.
func Read(name string) (*Topology, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadFrom(f)
}

// ReadFrom parses a data file from an arbitrary stream.
func ReadFrom(r io.Reader) (*Topology, error) {
	t := &Topology{
		Counts:   make(map[string]int),
		Sections: make(map[string]*Section),
	}
	h := bufio.NewReader(r)
	first := true
	var cur *Section
	for {
		line, err := h.ReadString('\n')
		if len(line) > 0 && !first {
			cur = t.consume(line, cur)
		}
		first = false //the first line is the title, always skipped
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			break
		}
	}
	return t, nil
}

func (t *Topology) consume(line string, cur *Section) *Section {
	strip := strings.TrimSpace(line)
	if i := strings.IndexByte(strip, '#'); i >= 0 { //strip trailing comments
		strip = strings.TrimSpace(strip[:i])
	}
	if strip == "" {
		return cur
	}
	if cur == nil {
		t.lookForCount(strip)
		t.lookForBox(strip)
	}
	if name, ok := lookForSection(strip); ok {
		key := strings.ToLower(strings.ReplaceAll(name, " ", "_"))
		sec, exists := t.Sections[key]
		if !exists {
			sec = &Section{Name: name}
			if kinds, ok := schemas[key]; ok {
				sec.Kinds = kinds
			}
			t.Sections[key] = sec
			t.order = append(t.order, key)
		}
		return sec
	}
	if cur != nil {
		cur.addRow(strip)
	}
	return cur
}

func (t *Topology) lookForCount(line string) {
	for _, key := range countKeys {
		if !strings.Contains(line, key) {
			continue
		}
		n, err := strconv.Atoi(strings.Fields(line)[0])
		if err == nil {
			t.Counts[key] = n
		}
		return
	}
}

func (t *Topology) lookForBox(line string) {
	for dim, name := range [...]string{"xlo", "ylo", "zlo"} {
		if !strings.Contains(line, name) {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 2 {
			return
		}
		lo, err1 := strconv.ParseFloat(f[0], 64)
		hi, err2 := strconv.ParseFloat(f[1], 64)
		if err1 != nil || err2 != nil {
			return
		}
		if t.Box == nil {
			t.Box = new(lammps.Box)
		}
		t.Box.SetBounds(dim, lo, hi)
		return
	}
}

func lookForSection(line string) (string, bool) {
	for _, name := range sectionNames {
		if strings.HasPrefix(line, name) {
			return name, true
		}
	}
	return "", false
}

// addRow parses one data line under the section's schema. Unknown sections
// get a generic schema from their first row: one integer, the rest floats.
func (s *Section) addRow(line string) {
	toks := strings.Fields(line)
	if s.Kinds == nil {
		s.Kinds = make([]lammps.Kind, len(toks))
		for i := range s.Kinds {
			if i > 0 {
				s.Kinds[i] = lammps.Float
			}
		}
	}
	n := len(toks)
	if len(s.Kinds) < n {
		n = len(s.Kinds)
	}
	row := make([]float64, n)
	for i := 0; i < n; i++ {
		row[i] = parseAs(toks[i], s.Kinds[i])
	}
	s.Rows = append(s.Rows, row)
}

func parseAs(tok string, k lammps.Kind) float64 {
	switch k {
	case lammps.Int:
		v, err := strconv.Atoi(tok)
		if err != nil {
			return math.NaN()
		}
		return float64(v)
	default:
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return math.NaN()
		}
		return v
	}
}

//the count/section pairs that should agree in a complete topology
var consistency = [][2]string{
	{"atoms", "atoms"},
	{"atoms", "velocities"},
	{"atom types", "masses"},
	{"atom types", "pair_coeffs"},
	{"bonds", "bonds"},
	{"bond types", "bond_coeffs"},
	{"angles", "angles"},
	{"angle types", "angle_coeffs"},
	{"dihedrals", "dihedrals"},
	{"dihedral types", "dihedral_coeffs"},
	{"impropers", "impropers"},
	{"improper types", "improper_coeffs"},
}

// Consistency compares every declared header count against the length of
// the section it governs and returns one message per pair present in the
// file. Disagreements are reported, never corrected.
func (t *Topology) Consistency() []string {
	var msgs []string
	for _, pair := range consistency {
		n, haveCount := t.Counts[pair[0]]
		sec := t.Sections[pair[1]]
		if !haveCount || sec == nil {
			continue
		}
		if n != len(sec.Rows) {
			msgs = append(msgs, fmt.Sprintf("** NOT consistent: %d %s != %d %s rows **", n, pair[0], len(sec.Rows), pair[1]))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s == %s", pair[0], pair[1]))
		}
	}
	return msgs
}

// Molecule groups the atoms sharing one molecule id.
type Molecule struct {
	Atoms   []int
	Types   []int
	Charges []float64
}

// Charge returns the total charge of the molecule.
func (m *Molecule) Charge() float64 {
	var q float64
	for _, c := range m.Charges {
		q += c
	}
	return q
}

// Molecules groups the Atoms section by molecule id. It returns nil if the
// file had no Atoms section.
func (t *Topology) Molecules() map[int]*Molecule {
	atoms := t.Sections["atoms"]
	if atoms == nil {
		return nil
	}
	mols := make(map[int]*Molecule)
	for _, row := range atoms.Rows {
		if len(row) < 4 {
			continue
		}
		id, mol, typ, q := int(row[0]), int(row[1]), int(row[2]), row[3]
		m, ok := mols[mol]
		if !ok {
			m = new(Molecule)
			mols[mol] = m
		}
		m.Atoms = append(m.Atoms, id)
		m.Types = append(m.Types, typ)
		m.Charges = append(m.Charges, q)
	}
	return mols
}

// GuessNames guesses an element name for every atom type from the Masses
// section, by nearest standard atomic weight. It returns nil if the file
// had no Masses section.
func (t *Topology) GuessNames() map[int]string {
	masses := t.Sections["masses"]
	if masses == nil {
		return nil
	}
	names := make(map[int]string)
	for _, row := range masses.Rows {
		if len(row) < 2 || math.IsNaN(row[0]) || math.IsNaN(row[1]) {
			continue
		}
		names[int(row[0])] = lammps.NearestElement(row[1])
	}
	return names
}

// sortedAtomIDs returns the Atoms rows indexed by atom id, plus the sorted
// ids, so output formats can emit atoms in id order.
func (t *Topology) sortedAtomIDs() (map[int][]float64, []int) {
	atoms := t.Sections["atoms"]
	if atoms == nil {
		return nil, nil
	}
	table := make(map[int][]float64, len(atoms.Rows))
	for _, row := range atoms.Rows {
		if len(row) < 7 || math.IsNaN(row[0]) {
			continue
		}
		table[int(row[0])] = row
	}
	ids := make([]int, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return table, ids
}
