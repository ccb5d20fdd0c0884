package gmm

import (
	"bufio"
	"fmt"
	"io/fs"
	"math"
	"path"
	"sort"
	"strconv"
	"strings"
)

// Loaders for the legacy ground-motion table layouts. Three on-disk formats
// survive from decades of hazard codes; each gets a dedicated adapter that
// converges on the common GroundMotionTable shape:
//
//   - Frankel-style: one file per period, period encoded in the filename,
//     fixed axis keys, one distance row per line with a leading key column.
//   - Atkinson-style: one file per model, a frequency header row naming the
//     period columns, magnitude marker lines separating distance blocks.
//   - Block-style (NGA-East): one file per model, explicit per-period block
//     labels, each block carrying its own magnitude header and distance rows.
//
// Frankel- and Atkinson-style files tabulate log10 ground motion against
// log10 distance; block-style files carry natural-log medians against linear
// distance (log-transformed on load).

// Axis keys of the legacy table families. Values are log10 distance and
// moment magnitude; they are fixed properties of the source datasets.
var (
	frankelRKeys = []float64{
		1.0, 1.1, 1.2, 1.3, 1.4, 1.5, 1.6, 1.7, 1.8, 1.9, 2.0, 2.1,
		2.2, 2.3, 2.4, 2.5, 2.6, 2.7, 2.8, 2.9, 3.0}

	frankelMKeys = []float64{
		4.4, 4.6, 4.8, 5.0, 5.2, 5.4, 5.6, 5.8, 6.0, 6.2, 6.4,
		6.6, 6.8, 7.0, 7.2, 7.4, 7.6, 7.8, 8.0, 8.2}

	atkinsonRKeys = []float64{
		-1.000, 0.000, 0.301, 0.699, 1.000, 1.176, 1.301, 1.398, 1.477, 1.602,
		1.699, 1.778, 1.845, 1.903, 1.954, 2.000, 2.041, 2.079, 2.176, 2.301,
		2.398, 2.477, 2.544, 2.602, 2.699}

	atkinsonMKeys = []float64{
		4.00, 4.25, 4.50, 4.75, 5.00, 5.25, 5.50, 5.75, 6.00,
		6.25, 6.50, 6.75, 7.00, 7.25, 7.50, 7.75, 8.00}

	pezeshkRKeys = []float64{
		0.000, 0.301, 0.699, 1.000, 1.176, 1.301, 1.477, 1.602, 1.699, 1.778,
		1.845, 1.903, 2.000, 2.079, 2.146, 2.255, 2.301, 2.398, 2.477, 2.602,
		2.699, 2.778, 2.845, 2.903, 3.000}

	pezeshkMKeys = []float64{
		4.50, 4.75, 5.00, 5.25, 5.50, 5.75, 6.00, 6.25,
		6.50, 6.75, 7.00, 7.25, 7.50, 7.75, 8.00}
)

// Frankel-style filenames, period encoded as t<sec>p<frac>; the k01l suffix
// marks the soft-rock (BC) dataset, k006 hard rock.
var (
	frankelSoftRockFiles = []string{
		"pgak01l.tbl", "t0p1k01l.tbl", "t0p2k01l.tbl", "t0p3k01l.tbl",
		"t0p5k01l.tbl", "t1p0k01l.tbl", "t2p0k01l.tbl"}

	frankelHardRockFiles = []string{
		"pgak006.tbl", "t0p1k006.tbl", "t0p2k006.tbl", "t0p3k006.tbl",
		"t0p5k006.tbl", "t1p0k006.tbl", "t2p0k006.tbl"}
)

// frankelFilenameImt decodes the period from a Frankel-style table filename:
// "t0p2k01l.tbl" → SA0P2, "pgak01l.tbl" → PGA.
func frankelFilenameImt(name string) (Imt, error) {
	if strings.HasPrefix(name, "pga") {
		return PGA, nil
	}
	if len(name) < 4 || name[0] != 't' || name[2] != 'p' {
		return 0, fmt.Errorf("unrecognized table filename %q", name)
	}
	t, err := strconv.ParseFloat(string(name[1])+"."+string(name[3]), 64)
	if err != nil {
		return 0, fmt.Errorf("unrecognized table filename %q: %w", name, err)
	}
	return FromPeriod(t)
}

// loadFrankelTables reads one table per file from dir into an Imt-keyed map
// of log10-distance tables.
func loadFrankelTables(fsys fs.FS, dir string, files []string) (map[Imt]GroundMotionTable, error) {
	tables := make(map[Imt]GroundMotionTable, len(files))
	for _, file := range files {
		imt, err := frankelFilenameImt(file)
		if err != nil {
			return nil, err
		}
		data, err := loadFrankelGrid(fsys, path.Join(dir, file))
		if err != nil {
			return nil, err
		}
		tables[imt] = newLogDistanceTable(data, frankelRKeys, frankelMKeys)
	}
	return tables, nil
}

// loadFrankelGrid parses one Frankel-style file: a single header line, then
// one line per distance key holding the key followed by per-magnitude
// values.
func loadFrankelGrid(fsys fs.FS, file string) ([][]float64, error) {
	lines, err := readLines(fsys, file)
	if err != nil {
		return nil, err
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("table %s: empty or missing header", file)
	}
	var data [][]float64
	for i, line := range lines[1:] {
		values, err := splitToFloats(line)
		if err != nil {
			return nil, fmt.Errorf("table %s row %d: %w", file, i+2, err)
		}
		if len(values) != len(frankelMKeys)+1 {
			return nil, fmt.Errorf("table %s row %d: expected %d columns, got %d",
				file, i+2, len(frankelMKeys)+1, len(values))
		}
		data = append(data, values[1:])
	}
	if len(data) != len(frankelRKeys) {
		return nil, fmt.Errorf("table %s: expected %d distance rows, got %d",
			file, len(frankelRKeys), len(data))
	}
	return data, nil
}

// loadAtkinsonTables parses an Atkinson-style file: two header lines, a
// frequency row naming the period columns, then per-magnitude blocks of
// distance rows. Returns one scaling table per Imt.
func loadAtkinsonTables(
	fsys fs.FS, file string, rKeys, mKeys []float64) (map[Imt]GroundMotionTable, error) {

	lines, err := readLines(fsys, file)
	if err != nil {
		return nil, err
	}
	if len(lines) < 4 {
		return nil, fmt.Errorf("table %s: truncated header", file)
	}

	freqs, err := splitToFloats(lines[2])
	if err != nil {
		return nil, fmt.Errorf("table %s frequency row: %w", file, err)
	}
	// Duplicate frequency columns appear in some sources; first one wins.
	var imts []Imt
	cols := make([]int, 0, len(freqs))
	seen := make(map[Imt]bool)
	for i, f := range freqs {
		imt, err := FromFrequency(f)
		if err != nil {
			return nil, fmt.Errorf("table %s frequency row: %w", file, err)
		}
		if seen[imt] {
			continue
		}
		seen[imt] = true
		imts = append(imts, imt)
		cols = append(cols, i)
	}

	grids := make(map[Imt][][]float64, len(imts))
	for _, imt := range imts {
		grid := make([][]float64, len(rKeys))
		for i := range grid {
			grid[i] = make([]float64, 0, len(mKeys))
		}
		grids[imt] = grid
	}

	rIndex := -1
	mCount := 0
	for n, line := range lines[3:] {
		values, err := splitToFloats(line)
		if err != nil {
			return nil, fmt.Errorf("table %s row %d: %w", file, n+4, err)
		}
		switch {
		case len(values) == 0:
			continue
		case len(values) == 1:
			// magnitude marker line starts the next distance block
			rIndex = -1
			mCount++
			continue
		}
		rIndex++
		if rIndex >= len(rKeys) {
			return nil, fmt.Errorf("table %s row %d: more than %d distance rows in block",
				file, n+4, len(rKeys))
		}
		for i, imt := range imts {
			grids[imt][rIndex] = append(grids[imt][rIndex], values[cols[i]+1])
		}
	}
	if mCount != len(mKeys) {
		return nil, fmt.Errorf("table %s: expected %d magnitude blocks, got %d",
			file, len(mKeys), mCount)
	}

	tables := make(map[Imt]GroundMotionTable, len(imts))
	for imt, grid := range grids {
		for i, row := range grid {
			if len(row) != len(mKeys) {
				return nil, fmt.Errorf("table %s: %s distance row %d has %d values, want %d",
					file, imt, i, len(row), len(mKeys))
			}
		}
		tables[imt] = newLogDistanceScalingTable(grid, rKeys, mKeys)
	}
	return tables, nil
}

// blockGrid is one per-period block of a block-style table file.
type blockGrid struct {
	rKeys []float64 // log10 distance
	mKeys []float64
	data  [][]float64
}

// loadBlockTables parses a block-style file. Each block is
//
//	IMT <id>
//	M <m1> <m2> ...
//	<r> <v> <v> ...
//
// with distances in km (log-transformed on load) and natural-log ordinates.
func loadBlockTables(fsys fs.FS, file string) (map[Imt]GroundMotionTable, error) {
	lines, err := readLines(fsys, file)
	if err != nil {
		return nil, err
	}

	tables := make(map[Imt]GroundMotionTable)
	var imt Imt
	var grid *blockGrid

	flush := func() error {
		if grid == nil {
			return nil
		}
		if len(grid.data) < 2 {
			return fmt.Errorf("table %s: block %s has %d distance rows, want ≥ 2",
				file, imt, len(grid.data))
		}
		if !sort.Float64sAreSorted(grid.rKeys) {
			return fmt.Errorf("table %s: block %s distance keys not ascending", file, imt)
		}
		tables[imt] = newLogDistanceTable(grid.data, grid.rKeys, grid.mKeys)
		grid = nil
		return nil
	}

	for n, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "IMT":
			if err := flush(); err != nil {
				return nil, err
			}
			if len(fields) != 2 {
				return nil, fmt.Errorf("table %s row %d: malformed block label", file, n+1)
			}
			imt, err = ParseImt(fields[1])
			if err != nil {
				return nil, fmt.Errorf("table %s row %d: %w", file, n+1, err)
			}
			grid = &blockGrid{}
		case "M":
			if grid == nil {
				return nil, fmt.Errorf("table %s row %d: magnitude header outside block", file, n+1)
			}
			grid.mKeys, err = parseFloats(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("table %s row %d: %w", file, n+1, err)
			}
		default:
			if grid == nil || grid.mKeys == nil {
				return nil, fmt.Errorf("table %s row %d: data row outside block", file, n+1)
			}
			values, err := parseFloats(fields)
			if err != nil {
				return nil, fmt.Errorf("table %s row %d: %w", file, n+1, err)
			}
			if len(values) != len(grid.mKeys)+1 {
				return nil, fmt.Errorf("table %s row %d: expected %d columns, got %d",
					file, n+1, len(grid.mKeys)+1, len(values))
			}
			grid.rKeys = append(grid.rKeys, math.Log10(values[0]))
			grid.data = append(grid.data, values[1:])
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("table %s: no blocks found", file)
	}
	return tables, nil
}

func readLines(fsys fs.FS, file string) ([]string, error) {
	f, err := fsys.Open(file)
	if err != nil {
		return nil, fmt.Errorf("open table %s: %w", file, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read table %s: %w", file, err)
	}
	return lines, nil
}

func splitToFloats(line string) ([]float64, error) {
	return parseFloats(strings.Fields(line))
}

func parseFloats(fields []string) ([]float64, error) {
	values := make([]float64, len(fields))
	for i, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", s, err)
		}
		values[i] = v
	}
	return values, nil
}
