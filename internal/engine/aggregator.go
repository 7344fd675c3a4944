package engine

import (
	"math"
	"sort"
	"strconv"

	"techcensus/internal/models"
)

// groupKey orders numerically first, then by name. Name dimensions leave
// num at zero; code dimensions leave str empty.
type groupKey struct {
	num int64
	str string
}

func (a groupKey) less(b groupKey) bool {
	if a.num != b.num {
		return a.num < b.num
	}
	return a.str < b.str
}

// unknownCode sorts unmapped codes after every mapped one and folds them
// into a single bucket.
const unknownCode = math.MaxInt64

type dimension struct {
	key   func(ds *Dataset, row int) groupKey
	label func(k groupKey) string
}

func nameLabel(k groupKey) string { return k.str }

func codeDimension(table map[int32]string, column func(ds *Dataset) []int32) dimension {
	return dimension{
		key: func(ds *Dataset, row int) groupKey {
			code := column(ds)[row]
			if _, ok := table[code]; !ok {
				return groupKey{num: unknownCode}
			}
			return groupKey{num: int64(code)}
		},
		label: func(k groupKey) string {
			if k.num == unknownCode {
				return UnknownLabel
			}
			return label(table, int32(k.num))
		},
	}
}

var (
	byRegion = dimension{
		key:   func(ds *Dataset, i int) groupKey { return groupKey{str: ds.regionDict[ds.regionIDs[i]]} },
		label: nameLabel,
	}
	byStateName = dimension{
		key:   func(ds *Dataset, i int) groupKey { return groupKey{str: ds.stateNames[ds.stateIDs[i]]} },
		label: nameLabel,
	}
	byStateCode = dimension{
		key:   func(ds *Dataset, i int) groupKey { return groupKey{str: ds.stateDict[ds.stateIDs[i]]} },
		label: nameLabel,
	}
	byCourse = dimension{
		key:   func(ds *Dataset, i int) groupKey { return groupKey{str: ds.courseDict[ds.courseIDs[i]]} },
		label: nameLabel,
	}
	byYear = dimension{
		key:   func(ds *Dataset, i int) groupKey { return groupKey{num: int64(ds.years[i])} },
		label: func(k groupKey) string { return strconv.FormatInt(k.num, 10) },
	}
	byDependency = codeDimension(dependencyLabels, func(ds *Dataset) []int32 { return ds.deps })
	byLocation   = codeDimension(locationLabels, func(ds *Dataset) []int32 { return ds.locations })
)

type metric func(ds *Dataset, row int) int64

func countRows(*Dataset, int) int64 { return 1 }

func enrollment(ds *Dataset, i int) int64 { return ds.enrollments[i] }

func integratedCourses(ds *Dataset, i int) int64 { return ds.integrated[i] }

func subsequentCourses(ds *Dataset, i int) int64 { return ds.subsequent[i] }

type group struct {
	keys   [2]groupKey
	values [2]int64
}

func lessKeys(a, b [2]groupKey) bool {
	if a[0] != b[0] {
		return a[0].less(b[0])
	}
	return a[1].less(b[1])
}

// aggregate groups rows by up to two dimensions and sums up to two metrics.
// Groups come back sorted by key.
func aggregate(ds *Dataset, rows []int, dims []dimension, metrics ...metric) []group {
	index := make(map[[2]groupKey]int)
	groups := make([]group, 0)

	for _, r := range rows {
		var k [2]groupKey
		for d, dim := range dims {
			k[d] = dim.key(ds, r)
		}
		gi, ok := index[k]
		if !ok {
			gi = len(groups)
			index[k] = gi
			groups = append(groups, group{keys: k})
		}
		for m, f := range metrics {
			groups[gi].values[m] += f(ds, r)
		}
	}

	sort.Slice(groups, func(i, j int) bool { return lessKeys(groups[i].keys, groups[j].keys) })
	return groups
}

func toRows(groups []group, dims []dimension) []models.Row {
	out := make([]models.Row, 0, len(groups))
	for _, g := range groups {
		row := models.Row{Category: dims[0].label(g.keys[0]), Value: g.values[0]}
		if len(dims) > 1 {
			row.Series = dims[1].label(g.keys[1])
		}
		out = append(out, row)
	}
	return out
}

// topN keeps the n largest (or smallest) rows. Ties keep their key order.
func topN(rows []models.Row, n int, descending bool) []models.Row {
	sort.SliceStable(rows, func(i, j int) bool {
		if descending {
			return rows[i].Value > rows[j].Value
		}
		return rows[i].Value < rows[j].Value
	})
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// topPerGroup orders two-key groups by first key, then by value descending,
// and keeps the first n of each first key.
func topPerGroup(groups []group, n int) []group {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].keys[0] != groups[j].keys[0] {
			return groups[i].keys[0].less(groups[j].keys[0])
		}
		return groups[i].values[0] > groups[j].values[0]
	})

	out := make([]group, 0, len(groups))
	seen := 0
	for i, g := range groups {
		if i == 0 || g.keys[0] != groups[i-1].keys[0] {
			seen = 0
		}
		if seen < n {
			out = append(out, g)
		}
		seen++
	}
	return out
}

// melt turns each two-metric group into two long rows, all rows of the first
// metric before the second.
func melt(groups []group, dim dimension, names [2]string) []models.Row {
	out := make([]models.Row, 0, 2*len(groups))
	for m, name := range names {
		for _, g := range groups {
			out = append(out, models.Row{
				Category: dim.label(g.keys[0]),
				Series:   name,
				Value:    g.values[m],
			})
		}
	}
	return out
}

func withPercent(rows []models.Row) []models.Row {
	var total int64
	for _, r := range rows {
		total += r.Value
	}
	if total == 0 {
		return rows
	}
	for i := range rows {
		p := float64(rows[i].Value) / float64(total) * 100
		rows[i].Percent = &p
	}
	return rows
}
