package engine

import (
	"sort"

	"techcensus/internal/models"

	"golang.org/x/exp/maps"
)

// Record is one row of the census file.
type Record struct {
	Region            string
	StateCode         string
	StateName         string
	School            string
	Dependency        int32
	Location          int32
	Year              int32
	Course            string
	Enrollment        int64
	IntegratedCourses int64
	SubsequentCourses int64
}

// Dataset holds the records in Struct-of-Arrays format. It has no mutators:
// build it with NewDataset or Load and share it freely.
type Dataset struct {
	// Data Columns (Flat Arrays)
	enrollments []int64
	integrated  []int64
	subsequent  []int64
	years       []int32
	deps        []int32
	locations   []int32

	// Dictionary Encoded IDs (0..N)
	regionIDs []int32
	stateIDs  []int32
	courseIDs []int32
	schoolIDs []int32

	// Dictionaries (ID -> String)
	regionDict []string
	stateDict  []string
	stateNames []string // parallel to stateDict
	courseDict []string
	schoolDict []string
}

type dict struct {
	ids  map[string]int32
	list []string
}

func newDict() *dict { return &dict{ids: make(map[string]int32)} }

func (d *dict) id(s string) int32 {
	if id, ok := d.ids[s]; ok {
		return id
	}
	id := int32(len(d.list))
	d.list = append(d.list, s)
	d.ids[s] = id
	return id
}

// NewDataset column-encodes records. The first name seen for a state code wins.
func NewDataset(records []Record) *Dataset {
	n := len(records)
	ds := &Dataset{
		enrollments: make([]int64, n),
		integrated:  make([]int64, n),
		subsequent:  make([]int64, n),
		years:       make([]int32, n),
		deps:        make([]int32, n),
		locations:   make([]int32, n),
		regionIDs:   make([]int32, n),
		stateIDs:    make([]int32, n),
		courseIDs:   make([]int32, n),
		schoolIDs:   make([]int32, n),
	}

	regions, states, courses, schools := newDict(), newDict(), newDict(), newDict()
	for i, r := range records {
		ds.enrollments[i] = r.Enrollment
		ds.integrated[i] = r.IntegratedCourses
		ds.subsequent[i] = r.SubsequentCourses
		ds.years[i] = r.Year
		ds.deps[i] = r.Dependency
		ds.locations[i] = r.Location
		ds.regionIDs[i] = regions.id(r.Region)
		ds.courseIDs[i] = courses.id(r.Course)
		ds.schoolIDs[i] = schools.id(r.School)

		sid := states.id(r.StateCode)
		if int(sid) == len(ds.stateNames) {
			ds.stateNames = append(ds.stateNames, r.StateName)
		}
		ds.stateIDs[i] = sid
	}

	ds.regionDict = regions.list
	ds.stateDict = states.list
	ds.courseDict = courses.list
	ds.schoolDict = schools.list
	return ds
}

func (ds *Dataset) Len() int { return len(ds.years) }

// Record rebuilds row i.
func (ds *Dataset) Record(i int) Record {
	sid := ds.stateIDs[i]
	return Record{
		Region:            ds.regionDict[ds.regionIDs[i]],
		StateCode:         ds.stateDict[sid],
		StateName:         ds.stateNames[sid],
		School:            ds.schoolDict[ds.schoolIDs[i]],
		Dependency:        ds.deps[i],
		Location:          ds.locations[i],
		Year:              ds.years[i],
		Course:            ds.courseDict[ds.courseIDs[i]],
		Enrollment:        ds.enrollments[i],
		IntegratedCourses: ds.integrated[i],
		SubsequentCourses: ds.subsequent[i],
	}
}

// States lists the distinct states sorted by code.
func (ds *Dataset) States() []models.State {
	byCode := make(map[string]string, len(ds.stateDict))
	for i, code := range ds.stateDict {
		byCode[code] = ds.stateNames[i]
	}
	codes := maps.Keys(byCode)
	sort.Strings(codes)

	out := make([]models.State, 0, len(codes))
	for _, c := range codes {
		out = append(out, models.State{Code: c, Name: byCode[c]})
	}
	return out
}

// rows returns the indices of the records whose state code is in states.
// An empty set selects every row.
func (ds *Dataset) rows(states []string) []int {
	n := ds.Len()
	if len(states) == 0 {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	}

	keep := make([]bool, len(ds.stateDict))
	for _, s := range states {
		for id, code := range ds.stateDict {
			if code == s {
				keep[id] = true
			}
		}
	}

	out := make([]int, 0)
	for i := 0; i < n; i++ {
		if keep[ds.stateIDs[i]] {
			out = append(out, i)
		}
	}
	return out
}
