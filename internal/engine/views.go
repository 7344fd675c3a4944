package engine

import "techcensus/internal/models"

// computeFunc aggregates the selected rows of ds for one view. rows is never empty.
type computeFunc func(ds *Dataset, rows []int) []models.Row

// Compute runs one view over the records of ds whose state code is in
// states (all records when states is empty). It is a pure function of its
// arguments and safe to call concurrently.
//
// An unknown view yields a result with no chart and no rows.
func Compute(ds *Dataset, view string, states []string) models.ViewResult {
	res := models.ViewResult{View: view, Rows: []models.Row{}}

	def, ok := viewIndex[ViewID(view)]
	if !ok {
		return res
	}
	chart := def.chart
	res.Chart = &chart

	if ds == nil {
		return res
	}
	rows := ds.rows(states)
	if len(rows) == 0 {
		return res
	}
	if out := def.compute(ds, rows); out != nil {
		res.Rows = out
	}
	return res
}

func countBy(dim dimension) computeFunc {
	return func(ds *Dataset, rows []int) []models.Row {
		dims := []dimension{dim}
		return toRows(aggregate(ds, rows, dims, countRows), dims)
	}
}

func sumBy(dim dimension) computeFunc {
	return func(ds *Dataset, rows []int) []models.Row {
		dims := []dimension{dim}
		return toRows(aggregate(ds, rows, dims, enrollment), dims)
	}
}

func percentOf(f computeFunc) computeFunc {
	return func(ds *Dataset, rows []int) []models.Row {
		return withPercent(f(ds, rows))
	}
}

func topCoursesPer(dim dimension) computeFunc {
	return func(ds *Dataset, rows []int) []models.Row {
		dims := []dimension{dim, byCourse}
		groups := aggregate(ds, rows, dims, enrollment)
		return toRows(topPerGroup(groups, TopCoursesPerGroup), dims)
	}
}

var (
	schoolsByRegion        = percentOf(countBy(byRegion))
	schoolsByZone          = percentOf(countBy(byLocation))
	schoolsByDependency    = percentOf(countBy(byDependency))
	coursesByState         = countBy(byStateName)
	studentsByState        = sumBy(byStateName)
	enrollmentByDependency = percentOf(sumBy(byDependency))
	enrollmentByYear       = sumBy(byYear)
	topCoursesByRegion     = topCoursesPer(byRegion)
	topCoursesByState      = topCoursesPer(byStateCode)
)

func schoolsByYearRegion(ds *Dataset, rows []int) []models.Row {
	dims := []dimension{byYear, byRegion}
	return toRows(aggregate(ds, rows, dims, countRows), dims)
}

func topCourses(ds *Dataset, rows []int) []models.Row {
	return topN(sumBy(byCourse)(ds, rows), TopCourses, true)
}

func lowestCourses(ds *Dataset, rows []int) []models.Row {
	return topN(sumBy(byCourse)(ds, rows), TopCourses, false)
}

func coursesByModality(ds *Dataset, rows []int) []models.Row {
	groups := aggregate(ds, rows, []dimension{byStateName}, integratedCourses, subsequentCourses)
	return melt(groups, byStateName, [2]string{ModalityIntegrated, ModalitySubsequent})
}
