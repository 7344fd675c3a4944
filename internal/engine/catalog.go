package engine

import "techcensus/internal/models"

type ViewID string

const (
	SchoolsByRegion         ViewID = "schools-by-region"
	SchoolsByZone           ViewID = "schools-by-zone"
	SchoolsByDependency     ViewID = "schools-by-dependency"
	SchoolsByYearRegion     ViewID = "schools-by-year-region"
	CoursesByState          ViewID = "courses-by-state"
	EnrollmentByCourse      ViewID = "enrollment-by-course"
	StudentsByState         ViewID = "students-by-state"
	StudentsByCourse        ViewID = "students-by-course"
	CoursesByModality       ViewID = "courses-by-modality"
	EnrollmentByDependency  ViewID = "enrollment-by-dependency"
	EnrollmentByYear        ViewID = "enrollment-by-year"
	TopCoursesByRegion      ViewID = "top-courses-by-region"
	TopCoursesByState       ViewID = "top-courses-by-state"
	LowestEnrollmentCourses ViewID = "lowest-enrollment-courses"
)

// Cut-offs for the top-N views.
const (
	TopCourses         = 10
	TopCoursesPerGroup = 3
)

// Modality names used by the courses-by-modality view.
const (
	ModalityIntegrated = "Integrated High School"
	ModalitySubsequent = "Subsequent"
)

// viewDef pairs a chart descriptor with the function that fills it.
type viewDef struct {
	id      ViewID
	label   string
	chart   models.ChartSpec
	compute computeFunc
}

// catalog is in dropdown order.
var catalog = []viewDef{
	{
		id: SchoolsByRegion, label: "Number of schools by region",
		chart: models.ChartSpec{
			Kind: models.ChartBar, Title: "Number of Schools by Region",
			XTitle: "Region", YTitle: "Number of Schools",
			Columns: models.Columns{Category: "Region", Value: "Number of Schools", Percent: "Percentage"},
		},
		compute: schoolsByRegion,
	},
	{
		id: SchoolsByZone, label: "Number of schools by zone (urban/rural)",
		chart: models.ChartSpec{
			Kind: models.ChartPie, Title: "Distribution of Schools by Urban/Rural Zone",
			Columns: models.Columns{Category: "Zone", Value: "Number of Schools", Percent: "Percentage"},
		},
		compute: schoolsByZone,
	},
	{
		id: SchoolsByDependency, label: "Number of schools by administrative dependency",
		chart: models.ChartSpec{
			Kind: models.ChartBar, Title: "Comparison by Administrative Dependency",
			XTitle: "Administrative Dependency", YTitle: "Number of Schools",
			Columns: models.Columns{Category: "Dependency", Value: "Number of Schools", Percent: "Percentage"},
		},
		compute: schoolsByDependency,
	},
	{
		id: SchoolsByYearRegion, label: "Schools by year and region",
		chart: models.ChartSpec{
			Kind: models.ChartLine, Title: "Number of Schools by Year and Region",
			XTitle: "Year", YTitle: "Number of Schools", LegendTitle: "Region",
			Columns: models.Columns{Category: "Year", Series: "Region", Value: "Number of Schools"},
		},
		compute: schoolsByYearRegion,
	},
	{
		id: CoursesByState, label: "Number of courses by state",
		chart: models.ChartSpec{
			Kind: models.ChartBar, Title: "Number of Courses by State",
			XTitle: "State", YTitle: "Number of Courses",
			Columns: models.Columns{Category: "State", Value: "Number of Courses"},
		},
		compute: coursesByState,
	},
	{
		id: EnrollmentByCourse, label: "Enrollment by course",
		chart: models.ChartSpec{
			Kind: models.ChartBar, Title: "Top 10 Courses by Enrollment",
			XTitle: "Number of Enrollments", YTitle: "Course", Horizontal: true,
			Columns: models.Columns{Category: "Course", Value: "Number of Enrollments"},
		},
		compute: topCourses,
	},
	{
		id: StudentsByState, label: "Number of students by state",
		chart: models.ChartSpec{
			Kind: models.ChartBar, Title: "Number of Students by State",
			XTitle: "State", YTitle: "Number of Students",
			Columns: models.Columns{Category: "State", Value: "Number of Students"},
		},
		compute: studentsByState,
	},
	{
		id: StudentsByCourse, label: "Number of students by course",
		chart: models.ChartSpec{
			Kind: models.ChartBar, Title: "Top 10 Courses by Number of Students",
			XTitle: "Number of Students", YTitle: "Course", Horizontal: true,
			Columns: models.Columns{Category: "Course", Value: "Number of Students"},
		},
		compute: topCourses,
	},
	{
		id: CoursesByModality, label: "Technical courses by modality",
		chart: models.ChartSpec{
			Kind: models.ChartBar, Title: "Technical Courses by Modality and State",
			XTitle: "State", YTitle: "Number of Courses", LegendTitle: "Modality", Stacked: true,
			Columns: models.Columns{Category: "State", Series: "Modality", Value: "Number of Courses"},
		},
		compute: coursesByModality,
	},
	{
		id: EnrollmentByDependency, label: "Enrollment by administrative dependency",
		chart: models.ChartSpec{
			Kind: models.ChartBar, Title: "Enrollment by Administrative Dependency",
			XTitle: "Administrative Dependency", YTitle: "Number of Enrollments",
			Columns: models.Columns{Category: "Dependency", Value: "Number of Enrollments", Percent: "Percentage"},
		},
		compute: enrollmentByDependency,
	},
	{
		id: EnrollmentByYear, label: "Enrollment over the years",
		chart: models.ChartSpec{
			Kind: models.ChartLine, Title: "Enrollment over the Years",
			XTitle: "Year", YTitle: "Number of Enrollments",
			Columns: models.Columns{Category: "Year", Value: "Number of Enrollments"},
		},
		compute: enrollmentByYear,
	},
	{
		id: TopCoursesByRegion, label: "Courses with most enrollments by region",
		chart: models.ChartSpec{
			Kind: models.ChartBar, Title: "Courses with Most Enrollments by Region",
			XTitle: "Region", YTitle: "Number of Enrollments", LegendTitle: "Course", Stacked: true,
			Columns: models.Columns{Category: "Region", Series: "Course", Value: "Number of Enrollments"},
		},
		compute: topCoursesByRegion,
	},
	{
		id: TopCoursesByState, label: "Courses with most enrollments by state",
		chart: models.ChartSpec{
			Kind: models.ChartBar, Title: "Courses with Most Enrollments by State",
			XTitle: "State", YTitle: "Number of Enrollments", LegendTitle: "Course", Stacked: true,
			Columns: models.Columns{Category: "State", Series: "Course", Value: "Number of Enrollments"},
		},
		compute: topCoursesByState,
	},
	{
		id: LowestEnrollmentCourses, label: "Courses with fewest enrollments",
		chart: models.ChartSpec{
			Kind: models.ChartBar, Title: "Top 10 Courses with Fewest Enrollments",
			XTitle: "Number of Enrollments", YTitle: "Course", Horizontal: true,
			Columns: models.Columns{Category: "Course", Value: "Number of Enrollments"},
		},
		compute: lowestCourses,
	},
}

var viewIndex = func() map[ViewID]*viewDef {
	m := make(map[ViewID]*viewDef, len(catalog))
	for i := range catalog {
		m[catalog[i].id] = &catalog[i]
	}
	return m
}()

// Catalog lists every view in dropdown order.
func Catalog() []models.ViewInfo {
	out := make([]models.ViewInfo, 0, len(catalog))
	for _, v := range catalog {
		out = append(out, models.ViewInfo{ID: string(v.id), Label: v.label, Chart: v.chart})
	}
	return out
}

func Known(id string) bool {
	_, ok := viewIndex[ViewID(id)]
	return ok
}
