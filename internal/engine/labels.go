package engine

// UnknownLabel names any code that has no entry in a label table.
const UnknownLabel = "Unknown"

var dependencyLabels = map[int32]string{
	1: "Federal",
	2: "State",
	3: "Municipal",
	4: "Private",
}

var locationLabels = map[int32]string{
	1: "Urban",
	2: "Rural",
}

func DependencyLabel(code int32) string { return label(dependencyLabels, code) }

func LocationLabel(code int32) string { return label(locationLabels, code) }

func label(table map[int32]string, code int32) string {
	if s, ok := table[code]; ok {
		return s
	}
	return UnknownLabel
}
