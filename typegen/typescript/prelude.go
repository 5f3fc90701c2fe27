package typescript

// prelude declares the generic names that translated declarations refer to
// without expanding them. Keys of HashSet and HashMap are constrained to
// what a JSON object key can hold.
var preludeLines = []string{
	"type HashSet<T extends number | string> = Record<T, undefined>;",
	"type HashMap<T extends number | string, U> = Record<T, U>;",
	"type Vec<T> = Array<T>;",
	"type Option<T> = T | undefined;",
	"type Result<T, U> = T | U;",
}

// Prelude returns the fixed prelude, one declaration per line, each line
// terminated by a newline.
func Prelude() string {
	n := 0
	for _, l := range preludeLines {
		n += len(l) + 1
	}
	buf := make([]byte, 0, n)
	for _, l := range preludeLines {
		buf = append(buf, l...)
		buf = append(buf, '\n')
	}
	return string(buf)
}
