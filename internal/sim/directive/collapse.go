package directive

// Collapse groups consecutive identical moves back into records. It is the
// inverse of expansion for streams without zero-count lines.
func Collapse(moves []Directive) []Record {
	var out []Record

	i := 0
	for i < len(moves) {
		d := moves[i]
		run := 1
		for j := i + 1; j < len(moves) && moves[j] == d; j++ {
			run++
		}
		out = append(out, Record{Dir: d, Count: run})
		i += run
	}
	return out
}
