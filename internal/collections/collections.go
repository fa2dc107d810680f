package collections

// Contains returns true if elem is one of elements.
func Contains(elem string, elements []string) bool {
	for _, e := range elements {
		if elem == e {
			return true
		}
	}
	return false
}

// Intersect returns the elements of a that are also in b, preserving the order of a.
func Intersect(a, b []string) []string {
	var out []string
	for _, e := range a {
		if Contains(e, b) {
			out = append(out, e)
		}
	}
	return out
}

// IsSubset returns true if every element of sub is contained in set.
func IsSubset(sub, set []string) bool {
	for _, e := range sub {
		if !Contains(e, set) {
			return false
		}
	}
	return true
}
