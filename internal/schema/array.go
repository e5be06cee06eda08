package schema

// ArraySchema validates every element of a slice.
type ArraySchema[In, Out any] struct {
	elem Schema[In, Out]
}

// Array returns a schema applying elem to each element. An empty slice is
// valid and yields an empty, non-nil result.
func Array[In, Out any](elem Schema[In, Out]) *ArraySchema[In, Out] {
	return &ArraySchema[In, Out]{elem: elem}
}

// Parse implements Schema. Issues from all elements are collected.
func (a *ArraySchema[In, Out]) Parse(path Path, vs []In) ([]Out, Issues) {
	out := make([]Out, 0, len(vs))
	var iss Issues
	for i, v := range vs {
		o, elemIssues := a.elem.Parse(path.Index(i), v)
		iss = append(iss, elemIssues...)
		out = append(out, o)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}
