package server

import "fmt"

// argReader pulls optional values out of raw tool arguments, where presence
// matters (patch semantics distinguish "absent" from "empty"). A value that
// is present but has the wrong type is an input error, not an absent field;
// the first such error is kept and reported by Err.
type argReader struct {
	args map[string]any
	err  error
}

func newArgReader(args map[string]any) *argReader {
	return &argReader{args: args}
}

// Err returns the first type mismatch seen, if any.
func (r *argReader) Err() error {
	return r.err
}

func (r *argReader) fail(key, want string) {
	if r.err == nil {
		r.err = fmt.Errorf("argument %q must be %s", key, want)
	}
}

func (r *argReader) optString(key string) *string {
	v, ok := r.args[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		r.fail(key, "a string")
		return nil
	}
	return &s
}

func (r *argReader) optFloat(key string) *float64 {
	v, ok := r.args[key]
	if !ok {
		return nil
	}
	f, ok := v.(float64)
	if !ok {
		r.fail(key, "a number")
		return nil
	}
	return &f
}

func (r *argReader) stringList(key string) []string {
	v, ok := r.args[key]
	if !ok {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		r.fail(key, "an array of strings")
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			r.fail(key, "an array of strings")
			return nil
		}
		out = append(out, s)
	}
	return out
}
