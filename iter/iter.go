package iter

import (
	"iter"
)

// Seq2Error returns an iter.Seq2 that simply yields a fixed error as its second argument, once.
// It is valid for err to be nil.
func Seq2Error[X any](err error) iter.Seq2[X, error] {
	return func(yield func(X, error) bool) {
		var x X
		yield(x, err)
	}
}

// CollectErr reads values from a fallible iter.Seq2 until it ends, yields an error or limit values have been read.
// A negative limit reads everything.
// Values read before an error are still returned.
func CollectErr[X any](seq iter.Seq2[X, error], limit int) (out []X, err error) {
	if limit == 0 {
		return []X{}, nil
	}
	for x, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, x)
		if len(out) == limit {
			break
		}
	}
	if out == nil {
		out = []X{}
	}
	return out, nil
}
