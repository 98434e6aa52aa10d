package semdoc

import "iter"

// Collect concatenates the documents yielded by seq in order. nil entries
// are skipped. It is the fold step when parts of a large document are
// built independently.
func Collect(seq iter.Seq[*Doc]) *Doc {
	out := New()
	seq(func(d *Doc) bool {
		out.Append(d)
		return true
	})
	return out
}

// CollectChan concatenates documents received from ch until it is closed.
// It is a thin wrapper around [Collect].
func CollectChan(ch <-chan *Doc) *Doc {
	return Collect(chanToIter(ch))
}

func chanToIter[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	}
}
