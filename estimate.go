package treedoc

// sizeInflation scales a compact serialization up to an approximate rendered
// size; the emitted markup is verbose relative to JSON.
const sizeInflation = 1.5

// revisitCost is charged when the fallback counter meets a container it has
// already measured, instead of descending into it again.
const revisitCost = 50

// estimateSize approximates how many bytes the rendered document will occupy.
// The primary path serializes the whole tree and inflates the length; when
// serialization fails (cyclic value), a manual count that remembers visited
// containers takes over. The result is advisory only — it feeds warnings and
// Result.EstimatedSize, never the render itself.
func estimateSize(v Value) int {
	if data, err := v.MarshalJSON(); err == nil {
		return int(float64(len(data)) * sizeInflation)
	}
	seen := make(map[any]struct{})
	return countSize(v, seen)
}

func countSize(v Value, seen map[any]struct{}) int {
	switch v.kind {
	case KindNull:
		return len("null")
	case KindBool:
		if v.b {
			return len("true")
		}
		return len("false")
	case KindNumber:
		return len(formatNumber(v.num))
	case KindString:
		return len(v.str) + 2
	case KindSequence:
		if _, ok := seen[v.seq]; ok {
			return revisitCost
		}
		seen[v.seq] = struct{}{}
		n := 2
		for i := range v.seq.items {
			if i > 0 {
				n++
			}
			n += countSize(v.seq.items[i], seen)
		}
		return n
	case KindMapping:
		if _, ok := seen[v.m]; ok {
			return revisitCost
		}
		seen[v.m] = struct{}{}
		n := 2
		for i, key := range v.m.keys {
			if i > 0 {
				n++
			}
			n += len(key) + 3
			n += countSize(v.m.vals[key], seen)
		}
		return n
	default:
		return 0
	}
}
