package chart

// Bag is a nested option bag used for layout and trace overrides. Values
// may themselves be bags (Bag or a plain map[string]any), in which case
// merging recurses into them.
type Bag map[string]any

// asBag normalizes nested bag values. Both Bag and map[string]any are
// accepted so literals from callers and decoded JSON/YAML merge alike.
func asBag(v any) (Bag, bool) {
	switch m := v.(type) {
	case Bag:
		return m, true
	case map[string]any:
		return Bag(m), true
	default:
		return nil, false
	}
}

// MergeBags merges override into base and returns a new bag. For every
// key in override, if both sides hold a nested bag the merge recurses;
// otherwise the override value replaces the base value. Keys present
// only in base are preserved. Neither input is mutated, so shared
// default bags can be merged against repeatedly.
func MergeBags(base, override Bag) Bag {
	merged := base.Clone()

	for key, overrideValue := range override {
		baseBag, baseOk := asBag(merged[key])

		overrideBag, overrideOk := asBag(overrideValue)
		if baseOk && overrideOk {
			merged[key] = MergeBags(baseBag, overrideBag)
		} else if overrideOk {
			merged[key] = overrideBag.Clone()
		} else {
			merged[key] = overrideValue
		}
	}

	return merged
}

// Clone returns a deep copy of the bag. Nested bags are copied
// recursively; leaf values are copied by assignment.
func (b Bag) Clone() Bag {
	if b == nil {
		return Bag{}
	}

	cloned := make(Bag, len(b))

	for key, value := range b {
		if nested, ok := asBag(value); ok {
			cloned[key] = nested.Clone()
		} else {
			cloned[key] = value
		}
	}

	return cloned
}
