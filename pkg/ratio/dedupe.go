package ratio

// Dedupe collapses entries to the first occurrence of each distinct
// canonical ratio. Insertion order is preserved; later duplicates are
// dropped entirely even when their Raw or Note differ.
func Dedupe(entries []Entry) []Entry {
	seen := make(map[string]struct{}, len(entries))
	var out []Entry
	for _, e := range entries {
		if _, ok := seen[e.Ratio]; ok {
			continue
		}
		seen[e.Ratio] = struct{}{}
		out = append(out, e)
	}
	return out
}
