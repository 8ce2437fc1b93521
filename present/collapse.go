package present

import "github.com/dacharyc/chardiff"

// CollapseMirrored drops adjacent Insert/Remove pairs with equal Start and
// Count; read together they cancel out. records is not modified.
func CollapseMirrored(records []chardiff.DiffRecord) []chardiff.DiffRecord {
	if len(records) < 2 {
		return records
	}

	out := make([]chardiff.DiffRecord, 0, len(records))
	for i := 0; i < len(records); i++ {
		if i+1 < len(records) && mirrored(records[i], records[i+1]) {
			i++
			continue
		}
		out = append(out, records[i])
	}
	return out
}

func mirrored(a, b chardiff.DiffRecord) bool {
	if a.Start != b.Start || a.Count != b.Count {
		return false
	}
	return (a.Op == chardiff.Insert && b.Op == chardiff.Remove) ||
		(a.Op == chardiff.Remove && b.Op == chardiff.Insert)
}
