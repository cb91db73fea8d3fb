package wordindex

import "wordsplice/internal/transcript"

// ReconcileStats summarizes what a reconciliation pass removed.
type ReconcileStats struct {
	Before         int
	BelowThreshold int
	Duplicates     int
	After          int
}

// Reconcile drops records below threshold, then keeps the highest-confidence
// record for each word. On an exact tie the earliest inserted record is kept.
// Running it again on a reconciled index removes nothing.
func (idx *Index) Reconcile(threshold float64) ReconcileStats {
	stats := ReconcileStats{Before: idx.count}

	for word, candidates := range idx.entries {
		kept := candidates[:0]
		for _, rec := range candidates {
			if rec.Confidence < threshold {
				stats.BelowThreshold++
				continue
			}
			kept = append(kept, rec)
		}
		if len(kept) == 0 {
			delete(idx.entries, word)
			continue
		}
		best := bestCandidate(kept)
		stats.Duplicates += len(kept) - 1
		idx.entries[word] = []transcript.Record{best}
	}

	idx.count = stats.Before - stats.BelowThreshold - stats.Duplicates
	stats.After = idx.count
	return stats
}

func bestCandidate(candidates []transcript.Record) transcript.Record {
	best := candidates[0]
	for _, rec := range candidates[1:] {
		if rec.Confidence > best.Confidence {
			best = rec
		}
	}
	return best
}
