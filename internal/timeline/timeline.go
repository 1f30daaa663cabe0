// Package timeline reconciles a raw snapshot stream into a displayable
// play-by-play: authoritative ordering, duplicate suppression, half-inning
// headers, a historical reordering correction for early-season data, and
// timestamp interleaving of secondary event streams.
package timeline

import (
	"sort"
	"strings"

	"github.com/pable/blasereplay/internal/model"
	"github.com/pable/blasereplay/internal/outcomes"
)

// Direction selects chronological or reverse-chronological output.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// legacyReorderCutoffSeason is the first season (0-based) whose feed no
// longer misplaces "X is batting." announcements relative to half-inning
// headers. Streams from earlier seasons get the empirical reorder patch.
const legacyReorderCutoffSeason = 12

// RowKind discriminates the three row shapes a reconciled timeline contains.
type RowKind int

const (
	// RowUpdate is a primary game-state row.
	RowUpdate RowKind = iota
	// RowHeader marks a half-inning boundary. Its snapshot is the reference
	// state used to render team and pitcher info for the new half.
	RowHeader
	// RowSecondary is a spliced side-channel event.
	RowSecondary
)

// Row is one element of a reconciled timeline. Snapshot pointers reference
// the caller's (copied) input; rows never carry mutated snapshots.
type Row struct {
	Kind RowKind

	Inning      int
	TopOfInning bool

	Snapshot  *model.GameSnapshot
	Secondary *model.SecondaryEvent
}

// Options controls one reconciliation pass.
type Options struct {
	Direction     Direction
	OnlyImportant bool
	Secondary     []model.SecondaryEvent
}

// Reconcile derives the full display list from a snapshot stream. It is a
// pure, total function: the input slices are never mutated, malformed
// snapshots fall back to documented defaults, and an empty stream yields an
// empty (nil) result rather than an error.
func Reconcile(snaps []model.GameSnapshot, opts Options) []Row {
	if len(snaps) == 0 {
		return nil
	}

	ordered := orderSnapshots(snaps, opts.Direction)
	ordered = dropAdjacentDuplicates(ordered)
	if opts.OnlyImportant {
		ordered = filterImportant(ordered)
	}

	rows := addHeaders(ordered, opts.Direction)
	if len(opts.Secondary) > 0 {
		rows = mergeSecondary(rows, opts.Secondary, opts.Direction)
	}
	return rows
}

// orderSnapshots establishes the base ordering on a copy of the input. When
// every snapshot carries a play counter it is the authoritative sort key
// (wall-clock timestamps from the source are not strictly monotonic);
// otherwise arrival order is preserved. Descending output reverses the whole
// sequence afterwards.
func orderSnapshots(snaps []model.GameSnapshot, dir Direction) []*model.GameSnapshot {
	out := make([]*model.GameSnapshot, len(snaps))
	for i := range snaps {
		out[i] = &snaps[i]
	}

	all := true
	for _, s := range out {
		if _, ok := s.Data.Play(); !ok {
			all = false
			break
		}
	}
	if all {
		sort.SliceStable(out, func(i, j int) bool {
			pi, _ := out[i].Data.Play()
			pj, _ := out[j].Data.Play()
			return pi < pj
		})
	}

	if dir == Descending {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// dropAdjacentDuplicates removes snapshots whose hash equals the immediately
// preceding snapshot's hash. Duplicates separated by other rows are kept,
// matching the source's paging behavior.
func dropAdjacentDuplicates(snaps []*model.GameSnapshot) []*model.GameSnapshot {
	out := snaps[:0:0]
	lastHash := ""
	for _, s := range snaps {
		if s.Hash != "" && s.Hash == lastHash {
			continue
		}
		lastHash = s.Hash
		out = append(out, s)
	}
	return out
}

func filterImportant(snaps []*model.GameSnapshot) []*model.GameSnapshot {
	out := snaps[:0:0]
	for _, s := range snaps {
		if outcomes.IsImportant(s.Data.LastUpdate, s.Data.ScoreUpdate) {
			out = append(out, s)
		}
	}
	return out
}

// addHeaders walks the ordered sequence once, inserting a header row before
// every half-inning change. The synthetic "inning -1" warm-up state never
// receives a header. In ascending order, a leading transition to the top of
// inning 0 is unshifted to the very front so streams that start mid-setup
// still open with a header.
func addHeaders(snaps []*model.GameSnapshot, dir Direction) []Row {
	var rows []Row
	lastInning := -1
	lastTop := false
	seenHalf := false
	firstHeader := true

	for _, s := range snaps {
		d := &s.Data
		if d.Inning >= 0 && (!seenHalf || d.Inning != lastInning || d.TopOfInning != lastTop) {
			header := Row{
				Kind:        RowHeader,
				Inning:      d.Inning,
				TopOfInning: d.TopOfInning,
				Snapshot:    s,
			}
			if dir == Ascending && firstHeader && d.Inning == 0 && d.TopOfInning {
				rows = append([]Row{header}, rows...)
			} else {
				rows = append(rows, header)
			}
			firstHeader = false
			seenHalf = true
			lastInning = d.Inning
			lastTop = d.TopOfInning
		}

		rows = append(rows, Row{
			Kind:        RowUpdate,
			Inning:      d.Inning,
			TopOfInning: d.TopOfInning,
			Snapshot:    s,
		})

		if d.Season < legacyReorderCutoffSeason {
			rows = legacyBattingReorder(rows, dir)
		}
	}
	return rows
}

// legacyBattingReorder is the empirical patch for a data-quality defect in
// seasons before the cutoff: the source emitted "X is batting."
// announcements one position off from where the half-inning header should
// visually sit. The two branches are asymmetric on purpose; they reproduce
// the observed fix rather than a derived general rule, so deviations should
// be flagged rather than "corrected".
func legacyBattingReorder(rows []Row, dir Direction) []Row {
	n := len(rows)
	switch dir {
	case Ascending:
		// [..., header, batting-row] -> [..., batting-row, header]
		if n < 3 {
			return rows
		}
		last := rows[n-1]
		prev := rows[n-2]
		if last.Kind == RowUpdate && endsWithBatting(last) && prev.Kind == RowHeader {
			rows[n-2], rows[n-1] = last, prev
		}
	case Descending:
		// [..., batting-row, header, row] -> [..., row, header, batting-row]
		if n < 4 {
			return rows
		}
		earlier := rows[n-3]
		header := rows[n-2]
		last := rows[n-1]
		if header.Kind == RowHeader && earlier.Kind == RowUpdate && endsWithBatting(earlier) {
			rows[n-3], rows[n-2], rows[n-1] = last, header, earlier
		}
	}
	return rows
}

func endsWithBatting(r Row) bool {
	return r.Snapshot != nil && strings.HasSuffix(r.Snapshot.Data.LastUpdate, "batting.")
}

// mergeSecondary splices side-channel events into the header-delimited
// groups of a reconciled timeline strictly by timestamp, never altering the
// relative order of primary rows. Events still unconsumed after the last
// group are appended at the very end.
func mergeSecondary(rows []Row, secondary []model.SecondaryEvent, dir Direction) []Row {
	events := make([]model.SecondaryEvent, len(secondary))
	copy(events, secondary)
	sort.SliceStable(events, func(i, j int) bool {
		if dir == Descending {
			return events[i].Timestamp.After(events[j].Timestamp)
		}
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	before := func(ev *model.SecondaryEvent, r *Row) bool {
		if dir == Descending {
			return ev.Timestamp.After(r.Snapshot.Timestamp)
		}
		return ev.Timestamp.Before(r.Snapshot.Timestamp)
	}

	out := make([]Row, 0, len(rows)+len(events))
	ei := 0
	for i := range rows {
		r := rows[i]
		if r.Kind == RowUpdate && r.Snapshot != nil {
			for ei < len(events) && before(&events[ei], &r) {
				out = append(out, secondaryRow(&events[ei], r))
				ei++
			}
		}
		out = append(out, r)
	}
	for ; ei < len(events); ei++ {
		var ref Row
		if len(out) > 0 {
			ref = out[len(out)-1]
		}
		out = append(out, secondaryRow(&events[ei], ref))
	}
	return out
}

func secondaryRow(ev *model.SecondaryEvent, ref Row) Row {
	return Row{
		Kind:        RowSecondary,
		Inning:      ref.Inning,
		TopOfInning: ref.TopOfInning,
		Secondary:   ev,
	}
}
