package timeline

import (
	"testing"
	"time"

	"github.com/pable/blasereplay/internal/model"
)

var t0 = time.Date(2021, 3, 1, 16, 0, 0, 0, time.UTC)

// makeSnap builds a minimal snapshot. play < 0 means "no play counter".
func makeSnap(hash string, season, inning int, top bool, lastUpdate string, play int, at time.Time) model.GameSnapshot {
	s := model.GameSnapshot{
		GameID:    "game-1",
		Hash:      hash,
		Timestamp: at,
	}
	s.Data = model.SnapshotData{
		Season:      season,
		Inning:      inning,
		TopOfInning: top,
		LastUpdate:  lastUpdate,
	}
	if play >= 0 {
		p := play
		s.Data.PlayCount = &p
	}
	s.Data.Normalize()
	return s
}

func kinds(rows []Row) []RowKind {
	out := make([]RowKind, len(rows))
	for i, r := range rows {
		out[i] = r.Kind
	}
	return out
}

func narration(r Row) string {
	if r.Snapshot == nil {
		return ""
	}
	return r.Snapshot.Data.LastUpdate
}

const modernSeason = 22 // past the legacy reorder cutoff

func TestEmptyStreamYieldsEmptyOutput(t *testing.T) {
	if rows := Reconcile(nil, Options{}); len(rows) != 0 {
		t.Fatalf("expected no rows for empty stream, got %d", len(rows))
	}
}

// Three half-inning transitions produce exactly three headers, each
// immediately followed by its row, with the first header at position 0.
func TestHeadersPerHalfInning(t *testing.T) {
	snaps := []model.GameSnapshot{
		makeSnap("h1", modernSeason, 0, true, "Play ball!", 0, t0),
		makeSnap("h2", modernSeason, 0, false, "Bottom half begins.", 1, t0.Add(time.Minute)),
		makeSnap("h3", modernSeason, 1, true, "Second inning.", 2, t0.Add(2*time.Minute)),
	}
	rows := Reconcile(snaps, Options{})

	want := []RowKind{RowHeader, RowUpdate, RowHeader, RowUpdate, RowHeader, RowUpdate}
	got := kinds(rows)
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: expected kind %v, got %v", i, want[i], got[i])
		}
	}

	headers := []struct {
		inning int
		top    bool
	}{{0, true}, {0, false}, {1, true}}
	hi := 0
	for _, r := range rows {
		if r.Kind != RowHeader {
			continue
		}
		if r.Inning != headers[hi].inning || r.TopOfInning != headers[hi].top {
			t.Errorf("header %d: expected inning %d top=%v, got inning %d top=%v",
				hi, headers[hi].inning, headers[hi].top, r.Inning, r.TopOfInning)
		}
		hi++
	}
	if hi != 3 {
		t.Errorf("expected 3 headers, got %d", hi)
	}
}

// A stream that starts with warm-up states (inning -1) gets its first header
// unshifted to the very front instead of after the warm-up rows.
func TestLeadingHeaderUnshiftedPastWarmup(t *testing.T) {
	snaps := []model.GameSnapshot{
		makeSnap("h1", modernSeason, -1, true, "Let's go Blaseball!", 0, t0),
		makeSnap("h2", modernSeason, 0, true, "Top of 1.", 1, t0.Add(time.Minute)),
	}
	rows := Reconcile(snaps, Options{})

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Kind != RowHeader || rows[0].Inning != 0 || !rows[0].TopOfInning {
		t.Errorf("expected leading header for top of inning 0, got %+v", rows[0])
	}
	if rows[1].Kind != RowUpdate || narration(rows[1]) != "Let's go Blaseball!" {
		t.Errorf("expected warm-up row after the unshifted header, got %+v", rows[1])
	}
}

// The synthetic inning -1 warm-up state never receives a header of its own.
func TestNoHeaderForWarmupInning(t *testing.T) {
	snaps := []model.GameSnapshot{
		makeSnap("h1", modernSeason, -1, true, "Warming up.", 0, t0),
	}
	rows := Reconcile(snaps, Options{})
	for _, r := range rows {
		if r.Kind == RowHeader {
			t.Fatalf("unexpected header for inning -1: %+v", r)
		}
	}
}

func TestAdjacentDuplicateHashDropped(t *testing.T) {
	snaps := []model.GameSnapshot{
		makeSnap("abc123", modernSeason, 0, true, "A play.", 0, t0),
		makeSnap("abc123", modernSeason, 0, true, "A play.", 0, t0),
	}
	rows := Reconcile(snaps, Options{})

	updates := 0
	for _, r := range rows {
		if r.Kind == RowUpdate {
			updates++
		}
	}
	if updates != 1 {
		t.Errorf("expected 1 row for duplicated hash abc123, got %d", updates)
	}
}

// Duplicates separated by another row are kept; only adjacency dedups.
func TestSeparatedDuplicatesKept(t *testing.T) {
	snaps := []model.GameSnapshot{
		makeSnap("h1", modernSeason, 0, true, "One.", -1, t0),
		makeSnap("h2", modernSeason, 0, true, "Two.", -1, t0.Add(time.Second)),
		makeSnap("h1", modernSeason, 0, true, "One.", -1, t0.Add(2*time.Second)),
	}
	rows := Reconcile(snaps, Options{})

	updates := 0
	for _, r := range rows {
		if r.Kind == RowUpdate {
			updates++
		}
	}
	if updates != 3 {
		t.Errorf("expected separated duplicates kept (3 rows), got %d", updates)
	}
}

// Prefix-duplicating a stream is a no-op once play-count sorting makes the
// duplicates adjacent.
func TestDedupIdempotence(t *testing.T) {
	base := []model.GameSnapshot{
		makeSnap("h1", modernSeason, 0, true, "One.", 0, t0),
		makeSnap("h2", modernSeason, 0, true, "Two.", 1, t0.Add(time.Second)),
	}
	doubled := append(append([]model.GameSnapshot{}, base...), base...)

	want := Reconcile(base, Options{})
	got := Reconcile(doubled, Options{})

	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if want[i].Kind != got[i].Kind || narration(want[i]) != narration(got[i]) {
			t.Errorf("row %d differs: %v %q vs %v %q",
				i, want[i].Kind, narration(want[i]), got[i].Kind, narration(got[i]))
		}
	}
}

// The play counter is authoritative over arrival order when every snapshot
// carries one.
func TestPlayCountOrdering(t *testing.T) {
	snaps := []model.GameSnapshot{
		makeSnap("h2", modernSeason, 0, true, "Second.", 1, t0.Add(time.Second)),
		makeSnap("h1", modernSeason, 0, true, "First.", 0, t0),
	}
	rows := Reconcile(snaps, Options{})

	var got []string
	for _, r := range rows {
		if r.Kind == RowUpdate {
			got = append(got, narration(r))
		}
	}
	if len(got) != 2 || got[0] != "First." || got[1] != "Second." {
		t.Errorf("expected play-count order [First. Second.], got %v", got)
	}
}

func TestImportantFilter(t *testing.T) {
	snaps := []model.GameSnapshot{
		makeSnap("h1", modernSeason, 0, true, "Jessica Telephone hits a Single!", 0, t0),
		makeSnap("h2", modernSeason, 0, true, "Ball. 1-0", 1, t0.Add(time.Second)),
		makeSnap("h3", modernSeason, 0, true, "Peanut Bong hits a solo home run!", 2, t0.Add(2*time.Second)),
	}
	rows := Reconcile(snaps, Options{OnlyImportant: true})

	var got []string
	for _, r := range rows {
		if r.Kind == RowUpdate {
			got = append(got, narration(r))
		}
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 important rows, got %d: %v", len(got), got)
	}
	if got[0] != "Jessica Telephone hits a Single!" || got[1] != "Peanut Bong hits a solo home run!" {
		t.Errorf("unexpected important rows: %v", got)
	}
}

// Ascending legacy streams move "X is batting." announcements in front of
// the half-inning header they triggered.
func TestLegacyBattingReorderAscending(t *testing.T) {
	const legacySeason = 4
	snaps := []model.GameSnapshot{
		makeSnap("h1", legacySeason, 0, true, "One.", -1, t0),
		makeSnap("h2", legacySeason, 0, false, "Nagomi Mcdaniel is batting.", -1, t0.Add(time.Minute)),
		makeSnap("h3", legacySeason, 0, false, "Strike, swinging.", -1, t0.Add(2*time.Minute)),
	}
	rows := Reconcile(snaps, Options{})

	// [H(top), One., batting, H(bottom), Strike...]
	want := []RowKind{RowHeader, RowUpdate, RowUpdate, RowHeader, RowUpdate}
	got := kinds(rows)
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %v, got %v (rows: %v)", i, want[i], got[i], got)
		}
	}
	if narration(rows[2]) != "Nagomi Mcdaniel is batting." {
		t.Errorf("expected batting announcement before the header, got %q", narration(rows[2]))
	}
	if rows[3].Inning != 0 || rows[3].TopOfInning {
		t.Errorf("expected bottom-of-0 header after the announcement, got %+v", rows[3])
	}
}

// The ascending correction is skipped entirely at or past the cutoff season
// even when a row's text ends in "batting.".
func TestModernSeasonSkipsBattingReorder(t *testing.T) {
	snaps := []model.GameSnapshot{
		makeSnap("h1", modernSeason, 0, true, "One.", 0, t0),
		makeSnap("h2", modernSeason, 0, false, "Nagomi Mcdaniel is batting.", 1, t0.Add(time.Minute)),
		makeSnap("h3", modernSeason, 0, false, "Strike, swinging.", 2, t0.Add(2*time.Minute)),
	}
	rows := Reconcile(snaps, Options{})

	// Header stays directly before the announcement.
	want := []RowKind{RowHeader, RowUpdate, RowHeader, RowUpdate, RowUpdate}
	got := kinds(rows)
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if narration(rows[3]) != "Nagomi Mcdaniel is batting." {
		t.Errorf("expected announcement directly after its header, got %q", narration(rows[3]))
	}
}

// Descending legacy streams apply the three-element rotation around the
// header instead of the two-element swap.
func TestLegacyBattingReorderDescending(t *testing.T) {
	const legacySeason = 4
	snaps := []model.GameSnapshot{
		makeSnap("h1", legacySeason, 0, true, "One.", -1, t0),
		makeSnap("h2", legacySeason, 0, true, "Two.", -1, t0.Add(time.Minute)),
		makeSnap("h3", legacySeason, 0, false, "Nagomi Mcdaniel is batting.", -1, t0.Add(2*time.Minute)),
		makeSnap("h4", legacySeason, 0, false, "Three.", -1, t0.Add(3*time.Minute)),
		makeSnap("h5", legacySeason, 0, false, "Four.", -1, t0.Add(4*time.Minute)),
	}
	rows := Reconcile(snaps, Options{Direction: Descending})

	// Walk order is Four., Three., batting, Two., One.; the rotation fires
	// when the top-of-0 header goes in, leaving the announcement below it.
	wantNarration := []string{"", "Four.", "Three.", "Two.", "", "Nagomi Mcdaniel is batting.", "One."}
	wantKinds := []RowKind{RowHeader, RowUpdate, RowUpdate, RowUpdate, RowHeader, RowUpdate, RowUpdate}
	if len(rows) != len(wantKinds) {
		t.Fatalf("expected %d rows, got %d", len(wantKinds), len(rows))
	}
	for i := range wantKinds {
		if rows[i].Kind != wantKinds[i] {
			t.Fatalf("row %d: expected kind %v, got %v", i, wantKinds[i], rows[i].Kind)
		}
		if wantKinds[i] == RowUpdate && narration(rows[i]) != wantNarration[i] {
			t.Errorf("row %d: expected %q, got %q", i, wantNarration[i], narration(rows[i]))
		}
	}
}

// Header and row content is direction-invariant as a multiset (legacy
// reorder rows aside, which the literal fixtures above pin).
func TestDirectionFlipContentInvariance(t *testing.T) {
	snaps := []model.GameSnapshot{
		makeSnap("h1", modernSeason, 0, true, "One.", 0, t0),
		makeSnap("h2", modernSeason, 0, false, "Two.", 1, t0.Add(time.Minute)),
		makeSnap("h3", modernSeason, 1, true, "Three.", 2, t0.Add(2*time.Minute)),
	}

	asc := Reconcile(snaps, Options{})
	desc := Reconcile(snaps, Options{Direction: Descending})

	count := func(rows []Row) map[string]int {
		m := make(map[string]int)
		for _, r := range rows {
			switch r.Kind {
			case RowHeader:
				m["header"]++
			case RowUpdate:
				m[narration(r)]++
			}
		}
		return m
	}
	ca, cd := count(asc), count(desc)
	if len(ca) != len(cd) {
		t.Fatalf("content mismatch: %v vs %v", ca, cd)
	}
	for k, v := range ca {
		if cd[k] != v {
			t.Errorf("content %q: asc %d, desc %d", k, v, cd[k])
		}
	}
}

func TestSecondaryEventsSplicedByTimestamp(t *testing.T) {
	snaps := []model.GameSnapshot{
		makeSnap("h1", modernSeason, 0, true, "One.", 0, t0),
		makeSnap("h2", modernSeason, 0, true, "Two.", 1, t0.Add(2*time.Minute)),
	}
	secondary := []model.SecondaryEvent{
		{Kind: model.SecondaryTemporal, Timestamp: t0.Add(time.Minute), Text: "PEANUT"},
		{Kind: model.SecondaryTemporal, Timestamp: t0.Add(time.Hour), Text: "LATE"},
	}
	rows := Reconcile(snaps, Options{Secondary: secondary})

	var got []string
	for _, r := range rows {
		switch r.Kind {
		case RowUpdate:
			got = append(got, narration(r))
		case RowSecondary:
			got = append(got, r.Secondary.Text)
		}
	}
	want := []string{"One.", "PEANUT", "Two.", "LATE"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

// Splicing never reorders primary rows.
func TestSecondaryMergeKeepsPrimaryOrder(t *testing.T) {
	snaps := []model.GameSnapshot{
		makeSnap("h1", modernSeason, 0, true, "One.", 0, t0),
		makeSnap("h2", modernSeason, 0, true, "Two.", 1, t0.Add(time.Minute)),
		makeSnap("h3", modernSeason, 0, true, "Three.", 2, t0.Add(2*time.Minute)),
	}
	secondary := []model.SecondaryEvent{
		{Kind: model.SecondaryPressure, Timestamp: t0.Add(30 * time.Second), Pressure: 1},
		{Kind: model.SecondaryPressure, Timestamp: t0.Add(90 * time.Second), Pressure: 2},
	}
	rows := Reconcile(snaps, Options{Secondary: secondary})

	var primaries []string
	for _, r := range rows {
		if r.Kind == RowUpdate {
			primaries = append(primaries, narration(r))
		}
	}
	want := []string{"One.", "Two.", "Three."}
	for i := range want {
		if primaries[i] != want[i] {
			t.Fatalf("primary order changed: %v", primaries)
		}
	}
}

// Reconcile must not mutate the caller's slice.
func TestInputNotMutated(t *testing.T) {
	snaps := []model.GameSnapshot{
		makeSnap("h2", modernSeason, 0, true, "Second.", 1, t0.Add(time.Second)),
		makeSnap("h1", modernSeason, 0, true, "First.", 0, t0),
	}
	Reconcile(snaps, Options{})

	if snaps[0].Hash != "h2" || snaps[1].Hash != "h1" {
		t.Errorf("input slice was reordered: %s, %s", snaps[0].Hash, snaps[1].Hash)
	}
}
