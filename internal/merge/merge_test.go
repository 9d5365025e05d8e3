package merge

import (
	"testing"

	"github.com/clearlydefined/reconciler/internal/model"
)

// licensed builds a definition carrying only a declared license.
func licensed(declared string) *model.Definition {
	return &model.Definition{Licensed: &model.Licensed{Declared: declared}}
}

// ============================================================
// Base handling
// ============================================================

func TestDefinitions_NilBaseReturnsProposed(t *testing.T) {
	proposed := licensed("MIT")
	got := Definitions(nil, proposed, false)
	if got != proposed {
		t.Errorf("nil base must return proposed unchanged, got %#v", got)
	}
}

func TestDefinitions_NilProposedReturnsBase(t *testing.T) {
	base := licensed("MIT")
	if got := Definitions(base, nil, false); got != base {
		t.Errorf("nil proposed must return base, got %#v", got)
	}
}

func TestDefinitions_MutatesBaseInPlace(t *testing.T) {
	base := licensed("MIT")
	got := Definitions(base, licensed("GPL-3.0"), false)
	if got != base {
		t.Error("merge must return the mutated base")
	}
	if base.Licensed.Declared != "MIT AND GPL-3.0" {
		t.Errorf("base.Licensed.Declared = %q", base.Licensed.Declared)
	}
}

func TestDefinitions_MissingSubObjectsSkipped(t *testing.T) {
	// Neither side has Described/Files; one side lacks Licensed. No panics,
	// present data carried through.
	base := &model.Definition{}
	got := Definitions(base, licensed("MIT"), false)
	if got.Licensed == nil || got.Licensed.Declared != "MIT" {
		t.Errorf("got %#v, want declared MIT", got.Licensed)
	}
	got = Definitions(licensed("MIT"), &model.Definition{}, false)
	if got.Licensed.Declared != "MIT" {
		t.Errorf("declared = %q, want MIT", got.Licensed.Declared)
	}
}

// ============================================================
// License combination
// ============================================================

func TestDefinitions_PeerLicensesAndCombine(t *testing.T) {
	got := Definitions(licensed("MIT"), licensed("GPL-3.0"), false)
	if got.Licensed.Declared != "MIT AND GPL-3.0" {
		t.Errorf("declared = %q, want %q", got.Licensed.Declared, "MIT AND GPL-3.0")
	}
}

func TestDefinitions_NoAssertionLosesBothWays(t *testing.T) {
	// A real assertion always beats "no assertion", in either position.
	got := Definitions(licensed("NOASSERTION"), licensed("MIT"), false)
	if got.Licensed.Declared != "MIT" {
		t.Errorf("NOASSERTION base: declared = %q, want MIT", got.Licensed.Declared)
	}
	got = Definitions(licensed("MIT"), licensed("NOASSERTION"), false)
	if got.Licensed.Declared != "MIT" {
		t.Errorf("NOASSERTION proposed: declared = %q, want MIT", got.Licensed.Declared)
	}
}

func TestDefinitions_UnparseableLicenseTreatedAsNoAssertion(t *testing.T) {
	got := Definitions(licensed("not a license (("), licensed("MIT"), false)
	if got.Licensed.Declared != "MIT" {
		t.Errorf("declared = %q, want MIT", got.Licensed.Declared)
	}
}

func TestDefinitions_AbsentLicenseUsesOtherSide(t *testing.T) {
	got := Definitions(licensed(""), licensed("MIT"), false)
	if got.Licensed.Declared != "MIT" {
		t.Errorf("declared = %q, want MIT", got.Licensed.Declared)
	}
	got = Definitions(licensed("MIT"), licensed(""), false)
	if got.Licensed.Declared != "MIT" {
		t.Errorf("declared = %q, want MIT", got.Licensed.Declared)
	}
}

func TestDefinitions_DuplicateLicenseNotRepeated(t *testing.T) {
	got := Definitions(licensed("MIT"), licensed("mit"), false)
	if got.Licensed.Declared != "MIT" {
		t.Errorf("declared = %q, want MIT (no self-AND)", got.Licensed.Declared)
	}
}

func TestDefinitions_RefoldingSameStatementIsStable(t *testing.T) {
	// Folding a statement that is already part of the combination must not
	// pile up duplicate terms.
	got := Definitions(licensed("MIT AND Apache-2.0"), licensed("Apache-2.0"), false)
	if got.Licensed.Declared != "MIT AND Apache-2.0" {
		t.Errorf("declared = %q, want %q", got.Licensed.Declared, "MIT AND Apache-2.0")
	}
	got = Definitions(got, licensed("MIT AND Apache-2.0"), false)
	if got.Licensed.Declared != "MIT AND Apache-2.0" {
		t.Errorf("after refold: declared = %q, want %q", got.Licensed.Declared, "MIT AND Apache-2.0")
	}
}

func TestDefinitions_OrStatementsCombinePreservingGrouping(t *testing.T) {
	got := Definitions(licensed("MIT OR GPL-2.0"), licensed("Zlib"), false)
	if got.Licensed.Declared != "(MIT OR GPL-2.0) AND Zlib" {
		t.Errorf("declared = %q, want %q", got.Licensed.Declared, "(MIT OR GPL-2.0) AND Zlib")
	}
	// The same OR statement arriving again changes nothing.
	got = Definitions(got, licensed("mit or gpl-2.0"), false)
	if got.Licensed.Declared != "(MIT OR GPL-2.0) AND Zlib" {
		t.Errorf("after refold: declared = %q", got.Licensed.Declared)
	}
}

// ============================================================
// Scalars, hashes, facets
// ============================================================

func TestDefinitions_ScalarKeepsBaseUnlessOverride(t *testing.T) {
	base := &model.Definition{Described: &model.Described{ReleaseDate: "2021-01-01"}}
	proposed := &model.Definition{Described: &model.Described{ReleaseDate: "2022-02-02", ProjectWebsite: "https://example.com"}}

	got := Definitions(base, proposed, false)
	if got.Described.ReleaseDate != "2021-01-01" {
		t.Errorf("releaseDate = %q, want base kept", got.Described.ReleaseDate)
	}
	if got.Described.ProjectWebsite != "https://example.com" {
		t.Errorf("projectWebsite = %q, want filled from proposed", got.Described.ProjectWebsite)
	}

	base = &model.Definition{Described: &model.Described{ReleaseDate: "2021-01-01"}}
	got = Definitions(base, proposed, true)
	if got.Described.ReleaseDate != "2022-02-02" {
		t.Errorf("override: releaseDate = %q, want proposed", got.Described.ReleaseDate)
	}
}

func TestDefinitions_AbsentScalarNeverErases(t *testing.T) {
	base := &model.Definition{Described: &model.Described{ReleaseDate: "2021-01-01"}}
	proposed := &model.Definition{Described: &model.Described{}}
	got := Definitions(base, proposed, true)
	if got.Described.ReleaseDate != "2021-01-01" {
		t.Errorf("releaseDate = %q, absence must not erase a value even with override", got.Described.ReleaseDate)
	}
}

func TestDefinitions_HashesOverwriteByKey(t *testing.T) {
	base := &model.Definition{Described: &model.Described{Hashes: map[string]string{
		"sha1":   "aaa",
		"sha256": "bbb",
	}}}
	proposed := &model.Definition{Described: &model.Described{Hashes: map[string]string{
		"sha1": "ccc",
		"md5":  "ddd",
	}}}

	got := Definitions(base, proposed, false)
	want := map[string]string{"sha1": "ccc", "sha256": "bbb", "md5": "ddd"}
	for k, v := range want {
		if got.Described.Hashes[k] != v {
			t.Errorf("hashes[%s] = %q, want %q", k, got.Described.Hashes[k], v)
		}
	}
	if len(got.Described.Hashes) != len(want) {
		t.Errorf("hashes = %v, want %v", got.Described.Hashes, want)
	}
}

func TestDefinitions_FacetPatternsUnionPreservingOrder(t *testing.T) {
	base := &model.Definition{Described: &model.Described{Facets: map[string][]string{
		"tests": {"test/**", "spec/**"},
	}}}
	proposed := &model.Definition{Described: &model.Described{Facets: map[string][]string{
		"tests":    {"spec/**", "tests/**"},
		"examples": {"examples/**"},
	}}}

	got := Definitions(base, proposed, false)
	tests := got.Described.Facets["tests"]
	wantTests := []string{"test/**", "spec/**", "tests/**"}
	if len(tests) != len(wantTests) {
		t.Fatalf("facets[tests] = %v, want %v", tests, wantTests)
	}
	for i := range wantTests {
		if tests[i] != wantTests[i] {
			t.Errorf("facets[tests][%d] = %q, want %q", i, tests[i], wantTests[i])
		}
	}
	if len(got.Described.Facets["examples"]) != 1 {
		t.Errorf("facets[examples] = %v", got.Described.Facets["examples"])
	}
}

func TestDefinitions_ToolsUnion(t *testing.T) {
	base := &model.Definition{Described: &model.Described{Tools: []string{"scancode/30.1.0"}}}
	proposed := &model.Definition{Described: &model.Described{Tools: []string{"licensee/9.14.0", "scancode/30.1.0"}}}
	got := Definitions(base, proposed, false)
	want := []string{"scancode/30.1.0", "licensee/9.14.0"}
	if len(got.Described.Tools) != len(want) {
		t.Fatalf("tools = %v, want %v", got.Described.Tools, want)
	}
	for i := range want {
		if got.Described.Tools[i] != want[i] {
			t.Errorf("tools[%d] = %q, want %q", i, got.Described.Tools[i], want[i])
		}
	}
}

// ============================================================
// Licensed facets
// ============================================================

func TestDefinitions_LicensedFacetsMerge(t *testing.T) {
	base := &model.Definition{Licensed: &model.Licensed{Facets: map[string]*model.FacetInfo{
		"core": {
			Files:       10,
			Attribution: &model.AttributionInfo{Parties: []string{"Copyright Alice"}},
			Discovered:  &model.DiscoveredInfo{Expressions: []string{"MIT"}},
		},
	}}}
	proposed := &model.Definition{Licensed: &model.Licensed{Facets: map[string]*model.FacetInfo{
		"core": {
			Attribution: &model.AttributionInfo{Parties: []string{"Copyright Bob", "Copyright Alice"}},
			Discovered:  &model.DiscoveredInfo{Expressions: []string{"GPL-3.0"}, Unknown: 2},
		},
		"tests": {Files: 3},
	}}}

	got := Definitions(base, proposed, false)
	core := got.Licensed.Facets["core"]
	if core.Files != 10 {
		t.Errorf("core.files = %d, want 10", core.Files)
	}
	if len(core.Attribution.Parties) != 2 {
		t.Errorf("core.attribution.parties = %v, want Alice then Bob", core.Attribution.Parties)
	}
	wantExprs := []string{"MIT", "GPL-3.0"}
	if len(core.Discovered.Expressions) != 2 || core.Discovered.Expressions[0] != wantExprs[0] || core.Discovered.Expressions[1] != wantExprs[1] {
		t.Errorf("core.discovered.expressions = %v, want %v", core.Discovered.Expressions, wantExprs)
	}
	if core.Discovered.Unknown != 2 {
		t.Errorf("core.discovered.unknown = %d, want 2", core.Discovered.Unknown)
	}
	if got.Licensed.Facets["tests"].Files != 3 {
		t.Errorf("tests facet not carried over: %#v", got.Licensed.Facets["tests"])
	}
}

// ============================================================
// Files — union by path
// ============================================================

func TestDefinitions_FilesUnionByPath(t *testing.T) {
	base := &model.Definition{Files: []*model.FileEntry{
		{Path: "a", License: "MIT"},
	}}
	proposed := &model.Definition{Files: []*model.FileEntry{
		{Path: "a", License: "GPL-3.0"},
		{Path: "b", License: "MIT"},
	}}

	got := Definitions(base, proposed, false)
	if len(got.Files) != 2 {
		t.Fatalf("got %d files, want exactly 2 (no duplicate paths)", len(got.Files))
	}
	byPath := map[string]*model.FileEntry{}
	for _, f := range got.Files {
		byPath[f.Path] = f
	}
	if byPath["a"].License != "MIT AND GPL-3.0" {
		t.Errorf("a.license = %q, want %q", byPath["a"].License, "MIT AND GPL-3.0")
	}
	if byPath["b"].License != "MIT" {
		t.Errorf("b.license = %q, want MIT", byPath["b"].License)
	}
}

func TestDefinitions_FileEntryFieldsFollowPolicyTable(t *testing.T) {
	base := &model.Definition{Files: []*model.FileEntry{{
		Path:         "LICENSE",
		Attributions: []string{"Copyright Alice"},
		Facets:       []string{"core"},
		Hashes:       map[string]string{"sha1": "aaa"},
		Token:        "tok-base",
	}}}
	proposed := &model.Definition{Files: []*model.FileEntry{{
		Path:         "LICENSE",
		Attributions: []string{"Copyright Bob", "Copyright Alice"},
		Natures:      []string{"license"},
		Hashes:       map[string]string{"sha1": "bbb", "sha256": "ccc"},
		Token:        "tok-proposed",
	}}}

	got := Definitions(base, proposed, false)
	f := got.Files[0]
	if len(f.Attributions) != 2 {
		t.Errorf("attributions = %v, want union of 2", f.Attributions)
	}
	if len(f.Facets) != 1 || f.Facets[0] != "core" {
		t.Errorf("facets = %v, want [core]", f.Facets)
	}
	if len(f.Natures) != 1 || f.Natures[0] != "license" {
		t.Errorf("natures = %v, want [license]", f.Natures)
	}
	if f.Hashes["sha1"] != "bbb" || f.Hashes["sha256"] != "ccc" {
		t.Errorf("hashes = %v, want proposed overwriting by key", f.Hashes)
	}
	if f.Token != "tok-base" {
		t.Errorf("token = %q, want base kept without override", f.Token)
	}
}

func TestDefinitions_DuplicatePathsInInputCollapsed(t *testing.T) {
	// Input violating the path-uniqueness invariant produces a best-effort
	// combined entry, not an error and not a duplicate.
	base := &model.Definition{Files: []*model.FileEntry{
		{Path: "a", License: "MIT"},
		{Path: "a", License: "GPL-3.0"},
	}}
	proposed := &model.Definition{Files: []*model.FileEntry{
		{Path: "a", Attributions: []string{"Copyright Alice"}},
	}}

	got := Definitions(base, proposed, false)
	if len(got.Files) != 1 {
		t.Fatalf("got %d files, want 1", len(got.Files))
	}
	f := got.Files[0]
	if f.License != "MIT AND GPL-3.0" {
		t.Errorf("license = %q, want %q", f.License, "MIT AND GPL-3.0")
	}
	if len(f.Attributions) != 1 {
		t.Errorf("attributions = %v", f.Attributions)
	}
}

// ============================================================
// Usage patterns
// ============================================================

// Folding a scanner's separate license-detector and copyright-detector passes
// into one summary (sub-facets of one tool's own output).
func TestDefinitions_SubFacetFold(t *testing.T) {
	licensePass := &model.Definition{
		Licensed: &model.Licensed{Declared: "Apache-2.0"},
		Files:    []*model.FileEntry{{Path: "LICENSE", License: "Apache-2.0"}},
	}
	copyrightPass := &model.Definition{
		Files: []*model.FileEntry{{Path: "LICENSE", Attributions: []string{"Copyright Example Corp"}}},
	}

	summary := Definitions(nil, licensePass, false)
	summary = Definitions(summary, copyrightPass, false)

	if summary.Licensed.Declared != "Apache-2.0" {
		t.Errorf("declared = %q", summary.Licensed.Declared)
	}
	if len(summary.Files) != 1 {
		t.Fatalf("files = %d, want 1", len(summary.Files))
	}
	f := summary.Files[0]
	if f.License != "Apache-2.0" || len(f.Attributions) != 1 {
		t.Errorf("file = %#v, want license and attribution both present", f)
	}
}

// Folding interesting-files side-channel data into an already-computed summary.
func TestDefinitions_SideChannelFold(t *testing.T) {
	summary := &model.Definition{
		Licensed: &model.Licensed{Declared: "MIT"},
		Files:    []*model.FileEntry{{Path: "README.md"}},
	}
	sideChannel := &model.Definition{
		Files: []*model.FileEntry{{
			Path:   "NOTICE",
			Token:  "3f2a",
			Hashes: map[string]string{"sha256": "deadbeef"},
		}},
	}

	got := Definitions(summary, sideChannel, false)
	if len(got.Files) != 2 {
		t.Fatalf("files = %d, want 2", len(got.Files))
	}
	if got.Licensed.Declared != "MIT" {
		t.Errorf("declared = %q, side channel must not disturb it", got.Licensed.Declared)
	}
}
