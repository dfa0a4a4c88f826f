package result

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// The results document is a tabular report exported to a continuous text
// stream: no record separators, inconsistent whitespace, and (at least)
// three historical encodings of the same semantic fields. Record
// boundaries are inferred positionally and each encoding is tried in a
// fixed order; see locateRecord and classify.

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)

	// a run of 6+ digits is a plausible roll number; used as the record boundary
	nextRollRegex = regexp.MustCompile(`[0-9]{6,}`)

	// "gpa<semester>:<value>", value is a decimal or a (case-insensitive) "ref" marker
	gpaTagRegex = regexp.MustCompile(`(?i)gpa([0-9]):(ref|[0-9]+(?:\.[0-9]+)?)`)

	// bracketed referred-subject block, no nesting
	bracketRegex = regexp.MustCompile(`\{([^{}]*)\}`)

	// "512(Data Structures)" - code, optional whitespace, parenthesized name
	subjectRegex = regexp.MustCompile(`[0-9]+\s*\([^()]*\)`)

	// legacy single-semester layout: "( 3.47 )"
	compactRegex = regexp.MustCompile(`\( ([0-9]+(?:\.[0-9]+)?) \)`)
)

// legacy marker that precedes the referred-subject list when no bracketed block is used
const legacyRefMarker = "ref_sub:"

// a record with this many referred subjects and no GPA data at all is a dropout
const dropoutReferredMin = 4

// NormalizeText collapses every maximal whitespace run in the raw document
// text into a single space. The export process inserts arbitrary
// spacing/newlines that would otherwise break the fixed patterns above.
func NormalizeText(raw string) string {
	return whitespaceRegex.ReplaceAllString(raw, " ")
}

// Extract locates the record belonging to roll inside documentText, parses
// it and classifies the student's outcome. It is pure and deterministic:
// same inputs, same Outcome; no I/O, no shared state.
func Extract(documentText, roll string) Outcome {
	text := NormalizeText(documentText)

	span, ok := locateRecord(text, roll)
	if !ok {
		return notFound(roll, ReasonRollNotPresent)
	}

	tags := extractTags(span)
	referred := extractReferred(span)
	compact, hasCompact := extractCompact(span)

	return classify(roll, tags, referred, compact, hasCompact)
}

// locateRecord returns the substring of text attributable to roll: from the
// first occurrence of roll up to the next 6+ digit run (a plausible next
// roll number), or to end-of-text. A referred-subject code that happens to
// be 6+ digits will truncate the span early; the source format gives us
// nothing better to anchor on.
func locateRecord(text, roll string) (string, bool) {
	start := strings.Index(text, roll)
	if start < 0 {
		return "", false
	}

	rest := text[start+len(roll):]
	if loc := nextRollRegex.FindStringIndex(rest); loc != nil {
		rest = rest[:loc[0]]
	}
	return roll + rest, true
}

// extractTags collects every "gpa<N>:<value>" tag in the span, one per
// semester. Duplicate semester tags resolve last-seen-wins.
func extractTags(span string) []GPA {
	matches := gpaTagRegex.FindAllStringSubmatch(span, -1)
	if matches == nil {
		return nil
	}

	bySemester := make(map[int]GPA, len(matches))
	for _, m := range matches {
		sem, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		entry := GPA{Semester: sem, Label: SemesterLabel(sem)}
		if strings.EqualFold(m[2], "ref") {
			entry.Referred = true
		} else {
			score, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			entry.Score = score
		}
		bySemester[sem] = entry
	}

	tags := make([]GPA, 0, len(bySemester))
	for _, entry := range bySemester {
		tags = append(tags, entry)
	}
	return tags
}

// extractReferred returns the raw referred-subject list of the span, in
// document order, whitespace deleted ("512(DataStructures)"). Two mutually
// exclusive encodings, tried in priority order: a bracketed {...} block,
// else everything after the legacy "ref_sub:" marker. Duplicates are kept;
// deduplication happens in classify.
func extractReferred(span string) []string {
	var listText string
	if m := bracketRegex.FindStringSubmatch(span); m != nil {
		listText = m[1]
	} else if i := strings.Index(span, legacyRefMarker); i >= 0 {
		listText = span[i+len(legacyRefMarker):]
	} else {
		return nil
	}

	matches := subjectRegex.FindAllString(listText, -1)
	if matches == nil {
		return nil
	}
	subjects := make([]string, 0, len(matches))
	for _, m := range matches {
		subjects = append(subjects, whitespaceRegex.ReplaceAllString(m, ""))
	}
	return subjects
}

// extractCompact finds the single parenthesized GPA of the legacy
// single-semester layout, e.g. "( 3.47 )". Only meaningful when the span
// has no gpa tags.
func extractCompact(span string) (float64, bool) {
	m := compactRegex.FindStringSubmatch(span)
	if m == nil {
		return 0, false
	}
	score, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return score, true
}

// classify combines the extractor outputs into the final Outcome:
//
//  1. no tags, no compact value, 4+ referred subjects -> Dropout. The source
//     report marks chronic-failure students only by an unusually long
//     referred list with no GPA data; there is no explicit flag.
//  2. no tags otherwise -> synthesize a single 1st-semester entry from the
//     compact value, or a Referred entry if only subjects were found.
//  3. GPA entries sorted ascending by semester.
//  4. nothing at all after 1-3 -> not found ("no parseable data"): the roll
//     was located but nothing recognizable followed it.
func classify(roll string, tags []GPA, referred []string, compact float64, hasCompact bool) Outcome {
	if len(tags) == 0 {
		if !hasCompact && len(referred) >= dropoutReferredMin {
			return Outcome{Roll: roll, Status: StatusDropout}
		}
		if hasCompact {
			tags = []GPA{{Semester: 1, Label: SemesterLabel(1), Score: compact}}
		} else if len(referred) > 0 {
			tags = []GPA{{Semester: 1, Label: SemesterLabel(1), Referred: true}}
		}
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].Semester < tags[j].Semester })

	subjects := dedupeSubjects(referred)
	if len(tags) == 0 && len(subjects) == 0 {
		return notFound(roll, ReasonNoParseableData)
	}

	return Outcome{Roll: roll, Status: StatusFound, GPAs: tags, Referred: subjects}
}

func dedupeSubjects(subjects []string) []string {
	if subjects == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(subjects))
	out := make([]string, 0, len(subjects))
	for _, s := range subjects {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
