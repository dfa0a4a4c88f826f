package result

import (
	"reflect"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "no-op", raw: "702893 gpa1:3.45", want: "702893 gpa1:3.45"},
		{name: "newlines and tabs", raw: "702893\n\n gpa1:3.45\tgpa2:3.60\r\n", want: "702893 gpa1:3.45 gpa2:3.60 "},
		{name: "runs collapse to one space", raw: "a     b", want: "a b"},
		{name: "empty", raw: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.raw); got != tt.want {
				t.Errorf("NormalizeText() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestSemesterLabel(t *testing.T) {
	want := map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 7: "7th", 8: "8th"}
	for n, label := range want {
		if got := SemesterLabel(n); got != label {
			t.Errorf("SemesterLabel(%d) = %q; want %q", n, got, label)
		}
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		roll string
		want Outcome
	}{
		{
			name: "roll not present",
			text: "1st Semester Results 702893 gpa1:3.45",
			roll: "999999",
			want: Outcome{Roll: "999999", Status: StatusNotFound, Reason: ReasonRollNotPresent},
		},
		{
			name: "roll present but nothing parseable",
			text: "some header 702893 -- -- -- 702900 gpa1:3.00",
			roll: "702893",
			want: Outcome{Roll: "702893", Status: StatusNotFound, Reason: ReasonNoParseableData},
		},
		{
			name: "tagged gpas, span bounded by next roll",
			text: "header 702893 gpa1:3.45 gpa2:3.60 702900 gpa1:2.00",
			roll: "702893",
			want: Outcome{
				Roll:   "702893",
				Status: StatusFound,
				GPAs: []GPA{
					{Semester: 1, Label: "1st", Score: 3.45},
					{Semester: 2, Label: "2nd", Score: 3.60},
				},
			},
		},
		{
			name: "tagged gpas at end of text",
			text: "702893 gpa1:3.45 gpa2:3.60",
			roll: "702893",
			want: Outcome{
				Roll:   "702893",
				Status: StatusFound,
				GPAs: []GPA{
					{Semester: 1, Label: "1st", Score: 3.45},
					{Semester: 2, Label: "2nd", Score: 3.60},
				},
			},
		},
		{
			name: "referred tag with bracketed subjects",
			text: "702893 gpa1:Ref gpa2:3.10 {512(Data Structures)}",
			roll: "702893",
			want: Outcome{
				Roll:   "702893",
				Status: StatusFound,
				GPAs: []GPA{
					{Semester: 1, Label: "1st", Referred: true},
					{Semester: 2, Label: "2nd", Score: 3.10},
				},
				Referred: []string{"512(DataStructures)"},
			},
		},
		{
			name: "ref marker is case-insensitive",
			text: "702893 gpa1:REF",
			roll: "702893",
			want: Outcome{
				Roll:   "702893",
				Status: StatusFound,
				GPAs:   []GPA{{Semester: 1, Label: "1st", Referred: true}},
			},
		},
		{
			name: "tags unordered in source come out sorted",
			text: "702893 gpa3:3.00 gpa1:2.00",
			roll: "702893",
			want: Outcome{
				Roll:   "702893",
				Status: StatusFound,
				GPAs: []GPA{
					{Semester: 1, Label: "1st", Score: 2.00},
					{Semester: 3, Label: "3rd", Score: 3.00},
				},
			},
		},
		{
			name: "duplicate semester tags, last one wins",
			text: "702893 gpa1:2.50 gpa1:3.00",
			roll: "702893",
			want: Outcome{
				Roll:   "702893",
				Status: StatusFound,
				GPAs:   []GPA{{Semester: 1, Label: "1st", Score: 3.00}},
			},
		},
		{
			name: "referred-only record synthesizes a 1st-semester entry",
			text: "702893 {512(Data Structures) 610(Algorithms)}",
			roll: "702893",
			want: Outcome{
				Roll:     "702893",
				Status:   StatusFound,
				GPAs:     []GPA{{Semester: 1, Label: "1st", Referred: true}},
				Referred: []string{"512(DataStructures)", "610(Algorithms)"},
			},
		},
		{
			name: "legacy ref_sub form is equivalent to bracketed form",
			text: "702893 ref_sub:512(Data Structures) 610(Algorithms)",
			roll: "702893",
			want: Outcome{
				Roll:     "702893",
				Status:   StatusFound,
				GPAs:     []GPA{{Semester: 1, Label: "1st", Referred: true}},
				Referred: []string{"512(DataStructures)", "610(Algorithms)"},
			},
		},
		{
			name: "bracketed form takes priority over legacy marker",
			text: "702893 gpa1:3.00 {512(A)} ref_sub:600(B)",
			roll: "702893",
			want: Outcome{
				Roll:     "702893",
				Status:   StatusFound,
				GPAs:     []GPA{{Semester: 1, Label: "1st", Score: 3.00}},
				Referred: []string{"512(A)"},
			},
		},
		{
			name: "duplicate subjects are deduplicated",
			text: "702893 gpa1:Ref {512(A) 512 (A) 600(B)}",
			roll: "702893",
			want: Outcome{
				Roll:     "702893",
				Status:   StatusFound,
				GPAs:     []GPA{{Semester: 1, Label: "1st", Referred: true}},
				Referred: []string{"512(A)", "600(B)"},
			},
		},
		{
			name: "three referred subjects and nothing else is not a dropout",
			text: "702893 ref_sub:101(X) 102(Y) 103(Z)",
			roll: "702893",
			want: Outcome{
				Roll:     "702893",
				Status:   StatusFound,
				GPAs:     []GPA{{Semester: 1, Label: "1st", Referred: true}},
				Referred: []string{"101(X)", "102(Y)", "103(Z)"},
			},
		},
		{
			name: "four referred subjects and no gpa data is a dropout",
			text: "702893 ref_sub:101(X) 102(Y) 103(Z) 104(W)",
			roll: "702893",
			want: Outcome{Roll: "702893", Status: StatusDropout},
		},
		{
			name: "four referred subjects with a gpa tag stays found",
			text: "702893 gpa1:2.10 {101(X) 102(Y) 103(Z) 104(W)}",
			roll: "702893",
			want: Outcome{
				Roll:     "702893",
				Status:   StatusFound,
				GPAs:     []GPA{{Semester: 1, Label: "1st", Score: 2.10}},
				Referred: []string{"101(X)", "102(Y)", "103(Z)", "104(W)"},
			},
		},
		{
			name: "compact legacy format",
			text: "old report 702893 ( 3.47 ) 702900 ( 2.95 )",
			roll: "702893",
			want: Outcome{
				Roll:   "702893",
				Status: StatusFound,
				GPAs:   []GPA{{Semester: 1, Label: "1st", Score: 3.47}},
			},
		},
		{
			name: "compact value is ignored when tags exist",
			text: "702893 gpa1:3.20 ( 2.80 )",
			roll: "702893",
			want: Outcome{
				Roll:   "702893",
				Status: StatusFound,
				GPAs:   []GPA{{Semester: 1, Label: "1st", Score: 3.20}},
			},
		},
		{
			name: "compact value overrides the dropout heuristic",
			text: "702893 ( 2.10 ) {101(X) 102(Y) 103(Z) 104(W)}",
			roll: "702893",
			want: Outcome{
				Roll:     "702893",
				Status:   StatusFound,
				GPAs:     []GPA{{Semester: 1, Label: "1st", Score: 2.10}},
				Referred: []string{"101(X)", "102(Y)", "103(Z)", "104(W)"},
			},
		},
		{
			name: "messy whitespace from the export process",
			text: "702893\n\n   gpa1:3.45\t gpa2:\t3.60", // gpa2 broken by a tab: not a tag
			roll: "702893",
			want: Outcome{
				Roll:   "702893",
				Status: StatusFound,
				GPAs:   []GPA{{Semester: 1, Label: "1st", Score: 3.45}},
			},
		},
		{
			name: "6+ digit subject code truncates the span (known weakness)",
			text: "702893 ref_sub:1234567(Long Code)",
			roll: "702893",
			want: Outcome{Roll: "702893", Status: StatusNotFound, Reason: ReasonNoParseableData},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text, tt.roll)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract() = %+v; want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	text := "702893 gpa1:Ref gpa2:3.10 {512(Data Structures)} 702900 gpa1:2.00"
	first := Extract(text, "702893")
	for i := 0; i < 10; i++ {
		if got := Extract(text, "702893"); !reflect.DeepEqual(got, first) {
			t.Fatalf("Extract() not deterministic: %+v != %+v", got, first)
		}
	}
}

func TestExtractOrderingProperty(t *testing.T) {
	// whatever the tag order in the document, gpas come out ascending
	texts := []string{
		"702893 gpa4:3.0 gpa2:2.0 gpa1:1.9 gpa3:2.5",
		"702893 gpa1:1.9 gpa2:2.0 gpa3:2.5 gpa4:3.0",
		"702893 gpa2:2.0 gpa4:3.0 gpa1:1.9 gpa3:2.5",
	}
	for _, text := range texts {
		out := Extract(text, "702893")
		if !out.Found() {
			t.Fatalf("Extract(%q) = %+v; want found", text, out)
		}
		for i := 1; i < len(out.GPAs); i++ {
			if out.GPAs[i-1].Semester >= out.GPAs[i].Semester {
				t.Errorf("Extract(%q) gpas out of order: %+v", text, out.GPAs)
			}
		}
	}
}
