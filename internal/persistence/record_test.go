package persistence

import "testing"

type sampleBook struct {
	ID              string `json:"id"`
	ISBN            string `json:"isbn"`
	PublicationYear int    `json:"publicationYear"`
}

func TestRecordEncodeDecode(t *testing.T) {
	rec, err := EncodeRecord(sampleBook{ID: "x", ISBN: "123", PublicationYear: 2020})
	if err != nil {
		t.Fatalf("EncodeRecord failed: %v", err)
	}
	if got := rec.Text("isbn"); got != "123" {
		t.Errorf("Text(isbn) = %q", got)
	}
	if got := rec.Text("publicationYear"); got != "" {
		t.Errorf("Text on a number = %q, want empty", got)
	}
	if got := rec.Text("missing"); got != "" {
		t.Errorf("Text on a missing field = %q", got)
	}

	var back sampleBook
	if err := rec.Decode(&back); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if back != (sampleBook{ID: "x", ISBN: "123", PublicationYear: 2020}) {
		t.Errorf("Decode = %+v", back)
	}
}

func TestEncodeRecordRejectsNonObjects(t *testing.T) {
	for _, v := range []any{nil, 3, "x", []int{1}} {
		if _, err := EncodeRecord(v); err == nil {
			t.Errorf("EncodeRecord(%v) succeeded", v)
		}
	}
}

func TestRecordCloneIsIndependent(t *testing.T) {
	rec := Record{}
	if err := rec.Set("title", "A"); err != nil {
		t.Fatal(err)
	}
	c := rec.Clone()
	if err := c.Set("title", "B"); err != nil {
		t.Fatal(err)
	}
	if rec.Text("title") != "A" {
		t.Errorf("original mutated: %q", rec.Text("title"))
	}
}
