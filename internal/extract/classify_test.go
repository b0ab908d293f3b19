package extract

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		text     string
		wantKind Kind
		wantOK   bool
	}{
		{"FIXME: a", FIXME, true},
		{"TODO: b", TODO, true},
		{"todo: lower case", TODO, true},
		{"FixMe later", FIXME, true},
		{"fixmeXY", FIXME, true},
		{"   TODO: leading space", TODO, true},
		{"//FIXME: marker", FIXME, true},
		{"*TODO: star", TODO, true},
		{"/*TODO: block marker", TODO, true},
		{"// FIXME: space after marker", 0, false},
		{"FIXME!", 0, false},
		{"TODO x", 0, false},
		{"TODO", 0, false},
		{"", 0, false},
		{"NOTE: something", 0, false},
		{"a TODO: later", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			kind, ok := Classify(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("Classify(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if ok && kind != tt.wantKind {
				t.Errorf("Classify(%q) = %v, want %v", tt.text, kind, tt.wantKind)
			}
		})
	}
}

func TestClassifyBoundary(t *testing.T) {
	// six stripped bytes are never enough, seven are
	if _, ok := Classify("TODO:x"); ok {
		t.Error("expected no kind for a 6 byte body")
	}
	if kind, ok := Classify("TODO:xy"); !ok || kind != TODO {
		t.Errorf("Classify(%q) = %v, %v, want TODO, true", "TODO:xy", kind, ok)
	}
	if _, ok := Classify("*FIXME!"); ok {
		t.Error("expected the marker to count against the length check")
	}
}
