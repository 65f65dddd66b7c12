package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Class", "Value", "Rate"}
	rows := [][]string{
		{"tone", "T3", "25.0%"},
		{"unit", "ma_3", "100.0%"},
	}
	rightAlign := map[int]bool{2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Class  Value    Rate" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "tone   T3      25.0%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "unit   ma_3   100.0%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Form", "Pinyin"}, [][]string{{"你好", "ni3 hao3"}, {"a", "a1"}}, nil)
	if lines[1] != "你好  ni3 hao3" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
	if lines[2] != "a     a1" {
		t.Fatalf("unexpected narrow row: %q", lines[2])
	}
}
