package prefs

import (
	"reflect"
	"testing"
)

func TestCellWatchDeliversOldAndNew(t *testing.T) {
	cell := NewCell(10)
	var gotOld, gotNew int
	calls := 0
	cancel := cell.Watch(func(old, new int) {
		gotOld, gotNew = old, new
		calls++
	})
	defer cancel()

	cell.Set(20)
	if calls != 1 {
		t.Fatalf("expected one notification, got %d", calls)
	}
	if gotOld != 10 || gotNew != 20 {
		t.Fatalf("expected 10 -> 20, got %d -> %d", gotOld, gotNew)
	}
	if cell.Get() != 20 {
		t.Fatalf("expected stored value 20, got %d", cell.Get())
	}
}

func TestCellEqualWriteFiresNothing(t *testing.T) {
	cell := NewCell("same")
	calls := 0
	cell.Watch(func(_, _ string) { calls++ })

	cell.Set("same")
	if calls != 0 {
		t.Fatalf("expected no notification for equal write, got %d", calls)
	}

	list := NewCell([]string{"a"})
	listCalls := 0
	list.Watch(func(_, _ []string) { listCalls++ })
	list.Set([]string{"a"})
	if listCalls != 0 {
		t.Fatalf("expected deep-equal list write to be a no-op, got %d calls", listCalls)
	}
}

func TestCellWatchCancelRemovesWatcher(t *testing.T) {
	cell := NewCell(1)
	first := 0
	second := 0
	cancel := cell.Watch(func(_, _ int) { first++ })
	cell.Watch(func(_, _ int) { second++ })

	cell.Set(2)
	cancel()
	cell.Set(3)

	if first != 1 {
		t.Fatalf("expected cancelled watcher to stop at 1, got %d", first)
	}
	if second != 2 {
		t.Fatalf("expected remaining watcher to see both writes, got %d", second)
	}
}

func TestCellValueCoercesStoredShapes(t *testing.T) {
	cell := NewCell(5)
	value := &cellValue[int]{cell: cell, kind: KindInt}

	if err := value.Set(float64(42)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cell.Get() != 42 {
		t.Fatalf("expected 42, got %d", cell.Get())
	}

	if err := value.Set("not a number"); err == nil {
		t.Fatalf("expected error for shape mismatch")
	}
	if cell.Get() != 42 {
		t.Fatalf("expected failed write to leave cell untouched, got %d", cell.Get())
	}
}

func TestSingleSelectResolvesStoredStrings(t *testing.T) {
	cell := NewCell("1920x1080")
	value := &selectValue[string]{cell: cell, items: []string{"1024x768", "1920x1080"}}

	if err := value.Set("1024x768"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cell.Get() != "1024x768" {
		t.Fatalf("expected resolution to switch, got %q", cell.Get())
	}

	if err := value.Set("640x480"); err == nil {
		t.Fatalf("expected error for unknown item")
	}
}

func TestSingleSelectResolvesNonStringItems(t *testing.T) {
	cell := NewCell(2)
	value := &selectValue[int]{cell: cell, items: []int{1, 2, 3}}

	if err := value.Set("3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cell.Get() != 3 {
		t.Fatalf("expected stored string to resolve to item 3, got %d", cell.Get())
	}

	if err := value.Set(1); err != nil {
		t.Fatalf("unexpected error for typed write: %v", err)
	}
	if cell.Get() != 1 {
		t.Fatalf("expected 1, got %d", cell.Get())
	}
}

func TestMultiSelectDropsUnknownEntries(t *testing.T) {
	cell := NewCell([]string{})
	value := &multiSelectValue[string]{cell: cell, items: []string{"a", "b", "c"}}

	if err := value.Set([]any{"a", "gone", "c"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cell.Get(), []string{"a", "c"}) {
		t.Fatalf("expected unknown entries dropped, got %v", cell.Get())
	}
}

func TestMultiSelectAcceptsTypedSlice(t *testing.T) {
	cell := NewCell([]string{"a"})
	value := &multiSelectValue[string]{cell: cell, items: []string{"a", "b"}}

	if err := value.Set([]string{"b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cell.Get(), []string{"b"}) {
		t.Fatalf("expected typed slice stored, got %v", cell.Get())
	}
}

func TestMultiSelectSelectionStrings(t *testing.T) {
	cell := NewCell([]int{2, 3})
	value := &multiSelectValue[int]{cell: cell, items: []int{1, 2, 3}}

	got := value.selectionStrings()
	if !reflect.DeepEqual(got, []any{"2", "3"}) {
		t.Fatalf("expected string renderings, got %v", got)
	}
}

func TestSettingItemsAndSliderRange(t *testing.T) {
	resolution := SingleSelect("Resolution", []string{"a", "b"}, NewCell("a"))
	items := resolution.Items()
	if len(items) != 2 || items[0] != "a" {
		t.Fatalf("expected declared items, got %v", items)
	}

	plain := String("Name", NewCell(""))
	if plain.Items() != nil {
		t.Fatalf("expected nil items for non-select setting")
	}

	slider := FloatSlider("Scaling", NewCell(1.0), 0.5, 3, 1)
	r, ok := slider.SliderRange()
	if !ok {
		t.Fatalf("expected slider range")
	}
	if r.Min != 0.5 || r.Max != 3 || r.Precision != 1 {
		t.Fatalf("unexpected range: %+v", r)
	}
	if _, ok := plain.SliderRange(); ok {
		t.Fatalf("expected no slider range on plain setting")
	}
}

func TestKindStrings(t *testing.T) {
	cases := map[Kind]string{
		KindBool:         "bool",
		KindInt:          "int",
		KindFloat:        "float",
		KindString:       "string",
		KindSingleSelect: "single-select",
		KindMultiSelect:  "multi-select",
		KindCustom:       "custom",
	}
	for kind, want := range cases {
		if kind.String() != want {
			t.Fatalf("expected %q, got %q", want, kind.String())
		}
	}
}
