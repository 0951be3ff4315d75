package prefs

import (
	"errors"
	"testing"

	"github.com/goliatone/go-prefs/pkg/event"
	"github.com/goliatone/go-prefs/storage"
)

func TestNewValidatesInputs(t *testing.T) {
	fx := newModelFixture()

	if _, err := New(nil, fx.categories); !errors.Is(err, ErrNilAdapter) {
		t.Fatalf("expected ErrNilAdapter, got %v", err)
	}
	if _, err := New(newFakeAdapter(), nil); !errors.Is(err, ErrNoCategories) {
		t.Fatalf("expected ErrNoCategories, got %v", err)
	}

	welcome := NewCell("hello")
	doubled := []*Category{
		SettingsCategory("General", String("Welcome Text", welcome)),
		SettingsCategory("General", String("Other", NewCell(""))),
	}
	_, err := New(newFakeAdapter(), doubled)
	var confErr *ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected ConfigurationError, got %T (%v)", err, err)
	}
	if !errors.Is(err, ErrDuplicateBreadcrumb) {
		t.Fatalf("expected duplicate breadcrumb cause, got %v", err)
	}
}

func TestNewDoesNoStorageTraffic(t *testing.T) {
	fx := newModelFixture()
	adapter := newFakeAdapter()

	m, err := New(adapter, fx.categories)
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}
	if len(adapter.saved) != 0 || len(adapter.loads) != 0 {
		t.Fatalf("expected no storage traffic from New, got saves %v loads %v", adapter.saved, adapter.loads)
	}
	if m.DisplayedCategory() != fx.general {
		t.Fatalf("expected the first root to be displayed")
	}

	if err := m.LoadSettingValues(); err != nil {
		t.Fatalf("unexpected error from LoadSettingValues: %v", err)
	}
	if len(adapter.loads) != 5 {
		t.Fatalf("expected one load per setting, got %v", adapter.loads)
	}
}

func TestLoadSettingValuesAppliesStoredValues(t *testing.T) {
	fx := newModelFixture()
	adapter := newFakeAdapter()
	adapter.scalars["General..Welcome Text"] = "Howdy"
	adapter.scalars["General..Brightness"] = 80
	adapter.scalars["General..Night Mode"] = true
	adapter.scalars["Screen.Scaling.Resolution"] = "1280x1024"
	adapter.lists["Screen.Scaling.Favorites"] = []any{"work", "gone"}

	m, err := Load(adapter, fx.categories)
	if err != nil {
		t.Fatalf("unexpected error from Load: %v", err)
	}

	if got := fx.welcome.Get(); got != "Howdy" {
		t.Fatalf("expected stored welcome text, got %q", got)
	}
	if got := fx.brightness.Get(); got != 80 {
		t.Fatalf("expected stored brightness, got %d", got)
	}
	if !fx.night.Get() {
		t.Fatalf("expected stored night mode")
	}
	if got := fx.resolution.Get(); got != "1280x1024" {
		t.Fatalf("expected stored resolution, got %q", got)
	}
	favorites := fx.favorites.Get()
	if len(favorites) != 1 || favorites[0] != "work" {
		t.Fatalf("expected unknown favorites to be dropped, got %v", favorites)
	}

	if m.CanUndo() || m.History().Len() != 0 {
		t.Fatalf("loads must not become undoable history entries")
	}
}

func TestLoadSettingValuesIsolatesFailures(t *testing.T) {
	fx := newModelFixture()
	adapter := newFakeAdapter()
	adapter.scalars["General..Welcome Text"] = "Howdy"
	adapter.failLoads = map[string]error{
		"General..Brightness": errors.New("backend down"),
	}

	m, err := New(adapter, fx.categories)
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}

	err = m.LoadSettingValues()
	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageError, got %T (%v)", err, err)
	}
	if storageErr.Op != "load" || storageErr.Key != "General..Brightness" {
		t.Fatalf("unexpected storage error detail: %v", storageErr)
	}

	if got := fx.brightness.Get(); got != 50 {
		t.Fatalf("failing setting should keep its default, got %d", got)
	}
	if got := fx.welcome.Get(); got != "Howdy" {
		t.Fatalf("healthy settings should still load, got %q", got)
	}

	if _, err := Load(newFixtureAdapterWithFailure(), newModelFixture().categories); err == nil {
		t.Fatalf("expected Load to fail when any setting fails")
	}
}

func TestSaveSettingsJoinsFailuresAndEncodesKinds(t *testing.T) {
	fx := newModelFixture()
	adapter := newFakeAdapter()
	adapter.failSaves = map[string]error{
		"General..Night Mode": errors.New("disk full"),
	}

	m, err := New(adapter, fx.categories)
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}

	err = m.SaveSettings()
	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageError, got %T (%v)", err, err)
	}
	if storageErr.Op != "save" || storageErr.Key != "General..Night Mode" {
		t.Fatalf("unexpected storage error detail: %v", storageErr)
	}

	if got := adapter.scalars["General..Brightness"]; got != 50 {
		t.Fatalf("expected brightness persisted despite the failure, got %v", got)
	}
	if got := adapter.scalars["Screen.Scaling.Resolution"]; got != "1024x768" {
		t.Fatalf("expected single select persisted as its rendering, got %v", got)
	}
	stored := adapter.lists["Screen.Scaling.Favorites"]
	if len(stored) != 1 || stored[0] != "home" {
		t.Fatalf("expected selection persisted as a list, got %v", stored)
	}
}

func TestSaveCommitsOpenTransactionAndStoresSelection(t *testing.T) {
	fx := newModelFixture()
	adapter := newFakeAdapter()
	m, err := New(adapter, fx.categories)
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}
	brightness, ok := m.Setting("General..Brightness")
	if !ok {
		t.Fatalf("expected brightness setting to resolve")
	}

	if err := brightness.SetValue(80); err != nil {
		t.Fatalf("unexpected error from SetValue: %v", err)
	}
	m.BeginTransaction()
	if err := brightness.SetValue(90); err != nil {
		t.Fatalf("unexpected error from SetValue: %v", err)
	}

	if err := m.Save(); err != nil {
		t.Fatalf("unexpected error from Save: %v", err)
	}
	if m.History().InTransaction() {
		t.Fatalf("expected Save to force-commit the open transaction")
	}
	if got := adapter.scalars["General..Brightness"]; got != 90 {
		t.Fatalf("expected latest value persisted, got %v", got)
	}
	if got := adapter.scalars[storage.KeySelectedCategory]; got != "General" {
		t.Fatalf("expected displayed category persisted, got %v", got)
	}

	if !m.Undo() {
		t.Fatalf("expected the committed transaction to be undoable")
	}
	if got := fx.brightness.Get(); got != 80 {
		t.Fatalf("expected undo to rewind the transaction, got %d", got)
	}
}

func TestDiscardChangesRestoresSessionStart(t *testing.T) {
	fx := newModelFixture()
	m, err := New(newFakeAdapter(), fx.categories)
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}
	welcome, _ := m.Setting("General..Welcome Text")
	brightness, _ := m.Setting("General..Brightness")

	if err := welcome.SetValue("Edited"); err != nil {
		t.Fatalf("unexpected error from SetValue: %v", err)
	}
	if err := brightness.SetValue(80); err != nil {
		t.Fatalf("unexpected error from SetValue: %v", err)
	}

	if err := m.DiscardChanges(); err != nil {
		t.Fatalf("unexpected error from DiscardChanges: %v", err)
	}
	if got := fx.welcome.Get(); got != "Hello" {
		t.Fatalf("expected welcome restored, got %q", got)
	}
	if got := fx.brightness.Get(); got != 50 {
		t.Fatalf("expected brightness restored, got %d", got)
	}
	if m.CanUndo() {
		t.Fatalf("expected nothing left to undo after discard")
	}
}

func TestCloseSavesOrDiscards(t *testing.T) {
	fx := newModelFixture()
	adapter := newFakeAdapter()
	m, err := New(adapter, fx.categories)
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}
	brightness, _ := m.Setting("General..Brightness")
	if err := brightness.SetValue(80); err != nil {
		t.Fatalf("unexpected error from SetValue: %v", err)
	}

	if err := m.Close(true); err != nil {
		t.Fatalf("unexpected error from Close: %v", err)
	}
	if got := adapter.scalars["General..Brightness"]; got != 80 {
		t.Fatalf("expected Close(true) to persist values, got %v", got)
	}

	if err := m.LoadSettingValues(); !errors.Is(err, ErrModelClosed) {
		t.Fatalf("expected ErrModelClosed, got %v", err)
	}
	if err := m.Save(); !errors.Is(err, ErrModelClosed) {
		t.Fatalf("expected ErrModelClosed, got %v", err)
	}
	if err := m.Close(true); !errors.Is(err, ErrModelClosed) {
		t.Fatalf("expected second Close to fail, got %v", err)
	}
	if m.Undo() || m.Redo() {
		t.Fatalf("expected history replay to refuse on a closed model")
	}

	fx = newModelFixture()
	adapter = newFakeAdapter()
	m, err = New(adapter, fx.categories)
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}
	welcome, _ := m.Setting("General..Welcome Text")
	if err := welcome.SetValue("Edited"); err != nil {
		t.Fatalf("unexpected error from SetValue: %v", err)
	}
	if err := m.Close(false); err != nil {
		t.Fatalf("unexpected error from Close: %v", err)
	}
	if got := fx.welcome.Get(); got != "Hello" {
		t.Fatalf("expected Close(false) to discard edits, got %q", got)
	}
	if len(adapter.saved) != 0 {
		t.Fatalf("expected Close(false) to skip persistence, got %v", adapter.saved)
	}
}

func TestSetDisplayedCategoryRejectsForeignPointers(t *testing.T) {
	fx := newModelFixture()
	m, err := New(newFakeAdapter(), fx.categories)
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}

	if err := m.SetDisplayedCategory(fx.screen); err != nil {
		t.Fatalf("unexpected error from SetDisplayedCategory: %v", err)
	}
	if m.DisplayedCategory() != fx.screen {
		t.Fatalf("expected displayed category to move")
	}

	if err := m.SetDisplayedCategory(nil); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory for nil, got %v", err)
	}

	other := newModelFixture()
	if _, err := New(newFakeAdapter(), other.categories); err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}
	if err := m.SetDisplayedCategory(other.screen); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected a same-breadcrumb foreign category to be rejected, got %v", err)
	}
}

func TestSelectedCategoryRoundTrip(t *testing.T) {
	adapter := newFakeAdapter()

	fx := newModelFixture()
	m, err := New(adapter, fx.categories)
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}
	if err := m.SetDisplayedCategory(fx.screen); err != nil {
		t.Fatalf("unexpected error from SetDisplayedCategory: %v", err)
	}
	if err := m.SaveSelectedCategory(); err != nil {
		t.Fatalf("unexpected error from SaveSelectedCategory: %v", err)
	}
	if got := adapter.scalars[storage.KeySelectedCategory]; got != "Screen" {
		t.Fatalf("expected Screen stored, got %v", got)
	}

	resumed := newModelFixture()
	m2, err := New(adapter, resumed.categories)
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}
	restored, err := m2.LoadSelectedCategory()
	if err != nil {
		t.Fatalf("unexpected error from LoadSelectedCategory: %v", err)
	}
	if restored != resumed.screen {
		t.Fatalf("expected the stored breadcrumb to resolve against the new tree")
	}
	if m2.DisplayedCategory() != resumed.screen {
		t.Fatalf("expected displayed category to follow the restore")
	}

	adapter.scalars[storage.KeySelectedCategory] = "Gone"
	stale := newModelFixture()
	m3, err := New(adapter, stale.categories)
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}
	kept, err := m3.LoadSelectedCategory()
	if err != nil {
		t.Fatalf("expected an unresolvable breadcrumb to be tolerated, got %v", err)
	}
	if kept != stale.general {
		t.Fatalf("expected the current category to be kept")
	}

	adapter.failLoads = map[string]error{storage.KeySelectedCategory: errors.New("backend down")}
	var storageErr *StorageError
	if _, err := m3.LoadSelectedCategory(); !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
}

func TestWithInstantPersistSavesOnCommit(t *testing.T) {
	fx := newModelFixture()
	adapter := newFakeAdapter()
	m, err := New(adapter, fx.categories, WithInstantPersist(true))
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}
	brightness, _ := m.Setting("General..Brightness")

	if err := brightness.SetValue(80); err != nil {
		t.Fatalf("unexpected error from SetValue: %v", err)
	}
	if got := adapter.scalars["General..Brightness"]; got != 80 {
		t.Fatalf("expected instant persist on commit, got %v", got)
	}

	m.BeginTransaction()
	if err := brightness.SetValue(90); err != nil {
		t.Fatalf("unexpected error from SetValue: %v", err)
	}
	if got := adapter.scalars["General..Brightness"]; got != 80 {
		t.Fatalf("open transactions must not persist, got %v", got)
	}
	m.CommitTransaction()
	if got := adapter.scalars["General..Brightness"]; got != 90 {
		t.Fatalf("expected the committed transaction to persist, got %v", got)
	}

	if !m.Undo() {
		t.Fatalf("expected undo to apply")
	}
	if got := adapter.scalars["General..Brightness"]; got != 80 {
		t.Fatalf("expected undo to persist the restored value, got %v", got)
	}

	for _, key := range adapter.saved {
		if key != "General..Brightness" {
			t.Fatalf("expected only the touched setting to persist, got %v", adapter.saved)
		}
	}
	if len(adapter.saved) != 3 {
		t.Fatalf("expected three persists, got %v", adapter.saved)
	}
}

func TestModelEmitsEventSequence(t *testing.T) {
	fx := newModelFixture()
	capture := &event.CaptureHook{}
	m, err := New(newFakeAdapter(), fx.categories,
		WithEventHooks(capture),
		WithEventChannel("dialog"),
		WithActor("actor-1", "user-1", "tenant-1"),
	)
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}
	brightness, _ := m.Setting("General..Brightness")

	if err := m.LoadSettingValues(); err != nil {
		t.Fatalf("unexpected error from LoadSettingValues: %v", err)
	}
	if err := brightness.SetValue(80); err != nil {
		t.Fatalf("unexpected error from SetValue: %v", err)
	}
	if !m.Undo() {
		t.Fatalf("expected undo to apply")
	}
	if !m.Redo() {
		t.Fatalf("expected redo to apply")
	}
	if err := m.SetDisplayedCategory(fx.screen); err != nil {
		t.Fatalf("unexpected error from SetDisplayedCategory: %v", err)
	}
	if result := m.Search("bright"); len(result.Settings) != 1 {
		t.Fatalf("expected one search match, got %d", len(result.Settings))
	}
	m.ClearSearch()
	if err := m.Save(); err != nil {
		t.Fatalf("unexpected error from Save: %v", err)
	}
	if err := m.DiscardChanges(); err != nil {
		t.Fatalf("unexpected error from DiscardChanges: %v", err)
	}

	wantActions := []string{
		event.ActionSettingsLoaded,
		event.ActionSettingChanged,
		event.ActionHistoryUndo,
		event.ActionHistoryRedo,
		event.ActionCategoryDisplayed,
		event.ActionSearchApplied,
		event.ActionSearchCleared,
		event.ActionSettingsSaved,
		event.ActionHistoryUndo,
		event.ActionSettingsDiscarded,
	}
	if len(capture.Events) != len(wantActions) {
		t.Fatalf("expected %d events, got %d", len(wantActions), len(capture.Events))
	}
	for i, action := range wantActions {
		if capture.Events[i].Action != action {
			t.Fatalf("expected event %d to be %s, got %s", i, action, capture.Events[i].Action)
		}
	}

	changed := capture.Events[1]
	if changed.Breadcrumb != "General..Brightness" || changed.Title != "Brightness" {
		t.Fatalf("unexpected change identity: %q %q", changed.Breadcrumb, changed.Title)
	}
	if changed.OldValue != 50 || changed.NewValue != 80 {
		t.Fatalf("unexpected change values: %v -> %v", changed.OldValue, changed.NewValue)
	}
	if changed.ActorID != "actor-1" || changed.UserID != "user-1" || changed.TenantID != "tenant-1" {
		t.Fatalf("expected actor stamping, got %q %q %q", changed.ActorID, changed.UserID, changed.TenantID)
	}
	if changed.Channel != "dialog" {
		t.Fatalf("expected channel override, got %q", changed.Channel)
	}
	if changed.OccurredAt.IsZero() {
		t.Fatalf("expected a timestamp on emitted events")
	}

	undone := capture.Events[2]
	if undone.OldValue != 50 || undone.NewValue != 80 {
		t.Fatalf("expected undo events to carry the change record, got %v -> %v", undone.OldValue, undone.NewValue)
	}

	displayed := capture.Events[4]
	if displayed.Breadcrumb != "Screen" || displayed.Title != "Screen" {
		t.Fatalf("unexpected display event: %q %q", displayed.Breadcrumb, displayed.Title)
	}

	applied := capture.Events[5]
	if applied.Metadata["query"] != "bright" {
		t.Fatalf("expected search query metadata, got %v", applied.Metadata)
	}
	if applied.Metadata["matches"] != 1 {
		t.Fatalf("expected match count metadata, got %v", applied.Metadata)
	}
}

func TestWithTranslatorRendersTitlesKeepsBreadcrumbs(t *testing.T) {
	welcome := NewCell("Hello")
	categories := []*Category{
		SettingsCategory("general_key", String("welcome_key", welcome)),
	}
	translator := MapTranslator(map[string]string{
		"general_key": "Allgemein",
		"welcome_key": "Begrüßung",
	})

	m, err := New(newFakeAdapter(), categories, WithTranslator(translator))
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}

	if got := m.Categories()[0].Title(); got != "Allgemein" {
		t.Fatalf("expected translated category title, got %q", got)
	}
	s, ok := m.Setting("general_key..welcome_key")
	if !ok {
		t.Fatalf("expected breadcrumbs to keep raw keys")
	}
	if got := s.Title(); got != "Begrüßung" {
		t.Fatalf("expected translated setting title, got %q", got)
	}

	m.SetTranslator(nil)
	if got := s.Title(); got != "welcome_key" {
		t.Fatalf("expected raw title after clearing the translator, got %q", got)
	}
	if _, ok := m.Setting("general_key..welcome_key"); !ok {
		t.Fatalf("expected breadcrumbs untouched by translator swaps")
	}
}

func TestDescribeListsEverySettingInTreeOrder(t *testing.T) {
	fx := newModelFixture()
	m, err := New(newFakeAdapter(), fx.categories)
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}

	want := []Descriptor{
		{Breadcrumb: "General..Welcome Text", Title: "Welcome Text", Kind: KindString, Type: "string"},
		{Breadcrumb: "General..Brightness", Title: "Brightness", Kind: KindInt, Type: "int"},
		{Breadcrumb: "General..Night Mode", Title: "Night Mode", Kind: KindBool, Type: "bool"},
		{Breadcrumb: "Screen.Scaling.Resolution", Title: "Resolution", Kind: KindSingleSelect, Type: "string"},
		{Breadcrumb: "Screen.Scaling.Favorites", Title: "Favorites", Kind: KindMultiSelect, Type: "[]string"},
	}
	got := m.Describe()
	if len(got) != len(want) {
		t.Fatalf("expected %d descriptors, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("descriptor %d mismatch:\nwant %+v\ngot  %+v", i, want[i], got[i])
		}
	}
}

func TestWithSearchOptionsReachDescriptions(t *testing.T) {
	fx := newModelFixture()
	m, err := New(newFakeAdapter(), fx.categories,
		WithSearchOptions(WithDescriptionSearch(true)))
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}

	result := m.Search("sunset")
	if len(result.Settings) != 1 {
		t.Fatalf("expected the description to match, got %d settings", len(result.Settings))
	}
	if result.Settings[0].Breadcrumb() != "General..Night Mode" {
		t.Fatalf("unexpected match: %q", result.Settings[0].Breadcrumb())
	}
	m.ClearSearch()
	if m.SearchQuery() != "" {
		t.Fatalf("expected query cleared, got %q", m.SearchQuery())
	}

	plain, err := New(newFakeAdapter(), newModelFixture().categories)
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}
	if result := plain.Search("sunset"); len(result.Settings) != 0 {
		t.Fatalf("expected descriptions to stay opt-in, got %d settings", len(result.Settings))
	}
}

func TestWithHistoryOptionsAddObservers(t *testing.T) {
	fx := newModelFixture()
	var seen []HistoryEvent
	m, err := New(newFakeAdapter(), fx.categories,
		WithHistoryOptions(WithHistoryObserver(func(e HistoryEvent) {
			seen = append(seen, e)
		})))
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}

	brightness, _ := m.Setting("General..Brightness")
	if err := brightness.SetValue(80); err != nil {
		t.Fatalf("unexpected error from SetValue: %v", err)
	}
	if len(seen) != 1 || seen[0].Action != HistoryCommit {
		t.Fatalf("expected the extra observer to see the commit, got %+v", seen)
	}
	if seen[0].Change.Breadcrumb != "General..Brightness" {
		t.Fatalf("unexpected observed breadcrumb: %q", seen[0].Change.Breadcrumb)
	}
}

func TestModelLookups(t *testing.T) {
	fx := newModelFixture()
	m, err := New(newFakeAdapter(), fx.categories)
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}

	if len(m.Categories()) != 2 {
		t.Fatalf("expected two roots, got %d", len(m.Categories()))
	}
	if len(m.Settings()) != 5 {
		t.Fatalf("expected five settings, got %d", len(m.Settings()))
	}
	if _, ok := m.Setting("General..Brightness"); !ok {
		t.Fatalf("expected setting lookup to resolve")
	}
	if _, ok := m.Setting("General..Missing"); ok {
		t.Fatalf("expected unknown breadcrumbs to miss")
	}
	if c, ok := m.Category("Screen"); !ok || c != fx.screen {
		t.Fatalf("expected category lookup to resolve the tree pointer")
	}

	roots := m.Categories()
	roots[0] = nil
	if m.Categories()[0] != fx.general {
		t.Fatalf("expected Categories to return a copy")
	}
}

type modelFixture struct {
	welcome    *Cell[string]
	brightness *Cell[int]
	night      *Cell[bool]
	resolution *Cell[string]
	favorites  *Cell[[]string]
	general    *Category
	screen     *Category
	categories []*Category
}

func newModelFixture() *modelFixture {
	fx := &modelFixture{
		welcome:    NewCell("Hello"),
		brightness: NewCell(50),
		night:      NewCell(false),
		resolution: NewCell("1024x768"),
		favorites:  NewCell([]string{"home"}),
	}
	fx.general = SettingsCategory("General",
		String("Welcome Text", fx.welcome),
		IntSlider("Brightness", fx.brightness, 0, 100),
		Bool("Night Mode", fx.night).
			WithDescription("Dim the interface after sunset"),
	)
	fx.screen = NewCategory("Screen",
		NewGroup("Scaling",
			SingleSelect("Resolution", []string{"1024x768", "1280x1024"}, fx.resolution),
			MultiSelect("Favorites", []string{"home", "work", "travel"}, fx.favorites),
		),
	)
	fx.categories = []*Category{fx.general, fx.screen}
	return fx
}

func newFixtureAdapterWithFailure() *fakeAdapter {
	adapter := newFakeAdapter()
	adapter.failLoads = map[string]error{
		"General..Brightness": errors.New("backend down"),
	}
	return adapter
}

// fakeAdapter is an in-memory storage.Adapter with per-key fault injection.
type fakeAdapter struct {
	scalars   map[string]any
	lists     map[string][]any
	failSaves map[string]error
	failLoads map[string]error
	saved     []string
	loads     []string
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{
		scalars: map[string]any{},
		lists:   map[string][]any{},
	}
}

func (a *fakeAdapter) SaveValue(key string, value any) error {
	if err := a.failSaves[key]; err != nil {
		return err
	}
	a.scalars[key] = value
	a.saved = append(a.saved, key)
	return nil
}

func (a *fakeAdapter) LoadValue(key string, def any) (any, error) {
	a.loads = append(a.loads, key)
	if err := a.failLoads[key]; err != nil {
		return nil, err
	}
	if v, ok := a.scalars[key]; ok {
		return v, nil
	}
	return def, nil
}

func (a *fakeAdapter) SaveList(key string, values []any) error {
	if err := a.failSaves[key]; err != nil {
		return err
	}
	a.lists[key] = append([]any{}, values...)
	a.saved = append(a.saved, key)
	return nil
}

func (a *fakeAdapter) LoadList(key string, def []any) ([]any, error) {
	a.loads = append(a.loads, key)
	if err := a.failLoads[key]; err != nil {
		return nil, err
	}
	if v, ok := a.lists[key]; ok {
		return append([]any{}, v...), nil
	}
	return def, nil
}

func (a *fakeAdapter) Clear() error {
	a.scalars = map[string]any{}
	a.lists = map[string][]any{}
	return nil
}
