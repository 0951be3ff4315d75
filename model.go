package prefs

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-prefs/pkg/event"
	"github.com/goliatone/go-prefs/storage"
)

// ModelOption configures a Model.
type ModelOption func(*modelConfig)

type modelConfig struct {
	translator     Translator
	instantPersist bool
	hooks          event.Hooks
	channel        string
	actorID        string
	userID         string
	tenantID       string
	searchOptions  []SearchOption
	historyOptions []HistoryOption
}

// WithTranslator resolves titles and descriptions through t.
func WithTranslator(t Translator) ModelOption {
	return func(cfg *modelConfig) {
		cfg.translator = t
	}
}

// WithInstantPersist saves a setting as soon as a change to it commits,
// instead of waiting for Save. Undo and redo persist the same way.
func WithInstantPersist(enabled bool) ModelOption {
	return func(cfg *modelConfig) {
		cfg.instantPersist = enabled
	}
}

// WithEventHooks registers hooks receiving model events. Nil entries are
// dropped.
func WithEventHooks(hooks ...event.Hook) ModelOption {
	return func(cfg *modelConfig) {
		for _, hook := range hooks {
			if hook == nil {
				continue
			}
			cfg.hooks = append(cfg.hooks, hook)
		}
	}
}

// WithEventChannel overrides the channel stamped on emitted events.
func WithEventChannel(channel string) ModelOption {
	return func(cfg *modelConfig) {
		cfg.channel = channel
	}
}

// WithActor stamps actor identity onto every emitted event. Audit sinks
// resolve these into activity records.
func WithActor(actorID, userID, tenantID string) ModelOption {
	return func(cfg *modelConfig) {
		cfg.actorID = actorID
		cfg.userID = userID
		cfg.tenantID = tenantID
	}
}

// WithSearchOptions configures the model's search engine.
func WithSearchOptions(opts ...SearchOption) ModelOption {
	return func(cfg *modelConfig) {
		cfg.searchOptions = append(cfg.searchOptions, opts...)
	}
}

// WithHistoryOptions configures the model's history engine.
func WithHistoryOptions(opts ...HistoryOption) ModelOption {
	return func(cfg *modelConfig) {
		cfg.historyOptions = append(cfg.historyOptions, opts...)
	}
}

// Model is the session facade: one preferences tree, its change history,
// one storage adapter, and the currently displayed category. Lifetime
// matches the open dialog; history is never persisted across sessions.
// Not safe for concurrent use; a single goroutine owns the model.
type Model struct {
	adapter    storage.Adapter
	categories []*Category
	settings   map[string]*Setting
	ordered    []*Setting
	byCategory map[string]*Category
	history    *History
	search     *Search
	emitter    *event.Emitter
	displayed  *Category
	instant    bool
	closed     bool

	actorID  string
	userID   string
	tenantID string
}

// New builds the session model over categories. It assigns breadcrumbs
// (fatal ConfigurationError on a malformed tree), wires every setting into
// the change history, and points the displayed category at the first root.
// No storage traffic happens until LoadSettingValues or Save.
func New(adapter storage.Adapter, categories []*Category, opts ...ModelOption) (*Model, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}
	cfg := modelConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := assignBreadcrumbs(categories); err != nil {
		return nil, err
	}

	m := &Model{
		adapter:    adapter,
		categories: categories,
		settings:   map[string]*Setting{},
		byCategory: map[string]*Category{},
		instant:    cfg.instantPersist,
		actorID:    cfg.actorID,
		userID:     cfg.userID,
		tenantID:   cfg.tenantID,
	}

	var translate func(string) string
	if cfg.translator != nil {
		translate = cfg.translator.Translate
	}
	for _, root := range categories {
		m.index(root)
		applyTranslator(root, translate)
	}

	historyOpts := append([]HistoryOption{}, cfg.historyOptions...)
	historyOpts = append(historyOpts, WithHistoryObserver(m.onHistoryEvent))
	m.history = NewHistory(historyOpts...)
	for _, s := range m.ordered {
		m.history.Attach(s)
	}

	m.search = NewSearch(categories, cfg.searchOptions...)
	m.emitter = event.NewEmitter(cfg.hooks, event.Config{
		Enabled: len(cfg.hooks) > 0,
		Channel: cfg.channel,
	})
	m.displayed = categories[0]
	return m, nil
}

// Load builds the model and loads every stored value. Any error, from
// construction or from a stored value, fails the call; callers that want
// to keep a model whose load partially fell back to defaults should use
// New and LoadSettingValues directly.
func Load(adapter storage.Adapter, categories []*Category, opts ...ModelOption) (*Model, error) {
	m, err := New(adapter, categories, opts...)
	if err != nil {
		return nil, err
	}
	if err := m.LoadSettingValues(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) index(c *Category) {
	m.byCategory[c.breadcrumb] = c
	for _, g := range c.groups {
		for _, s := range g.settings {
			m.settings[s.breadcrumb] = s
			m.ordered = append(m.ordered, s)
		}
	}
	for _, child := range c.children {
		m.index(child)
	}
}

// applyTranslator pushes the translation function onto every entity so Title
// and Description render through it. A nil translate reverts to raw keys.
func applyTranslator(c *Category, translate func(string) string) {
	c.translate = translate
	for _, g := range c.groups {
		g.translate = translate
		for _, s := range g.settings {
			s.translate = translate
		}
	}
	for _, child := range c.children {
		applyTranslator(child, translate)
	}
}

// Categories returns the root categories in declaration order.
func (m *Model) Categories() []*Category {
	out := make([]*Category, len(m.categories))
	copy(out, m.categories)
	return out
}

// Settings returns every setting in tree order.
func (m *Model) Settings() []*Setting {
	out := make([]*Setting, len(m.ordered))
	copy(out, m.ordered)
	return out
}

// Setting returns the setting addressed by breadcrumb.
func (m *Model) Setting(breadcrumb string) (*Setting, bool) {
	s, ok := m.settings[breadcrumb]
	return s, ok
}

// Category returns the category addressed by breadcrumb.
func (m *Model) Category(breadcrumb string) (*Category, bool) {
	c, ok := m.byCategory[breadcrumb]
	return c, ok
}

// SetTranslator swaps the translation function for every entity in the
// tree. Identity and breadcrumbs are untouched; only rendered titles move.
func (m *Model) SetTranslator(t Translator) {
	var translate func(string) string
	if t != nil {
		translate = t.Translate
	}
	for _, root := range m.categories {
		applyTranslator(root, translate)
	}
}

// LoadSettingValues walks the tree once, loading every stored value by
// breadcrumb. A failing setting keeps its default and the walk continues;
// failures come back joined. Loads never become undoable history entries.
func (m *Model) LoadSettingValues() error {
	if m.closed {
		return ErrModelClosed
	}
	var errs []error
	m.history.WithoutRecording(func() {
		for _, s := range m.ordered {
			if err := s.loadValue(m.adapter); err != nil {
				errs = append(errs, err)
			}
		}
	})
	m.emit(event.Event{Action: event.ActionSettingsLoaded})
	return errors.Join(errs...)
}

// SaveSettings walks the tree saving every value by breadcrumb. A failing
// setting does not stop the walk; failures come back joined so callers can
// report which settings did not persist.
func (m *Model) SaveSettings() error {
	if m.closed {
		return ErrModelClosed
	}
	var errs []error
	for _, s := range m.ordered {
		if err := s.saveValue(m.adapter); err != nil {
			errs = append(errs, err)
		}
	}
	m.emit(event.Event{Action: event.ActionSettingsSaved})
	return errors.Join(errs...)
}

// Save force-commits an open transaction, persists every setting, and
// stores the displayed category for session resume.
func (m *Model) Save() error {
	if m.closed {
		return ErrModelClosed
	}
	m.history.CommitTransaction()
	errs := []error{m.SaveSettings()}
	if m.displayed != nil {
		err := storage.SaveSelectedCategory(m.adapter, m.displayed.breadcrumb)
		errs = append(errs, newStorageError("save", storage.KeySelectedCategory, err))
	}
	return errors.Join(errs...)
}

// DiscardChanges rolls every touched setting back to its value at session
// start. An open transaction is committed first so its writes roll back
// too.
func (m *Model) DiscardChanges() error {
	if m.closed {
		return ErrModelClosed
	}
	m.history.DiscardAll()
	m.emit(event.Event{Action: event.ActionSettingsDiscarded})
	return nil
}

// Close tears the session down, force-committing an open transaction and
// either saving all settings or discarding back to the session start.
// Further operations return ErrModelClosed.
func (m *Model) Close(save bool) error {
	if m.closed {
		return ErrModelClosed
	}
	m.history.CommitTransaction()
	var err error
	if save {
		err = m.Save()
	} else {
		err = m.DiscardChanges()
	}
	m.closed = true
	return err
}

// DisplayedCategory returns the category the view currently shows.
func (m *Model) DisplayedCategory() *Category {
	return m.displayed
}

// SetDisplayedCategory points the session at c, which must belong to this
// model's tree.
func (m *Model) SetDisplayedCategory(c *Category) error {
	if m.closed {
		return ErrModelClosed
	}
	if c == nil {
		return fmt.Errorf("%w: <nil>", ErrUnknownCategory)
	}
	known, ok := m.byCategory[c.breadcrumb]
	if !ok || known != c {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c.breadcrumb)
	}
	m.displayed = c
	m.emit(event.Event{
		Action:     event.ActionCategoryDisplayed,
		Breadcrumb: c.breadcrumb,
		Title:      c.Title(),
	})
	return nil
}

// SaveSelectedCategory persists the displayed category's breadcrumb.
func (m *Model) SaveSelectedCategory() error {
	if m.closed {
		return ErrModelClosed
	}
	if m.displayed == nil {
		return nil
	}
	err := storage.SaveSelectedCategory(m.adapter, m.displayed.breadcrumb)
	return newStorageError("save", storage.KeySelectedCategory, err)
}

// LoadSelectedCategory restores the last persisted displayed category. A
// stored breadcrumb that no longer resolves, or an empty store, keeps the
// current pointer.
func (m *Model) LoadSelectedCategory() (*Category, error) {
	if m.closed {
		return nil, ErrModelClosed
	}
	def := ""
	if m.displayed != nil {
		def = m.displayed.breadcrumb
	}
	crumb, err := storage.LoadSelectedCategory(m.adapter, def)
	if err != nil {
		return m.displayed, newStorageError("load", storage.KeySelectedCategory, err)
	}
	c, ok := m.byCategory[crumb]
	if !ok {
		return m.displayed, nil
	}
	if c != m.displayed {
		if err := m.SetDisplayedCategory(c); err != nil {
			return m.displayed, err
		}
	}
	return m.displayed, nil
}

// Search marks everything matching query and returns the result set.
func (m *Model) Search(query string) Result {
	result := m.search.Apply(query)
	if result.Query == "" {
		m.emit(event.Event{Action: event.ActionSearchCleared})
		return result
	}
	m.emit(event.Event{
		Action: event.ActionSearchApplied,
		Metadata: map[string]any{
			"query":   result.Query,
			"matches": len(result.Settings),
		},
	})
	return result
}

// ClearSearch unmarks the previous result set.
func (m *Model) ClearSearch() {
	m.search.Clear()
	m.emit(event.Event{Action: event.ActionSearchCleared})
}

// SearchQuery returns the active query, empty when cleared.
func (m *Model) SearchQuery() string {
	return m.search.Query()
}

// BeginTransaction opens a coalescing span for a multi-change gesture.
func (m *Model) BeginTransaction() {
	m.history.BeginTransaction()
}

// CommitTransaction closes the open span.
func (m *Model) CommitTransaction() {
	m.history.CommitTransaction()
}

// Undo steps the session history back one record.
func (m *Model) Undo() bool {
	if m.closed {
		return false
	}
	return m.history.Undo()
}

// Redo reapplies the next record.
func (m *Model) Redo() bool {
	if m.closed {
		return false
	}
	return m.history.Redo()
}

// CanUndo reports whether Undo would apply a record.
func (m *Model) CanUndo() bool { return m.history.CanUndo() }

// CanRedo reports whether Redo would apply a record.
func (m *Model) CanRedo() bool { return m.history.CanRedo() }

// History exposes the session's change history.
func (m *Model) History() *History { return m.history }
