package prefs

// Translator resolves title and description keys to display strings. With no
// translator set, keys render as-is. Breadcrumbs always derive from raw
// keys, so translation never moves stored values.
type Translator interface {
	Translate(key string) string
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(key string) string

// Translate implements Translator.
func (f TranslatorFunc) Translate(key string) string {
	if f == nil {
		return key
	}
	return f(key)
}

// MapTranslator returns a Translator backed by a fixed key to display-string
// map. Missing keys render as-is.
func MapTranslator(entries map[string]string) Translator {
	cloned := make(map[string]string, len(entries))
	for key, value := range entries {
		cloned[key] = value
	}
	return TranslatorFunc(func(key string) string {
		if display, ok := cloned[key]; ok {
			return display
		}
		return key
	})
}
