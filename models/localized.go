package models

// DefaultLocale is the fallback language for localized fields.
const DefaultLocale = "vi"

// Localized holds per-language variants of a text field, keyed by locale
// code ("vi", "en"). It is stored as a serialized JSON column.
type Localized map[string]string

// Resolve returns the value for the requested locale, falling back to the
// default locale, then to empty.
func (l Localized) Resolve(locale string) string {
	if l == nil {
		return ""
	}
	if v, ok := l[locale]; ok && v != "" {
		return v
	}
	if v, ok := l[DefaultLocale]; ok {
		return v
	}
	return ""
}

// Merge overlays the non-empty entries of other onto l and returns the
// result. The receiver is not modified.
func (l Localized) Merge(other Localized) Localized {
	if len(other) == 0 {
		return l
	}
	merged := make(Localized, len(l)+len(other))
	for k, v := range l {
		merged[k] = v
	}
	for k, v := range other {
		if v != "" {
			merged[k] = v
		}
	}
	return merged
}
