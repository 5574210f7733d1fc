// internal/integrations/prestashop/types.go
package prestashop

// Record is one remote entity (or any nested part of it) as exchanged with the webservice.
type Record map[string]any

// Map returns the nested mapping under key, if the value is one.
func (r Record) Map(key string) (Record, bool) {
	return asRecord(r[key])
}

// String returns the value under key stringified the same way the encoder does.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok {
		return ""
	}
	s, _ := scalarText(v)
	return s
}

// Clone copies the record deep enough that overlays never touch the source.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Record:
		return t.Clone()
	case map[string]any:
		return Record(t).Clone()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case MultilingualField:
		out := make(MultilingualField, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}

func asRecord(v any) (Record, bool) {
	switch t := v.(type) {
	case Record:
		return t, true
	case map[string]any:
		return Record(t), true
	}
	return nil, false
}

// LanguageValue is one translation of a multilingual field. Value nil encodes as empty text.
type LanguageValue struct {
	ID    int     `json:"id"`
	Value *string `json:"value"`
}

// MultilingualField holds one entry per configured shop language, in input order.
type MultilingualField []LanguageValue

// Get returns the value for the given language id.
func (f MultilingualField) Get(id int) (string, bool) {
	for _, lv := range f {
		if lv.ID == id {
			if lv.Value == nil {
				return "", true
			}
			return *lv.Value, true
		}
	}
	return "", false
}

// Languages is the ordered list of language ids configured for the shop.
type Languages []int

// DefaultLanguages matches a stock two-language install.
var DefaultLanguages = Languages{1, 2}

// Field duplicates value across every configured language.
func (l Languages) Field(value string) MultilingualField {
	out := make(MultilingualField, 0, len(l))
	for _, id := range l {
		v := value
		out = append(out, LanguageValue{ID: id, Value: &v})
	}
	return out
}

// Primary is the first configured language, used where the API wants a single id_lang.
func (l Languages) Primary() int {
	if len(l) == 0 {
		return 1
	}
	return l[0]
}
