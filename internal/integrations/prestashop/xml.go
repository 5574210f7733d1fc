// internal/integrations/prestashop/xml.go
package prestashop

import (
	"bufio"
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html/charset"
)

// ContentTypeXML marks write bodies for the webservice.
const ContentTypeXML = "application/xml"

// RootElement wraps every document the webservice accepts.
const RootElement = "prestashop"

// Payload is an encoded write body.
type Payload struct {
	Body        string
	ContentType string
}

// Encode serializes record under a single root element in the webservice dialect.
// Mapping keys come out sorted; multilingual entries keep their order.
func Encode(record Record, root string) (Payload, error) {
	if root == "" {
		return Payload{}, fmt.Errorf("%w: empty root element", ErrInvalidInput)
	}
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	start := xml.StartElement{Name: xml.Name{Local: root}}
	if err := enc.EncodeToken(start); err != nil {
		return Payload{}, err
	}
	if err := encodeFields(enc, record); err != nil {
		return Payload{}, err
	}
	if err := enc.EncodeToken(start.End()); err != nil {
		return Payload{}, err
	}
	if err := enc.Flush(); err != nil {
		return Payload{}, err
	}
	return Payload{Body: buf.String(), ContentType: ContentTypeXML}, nil
}

func encodeFields(enc *xml.Encoder, fields Record) error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := encodeValue(enc, k, fields[k]); err != nil {
			return fmt.Errorf("field %q: %w", k, err)
		}
	}
	return nil
}

func encodeValue(enc *xml.Encoder, key string, value any) error {
	if entries, ok := multilingualEntries(value); ok {
		start := xml.StartElement{Name: xml.Name{Local: key}}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		for _, e := range entries {
			lang := xml.StartElement{
				Name: xml.Name{Local: "language"},
				Attr: []xml.Attr{{Name: xml.Name{Local: "id"}, Value: e.id}},
			}
			if err := textElement(enc, lang, e.value); err != nil {
				return err
			}
		}
		return enc.EncodeToken(start.End())
	}

	if items, ok := listItems(value); ok {
		for _, item := range items {
			if sub, ok := asRecord(item); ok {
				if err := containerElement(enc, key, sub); err != nil {
					return err
				}
				continue
			}
			text, err := leafText(item)
			if err != nil {
				return err
			}
			if err := textElement(enc, xml.StartElement{Name: xml.Name{Local: key}}, text); err != nil {
				return err
			}
		}
		return nil
	}

	if sub, ok := asRecord(value); ok {
		return containerElement(enc, key, sub)
	}

	text, err := leafText(value)
	if err != nil {
		return err
	}
	return textElement(enc, xml.StartElement{Name: xml.Name{Local: key}}, text)
}

func containerElement(enc *xml.Encoder, key string, fields Record) error {
	start := xml.StartElement{Name: xml.Name{Local: key}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if err := encodeFields(enc, fields); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}

// textElement always emits both tags, so empty values stay present in the document.
func textElement(enc *xml.Encoder, start xml.StartElement, text string) error {
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if text != "" {
		if err := enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

type mlEntry struct {
	id    string
	value string
}

// multilingualEntries recognises both the typed field and the decoded-JSON shape
// (a non-empty list of mappings that all carry "id" and "value").
func multilingualEntries(v any) ([]mlEntry, bool) {
	if f, ok := v.(MultilingualField); ok {
		if len(f) == 0 {
			return nil, false
		}
		out := make([]mlEntry, 0, len(f))
		for _, lv := range f {
			e := mlEntry{id: strconv.Itoa(lv.ID)}
			if lv.Value != nil {
				e.value = *lv.Value
			}
			out = append(out, e)
		}
		return out, true
	}

	items, ok := listItems(v)
	if !ok || len(items) == 0 {
		return nil, false
	}
	out := make([]mlEntry, 0, len(items))
	for _, item := range items {
		rec, ok := asRecord(item)
		if !ok {
			return nil, false
		}
		id, hasID := rec["id"]
		val, hasValue := rec["value"]
		if !hasID || !hasValue {
			return nil, false
		}
		idText, ok := scalarText(id)
		if !ok {
			return nil, false
		}
		valText, ok := scalarText(val)
		if !ok {
			return nil, false
		}
		out = append(out, mlEntry{id: idText, value: valText})
	}
	return out, true
}

func listItems(v any) ([]any, bool) {
	switch t := v.(type) {
	case nil, string, []byte:
		return nil, false
	case MultilingualField:
		// a non-empty field is handled before; an empty one emits nothing
		return nil, len(t) == 0
	case []any:
		return t, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func leafText(v any) (string, error) {
	s, ok := scalarText(v)
	if !ok {
		return "", fmt.Errorf("%w: unsupported value of type %T", ErrInvalidInput, v)
	}
	return s, nil
}

// scalarText is the single place where leaves get stringified.
func scalarText(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, true
	case bool:
		if t {
			return "1", true
		}
		return "0", true
	case int:
		return strconv.Itoa(t), true
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(t).Int(), 10), true
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(t).Uint(), 10), true
	case float64:
		return decimal.NewFromFloat(t).String(), true
	case float32:
		return decimal.NewFromFloat32(t).String(), true
	case decimal.Decimal:
		return t.String(), true
	case json.Number:
		return t.String(), true
	case *string:
		if t == nil {
			return "", true
		}
		return *t, true
	case fmt.Stringer:
		return t.String(), true
	}
	return "", false
}

// Decode is the naive inverse of Encode. The root element is dropped, so the result
// has the same shape as the JSON answers ({"product": {...}}).
func Decode(r io.Reader) (Record, error) {
	dec := xml.NewDecoder(bufio.NewReader(r))
	dec.CharsetReader = func(label string, in io.Reader) (io.Reader, error) {
		return charset.NewReaderLabel(normalizeCharset(label), in)
	}

	var (
		root  *xmlNode
		stack []*xmlNode
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &xmlNode{name: t.Name.Local}
			for _, a := range t.Attr {
				if a.Name.Local == "id" {
					n.id, n.hasID = a.Value, true
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("decode xml: multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}
	if root == nil {
		return nil, errors.New("decode xml: empty document")
	}
	out := Record{}
	for _, c := range root.children {
		addChild(out, c)
	}
	return out, nil
}

type xmlNode struct {
	name     string
	id       string
	hasID    bool
	text     strings.Builder
	children []*xmlNode
}

func (n *xmlNode) value() any {
	if len(n.children) == 0 {
		return n.text.String()
	}
	if f, ok := n.multilingual(); ok {
		return f
	}
	rec := Record{}
	for _, c := range n.children {
		addChild(rec, c)
	}
	return rec
}

func (n *xmlNode) multilingual() (MultilingualField, bool) {
	out := make(MultilingualField, 0, len(n.children))
	for _, c := range n.children {
		if c.name != "language" || !c.hasID || len(c.children) > 0 {
			return nil, false
		}
		id, err := strconv.Atoi(c.id)
		if err != nil {
			return nil, false
		}
		v := c.text.String()
		out = append(out, LanguageValue{ID: id, Value: &v})
	}
	return out, true
}

// addChild turns repeated sibling names into a list.
func addChild(rec Record, n *xmlNode) {
	v := n.value()
	existing, ok := rec[n.name]
	if !ok {
		rec[n.name] = v
		return
	}
	if list, ok := existing.([]any); ok {
		rec[n.name] = append(list, v)
		return
	}
	rec[n.name] = []any{existing, v}
}

func normalizeCharset(cs string) string {
	c := strings.TrimSpace(strings.ToLower(cs))
	switch c {
	case "latin ii", "latin-2", "latin2", "iso8859-2", "iso_8859-2":
		return "iso-8859-2"
	case "cp1250", "windows1250", "win-1250":
		return "windows-1250"
	default:
		return c
	}
}
