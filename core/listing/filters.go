package listing

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/tutoria/core"
)

// Date range filter keys, shared by every resource exposing a report window.
const (
	FilterFrom = "from"
	FilterTo   = "to"
)

type FilterKind int

const (
	KindString FilterKind = iota
	KindID
	KindEnum
	KindInt
	KindBool
	KindDate
)

// FilterField describes one permitted filter key.
type FilterField struct {
	Kind   FilterKind
	Values []string // KindEnum
	Min    int      // KindInt
	Max    int      // KindInt; KindString: max length
}

func StringFilter(maxLen int) FilterField { return FilterField{Kind: KindString, Max: maxLen} }
func IDFilter() FilterField               { return FilterField{Kind: KindID} } // lower-case UUID, as stored
func EnumFilter(values ...string) FilterField {
	return FilterField{Kind: KindEnum, Values: values}
}
func IntFilter(min, max int) FilterField { return FilterField{Kind: KindInt, Min: min, Max: max} }
func BoolFilter() FilterField            { return FilterField{Kind: KindBool} }
func DateFilter() FilterField            { return FilterField{Kind: KindDate} }

// rules returns the validator tag applied to each (scalar) value of the field.
func (f FilterField) rules() string {
	switch f.Kind {
	case KindString:
		if f.Max > 0 {
			return fmt.Sprintf("max=%d", f.Max)
		}
	case KindID:
		return "uuid"
	case KindEnum:
		return "oneof=" + strings.Join(f.Values, " ")
	case KindInt:
		return fmt.Sprintf("min=%d,max=%d", f.Min, f.Max)
	case KindDate:
		return "isodate"
	}
	return ""
}

// FilterSchema maps the permitted filter keys of a resource to their description.
type FilterSchema map[string]FilterField

// WithDateRange adds the `from` & `to` date keys to the schema.
func (s FilterSchema) WithDateRange() FilterSchema {
	s[FilterFrom] = DateFilter()
	s[FilterTo] = DateFilter()
	return s
}

// Filters holds validated, typed filter values:
// string (KindString, KindID, KindEnum), []string (KindEnum list), int, bool or time.Time (KindDate, UTC).
type Filters map[string]interface{}

func (f Filters) String(key string) (string, bool) {
	s, ok := f[key].(string)
	return s, ok
}

func (f Filters) Int(key string) (int, bool) {
	n, ok := f[key].(int)
	return n, ok
}

func (f Filters) Bool(key string) (bool, bool) {
	b, ok := f[key].(bool)
	return b, ok
}

func (f Filters) Date(key string) time.Time {
	t, _ := f[key].(time.Time)
	return t
}

// DateRange builds the from/to predicate on field, or nil when neither is set.
func (f Filters) DateRange(field string) Predicate {
	return DateRange(field, f.Date(FilterFrom), f.Date(FilterTo))
}

// filterDecoder validates a decoded filters payload against a FilterSchema.
type filterDecoder struct {
	schema     FilterSchema
	validate   *validator.Validate
	translator ut.Translator
}

// decode returns the typed filters and the caller's filters, both stripped of empty values.
func (d filterDecoder) decode(payload map[string]interface{}) (Filters, map[string]interface{}, []core.FieldError) {
	var fldErrs []core.FieldError
	filters := make(Filters)
	applied := make(map[string]interface{})

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys) // stable error order

	for _, key := range keys {
		raw := payload[key]
		fld, ok := d.schema[key]
		if !ok {
			fldErrs = append(fldErrs, fieldErr("filters."+key, "unknown filter"))
			continue
		}
		if isEmptyValue(raw) {
			continue
		}
		val, msg := d.decodeValue(fld, raw)
		if msg != "" {
			fldErrs = append(fldErrs, fieldErr("filters."+key, msg))
			continue
		}
		filters[key] = val
		applied[key] = raw
	}

	if len(fldErrs) == 0 {
		from, to := filters.Date(FilterFrom), filters.Date(FilterTo)
		if !from.IsZero() && !to.IsZero() && from.After(to) {
			fldErrs = append(fldErrs, fieldErr("filters."+FilterFrom, "must not be after filters."+FilterTo))
		}
	}
	return filters, applied, fldErrs
}

func (d filterDecoder) decodeValue(fld FilterField, raw interface{}) (interface{}, string) {
	switch fld.Kind {
	case KindString, KindID:
		s, ok := raw.(string)
		if !ok {
			return nil, "must be a string"
		}
		s = core.CleanString(s)
		return s, d.check(s, fld.rules())

	case KindEnum:
		switch v := raw.(type) {
		case string:
			return v, d.check(v, fld.rules())
		case []interface{}:
			vals := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, "must be a string or a list of strings"
				}
				if msg := d.check(s, fld.rules()); msg != "" {
					return nil, msg
				}
				vals = append(vals, s)
			}
			return vals, ""
		default:
			return nil, "must be a string or a list of strings"
		}

	case KindInt:
		num, ok := raw.(json.Number)
		if !ok {
			return nil, "must be an integer"
		}
		n, err := num.Int64()
		if err != nil {
			return nil, "must be an integer"
		}
		return int(n), d.check(int(n), fld.rules())

	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, "must be a boolean"
		}
		return b, ""

	case KindDate:
		s, ok := raw.(string)
		if !ok {
			return nil, "must be a date formatted as YYYY-MM-DD"
		}
		if msg := d.check(s, fld.rules()); msg != "" {
			return nil, msg
		}
		t, _ := time.Parse(core.DateLayout, s)
		return t.UTC(), ""
	}
	return nil, "unsupported filter"
}

// check runs the validator rules on val and returns the translated message of the first failure.
func (d filterDecoder) check(val interface{}, rules string) string {
	if rules == "" {
		return ""
	}
	err := d.validate.Var(val, rules)
	if err == nil {
		return ""
	}
	if vErrs, ok := err.(validator.ValidationErrors); ok && len(vErrs) > 0 {
		return strings.TrimSpace(vErrs[0].Translate(d.translator))
	}
	return "invalid value"
}

func isEmptyValue(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []interface{}:
		return len(val) == 0
	case map[string]interface{}:
		return len(val) == 0
	}
	return false
}
