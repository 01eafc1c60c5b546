package listing

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/tutoria/core"
)

// RawParams are the untrusted list query parameters, as received.
type RawParams struct {
	Search    string `query:"search"`
	Page      string `query:"page"`
	PageSize  string `query:"pageSize"`
	SortField string `query:"sortField"`
	SortDir   string `query:"sortDir" validate:"omitempty,oneof=asc desc"`
	Filters   string `query:"filters"`
}

// Query is a validated list request. It lives for the duration of one request.
type Query struct {
	Search         string
	Page           int
	PageSize       int
	Sort           Sort
	Filters        Filters
	AppliedFilters map[string]interface{}
}

func (q Query) Criteria(tenantID string) Criteria {
	return Criteria{TenantID: tenantID, Search: q.Search, Filters: q.Filters}
}

type Parser struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewParser expects validate & translator to be set up with core.InitValidators.
func NewParser(validate *validator.Validate, translator ut.Translator) *Parser {
	return &Parser{validate: validate, translator: translator}
}

// Parse validates raw against the contract c.
// Every failure is a *core.ValidationError caused by ErrInvalidQuery, listing all offending fields.
func (p *Parser) Parse(raw RawParams, c Contract) (Query, error) {
	var fldErrs []core.FieldError
	q := Query{
		Page:     1,
		PageSize: c.DefaultPageSize,
		Sort:     c.DefaultSort,
	}

	raw.SortDir = core.CleanString(raw.SortDir, true /* lower */)
	if err := p.validate.Struct(raw); err != nil {
		vErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return Query{}, err
		}
		for _, vErr := range vErrs {
			fldErrs = append(fldErrs, fieldErr(vErr.Field(), vErr.Translate(p.translator)))
		}
	}

	q.Search = core.CleanString(raw.Search)
	if utf8.RuneCountInString(q.Search) > MaxSearchLen {
		fldErrs = append(fldErrs, fieldErr("search", "search must be a maximum of "+strconv.Itoa(MaxSearchLen)+" characters in length"))
	}

	if s := core.CleanString(raw.Page); s != "" {
		if n, err := strconv.Atoi(s); err != nil || n < 1 {
			fldErrs = append(fldErrs, fieldErr("page", "page must be a positive integer"))
		} else {
			q.Page = n
		}
	}

	if s := core.CleanString(raw.PageSize); s != "" {
		if n, err := strconv.Atoi(s); err != nil || n < 1 {
			fldErrs = append(fldErrs, fieldErr("pageSize", "pageSize must be a positive integer"))
		} else {
			q.PageSize = n
		}
	}
	// oversized pages are capped, not rejected
	if q.PageSize > c.MaxPageSize {
		q.PageSize = c.MaxPageSize
	}
	if q.Page-1 > MaxOffset/q.PageSize {
		fldErrs = append(fldErrs, fieldErr("page", "page is out of range"))
	}

	if field := core.CleanString(raw.SortField); field != "" {
		if !c.AllowsSort(field) {
			fldErrs = append(fldErrs, fieldErr("sortField", "sortField must be one of ["+strings.Join(c.AllowedSortFields, " ")+"]"))
		} else {
			q.Sort.Field = field
		}
	}
	if raw.SortDir != "" {
		q.Sort.Dir = Direction(raw.SortDir)
	}

	filters, applied, filterErrs := p.parseFilters(raw.Filters, c.Filters)
	fldErrs = append(fldErrs, filterErrs...)

	if len(fldErrs) > 0 {
		return Query{}, invalidQuery(fldErrs...)
	}
	q.Filters = filters
	q.AppliedFilters = applied
	return q, nil
}

func (p *Parser) parseFilters(payload string, schema FilterSchema) (Filters, map[string]interface{}, []core.FieldError) {
	payload = core.CleanString(payload)
	if payload == "" {
		return Filters{}, map[string]interface{}{}, nil
	}

	var decoded interface{}
	dec := json.NewDecoder(bytes.NewBufferString(payload))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil || dec.More() {
		return nil, nil, []core.FieldError{fieldErr("filters", "filters must be valid JSON")}
	}
	obj, ok := decoded.(map[string]interface{})
	if !ok {
		return nil, nil, []core.FieldError{fieldErr("filters", "filters must be a JSON object")}
	}

	d := filterDecoder{schema: schema, validate: p.validate, translator: p.translator}
	return d.decode(obj)
}
