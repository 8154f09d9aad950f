package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/heartmarshall/temple-api/internal/domain"
)

// Reserved list parameters; every other query parameter is a filter.
const (
	ParamSort   = "sort"
	ParamLimit  = "limit"
	ParamOffset = "offset"
	ParamPage   = "page"
)

// Limits bounds list page sizes.
type Limits struct {
	Default int
	Max     int
}

// DefaultLimits are used when a Builder is created without explicit limits.
var DefaultLimits = Limits{Default: 100, Max: 1000}

// ListParams is a list request: filter values keyed by parameter name plus
// optional sort and pagination. Nil pagination fields take defaults.
type ListParams struct {
	Filters map[string]string
	Sort    string
	Limit   *int
	Offset  *int
	// Page is 1-based and only used when Offset is nil.
	Page *int
}

// Page is the resolved pagination of a list request.
type Page struct {
	Limit  int
	Offset int
}

// ParseQuery parses a raw URL query string into list parameters. A
// malformed pair is a validation error rather than being skipped.
func ParseQuery(raw string) (ListParams, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return ListParams{}, domain.NewValidationError("query", "malformed query string: "+err.Error())
	}
	return ParseValues(values)
}

// ParseValues splits URL query values into list parameters. Only the first
// value of a repeated parameter is used. Empty values are ignored. Filter
// values are kept verbatim; only the reserved parameters are trimmed.
func ParseValues(values url.Values) (ListParams, error) {
	p := ListParams{Filters: make(map[string]string)}
	var errs []domain.FieldError

	for key, vs := range values {
		if len(vs) == 0 {
			continue
		}
		v := vs[0]
		if isReserved(key) {
			v = strings.TrimSpace(v)
		}
		if v == "" {
			continue
		}

		switch key {
		case ParamSort:
			p.Sort = v
		case ParamLimit, ParamOffset, ParamPage:
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, domain.FieldError{Field: key, Message: "must be an integer"})
				continue
			}
			switch key {
			case ParamLimit:
				p.Limit = &n
			case ParamOffset:
				p.Offset = &n
			default:
				p.Page = &n
			}
		default:
			p.Filters[key] = v
		}
	}

	if len(errs) > 0 {
		return ListParams{}, domain.NewValidationErrors(errs)
	}
	return p, nil
}

func isReserved(key string) bool {
	switch key {
	case ParamSort, ParamLimit, ParamOffset, ParamPage:
		return true
	}
	return false
}

// resolve applies defaults and bounds to the pagination parameters.
func (l Limits) resolve(p ListParams) (Page, error) {
	var errs []domain.FieldError

	page := Page{Limit: l.Default}
	if p.Limit != nil {
		switch {
		case *p.Limit < 0:
			errs = append(errs, domain.FieldError{Field: ParamLimit, Message: "must be >= 0"})
		case *p.Limit > l.Max:
			page.Limit = l.Max
		default:
			page.Limit = *p.Limit
		}
	}

	switch {
	case p.Offset != nil:
		if *p.Offset < 0 {
			errs = append(errs, domain.FieldError{Field: ParamOffset, Message: "must be >= 0"})
		} else {
			page.Offset = *p.Offset
		}
	case p.Page != nil:
		switch {
		case *p.Page < 1:
			errs = append(errs, domain.FieldError{Field: ParamPage, Message: "must be >= 1"})
		case *p.Page-1 > math.MaxInt/max(page.Limit, 1):
			errs = append(errs, domain.FieldError{Field: ParamPage, Message: "is too large"})
		default:
			page.Offset = (*p.Page - 1) * page.Limit
		}
	}

	if len(errs) > 0 {
		return Page{}, domain.NewValidationErrors(errs)
	}
	return page, nil
}
