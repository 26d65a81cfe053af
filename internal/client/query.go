// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var (
	// ErrMissingSelector is returned when a query names no records.
	ErrMissingSelector = errors.New("missing selector")

	// ErrInvalidQuery is returned for contradictory query parameters.
	ErrInvalidQuery = errors.New("invalid query")
)

// PublicationQuery selects publications. At least one of IDs, InstIDs,
// PersIDs, ProjIDs or Title must be set.
type PublicationQuery struct {
	IDs     []int
	InstIDs []int
	PersIDs []int
	ProjIDs []int
	Title   string

	// YearFrom and YearTo bound the publication year. YearTo defaults to
	// YearFrom.
	YearFrom int
	YearTo   int

	Fields    []string
	Sort      []string
	MaxPers   int
	MaxItems  int
	StartItem int

	// Params are sent verbatim and override the parameters above.
	Params map[string]string
}

// InstitutionQuery selects institutions by id or name.
type InstitutionQuery struct {
	IDs       []int
	Name      string
	MaxItems  int
	StartItem int
	Params    map[string]string
}

func (q PublicationQuery) values(defaultMaxItems int) (url.Values, error) {
	v := url.Values{}
	setInts(v, "publicationId", q.IDs)
	setInts(v, "instId", q.InstIDs)
	setInts(v, "persId", q.PersIDs)
	setInts(v, "projId", q.ProjIDs)
	if q.Title != "" {
		v.Set("titleSearch", q.Title)
	}
	if len(v) == 0 {
		return nil, fmt.Errorf("%w: need one of publication, institution, person or project ids, or a title", ErrMissingSelector)
	}

	if len(q.Fields) > 0 {
		v.Set("field", strings.Join(q.Fields, ","))
	}
	if len(q.Sort) > 0 {
		v.Set("sortfield", strings.Join(q.Sort, ","))
	}
	if q.MaxPers > 0 {
		v.Set("maxPers", strconv.Itoa(q.MaxPers))
	}
	setPaging(v, q.MaxItems, q.StartItem, defaultMaxItems)

	if q.YearFrom > 0 {
		to := q.YearTo
		if to <= 0 {
			to = q.YearFrom
		}
		if to < q.YearFrom {
			return nil, fmt.Errorf("%w: year range %d-%d", ErrInvalidQuery, q.YearFrom, to)
		}
		v.Set("yearFrom", strconv.Itoa(q.YearFrom))
		v.Set("yearTo", strconv.Itoa(to))
	} else if q.YearTo > 0 {
		return nil, fmt.Errorf("%w: yearTo %d without yearFrom", ErrInvalidQuery, q.YearTo)
	}

	setParams(v, q.Params)
	return v, nil
}

func (q InstitutionQuery) values(defaultMaxItems int) (url.Values, error) {
	v := url.Values{}
	setInts(v, "instId", q.IDs)
	if q.Name != "" {
		v.Set("nameSearch", q.Name)
	}
	if len(v) == 0 {
		return nil, fmt.Errorf("%w: need institution ids or a name", ErrMissingSelector)
	}
	setPaging(v, q.MaxItems, q.StartItem, defaultMaxItems)
	setParams(v, q.Params)
	return v, nil
}

// filtered reports whether the query asks for a subset that a local file
// cannot deliver. Field lists and sort order are not counted.
func (q PublicationQuery) filtered() bool {
	return len(q.IDs)+len(q.InstIDs)+len(q.PersIDs)+len(q.ProjIDs)+len(q.Params) > 0 ||
		q.Title != "" || q.YearFrom > 0 || q.YearTo > 0 || q.MaxPers > 0 || q.StartItem > 0
}

func (q InstitutionQuery) filtered() bool {
	return len(q.IDs) > 0 || q.Name != "" || len(q.Params) > 0 || q.StartItem > 0
}

func setInts(v url.Values, key string, ids []int) {
	if len(ids) == 0 {
		return
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	v.Set(key, strings.Join(parts, ","))
}

func setPaging(v url.Values, maxItems, start, defaultMaxItems int) {
	switch {
	case maxItems > 0:
		v.Set("maxRows", strconv.Itoa(maxItems))
	case defaultMaxItems > 0:
		v.Set("maxRows", strconv.Itoa(defaultMaxItems))
	}
	if start > 0 {
		v.Set("start", strconv.Itoa(start))
	}
}

func setParams(v url.Values, params map[string]string) {
	for k, val := range params {
		v.Set(k, val)
	}
}
