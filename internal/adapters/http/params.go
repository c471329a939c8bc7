package httpadapter

import (
	"net/http"
	"net/url"

	"github.com/oapi-codegen/runtime"

	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
)

type filterParams struct {
	Subject       *string
	Keyword       *string
	MinConfidence *float64
}

type exportParams struct {
	filterParams
	Format *string
}

// bindFilter reads the filter configuration from the query string. Empty
// values are treated as absent so a blank form field keeps its default.
func bindFilter(r *http.Request) (domain.Filter, error) {
	var params filterParams
	if err := bindFilterParams(nonEmptyQuery(r.URL.Query()), &params); err != nil {
		return domain.Filter{}, err
	}
	return params.toFilter(), nil
}

func bindExport(r *http.Request) (domain.Filter, domain.ExportFormat, error) {
	query := nonEmptyQuery(r.URL.Query())

	var params exportParams
	if err := bindFilterParams(query, &params.filterParams); err != nil {
		return domain.Filter{}, "", err
	}
	if err := runtime.BindQueryParameter("form", true, false, "format", query, &params.Format); err != nil {
		return domain.Filter{}, "", domain.WrapError(domain.ErrInvalidInput, "bind format", err)
	}

	raw := ""
	if params.Format != nil {
		raw = *params.Format
	}
	format, ok := domain.ParseExportFormat(raw)
	if !ok {
		return domain.Filter{}, "", domain.WrapError(domain.ErrInvalidInput, "bind format", errUnsupportedFormat(raw))
	}
	return params.toFilter(), format, nil
}

func bindFilterParams(query url.Values, params *filterParams) error {
	if err := runtime.BindQueryParameter("form", true, false, "subject", query, &params.Subject); err != nil {
		return domain.WrapError(domain.ErrInvalidInput, "bind subject", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "keyword", query, &params.Keyword); err != nil {
		return domain.WrapError(domain.ErrInvalidInput, "bind keyword", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "min_confidence", query, &params.MinConfidence); err != nil {
		return domain.WrapError(domain.ErrInvalidInput, "bind min_confidence", err)
	}
	return nil
}

func (p filterParams) toFilter() domain.Filter {
	filter := domain.DefaultFilter()
	if p.Subject != nil {
		filter.Subject = *p.Subject
	}
	if p.Keyword != nil {
		filter.Keyword = *p.Keyword
	}
	if p.MinConfidence != nil {
		filter.MinConfidence = *p.MinConfidence
	}
	return filter
}

// filterQuery encodes filter back into query parameters, omitting defaults.
func filterQuery(filter domain.Filter) url.Values {
	values := url.Values{}
	if filter.SubjectActive() {
		values.Set("subject", filter.Subject)
	}
	if filter.KeywordActive() {
		values.Set("keyword", filter.Keyword)
	}
	if filter.ConfidenceActive() {
		values.Set("min_confidence", formatNumber(filter.MinConfidence))
	}
	return values
}

func nonEmptyQuery(query url.Values) url.Values {
	out := make(url.Values, len(query))
	for key, values := range query {
		for _, v := range values {
			if v != "" {
				out.Add(key, v)
			}
		}
	}
	return out
}

type errUnsupportedFormat string

func (e errUnsupportedFormat) Error() string {
	return "unsupported export format " + string(e)
}
