package handler

import (
	"net/http"
	"strconv"
	"time"

	"contact-registry/internal/search"
	dErrors "contact-registry/pkg/domain-errors"
)

type searchRequest struct {
	query search.MatchQuery
	page  search.PageRequest
	sort  string
}

func parseSearchRequest(r *http.Request) (*searchRequest, error) {
	q := r.URL.Query()

	req := &searchRequest{
		query: search.MatchQuery{
			LastName:       q.Get("lastName"),
			FirstName:      q.Get("firstName"),
			MiddleNames:    q.Get("middleNames"),
			SoundsLike:     q.Get("soundsLike") == "true",
			IncludeHistory: q.Get("includeHistory") == "true",
		},
		page: search.PageRequest{Page: 0, Size: 20},
		sort: q.Get("sort"),
	}

	if dob := q.Get("dateOfBirth"); dob != "" {
		parsed, err := time.Parse("2006-01-02", dob)
		if err != nil {
			return nil, dErrors.Newf(dErrors.CodeBadRequest, "dateOfBirth must be yyyy-mm-dd, got %q", dob)
		}
		req.query.DateOfBirth = &parsed
	}

	if page := q.Get("page"); page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 0 {
			return nil, dErrors.Newf(dErrors.CodeBadRequest, "page must be a non-negative integer, got %q", page)
		}
		req.page.Page = n
	}

	if size := q.Get("size"); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil || n < 1 {
			return nil, dErrors.Newf(dErrors.CodeBadRequest, "size must be a positive integer, got %q", size)
		}
		req.page.Size = n
	}

	return req, nil
}
