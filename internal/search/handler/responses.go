package handler

import "contact-registry/internal/search"

type searchResponse struct {
	ContactIDs    []int64 `json:"contactIds"`
	Page          int     `json:"page"`
	Size          int     `json:"size"`
	TotalElements int     `json:"totalElements"`
}

func toSearchResponse(page *search.Page) searchResponse {
	ids := make([]int64, len(page.ContactIDs))
	for i, id := range page.ContactIDs {
		ids[i] = int64(id)
	}
	return searchResponse{
		ContactIDs:    ids,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
	}
}
