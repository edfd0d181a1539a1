package dto

import (
	"github.com/SscSPs/docflow_backend/internal/core/ports/repositories"
	"github.com/SscSPs/docflow_backend/internal/utils/pagination"
)

// ListParams defines query parameters shared by list endpoints.
type ListParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
	PartnerID *string `form:"partnerID" binding:"omitempty,docid=partner"`
}

// ToListFilter converts query parameters into a repository filter.
func (p ListParams) ToListFilter() repositories.ListFilter {
	return repositories.ListFilter{
		Limit:     pagination.NormalizeLimit(p.Limit),
		NextToken: p.NextToken,
		PartnerID: p.PartnerID,
	}
}

// StatsResponse holds aggregate counts per status for a document collection.
type StatsResponse struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
}

// NewStatsResponse fills in zero counts for every known status.
func NewStatsResponse[S ~string](known []S, counts map[string]int) StatsResponse {
	resp := StatsResponse{ByStatus: make(map[string]int, len(known))}
	for _, s := range known {
		resp.ByStatus[string(s)] = 0
	}
	for status, n := range counts {
		resp.ByStatus[status] += n
		resp.Total += n
	}
	return resp
}
