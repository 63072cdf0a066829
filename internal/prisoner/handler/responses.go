package handler

import (
	"time"

	"contact-registry/internal/prisoner"
	"contact-registry/pkg/domain"
)

type attributeResponse struct {
	ID          domain.AttributeID `json:"id"`
	Value       string             `json:"value"`
	CreatedBy   string             `json:"createdBy"`
	CreatedTime time.Time          `json:"createdTime"`
}

func toAttributeResponse(attr *prisoner.PrisonerAttribute) attributeResponse {
	return attributeResponse{
		ID:          attr.ID,
		Value:       attr.Value,
		CreatedBy:   attr.CreatedBy,
		CreatedTime: attr.CreatedTime,
	}
}

type syncResponse struct {
	Status        string             `json:"status"`
	ID            domain.AttributeID `json:"id"`
	DeactivatedID domain.AttributeID `json:"deactivatedId,omitempty"`
}

func toSyncResponse(outcome *prisoner.SyncOutcome) syncResponse {
	return syncResponse{
		Status:        string(outcome.Status),
		ID:            outcome.ID,
		DeactivatedID: outcome.DeactivatedID,
	}
}

type migrateResponse struct {
	IDs []domain.AttributeID `json:"ids"`
}

func toMigrateResponse(ids []domain.AttributeID) migrateResponse {
	return migrateResponse{IDs: ids}
}

type restrictionResponse struct {
	ID                 domain.RestrictionID `json:"id"`
	RestrictionType    string               `json:"restrictionType"`
	EffectiveDate      string               `json:"effectiveDate"`
	ExpiryDate         *string              `json:"expiryDate,omitempty"`
	CommentText        string               `json:"commentText,omitempty"`
	AuthorisedUsername string               `json:"authorisedUsername"`
	CreatedBy          string               `json:"createdBy"`
	CreatedTime        time.Time            `json:"createdTime"`
}

func toRestrictionsResponse(rows []prisoner.PrisonerRestriction) []restrictionResponse {
	out := make([]restrictionResponse, 0, len(rows))
	for _, row := range rows {
		resp := restrictionResponse{
			ID:                 row.ID,
			RestrictionType:    row.RestrictionType,
			EffectiveDate:      row.EffectiveDate.Format("2006-01-02"),
			CommentText:        row.CommentText,
			AuthorisedUsername: row.AuthorisedUsername,
			CreatedBy:          row.CreatedBy,
			CreatedTime:        row.CreatedTime,
		}
		if row.ExpiryDate != nil {
			expiry := row.ExpiryDate.Format("2006-01-02")
			resp.ExpiryDate = &expiry
		}
		out = append(out, resp)
	}
	return out
}

type diffResponse struct {
	CreatedRestrictions []domain.RestrictionID `json:"createdRestrictions"`
	DeletedRestrictions []domain.RestrictionID `json:"deletedRestrictions"`
	WasDeleted          bool                   `json:"wasDeleted"`
}

func toDiffResponse(diff *prisoner.RestrictionsDiff) diffResponse {
	return diffResponse{
		CreatedRestrictions: diff.Created,
		DeletedRestrictions: diff.Deleted,
		WasDeleted:          diff.WasDeleted,
	}
}

type mergeResponse struct {
	DomesticStatus   *syncResponse `json:"domesticStatus,omitempty"`
	NumberOfChildren *syncResponse `json:"numberOfChildren,omitempty"`
	Restrictions     diffResponse  `json:"restrictions"`
}

func toMergeResponse(outcome *prisoner.MergeOutcome) mergeResponse {
	resp := mergeResponse{
		Restrictions: toDiffResponse(&outcome.Restrictions),
	}
	if outcome.DomesticStatus != nil {
		ds := toSyncResponse(outcome.DomesticStatus)
		resp.DomesticStatus = &ds
	}
	if outcome.NumberOfChildren != nil {
		noc := toSyncResponse(outcome.NumberOfChildren)
		resp.NumberOfChildren = &noc
	}
	return resp
}
