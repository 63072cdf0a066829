package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"contact-registry/internal/prisoner"
	"contact-registry/internal/prisoner/attributes"
	"contact-registry/pkg/domain"
	dErrors "contact-registry/pkg/domain-errors"
)

type syncAttributeBody struct {
	Value  string `json:"value"`
	Source string `json:"source"`
}

type syncAttributeRequest struct {
	value  string
	source domain.Source
}

func parseSyncAttributeRequest(r *http.Request) (*syncAttributeRequest, error) {
	var body syncAttributeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "malformed request body")
	}
	source, err := parseSource(body.Source)
	if err != nil {
		return nil, err
	}
	return &syncAttributeRequest{value: body.Value, source: source}, nil
}

type migratedRecordBody struct {
	Value       string    `json:"value"`
	CreatedBy   string    `json:"createdBy"`
	CreatedTime time.Time `json:"createdTime"`
}

type migrateBody struct {
	History []migratedRecordBody `json:"history"`
	Current *migratedRecordBody  `json:"current"`
}

func parseMigrateRequest(r *http.Request) ([]attributes.MigratedRecord, *attributes.MigratedRecord, error) {
	var body migrateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "malformed request body")
	}

	history := make([]attributes.MigratedRecord, 0, len(body.History))
	for _, rec := range body.History {
		history = append(history, attributes.MigratedRecord{
			Value:       rec.Value,
			CreatedBy:   rec.CreatedBy,
			CreatedTime: rec.CreatedTime,
		})
	}
	var current *attributes.MigratedRecord
	if body.Current != nil {
		current = &attributes.MigratedRecord{
			Value:       body.Current.Value,
			CreatedBy:   body.Current.CreatedBy,
			CreatedTime: body.Current.CreatedTime,
		}
	}
	return history, current, nil
}

type restrictionInputBody struct {
	RestrictionType    string  `json:"restrictionType"`
	EffectiveDate      string  `json:"effectiveDate"`
	ExpiryDate         *string `json:"expiryDate"`
	CommentText        string  `json:"commentText"`
	AuthorisedUsername string  `json:"authorisedUsername"`
}

type resetBody struct {
	Restrictions []restrictionInputBody `json:"restrictions"`
	Source       string                 `json:"source"`
}

type resetRequest struct {
	inputs []prisoner.RestrictionInput
	source domain.Source
}

func parseResetRequest(r *http.Request) (*resetRequest, error) {
	var body resetBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "malformed request body")
	}
	source, err := parseSource(body.Source)
	if err != nil {
		return nil, err
	}

	inputs := make([]prisoner.RestrictionInput, 0, len(body.Restrictions))
	for _, in := range body.Restrictions {
		effective, err := parseDate(in.EffectiveDate, "effectiveDate")
		if err != nil {
			return nil, err
		}
		input := prisoner.RestrictionInput{
			RestrictionType:    in.RestrictionType,
			EffectiveDate:      effective,
			CommentText:        in.CommentText,
			AuthorisedUsername: in.AuthorisedUsername,
		}
		if in.ExpiryDate != nil {
			expiry, err := parseDate(*in.ExpiryDate, "expiryDate")
			if err != nil {
				return nil, err
			}
			input.ExpiryDate = &expiry
		}
		inputs = append(inputs, input)
	}
	return &resetRequest{inputs: inputs, source: source}, nil
}

type mergeBody struct {
	KeepingPrisonerNumber  string `json:"keepingPrisonerNumber"`
	RemovingPrisonerNumber string `json:"removingPrisonerNumber"`
	Source                 string `json:"source"`
}

type mergeRequest struct {
	keeping  domain.PrisonerNumber
	removing domain.PrisonerNumber
	source   domain.Source
}

func parseMergeRequest(r *http.Request) (*mergeRequest, error) {
	var body mergeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "malformed request body")
	}
	source, err := parseSource(body.Source)
	if err != nil {
		return nil, err
	}
	return &mergeRequest{
		keeping:  domain.PrisonerNumber(body.KeepingPrisonerNumber),
		removing: domain.PrisonerNumber(body.RemovingPrisonerNumber),
		source:   source,
	}, nil
}

// parseSource defaults to DPS: NOMIS must identify itself so consumers can
// break sync loops.
func parseSource(raw string) (domain.Source, error) {
	switch domain.Source(raw) {
	case domain.SourceNOMIS:
		return domain.SourceNOMIS, nil
	case domain.SourceDPS, "":
		return domain.SourceDPS, nil
	default:
		return "", dErrors.Newf(dErrors.CodeBadRequest, "source must be NOMIS or DPS, got %q", raw)
	}
}

func parseDate(raw, field string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, dErrors.Newf(dErrors.CodeBadRequest, "%s must be yyyy-mm-dd, got %q", field, raw)
	}
	return t, nil
}
