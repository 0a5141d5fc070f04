// Copyright (c) 2025 Doctors Copilot
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ID accepts both string and numeric JSON identifiers. The backend serves
// MIMIC-derived records where patient and admission IDs arrive as numbers,
// but the contract does not promise that.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*id = ID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// VitalSigns holds the structured vitals attached to an insight record.
type VitalSigns struct {
	HeartRate   float64 `json:"heart_rate"`
	SystolicBP  float64 `json:"systolic_bp"`
	DiastolicBP float64 `json:"diastolic_bp"`
}

// LabResults holds the structured lab values attached to an insight record.
type LabResults struct {
	Glucose    float64 `json:"glucose"`
	Creatinine float64 `json:"creatinine"`
}

// Assessment is the AI-generated structured patient assessment.
type Assessment struct {
	ConcernLevel    string   `json:"concern_level"`
	KeyFindings     []string `json:"key_findings"`
	Recommendations []string `json:"recommendations"`
}

// InsightRecord is one patient's computed risk/assessment payload.
type InsightRecord struct {
	PatientID        ID         `json:"patient_id"`
	AdmissionID      ID         `json:"admission_id"`
	RiskScore        float64    `json:"risk_score"`
	ClinicalInsights string     `json:"clinical_insights"`
	AdmissionType    string     `json:"admission_type"`
	Diagnosis        string     `json:"diagnosis"`
	AdmissionDate    string     `json:"admission_date"`
	DischargeDate    string     `json:"discharge_date"`
	VitalSigns       VitalSigns `json:"vital_signs"`
	LabResults       LabResults `json:"lab_results"`
	Assessment       Assessment `json:"patient_assessment"`
}

// Pagination is the server-reported paging block.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// InsightsPage is one decoded, validated page of insight records.
type InsightsPage struct {
	Records    []InsightRecord
	Pagination Pagination
}

// insightsResponse mirrors the raw wire shape of GET /api/patient_insights.
type insightsResponse struct {
	Success    bool            `json:"success"`
	Data       []InsightRecord `json:"data"`
	Pagination *Pagination     `json:"pagination"`
	Error      string          `json:"error"`
	Message    string          `json:"message"`
}

// PatientInsights calls GET /api/patient_insights?page=N&per_page=M with an
// optional bearer token. Non-2xx responses become *StatusError; payloads that
// fail boundary validation become *MalformedResponseError.
func (h *HTTP) PatientInsights(ctx context.Context, accessToken string, page, perPage int) (*InsightsPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+pathInsights+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	var out insightsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &MalformedResponseError{Detail: "insights payload is not JSON"}
	}
	if !out.Success {
		return nil, &MalformedResponseError{Detail: "insights payload has success=false with status 200"}
	}
	if out.Pagination == nil {
		return nil, &MalformedResponseError{Detail: "missing pagination block"}
	}
	if out.Pagination.TotalItems < 0 || out.Pagination.Page < 1 || out.Pagination.PerPage < 1 {
		return nil, &MalformedResponseError{Detail: fmt.Sprintf("implausible pagination %+v", *out.Pagination)}
	}
	for i := range out.Data {
		if out.Data[i].PatientID == "" {
			return nil, &MalformedResponseError{Detail: fmt.Sprintf("record %d has no patient_id", i)}
		}
	}

	return &InsightsPage{Records: out.Data, Pagination: *out.Pagination}, nil
}

// readErrorMessage pulls a display message out of an error body when present.
func readErrorMessage(r io.Reader) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}
	if m := strings.TrimSpace(body.Message); m != "" {
		return m
	}
	return strings.TrimSpace(body.Error)
}
