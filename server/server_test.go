package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

const (
	imCSV   = "TradeID,Amount\nT001,1000\nT002,2000\nT003,3000\n"
	custCSV = "TradeID|Amount\nT001|1000\nT002|2050\nT003|3000\n"
	chCSV   = "TradeID\tAmount\nT001\t1000\nT002\t2000\n"
)

type upload struct {
	field, name, content string
}

// multipartRequest builds a reconcile request with the given files and fields.
func multipartRequest(t *testing.T, target string, files []upload, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.field, f.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := io.WriteString(fw, f.content); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func demoUploads() []upload {
	return []upload{
		{"im", "im.csv", imCSV},
		{"cust", "cust.txt", custCSV},
		{"ch", "ch.tsv", chCSV},
	}
}

var demoFields = map[string]string{"cust_delimiter": "pipe", "ch_delimiter": "tab"}

func do(t *testing.T, req *http.Request) (int, []byte, http.Header) {
	t.Helper()
	resp, err := New(nil).Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp.StatusCode, body, resp.Header
}

type reconcileBody struct {
	Report struct {
		RunID   string `json:"runId"`
		Summary struct {
			TotalRecords     int `json:"totalRecords"`
			Matched          int `json:"matched"`
			MissingOrphans   int `json:"missingOrphans"`
			AmountMismatches int `json:"amountMismatches"`
		} `json:"summary"`
		Breaks []struct {
			TradeID    string   `json:"tradeId"`
			Type       string   `json:"type"`
			CH         *float64 `json:"ch"`
			Difference float64  `json:"difference"`
		} `json:"breaks"`
	} `json:"report"`
	Warnings []string `json:"warnings"`
}

func TestHealthEndpoint(t *testing.T) {
	status, body, _ := do(t, httptest.NewRequest("GET", "/api/health", nil))
	if status != fiber.StatusOK {
		t.Errorf("expected 200, got %d", status)
	}
	var result map[string]string
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result["status"] != "ok" {
		t.Errorf("expected status=ok, got %q", result["status"])
	}
}

func TestReconcileEndpoint(t *testing.T) {
	status, body, _ := do(t, multipartRequest(t, "/api/reconcile", demoUploads(), demoFields))
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	var got reconcileBody
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	s := got.Report.Summary
	if s.TotalRecords != 3 || s.Matched != 1 || s.MissingOrphans != 1 || s.AmountMismatches != 1 {
		t.Errorf("unexpected summary %+v", s)
	}
	if got.Report.RunID == "" {
		t.Error("expected a run id")
	}
	if len(got.Report.Breaks) != 2 {
		t.Fatalf("expected 2 breaks, got %+v", got.Report.Breaks)
	}
	if b := got.Report.Breaks[0]; b.TradeID != "T002" || b.Type != "Mismatch" || b.Difference != 50 {
		t.Errorf("unexpected first break %+v", b)
	}
	if b := got.Report.Breaks[1]; b.TradeID != "T003" || b.Type != "Orphan" || b.CH != nil {
		t.Errorf("unexpected second break %+v", b)
	}
	if len(got.Warnings) != 0 {
		t.Errorf("unexpected warnings %v", got.Warnings)
	}
}

func TestReconcileEndpointFilterAndCSV(t *testing.T) {
	req := multipartRequest(t, "/api/reconcile?type=orphan&format=csv", demoUploads(), demoFields)
	status, body, header := do(t, req)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	want := "TradeID,Type,IM Amount,Cust Amount,CH Amount,Difference\nT003,Orphan,3000,3000,,0\n"
	if string(body) != want {
		t.Errorf("got body\n%s\nwant\n%s", body, want)
	}
	if cd := header.Get("Content-Disposition"); !strings.Contains(cd, "reconciliation_breaks.csv") {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}
}

func TestReconcileEndpointJSONSource(t *testing.T) {
	files := demoUploads()
	files[2] = upload{"ch", "ch.data", `{"trades":[{"TradeID":"T001","Amount":1000},{"TradeID":"T002","Amount":2000},{"TradeID":"T003","Amount":3000}]}`}
	fields := map[string]string{"cust_delimiter": "|", "ch_format": "json", "ch_jsonpath": "$.trades[*]"}
	status, body, _ := do(t, multipartRequest(t, "/api/reconcile", files, fields))
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	var got reconcileBody
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Report.Summary.Matched != 2 || len(got.Report.Breaks) != 1 {
		t.Errorf("unexpected report %+v", got.Report)
	}
}

func TestReconcileEndpointMissingFile(t *testing.T) {
	files := demoUploads()[:2]
	status, body, _ := do(t, multipartRequest(t, "/api/reconcile", files, demoFields))
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", status, body)
	}
	var got ErrorResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(got.Error, "Clearing House") {
		t.Errorf("error %q does not name the missing source", got.Error)
	}
}

func TestReconcileEndpointInvalidFile(t *testing.T) {
	files := demoUploads()
	files[1] = upload{"cust", "cust.txt", "ID|Value\nT001|1000\n"}
	status, body, _ := do(t, multipartRequest(t, "/api/reconcile", files, demoFields))
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", status, body)
	}
	var got ErrorResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got.Errors) != 1 || !strings.Contains(got.Errors["cust"], "Invalid columns") {
		t.Errorf("unexpected errors %v", got.Errors)
	}
}

func TestReconcileEndpointDuplicateWarning(t *testing.T) {
	same := upload{"im", "trades.csv", imCSV}
	files := []upload{same, {"cust", "trades.csv", imCSV}, {"ch", "ch.tsv", chCSV}}
	status, body, _ := do(t, multipartRequest(t, "/api/reconcile", files, map[string]string{"ch_delimiter": "tab"}))
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	var got reconcileBody
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got.Warnings) != 1 || !strings.Contains(got.Warnings[0], "trades.csv is already uploaded") {
		t.Errorf("unexpected warnings %v", got.Warnings)
	}
}

func TestReconcileEndpointBadRequest(t *testing.T) {
	for name, req := range map[string]*http.Request{
		"type":      multipartRequest(t, "/api/reconcile?type=settled", demoUploads(), demoFields),
		"delimiter": multipartRequest(t, "/api/reconcile", demoUploads(), map[string]string{"im_delimiter": ";"}),
		"format":    multipartRequest(t, "/api/reconcile?format=xml", demoUploads(), demoFields),
	} {
		t.Run(name, func(t *testing.T) {
			if status, body, _ := do(t, req); status != fiber.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", status, body)
			}
		})
	}
}

func TestDemoEndpoint(t *testing.T) {
	status, body, _ := do(t, httptest.NewRequest("GET", "/api/demo?id=t00&type=Mismatch", nil))
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	var got reconcileBody
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Report.Summary.TotalRecords != 3 {
		t.Errorf("filters must not change the summary, got %+v", got.Report.Summary)
	}
	if len(got.Report.Breaks) != 1 || got.Report.Breaks[0].TradeID != "T002" {
		t.Errorf("unexpected breaks %+v", got.Report.Breaks)
	}
}
