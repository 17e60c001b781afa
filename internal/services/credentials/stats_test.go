package credentials

import (
	"strconv"
	"testing"
	"time"

	"github.com/pocketbase/dbx"
)

// s6Row builds one credential_usage row the way dbx.NullStringMap scans it:
// every column valid and stringified, as stats.go expects to read it back.
func s6Row(statusCode, tokens, responseTimeMs int, timestamp time.Time) dbx.NullStringMap {
	return dbx.NullStringMap{
		"status_code":      {String: strconv.Itoa(statusCode), Valid: true},
		"tokens_used":      {String: strconv.Itoa(tokens), Valid: true},
		"response_time_ms": {String: strconv.Itoa(responseTimeMs), Valid: true},
		"timestamp":        {String: timestamp.UTC().Format("2006-01-02 15:04:05.000Z"), Valid: true},
	}
}

// TestFoldUsageRow_S6Scenario seeds the exact 4-event fixture: statuses
// 200,200,500,0; tokens 10,20,0,0; response times 100,200,300,400ms;
// timestamps T,T+1s,T+2s,T+3s. Expects totalRequests=4, successCount=2,
// failureCount=2, successRate=0.5, totalTokens=30, avgResponseTime=250,
// lastUsedAt=T+3s, totalConnections=0.
func TestFoldUsageRow_S6Scenario(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	rows := []dbx.NullStringMap{
		s6Row(200, 10, 100, base),
		s6Row(200, 20, 200, base.Add(1*time.Second)),
		s6Row(500, 0, 300, base.Add(2*time.Second)),
		s6Row(0, 0, 400, base.Add(3*time.Second)),
	}

	var totals rowTotals
	for _, row := range rows {
		foldUsageRow(&totals, row, "api_key")
	}

	if totals.requests != 4 {
		t.Errorf("requests = %d, want 4", totals.requests)
	}
	if totals.successCount != 2 {
		t.Errorf("successCount = %d, want 2", totals.successCount)
	}
	if totals.failureCount != 2 {
		t.Errorf("failureCount = %d, want 2", totals.failureCount)
	}
	if totals.tokens != 30 {
		t.Errorf("tokens = %d, want 30", totals.tokens)
	}

	successRate := float64(totals.successCount) / float64(totals.requests)
	if successRate != 0.5 {
		t.Errorf("successRate = %v, want 0.5", successRate)
	}

	avgResponseTime := float64(totals.responseTimeSum) / float64(totals.requests)
	if avgResponseTime != 250 {
		t.Errorf("avgResponseTime = %v, want 250", avgResponseTime)
	}

	wantLastUsed := base.Add(3 * time.Second)
	if !totals.lastUsedAt.Equal(wantLastUsed) {
		t.Errorf("lastUsedAt = %v, want %v", totals.lastUsedAt, wantLastUsed)
	}
	if totals.lastUsedAt.IsZero() {
		t.Error("lastUsedAt is zero; the PocketBase timestamp layout failed to parse")
	}

	if totals.connections != 0 {
		t.Errorf("connections = %d, want 0 for a non-security_key credential", totals.connections)
	}
}

// TestFoldUsageRow_SecurityKeyCountsSSHConnections exercises the
// totalConnections branch, which only fires for security_key credentials
// with an SSH_CONNECT method.
func TestFoldUsageRow_SecurityKeyCountsSSHConnections(t *testing.T) {
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	row := dbx.NullStringMap{
		"status_code": {String: "200", Valid: true},
		"method":      {String: "SSH_CONNECT", Valid: true},
		"timestamp":   {String: ts.Format("2006-01-02 15:04:05.000Z"), Valid: true},
	}

	var totals rowTotals
	foldUsageRow(&totals, row, "security_key")
	foldUsageRow(&totals, row, "security_key")

	if totals.connections != 2 {
		t.Errorf("connections = %d, want 2", totals.connections)
	}

	// A non-security_key credential must never increment connections, even
	// with the same SSH_CONNECT method value on the row.
	var apiKeyTotals rowTotals
	foldUsageRow(&apiKeyTotals, row, "api_key")
	if apiKeyTotals.connections != 0 {
		t.Errorf("connections = %d, want 0 for api_key credential", apiKeyTotals.connections)
	}
}

// TestFoldUsageRow_InvalidColumnsAreSkipped mirrors a row where some
// columns were never set (Valid=false), which stats.go must tolerate
// without panicking or miscounting.
func TestFoldUsageRow_InvalidColumnsAreSkipped(t *testing.T) {
	row := dbx.NullStringMap{
		"status_code": {Valid: false},
	}

	var totals rowTotals
	foldUsageRow(&totals, row, "api_key")

	if totals.requests != 1 {
		t.Errorf("requests = %d, want 1", totals.requests)
	}
	// An invalid/missing status code folds to 0, which is outside
	// [200,400) and therefore counts as a failure.
	if totals.failureCount != 1 {
		t.Errorf("failureCount = %d, want 1", totals.failureCount)
	}
	if !totals.lastUsedAt.IsZero() {
		t.Errorf("lastUsedAt = %v, want zero value with no timestamp column", totals.lastUsedAt)
	}
}

func TestParseInt(t *testing.T) {
	n, err := parseInt("200")
	if err != nil || n != 200 {
		t.Errorf("parseInt(\"200\") = %d, %v; want 200, nil", n, err)
	}
}

func TestParseInt64(t *testing.T) {
	n, err := parseInt64("30")
	if err != nil || n != 30 {
		t.Errorf("parseInt64(\"30\") = %d, %v; want 30, nil", n, err)
	}
}

func TestGetCollectionName(t *testing.T) {
	cases := map[string]string{
		"token":        "tokens",
		"dev_token":    "dev_tokens",
		"api_key":      "api_keys",
		"security_key": "security_keys",
		"unknown":      "",
	}
	for credentialType, want := range cases {
		if got := GetCollectionName(credentialType); got != want {
			t.Errorf("GetCollectionName(%q) = %q, want %q", credentialType, got, want)
		}
	}
}
