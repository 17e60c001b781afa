package credentials

import (
	"context"
	"fmt"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/tools/types"
	"github.com/shashank-sharma/backend/internal/store"
)

type CredentialStats struct {
	CredentialType   string
	CredentialID     string
	TotalRequests    int64
	SuccessCount     int64
	FailureCount     int64
	SuccessRate      float64
	TotalTokens      int64
	LastUsedAt       time.Time
	AvgResponseTime  float64
	TotalConnections int64
	// Truncated is set when the read hit the aggregation cap, meaning
	// older events beyond the cap were not folded into these totals.
	Truncated bool
}

const (
	maxStatsEvents     = 10000
	maxUserStatsEvents = 50000
)

type StatsService struct{}

func NewStatsService() *StatsService {
	return &StatsService{}
}

func (s *StatsService) AggregateStats(ctx context.Context, credentialType, credentialID string) (*CredentialStats, error) {
	dao := store.GetDao()

	query := dao.DB().Select("*").From("credential_usage").
		Where(dbx.HashExp{
			"credential_type": credentialType,
			"credential_id":   credentialID,
		}).
		OrderBy("timestamp DESC").
		Limit(maxStatsEvents)

	var dbxRecords []dbx.NullStringMap
	if err := query.All(&dbxRecords); err != nil {
		return &CredentialStats{
			CredentialType: credentialType,
			CredentialID:   credentialID,
		}, nil
	}

	if len(dbxRecords) == 0 {
		return &CredentialStats{
			CredentialType: credentialType,
			CredentialID:   credentialID,
		}, nil
	}

	var totals rowTotals
	for _, dbxRecord := range dbxRecords {
		foldUsageRow(&totals, dbxRecord, credentialType)
	}

	var successRate float64
	if totals.requests > 0 {
		successRate = float64(totals.successCount) / float64(totals.requests)
	}

	var avgResponseTime float64
	if totals.requests > 0 {
		avgResponseTime = float64(totals.responseTimeSum) / float64(totals.requests)
	}

	return &CredentialStats{
		CredentialType:   credentialType,
		CredentialID:     credentialID,
		TotalRequests:    totals.requests,
		SuccessCount:     totals.successCount,
		FailureCount:     totals.failureCount,
		SuccessRate:      successRate,
		TotalTokens:      totals.tokens,
		LastUsedAt:       totals.lastUsedAt,
		AvgResponseTime:  avgResponseTime,
		TotalConnections: totals.connections,
		Truncated:        int64(len(dbxRecords)) >= maxStatsEvents,
	}, nil
}

// rowTotals accumulates the per-row fields folded out of credential_usage
// rows, shared by AggregateStats (single credential) and AggregateAllUserStats
// (grouped by credential) so both fold a row identically.
type rowTotals struct {
	requests        int64
	successCount    int64
	failureCount    int64
	tokens          int64
	responseTimeSum int64
	lastUsedAt      time.Time
	connections     int64
}

// foldUsageRow folds one credential_usage row, read via dbx.NullStringMap,
// into totals. credentialType gates the security_key connection count,
// since SSH_CONNECT only appears on that credential type's rows.
func foldUsageRow(totals *rowTotals, row dbx.NullStringMap, credentialType string) {
	totals.requests++

	var statusCode int
	if statusCodeVal := row["status_code"]; statusCodeVal.Valid {
		if code, err := parseInt(statusCodeVal.String); err == nil {
			statusCode = code
		}
	}
	if statusCode >= 200 && statusCode < 400 {
		totals.successCount++
	} else {
		totals.failureCount++
	}

	if tokensVal := row["tokens_used"]; tokensVal.Valid {
		if tokens, err := parseInt64(tokensVal.String); err == nil {
			totals.tokens += tokens
		}
	}

	if rtVal := row["response_time_ms"]; rtVal.Valid {
		if rt, err := parseInt64(rtVal.String); err == nil {
			totals.responseTimeSum += rt
		}
	}

	if tsVal := row["timestamp"]; tsVal.Valid {
		if dt, err := types.ParseDateTime(tsVal.String); err == nil {
			if ts := dt.Time(); ts.After(totals.lastUsedAt) {
				totals.lastUsedAt = ts
			}
		}
	}

	if credentialType == "security_key" {
		if methodVal := row["method"]; methodVal.Valid && methodVal.String == "SSH_CONNECT" {
			totals.connections++
		}
	}
}

// Helper functions for parsing
func parseInt(s string) (int, error) {
	var result int
	_, err := fmt.Sscanf(s, "%d", &result)
	return result, err
}

func parseInt64(s string) (int64, error) {
	var result int64
	_, err := fmt.Sscanf(s, "%d", &result)
	return result, err
}

func (s *StatsService) UpdateCredentialCollectionStats(ctx context.Context, credentialType, credentialID string) error {
	stats, err := s.AggregateStats(ctx, credentialType, credentialID)
	if err != nil {
		return fmt.Errorf("failed to aggregate stats: %w", err)
	}

	dao := store.GetDao()
	collectionName := GetCollectionName(credentialType)
	if collectionName == "" {
		return fmt.Errorf("unknown credential type: %s", credentialType)
	}

	record, err := dao.FindRecordById(collectionName, credentialID)
	if err != nil {
		return fmt.Errorf("failed to find credential record: %w", err)
	}

	updateData := map[string]interface{}{
		"total_requests":    stats.TotalRequests,
		"total_tokens_used": stats.TotalTokens,
		"success_rate":      stats.SuccessRate,
	}

	if !stats.LastUsedAt.IsZero() {
		lastUsed := types.DateTime{}
		lastUsed.Scan(stats.LastUsedAt)
		updateData["last_used_at"] = lastUsed
	}

	if credentialType == "security_key" {
		updateData["total_connections"] = stats.TotalConnections
	}

	for key, value := range updateData {
		record.Set(key, value)
	}

	if err := dao.Save(record); err != nil {
		return fmt.Errorf("failed to update credential stats: %w", err)
	}

	return nil
}

func (s *StatsService) AggregateAllUserStats(ctx context.Context, userID string) (map[string]*CredentialStats, error) {
	dao := store.GetDao()

	query := dao.DB().Select("*").From("credential_usage").
		Where(dbx.HashExp{"user": userID}).
		OrderBy("timestamp DESC").
		Limit(maxUserStatsEvents)

	var dbxRecords []dbx.NullStringMap
	if err := query.All(&dbxRecords); err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}

	statsMap := make(map[string]*CredentialStats)
	totalsMap := make(map[string]*rowTotals)

	for _, dbxRecord := range dbxRecords {
		credType := ""
		if v := dbxRecord["credential_type"]; v.Valid {
			credType = v.String
		}
		credID := ""
		if v := dbxRecord["credential_id"]; v.Valid {
			credID = v.String
		}
		key := fmt.Sprintf("%s:%s", credType, credID)

		if _, exists := statsMap[key]; !exists {
			statsMap[key] = &CredentialStats{
				CredentialType: credType,
				CredentialID:   credID,
			}
			totalsMap[key] = &rowTotals{}
		}

		foldUsageRow(totalsMap[key], dbxRecord, credType)
	}

	for key, totals := range totalsMap {
		stats := statsMap[key]
		stats.TotalRequests = totals.requests
		stats.SuccessCount = totals.successCount
		stats.FailureCount = totals.failureCount
		stats.TotalTokens = totals.tokens
		stats.LastUsedAt = totals.lastUsedAt
		stats.TotalConnections = totals.connections
		if totals.requests > 0 {
			stats.SuccessRate = float64(totals.successCount) / float64(totals.requests)
			stats.AvgResponseTime = float64(totals.responseTimeSum) / float64(totals.requests)
		}
	}

	return statsMap, nil
}

func GetCollectionName(credentialType string) string {
	switch credentialType {
	case "token":
		return "tokens"
	case "dev_token":
		return "dev_tokens"
	case "api_key":
		return "api_keys"
	case "security_key":
		return "security_keys"
	default:
		return ""
	}
}
