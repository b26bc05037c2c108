package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithdrawal_Validate(t *testing.T) {
	requested := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	processed := requested.Add(2 * time.Hour)
	completed := processed.Add(6 * time.Hour)
	early := requested.Add(-time.Hour)

	tests := []struct {
		name       string
		withdrawal Withdrawal
		wantErr    string
	}{
		{
			name: "valid completed withdrawal",
			withdrawal: Withdrawal{
				WithdrawalID: "WDL-TEST-0001",
				Amount:       25000,
				Status:       WdStatusCompleted,
				RequestedAt:  requested,
				ProcessedAt:  &processed,
				CompletedAt:  &completed,
			},
		},
		{
			name: "valid pending withdrawal",
			withdrawal: Withdrawal{
				WithdrawalID: "WDL-TEST-0002",
				Amount:       5000,
				Status:       WdStatusPending,
				RequestedAt:  requested,
			},
		},
		{
			name: "pending with processedAt",
			withdrawal: Withdrawal{
				WithdrawalID: "WDL-TEST-0003",
				Amount:       5000,
				Status:       WdStatusPending,
				RequestedAt:  requested,
				ProcessedAt:  &processed,
			},
			wantErr: "processedAt must not be set while pending",
		},
		{
			name: "processedAt before requestedAt",
			withdrawal: Withdrawal{
				WithdrawalID: "WDL-TEST-0004",
				Amount:       5000,
				Status:       WdStatusProcessing,
				RequestedAt:  requested,
				ProcessedAt:  &early,
			},
			wantErr: "processedAt precedes requestedAt",
		},
		{
			name: "completedAt without processedAt",
			withdrawal: Withdrawal{
				WithdrawalID: "WDL-TEST-0005",
				Amount:       5000,
				Status:       WdStatusCompleted,
				RequestedAt:  requested,
				CompletedAt:  &completed,
			},
			wantErr: "completedAt requires processedAt",
		},
		{
			name: "completedAt before processedAt",
			withdrawal: Withdrawal{
				WithdrawalID: "WDL-TEST-0006",
				Amount:       5000,
				Status:       WdStatusCompleted,
				RequestedAt:  requested,
				ProcessedAt:  &completed,
				CompletedAt:  &processed,
			},
			wantErr: "completedAt precedes processedAt",
		},
		{
			name: "unknown status",
			withdrawal: Withdrawal{
				WithdrawalID: "WDL-TEST-0007",
				Amount:       5000,
				Status:       "queued",
				RequestedAt:  requested,
			},
			wantErr: "unknown withdrawal status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.withdrawal.Validate()
			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidWithdrawalStatus(t *testing.T) {
	for _, s := range []string{WdStatusPending, WdStatusProcessing, WdStatusCompleted, WdStatusFailed, WdStatusCancelled} {
		assert.True(t, ValidWithdrawalStatus(s), s)
	}
	assert.False(t, ValidWithdrawalStatus("queued"))
	assert.False(t, ValidWithdrawalStatus(""))
}
