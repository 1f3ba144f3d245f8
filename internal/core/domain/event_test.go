package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTopic(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"customer_bank_transfer_completed", "bank_transfer_completed"},
		{"customer_transfer_created", "transfer_created"},
		{"customer_created", "customer_created"}, // only two segments, kept as-is
		{"transfer_completed", "transfer_completed"},
		{"customer_verified", "customer_verified"},
		{"account_suspended", "account_suspended"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTopic(tt.topic), "topic %q", tt.topic)
	}
}

func TestInferResourceType(t *testing.T) {
	tests := []struct {
		uri  string
		want ResourceType
	}{
		{"https://api.example.com/transfers/7b0fc518", ResourceTypeTransfer},
		{"https://api.example.com/customers/abc-123", ResourceTypeCustomer},
		{"https://api.example.com/funding-sources/fs-1", ResourceTypeFundingSource},
		{"https://api.example.com/accounts/acct-9", ResourceTypeAccount},
		{"https://api.example.com/widgets/x", ResourceTypeUnknown},
		{"", ResourceTypeUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, InferResourceType(tt.uri), "uri %q", tt.uri)
	}
}

func TestResourceIDFromURI(t *testing.T) {
	assert.Equal(t, "7b0fc518", ResourceIDFromURI("https://api.example.com/transfers/7b0fc518"))
	assert.Equal(t, "7b0fc518", ResourceIDFromURI("https://api.example.com/transfers/7b0fc518/"))
	assert.Equal(t, "", ResourceIDFromURI(""))
	assert.Equal(t, "", ResourceIDFromURI("///"))
}

func TestWebhookEvent_IsTerminal(t *testing.T) {
	terminal := []ProcessingState{ProcessingStateCompleted, ProcessingStateFailed, ProcessingStateQuarantined}
	open := []ProcessingState{ProcessingStateReceived, ProcessingStateQueued, ProcessingStateProcessing}

	for _, s := range terminal {
		e := &WebhookEvent{ProcessingState: s}
		assert.True(t, e.IsTerminal(), "state %s", s)
	}
	for _, s := range open {
		e := &WebhookEvent{ProcessingState: s}
		assert.False(t, e.IsTerminal(), "state %s", s)
	}
}
