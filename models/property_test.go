package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkPending(t *testing.T) {
	p := Property{
		Status:         StatusActive,
		ApprovalStatus: ApprovalApproved,
		IsApproved:     true,
	}

	p.MarkPending()

	assert.Equal(t, StatusInactive, p.Status)
	assert.Equal(t, ApprovalPending, p.ApprovalStatus)
	assert.False(t, p.IsApproved)
}

func TestApprove(t *testing.T) {
	p := Property{}
	p.MarkPending()

	p.Approve()

	assert.Equal(t, StatusActive, p.Status)
	assert.Equal(t, ApprovalApproved, p.ApprovalStatus)
	assert.True(t, p.IsApproved)
}

func TestReject(t *testing.T) {
	p := Property{}
	p.MarkPending()

	p.Reject()

	assert.Equal(t, StatusInactive, p.Status)
	assert.Equal(t, ApprovalRejected, p.ApprovalStatus)
	assert.False(t, p.IsApproved)

	// An edit after rejection re-enters the moderation queue.
	p.MarkPending()
	assert.Equal(t, ApprovalPending, p.ApprovalStatus)
}
