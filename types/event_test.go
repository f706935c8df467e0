package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusRan(t *testing.T) {
	tests := []struct {
		status Status
		ran    bool
	}{
		{StatusSuccess, true},
		{StatusFailure, true},
		{StatusError, true},
		{StatusPending, true},
		{StatusSkipped, false},
		{StatusIgnored, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.ran, tt.status.Ran())
		})
	}
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "SUCCESS", StatusSuccess.Text())
	assert.Equal(t, "ERROR", StatusError.Text())
}

func TestSelectorDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		selector Selector
		expected string
	}{
		{
			name:     "ordinary test",
			selector: Selector{Kind: SelectorTest, Name: "testTransfer"},
			expected: "testTransfer",
		},
		{
			name:     "nested test",
			selector: Selector{Kind: SelectorNested, Name: "testTransfer/overdraft"},
			expected: "testTransfer/overdraft",
		},
		{
			name:     "suite level",
			selector: Selector{Kind: SelectorSuite, Name: "ignored"},
			expected: "(suite level failure)",
		},
		{
			name:     "unknown kind falls back to diagnostic form",
			selector: Selector{Kind: SelectorUnknown, Raw: "MethodSelector[foo()]"},
			expected: "unknown selector [MethodSelector[foo()]]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.selector.DisplayName())
		})
	}
}

func TestFailureDetailFirstLine(t *testing.T) {
	assert.Equal(t, "", (*FailureDetail)(nil).FirstLine())

	f := &FailureDetail{Message: "boom\ndetails"}
	assert.Equal(t, "boom", f.FirstLine())

	f = &FailureDetail{Kind: "AssertionError"}
	assert.Equal(t, "AssertionError", f.FirstLine())

	f = &FailureDetail{Kind: "AssertionError", Message: "expected 1 got 2"}
	assert.Equal(t, "expected 1 got 2", f.FirstLine())
}
