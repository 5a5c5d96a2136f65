package proposal

import "testing"

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"draft", "generated", "saved", "sent"} {
		status, err := ParseStatus(valid)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned error: %v", valid, err)
		}
		if string(status) != valid {
			t.Errorf("ParseStatus(%q) = %q", valid, status)
		}
	}

	for _, invalid := range []string{"", "archived", "SENT", "pending"} {
		if _, err := ParseStatus(invalid); err == nil {
			t.Errorf("ParseStatus(%q) must fail", invalid)
		}
	}
}

func TestIsTransitionAllowed(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusDraft, StatusGenerated, true},
		{StatusGenerated, StatusSaved, true},
		{StatusSaved, StatusSent, true},
		{StatusDraft, StatusSent, true},
		{StatusSent, StatusSaved, false},
		{StatusSaved, StatusGenerated, false},
		{StatusGenerated, StatusDraft, false},
		{StatusSent, StatusDraft, false},

		// Same-status overwrites keep save and send idempotent.
		{StatusSaved, StatusSaved, true},
		{StatusSent, StatusSent, true},
	}

	for _, tt := range tests {
		if got := IsTransitionAllowed(tt.from, tt.to); got != tt.want {
			t.Errorf("IsTransitionAllowed(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}

	if IsTransitionAllowed(Status("archived"), StatusSent) {
		t.Error("unknown from-status must be rejected")
	}
	if IsTransitionAllowed(StatusDraft, Status("archived")) {
		t.Error("unknown to-status must be rejected")
	}
}

func TestIsSent(t *testing.T) {
	if !IsSent(StatusSent) {
		t.Error("sent must report true")
	}
	if IsSent(StatusSaved) {
		t.Error("saved must report false")
	}
}
