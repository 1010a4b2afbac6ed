package errors

import "testing"

func TestValidateYear(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		wantErr bool
	}{
		{"current era", 2026, false},
		{"minimum", 1, false},
		{"maximum", 9999, false},
		{"zero", 0, true},
		{"negative", -44, true},
		{"five digits", 10000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateYear(tt.year)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateYear(%d) error = %v, wantErr %v", tt.year, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFeedURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https", "https://calendar.example.com/team.ics", false},
		{"http", "http://calendar.example.com/team.ics", false},
		{"with query", "https://example.com/cal?token=abc", false},

		{"empty", "", true},
		{"file scheme", "file:///etc/passwd", true},
		{"ftp scheme", "ftp://example.com/cal.ics", true},
		{"no host", "https://", true},
		{"relative", "calendar/team.ics", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFeedURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFeedURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
