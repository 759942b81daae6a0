package validation

import "testing"

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid name", "Mia", false},
		{"trimmed valid name", "  Mia  ", false},
		{"empty name", "", true},
		{"whitespace only", "   ", true},
		{"single character", "M", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateContact(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain digits", "0771234567", false},
		{"international format", "+44 7700 900123", false},
		{"email address", "asha@example.com", false},
		{"empty contact", "", true},
		{"letters rejected", "not-a-phone", true},
		{"malformed email", "asha@", true},
		{"too short", "12345", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContact(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateContact(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid password", "s3cret", false},
		{"minimum length", "ab12", false},
		{"too short", "abc", true},
		{"empty password", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateQuestion(t *testing.T) {
	if err := ValidateQuestion("dog"); err != nil {
		t.Errorf("ValidateQuestion(\"dog\") error = %v, want nil", err)
	}
	if err := ValidateQuestion("  "); err == nil {
		t.Error("ValidateQuestion(\"  \") error = nil, want error")
	}
}
