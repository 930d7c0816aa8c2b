package validators

import "testing"

func TestCheckEmail(t *testing.T) {
	testCases := []struct {
		Name     string
		Email    string
		Expected bool
	}{
		{Name: "Valid email #1", Email: "user@example.com", Expected: true},
		{Name: "Valid email with plus #2", Email: "user+tag@example.co", Expected: true},
		{Name: "Missing at #3", Email: "user.example.com", Expected: false},
		{Name: "Missing domain dot #4", Email: "user@example", Expected: false},
		{Name: "Empty local part #5", Email: "@example.com", Expected: false},
		{Name: "Spaces #6", Email: "us er@example.com", Expected: false},
		{Name: "Empty string #7", Email: "", Expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			if got := CheckEmail(tc.Email); got != tc.Expected {
				t.Errorf("CheckEmail(%q) = %v, expected %v", tc.Email, got, tc.Expected)
			}
		})
	}
}
