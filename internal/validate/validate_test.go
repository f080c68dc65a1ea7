package validate

import "testing"

func TestEmail(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"a@b.co", true},
		{"john.doe+tag@example.com", true},
		{"not-an-email", false},
		{"", false},
		{"missing@tld", false},
		{"@example.com", false},
		{"user@example.c", false},
	}
	for _, tc := range cases {
		if got := Email(tc.in); got != tc.want {
			t.Errorf("Email(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFormatPhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"5", "5"},
		{"555", "555"},
		{"5551", "555-1"},
		{"555123", "555-123"},
		{"5551234", "555-123-4"},
		{"5551234567", "555-123-4567"},
		{"(555) 123-4567", "555-123-4567"},
		{"55512345678", "555-123-4567"}, // digits past the tenth dropped
	}
	for _, tc := range cases {
		if got := FormatPhone(tc.in); got != tc.want {
			t.Errorf("FormatPhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatPhoneIdempotent(t *testing.T) {
	inputs := []string{"555", "555123", "5551234567"}
	for _, in := range inputs {
		once := FormatPhone(in)
		if twice := FormatPhone(once); twice != once {
			t.Errorf("FormatPhone not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestFormatPhoneIntl(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"555", "555"},
		{"5551234567", "555-123-4567"},
		{"15551234567", "+1-555-123-4567"},
		{"55512345678901", "+1-555-123-4567"},
	}
	for _, tc := range cases {
		if got := FormatPhoneIntl(tc.in); got != tc.want {
			t.Errorf("FormatPhoneIntl(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPhoneValidators(t *testing.T) {
	cases := []struct {
		in          string
		strict      bool
		countryCode bool
	}{
		{"555-123-4567", true, true},
		{"+1-555-123-4567", false, true},
		{"555-1234", false, false},
		{"5551234567", false, false},
		{"+2-555-123-4567", false, false},
		{"", false, false},
	}
	for _, tc := range cases {
		if got := PhoneStrict(tc.in); got != tc.strict {
			t.Errorf("PhoneStrict(%q) = %v, want %v", tc.in, got, tc.strict)
		}
		if got := PhoneWithCountryCode(tc.in); got != tc.countryCode {
			t.Errorf("PhoneWithCountryCode(%q) = %v, want %v", tc.in, got, tc.countryCode)
		}
	}
}

func TestWebsite(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"https://example.com", true},
		{"http://example.com", true},
		{"ftp://example.com", false},
		{"example.com", false},
	}
	for _, tc := range cases {
		if got := Website(tc.in); got != tc.want {
			t.Errorf("Website(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"<script>a & b</script>", "a &amp; b"},
		{"plain text", "plain text"},
		{`"quoted" & 'single'`, "&quot;quoted&quot; &amp; &#039;single&#039;"},
		{"<b>bold</b> stays text", "bold stays text"},
		{"a < b > c", "a  c"},
		{"5 &lt; 6", "5 &amp;lt; 6"},
	}
	for _, tc := range cases {
		if got := SanitizeInput(tc.in); got != tc.want {
			t.Errorf("SanitizeInput(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
