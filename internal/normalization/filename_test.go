package normalization

import "testing"

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My cool video.mp4", "My_cool_video.mp4"},
		{"../../etc/passwd", "etc_passwd"},
		{`C:\Users\me\clip.mov`, "C_Users_me_clip.mov"},
		{"Café olé.avi", "Cafe_ole.avi"},
		{"  spaced\tout  .mp4", "spaced_out_.mp4"},
		{".hidden.mp4", "hidden.mp4"},
		{"día$%&.mp4", "dia.mp4"},
		{"日本語.mp4", "mp4"},
		{"con.mp4", "_con.mp4"},
		{"...", ""},
		{"", ""},
	}
	for _, tc := range tests {
		if got := SanitizeFilename(tc.in); got != tc.want {
			t.Fatalf("SanitizeFilename(%q): got=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestParseInputString(t *testing.T) {
	if got := ParseInputString("  HaPPy "); got != "happy" {
		t.Fatalf("ParseInputString: got=%q", got)
	}
	if got := ParseUsername("  Admin "); got != "Admin" {
		t.Fatalf("ParseUsername: got=%q", got)
	}
	if got := ParseEmail(" A@Example.COM "); got != "a@example.com" {
		t.Fatalf("ParseEmail: got=%q", got)
	}
}
