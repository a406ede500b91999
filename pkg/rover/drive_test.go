package rover

import (
	"testing"
)

func TestFromThrottle(t *testing.T) {
	tests := []struct {
		throttle int
		expected DriveCommand
	}{
		{0, DriveCommand{Dir: DirStop}},
		{40, DriveCommand{Dir: DirForward, Speed: 40}},
		{-70, DriveCommand{Dir: DirBackward, Speed: 70}},
		{150, DriveCommand{Dir: DirForward, Speed: 100}},   // clamped
		{-150, DriveCommand{Dir: DirBackward, Speed: 100}}, // clamped
	}

	for _, tt := range tests {
		got := FromThrottle(tt.throttle)
		if got != tt.expected {
			t.Errorf("FromThrottle(%d) = %+v, want %+v", tt.throttle, got, tt.expected)
		}
	}
}

func TestDriveCommand_Query(t *testing.T) {
	tests := []struct {
		cmd      DriveCommand
		expected string
	}{
		{Forward(50), "cmd=F&speed=50"},
		{Backward(0), "cmd=B&speed=0"},
		{Left(), "cmd=L"},
		{Right(), "cmd=R"},
		{Stop(), "cmd=S"},
	}

	for _, tt := range tests {
		got := tt.cmd.Query().Encode()
		if got != tt.expected {
			t.Errorf("%s.Query() = %q, want %q", tt.cmd, got, tt.expected)
		}
	}
}

func TestParseDrive(t *testing.T) {
	cmd, err := ParseDrive("f", 30)
	if err != nil {
		t.Fatalf("ParseDrive(f) returned error: %v", err)
	}
	if cmd != Forward(30) {
		t.Errorf("ParseDrive(f, 30) = %+v", cmd)
	}

	cmd, err = ParseDrive("L", 30)
	if err != nil {
		t.Fatalf("ParseDrive(L) returned error: %v", err)
	}
	if cmd.HasSpeed() {
		t.Errorf("ParseDrive(L) should not carry speed: %+v", cmd)
	}

	if _, err := ParseDrive("X", 0); err == nil {
		t.Error("ParseDrive(X) should fail")
	}
}

func TestClampAngle(t *testing.T) {
	tests := []struct {
		angle    int
		expected int
	}{
		{-5, 0},
		{0, 0},
		{90, 90},
		{180, 180},
		{200, 180},
	}

	for _, tt := range tests {
		if got := ClampAngle(tt.angle); got != tt.expected {
			t.Errorf("ClampAngle(%d) = %d, want %d", tt.angle, got, tt.expected)
		}
	}
}

func TestParseJoint(t *testing.T) {
	for _, j := range AllJoints() {
		got, err := ParseJoint(string(j))
		if err != nil || got != j {
			t.Errorf("ParseJoint(%q) = %q, %v", j, got, err)
		}
	}
	if _, err := ParseJoint("wrist"); err == nil {
		t.Error("ParseJoint(wrist) should fail")
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"", ""},
		{"192.168.4.1", "http://192.168.4.1"},
		{" 192.168.4.1/ ", "http://192.168.4.1"},
		{"HTTPS://cam.local/", "HTTPS://cam.local"},
		{"http://cam.local:81/stream", "http://cam.local:81/stream"},
	}

	for _, tt := range tests {
		if got := NormalizeURL(tt.raw); got != tt.expected {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.raw, got, tt.expected)
		}
	}
}

func TestWithScheme(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"", ""},
		{"192.168.4.1/", "http://192.168.4.1/"},
		{"http://cam/mjpg/", "http://cam/mjpg/"},
		{"cam/snap.cgi?dir=/", "http://cam/snap.cgi?dir=/"},
	}

	for _, tt := range tests {
		if got := WithScheme(tt.raw); got != tt.expected {
			t.Errorf("WithScheme(%q) = %q, want %q", tt.raw, got, tt.expected)
		}
	}
}
