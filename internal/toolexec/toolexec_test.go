package toolexec

import "testing"

func TestRunToolMissing(t *testing.T) {
	out := ExecRunner{}.Run(Invocation{Program: "definitely-not-a-real-tool-4242"})
	if out.Status != ToolMissing {
		t.Errorf("Status = %v, want ToolMissing", out.Status)
	}
}

func TestRunSuccess(t *testing.T) {
	out := ExecRunner{}.Run(Invocation{Program: "true"})
	if out.Status != Success {
		t.Errorf("Status = %v, want Success", out.Status)
	}
}

func TestRunCommandFailed(t *testing.T) {
	out := ExecRunner{}.Run(Invocation{Program: "false"})
	if out.Status != CommandFailed {
		t.Fatalf("Status = %v, want CommandFailed", out.Status)
	}
	if out.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", out.ExitCode)
	}
}

func TestOutput(t *testing.T) {
	out, err := ExecRunner{}.Output("echo", "hello")
	if err != nil {
		t.Fatalf("Output() = %v", err)
	}
	if out != "hello\n" {
		t.Errorf("Output() = %q, want %q", out, "hello\n")
	}
}

func TestOutputMissingTool(t *testing.T) {
	if _, err := (ExecRunner{}).Output("definitely-not-a-real-tool-4242"); err == nil {
		t.Error("Output() for a missing tool should error")
	}
}

func TestHave(t *testing.T) {
	if !(ExecRunner{}).Have("true") {
		t.Error(`Have("true") = false on a POSIX system`)
	}
	if (ExecRunner{}).Have("definitely-not-a-real-tool-4242") {
		t.Error("Have() found a tool that does not exist")
	}
}

func TestInvocationString(t *testing.T) {
	tests := []struct {
		inv  Invocation
		want string
	}{
		{Invocation{Program: "xr_driver_cli"}, "xr_driver_cli"},
		{Invocation{Program: "xrandr", Args: []string{"--output", "eDP-1", "--off"}}, "xrandr --output eDP-1 --off"},
	}
	for _, tt := range tests {
		if got := tt.inv.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestStatusString(t *testing.T) {
	for status, want := range map[Status]string{
		Success:       "success",
		ToolMissing:   "tool missing",
		CommandFailed: "command failed",
	} {
		if got := status.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", status, got, want)
		}
	}
}
