package cmd

import (
	"testing"
)

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{"mix": false, "shower": false, "shower-phi": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestShowerFlagDefaults(t *testing.T) {
	// Defaults mirror the production selection.
	cases := []struct {
		flag string
		want string
	}{
		{"max-retry", "1000"},
		{"min-lepton-pt", "2.5"},
		{"max-lepton-eta", "2.4"},
		{"seed", "42"},
		{"nevents", "0"},
	}
	for _, tc := range cases {
		f := showerCmd.Flags().Lookup(tc.flag)
		if f == nil {
			t.Errorf("flag %q missing on shower", tc.flag)
			continue
		}
		if f.DefValue != tc.want {
			t.Errorf("flag %q default: got %s, want %s", tc.flag, f.DefValue, tc.want)
		}
	}

	if f := showerPhiCmd.Flags().Lookup("min-phi-pt"); f == nil {
		t.Error("flag min-phi-pt missing on shower-phi")
	}
	if f := showerCmd.Flags().Lookup("min-phi-pt"); f != nil {
		t.Error("min-phi-pt must not exist on the standard shower")
	}
}

func TestMixRequiresOutputAndInput(t *testing.T) {
	if err := mixCmd.Args(mixCmd, []string{"out.evt"}); err == nil {
		t.Error("mix must require at least one input")
	}
	if err := mixCmd.Args(mixCmd, []string{"out.evt", "in.evt"}); err != nil {
		t.Errorf("mix with one input must be valid: %v", err)
	}
}
