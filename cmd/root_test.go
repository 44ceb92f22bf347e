package cmd

import (
	"testing"
)

func TestRootHasAllCommands(t *testing.T) {
	expected := []string{"book", "rooms", "suggest", "create", "now", "auth", "serve", "version"}

	for _, name := range expected {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected command %q to be registered", name)
		}
	}
}

func TestBookCmdFlags(t *testing.T) {
	cmd := newBookCmd()

	for _, flag := range []string{"room", "people", "time", "duration", "user"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected book command to have flag %q", flag)
		}
	}
}

func TestServeCmdDefaults(t *testing.T) {
	cmd := newServeCmd()

	transport := cmd.Flags().Lookup("transport")
	if transport == nil {
		t.Fatal("expected serve command to have transport flag")
	}
	if transport.DefValue != "stdio" {
		t.Errorf("expected stdio default transport, got %s", transport.DefValue)
	}
}

func TestAuthCmdSubcommands(t *testing.T) {
	cmd := newAuthCmd()

	for _, name := range []string{"url", "save", "status"} {
		found := false
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected auth subcommand %q", name)
		}
	}
}
