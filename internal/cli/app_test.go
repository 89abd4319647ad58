package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestApp_PrintHelp_ListsCommandsInOrder(t *testing.T) {
	app := NewApp("1.0.0", &bytes.Buffer{})
	app.AddCommand(&Command{Name: "list", Summary: "Print projects"})
	app.AddCommand(&Command{Name: "init", Summary: "Write config"})

	buf := &bytes.Buffer{}
	app.PrintHelp(buf)

	output := buf.String()
	listAt := strings.Index(output, "list")
	initAt := strings.Index(output, "init")
	if listAt < 0 || initAt < 0 {
		t.Fatalf("help missing commands:\n%s", output)
	}
	if listAt > initAt {
		t.Errorf("commands should appear in registration order:\n%s", output)
	}
	if !strings.Contains(output, "<query>") {
		t.Errorf("help should describe direct selection:\n%s", output)
	}
}

func TestApp_Execute_NoArgs_NotHandled(t *testing.T) {
	app := NewApp("1.0.0", &bytes.Buffer{})

	handled, err := app.Execute(context.Background(), nil)
	if handled || err != nil {
		t.Errorf("Execute(nil) = %v, %v; want false, nil", handled, err)
	}
}

func TestApp_Execute_UnknownName_NotHandled(t *testing.T) {
	app := NewApp("1.0.0", &bytes.Buffer{})
	app.AddCommand(&Command{Name: "list", Run: func(context.Context, []string) error {
		t.Error("list should not run")
		return nil
	}})

	handled, err := app.Execute(context.Background(), []string{"my-project"})
	if handled || err != nil {
		t.Errorf("Execute = %v, %v; want false, nil", handled, err)
	}
}

func TestApp_Execute_DispatchesWithArgs(t *testing.T) {
	app := NewApp("1.0.0", &bytes.Buffer{})
	var passedArgs []string
	app.AddCommand(&Command{
		Name: "list",
		Run: func(_ context.Context, args []string) error {
			passedArgs = args
			return nil
		},
	})

	handled, err := app.Execute(context.Background(), []string{"list", "extra"})
	if !handled || err != nil {
		t.Fatalf("Execute = %v, %v; want true, nil", handled, err)
	}
	if len(passedArgs) != 1 || passedArgs[0] != "extra" {
		t.Errorf("Command received args %v, want [extra]", passedArgs)
	}
}

func TestApp_Execute_PropagatesError(t *testing.T) {
	app := NewApp("1.0.0", &bytes.Buffer{})
	boom := errors.New("boom")
	app.AddCommand(&Command{Name: "init", Run: func(context.Context, []string) error { return boom }})

	handled, err := app.Execute(context.Background(), []string{"init"})
	if !handled || !errors.Is(err, boom) {
		t.Errorf("Execute = %v, %v; want true, boom", handled, err)
	}
}

func TestApp_Execute_CommandHelp_PrintsUsage(t *testing.T) {
	usage := &bytes.Buffer{}
	app := NewApp("1.0.0", usage)
	runCalled := false
	app.AddCommand(&Command{
		Name:  "init",
		Usage: "Usage: sessionizer init",
		Run: func(context.Context, []string) error {
			runCalled = true
			return nil
		},
	})

	handled, err := app.Execute(context.Background(), []string{"init", "--help"})
	if !handled || err != nil {
		t.Fatalf("Execute = %v, %v", handled, err)
	}
	if runCalled {
		t.Error("Run should not be called for --help")
	}
	if usage.String() != "Usage: sessionizer init\n" {
		t.Errorf("usage output = %q", usage.String())
	}
}

func TestApp_Lookup(t *testing.T) {
	app := NewApp("1.0.0", &bytes.Buffer{})
	app.AddCommand(&Command{Name: "version"})

	if _, ok := app.Lookup("version"); !ok {
		t.Error("Lookup(version) not found")
	}
	if _, ok := app.Lookup("nope"); ok {
		t.Error("Lookup(nope) should fail")
	}
}
