package commands

import (
	"bytes"
	"strings"
	"testing"
)

const (
	testUserName   = "Robert Lee Mitchell"
	testUserSecret = "banana colored duckling"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPasswordCommand(t *testing.T) {
	t.Setenv("SPECTRE_SECRET", testUserSecret)
	out, err := run(t, "", "password", "-u", testUserName, "masterpasswordapp.com")
	if err != nil {
		t.Fatalf("password: %v", err)
	}
	if got := strings.TrimSpace(out); got != "Jejr5[RepuSosp" {
		t.Fatalf("want %q, got %q", "Jejr5[RepuSosp", got)
	}
}

func TestSecretFromStdin(t *testing.T) {
	t.Setenv("SPECTRE_SECRET", "")
	out, err := run(t, testUserSecret+"\n", "password", "--user", testUserName, "--type", "long", "masterpasswordapp.com")
	if err != nil {
		t.Fatalf("password: %v", err)
	}
	if got := strings.TrimSpace(out); got != "Jejr5[RepuSosp" {
		t.Fatalf("want %q, got %q", "Jejr5[RepuSosp", got)
	}
}

func TestSiteCommandErrors(t *testing.T) {
	t.Setenv("SPECTRE_SECRET", testUserSecret)

	if _, err := run(t, "", "password", "masterpasswordapp.com"); err == nil {
		t.Fatal("expected error without a user name")
	}
	if _, err := run(t, "", "password", "-u", testUserName, "-t", "Octopus", "masterpasswordapp.com"); err == nil {
		t.Fatal("expected error for unknown result type")
	}
	if _, err := run(t, "", "password", "-u", testUserName, "-a", "4", "masterpasswordapp.com"); err == nil {
		t.Fatal("expected error for unsupported algorithm")
	}
	_, err := run(t, "", "answer", "-u", testUserName, "-c", "0", "masterpasswordapp.com")
	if err != nil {
		t.Fatalf("counter 0 takes the default: %v", err)
	}
	_, err = run(t, "", "login", "-u", testUserName, "-c", "4294967296", "masterpasswordapp.com")
	if err == nil || !strings.Contains(err.Error(), "keyCounter") {
		t.Fatalf("expected keyCounter error, got %v", err)
	}
}

func TestIdenticonCommand(t *testing.T) {
	t.Setenv("SPECTRE_SECRET", testUserSecret)
	out, err := run(t, "", "identicon", "-u", testUserName)
	if err != nil {
		t.Fatalf("identicon: %v", err)
	}
	if !strings.HasPrefix(out, testUserName+" ") || len(strings.TrimSpace(out)) <= len(testUserName) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestServeCommand(t *testing.T) {
	in := `{"userName":"` + testUserName + `","userSecret":"` + testUserSecret + `","siteName":"masterpasswordapp.com"}` + "\n"
	out, err := run(t, in, "serve")
	if err != nil {
		t.Fatalf("serve: %v", err)
	}
	if !strings.Contains(out, `"siteResult":"Jejr5[RepuSosp"`) {
		t.Fatalf("missing site result in %s", out)
	}
}
