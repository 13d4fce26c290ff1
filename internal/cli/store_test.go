package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/logsheet/internal/server"
	"github.com/matzehuels/logsheet/pkg/workout"
)

func TestImportAndList(t *testing.T) {
	c, dir := newTestCLI(t)
	captureStdout(t)
	plan := writePlan(t, dir, "spring.toml")

	if err := execute(t, c, "import", plan); err != nil {
		t.Fatalf("import: %v", err)
	}

	out := captureStdout(t)
	if err := execute(t, c, "list", "--json"); err != nil {
		t.Fatalf("list: %v", err)
	}
	var list []workout.Summary
	if err := json.Unmarshal(out.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v\n%s", err, out)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}
	if list[0].Comment != "Spring block" || list[0].Days != 1 {
		t.Errorf("summary = %+v, want the imported plan", list[0])
	}

	// Stored workouts render by id.
	target := filepath.Join(dir, "stored.json")
	if err := execute(t, c, "render", list[0].ID.String(), "-f", "json", "-o", target); err != nil {
		t.Fatalf("render stored workout: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("stored workout was not rendered: %v", err)
	}
}

func TestImportIsAllOrNothing(t *testing.T) {
	c, dir := newTestCLI(t)
	captureStdout(t)
	plan := writePlan(t, dir, "spring.toml")

	if err := execute(t, c, "import", plan, filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatal("expected error for a missing file")
	}

	out := captureStdout(t)
	if err := execute(t, c, "list"); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out.String(), "No stored workouts") {
		t.Errorf("list output = %q, want an empty store", out.String())
	}
}

func TestListOwner(t *testing.T) {
	c, dir := newTestCLI(t)
	captureStdout(t)
	plan := writePlan(t, dir, "spring.toml")

	if err := execute(t, c, "import", plan, "--owner", "anna"); err != nil {
		t.Fatalf("import: %v", err)
	}

	out := captureStdout(t)
	if err := execute(t, c, "list"); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out.String(), "No stored workouts") {
		t.Errorf("local list = %q, want anna's workout hidden", out.String())
	}

	out = captureStdout(t)
	if err := execute(t, c, "list", "--owner", "anna"); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out.String(), "Spring block") {
		t.Errorf("anna's list = %q, want the workout", out.String())
	}
}

func TestToken(t *testing.T) {
	t.Setenv("LOGSHEET_JWT_SECRET", "s3cret")
	c, _ := newTestCLI(t)
	out := captureStdout(t)

	if err := execute(t, c, "token", "anna", "--name", "Anna", "--ttl", "1h"); err != nil {
		t.Fatalf("token: %v", err)
	}
	id, err := server.ParseToken("s3cret", strings.TrimSpace(out.String()))
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if id.Username != "anna" || id.Name != "Anna" {
		t.Errorf("identity = %+v, want anna/Anna", id)
	}
}

func TestTokenWithoutSecret(t *testing.T) {
	c, _ := newTestCLI(t)
	captureStdout(t)

	if err := execute(t, c, "token", "anna"); err == nil {
		t.Error("expected error without a jwt secret")
	}
	if err := execute(t, c, "token", "anna", "--ttl", time.Hour.String(), "extra"); err == nil {
		t.Error("expected error for extra arguments")
	}
}
