package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"partsite/internal/catalog"
	"partsite/internal/importer"
	"partsite/internal/testsupport"
)

func TestUpdateClonesAndImports(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"update", "--summary"}, env.configPath)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	requireContains(t, out, "nes/controller/a-button")
	requireContains(t, out, "1 created, 0 updated, 0 skipped")

	store := testsupport.MustOpenStore(t, env.cfg)
	part, err := store.FindByKey(context.Background(), catalog.NaturalKey{System: "nes", Device: "controller", Part: "a-button"})
	if err != nil || part == nil {
		t.Fatalf("FindByKey: %#v (err=%v)", part, err)
	}
	if strings.Join(part.Fits, ",") != "NES-004,NES-101" {
		t.Fatalf("unexpected fits %v", part.Fits)
	}
	firstUUID := part.UUID
	store.Close()

	env.commitDescriptor(t, "nes", "controller", "a-button", testsupport.Descriptor{
		Author: "someone else", Class: "button", Fits: []string{"NES-004"}, License: "MIT", Description: "v2",
	})
	env.commitDescriptor(t, "snes", "console", "door", testsupport.Descriptor{
		Author: "x", Class: "cover", Fits: []string{"SNS-001"}, License: "MIT", Description: "",
	})

	out, _, err = runCLI(t, []string{"update", "--summary"}, env.configPath)
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	requireContains(t, out, "1 created, 1 updated, 0 skipped")
	requireContains(t, out, firstUUID)

	out, _, err = runCLI(t, []string{"show", "nes/controller/a-button"}, env.configPath)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, out, firstUUID)
	requireContains(t, out, "someone else")
	requireContains(t, out, "Views:       0")
}

func TestUpdateWithoutSummaryPrintsNothing(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"update"}, env.configPath)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if strings.TrimSpace(out) != "" {
		t.Fatalf("expected no stdout without --summary, got %q", out)
	}
}

func TestUpdateFailsWhileLocked(t *testing.T) {
	env := setupCLITestEnv(t)

	release, err := importer.Lock(env.cfg.LockPath())
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	defer release()

	_, _, err = runCLI(t, []string{"update"}, env.configPath)
	if !errors.Is(err, importer.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestImportLocalDirectory(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := t.TempDir()
	testsupport.WriteDescriptor(t, dir, "gb", "console", "battery-cover", testsupport.Descriptor{
		Author: "a", Class: "cover", Fits: []string{"DMG-01"}, License: "MIT", Description: "d",
	})
	testsupport.WriteRawDescriptor(t, dir, "gb", "console", "broken", `{"author":"a"}`)

	out, _, err := runCLI(t, []string{"import", "--summary", dir}, env.configPath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	requireContains(t, out, "1 created, 0 updated, 1 skipped")
	requireContains(t, out, "missing required field")

	out, _, err = runCLI(t, []string{"parts", "--system", "gb"}, env.configPath)
	if err != nil {
		t.Fatalf("parts: %v", err)
	}
	requireContains(t, out, "battery-cover")
	requireContains(t, out, "DMG-01")
	if strings.Contains(out, "broken") {
		t.Fatalf("skipped descriptor listed: %s", out)
	}
}
