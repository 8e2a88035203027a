package importer

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"partsite/internal/catalog"
)

func TestParseDescriptor(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    catalog.Attributes
		wantErr error
	}{
		{
			name:  "complete",
			input: `{"author":"a","class":"c","fits":["NES-001","nes-001","NES-001"],"license":"l","description":"d","extra":1}`,
			want: catalog.Attributes{
				Author: "a", Class: "c", Fits: []string{"NES-001", "nes-001"}, License: "l", Description: "d",
			},
		},
		{
			name:  "empty fits",
			input: `{"author":"a","class":"c","fits":[],"license":"l","description":""}`,
			want:  catalog.Attributes{Author: "a", Class: "c", Fits: []string{}, License: "l"},
		},
		{name: "missing author", input: `{"class":"c","fits":[],"license":"l","description":"d"}`, wantErr: ErrMissingField},
		{name: "null fits", input: `{"author":"a","class":"c","fits":null,"license":"l","description":"d"}`, wantErr: ErrMissingField},
		{name: "missing description", input: `{"author":"a","class":"c","fits":[],"license":"l"}`, wantErr: ErrMissingField},
		{name: "fits not a list", input: `{"author":"a","class":"c","fits":"NES-001","license":"l","description":"d"}`, wantErr: ErrMalformed},
		{name: "author not a string", input: `{"author":3,"class":"c","fits":[],"license":"l","description":"d"}`, wantErr: ErrMalformed},
		{name: "array", input: `[1,2]`, wantErr: ErrMalformed},
		{name: "empty", input: ``, wantErr: ErrMalformed},
		{name: "truncated", input: `{"author":`, wantErr: ErrMalformed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDescriptor([]byte(tc.input))
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDescriptor: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %#v want %#v", got, tc.want)
			}
		})
	}
}

func TestScanMatchesThreeLevelsOnly(t *testing.T) {
	root := t.TempDir()
	write := func(rel string) {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	write("snes/console/door/metadata.json")
	write("nes/controller/a-button/metadata.json")
	write("nes/controller/metadata.json")
	write("nes/controller/a-button/extra/metadata.json")
	write("nes/controller/a-button/README.md")
	write(".git/x/y/metadata.json")
	if err := os.MkdirAll(filepath.Join(root, "nes", "console", "odd", "metadata.json"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	entries, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	var keys []string
	for _, e := range entries {
		keys = append(keys, e.Key.String())
	}
	want := []string{"nes/controller/a-button", "snes/console/door"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("got %v want %v", keys, want)
	}
}

func TestDescriptorErrorMessage(t *testing.T) {
	err := &DescriptorError{
		Path: "/repo/nes/controller/a-button/metadata.json",
		Key:  catalog.NaturalKey{System: "nes", Device: "controller", Part: "a-button"},
		Err:  ErrMalformed,
	}
	if err.Error() != "unable to load part nes/controller/a-button: malformed descriptor" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, ErrMalformed) {
		t.Fatal("expected DescriptorError to unwrap")
	}
}

func TestScanRootWithGlobMetacharacters(t *testing.T) {
	for _, name := range []string{"parts[1]", "parts*", "parts?x", "parts[x"} {
		root := filepath.Join(t.TempDir(), name)
		path := filepath.Join(root, "nes", "controller", "a[1]", DescriptorFile)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}

		entries, err := Scan(root)
		if err != nil {
			t.Fatalf("%s: Scan: %v", name, err)
		}
		if len(entries) != 1 || entries[0].Path != path || entries[0].Key.Part != "a[1]" {
			t.Fatalf("%s: unexpected entries %+v", name, entries)
		}
	}
}
