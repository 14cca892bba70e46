package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/blazonapi/blazon/blazongen/ir"
	"github.com/blazonapi/blazon/blazongen/openapi"
	"github.com/blazonapi/blazon/internal/descriptortest"
)

const testManifest = `
title: Blazon Test API
description: Remote administration methods.
contact:
  name: Blazon
  url: https://example.com
  email: api@example.com
license:
  name: Apache-2.0
  url: https://www.apache.org/licenses/LICENSE-2.0
version:
  major: 1
  minor: 2
  revision: 3
  release: 4
categories:
  - name: Clients
    methods:
      - name: SearchClients
        doc: Searches for clients.
        args: blazon.test.SearchArgs
        result: blazon.test.SearchResult
        http:
          - method: GET
            path: /api/clients/<client_id>/search
          - method: POST
            path: /api/clients/<client_id>/search
            deprecated: true
      - name: FetchBlob
        doc: Streams a binary blob.
        result: binary
        http:
          - method: GET
            path: /api/blobs/<blob_id>
  - name: Infra
    methods:
      - name: PurgeCache
        doc: Internal-only method without a route.
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "api.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	return path
}

func testFiles(t *testing.T) *protoregistry.Files {
	t.Helper()
	files, err := protodesc.NewFiles(&descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{descriptortest.FileProto()},
	})
	if err != nil {
		t.Fatalf("building file registry: %v", err)
	}
	return files
}

func TestLoad(t *testing.T) {
	m, err := Load(writeManifest(t, testManifest))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if m.Title != "Blazon Test API" {
		t.Errorf("title = %q", m.Title)
	}
	if len(m.Categories) != 2 {
		t.Fatalf("manifest has %d categories, want 2", len(m.Categories))
	}
	search := m.Categories[0].Methods[0]
	if search.Name != "SearchClients" || search.Args != "blazon.test.SearchArgs" {
		t.Errorf("first method = %+v", search)
	}
	if len(search.HTTP) != 2 || !search.HTTP[1].Deprecated {
		t.Errorf("bindings = %+v, want two with the second deprecated", search.HTTP)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load succeeded on a missing file")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeManifest(t, "{unclosed"))
	if err == nil || !strings.Contains(err.Error(), "parse manifest") {
		t.Errorf("Load error = %v, want parse failure", err)
	}
}

func TestLoad_RequiresTitle(t *testing.T) {
	_, err := Load(writeManifest(t, `
categories:
  - name: Clients
`))
	if err == nil || !strings.Contains(err.Error(), "invalid manifest") {
		t.Errorf("Load error = %v, want validation failure", err)
	}
}

func TestLoad_RequiresRulePath(t *testing.T) {
	_, err := Load(writeManifest(t, `
title: Blazon Test API
categories:
  - name: Clients
    methods:
      - name: SearchClients
        http:
          - method: GET
`))
	if err == nil || !strings.Contains(err.Error(), "invalid manifest") {
		t.Errorf("Load error = %v, want validation failure", err)
	}
}

func TestManifest_Config(t *testing.T) {
	m, err := Load(writeManifest(t, testManifest))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	want := openapi.Config{
		Title:       "Blazon Test API",
		Description: "Remote administration methods.",
		Contact:     openapi.Contact{Name: "Blazon", URL: "https://example.com", Email: "api@example.com"},
		License:     openapi.License{Name: "Apache-2.0", URL: "https://www.apache.org/licenses/LICENSE-2.0"},
		Version:     openapi.Version{Major: 1, Minor: 2, Revision: 3, Release: 4},
	}
	if diff := cmp.Diff(want, m.Config()); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestManifest_Registry(t *testing.T) {
	m, err := Load(writeManifest(t, testManifest))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	reg, err := m.Registry(testFiles(t))
	if err != nil {
		t.Fatalf("Registry returned error: %v", err)
	}
	if reg.Len() != 3 {
		t.Fatalf("registry has %d methods, want 3", reg.Len())
	}

	search, ok := reg.Method("SearchClients")
	if !ok {
		t.Fatal("SearchClients not registered")
	}
	if search.Category != "Clients" {
		t.Errorf("category = %q, want Clients", search.Category)
	}
	args, ok := search.Args.(*ir.Message)
	if !ok || args.TypeName() != "blazon.test.SearchArgs" {
		t.Errorf("args = %v, want blazon.test.SearchArgs message", search.Args)
	}
	if search.Result.TypeName() != "blazon.test.SearchResult" {
		t.Errorf("result = %v, want blazon.test.SearchResult", search.Result)
	}
	if len(search.Rules) != 2 || !search.Rules[1].Deprecated {
		t.Errorf("rules = %+v, want two with the second deprecated", search.Rules)
	}

	blob, ok := reg.Method("FetchBlob")
	if !ok {
		t.Fatal("FetchBlob not registered")
	}
	if blob.Result != ir.RawStream {
		t.Errorf("FetchBlob result = %v, want the raw stream marker", blob.Result)
	}
	if blob.Args != nil {
		t.Errorf("FetchBlob args = %v, want nil", blob.Args)
	}

	purge, ok := reg.Method("PurgeCache")
	if !ok {
		t.Fatal("PurgeCache not registered")
	}
	if purge.Category != "Infra" || len(purge.Rules) != 0 {
		t.Errorf("PurgeCache = %+v, want Infra category and no rules", purge)
	}
}

func TestManifest_Registry_UnknownArgs(t *testing.T) {
	m := &Manifest{
		Title: "Blazon Test API",
		Categories: []Category{{
			Name:    "Clients",
			Methods: []Method{{Name: "SearchClients", Args: "blazon.test.Missing"}},
		}},
	}

	_, err := m.Registry(testFiles(t))
	if err == nil || !strings.Contains(err.Error(), "blazon.test.Missing") {
		t.Errorf("Registry error = %v, want unresolved name", err)
	}
}

func TestManifest_Registry_EnumResult(t *testing.T) {
	m := &Manifest{
		Title: "Blazon Test API",
		Categories: []Category{{
			Name:    "Clients",
			Methods: []Method{{Name: "ReadState", Result: "blazon.test.ClientState"}},
		}},
	}

	_, err := m.Registry(testFiles(t))
	if err == nil || !strings.Contains(err.Error(), "not a message") {
		t.Errorf("Registry error = %v, want non-message result rejection", err)
	}
}
