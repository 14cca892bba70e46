package openapi

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSimplifyTemplate(t *testing.T) {
	tests := []struct {
		name   string
		tpl    string
		want   string
		params []string
	}{
		{
			name: "static path",
			tpl:  "/api/clients",
			want: "/api/clients",
		},
		{
			name:   "bare placeholder",
			tpl:    "/metadata_test/method1/<metadata_id>",
			want:   "/metadata_test/method1/{metadata_id}",
			params: []string{"metadata_id"},
		},
		{
			name:   "converter placeholder",
			tpl:    "/foo/<int:id>/bar",
			want:   "/foo/{id}/bar",
			params: []string{"id"},
		},
		{
			name:   "path converter",
			tpl:    "/files/<path:file_path>",
			want:   "/files/{file_path}",
			params: []string{"file_path"},
		},
		{
			name:   "several placeholders keep template order",
			tpl:    "/clients/<client_id>/flows/<int:flow_id>",
			want:   "/clients/{client_id}/flows/{flow_id}",
			params: []string{"client_id", "flow_id"},
		},
		{
			name: "angle brackets inside a segment are literal",
			tpl:  "/odd/a<b/c",
			want: "/odd/a<b/c",
		},
		{
			name: "empty template",
			tpl:  "",
			want: "",
		},
		{
			name: "root",
			tpl:  "/",
			want: "/",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, params := simplifyTemplate(tt.tpl)
			if got != tt.want {
				t.Errorf("simplifyTemplate(%q) = %q, want %q", tt.tpl, got, tt.want)
			}
			if diff := cmp.Diff(tt.params, params); diff != "" {
				t.Errorf("params mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOperationID(t *testing.T) {
	got := operationID("GET", "/foo/{client_id}/bar", "SearchClients")
	want := "GET-%2Ffoo%2F%7Bclient_id%7D%2Fbar-SearchClients"
	if got != want {
		t.Errorf("operationID = %q, want %q", got, want)
	}
}

func TestOperationID_Deterministic(t *testing.T) {
	a := operationID("POST", "/clients/{client_id}/flows", "CreateFlow")
	b := operationID("POST", "/clients/{client_id}/flows", "CreateFlow")
	if a != b {
		t.Errorf("operationID not stable: %q vs %q", a, b)
	}
	c := operationID("GET", "/clients/{client_id}/flows", "CreateFlow")
	if a == c {
		t.Error("operationID should distinguish verbs")
	}
}
