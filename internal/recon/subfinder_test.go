package recon

import (
	"reflect"
	"testing"
)

func TestParseHostnames(t *testing.T) {
	data := []byte("www.example.com\nhttps://api.example.com:8443/path\nAPI.example.com\nother.com\n\n")
	got := parseHostnames(data, "example.com")
	want := []string{"www.example.com", "api.example.com"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseHostnames() = %v, want %v", got, want)
	}
}

func TestSubfinderEnumerate_MissingBinary(t *testing.T) {
	hosts, err := SubfinderEnumerate(t.Context(), "example.com")
	if err != nil {
		t.Errorf("expected no error when subfinder isn't on PATH, got %v", err)
	}
	if hosts != nil {
		t.Errorf("expected nil hosts, got %v", hosts)
	}
}
