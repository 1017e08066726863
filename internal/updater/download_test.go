package updater

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
)

func TestDownloadAsset(t *testing.T) {
	content := []byte("server binary bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer server.Close()

	var progress bytes.Buffer
	u := New("robust-labs/robust-lsp",
		WithHTTPClient(server.Client()),
		WithProgress(&progress))

	asset := &Asset{Name: "robust-lsp-linux-x86_64", DownloadURL: server.URL + "/dl"}
	path, err := u.DownloadAsset(context.Background(), asset, t.TempDir())
	if err != nil {
		t.Fatalf("DownloadAsset failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content) {
		t.Error("downloaded bytes differ from served bytes")
	}
	if !strings.Contains(progress.String(), "100%") {
		t.Errorf("progress output missing completion: %q", progress.String())
	}
}

func TestDownloadAssetRetriesOnce(t *testing.T) {
	var hits atomic.Int32
	content := []byte("eventually fine")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			http.Error(w, "flaky", http.StatusBadGateway)
			return
		}
		w.Write(content)
	}))
	defer server.Close()

	u := New("robust-labs/robust-lsp", WithHTTPClient(server.Client()))

	asset := &Asset{Name: "robust-lsp-linux-x86_64", DownloadURL: server.URL + "/dl"}
	path, err := u.DownloadAsset(context.Background(), asset, t.TempDir())
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	got, _ := os.ReadFile(path)
	if !bytes.Equal(got, content) {
		t.Error("downloaded bytes differ after retry")
	}
}

func TestDownloadAssetFailureLeavesNoPartialFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	u := New("robust-labs/robust-lsp", WithHTTPClient(server.Client()))
	dir := t.TempDir()

	asset := &Asset{Name: "robust-lsp-linux-x86_64", DownloadURL: server.URL + "/dl"}
	_, err := u.DownloadAsset(context.Background(), asset, dir)
	if !errors.Is(err, ErrDownloadFailed) {
		t.Fatalf("expected ErrDownloadFailed, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("partial file left behind: %v", entries)
	}
}
