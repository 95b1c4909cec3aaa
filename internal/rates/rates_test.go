package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/vitor-labes/price-compare/internal/domain"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.json")
	doc := `{"EUR": {"USD": 1.1, "GBP": 0.85}, "BRL": {"USD": 0.19}}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if table["EUR"]["USD"] != 1.1 || table["BRL"]["USD"] != 0.19 {
		t.Errorf("tabela carregada = %v", table)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("esperava erro para arquivo inexistente")
	}
}

func TestFetchBase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("base"); got != "EUR" {
			t.Errorf("base = %q, want EUR", got)
		}
		w.Write([]byte(`{"base": "EUR", "rates": {"USD": 1.1}}`))
	}))
	defer server.Close()

	table := domain.RateTable{}
	if err := FetchBase(context.Background(), server.URL, "EUR", table); err != nil {
		t.Fatalf("FetchBase: %v", err)
	}
	if table["EUR"]["USD"] != 1.1 {
		t.Errorf("tabela = %v", table)
	}
}

func TestFetchBaseServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	table := domain.RateTable{}
	if err := FetchBase(context.Background(), server.URL, "EUR", table); err == nil {
		t.Error("esperava erro para resposta 502")
	}
	if len(table) != 0 {
		t.Errorf("tabela não deveria ser preenchida: %v", table)
	}
}
