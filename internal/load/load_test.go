package load

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadSuppliersCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suppliers.csv")
	data := strings.Join([]string{
		"name,phone,address,city",
		"PHARMA ATLAS,0522-123456,12 RUE DES FAR,Casablanca",
		"MEDIC SUD,,ZONE INDUSTRIELLE,Agadir",
		",,,",
	}, "\n")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	rows, err := ReadSuppliersCSV(path)
	if err != nil {
		t.Fatalf("ReadSuppliersCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (nameless row dropped): %+v", len(rows), rows)
	}
	if rows[0].Name != "PHARMA ATLAS" || rows[0].City != "Casablanca" {
		t.Errorf("first row = %+v", rows[0])
	}
	if rows[1].Phone != "" {
		t.Errorf("second row phone = %q, want empty", rows[1].Phone)
	}
}

func TestReadSuppliersCSVMissingNameColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suppliers.csv")
	if err := os.WriteFile(path, []byte("phone,city\n0522,Rabat\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := ReadSuppliersCSV(path); err == nil {
		t.Fatal("want error when the name column is absent")
	}
}

func TestNullableHelpers(t *testing.T) {
	if nullIfEmpty("") != nil {
		t.Error("nullIfEmpty(\"\") should be nil")
	}
	if nullIfEmpty("x") == nil {
		t.Error("nullIfEmpty(\"x\") should pass through")
	}
	if nullIfZeroFloat(0) != nil || nullIfZeroID(0) != nil {
		t.Error("zero coordinates and ids should insert as NULL")
	}
	if nullIfZeroFloat(34.02) == nil || nullIfZeroID(7) == nil {
		t.Error("non-zero values should pass through")
	}
}
