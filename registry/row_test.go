package registry

import "testing"

func TestRecords_PadsShortRowsAndDropsExtras(t *testing.T) {
	rows := [][]string{
		{"proyecto_id", "nombre_proyecto", "area"},
		{"P-001", "Planta Norte"},
		{"P-002", "Planta Sur", "12 ha", "extra cell"},
	}
	records := Records(rows)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Get("area") != "" {
		t.Fatalf("short row should read empty area, got %q", records[0].Get("area"))
	}
	if records[1].Get("area") != "12 ha" {
		t.Fatalf("expected area '12 ha', got %q", records[1].Get("area"))
	}
}

func TestRecords_HeaderOnlyYieldsNoRecords(t *testing.T) {
	if got := Records([][]string{{"proyecto_id"}}); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestMerge_ReportOverridesProject(t *testing.T) {
	project := Row{"area": "X", "nombre_proyecto": "Planta Norte"}

	merged := Merge(project, Row{"responsable": "ana"})
	if merged.Get("area") != "X" {
		t.Fatalf("project value should survive when the report lacks the key, got %q", merged.Get("area"))
	}

	merged = Merge(project, Row{"area": "Y"})
	if merged.Get("area") != "Y" {
		t.Fatalf("report value should win on shared keys, got %q", merged.Get("area"))
	}
	if merged.Get("nombre_proyecto") != "Planta Norte" {
		t.Fatalf("unrelated project keys should carry over, got %q", merged.Get("nombre_proyecto"))
	}
}

func TestRowGet_NilAndMissing(t *testing.T) {
	var nilRow Row
	if nilRow.Get("anything") != "" {
		t.Fatalf("nil row should read empty")
	}
	if (Row{"a": "1"}).Get("b") != "" {
		t.Fatalf("missing key should read empty")
	}
}
