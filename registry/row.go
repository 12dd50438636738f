package registry

import "strings"

// Row is one record of a registry tab, keyed by the tab's header cells.
// Missing cells read as "".
type Row map[string]string

// Get mirrors spreadsheet semantics: absent keys are empty strings.
func (r Row) Get(key string) string {
	if r == nil {
		return ""
	}
	return r[key]
}

// Records maps raw sheet rows (header first) into Rows. Short data rows
// are padded with empty strings; cells beyond the header width are
// dropped, matching how spreadsheet clients expose records.
func Records(rows [][]string) []Row {
	if len(rows) < 2 {
		return nil
	}
	headers := rows[0]
	out := make([]Row, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		rec := make(Row, len(headers))
		for i, h := range headers {
			h = strings.TrimSpace(h)
			if h == "" {
				continue
			}
			if i < len(raw) {
				rec[h] = raw[i]
			} else {
				rec[h] = ""
			}
		}
		out = append(out, rec)
	}
	return out
}

// Merge combines a project row and a report row into the row handed to
// the context builder. Merge order is project-then-report, so report
// values overwrite project values on shared keys.
func Merge(project, report Row) Row {
	merged := make(Row, len(project)+len(report))
	for k, v := range project {
		merged[k] = v
	}
	for k, v := range report {
		merged[k] = v
	}
	return merged
}
